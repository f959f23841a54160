// Package httpclient builds the client used to download remote schedules.
package httpclient

import (
	"net"
	"net/http"
	"time"
)

type Config struct {
	// Total time for one request, reading the body included. A context
	// deadline can still end it sooner.
	Timeout time.Duration

	DialTimeout    time.Duration
	TLSHandshake   time.Duration
	ResponseHeader time.Duration
}

func DefaultConfig() Config {
	return Config{
		Timeout:        30 * time.Second,
		DialTimeout:    5 * time.Second,
		TLSHandshake:   5 * time.Second,
		ResponseHeader: 10 * time.Second,
	}
}

// WithTimeout returns DefaultConfig with the total timeout replaced. The
// transport limits never exceed it.
func WithTimeout(timeout time.Duration) Config {
	cfg := DefaultConfig()
	cfg.Timeout = timeout
	cfg.DialTimeout = min(cfg.DialTimeout, timeout)
	cfg.TLSHandshake = min(cfg.TLSHandshake, timeout)
	cfg.ResponseHeader = min(cfg.ResponseHeader, timeout)
	return cfg
}

func New(cfg Config) *http.Client {
	dialer := &net.Dialer{
		Timeout: cfg.DialTimeout,
	}

	tr := &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: dialer.DialContext,

		ForceAttemptHTTP2: true,

		TLSHandshakeTimeout:   cfg.TLSHandshake,
		ResponseHeaderTimeout: cfg.ResponseHeader,
	}

	return &http.Client{
		Transport: tr,
		Timeout:   cfg.Timeout,
	}
}
