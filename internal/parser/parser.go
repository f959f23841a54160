// Package parser reads exported schedules into games.
//
// A schedule is a table whose header row names its columns. Columns may come
// in any order and extra columns are ignored. Sources are local CSV files,
// CSV served over http or https, or .xlsx workbooks from either.
package parser

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"slices"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/derekprior/schedcheck/internal/config"
	"github.com/derekprior/schedcheck/internal/excel"
	"github.com/derekprior/schedcheck/internal/httpclient"
	"github.com/derekprior/schedcheck/internal/logger"
	"github.com/derekprior/schedcheck/internal/schedule"
)

// Options controls how a schedule is read.
type Options struct {
	Input config.Input
	// Year completes the month and day found in the date column.
	Year int
	// Client fetches remote schedules. Nil means a client with the
	// default timeouts.
	Client *http.Client
	Logger *slog.Logger
}

// NewOptions returns options reading input as described by cfg.
func NewOptions(cfg *config.Config, year int, log *slog.Logger) Options {
	return Options{
		Input:  cfg.Input,
		Year:   year,
		Client: httpclient.New(httpclient.WithTimeout(cfg.Input.FetchTimeout())),
		Logger: log,
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return logger.Discard()
}

// Load reads the schedule at location, a local path or an http(s) URL.
// Locations ending in .xlsx are read as workbooks, anything else as CSV.
func Load(ctx context.Context, location string, opts Options) ([]*schedule.Game, error) {
	body, contentType, err := open(ctx, location, opts)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var games []*schedule.Game
	if isWorkbook(location) {
		rows, rerr := excel.ReadRows(body, opts.Input.Sheet)
		if rerr != nil {
			return nil, &schedule.FormatError{Err: rerr}
		}
		games, err = ParseRows(rows, opts)
	} else {
		r, derr := decoder(body, contentType)
		if derr != nil {
			return nil, derr
		}
		games, err = Parse(r, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", location, err)
	}

	opts.logger().Info("schedule.loaded", "source", location, "games", len(games))
	return games, nil
}

func isRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func isWorkbook(location string) bool {
	path := location
	if isRemote(location) {
		path, _, _ = strings.Cut(path, "?")
	}
	return strings.HasSuffix(strings.ToLower(path), ".xlsx")
}

// open returns the raw bytes of location and, for remote sources, the
// advertised content type.
func open(ctx context.Context, location string, opts Options) (io.ReadCloser, string, error) {
	if !isRemote(location) {
		f, err := os.Open(location)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %w", schedule.ErrResource, err)
		}
		return f, "", nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", schedule.ErrResource, err)
	}
	client := opts.Client
	if client == nil {
		client = httpclient.New(httpclient.DefaultConfig())
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: fetching %s: %w", schedule.ErrResource, location, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, "", fmt.Errorf("%w: fetching %s: %s", schedule.ErrResource, location, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	opts.logger().Info("schedule.fetched", "url", location, "status", resp.StatusCode, "content_type", contentType)
	return resp.Body, contentType, nil
}

// decoder wraps r to produce UTF-8 using the charset named in contentType.
// Without one the content is taken to be UTF-8. A leading byte order mark
// is dropped either way.
func decoder(r io.Reader, contentType string) (io.Reader, error) {
	var enc encoding.Encoding = unicode.UTF8
	if contentType != "" {
		if _, params, err := mime.ParseMediaType(contentType); err == nil && params["charset"] != "" {
			e, _ := charset.Lookup(params["charset"])
			if e == nil {
				return nil, fmt.Errorf("%w: unsupported charset %q", schedule.ErrResource, params["charset"])
			}
			enc = e
		}
	}
	return transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder())), nil
}

// Parse reads CSV from r. Errors name the line a record starts on, so
// blank lines and multi-line cells are accounted for.
func Parse(r io.Reader, opts Options) ([]*schedule.Game, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var rows [][]string
	var lines []int
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &schedule.FormatError{Row: pe.StartLine, Err: pe.Err}
			}
			return nil, fmt.Errorf("%w: reading schedule: %w", schedule.ErrResource, err)
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, row)
		lines = append(lines, line)
	}
	return parseRows(rows, lines, opts)
}

// columns maps each input column to its index in the header row.
type columns struct {
	division, away, home, date, start, stop, field int
}

func resolveColumns(header []string, line int, names config.Columns) (columns, error) {
	var cols columns
	targets := []struct {
		name string
		idx  *int
	}{
		{names.Division, &cols.division},
		{names.Away, &cols.away},
		{names.Home, &cols.home},
		{names.Date, &cols.date},
		{names.Start, &cols.start},
		{names.Stop, &cols.stop},
		{names.Field, &cols.field},
	}
	for _, t := range targets {
		i := slices.Index(header, t.name)
		if i < 0 {
			return cols, &schedule.FormatError{
				Row:    line,
				Column: t.name,
				Err:    fmt.Errorf("missing column"),
			}
		}
		*t.idx = i
	}
	return cols, nil
}

// ParseRows builds games from rows whose first entry is the header.
// Rows without a home team are skipped. Row numbers count from 1 at the
// header, as in a spreadsheet.
func ParseRows(rows [][]string, opts Options) ([]*schedule.Game, error) {
	return parseRows(rows, nil, opts)
}

// parseRows is ParseRows with the source line of each row. Nil lines
// number rows by position.
func parseRows(rows [][]string, lines []int, opts Options) ([]*schedule.Game, error) {
	if len(rows) == 0 {
		return nil, &schedule.FormatError{Err: fmt.Errorf("schedule is empty")}
	}
	lineOf := func(i int) int {
		if lines != nil {
			return lines[i]
		}
		return i + 1
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	cols, err := resolveColumns(header, lineOf(0), opts.Input.Columns)
	if err != nil {
		return nil, err
	}

	log := opts.logger()
	var games []*schedule.Game
	for i, row := range rows[1:] {
		rowNum := lineOf(i + 1)
		cell := func(idx int) string {
			if idx < len(row) {
				return row[idx]
			}
			return ""
		}

		home := cell(cols.home)
		if slices.Contains(opts.Input.SkipHomeValues, home) {
			log.Debug("schedule.row.skipped", "row", rowNum, "home", home)
			continue
		}

		g, err := schedule.NewGame(schedule.Record{
			Row:      rowNum,
			Division: cell(cols.division),
			Away:     cell(cols.away),
			Home:     home,
			Date:     cell(cols.date),
			Start:    cell(cols.start),
			Stop:     cell(cols.stop),
			Field:    cell(cols.field),
		}, opts.Year)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, nil
}
