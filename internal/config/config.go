package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Columns names the header cells that identify each schedule column.
type Columns struct {
	Division string `yaml:"division"`
	Away     string `yaml:"away"`
	Home     string `yaml:"home"`
	Date     string `yaml:"date"`
	Start    string `yaml:"start"`
	Stop     string `yaml:"stop"`
	Field    string `yaml:"field"`
}

// Names returns the column names in a fixed order, for header resolution.
func (c Columns) Names() []string {
	return []string{c.Division, c.Away, c.Home, c.Date, c.Start, c.Stop, c.Field}
}

type Input struct {
	Columns Columns `yaml:"columns"`
	// Rows whose home team cell matches one of these values are not games.
	SkipHomeValues []string `yaml:"skip_home_values"`
	// Sheet to read from .xlsx schedules. Empty means the first sheet.
	Sheet string `yaml:"sheet"`
	// Upper bound on fetching a remote schedule, body included.
	FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds"`
}

// FetchTimeout is how long a remote schedule may take to download.
func (i Input) FetchTimeout() time.Duration {
	return time.Duration(i.FetchTimeoutSeconds) * time.Second
}

type Rules struct {
	ManagerBufferMinutes int  `yaml:"manager_buffer_minutes"`
	MaxGamesPerWeek      int  `yaml:"max_games_per_week"`
	AllowSundayGames     bool `yaml:"allow_sunday_games"`
}

// ManagerBuffer is the travel and setup time a manager needs between games.
func (r Rules) ManagerBuffer() time.Duration {
	return time.Duration(r.ManagerBufferMinutes) * time.Minute
}

type Config struct {
	// Year the schedule's dates fall in. Exported schedules omit it;
	// zero means the current calendar year.
	Year  int   `yaml:"year"`
	Input Input `yaml:"input"`
	Rules Rules `yaml:"rules"`
}

// Default returns the settings used when no config file is given.
func Default() *Config {
	return &Config{
		Input: Input{
			Columns: Columns{
				Division: "Division",
				Away:     "AwayTeam",
				Home:     "HomeTeam",
				Date:     "MatchDate",
				Start:    "StartTime",
				Stop:     "EndTime",
				Field:    "Field",
			},
			SkipHomeValues:      []string{"", "#N/A"},
			FetchTimeoutSeconds: 30,
		},
		Rules: Rules{
			ManagerBufferMinutes: 30,
			MaxGamesPerWeek:      2,
		},
	}
}

// ReferenceYear resolves the year used to complete schedule dates.
func (c *Config) ReferenceYear(now time.Time) int {
	if c.Year != 0 {
		return c.Year
	}
	return now.Year()
}

// LoadFromBytes parses YAML bytes over the defaults and validates the result.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

func (c *Config) validate() error {
	if c.Year < 0 {
		return fmt.Errorf("year %d must not be negative", c.Year)
	}

	seen := make(map[string]bool)
	for _, name := range c.Input.Columns.Names() {
		if name == "" {
			return fmt.Errorf("input columns must all be named")
		}
		if seen[name] {
			return fmt.Errorf("column %q is used for more than one input column", name)
		}
		seen[name] = true
	}

	if c.Input.FetchTimeoutSeconds < 1 {
		return fmt.Errorf("fetch_timeout_seconds must be at least 1")
	}

	if c.Rules.ManagerBufferMinutes < 0 {
		return fmt.Errorf("manager_buffer_minutes must not be negative")
	}
	if c.Rules.MaxGamesPerWeek < 1 {
		return fmt.Errorf("max_games_per_week must be at least 1")
	}
	return nil
}
