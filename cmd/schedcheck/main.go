package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/derekprior/schedcheck/internal/config"
	"github.com/derekprior/schedcheck/internal/division"
	"github.com/derekprior/schedcheck/internal/excel"
	"github.com/derekprior/schedcheck/internal/logger"
	"github.com/derekprior/schedcheck/internal/parser"
	"github.com/derekprior/schedcheck/internal/report"
	"github.com/derekprior/schedcheck/internal/schedule"
	"github.com/derekprior/schedcheck/internal/validator"
)

const defaultConfigFile = "schedcheck.yaml"

// globals are the persistent flags shared by every subcommand.
type globals struct {
	configFile string
	year       int
	debug      bool
}

func main() {
	var g globals
	rootCmd := &cobra.Command{
		Use:   "schedcheck",
		Short: "Check exported league schedules for conflicts and balance",
	}
	rootCmd.PersistentFlags().StringVar(&g.configFile, "config", "", "Path to an optional config file")
	rootCmd.PersistentFlags().IntVar(&g.year, "year", 0, "Year the schedule's dates fall in (default: config year or current year)")
	rootCmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "Log debug detail to stderr")

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter config file in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.OutOrStdout(), initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultConfigFile, "Output path for the config file")

	checkCmd := &cobra.Command{
		Use:          "check <schedule>",
		Short:        "Report conflicts, overloads and matchup balance for a schedule",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), cmd.OutOrStdout(), &g, args[0])
		},
	}

	var usageOutputPath string
	fieldsCmd := &cobra.Command{
		Use:          "fields <schedule>",
		Short:        "Show which fields are in use on each day",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFields(cmd.Context(), cmd.OutOrStdout(), &g, args[0], usageOutputPath)
		},
	}
	fieldsCmd.Flags().StringVarP(&usageOutputPath, "output", "o", "", "Also save the grid as an Excel workbook")

	rootCmd.AddCommand(initCmd, checkCmd, fieldsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// load resolves config and logger, then reads the schedule at location.
func (g *globals) load(ctx context.Context, location string) ([]*schedule.Game, *config.Config, error) {
	cfg := config.Default()
	if g.configFile != "" {
		var err error
		cfg, err = config.LoadFromFile(g.configFile)
		if err != nil {
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}
	}
	if g.year != 0 {
		cfg.Year = g.year
	}

	log := logger.New(os.Stderr, g.debug)
	year := cfg.ReferenceYear(time.Now())
	log.Debug("config.resolved", slog.String("file", g.configFile), slog.Int("year", year))

	games, err := parser.Load(ctx, location, parser.NewOptions(cfg, year, log))
	if err != nil {
		return nil, nil, fmt.Errorf("reading schedule: %w", err)
	}
	return games, cfg, nil
}

func runCheck(ctx context.Context, w io.Writer, g *globals, location string) error {
	games, cfg, err := g.load(ctx, location)
	if err != nil {
		return err
	}

	var summaries []*division.Summary
	for _, d := range validator.Divisions(games) {
		summaries = append(summaries, division.Summarize(d, games))
	}

	// Findings are advisory; the run succeeds whenever the schedule parsed.
	return report.WriteCheck(w, &report.Check{
		Source:    location,
		Games:     games,
		Findings:  validator.Check(cfg, games),
		Weeks:     validator.GamesByWeek(games),
		Divisions: summaries,
	})
}

func runFields(ctx context.Context, w io.Writer, g *globals, location, outputPath string) error {
	games, _, err := g.load(ctx, location)
	if err != nil {
		return err
	}

	days := schedule.GroupByDay(games)
	if err := report.WriteFieldUsage(w, days); err != nil {
		return err
	}
	if outputPath == "" {
		return nil
	}

	f, err := excel.FieldUsage(days)
	if err != nil {
		return fmt.Errorf("generating Excel: %w", err)
	}
	defer f.Close()
	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}
	fmt.Fprintf(w, "✓ Field usage saved to %s\n", outputPath)
	return nil
}

func runInit(w io.Writer, outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(w, "✓ Created %s\n", outputPath)
	return nil
}

const configTemplate = `# schedcheck configuration
# ========================
# Every setting is optional. Anything left out keeps the value shown here.

# Exported schedules carry month and day only. Leave year at 0 to use the
# current calendar year, or pass --year on the command line.
year: 0

input:
  # Header names of the columns schedcheck reads. Other columns are ignored
  # and the order does not matter.
  columns:
    division: Division
    away: AwayTeam
    home: HomeTeam
    date: MatchDate
    start: StartTime
    stop: EndTime
    field: Field

  # Rows whose home team is one of these values are skipped.
  skip_home_values: ["", "#N/A"]

  # Worksheet to read from .xlsx schedules. Empty means the first sheet.
  sheet: ""

  # Seconds allowed for downloading a schedule from an http(s) URL.
  fetch_timeout_seconds: 30

rules:
  # Minutes a manager needs between the end of one game and the start of
  # the next.
  manager_buffer_minutes: 30

  # A manager with more games than this in one division and week is flagged.
  max_games_per_week: 2

  # Set to true to stop reporting Sunday games.
  allow_sunday_games: false
`
