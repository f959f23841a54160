package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/derekprior/schedcheck/internal/config"
	"github.com/derekprior/schedcheck/internal/schedule"
)

const scheduleCSV = "Division,AwayTeam,HomeTeam,MatchDate,StartTime,EndTime,Field\n" +
	`Majors,Washington-Majors,Majors - Jefferson,"Sat, Feb 14",09:00,11:00,Field 1` + "\n" +
	`Majors,Majors - Jefferson,Majors - Adams,"Sat, Feb 14",10:00,12:00,Field 1` + "\n" +
	`Minors,TBD,TBD,"Tue, Feb 10",17:45,19:45,Field 2` + "\n"

func writeSchedule(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schedule.csv")
	if err := os.WriteFile(path, []byte(scheduleCSV), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunCheck(t *testing.T) {
	path := writeSchedule(t)
	var out bytes.Buffer
	if err := runCheck(context.Background(), &out, &globals{year: 2026}, path); err != nil {
		t.Fatalf("runCheck() error: %v", err)
	}

	for _, want := range []string{
		"Schedule file: " + path + "\n",
		"Games: 3\n",
		"1 field conflicts\n",
		"1 manager conflicts\n",
		"---Majors---\n",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q\n%s", want, out.String())
		}
	}
}

func TestRunCheckUsesConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "schedcheck.yaml")
	cfg := "rules:\n  manager_buffer_minutes: 0\ninput:\n  columns:\n    field: Location\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}
	schedPath := filepath.Join(dir, "schedule.csv")
	data := strings.Replace(scheduleCSV, ",Field\n", ",Location\n", 1)
	if err := os.WriteFile(schedPath, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	g := &globals{configFile: cfgPath, year: 2026}
	if err := runCheck(context.Background(), &out, g, schedPath); err != nil {
		t.Fatalf("runCheck() error: %v", err)
	}
	// The Jefferson games still overlap by an hour without a buffer.
	if !strings.Contains(out.String(), "1 manager conflicts\n") {
		t.Errorf("output:\n%s", out.String())
	}
}

func TestRunCheckErrors(t *testing.T) {
	t.Run("missing schedule", func(t *testing.T) {
		var out bytes.Buffer
		err := runCheck(context.Background(), &out, &globals{}, filepath.Join(t.TempDir(), "nope.csv"))
		if !errors.Is(err, schedule.ErrResource) {
			t.Errorf("error = %v, want ErrResource", err)
		}
		if out.Len() != 0 {
			t.Errorf("wrote a report for a missing schedule:\n%s", out.String())
		}
	})

	t.Run("bad row", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "schedule.csv")
		data := scheduleCSV + `Majors,Washington,Majors - Adams,"Sat, Feb 21",09:00,11:00,Field 1` + "\n"
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
		var out bytes.Buffer
		err := runCheck(context.Background(), &out, &globals{year: 2026}, path)
		if !errors.Is(err, schedule.ErrFormat) {
			t.Errorf("error = %v, want ErrFormat", err)
		}
	})

	t.Run("missing config", func(t *testing.T) {
		var out bytes.Buffer
		g := &globals{configFile: filepath.Join(t.TempDir(), "missing.yaml")}
		if err := runCheck(context.Background(), &out, g, writeSchedule(t)); err == nil {
			t.Error("expected error for missing config file")
		}
	})
}

func TestRunFields(t *testing.T) {
	path := writeSchedule(t)
	xlsx := filepath.Join(t.TempDir(), "usage.xlsx")

	var out bytes.Buffer
	if err := runFields(context.Background(), &out, &globals{year: 2026}, path, xlsx); err != nil {
		t.Fatalf("runFields() error: %v", err)
	}
	if !strings.HasPrefix(out.String(), "2026-02-10\n") {
		t.Errorf("output should start with the first day:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "✓ Field usage saved to "+xlsx) {
		t.Errorf("output missing save confirmation:\n%s", out.String())
	}

	f, err := excelize.OpenFile(xlsx)
	if err != nil {
		t.Fatalf("OpenFile() error: %v", err)
	}
	defer f.Close()
	if idx, _ := f.GetSheetIndex("Field Usage"); idx < 0 {
		t.Errorf("sheets = %v, want Field Usage", f.GetSheetList())
	}
}

func TestRunFieldsWithoutWorkbook(t *testing.T) {
	var out bytes.Buffer
	if err := runFields(context.Background(), &out, &globals{year: 2026}, writeSchedule(t), ""); err != nil {
		t.Fatalf("runFields() error: %v", err)
	}
	if strings.Contains(out.String(), "saved") {
		t.Errorf("no workbook was requested:\n%s", out.String())
	}
}

func TestRunInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedcheck.yaml")
	var out bytes.Buffer
	if err := runInit(&out, path); err != nil {
		t.Fatalf("runInit() error: %v", err)
	}

	cfg, err := config.LoadFromFile(path)
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if !reflect.DeepEqual(cfg, config.Default()) {
		t.Errorf("template config = %+v, want defaults %+v", cfg, config.Default())
	}

	if err := runInit(&out, path); err == nil {
		t.Error("expected error when the file already exists")
	}
}
