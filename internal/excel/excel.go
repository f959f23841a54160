package excel

import (
	"fmt"
	"io"
	"strings"

	"github.com/derekprior/schedcheck/internal/schedule"
	"github.com/xuri/excelize/v2"
)

const usageSheet = "Field Usage"

// ReadRows returns every row of the named sheet, or of the first sheet when
// sheet is empty. Trailing empty cells are dropped, so rows may be ragged.
func ReadRows(r io.Reader, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// FieldUsage creates a workbook with one block per day: a date row, a header
// row naming each field, then one row per concurrent game slot.
func FieldUsage(days []*schedule.Day) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetDefaultFont("Arial")

	if _, err := f.NewSheet(usageSheet); err != nil {
		return nil, fmt.Errorf("creating sheet: %w", err)
	}
	if err := writeUsageSheet(f, days); err != nil {
		return nil, fmt.Errorf("writing field usage: %w", err)
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

// fieldColumnName shortens a field to its first word, such as "Moscariello"
// for "Moscariello Ballpark", unless another field of the day shares it.
func fieldColumnName(name string, allNames []string) string {
	first, _, _ := strings.Cut(name, " ")
		count := 0
	for _, n := range allNames {
		word, _, _ := strings.Cut(n, " ")
		if word == first {
			count++
		}
	}
	if count > 1 {
		return name
	}
	return first
}

func writeUsageSheet(f *excelize.File, days []*schedule.Day) error {
	sheet := usageSheet

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16, Family: "Arial"},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 16, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	cellStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 16, Family: "Arial"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	maxFields := 0
	row := 1
	for _, day := range days {
		if len(day.Fields) > maxFields {
			maxFields = len(day.Fields)
		}

		if err := f.SetCellValue(sheet, cellRef(1, row), day.Date); err != nil {
			return err
		}
		if titleStyle != 0 {
			f.SetCellStyle(sheet, cellRef(1, row), cellRef(1, row), titleStyle)
		}
		row++

		for i, name := range day.Fields {
			f.SetCellValue(sheet, cellRef(i+1, row), fieldColumnName(name, day.Fields))
		}
		if headerStyle != 0 && len(day.Fields) > 0 {
			f.SetCellStyle(sheet, cellRef(1, row), cellRef(len(day.Fields), row), headerStyle)
		}
		row++

		for slot := 0; slot < day.Rows(); slot++ {
			for i, name := range day.Fields {
				if g := day.GameAt(name, slot); g != nil {
					f.SetCellValue(sheet, cellRef(i+1, row), fmt.Sprintf("%s %s", g.TimeStr(), g.Division))
				}
			}
			if cellStyle != 0 && len(day.Fields) > 0 {
				f.SetCellStyle(sheet, cellRef(1, row), cellRef(len(day.Fields), row), cellStyle)
			}
			row++
		}

		row++
	}

	// Wide enough for "HH:MM Division" at 16pt.
	for i := 1; i <= maxFields; i++ {
		col := colLetter(i)
		f.SetColWidth(sheet, col, col, 30)
	}
	return nil
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

func colLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
