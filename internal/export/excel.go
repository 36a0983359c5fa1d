package export

import (
	"fmt"
	"time"
	"unicode/utf8"

	"taskboard/internal/models"

	"github.com/xuri/excelize/v2"
)

const SheetName = "Tasks"

var headers = []string{"Task label", "Assignee", "Status"}

// FileName builds the download name for an export generated at t,
// e.g. tasks_20260901.xlsx.
func FileName(t time.Time) string {
	return fmt.Sprintf("tasks_%s.xlsx", t.Format("20060102"))
}

// TasksWorkbook encodes the given tasks into an xlsx workbook: one header
// row, one row per task. The assignee column holds the first name of the
// joined user or "" when unassigned; the status column holds the label of
// the status or "" for values outside the known set.
func TasksWorkbook(tasks []models.Task) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}

	widths := make([]int, len(headers))
	setRow := func(row int, values []string) error {
		for i, v := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return err
			}
			if n := utf8.RuneCountInString(v); n > widths[i] {
				widths[i] = n
			}
		}
		return nil
	}

	if err := setRow(1, headers); err != nil {
		return nil, err
	}
	for i, task := range tasks {
		assignee := ""
		if task.Assignee != nil {
			assignee = task.Assignee.FirstName
		}
		if err := setRow(i+2, []string{task.Label, assignee, task.Status.Label()}); err != nil {
			return nil, err
		}
	}

	// Size each column to its longest cell
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetName, col, col, float64(w)+2); err != nil {
			return nil, err
		}
	}

	return f, nil
}
