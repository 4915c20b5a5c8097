// Package excel exports the reminder history to an .xlsx workbook.
package excel

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/example/remindbot/pkg/models"
)

// ReminderLister returns the full reminder history.
type ReminderLister interface {
	ListAll(ctx context.Context) ([]models.Reminder, error)
}

// ExportConfig defines the export configuration
type ExportConfig struct {
	FilePath  string // Path of the workbook to write
	SheetName string // Name of the sheet holding the rows
}

// DefaultExportConfig returns the default export configuration
func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		FilePath:  "reminders.xlsx",
		SheetName: "Reminders",
	}
}

// ExportResult holds the result of an export operation
type ExportResult struct {
	Rows      int
	Completed int
	Pending   int
}

var header = []interface{}{"ID", "User ID", "Owner", "Task", "Scheduled (UTC)", "Local time", "Completed", "Created (UTC)"}

// ExportReminders writes every stored reminder to config.FilePath
func ExportReminders(ctx context.Context, repo ReminderLister, config ExportConfig) (*ExportResult, error) {
	list, err := repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}

	f, result, err := build(list, config.SheetName)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := f.SaveAs(config.FilePath); err != nil {
		return nil, fmt.Errorf("failed to save workbook: %w", err)
	}
	return result, nil
}

// WriteReminders renders list as a workbook into w
func WriteReminders(w io.Writer, list []models.Reminder, sheet string) (*ExportResult, error) {
	f, result, err := build(list, sheet)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return result, nil
}

func build(list []models.Reminder, sheet string) (*excelize.File, *ExportResult, error) {
	if sheet == "" {
		sheet = DefaultExportConfig().SheetName
	}

	f := excelize.NewFile()
	f.SetSheetName(f.GetSheetName(0), sheet)

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to write header: %w", err)
	}

	result := &ExportResult{}
	for i, r := range list {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, nil, err
		}
		row := []interface{}{
			r.ID,
			r.UserID,
			r.UserName,
			r.Task,
			r.ScheduledAt.UTC().Format(time.RFC3339),
			r.LocalDisplay,
			yesNo(r.Completed),
			r.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}

		result.Rows++
		if r.Completed {
			result.Completed++
		} else {
			result.Pending++
		}
	}

	if err := f.SetColWidth(sheet, "D", "D", 40); err != nil {
		f.Close()
		return nil, nil, err
	}
	return f, result, nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
