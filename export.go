package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/example/remindbot/internal/config"
	"github.com/example/remindbot/internal/excel"
	"github.com/example/remindbot/internal/logger"
	"github.com/example/remindbot/internal/store"
)

// runExport implements `remindbot export [-out file] [-sheet name]`.
func runExport(args []string) int {
	defaults := excel.DefaultExportConfig()
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	out := fs.String("out", defaults.FilePath, "workbook to write")
	sheet := fs.String("sheet", defaults.SheetName, "sheet name")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Read()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		return 2
	}
	if cfg.DBDriver == config.DriverMemory {
		fmt.Fprintln(os.Stderr, "export needs a persistent DB_DRIVER")
		return 2
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger init error:", err)
		return 2
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	st, err := store.Connect(ctx, cfg.DBConnectAttempts, cfg.DBConnectBackoff, log, opener(cfg))
	if err != nil {
		log.Error("export failed", zap.Error(err))
		return 1
	}
	defer st.Close()

	res, err := excel.ExportReminders(ctx, st, excel.ExportConfig{FilePath: *out, SheetName: *sheet})
	if err != nil {
		log.Error("export failed", zap.Error(err))
		return 1
	}
	fmt.Printf("exported %d reminders (%d pending, %d completed) to %s\n", res.Rows, res.Pending, res.Completed, *out)
	return 0
}
