package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/okian/spfanalyzer/internal/adapters/sink/csvreport"
	"github.com/okian/spfanalyzer/internal/adapters/source/nested"
	"github.com/okian/spfanalyzer/internal/adapters/source/tabular"
	service "github.com/okian/spfanalyzer/internal/app"
	"github.com/okian/spfanalyzer/internal/config"
	"github.com/okian/spfanalyzer/internal/domain/report"
	"github.com/okian/spfanalyzer/pkg/logger"
)

const (
	taskFlag = "--TASK="

	exitOK      = 0
	exitFailure = 1
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run executes one invocation. Diagnostics go to stdout as a single line,
// logs go to stderr.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) != 2 || !strings.HasPrefix(args[1], taskFlag) {
		prog := "spfanalyzer"
		if len(args) > 0 {
			prog = filepath.Base(args[0])
		}
		fmt.Fprintf(stdout, "Usage: %s --TASK=\"<task_number>\"\n", prog)
		return exitFailure
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return exitFailure
	}

	if err := logger.Init(logger.WithWriter(stderr), logger.WithFormat(cfg.LogFormat)); err != nil {
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return exitFailure
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// An unknown task is only reported after the output file is created.
	task, _ := report.ParseTask(strings.TrimPrefix(args[1], taskFlag))

	svc := service.New(
		service.WithLogger(log),
		service.WithCurricularPath(cfg.CurricularPath),
		service.WithExtracurricularPath(cfg.ExtracurricularPath),
		service.WithOutputPath(cfg.OutputPath),
		service.WithMaxRecords(cfg.MaxRecords),
		service.WithMetricsFile(cfg.MetricsFile),
	)
	if _, err := svc.Run(ctx, task); err != nil {
		fmt.Fprintln(stdout, diagnostic(err, cfg))
		return exitFailure
	}
	return exitOK
}

// diagnostic renders the one-line message for a failed run.
func diagnostic(err error, cfg *config.Config) string {
	switch {
	case errors.Is(err, tabular.ErrFileOpen):
		return "Error: Could not open file " + cfg.CurricularPath
	case errors.Is(err, nested.ErrFileOpen):
		return "Error: Could not open file " + cfg.ExtracurricularPath
	case errors.Is(err, csvreport.ErrCreate):
		return "Error: Could not create output file"
	case errors.Is(err, report.ErrInvalidTask):
		return "Error: Invalid task number"
	default:
		return "Error: " + err.Error()
	}
}
