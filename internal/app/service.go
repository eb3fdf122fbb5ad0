// Package service runs one analyzer pass: read both inputs, build the
// requested report and write it to the output file.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/okian/spfanalyzer/internal/adapters/sink/csvreport"
	"github.com/okian/spfanalyzer/internal/adapters/source/nested"
	"github.com/okian/spfanalyzer/internal/adapters/source/tabular"
	"github.com/okian/spfanalyzer/internal/domain/model"
	"github.com/okian/spfanalyzer/internal/domain/report"
	"github.com/okian/spfanalyzer/pkg/logger"
	"github.com/okian/spfanalyzer/pkg/metrics"
)

// Service holds the run configuration.
type Service struct {
	curricularPath      string
	extracurricularPath string
	outputPath          string
	maxRecords          int
	metricsFile         string

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithCurricularPath sets the curricular CSV input.
func WithCurricularPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.curricularPath = path
		}
	}
}

// WithExtracurricularPath sets the nested extracurricular input.
func WithExtracurricularPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.extracurricularPath = path
		}
	}
}

// WithOutputPath sets the report destination.
func WithOutputPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.outputPath = path
		}
	}
}

// WithMaxRecords caps how many records each input contributes.
func WithMaxRecords(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxRecords = n
		}
	}
}

// WithMetricsFile enables writing run metrics to path after each run.
func WithMetricsFile(path string) Option {
	return func(s *Service) {
		s.metricsFile = path
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// Summary describes a finished run.
type Summary struct {
	RunID                string
	Task                 report.Task
	CurricularCount      int
	ExtracurricularCount int
	RowsWritten          int
	Duration             time.Duration
}

// New constructs a Service with the default relative paths.
func New(opts ...Option) *Service {
	s := &Service{
		curricularPath:      "data/a1-data-curricular.csv",
		extracurricularPath: "data/a1-data-extracurricular.yaml",
		outputPath:          "output.csv",
		maxRecords:          model.DefaultMaxRecords,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Paths returns the curricular, extracurricular and output paths in use.
func (s *Service) Paths() (curricular, extracurricular, output string) {
	return s.curricularPath, s.extracurricularPath, s.outputPath
}

// Run reads both inputs, creates the output file and writes the report for
// task. Inputs are read and the output is created before the task is checked,
// so an unknown task leaves an empty output file behind.
func (s *Service) Run(ctx context.Context, task report.Task) (sum Summary, err error) {
	if s.logger == nil {
		s.logger = logger.Get()
	}
	start := time.Now()
	sum = Summary{RunID: uuid.NewString(), Task: task}
	log := s.logger.Named("run")
	runField := logger.String("run_id", sum.RunID)

	defer func() {
		sum.Duration = time.Since(start)
		metrics.RecordRun(Kind(err), sum.Duration)
		s.exportMetrics(ctx, runField)
	}()

	log.Info(ctx, "run started", runField, logger.Int("task", int(task)))

	cur, err := tabular.ParseFile(ctx, s.curricularPath,
		tabular.WithMaxRecords(s.maxRecords),
		tabular.WithFallbackHook(func(line int, field string) {
			metrics.RecordParseFallback(metrics.SourceCurricular, field)
			log.Debug(ctx, "numeric field fell back to zero", runField,
				logger.String("source", metrics.SourceCurricular),
				logger.Int("line", line),
				logger.String("field", field))
		}),
	)
	if err != nil {
		log.Error(ctx, "read curricular input failed", runField,
			logger.String("path", s.curricularPath), logger.Error(err))
		return sum, err
	}
	sum.CurricularCount = len(cur)
	metrics.RecordRecordsRead(metrics.SourceCurricular, len(cur))

	ext, err := nested.ParseFile(ctx, s.extracurricularPath,
		nested.WithMaxRecords(s.maxRecords),
		nested.WithFallbackHook(func(index int, field string) {
			metrics.RecordParseFallback(metrics.SourceExtracurricular, field)
			log.Debug(ctx, "numeric field fell back to zero", runField,
				logger.String("source", metrics.SourceExtracurricular),
				logger.Int("record", index),
				logger.String("field", field))
		}),
	)
	if err != nil {
		log.Error(ctx, "read extracurricular input failed", runField,
			logger.String("path", s.extracurricularPath), logger.Error(err))
		return sum, err
	}
	sum.ExtracurricularCount = len(ext)
	metrics.RecordRecordsRead(metrics.SourceExtracurricular, len(ext))

	log.Info(ctx, "inputs read", runField,
		logger.Int("curricular", len(cur)),
		logger.Int("extracurricular", len(ext)),
		logger.Bool("curricular_capped", len(cur) == s.maxRecords),
		logger.Bool("extracurricular_capped", len(ext) == s.maxRecords))

	out, err := csvreport.Create(s.outputPath)
	if err != nil {
		log.Error(ctx, "create output failed", runField,
			logger.String("path", s.outputPath), logger.Error(err))
		return sum, err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	rep, err := report.Build(task, cur, ext, report.WithLookupHook(metrics.RecordCorrelationLookup))
	if err != nil {
		log.Error(ctx, "dispatch task failed", runField, logger.Int("task", int(task)), logger.Error(err))
		return sum, err
	}

	n, err := csvreport.Write(ctx, out, rep)
	sum.RowsWritten = n
	metrics.RecordRowsWritten(int(task), n)
	if err != nil {
		log.Error(ctx, "write report failed", runField, logger.Error(err))
		return sum, err
	}

	log.Info(ctx, "report written", runField,
		logger.Int("task", int(task)),
		logger.String("report", task.Description()),
		logger.Int("rows", n),
		logger.String("path", s.outputPath))
	return sum, nil
}

// exportMetrics writes the metrics file when one is configured. Failures are
// logged only.
func (s *Service) exportMetrics(ctx context.Context, runField logger.Field) {
	if s.metricsFile == "" {
		return
	}
	if err := metrics.WriteTextfile(s.metricsFile); err != nil {
		s.logger.Warn(ctx, "write metrics file failed", runField,
			logger.String("path", s.metricsFile), logger.Error(err))
	}
}
