package service

import (
	"context"
	"errors"

	"github.com/okian/spfanalyzer/internal/adapters/sink/csvreport"
	"github.com/okian/spfanalyzer/internal/adapters/source/nested"
	"github.com/okian/spfanalyzer/internal/adapters/source/tabular"
	"github.com/okian/spfanalyzer/internal/domain/report"
	"github.com/okian/spfanalyzer/pkg/metrics"
)

// Kind classifies a Run error into a metrics outcome label.
func Kind(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, tabular.ErrFileOpen),
		errors.Is(err, nested.ErrFileOpen),
		errors.Is(err, csvreport.ErrCreate):
		return metrics.OutcomeFileOpen
	case errors.Is(err, report.ErrInvalidTask):
		return metrics.OutcomeInvalidTask
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.OutcomeCanceled
	default:
		return metrics.OutcomeInternal
	}
}
