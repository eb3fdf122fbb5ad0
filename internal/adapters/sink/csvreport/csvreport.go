// Package csvreport serializes reports as comma-separated text.
package csvreport

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/okian/spfanalyzer/internal/domain/report"
)

// Create opens path for writing, truncating any previous report.
func Create(path string) (*os.File, error) {
	f, err := os.Create(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreate, err)
	}
	return f, nil
}

// Write emits the header line and then every row, each terminated by "\n".
// It returns the number of data rows written.
func Write(ctx context.Context, w io.Writer, rep report.Report) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(rep.Header); err != nil {
		return 0, fmt.Errorf("%w: header: %w", ErrWrite, err)
	}

	n := 0
	for _, row := range rep.Rows {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if err := cw.Write(row); err != nil {
			return n, fmt.Errorf("%w: row %d: %w", ErrWrite, n+1, err)
		}
		n++
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return n, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return n, nil
}
