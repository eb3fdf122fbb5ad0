// Package tabular reads the comma-separated curricular file.
package tabular

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/okian/spfanalyzer/internal/domain/model"
	"github.com/okian/spfanalyzer/internal/domain/text"
)

const maxLineBytes = 1 << 20

// Fields lists the column names in file order.
var Fields = [...]string{"record_id", "hours_studied", "attendance", "tutoring_sessions", "exam_score"}

type parser struct {
	maxRecords int
	onFallback func(line int, field string)
}

// ParseFile opens path and parses it with Parse. The file is closed before returning.
func ParseFile(ctx context.Context, path string, opts ...Option) ([]model.CurricularRecord, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileOpen, err)
	}
	defer func() { _ = f.Close() }()

	return Parse(ctx, f, opts...)
}

// Parse reads curricular records from r. The first line is a header and is
// always discarded. Every later line, up to the record cap, yields exactly one
// record; numeric fields that do not parse are recorded as zero.
func Parse(ctx context.Context, r io.Reader, opts ...Option) ([]model.CurricularRecord, error) {
	p := &parser{
		maxRecords: model.DefaultMaxRecords,
		onFallback: func(int, string) {},
	}
	for _, opt := range opts {
		opt(p)
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineBytes)

	var records []model.CurricularRecord
	lineNo := 0
	for len(records) < p.maxRecords && sc.Scan() {
		lineNo++
		if lineNo == 1 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		records = append(records, p.parseLine(lineNo, sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: line %d: %w", ErrRead, lineNo+1, err)
	}
	return records, nil
}

func (p *parser) parseLine(lineNo int, line string) model.CurricularRecord {
	parts := strings.Split(line, ",")

	var vals [len(Fields)]int
	for i, field := range Fields {
		raw := ""
		if i < len(parts) {
			raw = parts[i]
		}
		v, ok := text.ParseInt(raw)
		if !ok {
			p.onFallback(lineNo, field)
		}
		vals[i] = v
	}

	return model.CurricularRecord{
		RecordID:         vals[0],
		HoursStudied:     vals[1],
		Attendance:       vals[2],
		TutoringSessions: vals[3],
		ExamScore:        vals[4],
	}
}
