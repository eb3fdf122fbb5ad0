// Package nested reads the extracurricular file: a list of "- " blocks made of
// "Key: value" lines, optionally under a "records:" line.
package nested

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

// Recognized keys and the line markers of the format.
const (
	KeyActivities       = "Extracurricular_Activities"
	KeyRecordID         = "Record_ID"
	KeySleepHours       = "Sleep_Hours"
	KeyPhysicalActivity = "Physical_Activity"

	recordsLine = "records:"
	itemMarker  = "- "
)

// State is the parser position in the input.
type State int

const (
	// StateScanning: no record started yet; key lines are ignored.
	StateScanning State = iota
	// StateInRecord: key lines apply to the last started record.
	StateInRecord
	// StateDone: the record cap was hit; every further line is ignored.
	StateDone
)

func (s State) String() string {
	switch s {
	case StateScanning:
		return "scanning"
	case StateInRecord:
		return "in_record"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Parser is the line state machine. Feed it lines in order, then read Records.
// The zero value is not usable; use NewParser.
type Parser struct {
	state      State
	records    []model.ExtracurricularRecord
	maxRecords int
	onFallback func(index int, field string)
}

// NewParser returns a parser in StateScanning.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		state:      StateScanning,
		maxRecords: model.DefaultMaxRecords,
		onFallback: func(int, string) {},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns the current state.
func (p *Parser) State() State { return p.state }

// Records returns the records started so far.
func (p *Parser) Records() []model.ExtracurricularRecord { return p.records }

// Feed consumes one raw input line.
func (p *Parser) Feed(line string) {
	if p.state == StateDone {
		return
	}

	line = text.Trim(line)
	if line == "" || line == recordsLine {
		return
	}

	if rest, ok := strings.CutPrefix(line, itemMarker); ok {
		if len(p.records) >= p.maxRecords {
			p.state = StateDone
			return
		}
		p.records = append(p.records, model.ExtracurricularRecord{})
		p.state = StateInRecord
		if rest = text.Trim(rest); rest != "" {
			p.applyPair(rest)
		}
		return
	}

	if p.state == StateInRecord {
		p.applyPair(line)
	}
}

// applyPair sets one "Key: value" field on the open record.
func (p *Parser) applyPair(line string) {
	key, value, found := strings.Cut(line, ":")
	if !found {
		return
	}
	key, value = text.Trim(key), text.Trim(value)

	idx := len(p.records) - 1
	rec := &p.records[idx]

	switch key {
	case KeyActivities:
		rec.ExtracurricularActivities = unquote(value) == "Yes"
	case KeyRecordID:
		rec.RecordID = p.intValue(idx, "record_id", value)
	case KeySleepHours:
		rec.SleepHours = p.intValue(idx, "sleep_hours", value)
	case KeyPhysicalActivity:
		rec.PhysicalActivity = p.intValue(idx, "physical_activity", value)
	}
}

func (p *Parser) intValue(idx int, field, value string) int {
	v, ok := text.ParseInt(value)
	if !ok {
		p.onFallback(idx, field)
	}
	return v
}

// unquote strips one pair of surrounding single quotes, then trims again.
func unquote(v string) string {
	if len(v) >= 2 && v[0] == '\'' && v[len(v)-1] == '\'' {
		return text.Trim(v[1 : len(v)-1])
	}
	return v
}

// ParseFile opens path and parses it with Parse. The file is closed before returning.
func ParseFile(ctx context.Context, path string, opts ...Option) ([]model.ExtracurricularRecord, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileOpen, err)
	}
	defer func() { _ = f.Close() }()

	return Parse(ctx, f, opts...)
}

// Parse reads extracurricular records from r.
func Parse(ctx context.Context, r io.Reader, opts ...Option) ([]model.ExtracurricularRecord, error) {
	p := NewParser(opts...)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineBytes)

	lineNo := 0
	for p.State() != StateDone && sc.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p.Feed(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: line %d: %w", ErrRead, lineNo+1, err)
	}
	return p.Records(), nil
}
