// Package report builds the six fixed report variants from parsed records.
package report

import (
	"fmt"
	"strconv"

	"github.com/okian/spfanalyzer/internal/domain/correlate"
	"github.com/okian/spfanalyzer/internal/domain/model"
	"github.com/okian/spfanalyzer/internal/domain/text"
)

// Task selects a report variant.
type Task int

// Supported tasks.
const (
	TaskHighScores          Task = 1
	TaskExtracurricular     Task = 2
	TaskHighScoresMerged    Task = 3
	TaskFullAttendance      Task = 4
	TaskSleepOverStudy      Task = 5
	TaskLowScoresActivities Task = 6
)

// Score thresholds used by the filters.
const (
	highScore      = 90
	lowScore       = 60
	fullAttendance = 100
)

type taskSpec struct {
	description string
	header      []string
	build       func(b *builder) [][]string
}

var tasks = map[Task]taskSpec{
	TaskHighScores: {
		description: "curricular records with exam score above 90",
		header:      []string{"Record_ID", "Exam_Score"},
		build:       (*builder).highScores,
	},
	TaskExtracurricular: {
		description: "every extracurricular record",
		header:      []string{"Extracurricular_Activities", "Physical_Activity", "Record_ID", "Sleep_Hours"},
		build:       (*builder).extracurricular,
	},
	TaskHighScoresMerged: {
		description: "merged records with exam score above 90",
		header: []string{
			"Record_ID", "Hours_Studied", "Attendance", "Tutoring_Sessions", "Exam_Score",
			"Extracurricular_Activities", "Physical_Activity", "Sleep_Hours",
		},
		build: (*builder).highScoresMerged,
	},
	TaskFullAttendance: {
		description: "curricular records with 100% attendance",
		header:      []string{"Record_ID", "Exam_Score"},
		build:       (*builder).fullAttendance,
	},
	TaskSleepOverStudy: {
		description: "records sleeping at least as many hours as they study",
		header:      []string{"Record_ID", "Exam_Score"},
		build:       (*builder).sleepOverStudy,
	},
	TaskLowScoresActivities: {
		description: "activities of records with exam score below 60",
		header:      []string{"Record_ID", "Exam_Score", "Extracurricular_Activities"},
		build:       (*builder).lowScoresActivities,
	},
}

// Report is a header plus data rows, ready to be serialized.
type Report struct {
	Task   Task
	Header []string
	Rows   [][]string
}

// Valid reports whether t is a supported task.
func (t Task) Valid() bool {
	_, ok := tasks[t]
	return ok
}

// Description is a one-line summary of the report, empty for unknown tasks.
func (t Task) Description() string {
	return tasks[t].description
}

// Tasks lists the supported tasks in order.
func Tasks() []Task {
	return []Task{
		TaskHighScores, TaskExtracurricular, TaskHighScoresMerged,
		TaskFullAttendance, TaskSleepOverStudy, TaskLowScoresActivities,
	}
}

// ParseTask reads a task number with the best-effort integer rule.
func ParseTask(s string) (Task, error) {
	n, _ := text.ParseInt(s)
	t := Task(n)
	if !t.Valid() {
		return t, fmt.Errorf("%w: %q", ErrInvalidTask, s)
	}
	return t, nil
}

// Header returns the fixed header of a task.
func Header(t Task) ([]string, error) {
	spec, ok := tasks[t]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTask, int(t))
	}
	return append([]string(nil), spec.header...), nil
}

// Option applies a configuration option to Build.
type Option func(*builder)

// WithLookupHook is called after every correlation lookup.
func WithLookupHook(hook func(found bool)) Option {
	return func(b *builder) {
		if hook != nil {
			b.onLookup = hook
		}
	}
}

// Build filters and joins the records for task. Curricular records are visited
// in read order; the extracurricular report keeps its own order.
func Build(t Task, cur []model.CurricularRecord, ext []model.ExtracurricularRecord, opts ...Option) (Report, error) {
	spec, ok := tasks[t]
	if !ok {
		return Report{}, fmt.Errorf("%w: %d", ErrInvalidTask, int(t))
	}

	b := &builder{cur: cur, ext: ext, onLookup: func(bool) {}}
	for _, opt := range opts {
		opt(b)
	}

	return Report{
		Task:   t,
		Header: append([]string(nil), spec.header...),
		Rows:   b.rows(spec.build),
	}, nil
}

type builder struct {
	cur      []model.CurricularRecord
	ext      []model.ExtracurricularRecord
	onLookup func(found bool)
}

func (b *builder) rows(build func(*builder) [][]string) [][]string {
	rows := build(b)
	if rows == nil {
		rows = [][]string{}
	}
	return rows
}

func (b *builder) find(id int) (*model.ExtracurricularRecord, bool) {
	rec, ok := correlate.FindByID(id, b.ext)
	b.onLookup(ok)
	return rec, ok
}

func (b *builder) highScores() [][]string {
	var rows [][]string
	for _, c := range b.cur {
		if c.ExamScore > highScore {
			rows = append(rows, ints(c.RecordID, c.ExamScore))
		}
	}
	return rows
}

func (b *builder) extracurricular() [][]string {
	var rows [][]string
	for _, e := range b.ext {
		rows = append(rows, []string{
			model.YesNo(e.ExtracurricularActivities),
			strconv.Itoa(e.PhysicalActivity),
			strconv.Itoa(e.RecordID),
			strconv.Itoa(e.SleepHours),
		})
	}
	return rows
}

func (b *builder) highScoresMerged() [][]string {
	var rows [][]string
	for _, c := range b.cur {
		if c.ExamScore <= highScore {
			continue
		}
		e, ok := b.find(c.RecordID)
		if !ok {
			continue
		}
		row := ints(c.RecordID, c.HoursStudied, c.Attendance, c.TutoringSessions, c.ExamScore)
		row = append(row,
			model.YesNo(e.ExtracurricularActivities),
			strconv.Itoa(e.PhysicalActivity),
			strconv.Itoa(e.SleepHours),
		)
		rows = append(rows, row)
	}
	return rows
}

func (b *builder) fullAttendance() [][]string {
	var rows [][]string
	for _, c := range b.cur {
		if c.Attendance == fullAttendance {
			rows = append(rows, ints(c.RecordID, c.ExamScore))
		}
	}
	return rows
}

func (b *builder) sleepOverStudy() [][]string {
	var rows [][]string
	for _, c := range b.cur {
		if e, ok := b.find(c.RecordID); ok && e.SleepHours >= c.HoursStudied {
			rows = append(rows, ints(c.RecordID, c.ExamScore))
		}
	}
	return rows
}

func (b *builder) lowScoresActivities() [][]string {
	var rows [][]string
	for _, c := range b.cur {
		if c.ExamScore >= lowScore {
			continue
		}
		if e, ok := b.find(c.RecordID); ok {
			rows = append(rows, []string{
				strconv.Itoa(c.RecordID),
				strconv.Itoa(c.ExamScore),
				model.YesNo(e.ExtracurricularActivities),
			})
		}
	}
	return rows
}

func ints(vals ...int) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = strconv.Itoa(v)
	}
	return out
}
