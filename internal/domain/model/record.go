// Package model contains the student records passed between layers.
package model

// DefaultMaxRecords caps how many records each parser keeps.
const DefaultMaxRecords = 6608

// CurricularRecord is one data line of the curricular CSV file.
// Fields appear in file order.
type CurricularRecord struct {
	RecordID         int
	HoursStudied     int
	Attendance       int // percentage, not range checked
	TutoringSessions int
	ExamScore        int
}

// ExtracurricularRecord is one "- " block of the extracurricular file.
type ExtracurricularRecord struct {
	RecordID                  int
	ExtracurricularActivities bool
	PhysicalActivity          int
	SleepHours                int
}

// YesNo renders a boolean the way reports expect it.
func YesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
