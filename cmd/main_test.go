package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

const (
	curricularCSV = `Record_ID,Hours_Studied,Attendance,Tutoring_Sessions,Exam_Score
1,5,90,2,95
2,3,80,1,85
3,4,100,0,55
`
	extracurricularYAML = `records:
- Extracurricular_Activities: 'No'
  Physical_Activity: 1
  Record_ID: 3
  Sleep_Hours: 6
`
)

// workspace changes into a fresh directory laid out like a real run.
func workspace(t *testing.T, withInputs bool) string {
	dir := t.TempDir()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
	if withInputs {
		if err := os.MkdirAll("data", 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join("data", "a1-data-curricular.csv"), []byte(curricularCSV), 0o600); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join("data", "a1-data-extracurricular.yaml"), []byte(extracurricularYAML), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func invoke(args ...string) (int, string) {
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"/usr/local/bin/spfanalyzer"}, args...), &stdout, &stderr)
	return code, stdout.String()
}

func output() string {
	data, err := os.ReadFile("output.csv")
	if err != nil {
		return "<missing>"
	}
	return string(data)
}

func TestRunUsage(t *testing.T) {
	convey.Convey("Given a malformed invocation", t, func() {
		workspace(t, true)

		for _, args := range [][]string{
			{},
			{"-t=1"},
			{"--task=1"},
			{"--TASK", "1"},
			{"--TASK=1", "--TASK=2"},
		} {
			code, out := invoke(args...)

			convey.So(code, convey.ShouldEqual, 1)
			convey.So(out, convey.ShouldEqual, "Usage: spfanalyzer --TASK=\"<task_number>\"\n")
			convey.So(output(), convey.ShouldEqual, "<missing>")
		}
	})
}

func TestRunTasks(t *testing.T) {
	convey.Convey("Given both inputs in the working directory", t, func() {
		workspace(t, true)

		convey.Convey("When running task 1", func() {
			code, out := invoke("--TASK=1")

			convey.Convey("Then only scores above 90 are written", func() {
				convey.So(code, convey.ShouldEqual, 0)
				convey.So(out, convey.ShouldEqual, "")
				convey.So(output(), convey.ShouldEqual, "Record_ID,Exam_Score\n1,95\n")
			})
		})

		convey.Convey("When running task 6", func() {
			code, _ := invoke("--TASK=6")

			convey.Convey("Then the low scorer's activity is written", func() {
				convey.So(code, convey.ShouldEqual, 0)
				convey.So(output(), convey.ShouldEqual, "Record_ID,Exam_Score,Extracurricular_Activities\n3,55,No\n")
			})
		})

		convey.Convey("When running task 7", func() {
			code, out := invoke("--TASK=7")

			convey.Convey("Then an invalid task is reported and no rows are written", func() {
				convey.So(code, convey.ShouldEqual, 1)
				convey.So(out, convey.ShouldEqual, "Error: Invalid task number\n")
				convey.So(output(), convey.ShouldEqual, "")
			})
		})

		convey.Convey("When the task is not a number", func() {
			code, out := invoke("--TASK=abc")

			convey.So(code, convey.ShouldEqual, 1)
			convey.So(out, convey.ShouldEqual, "Error: Invalid task number\n")
		})

		convey.Convey("When the output path is overridden from the environment", func() {
			_ = os.Setenv("SPF_OUTPUT_PATH", "report.csv")
			_ = os.Setenv("SPF_METRICS_FILE", "spf.prom")
			defer func() {
				_ = os.Unsetenv("SPF_OUTPUT_PATH")
				_ = os.Unsetenv("SPF_METRICS_FILE")
			}()

			code, _ := invoke("--TASK=4")

			convey.Convey("Then the report and metrics land in the configured files", func() {
				convey.So(code, convey.ShouldEqual, 0)
				data, err := os.ReadFile("report.csv")
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(data), convey.ShouldEqual, "Record_ID,Exam_Score\n3,55\n")
				_, err = os.Stat("spf.prom")
				convey.So(err, convey.ShouldBeNil)
				convey.So(output(), convey.ShouldEqual, "<missing>")
			})
		})

		convey.Convey("When the configuration is invalid", func() {
			_ = os.Setenv("SPF_MAX_RECORDS", "0")
			defer func() { _ = os.Unsetenv("SPF_MAX_RECORDS") }()

			code, out := invoke("--TASK=1")

			convey.So(code, convey.ShouldEqual, 1)
			convey.So(out, convey.ShouldStartWith, "Error: invalid config")
		})
	})
}

func TestRunMissingInputs(t *testing.T) {
	convey.Convey("Given no input files", t, func() {
		workspace(t, false)

		convey.Convey("When running any task", func() {
			code, out := invoke("--TASK=2")

			convey.Convey("Then the curricular file is reported and no output is created", func() {
				convey.So(code, convey.ShouldEqual, 1)
				convey.So(out, convey.ShouldEqual, "Error: Could not open file data/a1-data-curricular.csv\n")
				convey.So(output(), convey.ShouldEqual, "<missing>")
			})
		})

		convey.Convey("When only the curricular file exists", func() {
			convey.So(os.MkdirAll("data", 0o755), convey.ShouldBeNil)
			convey.So(os.WriteFile(filepath.Join("data", "a1-data-curricular.csv"), []byte(curricularCSV), 0o600), convey.ShouldBeNil)

			code, out := invoke("--TASK=2")

			convey.Convey("Then the extracurricular file is reported", func() {
				convey.So(code, convey.ShouldEqual, 1)
				convey.So(out, convey.ShouldEqual, "Error: Could not open file data/a1-data-extracurricular.yaml\n")
			})
		})

		convey.Convey("When the output cannot be created", func() {
			workspace(t, true)
			convey.So(os.Mkdir("output.csv", 0o755), convey.ShouldBeNil)

			code, out := invoke("--TASK=1")

			convey.So(code, convey.ShouldEqual, 1)
			convey.So(out, convey.ShouldEqual, "Error: Could not create output file\n")
		})
	})
}
