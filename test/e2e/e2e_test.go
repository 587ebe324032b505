//go:build e2e
// +build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joho/godotenv"
)

// Run with: go test -tags e2e ./test/e2e/...
// ATTENDANCE_BIN may point at a prebuilt binary; otherwise one is built.

var binPath string

func TestMain(m *testing.M) {
	// Load .env if present (ignore error)
	_ = godotenv.Load("../../.env")

	var buildDir string
	binPath = os.Getenv("ATTENDANCE_BIN")
	if binPath == "" {
		dir, err := os.MkdirTemp("", "attendance-e2e")
		if err != nil {
			fmt.Printf("Setup failed: %v\n", err)
			os.Exit(1)
		}
		binPath = filepath.Join(dir, "attendance")
		build := exec.Command("go", "build", "-o", binPath, "../../cmd/attendance")
		if out, err := build.CombinedOutput(); err != nil {
			fmt.Printf("Build failed: %v\n%s\n", err, out)
			os.Exit(1)
		}
		buildDir = dir
	}

	code := m.Run()
	if buildDir != "" {
		os.RemoveAll(buildDir)
	}
	os.Exit(code)
}

// run feeds lines to the program and returns its stdout.
func run(t *testing.T, dataFile string, lines ...string) string {
	t.Helper()

	cmd := exec.Command(binPath)
	cmd.Env = append(os.Environ(),
		"STORE_DRIVER=file",
		"DATA_FILE="+dataFile,
		"TTS_COMMAND=none",
		"DELAY_UNIT_MS=0",
		"LOG_LEVEL=error",
	)
	cmd.Stdin = strings.NewReader(strings.Join(lines, "\n") + "\n")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("program failed: %v\nstderr: %s", err, stderr.String())
	}
	return stdout.String()
}

type persisted struct {
	Students map[string]struct {
		Name      string `json:"name"`
		AddedDate string `json:"added_date"`
	} `json:"students"`
	AttendanceRecords map[string]map[string]struct {
		Status     string `json:"status"`
		MarkedTime string `json:"marked_time"`
	} `json:"attendance_records"`
}

func readData(t *testing.T, path string) persisted {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read data file: %v", err)
	}
	var doc persisted
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode data file: %v\n%s", err, raw)
	}
	return doc
}

func TestE2EFlow(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "attendance_data.json")

	// Step 1: Register students
	t.Run("RegisterStudents", func(t *testing.T) {
		out := run(t, dataFile,
			"1", "S1", "Ada",
			"1", "S2", "Grace",
			"1", "S1", "Duplicate",
			"11",
		)
		if !strings.Contains(out, "Student with ID S1 already exists!") {
			t.Fatalf("duplicate not reported:\n%s", out)
		}
		doc := readData(t, dataFile)
		if len(doc.Students) != 2 || doc.Students["S1"].Name != "Ada" {
			t.Fatalf("unexpected roster %+v", doc.Students)
		}
	})

	// Step 2: Take attendance with a repeat and an invalid token
	t.Run("TakeAttendance", func(t *testing.T) {
		run(t, dataFile, "2", "2024-03-15", "r", "p", "?", "a", "11")

		day := readData(t, dataFile).AttendanceRecords["2024-03-15"]
		if len(day) != 2 || day["S1"].Status != "Present" || day["S2"].Status != "Absent" {
			t.Fatalf("unexpected day %+v", day)
		}
	})

	// Step 3: Decline overwrite leaves the file untouched
	t.Run("DeclineOverwrite", func(t *testing.T) {
		before, _ := os.ReadFile(dataFile)
		run(t, dataFile, "3", "2024-03-15", "n", "11")
		after, _ := os.ReadFile(dataFile)
		if !bytes.Equal(before, after) {
			t.Fatal("data file changed after declined overwrite")
		}
	})

	// Step 4: Summary and invalid date
	t.Run("Summary", func(t *testing.T) {
		out := run(t, dataFile, "6", "13/2024", "2024-03-15", "11")
		if !strings.Contains(out, "Invalid date format! Use YYYY-MM-DD") {
			t.Errorf("invalid date not rejected:\n%s", out)
		}
		if !strings.Contains(out, "Total students: 2. Present: 1. Absent: 1. Late: 0.") {
			t.Errorf("unexpected summary:\n%s", out)
		}
		if !strings.Contains(out, "Absent students are: Grace") {
			t.Errorf("absent list missing:\n%s", out)
		}
	})
}
