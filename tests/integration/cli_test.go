//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestCLI runs CLI commands and returns output for testing
type TestCLI struct {
	t       *testing.T
	dataDir string
	binPath string
	env     []string
}

// NewTestCLI creates a new test CLI instance
func NewTestCLI(t *testing.T) *TestCLI {
	t.Helper()

	tempDir := TestTempDir(t)
	dataDir := SetupTestEnvironment(t)

	// Build the binary for testing
	binPath := filepath.Join(tempDir, "qd")
	cmd := exec.Command("go", "build", "-o", binPath, "../../cmd/qd")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build test binary: %v\n%s", err, out)
	}

	env := []string{
		fmt.Sprintf("QEYDAR_DATA_DIR=%s", dataDir),
		"HOME=" + tempDir, // Prevent reading from actual home directory
	}

	return &TestCLI{
		t:       t,
		dataDir: dataDir,
		binPath: binPath,
		env:     env,
	}
}

// Run executes a CLI command with given arguments
func (tc *TestCLI) Run(args ...string) (stdout, stderr string, err error) {
	tc.t.Helper()

	cmd := exec.Command(tc.binPath, args...)
	cmd.Env = append(os.Environ(), tc.env...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err = cmd.Run()

	return stdoutBuf.String(), stderrBuf.String(), err
}

// RunExpectSuccess runs a command and expects it to succeed
func (tc *TestCLI) RunExpectSuccess(args ...string) string {
	tc.t.Helper()

	stdout, stderr, err := tc.Run(args...)
	if err != nil {
		tc.t.Logf("Command failed: %s %v", strings.Join(args, " "), err)
		tc.t.Logf("STDOUT: %s", stdout)
		tc.t.Logf("STDERR: %s", stderr)
		tc.t.Fatalf("Expected command to succeed, but it failed")
	}

	return stdout
}

// RunExpectFailure runs a command and expects it to fail
func (tc *TestCLI) RunExpectFailure(args ...string) (stdout, stderr string) {
	tc.t.Helper()

	stdout, stderr, err := tc.Run(args...)
	if err == nil {
		tc.t.Logf("STDOUT: %s", stdout)
		tc.t.Fatalf("Expected command to fail, but it succeeded")
	}

	return stdout, stderr
}

// TestCLI_TodayRoundTrip checks that today in Jalali converts to today in Gregorian
func TestCLI_TodayRoundTrip(t *testing.T) {
	cli := NewTestCLI(t)

	gregorian := strings.TrimSpace(cli.RunExpectSuccess("today", "--calendar", "gregorian", "--format", "yyyy-MM-dd"))
	if want := time.Now().Format("2006-01-02"); gregorian != want {
		t.Skipf("clock moved past midnight: got %s, want %s", gregorian, want)
	}

	jalali := strings.TrimSpace(cli.RunExpectSuccess("today"))
	converted := strings.TrimSpace(cli.RunExpectSuccess("convert", jalali, "--to-format", "yyyy-MM-dd"))
	if converted != gregorian {
		t.Errorf("Expected %s to convert to %s, got %s", jalali, gregorian, converted)
	}
}

// TestCLI_Convert tests conversion between calendars
func TestCLI_Convert(t *testing.T) {
	cli := NewTestCLI(t)

	output := cli.RunExpectSuccess("convert", "1403/02/11")
	if strings.TrimSpace(output) != "2024/04/30" {
		t.Errorf("Expected 2024/04/30, got %q", output)
	}

	output = cli.RunExpectSuccess("convert", "2024-03-20", "--from", "gregorian", "--to", "jalali", "--format", "yyyy-MM-dd")
	if strings.TrimSpace(output) != "1403-01-01" {
		t.Errorf("Expected 1403-01-01, got %q", output)
	}

	cli.RunExpectFailure("convert", "1403/13/01")
}

// TestCLI_CorrectAndHistory tests that corrections are recorded
func TestCLI_CorrectAndHistory(t *testing.T) {
	cli := NewTestCLI(t)

	output := cli.RunExpectSuccess("correct", "1403/02/20")
	if strings.TrimSpace(output) != "1403/02/20" {
		t.Errorf("Expected 1403/02/20, got %q", output)
	}
	cli.RunExpectSuccess("correct", "2024/05/01", "2024/05/10", "--calendar", "gregorian", "--mode", "range")

	output = cli.RunExpectSuccess("history", "--json")
	var entries []map[string]any
	if err := json.Unmarshal([]byte(output), &entries); err != nil {
		t.Fatalf("Failed to decode history: %v\n%s", err, output)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 history entries, got %d", len(entries))
	}
	if entries[0]["start"] != "2024/05/01" || entries[0]["end"] != "2024/05/10" {
		t.Errorf("Expected newest entry to be the range, got %v", entries[0])
	}

	if _, err := os.Stat(filepath.Join(cli.dataDir, "qeydar.db")); err != nil {
		t.Errorf("Expected database in data dir: %v", err)
	}

	output = cli.RunExpectSuccess("history", "--clear")
	if !strings.Contains(output, "Cleared 2 emissions") {
		t.Errorf("Expected clear confirmation, got %q", output)
	}
}

// TestCLI_ConfigShow tests reading a hand written settings file
func TestCLI_ConfigShow(t *testing.T) {
	cli := NewTestCLI(t)

	WriteSettingsFile(t, cli.dataDir, "calendar: georgian\nmode: month\nformat: yyyy-MM-dd\n")
	output := cli.RunExpectSuccess("config", "show")
	if !strings.Contains(output, "mode: month") {
		t.Errorf("Expected settings in output, got: %s", output)
	}

	WriteSettingsFile(t, cli.dataDir, "calendar: mayan\n")
	cli.RunExpectFailure("config", "show")
}

// TestCLI_Help tests that help commands work properly
func TestCLI_Help(t *testing.T) {
	cli := NewTestCLI(t)

	output := cli.RunExpectSuccess("--help")

	if !strings.Contains(output, "Jalali and Gregorian") {
		t.Errorf("Expected help to contain app description, got: %s", output)
	}

	for _, sub := range []string{"today", "convert", "correct", "history", "configure", "config"} {
		if !strings.Contains(output, sub) {
			t.Errorf("Expected help to list %s command, got: %s", sub, output)
		}
	}
}

// TestCLI_InvalidCommand tests that invalid commands fail properly
func TestCLI_InvalidCommand(t *testing.T) {
	cli := NewTestCLI(t)

	_, stderr := cli.RunExpectFailure("invalid-command")
	if !strings.Contains(stderr, "unknown") {
		t.Errorf("Expected unknown command error, got: %s", stderr)
	}
}
