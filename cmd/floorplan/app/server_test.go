/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewFloorplanCommand(&out)
	cmd.SetArgs(args)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	reportPath := filepath.Join(dir, "report.json")

	out, err := execute(t, "run", "--seed=3", "--generations=5", "--output", reportPath)
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, out)
	}
	for _, want := range []string{"Best floorplan (seed 3", "Register File", "fitness"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
	// the layout is printed as 25 grid rows
	if got := strings.Count(out, "\n"); got < 25 {
		t.Errorf("Expected the layout in the output, got %d lines", got)
	}
	if _, err := os.Stat(reportPath); err != nil {
		t.Errorf("Expected report file: %v", err)
	}
}

func TestRunCommandInvalidFlags(t *testing.T) {
	if _, err := execute(t, "run", "--selection=lottery"); err == nil {
		t.Errorf("Expected error for unknown selection")
	}
	if _, err := execute(t, "run", "--config", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("Expected error for missing configuration file")
	}
}

func TestBenchmarkCommand(t *testing.T) {
	out, err := execute(t, "benchmark", "two-block", "processor", "--output-dir=", "--generations=3", "--population=8", "--seed=1")
	if err != nil {
		t.Fatalf("benchmark failed: %v\n%s", err, out)
	}
	for _, want := range []string{"SCENARIO", "two-block", "processor"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}

	if _, err := execute(t, "benchmark", "tetris", "--output-dir="); err == nil {
		t.Errorf("Expected error for unknown scenario")
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, "floorplan version:") || !strings.Contains(out, "goVersion") {
		t.Errorf("Unexpected version output: %s", out)
	}
}
