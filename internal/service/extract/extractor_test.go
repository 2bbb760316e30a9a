package extract

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeRunDir(t *testing.T, dir string, logs map[string]string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create run dir: %v", err)
	}
	for name, content := range logs {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
}

func TestDoExtract(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "node_4", "msgsize_16MiB")
	writeRunDir(t, dir, map[string]string{
		"worker_1.log": "time_only:1.0;time_with_barrier:2.0;\n",
		"worker_2.log": "time_only:3.0;time_with_barrier:4.0;\n",
	})

	summary, err := New().DoExtract(dir)
	if err != nil {
		t.Fatalf("DoExtract() error = %v", err)
	}

	expected := "4,16,1.0,3.0,2.0,1.4,2.0,4.0,3.0,1.4"
	if summary.CSVLine != expected {
		t.Errorf("CSVLine = %q, expected %q", summary.CSVLine, expected)
	}
	if summary.LogCount != 2 {
		t.Errorf("LogCount = %d, expected 2", summary.LogCount)
	}
	if summary.TimeOnly.Count != 2 || summary.TimeWithBarrier.Count != 2 {
		t.Errorf("record counts = %d/%d, expected 2/2",
			summary.TimeOnly.Count, summary.TimeWithBarrier.Count)
	}
	if summary.Params.NodeCount == nil || *summary.Params.NodeCount != 4 {
		t.Errorf("NodeCount = %v, expected 4", summary.Params.NodeCount)
	}
	if summary.Params.MsgSizeMiB == nil || *summary.Params.MsgSizeMiB != 16 {
		t.Errorf("MsgSizeMiB = %v, expected 16", summary.Params.MsgSizeMiB)
	}
}

func TestDoExtractPoolsAcrossFiles(t *testing.T) {
	// Pooled min/max must not depend on how records are spread over files.
	dir := filepath.Join(t.TempDir(), "node_2", "msgsize_8MiB")
	writeRunDir(t, dir, map[string]string{
		"worker_0.log": "time_only:9.0;time_with_barrier:9.5;\ntime_only:1.0;time_with_barrier:1.5;\n",
		"worker_1.log": "time_only:5.0;time_with_barrier:5.5;\n",
	})

	summary, err := New().DoExtract(dir)
	if err != nil {
		t.Fatalf("DoExtract() error = %v", err)
	}

	if summary.TimeOnly.Min != 1.0 || summary.TimeOnly.Max != 9.0 {
		t.Errorf("time_only min/max = %v/%v, expected 1.0/9.0",
			summary.TimeOnly.Min, summary.TimeOnly.Max)
	}
	if summary.TimeWithBarrier.Min != 1.5 || summary.TimeWithBarrier.Max != 9.5 {
		t.Errorf("time_with_barrier min/max = %v/%v, expected 1.5/9.5",
			summary.TimeWithBarrier.Min, summary.TimeWithBarrier.Max)
	}
}

func TestDoExtractSingleRecord(t *testing.T) {
	// One record means stddev exactly 0.0 for both metrics.
	dir := filepath.Join(t.TempDir(), "node_1", "msgsize_4MiB")
	writeRunDir(t, dir, map[string]string{
		"worker_0.log": "time_only:2.0;time_with_barrier:3.0;\n",
	})

	summary, err := New().DoExtract(dir)
	if err != nil {
		t.Fatalf("DoExtract() error = %v", err)
	}

	expected := "1,4,2.0,2.0,2.0,0.0,3.0,3.0,3.0,0.0"
	if summary.CSVLine != expected {
		t.Errorf("CSVLine = %q, expected %q", summary.CSVLine, expected)
	}
}

func TestDoExtractUnsetParams(t *testing.T) {
	// A path without the naming convention still succeeds; the unset
	// parameters render as NA.
	dir := filepath.Join(t.TempDir(), "somewhere")
	writeRunDir(t, dir, map[string]string{
		"worker_0.log": "time_only:1.0;time_with_barrier:2.0;\n",
	})

	summary, err := New().DoExtract(dir)
	if err != nil {
		t.Fatalf("DoExtract() error = %v", err)
	}

	expected := "NA,NA,1.0,1.0,1.0,0.0,2.0,2.0,2.0,0.0"
	if summary.CSVLine != expected {
		t.Errorf("CSVLine = %q, expected %q", summary.CSVLine, expected)
	}
}

func TestDoExtractNoWorkerLogs(t *testing.T) {
	dir := t.TempDir()

	_, err := New().DoExtract(dir)
	if !errors.Is(err, ErrNoWorkerLogs) {
		t.Errorf("DoExtract() error = %v, expected ErrNoWorkerLogs", err)
	}
}

func TestDoExtractNoTimings(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "node_4", "msgsize_16MiB")
	writeRunDir(t, dir, map[string]string{
		"worker_0.log": "benchmark starting\nno records here\n",
	})

	_, err := New().DoExtract(dir)
	if !errors.Is(err, ErrNoTimings) {
		t.Errorf("DoExtract() error = %v, expected ErrNoTimings", err)
	}
}

func TestDoExtractMalformedLinesSkipped(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "node_2", "msgsize_32MiB")
	writeRunDir(t, dir, map[string]string{
		"worker_0.log": "time_only:bad;time_with_barrier:2.0;\n" +
			"time_only:1.0;time_with_barrier:2.0;\n" +
			"time_only:3.0;time_with_barrier:4.0;\n",
	})

	summary, err := New().DoExtract(dir)
	if err != nil {
		t.Fatalf("DoExtract() error = %v", err)
	}

	// The malformed first line contributes to neither metric.
	if summary.TimeOnly.Count != 2 || summary.TimeWithBarrier.Count != 2 {
		t.Errorf("record counts = %d/%d, expected 2/2",
			summary.TimeOnly.Count, summary.TimeWithBarrier.Count)
	}
}

func TestDoExtractIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "node_4", "msgsize_16MiB")
	writeRunDir(t, dir, map[string]string{
		"worker_1.log": "time_only:1.0;time_with_barrier:2.0;\n",
		"worker_2.log": "time_only:3.0;time_with_barrier:4.0;\n",
	})

	e := New()
	first, err := e.DoExtract(dir)
	if err != nil {
		t.Fatalf("DoExtract() error = %v", err)
	}
	second, err := e.DoExtract(dir)
	if err != nil {
		t.Fatalf("DoExtract() error = %v", err)
	}

	if first.CSVLine != second.CSVLine {
		t.Errorf("repeated runs differ: %q vs %q", first.CSVLine, second.CSVLine)
	}
}
