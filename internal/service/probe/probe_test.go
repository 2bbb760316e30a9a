package probe

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/hoffmann-muki/omnireduce-experiments/config"
)

const record = "time_only:1.0;time_with_barrier:2.0;\n"

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

func TestProbeRun(t *testing.T) {
	tests := []struct {
		name            string
		dir             string
		logs            map[string]string
		expectedWorkers int
		expectedStatus  string
		expectedMissing []int
		expectedRecords int
	}{
		{
			name:            "all workers reported",
			dir:             filepath.Join("node_2", "msgsize_8MiB"),
			logs:            map[string]string{"worker_1.log": record, "worker_2.log": record + record},
			expectedStatus:  StatusComplete,
			expectedRecords: 3,
		},
		{
			name:            "missing workers",
			dir:             filepath.Join("node_4", "msgsize_16MiB"),
			logs:            map[string]string{"worker_1.log": record, "worker_2.log": record},
			expectedStatus:  StatusPartial,
			expectedMissing: []int{3, 4},
			expectedRecords: 2,
		},
		{
			name:            "worker log without records",
			dir:             filepath.Join("node_2", "msgsize_8MiB"),
			logs:            map[string]string{"worker_1.log": record, "worker_2.log": "still warming up\n"},
			expectedStatus:  StatusPartial,
			expectedRecords: 1,
		},
		{
			name:            "no records at all",
			dir:             filepath.Join("node_1", "msgsize_4MiB"),
			logs:            map[string]string{"worker_1.log": "crashed\n"},
			expectedStatus:  StatusEmpty,
			expectedRecords: 0,
		},
		{
			name:            "unknown worker count cannot be partial",
			dir:             "adhoc-run",
			logs:            map[string]string{"worker_1.log": record},
			expectedStatus:  StatusComplete,
			expectedRecords: 1,
		},
		{
			name:            "configured count overrides the path",
			dir:             filepath.Join("node_2", "msgsize_8MiB"),
			logs:            map[string]string{"worker_1.log": record, "worker_2.log": record},
			expectedWorkers: 3,
			expectedStatus:  StatusPartial,
			expectedMissing: []int{3},
			expectedRecords: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), tt.dir)
			writeRunDir(t, dir, tt.logs)

			cfg := config.NewDefaultConfig()
			cfg.ExpectedWorkers = tt.expectedWorkers

			result := New(cfg).ProbeRun(dir)

			if result.Status != tt.expectedStatus {
				t.Errorf("Status = %s, expected %s", result.Status, tt.expectedStatus)
			}
			if result.RecordCount != tt.expectedRecords {
				t.Errorf("RecordCount = %d, expected %d", result.RecordCount, tt.expectedRecords)
			}
			if result.LogCount != len(tt.logs) {
				t.Errorf("LogCount = %d, expected %d", result.LogCount, len(tt.logs))
			}
			if len(tt.expectedMissing) > 0 && !reflect.DeepEqual(result.Missing, tt.expectedMissing) {
				t.Errorf("Missing = %v, expected %v", result.Missing, tt.expectedMissing)
			}
			if len(tt.expectedMissing) == 0 && len(result.Missing) != 0 {
				t.Errorf("Missing = %v, expected none", result.Missing)
			}
		})
	}
}

func TestDoProbe(t *testing.T) {
	root := t.TempDir()
	writeRunDir(t, filepath.Join(root, "node_2", "msgsize_8MiB"), map[string]string{
		"worker_1.log": record,
		"worker_2.log": record,
	})
	writeRunDir(t, filepath.Join(root, "node_4", "msgsize_16MiB"), map[string]string{
		"worker_1.log": record,
	})

	results, err := New(config.NewDefaultConfig()).DoProbe(root)
	if err != nil {
		t.Fatalf("DoProbe() error = %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("DoProbe() returned %d results, expected 2", len(results))
	}
	// Results come back sorted by directory.
	if results[0].Status != StatusComplete {
		t.Errorf("results[0].Status = %s, expected %s", results[0].Status, StatusComplete)
	}
	if results[1].Status != StatusPartial {
		t.Errorf("results[1].Status = %s, expected %s", results[1].Status, StatusPartial)
	}
	if !reflect.DeepEqual(results[1].Missing, []int{2, 3, 4}) {
		t.Errorf("results[1].Missing = %v, expected [2 3 4]", results[1].Missing)
	}
}

func TestDoProbeNoRuns(t *testing.T) {
	_, err := New(config.NewDefaultConfig()).DoProbe(t.TempDir())
	if err == nil {
		t.Fatal("DoProbe() error = nil, expected no worker logs error")
	}
	if !strings.Contains(err.Error(), "no worker logs found") {
		t.Errorf("DoProbe() error = %v, expected no worker logs found", err)
	}
}

func TestDoProbeAndGetSummary(t *testing.T) {
	root := t.TempDir()
	writeRunDir(t, filepath.Join(root, "node_2", "msgsize_8MiB"), map[string]string{
		"worker_1.log": record,
		"worker_2.log": record,
	})
	writeRunDir(t, filepath.Join(root, "node_2", "msgsize_16MiB"), map[string]string{
		"worker_1.log": "nothing yet\n",
	})

	summary, err := New(config.NewDefaultConfig()).DoProbeAndGetSummary(root)
	if err != nil {
		t.Fatalf("DoProbeAndGetSummary() error = %v", err)
	}

	if summary.CompleteRuns != 1 || summary.EmptyRuns != 1 {
		t.Errorf("counts = %d complete / %d empty, expected 1/1",
			summary.CompleteRuns, summary.EmptyRuns)
	}
	if summary.TotalRecords != 2 {
		t.Errorf("TotalRecords = %d, expected 2", summary.TotalRecords)
	}
	if summary.AllComplete {
		t.Error("AllComplete = true, expected false")
	}
	if summary.Root != root {
		t.Errorf("Root = %s, expected %s", summary.Root, root)
	}
}

func TestDoProbeAndGetSummaryAllComplete(t *testing.T) {
	root := t.TempDir()
	writeRunDir(t, filepath.Join(root, "node_1", "msgsize_4MiB"), map[string]string{
		"worker_1.log": record,
	})

	summary, err := New(config.NewDefaultConfig()).DoProbeAndGetSummary(root)
	if err != nil {
		t.Fatalf("DoProbeAndGetSummary() error = %v", err)
	}
	if !summary.AllComplete {
		t.Error("AllComplete = false, expected true")
	}
}
