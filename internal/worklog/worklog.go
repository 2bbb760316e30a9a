// Package worklog locates benchmark worker logs and pulls the timing
// records out of them. Workers append one record per measured
// iteration in the form:
//
//	time_only:<float>;time_with_barrier:<float>;
//
// Everything else on a line is noise from the worker's stdout capture.
package worklog

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// FilePattern matches the per-worker log files inside a result directory.
const FilePattern = "worker_*.log"

var timingPattern = regexp.MustCompile(`time_only:([0-9.e+-]+);time_with_barrier:([0-9.e+-]+);`)

// Discover lists the worker logs directly inside dir, sorted by
// filename so aggregation order is deterministic. It does not recurse.
func Discover(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, FilePattern))
	if err != nil {
		return nil, fmt.Errorf("failed to list worker logs in '%s': %w", dir, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// DiscoverRuns walks root and returns every directory that directly holds
// at least one worker log, in lexicographic order.
func DiscoverRuns(root string) ([]string, error) {
	var runs []string

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		logs, err := Discover(path)
		if err != nil {
			return err
		}
		if len(logs) > 0 {
			runs = append(runs, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk results root: %w", err)
	}

	sort.Strings(runs)
	return runs, nil
}

// WorkerIndex parses the worker number out of a log filename such as
// worker_3.log. ok is false when the name does not carry one.
func WorkerIndex(path string) (int, bool) {
	name := filepath.Base(path)
	if !strings.HasPrefix(name, "worker_") || !strings.HasSuffix(name, ".log") {
		return 0, false
	}
	idx, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, "worker_"), ".log"))
	if err != nil {
		return 0, false
	}
	return idx, true
}

// ExtractFile scans one worker log and returns the two timing
// sequences in line order. A missing file yields empty sequences, not
// an error: workers may not have written their log yet. Lines that do
// not carry a well-formed record are skipped; a line whose numbers do
// not parse contributes neither value.
func ExtractFile(path string) (timeOnly, timeWithBarrier []float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to open worker log '%s': %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.Contains(line, "time_only:") || !strings.Contains(line, "time_with_barrier:") {
			continue
		}

		match := timingPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		only, err1 := strconv.ParseFloat(match[1], 64)
		barrier, err2 := strconv.ParseFloat(match[2], 64)
		if err1 != nil || err2 != nil {
			continue
		}

		timeOnly = append(timeOnly, only)
		timeWithBarrier = append(timeWithBarrier, barrier)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read worker log '%s': %w", path, err)
	}

	return timeOnly, timeWithBarrier, nil
}
