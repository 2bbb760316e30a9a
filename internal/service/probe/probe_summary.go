package probe

import (
	"time"
)

// ProbeSummary aggregates run completeness for API responses.
type ProbeSummary struct {
	Timestamp    string        `json:"timestamp"`
	Root         string        `json:"root"`
	Results      []ProbeResult `json:"results"`
	CompleteRuns int           `json:"complete_runs"`
	PartialRuns  int           `json:"partial_runs"`
	EmptyRuns    int           `json:"empty_runs"`
	ErrorRuns    int           `json:"error_runs"`
	TotalRecords int           `json:"total_records"`
	AllComplete  bool          `json:"all_complete"`
}

func (p *Prober) DoProbeAndGetSummary(root string) (*ProbeSummary, error) {
	results, err := p.DoProbe(root)
	if err != nil {
		return nil, err
	}

	summary := &ProbeSummary{
		Timestamp: time.Now().Format("2006-01-02 15:04:05"),
		Root:      root,
		Results:   results,
	}

	for _, result := range results {
		switch result.Status {
		case StatusComplete:
			summary.CompleteRuns++
		case StatusPartial:
			summary.PartialRuns++
		case StatusEmpty:
			summary.EmptyRuns++
		case StatusError:
			summary.ErrorRuns++
		}
		summary.TotalRecords += result.RecordCount
	}

	summary.AllComplete = (summary.CompleteRuns == len(results))

	return summary, nil
}
