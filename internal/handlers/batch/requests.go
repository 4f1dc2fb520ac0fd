package batch

import "gitlab.com/hashburst.net/internal/domain"

// ProcessRequest represents a request to run one batch invocation.
// Count is a pointer so a missing field is distinguishable from zero.
type ProcessRequest struct {
	Count *int   `json:"count"`
	Mode  string `json:"mode"`
}

// ProcessResponse represents the per-invocation metrics returned to the caller
type ProcessResponse struct {
	Processed    int     `json:"processed"`
	DurationMs   int64   `json:"duration_ms"`
	Mode         string  `json:"mode"`
	Workers      int     `json:"workers"`
	DetectedCPUs int     `json:"detected_cpus"`
	AvgMsPerItem float64 `json:"avg_ms_per_item"`
	MemoryUsedKB uint64  `json:"memory_used_kb"`
	ThreadsUsed  int     `json:"threads_used"`
}

func newProcessResponse(m domain.BatchMetrics) ProcessResponse {
	return ProcessResponse{
		Processed:    m.Processed,
		DurationMs:   m.DurationMs,
		Mode:         string(m.Mode),
		Workers:      m.Workers,
		DetectedCPUs: m.DetectedCPUs,
		AvgMsPerItem: m.AvgMsPerItem,
		MemoryUsedKB: m.MemoryUsedKB,
		ThreadsUsed:  m.ThreadsUsed,
	}
}

// HealthResponse reports the resolved pool configuration
type HealthResponse struct {
	Status       string `json:"status"`
	Workers      int    `json:"workers"`
	DetectedCPUs int    `json:"detected_cpus"`
}
