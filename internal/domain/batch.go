package domain

// Mode represents the execution mode of a batch
type Mode string

const (
	ModeParallel   Mode = "parallel"
	ModeSequential Mode = "sequential"
	ModeAuto       Mode = "auto"
)

// ValidatedJob is an immutable batch description that has passed validation
type ValidatedJob struct {
	Count int
	Mode  Mode
}

// ItemResult holds the outcome for a single work item index
type ItemResult struct {
	Index int
	Hash  string
	Err   error
}

// BatchMetrics holds the per-invocation measurements assembled after a batch completes
type BatchMetrics struct {
	Processed    int
	DurationMs   int64
	Mode         Mode
	Workers      int
	DetectedCPUs int
	AvgMsPerItem float64
	MemoryUsedKB uint64
	ThreadsUsed  int
}

// BatchReport bundles the ordered per-index results with the invocation metrics
type BatchReport struct {
	Results []ItemResult
	Metrics BatchMetrics
}

// FailedIndices returns the indices whose compute step failed, in index order
func (r *BatchReport) FailedIndices() []int {
	var failed []int
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res.Index)
		}
	}
	return failed
}
