package config

import (
	"os"
	"runtime"
	"strconv"
)

// WorkerPoolConfig holds the resolved worker-pool sizing for the process.
// Resolved once at cold start; every invocation observes the same values.
type WorkerPoolConfig struct {
	Workers      int
	DetectedCPUs int
}

// NewWorkerPoolConfig resolves the worker count from the WORKER_COUNT
// environment variable, clamped to [1, detected logical CPUs]. Absent or
// unparseable values fall back to the detected CPU count.
func NewWorkerPoolConfig() *WorkerPoolConfig {
	detected := runtime.NumCPU()
	workers := detected

	raw := os.Getenv("WORKER_COUNT")
	if raw != "" {
		override, err := strconv.Atoi(raw)
		if err == nil && override > 0 {
			workers = override
		}
	}

	if workers > detected {
		workers = detected
	}
	if workers < 1 {
		workers = 1
	}

	return &WorkerPoolConfig{
		Workers:      workers,
		DetectedCPUs: detected,
	}
}
