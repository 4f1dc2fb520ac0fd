package config

import (
	"runtime"
	"strconv"
	"testing"
)

func TestNewWorkerPoolConfig_Default(t *testing.T) {
	t.Setenv("WORKER_COUNT", "")

	cfg := NewWorkerPoolConfig()
	if cfg.Workers != runtime.NumCPU() {
		t.Errorf("expected workers = detected CPUs (%d), got %d", runtime.NumCPU(), cfg.Workers)
	}
	if cfg.DetectedCPUs != runtime.NumCPU() {
		t.Errorf("expected detected CPUs %d, got %d", runtime.NumCPU(), cfg.DetectedCPUs)
	}
	if cfg.Workers < 1 {
		t.Fatalf("worker count must never be below 1, got %d", cfg.Workers)
	}
}

func TestNewWorkerPoolConfig_Override(t *testing.T) {
	t.Setenv("WORKER_COUNT", "1")

	cfg := NewWorkerPoolConfig()
	if cfg.Workers != 1 {
		t.Errorf("expected override of 1 worker, got %d", cfg.Workers)
	}
}

func TestNewWorkerPoolConfig_OverrideClampedToDetected(t *testing.T) {
	t.Setenv("WORKER_COUNT", strconv.Itoa(runtime.NumCPU()*4))

	cfg := NewWorkerPoolConfig()
	if cfg.Workers != runtime.NumCPU() {
		t.Errorf("expected clamp to detected CPUs (%d), got %d", runtime.NumCPU(), cfg.Workers)
	}
}

func TestNewWorkerPoolConfig_InvalidOverride(t *testing.T) {
	for _, raw := range []string{"abc", "-3", "0", "2.5"} {
		t.Setenv("WORKER_COUNT", raw)

		cfg := NewWorkerPoolConfig()
		if cfg.Workers != runtime.NumCPU() {
			t.Errorf("override %q: expected fallback to detected CPUs (%d), got %d", raw, runtime.NumCPU(), cfg.Workers)
		}
	}
}
