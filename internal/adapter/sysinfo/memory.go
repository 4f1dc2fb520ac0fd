package sysinfo

import (
	"os"
	"runtime"
	"strconv"
	"strings"
)

// ResidentMemoryKB samples the process resident set size in kilobytes.
// On Linux it reads the second field of /proc/self/statm (resident pages)
// and multiplies by the page size. Elsewhere it falls back to the Go
// runtime's view of memory obtained from the OS.
func ResidentMemoryKB() uint64 {
	if kb, ok := statmResidentKB(); ok {
		return kb
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Sys / 1024
}

func statmResidentKB() (uint64, bool) {
	data, err := os.ReadFile("/proc/self/statm")
	if err != nil {
		return 0, false
	}

	fields := strings.Fields(string(data))
	if len(fields) < 2 {
		return 0, false
	}

	pages, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0, false
	}

	pageKB := uint64(os.Getpagesize()) / 1024
	return pages * pageKB, true
}
