package main

// Local benchmark client for the batch compute service. Drives /api/process
// across mode and count combinations and summarizes the measured speedup.

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"
)

var (
	bold  = color.New(color.Bold)
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
)

type processRequest struct {
	Count int    `json:"count"`
	Mode  string `json:"mode"`
}

type processResponse struct {
	Processed    int     `json:"processed"`
	DurationMs   int64   `json:"duration_ms"`
	Mode         string  `json:"mode"`
	Workers      int     `json:"workers"`
	DetectedCPUs int     `json:"detected_cpus"`
	AvgMsPerItem float64 `json:"avg_ms_per_item"`
	MemoryUsedKB uint64  `json:"memory_used_kb"`
	ThreadsUsed  int     `json:"threads_used"`
}

type benchResult struct {
	mode         string
	count        int
	avgDuration  float64
	avgMsPerItem float64
	threadsUsed  int
	workers      int
}

func main() {
	url := flag.String("url", "http://localhost:8080/api/process", "endpoint of the batch compute service")
	countsFlag := flag.String("counts", "10,100,500", "comma-separated item counts")
	modesFlag := flag.String("modes", "sequential,parallel", "comma-separated execution modes")
	trials := flag.Int("trials", 3, "trials per combination, averaged")
	flag.Parse()

	counts, err := parseCounts(*countsFlag)
	if err != nil {
		red.Printf("Invalid -counts: %v\n", err)
		os.Exit(1)
	}
	modes := strings.Split(*modesFlag, ",")

	bold.Println("Running batch compute benchmark...")
	fmt.Println()

	bar := progressbar.NewOptions(len(modes)*len(counts)*(*trials),
		progressbar.OptionSetDescription("Benchmarking"),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionEnableColorCodes(true),
	)

	client := &http.Client{Timeout: 120 * time.Second}

	results := make([]benchResult, 0, len(modes)*len(counts))
	for _, mode := range modes {
		for _, count := range counts {
			bar.Describe(fmt.Sprintf("Testing: %s x%d", mode, count))

			var totalDuration int64
			var totalAvg float64
			var last processResponse
			for t := 0; t < *trials; t++ {
				resp, err := invoke(client, *url, processRequest{Count: count, Mode: mode})
				if err != nil {
					fmt.Println()
					red.Printf("Request failed (mode=%s count=%d): %v\n", mode, count, err)
					os.Exit(1)
				}
				totalDuration += resp.DurationMs
				totalAvg += resp.AvgMsPerItem
				last = resp
				_ = bar.Add(1)
			}

			results = append(results, benchResult{
				mode:         mode,
				count:        count,
				avgDuration:  float64(totalDuration) / float64(*trials),
				avgMsPerItem: totalAvg / float64(*trials),
				threadsUsed:  last.ThreadsUsed,
				workers:      last.Workers,
			})
		}
	}

	fmt.Println()
	fmt.Println()
	renderResults(results)
}

func invoke(client *http.Client, url string, req processRequest) (processResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return processResponse{}, err
	}

	httpResp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return processResponse{}, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return processResponse{}, fmt.Errorf("unexpected status %d", httpResp.StatusCode)
	}

	var resp processResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return processResponse{}, err
	}
	return resp, nil
}

func renderResults(results []benchResult) {
	bold.Println("RESULTS")

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Mode", "Count", "Avg Duration", "Avg ms/item", "Threads", "Workers", "vs Sequential")

	for _, r := range results {
		_ = table.Append(
			r.mode,
			strconv.Itoa(r.count),
			fmt.Sprintf("%.0f ms", r.avgDuration),
			fmt.Sprintf("%.2f", r.avgMsPerItem),
			strconv.Itoa(r.threadsUsed),
			strconv.Itoa(r.workers),
			speedupStr(results, r),
		)
	}

	if err := table.Render(); err != nil {
		red.Println("Error rendering results table")
	}
}

// speedupStr compares a result against the sequential run with the same
// count, when one is present.
func speedupStr(results []benchResult, r benchResult) string {
	if r.mode == "sequential" {
		return "baseline"
	}
	for _, base := range results {
		if base.mode == "sequential" && base.count == r.count && r.avgDuration > 0 {
			return green.Sprintf("%.2fx", base.avgDuration/r.avgDuration)
		}
	}
	return "-"
}

func parseCounts(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	counts := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		counts = append(counts, n)
	}
	return counts, nil
}
