// Package main provides a performance benchmarking tool for the voltview CLI.
// It generates synthetic telemetry datasets of increasing size in every source
// format, runs the read-heavy commands against each one several times, treats
// the first successful run as cold and averages the rest as warm, and writes
// CSV output for performance analysis and documentation.
//
// Prerequisites:
// - voltview binary installed and available in PATH
//
// Usage: go run ./benchmark [work-dir]
//
//	work-dir: Directory the synthetic datasets are written to
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/huangsam/voltview/internal/parquet"
	"github.com/huangsam/voltview/schema"
	"github.com/klauspost/compress/zstd"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset  string
	Format   string
	Command  string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir string
	Timeout time.Duration
	Runs    int
	Sizes   map[string]int
	Formats []string
}

// commands lists the CLI invocations measured per dataset.
var commands = map[string][]string{
	"corr":   {"corr", "--output", "csv"},
	"export": {"export", "--output", "csv", "--output-file", os.DevNull},
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir: os.Args[1],
		Timeout: 5 * time.Minute,
		Runs:    4,
		Sizes: map[string]int{
			"day":   24 * 60,
			"month": 30 * 24 * 60,
			"year":  365 * 24 * 60,
		},
		Formats: []string{"json", "json.zst", "parquet"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the voltview binary exists and the work dir is writable
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("voltview"); err != nil {
		return fmt.Errorf("voltview binary not found in PATH")
	}
	return os.MkdirAll(config.WorkDir, 0o755)
}

// runBenchmarks generates every dataset and measures every command against it
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d sizes, %d formats, %v timeout, %d runs\n",
		len(config.Sizes), len(config.Formats), config.Timeout, config.Runs)

	for _, dataset := range []string{"day", "month", "year"} {
		records := syntheticTelemetry(config.Sizes[dataset])
		for _, format := range config.Formats {
			path := filepath.Join(config.WorkDir, dataset+"."+format)
			fmt.Printf("Writing %s (%d records)\n", path, len(records))
			if err := writeDataset(path, format, records); err != nil {
				fmt.Printf("  skipped: %v\n", err)
				continue
			}
			for _, command := range []string{"corr", "export"} {
				results = append(results, runBenchmarkSuite(config, dataset, format, path, command))
			}
		}
	}

	return results
}

// runBenchmarkSuite runs one command against one dataset several times
func runBenchmarkSuite(config BenchmarkConfig, dataset, format, path, command string) BenchmarkResult {
	fmt.Printf("Running %s on %s (%s)\n", command, dataset, format)

	cold, warm := runBenchmark(config, path, format, command)

	coldTime := "TIMEOUT"
	if cold > 0 {
		coldTime = fmt.Sprintf("%.3fs", cold)
	}
	warmAvg := "TIMEOUT"
	if len(warm) > 0 {
		var sum float64
		for _, t := range warm {
			sum += t
		}
		warmAvg = fmt.Sprintf("%.3fs", sum/float64(len(warm)))
	}

	fmt.Printf("  Cold time: %s, Warm average: %s\n", coldTime, warmAvg)

	return BenchmarkResult{
		Dataset:  dataset,
		Format:   format,
		Command:  command,
		ColdTime: coldTime,
		WarmTime: warmAvg,
	}
}

// runBenchmark executes a voltview command multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, path, format, command string) (coldTime float64, warmTimes []float64) {
	backend := "file"
	if format == "parquet" {
		backend = "parquet"
	}
	args := append([]string{}, commands[command]...)
	args = append(args, "--source", path, "--source-backend", backend, "--year", "2023", "--timezone", "UTC")

	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("voltview", args...)

		done := make(chan error, 1)
		go func() {
			done <- cmd.Run()
		}()

		select {
		case err := <-done:
			if err == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// syntheticTelemetry produces one record per minute from the start of 2023.
func syntheticTelemetry(n int) []schema.Record {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	records := make([]schema.Record, 0, n)
	for i := range n {
		phase := 2 * math.Pi * float64(i%1440) / 1440
		v := 120 + 6*math.Sin(phase)
		c := 2 + math.Cos(phase)
		records = append(records, schema.Record{
			schema.TimestampField:      start.Add(time.Duration(i) * time.Minute).Format(schema.TimestampLayout),
			"voltaje":                  v,
			"corriente":                c,
			"potencia":                 v * c,
			"frecuencia":               60.0,
			"energia":                  float64(i) / 60,
			"ESP32_temp":               40 + 5*math.Sin(phase/2),
			"fp":                       0.95,
			"consumo":                  v * c / 1000,
			schema.WorkstationCPUField: 30 + 10*math.Sin(phase),
			schema.WorkstationGPUField: 80.0,
			schema.WorkstationRAMField: 5.0,
		})
	}
	return records
}

// writeDataset stores records at path in the given source format
func writeDataset(path, format string, records []schema.Record) error {
	if format == "parquet" {
		return parquet.WriteTelemetryParquet(parquet.FromRecords(records), path)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	if format == "json.zst" {
		enc, err := zstd.NewWriter(file)
		if err != nil {
			return err
		}
		if err := json.NewEncoder(enc).Encode(records); err != nil {
			_ = enc.Close()
			return err
		}
		return enc.Close()
	}
	return json.NewEncoder(file).Encode(records)
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/voltview_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"dataset", "format", "cmd", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range results {
		if err := writer.Write([]string{r.Dataset, r.Format, r.Command, r.ColdTime, r.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, command := range []string{"corr", "export"} {
		fmt.Printf("%s:\n", command)
		for _, r := range results {
			if r.Command == command {
				fmt.Printf("  %-6s %-9s: Cold: %s, Warm: %s\n", r.Dataset, r.Format, r.ColdTime, r.WarmTime)
			}
		}
	}
}
