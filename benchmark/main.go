// Package main provides a performance benchmarking tool for the secpulse CLI.
// It measures execution times across commands and output formats, running each
// test multiple times and averaging the runs, generating CSV output for
// performance analysis and documentation.
//
// Prerequisites:
// - secpulse binary installed and available in PATH
//
// Usage: go run benchmark/main.go [output-dir]
//
//	output-dir: Directory for benchmark artifacts and the results CSV
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the averaged timing for one command.
type BenchmarkResult struct {
	Command  string
	Format   string
	AvgTime  string
	BestTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	OutputDir string
	Timeout   time.Duration
	Runs      int
}

// calculatorInputs are complete input files, one per calculator.
var calculatorInputs = map[string]string{
	"alerts": `{"totalAlerts":"1200","truePositives":"400","falsePositives":"600",
		"escalated":"120","avgTriageMinutes":"18"}`,
	"incidents": `{"created":"60","resolved":"45","critical":"5","high":"12","medium":"20","low":"23",
		"detectHours":"10","respondHours":"30","containHours":"50","recoverHours":"120"}`,
	"coverage": `{"totalEndpoints":"2500","monitoredEndpoints":"2300","edrDeployed":"2100",
		"patchCompliance":"87","mfaCoverage":"93"}`,
	"cost": `{"annualBudget":"2000000","toolingCost":"700000","staffCost":"900000",
		"incidentsPrevented":"25","avgIncidentCost":"180000"}`,
}

func main() {
	outputDir := "."
	if len(os.Args) == 2 {
		outputDir = os.Args[1]
	}

	config := BenchmarkConfig{
		OutputDir: outputDir,
		Timeout:   time.Minute,
		Runs:      5,
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(config, results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies the secpulse binary and output directory exist.
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("secpulse"); err != nil {
		return fmt.Errorf("secpulse binary not found in PATH")
	}
	if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("output directory %s is not writable: %w", config.OutputDir, err)
	}
	return nil
}

// runBenchmarks executes all benchmark tests across calculators and formats.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d runs per command, %v timeout\n", config.Runs, config.Timeout)

	for name, inputs := range calculatorInputs {
		inputPath := filepath.Join(config.OutputDir, name+"-inputs.json")
		if err := os.WriteFile(inputPath, []byte(inputs), 0o644); err != nil {
			fmt.Printf("Skipping %s: %v\n", name, err)
			continue
		}

		for _, format := range []string{"text", "csv", "json"} {
			desc := fmt.Sprintf("calc %s (%s)", name, format)
			fmt.Printf("Running %s\n", desc)
			result := benchmarkCommand(config, desc, format,
				"calc", name, "--input", inputPath, "--output", format, "--history-backend", "none")
			results = append(results, result)
		}
	}

	fmt.Println("Running catalog")
	results = append(results, benchmarkCommand(config, "catalog", "text", "catalog"))

	return results
}

// benchmarkCommand runs one command repeatedly and averages the wall times.
func benchmarkCommand(config BenchmarkConfig, description, format string, args ...string) BenchmarkResult {
	var times []float64
	for i := 0; i < config.Runs; i++ {
		elapsed, err := timedRun(config.Timeout, args...)
		if err != nil {
			fmt.Printf("  run %d failed: %v\n", i+1, err)
			continue
		}
		times = append(times, elapsed)
	}

	avg, best := "TIMEOUT", "TIMEOUT"
	if len(times) > 0 {
		var sum float64
		min := times[0]
		for _, t := range times {
			sum += t
			if t < min {
				min = t
			}
		}
		avg = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		best = fmt.Sprintf("%.3fs", min)
	}
	fmt.Printf("  Average: %s, Best: %s\n", avg, best)

	return BenchmarkResult{
		Command:  description,
		Format:   format,
		AvgTime:  avg,
		BestTime: best,
	}
}

// timedRun executes one secpulse invocation and returns its wall time in seconds.
func timedRun(timeout time.Duration, args ...string) (float64, error) {
	cmd := exec.Command("secpulse", args...)
	start := time.Now()

	done := make(chan error, 1)
	if err := cmd.Start(); err != nil {
		return 0, err
	}
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			return 0, err
		}
		return time.Since(start).Seconds(), nil
	case <-time.After(timeout):
		_ = cmd.Process.Kill()
		return 0, fmt.Errorf("timed out after %v", timeout)
	}
}

// saveResults writes the benchmark results CSV.
func saveResults(config BenchmarkConfig, results []BenchmarkResult) error {
	path := filepath.Join(config.OutputDir, "benchmark_results.csv")
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"command", "format", "avg_time", "best_time"}); err != nil {
		return err
	}
	for _, r := range results {
		if err := writer.Write([]string{r.Command, r.Format, r.AvgTime, r.BestTime}); err != nil {
			return err
		}
	}
	fmt.Printf("Results saved to %s\n", path)
	return nil
}

// printSummary prints an aligned table of all results.
func printSummary(results []BenchmarkResult) {
	fmt.Println("\nBenchmark summary:")
	fmt.Printf("%-28s %-8s %-10s %-10s\n", "COMMAND", "FORMAT", "AVG", "BEST")
	fmt.Println(strings.Repeat("-", 60))
	for _, r := range results {
		fmt.Printf("%-28s %-8s %-10s %-10s\n", r.Command, r.Format, r.AvgTime, r.BestTime)
	}
}
