package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"

	"rapcfg/internal/check"
	"rapcfg/internal/parser"
	"rapcfg/internal/report"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: rapcfg <file.cpp>")
		os.Exit(1)
	}

	startTime := time.Now()
	path := os.Args[1]

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
		os.Exit(1)
	}

	file, parseErrors := parser.ParseSource(path, string(source))

	reporter := report.NewReporter(path, string(source))
	diags := report.FromParseErrors(parseErrors)

	hasErrors := len(parseErrors) > 0
	if !hasErrors {
		checkDiags := check.NewAnalyzer().Check(file)
		for _, d := range checkDiags {
			if d.Severity == report.Error {
				hasErrors = true
			}
		}
		diags = append(diags, checkDiags...)
	}

	for _, d := range diags {
		fmt.Print(reporter.Format(d))
		fmt.Println()
	}

	duration := formatDuration(time.Since(startTime))

	if hasErrors {
		color.Red("Failed to process %s after %s", path, duration)
		os.Exit(1)
	}

	fmt.Println(file.String())
	color.Green("Successfully processed %s in %s", path, duration)
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
