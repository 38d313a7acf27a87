package contract

import (
	"fmt"
	"os"
)

// LogFatal logs an error and exits the program. Use only at the CLI boundary.
func LogFatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "❌ %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarning logs a warning to stderr.
func LogWarning(msg string) {
	fmt.Fprintf(os.Stderr, "⚠️  %s\n", msg)
}

// SelectOutputFile returns the file to write output to. An empty path means
// stdout; callers must not close stdout.
func SelectOutputFile(outputFile string) (*os.File, error) {
	if outputFile == "" {
		return os.Stdout, nil
	}
	file, err := os.Create(outputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return file, nil
}
