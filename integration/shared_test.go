//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedSecpulsePath holds the path to a shared secpulse binary built once for all tests.
	sharedSecpulsePath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getSecpulseBinary returns the path to the secpulse binary, building it once if needed.
func getSecpulseBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "secpulse-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		secpulsePath := filepath.Join(tempDir, "secpulse")
		buildCmd := exec.Command("go", "build", "-o", secpulsePath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build secpulse: %v", err))
		}

		sharedSecpulsePath = secpulsePath
	})

	return sharedSecpulsePath
}

// writeCoverageInputs writes a complete input file for the coverage calculator
// and returns its path.
func writeCoverageInputs(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "coverage.json")
	inputs := `{
		"totalEndpoints": "100",
		"monitoredEndpoints": "95",
		"edrDeployed": "90",
		"patchCompliance": "92",
		"mfaCoverage": "88"
	}`
	if err := os.WriteFile(path, []byte(inputs), 0o644); err != nil {
		t.Fatalf("failed to write inputs file: %v", err)
	}
	return path
}

func runSecpulseCommand(t *testing.T, args ...string) error {
	secpulsePath := getSecpulseBinary()
	cmd := exec.Command(secpulsePath, args...)
	cmd.Dir = "../" // Run from project root
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}
