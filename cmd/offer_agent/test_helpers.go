package main

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// getBinaryPath returns the path to the offer_agent binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "offer_agent"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'make build'", binaryPath)
	}

	return binaryPath
}

// envWithout returns the current environment minus the named variables, so a
// test can run the binary with a backend guaranteed to be unconfigured.
func envWithout(keys ...string) []string {
	var out []string
	for _, e := range os.Environ() {
		name, _, _ := strings.Cut(e, "=")
		if slices.Contains(keys, name) {
			continue
		}
		out = append(out, e)
	}
	return out
}
