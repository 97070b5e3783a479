// Package testutil provides utilities for loading shared test data.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// findTestdataDir searches for the testdata directory by walking up from the current directory.
func findTestdataDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}

	for {
		testdataPath := filepath.Join(dir, "testdata")
		if info, err := os.Stat(testdataPath); err == nil && info.IsDir() {
			return testdataPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("testdata directory not found")
}

// LoadFixture returns testdata/fixtures/<provider>/<name>, failing the test when it is missing.
func LoadFixture(t testing.TB, provider, name string) []byte {
	t.Helper()

	testdataDir, err := findTestdataDir()
	if err != nil {
		t.Fatalf("Failed to locate testdata: %v", err)
	}

	path := filepath.Join(testdataDir, "fixtures", provider, name)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read fixture %s: %v", path, err)
	}
	return data
}
