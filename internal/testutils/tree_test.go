package testutils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTempTree(t *testing.T) {
	root := TempTree(t, map[string]string{
		"a.filter":     "alpha",
		"sub/b.filter": "beta",
		"empty/":       "",
	})

	content, err := os.ReadFile(filepath.Join(root, "sub", "b.filter"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(content) != "beta" {
		t.Errorf("Expected %q, got %q", "beta", string(content))
	}

	info, err := os.Stat(filepath.Join(root, "empty"))
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if !info.IsDir() {
		t.Error("Expected empty/ to be a directory")
	}
}
