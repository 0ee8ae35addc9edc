package docs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jd.txt")
	if err := os.WriteFile(path, []byte("  We need a Go engineer.  \n"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	text, err := LoadText(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if text != "We need a Go engineer." {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestLoadTextMissingFile(t *testing.T) {
	if _, err := LoadText(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadTextEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("   \n"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := LoadText(path); err == nil {
		t.Fatal("expected error for empty document")
	}
}
