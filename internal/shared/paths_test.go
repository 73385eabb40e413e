package shared

import (
	"path/filepath"
	"testing"
)

func TestDefaultRhythmboxDir(t *testing.T) {
	dir, err := DefaultRhythmboxDir()
	if err != nil {
		t.Fatalf("failed to resolve rhythmbox dir: %v", err)
	}

	if filepath.Base(dir) != "rhythmbox" {
		t.Errorf("expected rhythmbox subdirectory, got %s", dir)
	}

	if !filepath.IsAbs(dir) {
		t.Errorf("expected absolute path, got %s", dir)
	}
}
