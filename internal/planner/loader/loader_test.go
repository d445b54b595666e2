package loader

import (
	"os"
	"testing"
)

func TestLoadDirEmptyDirectoryLoadsNothing(t *testing.T) {
	names, err := LoadDir(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("LoadDir() on empty dir = %v, want none", names)
	}
}

func TestLoadDirNonexistentDirectoryErrors(t *testing.T) {
	if _, err := LoadDir("/no/such/directory/really"); err == nil {
		t.Fatal("expected an error for a nonexistent directory")
	}
}

func TestLoadDirSkipsNonSoFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir+"/notes.txt", "not a plugin")
	names, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("LoadDir() should ignore non-.so files, got %v", names)
	}
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fixture file: %v", err)
	}
}
