package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveFlagsOnly(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Resolve(Flags{HousePath: dir, AlgoPath: dir, NumThreads: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.NumThreads != 4 {
		t.Errorf("NumThreads = %d, want 4", cfg.NumThreads)
	}
	if cfg.DeadlinePerStepMs != DefaultDeadlinePerStepMs {
		t.Errorf("DeadlinePerStepMs = %d, want default %d", cfg.DeadlinePerStepMs, DefaultDeadlinePerStepMs)
	}
}

func TestResolveMissingHousePathErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Resolve(Flags{AlgoPath: dir}); err == nil {
		t.Fatal("expected error for missing house_path")
	}
}

func TestResolveNumThreadsBelowOneErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Resolve(Flags{HousePath: dir, AlgoPath: dir, NumThreads: -1}); err == nil {
		t.Fatal("expected error for negative num_threads")
	}
}

func TestResolveTOMLFileFillsUnsetFlags(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	contents := `
house_path = "` + dir + `"
algo_path = "` + dir + `"
num_threads = 7
deadline_per_step_ms = 3
`
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}

	cfg, err := Resolve(Flags{ConfigPath: configPath})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.NumThreads != 7 {
		t.Errorf("NumThreads = %d, want 7 from TOML", cfg.NumThreads)
	}
	if cfg.DeadlinePerStepMs != 3 {
		t.Errorf("DeadlinePerStepMs = %d, want 3 from TOML", cfg.DeadlinePerStepMs)
	}
}

func TestResolveFlagsOverrideTOML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	contents := `
house_path = "` + dir + `"
algo_path = "` + dir + `"
num_threads = 7
`
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}

	cfg, err := Resolve(Flags{ConfigPath: configPath, NumThreads: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.NumThreads != 2 {
		t.Errorf("NumThreads = %d, want flag value 2 to win over TOML's 7", cfg.NumThreads)
	}
}
