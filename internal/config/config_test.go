package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
storage_dir: /data/segscript
languages: [fr, " en "]
fetch_timeout: 30s
log_level: DEBUG
config_version: 1
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.StorageDir != "/data/segscript" {
		t.Errorf("StorageDir = %q", cfg.StorageDir)
	}
	if diff := cmp.Diff([]string{"fr", "en"}, cfg.Languages); diff != "" {
		t.Errorf("Languages (-want +got):\n%s", diff)
	}
	if cfg.FetchTimeout != 30*time.Second {
		t.Errorf("FetchTimeout = %v", cfg.FetchTimeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	// valeurs absentes du fichier : défauts conservés
	if cfg.ExtractTimeout != defaultExtractTimeout || !cfg.PreferManualSubs || cfg.YtDlp.Name == "" {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestParseEmptyAndUnknownFields(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(empty): %v", err)
	}
	if cfg.ConfigVersion != 0 {
		t.Errorf("ConfigVersion = %d; want 0 for unversioned file", cfg.ConfigVersion)
	}
	if _, err := Parse([]byte("unknown_key: 1\n")); err == nil {
		t.Error("Parse accepted an unknown key")
	}
}

func TestValidateRejectsBadLogLevel(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "verbose"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "LogLevel") {
		t.Fatalf("Validate = %v; want LogLevel error", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SEGSCRIPT_STORAGE_DIR", "/tmp/env-cache")
	t.Setenv("SEGSCRIPT_LANGUAGES", "de,en")
	t.Setenv("SEGSCRIPT_FETCH_TIMEOUT", "5s")
	t.Setenv("SEGSCRIPT_COPY_TO_CLIPBOARD", "true")

	cfg := Default()
	cfg.LogLevel = "info"
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.StorageDir != "/tmp/env-cache" || cfg.FetchTimeout != 5*time.Second || !cfg.CopyToClipboard {
		t.Errorf("env not applied: %+v", cfg)
	}
	if diff := cmp.Diff([]string{"de", "en"}, cfg.Languages); diff != "" {
		t.Errorf("Languages (-want +got):\n%s", diff)
	}
	// variable absente : valeur conservée
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q; want unchanged", cfg.LogLevel)
	}
}

func TestLoadCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", DefaultFileName)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	if cfg.FilePath() != path || cfg.ConfigVersion != CurrentConfigVersion {
		t.Errorf("unexpected config: path=%q version=%d", cfg.FilePath(), cfg.ConfigVersion)
	}
	if cfg.StorageDir != defaultStorageDir {
		t.Errorf("StorageDir = %q", cfg.StorageDir)
	}
}

func TestLoadMigratesUnversionedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	if err := os.WriteFile(path, []byte("storage_dir: /srv/cache\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ConfigVersion != CurrentConfigVersion || cfg.StorageDir != "/srv/cache" {
		t.Fatalf("unexpected config after migration: %+v", cfg)
	}

	// fichier réécrit avec la version courante + sauvegarde présente
	again, err := Parse(mustRead(t, path))
	if err != nil {
		t.Fatal(err)
	}
	if again.ConfigVersion != CurrentConfigVersion || again.StorageDir != "/srv/cache" {
		t.Errorf("rewritten file: %+v", again)
	}
	backups, _ := filepath.Glob(path + ".bak.*")
	if len(backups) != 1 {
		t.Errorf("expected 1 backup, got %v", backups)
	}
}

func TestResolveYtDlpPath(t *testing.T) {
	cfg := Default()
	if cfg.YtDlp.ResolvedPath != "" {
		t.Errorf("empty path should resolve to PATH lookup, got %q", cfg.YtDlp.ResolvedPath)
	}

	cfg.YtDlp.Path = "/opt/tools"
	cfg.ResolveYtDlpPath()
	if cfg.YtDlp.ResolvedPath != filepath.Join("/opt/tools", cfg.YtDlp.Name) {
		t.Errorf("dir path: ResolvedPath = %q", cfg.YtDlp.ResolvedPath)
	}

	cfg.YtDlp.Path = filepath.Join("/opt/tools", cfg.YtDlp.Name)
	cfg.ResolveYtDlpPath()
	if cfg.YtDlp.ResolvedPath != filepath.Join("/opt/tools", cfg.YtDlp.Name) {
		t.Errorf("exe path: ResolvedPath = %q", cfg.YtDlp.ResolvedPath)
	}
}

func mustRead(t *testing.T, path string) []byte {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return b
}
