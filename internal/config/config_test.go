package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "edx-dl.yaml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != DefaultBaseURL || cfg.OutputDir != DefaultOutputDir {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.Downloader.FormatFlag != "-f" || cfg.Downloader.ResolvedPath != "" {
		t.Fatalf("downloader defaults = %+v", cfg.Downloader)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	p := writeConfig(t, `
base_url: "https://courses.example.org/"
output_dir: "  videos "
subtitles: true
downloader:
  name: "yt-dlp"
  format_flag: "-f"
config_version: 1
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://courses.example.org" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.OutputDir != "videos" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if !cfg.Subtitles {
		t.Errorf("Subtitles = false")
	}
	// champ absent du fichier : défaut conservé
	if cfg.UserAgent != DefaultUserAgent {
		t.Errorf("UserAgent = %q", cfg.UserAgent)
	}
	if cfg.FilePath() != p {
		t.Errorf("FilePath = %q", cfg.FilePath())
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	p := writeConfig(t, "base_url: [oops\n")
	if _, err := Load(p); err == nil {
		t.Fatal("expected error on invalid yaml")
	}
}

func TestLoad_MigratesUnversionedFile(t *testing.T) {
	p := writeConfig(t, `
downloader:
  name: "youtube-dl"
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ConfigVersion != CurrentConfigVersion {
		t.Errorf("ConfigVersion = %d", cfg.ConfigVersion)
	}
	if cfg.Downloader.FormatFlag != "--max-quality" {
		t.Errorf("FormatFlag = %q; want --max-quality", cfg.Downloader.FormatFlag)
	}

	// fichier réécrit + sauvegarde
	data, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "config_version: 1") {
		t.Errorf("migrated file missing version:\n%s", data)
	}
	matches, _ := filepath.Glob(p + ".bak.*")
	if len(matches) != 1 {
		t.Errorf("backups = %v; want one", matches)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("EDXDL_USERNAME", "me@example.org")
	t.Setenv("EDXDL_PASSWORD", "secret")
	t.Setenv("EDXDL_OUTPUT_DIR", "out")
	t.Setenv("EDXDL_FORMAT", "22")
	t.Setenv("EDXDL_BASE_URL", "")

	cfg := Default()
	cfg.Username = "from-file"
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Username != "me@example.org" || cfg.Password != "secret" {
		t.Errorf("credentials = %q / %q", cfg.Username, cfg.Password)
	}
	if cfg.OutputDir != "out" || cfg.Format != "22" {
		t.Errorf("OutputDir = %q, Format = %q", cfg.OutputDir, cfg.Format)
	}
	// variable vide : pas de surcharge
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
}

func TestResolveDownloaderPath(t *testing.T) {
	exe := "yt-dlp"
	if runtime.GOOS == "windows" {
		exe += ".exe"
	}
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
		want string
	}{
		{"empty path uses PATH", "", ""},
		{"directory", dir, filepath.Join(dir, exe)},
		{"full path", filepath.Join(dir, exe), filepath.Join(dir, exe)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.Downloader.Path = tc.path
			cfg.ResolveDownloaderPath()
			if cfg.Downloader.ResolvedPath != tc.want {
				t.Fatalf("ResolvedPath = %q; want %q", cfg.Downloader.ResolvedPath, tc.want)
			}
		})
	}
}

func TestValidateDownloaderPresence(t *testing.T) {
	dir := t.TempDir()

	cfg := Default()
	warnings, err := cfg.ValidateDownloaderPresence()
	if err != nil || len(warnings) != 1 {
		t.Fatalf("no path: warnings=%v err=%v", warnings, err)
	}

	cfg.Downloader.Path = dir
	warnings, err = cfg.ValidateDownloaderPresence()
	if err != nil || len(warnings) != 1 {
		t.Fatalf("missing binary: warnings=%v err=%v", warnings, err)
	}

	if err := os.WriteFile(cfg.Downloader.ResolvedPath, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	warnings, err = cfg.ValidateDownloaderPresence()
	if err != nil || len(warnings) != 0 {
		t.Fatalf("present binary: warnings=%v err=%v", warnings, err)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	cfg.BaseURL = "courses.example.org"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for base_url without scheme")
	}
}
