package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oceanomics/faire2ncbi/internal/replay"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}

	if cfg.Output.BioSampleFilename != "BioSampleMetadata.tsv" {
		t.Errorf("expected BioSampleMetadata.tsv, got %q", cfg.Output.BioSampleFilename)
	}
	if cfg.Output.SRAFilename != "SRAMetadata.tsv" {
		t.Errorf("expected SRAMetadata.tsv, got %q", cfg.Output.SRAFilename)
	}
	if len(cfg.Expeditions) != len(replay.DefaultExpeditionOrder) {
		t.Errorf("expedition order = %v, want the default list", cfg.Expeditions)
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	cfg, err := Load("/nonexistent/config.yaml")
	if err != nil {
		t.Fatalf("Load should return defaults for non-existent file, got error: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected non-nil config for non-existent file")
	}
}

func TestLoadValidFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	yamlContent := `
output:
  directory: /tmp/faire2ncbi-test
  biosample_filename: samples.tsv
expedition_order:
  - VOY01
  - VOY02
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Output.Directory != "/tmp/faire2ncbi-test" {
		t.Errorf("expected directory /tmp/faire2ncbi-test, got %q", cfg.Output.Directory)
	}
	if cfg.Output.BioSampleFilename != "samples.tsv" {
		t.Errorf("expected samples.tsv, got %q", cfg.Output.BioSampleFilename)
	}
	if len(cfg.Expeditions) != 2 || cfg.Expeditions[0] != "VOY01" {
		t.Errorf("expedition order = %v, want [VOY01 VOY02]", cfg.Expeditions)
	}
	// Defaults survive for fields the file omits.
	if cfg.Output.SRAFilename != "SRAMetadata.tsv" {
		t.Errorf("expected default SRA filename, got %q", cfg.Output.SRAFilename)
	}
}

func TestLoadEmptyExpeditionListFallsBack(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("expedition_order: []\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Expeditions) != len(replay.DefaultExpeditionOrder) {
		t.Errorf("empty list should fall back to defaults, got %v", cfg.Expeditions)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("invalid: yaml: [broken"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("expected error for invalid YAML, got nil")
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.NoColor = true
	cfg.Output.Directory = "/tmp/out"

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !loaded.NoColor {
		t.Error("expected no_color true after save/load")
	}
	if loaded.Output.Directory != "/tmp/out" {
		t.Errorf("expected /tmp/out, got %q", loaded.Output.Directory)
	}
}

func TestGetConfigPath(t *testing.T) {
	// Test with environment variable
	t.Setenv("FAIRE2NCBI_CONFIG", "/custom/config.yaml")
	path := GetConfigPath()
	if path != "/custom/config.yaml" {
		t.Errorf("expected /custom/config.yaml, got %q", path)
	}
}
