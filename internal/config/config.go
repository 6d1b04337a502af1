// Package config holds tool-level preferences, distinct from the
// per-run recorded-answer files: output defaults and the expedition
// ordering used when grouping bioproject accessions.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/oceanomics/faire2ncbi/internal/paths"
	"github.com/oceanomics/faire2ncbi/internal/replay"
)

// Config represents the faire2ncbi tool configuration.
type Config struct {
	Output      OutputConfig `yaml:"output"`
	Expeditions []string     `yaml:"expedition_order"` // grouped-accession log ordering
	NoColor     bool         `yaml:"no_color"`
}

// OutputConfig contains output file settings.
type OutputConfig struct {
	Directory          string `yaml:"directory"`           // default directory for generated files
	BioSampleFilename  string `yaml:"biosample_filename"`  // default BioSample output name
	SRAFilename        string `yaml:"sra_filename"`        // default SRA output name
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Directory:         ".",
			BioSampleFilename: "BioSampleMetadata.tsv",
			SRAFilename:       "SRAMetadata.tsv",
		},
		Expeditions: append([]string(nil), replay.DefaultExpeditionOrder...),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	// Start with defaults
	config := DefaultConfig()

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// Return defaults if file doesn't exist
		return config, nil
	}

	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.Output.Directory = paths.ExpandPath(config.Output.Directory)
	if len(config.Expeditions) == 0 {
		config.Expeditions = append([]string(nil), replay.DefaultExpeditionOrder...)
	}

	return config, nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Marshal to YAML
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the default config file path
func GetConfigPath() string {
	// Check environment variable first
	if path := os.Getenv("FAIRE2NCBI_CONFIG"); path != "" {
		return path
	}

	// Check current directory
	if _, err := os.Stat("faire2ncbi.yaml"); err == nil {
		return "faire2ncbi.yaml"
	}

	// Use default location
	p := paths.GetPaths()
	return filepath.Join(p.ConfigDir, "config.yaml")
}
