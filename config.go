package castsvg

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig carries render defaults loaded from an optional YAML file.
// Zero values mean "not set"; command-line flags always win over file values.
type FileConfig struct {
	Theme      string  `yaml:"theme"`
	Speed      float64 `yaml:"speed"`
	FPS        uint8   `yaml:"fps"`
	FontSize   int     `yaml:"font_size"`
	LineHeight float64 `yaml:"line_height"`
	Padding    int     `yaml:"padding"`
	Window     bool    `yaml:"window"`
	NoLoop     bool    `yaml:"no_loop"`
	Timeline   string  `yaml:"timeline"`
}

// DefaultConfigPath returns the conventional config location,
// or "" when the home directory is unknown.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "castsvg", "config.yaml")
}

// LoadConfig reads a YAML defaults file. A missing file is not an error and
// yields an empty config; a present but unparseable file is an error.
func LoadConfig(path string) (*FileConfig, error) {
	var cfg FileConfig

	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return &cfg, nil
}
