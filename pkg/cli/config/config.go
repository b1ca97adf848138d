package config

import (
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// AppConfig represents the application configuration file
type AppConfig struct {
	Categories []Category `toml:"category"`
}

// Category represents one allowed item category
type Category struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
}

// Validate checks if the Category is valid
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrMissingName
	}
	return nil
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	seen := make(map[string]bool)
	for i, cat := range a.Categories {
		if err := cat.Validate(); err != nil {
			return goerr.Wrap(err, "invalid category", goerr.V(CategoryIndexKey, i))
		}
		key := strings.ToLower(strings.TrimSpace(cat.Name))
		if seen[key] {
			return goerr.Wrap(ErrDuplicateCategory, "category listed twice",
				goerr.V(CategoryNameKey, cat.Name))
		}
		seen[key] = true
	}
	return nil
}

// CategoryNames returns the allowed category names in file order
func (a *AppConfig) CategoryNames() []string {
	names := make([]string, len(a.Categories))
	for i, cat := range a.Categories {
		names[i] = strings.TrimSpace(cat.Name)
	}
	return names
}

// LoadAppConfiguration loads the application configuration from a TOML file
func LoadAppConfiguration(path string) (*AppConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var cfg AppConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V(ConfigPathKey, path))
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return &cfg, nil
}
