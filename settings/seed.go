package settings

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type SeedEntry struct {
	Key         string `yaml:"key"`
	Value       string `yaml:"value"`
	Type        string `yaml:"type"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
}

type seedFile struct {
	Settings []SeedEntry `yaml:"settings"`
}

// LoadSeed reads the settings seed file.
func LoadSeed(path string) ([]SeedEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings seed: %w", err)
	}
	return ParseSeed(data)
}

func ParseSeed(data []byte) ([]SeedEntry, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse settings seed: %w", err)
	}
	seen := make(map[string]bool, len(f.Settings))
	for i, e := range f.Settings {
		if e.Key == "" {
			return nil, fmt.Errorf("parse settings seed: entry %d has no key", i)
		}
		if seen[e.Key] {
			return nil, fmt.Errorf("parse settings seed: duplicate key %q", e.Key)
		}
		seen[e.Key] = true
	}
	return f.Settings, nil
}
