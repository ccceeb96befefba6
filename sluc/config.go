package sluc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the project file the CLI looks for next to a program.
const ConfigFileName = "sluc.yml"

type configFile struct {
	StepQuota      *int `yaml:"step_quota"`
	RecursionLimit *int `yaml:"recursion_limit"`
}

// LoadConfigFile reads interpreter limits from a YAML file. Unknown keys
// are rejected. Fields absent from the file keep their zero value.
func LoadConfigFile(path string) (Config, error) {
	if path == "" {
		return Config{}, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return Config{}, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	return decodeConfig(file, absPath)
}

func decodeConfig(r io.Reader, name string) (Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("config: %s is empty", name)
		}
		return Config{}, fmt.Errorf("config: parse %s: %w", name, err)
	}

	var cfg Config
	if raw.StepQuota != nil {
		if *raw.StepQuota < 0 {
			return Config{}, fmt.Errorf("config: %s: step_quota must not be negative", name)
		}
		cfg.StepQuota = *raw.StepQuota
	}
	if raw.RecursionLimit != nil {
		if *raw.RecursionLimit < 0 {
			return Config{}, fmt.Errorf("config: %s: recursion_limit must not be negative", name)
		}
		cfg.RecursionLimit = *raw.RecursionLimit
	}
	return cfg, nil
}
