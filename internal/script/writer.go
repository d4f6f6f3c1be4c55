package script

import (
	"os"

	"gopkg.in/yaml.v3"
)

// WriteScenario writes a script to a YAML file (the CLI one-shot format).
func WriteScenario(s *Script, path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadScenario reads a script from a YAML file and applies defaults.
func ReadScenario(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	s.Normalize()

	return &s, nil
}
