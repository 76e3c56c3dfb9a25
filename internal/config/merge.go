package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config keys.
const (
	keyOutput    = "output"
	keyLogging   = "logging"
	keyReference = "reference"
	keyRollup    = "rollup"
)

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// target. A section present in the file replaces the whole section; fields
// it omits fall back to their defaults. Sections absent from the file are
// left unchanged. Unknown top-level keys are an error.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing config YAML from %s: %w", overlayPath, err)
	}

	defaults := Default()
	for key, node := range overlay {
		if err = mergeSection(target, defaults, key, &node); err != nil {
			return fmt.Errorf("applying config section %q: %w", key, err)
		}
	}
	return nil
}

func mergeSection(target, defaults *Config, key string, node *yaml.Node) error {
	switch key {
	case keyOutput:
		v := defaults.Output
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Output = v
	case keyLogging:
		v := defaults.Logging
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Logging = v
	case keyReference:
		v := defaults.Reference
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Reference = v
	case keyRollup:
		v := defaults.Rollup
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Rollup = v
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
