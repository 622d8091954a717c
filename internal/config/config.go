// Package config implements the process-wide option bag spec §6 names,
// loaded from YAML the way funvibe-funxy's own ext.Config is — struct
// tags plus gopkg.in/yaml.v3 — grounded on
// funvibe-funxy/internal/ext/config.go, with the Go-ecosystem-binding
// fields that package carries (Deps, BindSpec, and friends) left out:
// they back Funxy's host-interop surface, which this core has no
// counterpart for (see DESIGN.md). Rather than a hidden package-level
// singleton (funvibe-funxy/internal/config/constants.go's Version/
// IsTestMode/IsLSPMode vars), this is an explicit struct passed to the
// VM/Interpreter constructor (spec §9 "model as an explicit immutable
// configuration struct ... avoid hidden globals").
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Configuration is the process-wide option bag spec §6 defines.
type Configuration struct {
	Extensions       []string `yaml:"extensions"`
	InputPaths       []string `yaml:"input_paths"`
	MaxThreads       int      `yaml:"max_threads"`
	ShowTiming       bool     `yaml:"show_timing"`
	RunUnitTests     bool     `yaml:"run_unit_tests"`
	OutputGrammar    bool     `yaml:"output_grammar"`
	OutputPrimitives bool     `yaml:"output_primitives"`
	WaitForKeypress  bool     `yaml:"wait_for_keypress"`
}

// DefaultExtensions mirrors funvibe-funxy/internal/config/constants.go's
// SourceFileExtensions, adapted to this language's own source suffixes.
var DefaultExtensions = []string{".heron", ".hrn"}

// Default returns a Configuration with zero-config defaults: the current
// directory as the sole input path, this repository's recognized source
// extensions, and max_threads left at 0, meaning "use
// runtime.GOMAXPROCS(0)" (spec §4.3, §9).
func Default() *Configuration {
	return &Configuration{
		Extensions: append([]string(nil), DefaultExtensions...),
		InputPaths: []string{"."},
	}
}

// Load reads a Configuration from a YAML file at path. A missing file is
// not an error: Default() is returned instead, matching the CLI
// contract's "configuration file loaded ... if present" (spec §6).
func Load(path string) (*Configuration, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = append([]string(nil), DefaultExtensions...)
	}
	if len(cfg.InputPaths) == 0 {
		cfg.InputPaths = []string{"."}
	}
	return cfg, nil
}
