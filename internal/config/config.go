// Package config loads evolution settings from INI files and maps them onto
// the runtime configuration.
package config

import (
	"fmt"

	"gopkg.in/ini.v1"

	"neatpool/internal/evo"
	"neatpool/internal/nn"
)

type populationSection struct {
	Size                   int     `ini:"size"`
	MinimumTicksAlive      int     `ini:"minimum_ticks_alive"`
	CompatibilityThreshold float64 `ini:"compatibility_threshold"`
	CrossoverProbability   float64 `ini:"crossover_probability"`
	Seed                   int64   `ini:"seed"`
}

type networkSection struct {
	Inputs           int     `ini:"inputs"`
	Hiddens          int     `ini:"hiddens"`
	Outputs          int     `ini:"outputs"`
	HiddenLayers     int     `ini:"hidden_layers"`
	Bias             float64 `ini:"bias"`
	HiddenActivation string  `ini:"hidden_activation"`
	OutputActivation string  `ini:"output_activation"`
}

// Load reads an INI file and returns the merged configuration. Keys absent
// from the file keep their defaults.
func Load(path string) (evo.Config, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment: true,
	}, path)
	if err != nil {
		return evo.Config{}, fmt.Errorf("load config file %q: %w", path, err)
	}

	defaults := evo.DefaultConfig()
	population := populationSection{
		Size:                   defaults.PopulationSize,
		MinimumTicksAlive:      defaults.MinimumTicksAlive,
		CompatibilityThreshold: defaults.CompatibilityThreshold,
		CrossoverProbability:   defaults.CrossoverProbability,
		Seed:                   defaults.Seed,
	}
	network := networkSection{
		Inputs:           defaults.Inputs,
		Hiddens:          defaults.Hiddens,
		Outputs:          defaults.Outputs,
		HiddenLayers:     defaults.HiddenLayers,
		Bias:             defaults.Bias,
		HiddenActivation: string(defaults.HiddenActivation),
		OutputActivation: string(defaults.OutputActivation),
	}

	if err := file.Section("population").MapTo(&population); err != nil {
		return evo.Config{}, fmt.Errorf("map [population] section: %w", err)
	}
	if err := file.Section("network").MapTo(&network); err != nil {
		return evo.Config{}, fmt.Errorf("map [network] section: %w", err)
	}

	hiddenActivation, err := nn.ParseActivation(network.HiddenActivation)
	if err != nil {
		return evo.Config{}, fmt.Errorf("hidden_activation: %w", err)
	}
	outputActivation, err := nn.ParseActivation(network.OutputActivation)
	if err != nil {
		return evo.Config{}, fmt.Errorf("output_activation: %w", err)
	}

	cfg := evo.Config{
		PopulationSize:         population.Size,
		MinimumTicksAlive:      population.MinimumTicksAlive,
		CompatibilityThreshold: population.CompatibilityThreshold,
		CrossoverProbability:   population.CrossoverProbability,
		Seed:                   population.Seed,
		Inputs:                 network.Inputs,
		Hiddens:                network.Hiddens,
		Outputs:                network.Outputs,
		HiddenLayers:           network.HiddenLayers,
		Bias:                   network.Bias,
		HiddenActivation:       hiddenActivation,
		OutputActivation:       outputActivation,
	}
	if err := Validate(cfg); err != nil {
		return evo.Config{}, err
	}
	return cfg, nil
}

// Validate reports the first configuration value the evolution core cannot
// accept.
func Validate(cfg evo.Config) error {
	if cfg.PopulationSize <= 0 {
		return fmt.Errorf("population size must be > 0, got %d", cfg.PopulationSize)
	}
	if cfg.MinimumTicksAlive < 0 {
		return fmt.Errorf("minimum_ticks_alive cannot be negative, got %d", cfg.MinimumTicksAlive)
	}
	if cfg.CompatibilityThreshold < 0 {
		return fmt.Errorf("compatibility_threshold cannot be negative, got %g", cfg.CompatibilityThreshold)
	}
	if cfg.CrossoverProbability < 0 || cfg.CrossoverProbability > 1 {
		return fmt.Errorf("crossover_probability must be in [0, 1], got %g", cfg.CrossoverProbability)
	}
	if cfg.Inputs <= 0 {
		return fmt.Errorf("inputs must be > 0, got %d", cfg.Inputs)
	}
	if cfg.Outputs <= 0 {
		return fmt.Errorf("outputs must be > 0, got %d", cfg.Outputs)
	}
	if (cfg.Hiddens > 0) != (cfg.HiddenLayers > 0) {
		return fmt.Errorf("hiddens and hidden_layers must both be zero or both be positive, got %d and %d", cfg.Hiddens, cfg.HiddenLayers)
	}
	return nil
}
