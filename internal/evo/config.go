package evo

import "neatpool/internal/nn"

// Config carries the population and network parameters for one evolutionary
// run. The topology fields describe the fixed network every genome embeds.
type Config struct {
	// PopulationSize fixes the genome pool size for the population's
	// lifetime.
	PopulationSize int
	// MinimumTicksAlive protects genomes at or below this age from being
	// selected as worst.
	MinimumTicksAlive int
	// CompatibilityThreshold is the distance cutoff for species assignment.
	CompatibilityThreshold float64
	// CrossoverProbability selects the two-parent branch during
	// reproduction instead of genitor cloning.
	CrossoverProbability float64
	// Seed initializes the population's private random generator.
	Seed int64

	Inputs       int
	Hiddens      int
	Outputs      int
	HiddenLayers int

	Bias             float64
	HiddenActivation nn.Activation
	OutputActivation nn.Activation
}

// DefaultConfig returns a runnable starting configuration with the
// evaluator defaults.
func DefaultConfig() Config {
	return Config{
		PopulationSize:         150,
		MinimumTicksAlive:      100,
		CompatibilityThreshold: 0.2,
		CrossoverProbability:   0,
		Seed:                   1,
		Inputs:                 1,
		Hiddens:                0,
		Outputs:                1,
		HiddenLayers:           0,
		Bias:                   nn.DefaultBias,
		HiddenActivation:       nn.Sigmoid,
		OutputActivation:       nn.Sigmoid,
	}
}
