package evo

import (
	"math"
	"math/rand"

	"neatpool/internal/model"
	"neatpool/internal/nn"
)

// Genome is one evolving candidate: a fixed-topology network plus the
// fitness and age bookkeeping the population drives selection with.
// Fitness and TimeAlive are mutated externally through the population.
type Genome struct {
	Innovation int
	Fitness    float64
	TimeAlive  int

	net *nn.Network
}

// NewGenome builds a fresh genome with randomized weights and the identity
// taken from the supplied innovation number.
func NewGenome(cfg Config, innovation int, rng *rand.Rand) (*Genome, error) {
	net, err := nn.New(cfg.Inputs, cfg.Hiddens, cfg.Outputs, cfg.HiddenLayers)
	if err != nil {
		return nil, err
	}

	hidden := cfg.HiddenActivation
	if hidden == "" {
		hidden = nn.Sigmoid
	}
	output := cfg.OutputActivation
	if output == "" {
		output = nn.Sigmoid
	}
	if err := net.SetActivations(hidden, output); err != nil {
		return nil, err
	}
	net.SetBias(cfg.Bias)
	net.Randomize(rng)

	return &Genome{Innovation: innovation, net: net}, nil
}

// Copy returns a deep clone sharing no state with the receiver.
func (g *Genome) Copy() *Genome {
	return &Genome{
		Innovation: g.Innovation,
		Fitness:    g.Fitness,
		TimeAlive:  g.TimeAlive,
		net:        g.net.Copy(),
	}
}

// Run delegates to the embedded network. The returned slice is valid only
// until the genome's next Run.
func (g *Genome) Run(inputs []float64) ([]float64, error) {
	return g.net.Run(inputs)
}

// Network exposes the embedded evaluator.
func (g *Genome) Network() *nn.Network { return g.net }

// IsCompatible reports whether the distance to other is within threshold.
// Every genome shares one fixed topology, so the distance is the mean
// absolute difference across aligned weights; identical clones are
// compatible under any non-negative threshold.
func (g *Genome) IsCompatible(other *Genome, threshold float64) bool {
	if other == nil {
		return false
	}
	a, b := g.net.Weights(), other.net.Weights()
	if len(a) != len(b) {
		return false
	}
	total := 0.0
	for i := range a {
		total += math.Abs(a[i] - b[i])
	}
	return total/float64(len(a)) <= threshold
}

func (g *Genome) record() model.GenomeRecord {
	return model.GenomeRecord{
		Innovation: g.Innovation,
		Fitness:    g.Fitness,
		TimeAlive:  g.TimeAlive,
		Network: model.NetworkRecord{
			Inputs:           g.net.Inputs(),
			Hiddens:          g.net.Hiddens(),
			Outputs:          g.net.Outputs(),
			HiddenLayers:     g.net.HiddenLayers(),
			Bias:             g.net.Bias(),
			HiddenActivation: string(g.net.HiddenActivation()),
			OutputActivation: string(g.net.OutputActivation()),
			Weights:          append([]float64(nil), g.net.Weights()...),
		},
	}
}
