package evo

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

var ErrGenomeIndex = errors.New("genome index out of range")

// Population owns a fixed pool of genomes and the species partition over
// them, advancing evolution one replacement at a time. Instances are not
// safe for concurrent use.
type Population struct {
	cfg        Config
	rng        *rand.Rand
	genomes    []*Genome
	species    []*Species
	innovation int
	solved     bool
}

// NewPopulation clones one freshly created base genome into every slot and
// seeds a single species holding the whole pool.
func NewPopulation(cfg Config) (*Population, error) {
	if cfg.PopulationSize <= 0 {
		return nil, fmt.Errorf("population size must be > 0, got %d", cfg.PopulationSize)
	}

	p := &Population{
		cfg:        cfg,
		rng:        rand.New(rand.NewSource(cfg.Seed)),
		innovation: 1,
	}

	base, err := NewGenome(cfg, p.nextInnovation(), p.rng)
	if err != nil {
		return nil, err
	}
	p.genomes = make([]*Genome, cfg.PopulationSize)
	p.genomes[0] = base
	for i := 1; i < cfg.PopulationSize; i++ {
		p.genomes[i] = base.Copy()
	}

	seed := NewSpecies(base)
	for _, g := range p.genomes[1:] {
		seed.Add(g)
	}
	p.species = []*Species{seed}

	return p, nil
}

// Size returns the fixed genome pool size.
func (p *Population) Size() int { return len(p.genomes) }

// Genome returns the genome occupying slot id.
func (p *Population) Genome(id int) (*Genome, error) {
	if id < 0 || id >= len(p.genomes) {
		return nil, fmt.Errorf("%w: %d", ErrGenomeIndex, id)
	}
	return p.genomes[id], nil
}

// Species returns a copy of the species list in creation order.
func (p *Population) Species() []*Species {
	return append([]*Species(nil), p.species...)
}

// Run evaluates the genome in slot id. The returned slice is valid only
// until that genome's next Run.
func (p *Population) Run(id int, inputs []float64) ([]float64, error) {
	g, err := p.Genome(id)
	if err != nil {
		return nil, err
	}
	return g.Run(inputs)
}

// SetFitness records the externally evaluated fitness for slot id.
func (p *Population) SetFitness(id int, fitness float64) error {
	g, err := p.Genome(id)
	if err != nil {
		return err
	}
	g.Fitness = fitness
	return nil
}

// IncreaseTimeAlive ages the genome in slot id by one tick.
func (p *Population) IncreaseTimeAlive(id int) error {
	g, err := p.Genome(id)
	if err != nil {
		return err
	}
	g.TimeAlive++
	return nil
}

// Solved reports whether the caller marked the run as solved.
func (p *Population) Solved() bool { return p.solved }

// MarkSolved flags the run as solved; the flag is advisory and persisted
// with checkpoints.
func (p *Population) MarkSolved() { p.solved = true }

// Epoch advances evolution by at most one replacement: the worst eligible
// genome is detached from its species and a fitness-proportionately selected
// species reproduces into its slot, after which the slot is re-speciated.
// Without an eligible worst genome the call is a no-op.
func (p *Population) Epoch() {
	worst, ok := p.findWorst()
	if !ok {
		return
	}

	// Absence in a species is a harmless no-op per species.
	for _, s := range p.species {
		s.Remove(p.genomes[worst])
	}

	p.reproduce(worst)
}

// findWorst scans for the strict minimum fitness among genomes older than
// the minimum-age threshold; ties keep the first slot encountered.
func (p *Population) findWorst() (int, bool) {
	worst := -1
	worstFitness := math.MaxFloat64
	for i, g := range p.genomes {
		if g.Fitness < worstFitness && g.TimeAlive > p.cfg.MinimumTicksAlive {
			worst = i
			worstFitness = g.Fitness
		}
	}
	return worst, worst >= 0
}

// speciesFitnessMean averages the per-species average fitness without
// weighting by species size, so small species keep selection pressure.
func (p *Population) speciesFitnessMean() float64 {
	total := 0.0
	for _, s := range p.species {
		total += s.AverageFitness()
	}
	return total / float64(len(p.species))
}

// reproduce runs one roulette draw over the species shares and fills the
// worst slot from the selected species. Floating-point rounding can leave
// every share unselected; the epoch then ends without a replacement.
func (p *Population) reproduce(worst int) {
	mean := p.speciesFitnessMean()

	r := p.rng.Float64()
	for _, s := range p.species {
		if s.Size() == 0 {
			continue
		}

		share := s.AverageFitness() / mean
		if r > share {
			// Not this species; shrink the draw so the remaining
			// species keep their shares.
			r -= share
			continue
		}

		if p.rng.Float64() < p.cfg.CrossoverProbability {
			// TODO: two-parent recombination. Until it exists the
			// detached genome keeps its slot and is re-speciated
			// below.
		} else {
			genitor := s.SelectGenitor(p.rng)
			p.genomes[worst] = genitor.Copy()
		}

		p.speciate(worst)
		return
	}
}

// speciate assigns the genome in slot id to the first species whose
// representative is compatible, or opens a new species for it.
func (p *Population) speciate(id int) {
	g := p.genomes[id]
	for _, s := range p.species {
		if g.IsCompatible(s.Representative(), p.cfg.CompatibilityThreshold) {
			s.Add(g)
			return
		}
	}
	p.species = append(p.species, NewSpecies(g))
}

func (p *Population) nextInnovation() int {
	v := p.innovation
	p.innovation++
	return v
}
