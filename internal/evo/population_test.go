package evo

import (
	"errors"
	"testing"
)

func TestNewPopulationClonesBaseIntoOneSpecies(t *testing.T) {
	cfg := testConfig()
	p, err := NewPopulation(cfg)
	if err != nil {
		t.Fatalf("new population: %v", err)
	}

	if p.Size() != cfg.PopulationSize {
		t.Fatalf("size: got %d, want %d", p.Size(), cfg.PopulationSize)
	}

	base, err := p.Genome(0)
	if err != nil {
		t.Fatalf("genome 0: %v", err)
	}
	for i := 1; i < p.Size(); i++ {
		g, err := p.Genome(i)
		if err != nil {
			t.Fatalf("genome %d: %v", i, err)
		}
		if !base.IsCompatible(g, 0) {
			t.Fatalf("slot %d is not a clone of the base genome", i)
		}
	}

	species := p.Species()
	if len(species) != 1 {
		t.Fatalf("species count: got %d, want 1", len(species))
	}
	if species[0].Size() != cfg.PopulationSize {
		t.Fatalf("seed species size: got %d, want %d", species[0].Size(), cfg.PopulationSize)
	}
	if species[0].Representative() != base {
		t.Fatal("seed species representative must be the base genome")
	}
}

func TestNewPopulationRejectsNonPositiveSize(t *testing.T) {
	cfg := testConfig()
	cfg.PopulationSize = 0
	if _, err := NewPopulation(cfg); err == nil {
		t.Fatal("expected size error")
	}
}

func TestPopulationIndexErrors(t *testing.T) {
	p, err := NewPopulation(testConfig())
	if err != nil {
		t.Fatalf("new population: %v", err)
	}

	if _, err := p.Run(-1, []float64{0, 0}); !errors.Is(err, ErrGenomeIndex) {
		t.Fatalf("run: got %v, want ErrGenomeIndex", err)
	}
	if err := p.SetFitness(p.Size(), 1); !errors.Is(err, ErrGenomeIndex) {
		t.Fatalf("set fitness: got %v, want ErrGenomeIndex", err)
	}
	if err := p.IncreaseTimeAlive(99); !errors.Is(err, ErrGenomeIndex) {
		t.Fatalf("increase time alive: got %v, want ErrGenomeIndex", err)
	}
}

func TestEpochReplacesWorstGenome(t *testing.T) {
	p, err := NewPopulation(testConfig())
	if err != nil {
		t.Fatalf("new population: %v", err)
	}

	for i := 0; i < p.Size(); i++ {
		if err := p.SetFitness(i, float64(i)); err != nil {
			t.Fatalf("set fitness %d: %v", i, err)
		}
		if err := p.IncreaseTimeAlive(i); err != nil {
			t.Fatalf("increase time alive %d: %v", i, err)
		}
	}
	before := make([]*Genome, p.Size())
	for i := range before {
		before[i], _ = p.Genome(i)
	}

	p.Epoch()

	if p.Size() != 4 {
		t.Fatalf("size after epoch: got %d, want 4", p.Size())
	}
	replaced, _ := p.Genome(0)
	if replaced == before[0] {
		t.Fatal("slot 0 held the worst genome and must be replaced")
	}
	// The replacement is a genitor clone, so it inherits a surviving
	// genome's fitness.
	if replaced.Fitness < 1 || replaced.Fitness > 3 {
		t.Fatalf("replacement fitness: got %v, want one of the survivors'", replaced.Fitness)
	}
	for i := 1; i < p.Size(); i++ {
		g, _ := p.Genome(i)
		if g != before[i] {
			t.Fatalf("slot %d must be untouched", i)
		}
	}

	// The detached worst genome is gone from every species and the clone
	// joined the (single, wide-threshold) species.
	total := 0
	for _, s := range p.Species() {
		total += s.Size()
		for _, member := range s.Members() {
			if member == before[0] {
				t.Fatal("worst genome must be detached from its species")
			}
		}
	}
	if total != p.Size() {
		t.Fatalf("species membership total: got %d, want %d", total, p.Size())
	}
}

func TestEpochCrossoverBranchKeepsSlotAndRespeciates(t *testing.T) {
	cfg := testConfig()
	cfg.CrossoverProbability = 1
	p, err := NewPopulation(cfg)
	if err != nil {
		t.Fatalf("new population: %v", err)
	}

	for i := 0; i < p.Size(); i++ {
		if err := p.SetFitness(i, float64(i)); err != nil {
			t.Fatalf("set fitness %d: %v", i, err)
		}
		if err := p.IncreaseTimeAlive(i); err != nil {
			t.Fatalf("increase time alive %d: %v", i, err)
		}
	}
	worst, _ := p.Genome(0)

	p.Epoch()

	// The recombination branch performs no replacement yet; the detached
	// genome keeps its slot and rejoins a species.
	kept, _ := p.Genome(0)
	if kept != worst {
		t.Fatal("crossover branch must leave the worst slot's genome in place")
	}
	if kept.Fitness != 0 {
		t.Fatalf("kept genome fitness: got %v, want 0", kept.Fitness)
	}

	total := 0
	rejoined := false
	for _, s := range p.Species() {
		total += s.Size()
		for _, member := range s.Members() {
			if member == kept {
				rejoined = true
			}
		}
	}
	if !rejoined {
		t.Fatal("kept genome must be re-speciated")
	}
	if total != p.Size() {
		t.Fatalf("species membership total: got %d, want %d", total, p.Size())
	}
}

func TestEpochReplacesWorstWhenAllFitnessZero(t *testing.T) {
	p, err := NewPopulation(testConfig())
	if err != nil {
		t.Fatalf("new population: %v", err)
	}

	// Zero fitness everywhere makes every species share 0/0; the draw must
	// still settle on the first non-empty species.
	for i := 0; i < p.Size(); i++ {
		if err := p.IncreaseTimeAlive(i); err != nil {
			t.Fatalf("increase time alive %d: %v", i, err)
		}
	}
	before := make([]*Genome, p.Size())
	for i := range before {
		before[i], _ = p.Genome(i)
	}

	p.Epoch()

	replaced, _ := p.Genome(0)
	if replaced == before[0] {
		t.Fatal("slot 0 held the worst genome and must be replaced")
	}
	for i := 1; i < p.Size(); i++ {
		g, _ := p.Genome(i)
		if g != before[i] {
			t.Fatalf("slot %d must be untouched", i)
		}
	}
	total := 0
	for _, s := range p.Species() {
		total += s.Size()
	}
	if total != p.Size() {
		t.Fatalf("species membership total: got %d, want %d", total, p.Size())
	}
}

func TestEpochIsNoopBelowMinimumAge(t *testing.T) {
	cfg := testConfig()
	cfg.MinimumTicksAlive = 5
	p, err := NewPopulation(cfg)
	if err != nil {
		t.Fatalf("new population: %v", err)
	}

	for i := 0; i < p.Size(); i++ {
		if err := p.SetFitness(i, float64(i)); err != nil {
			t.Fatalf("set fitness %d: %v", i, err)
		}
	}
	before := make([]*Genome, p.Size())
	for i := range before {
		before[i], _ = p.Genome(i)
	}

	p.Epoch()

	for i := 0; i < p.Size(); i++ {
		g, _ := p.Genome(i)
		if g != before[i] {
			t.Fatalf("slot %d changed during no-op epoch", i)
		}
	}
	species := p.Species()
	if len(species) != 1 || species[0].Size() != p.Size() {
		t.Fatal("species membership changed during no-op epoch")
	}
}

func TestRepeatedEpochsKeepReplacingTheOnlyEligibleSlot(t *testing.T) {
	cfg := testConfig()
	cfg.MinimumTicksAlive = 2
	p, err := NewPopulation(cfg)
	if err != nil {
		t.Fatalf("new population: %v", err)
	}

	const slot = 3
	for generation := 0; generation < 10; generation++ {
		for i := 0; i < p.Size(); i++ {
			if err := p.SetFitness(i, float64(i+1)); err != nil {
				t.Fatalf("set fitness %d: %v", i, err)
			}
		}
		// Only the target slot ever ages past the threshold.
		for tick := 0; tick <= cfg.MinimumTicksAlive; tick++ {
			if err := p.IncreaseTimeAlive(slot); err != nil {
				t.Fatalf("increase time alive: %v", err)
			}
		}

		before := make([]*Genome, p.Size())
		for i := range before {
			before[i], _ = p.Genome(i)
		}

		p.Epoch()

		for i := 0; i < p.Size(); i++ {
			current, _ := p.Genome(i)
			if i == slot && current == before[i] {
				t.Fatalf("generation %d: eligible slot was not replaced", generation)
			}
			if i != slot && current != before[i] {
				t.Fatalf("generation %d: untouched slot %d changed", generation, i)
			}
		}
	}
}

func TestEpochOpensNewSpeciesForIncompatibleGenome(t *testing.T) {
	cfg := testConfig()
	cfg.CompatibilityThreshold = 0
	p, err := NewPopulation(cfg)
	if err != nil {
		t.Fatalf("new population: %v", err)
	}

	// Make slot 0 the eligible worst and push every survivor far away in
	// weight space so the replacement clone cannot rejoin the seed species.
	for i := 0; i < p.Size(); i++ {
		if err := p.SetFitness(i, float64(i)); err != nil {
			t.Fatalf("set fitness %d: %v", i, err)
		}
		if err := p.IncreaseTimeAlive(i); err != nil {
			t.Fatalf("increase time alive %d: %v", i, err)
		}
	}
	for i := 1; i < p.Size(); i++ {
		g, _ := p.Genome(i)
		for j := range g.Network().Weights() {
			g.Network().Weights()[j] += 10
		}
	}

	p.Epoch()

	species := p.Species()
	if len(species) != 2 {
		t.Fatalf("species count: got %d, want 2", len(species))
	}
	replaced, _ := p.Genome(0)
	if species[1].Representative() != replaced {
		t.Fatal("new species must hold the replaced slot's genome")
	}
	if species[1].Size() != 1 {
		t.Fatalf("new species size: got %d, want 1", species[1].Size())
	}
}
