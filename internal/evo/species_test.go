package evo

import (
	"math/rand"
	"testing"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.PopulationSize = 4
	cfg.MinimumTicksAlive = 0
	cfg.CompatibilityThreshold = 10
	cfg.Inputs = 2
	cfg.Hiddens = 2
	cfg.Outputs = 1
	cfg.HiddenLayers = 1
	cfg.Seed = 42
	return cfg
}

func newTestGenome(t *testing.T, seed int64) *Genome {
	t.Helper()
	g, err := NewGenome(testConfig(), 1, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("new genome: %v", err)
	}
	return g
}

func TestSpeciesRepresentativeIsPinnedAtFirstAdd(t *testing.T) {
	first := newTestGenome(t, 1)
	second := newTestGenome(t, 2)

	s := NewSpecies(first)
	if s.Representative() != first {
		t.Fatal("expected seeding genome as representative")
	}
	s.Add(second)
	s.Remove(first)
	if s.Representative() != first {
		t.Fatal("representative must stay pinned after the genome leaves")
	}
	if s.Size() != 1 {
		t.Fatalf("size: got %d, want 1", s.Size())
	}
}

func TestSpeciesRemoveAbsentGenomeIsNoop(t *testing.T) {
	member := newTestGenome(t, 1)
	stranger := newTestGenome(t, 2)

	s := NewSpecies(member)
	s.Remove(stranger)
	if s.Size() != 1 {
		t.Fatalf("size: got %d, want 1", s.Size())
	}
}

func TestSpeciesAverageFitness(t *testing.T) {
	s := NewSpecies(nil)
	if got := s.AverageFitness(); got != 0 {
		t.Fatalf("empty species average: got %v, want 0", got)
	}

	for i, fitness := range []float64{1, 2, 6} {
		g := newTestGenome(t, int64(i))
		g.Fitness = fitness
		s.Add(g)
	}
	if got := s.AverageFitness(); got != 3 {
		t.Fatalf("average: got %v, want 3", got)
	}
}

func TestSpeciesSelectGenitor(t *testing.T) {
	s := NewSpecies(nil)
	rng := rand.New(rand.NewSource(5))
	if s.SelectGenitor(rng) != nil {
		t.Fatal("empty species must yield no genitor")
	}

	members := map[*Genome]bool{}
	for i := 0; i < 3; i++ {
		g := newTestGenome(t, int64(i))
		members[g] = true
		s.Add(g)
	}
	for i := 0; i < 20; i++ {
		if g := s.SelectGenitor(rng); !members[g] {
			t.Fatal("genitor must be a current member")
		}
	}
}
