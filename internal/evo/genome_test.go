package evo

import (
	"math/rand"
	"testing"
)

func TestGenomeCopyIsIndependent(t *testing.T) {
	g := newTestGenome(t, 9)
	g.Fitness = 1.5
	g.TimeAlive = 7

	dup := g.Copy()
	if dup == g || dup.net == g.net {
		t.Fatal("copy must not share state")
	}
	if dup.Fitness != g.Fitness || dup.TimeAlive != g.TimeAlive || dup.Innovation != g.Innovation {
		t.Fatalf("copy bookkeeping mismatch: %+v vs %+v", dup, g)
	}

	inputs := []float64{0.5, -0.5}
	want, err := g.Run(inputs)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	wantValue := want[0]

	for i := range dup.Network().Weights() {
		dup.Network().Weights()[i] = 3
	}
	got, err := g.Run(inputs)
	if err != nil {
		t.Fatalf("run after mutating copy: %v", err)
	}
	if got[0] != wantValue {
		t.Fatalf("original output changed: got %v, want %v", got[0], wantValue)
	}
}

func TestGenomeClonesAreCompatibleUnderAnyThreshold(t *testing.T) {
	g := newTestGenome(t, 4)
	dup := g.Copy()

	for _, threshold := range []float64{0, 0.001, 1, 100} {
		if !g.IsCompatible(dup, threshold) {
			t.Fatalf("clone incompatible at threshold %v", threshold)
		}
	}
}

func TestGenomeCompatibilityThreshold(t *testing.T) {
	g := newTestGenome(t, 4)
	other := g.Copy()

	// Shift every weight by 1 so the mean absolute difference is exactly 1.
	for i := range other.Network().Weights() {
		other.Network().Weights()[i] += 1
	}
	if g.IsCompatible(other, 0.5) {
		t.Fatal("expected incompatibility below the distance")
	}
	if !g.IsCompatible(other, 1) {
		t.Fatal("expected compatibility at the distance")
	}
	if g.IsCompatible(nil, 100) {
		t.Fatal("nil genome must never be compatible")
	}
}

func TestNewGenomeRejectsBadTopology(t *testing.T) {
	cfg := testConfig()
	cfg.Inputs = 0
	if _, err := NewGenome(cfg, 1, rand.New(rand.NewSource(1))); err == nil {
		t.Fatal("expected topology error")
	}

	cfg = testConfig()
	cfg.HiddenActivation = "gaussian"
	if _, err := NewGenome(cfg, 1, rand.New(rand.NewSource(1))); err == nil {
		t.Fatal("expected activation error")
	}
}
