package evo

import "math/rand"

// Species groups compatible genomes around a representative pinned when the
// first member joins. A species never owns its members; the population does.
type Species struct {
	representative *Genome
	members        []*Genome
}

// NewSpecies creates a species, optionally seeded with a first member.
func NewSpecies(representative *Genome) *Species {
	s := &Species{}
	if representative != nil {
		s.Add(representative)
	}
	return s
}

// Add appends g, pinning it as representative when the species is empty and
// has never had one.
func (s *Species) Add(g *Genome) {
	if s.representative == nil {
		s.representative = g
	}
	s.members = append(s.members, g)
}

// Remove detaches g. Removing a genome that is not a member is a no-op; the
// representative stays pinned even when its genome leaves.
func (s *Species) Remove(g *Genome) {
	for i, member := range s.members {
		if member == g {
			s.members = append(s.members[:i], s.members[i+1:]...)
			return
		}
	}
}

// Representative returns the genome pinned at species creation.
func (s *Species) Representative() *Genome { return s.representative }

// Size returns the current member count.
func (s *Species) Size() int { return len(s.members) }

// Members returns a copy of the current membership.
func (s *Species) Members() []*Genome {
	return append([]*Genome(nil), s.members...)
}

// AverageFitness returns the mean member fitness; an empty species scores
// zero.
func (s *Species) AverageFitness() float64 {
	if len(s.members) == 0 {
		return 0
	}
	total := 0.0
	for _, g := range s.members {
		total += g.Fitness
	}
	return total / float64(len(s.members))
}

// SelectGenitor picks one member uniformly at random, or nil when the
// species is empty.
func (s *Species) SelectGenitor(rng *rand.Rand) *Genome {
	if len(s.members) == 0 {
		return nil
	}
	return s.members[rng.Intn(len(s.members))]
}
