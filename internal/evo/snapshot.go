package evo

import (
	"errors"
	"fmt"
	"math/rand"

	"neatpool/internal/model"
	"neatpool/internal/nn"
)

// Snapshot captures the full evolutionary state as a persistence record.
// Species membership is stored as slot indexes; a representative whose
// genome no longer occupies a slot is recorded as -1.
func (p *Population) Snapshot(id string) model.PopulationRecord {
	slots := make(map[*Genome]int, len(p.genomes))
	genomes := make([]model.GenomeRecord, len(p.genomes))
	for i, g := range p.genomes {
		slots[g] = i
		genomes[i] = g.record()
	}

	species := make([]model.SpeciesRecord, len(p.species))
	for i, s := range p.species {
		rec := model.SpeciesRecord{Representative: -1}
		if idx, ok := slots[s.representative]; ok {
			rec.Representative = idx
		}
		for _, member := range s.members {
			rec.Members = append(rec.Members, slots[member])
		}
		species[i] = rec
	}

	return model.PopulationRecord{
		ID:         id,
		Genomes:    genomes,
		Species:    species,
		Innovation: p.innovation,
		Solved:     p.solved,
	}
}

// RestorePopulation rebuilds a population from a snapshot. The record's
// networks win over the config topology; cfg still supplies the selection
// parameters and the seed for the restored generator. A recorded
// representative of -1 falls back to the species' first member.
func RestorePopulation(cfg Config, record model.PopulationRecord) (*Population, error) {
	if len(record.Genomes) == 0 {
		return nil, errors.New("population record has no genomes")
	}
	if cfg.PopulationSize != 0 && cfg.PopulationSize != len(record.Genomes) {
		return nil, fmt.Errorf("population size mismatch: config %d, record %d", cfg.PopulationSize, len(record.Genomes))
	}
	cfg.PopulationSize = len(record.Genomes)

	p := &Population{
		cfg:        cfg,
		rng:        rand.New(rand.NewSource(cfg.Seed)),
		innovation: record.Innovation,
		solved:     record.Solved,
	}

	p.genomes = make([]*Genome, len(record.Genomes))
	for i, rec := range record.Genomes {
		g, err := restoreGenome(rec)
		if err != nil {
			return nil, fmt.Errorf("genome %d: %w", i, err)
		}
		p.genomes[i] = g
	}

	p.species = make([]*Species, 0, len(record.Species))
	for i, rec := range record.Species {
		s := &Species{}
		if rec.Representative >= 0 {
			if rec.Representative >= len(p.genomes) {
				return nil, fmt.Errorf("species %d: representative index out of range: %d", i, rec.Representative)
			}
			s.representative = p.genomes[rec.Representative]
		}
		for _, idx := range rec.Members {
			if idx < 0 || idx >= len(p.genomes) {
				return nil, fmt.Errorf("species %d: member index out of range: %d", i, idx)
			}
			member := p.genomes[idx]
			if s.representative == nil {
				s.representative = member
			}
			s.members = append(s.members, member)
		}
		p.species = append(p.species, s)
	}

	return p, nil
}

func restoreGenome(rec model.GenomeRecord) (*Genome, error) {
	net, err := nn.New(rec.Network.Inputs, rec.Network.Hiddens, rec.Network.Outputs, rec.Network.HiddenLayers)
	if err != nil {
		return nil, err
	}
	if err := net.SetActivations(nn.Activation(rec.Network.HiddenActivation), nn.Activation(rec.Network.OutputActivation)); err != nil {
		return nil, err
	}
	net.SetBias(rec.Network.Bias)

	weights := net.Weights()
	if len(rec.Network.Weights) != len(weights) {
		return nil, fmt.Errorf("weight count mismatch: record %d, topology %d", len(rec.Network.Weights), len(weights))
	}
	copy(weights, rec.Network.Weights)

	return &Genome{
		Innovation: rec.Innovation,
		Fitness:    rec.Fitness,
		TimeAlive:  rec.TimeAlive,
		net:        net,
	}, nil
}
