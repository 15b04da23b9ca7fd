package storage

import (
	"context"
	"errors"
	"sync"

	"neatpool/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	genomes     map[string]model.GenomeRecord
	populations map[string]model.PopulationRecord
	history     map[string][]float64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Init allocates the backing maps. Every other operation errors until it
// has been called.
func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.genomes = make(map[string]model.GenomeRecord)
	s.populations = make(map[string]model.PopulationRecord)
	s.history = make(map[string][]float64)
	return nil
}

// ready must be called with the mutex held.
func (s *MemoryStore) ready() error {
	if s.genomes == nil {
		return errors.New("store is not initialized")
	}
	return nil
}

func (s *MemoryStore) SaveGenome(_ context.Context, genome model.GenomeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return err
	}
	s.genomes[genome.ID] = genome
	return nil
}

func (s *MemoryStore) GetGenome(_ context.Context, id string) (model.GenomeRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.ready(); err != nil {
		return model.GenomeRecord{}, false, err
	}
	genome, ok := s.genomes[id]
	return genome, ok, nil
}

func (s *MemoryStore) SavePopulation(_ context.Context, population model.PopulationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return err
	}
	s.populations[population.ID] = population
	return nil
}

func (s *MemoryStore) GetPopulation(_ context.Context, id string) (model.PopulationRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.ready(); err != nil {
		return model.PopulationRecord{}, false, err
	}
	population, ok := s.populations[id]
	return population, ok, nil
}

func (s *MemoryStore) DeletePopulation(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return err
	}
	delete(s.populations, id)
	return nil
}

func (s *MemoryStore) SaveFitnessHistory(_ context.Context, runID string, history []float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return err
	}
	copied := append([]float64(nil), history...)
	s.history[runID] = copied
	return nil
}

func (s *MemoryStore) GetFitnessHistory(_ context.Context, runID string) ([]float64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.ready(); err != nil {
		return nil, false, err
	}
	history, ok := s.history[runID]
	if !ok {
		return nil, false, nil
	}
	copied := append([]float64(nil), history...)
	return copied, true, nil
}
