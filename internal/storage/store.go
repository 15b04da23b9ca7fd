package storage

import (
	"context"

	"neatpool/internal/model"
)

// Store defines the persistence operations for checkpointed evolution state.
type Store interface {
	Init(ctx context.Context) error
	SaveGenome(ctx context.Context, genome model.GenomeRecord) error
	GetGenome(ctx context.Context, id string) (model.GenomeRecord, bool, error)
	SavePopulation(ctx context.Context, population model.PopulationRecord) error
	GetPopulation(ctx context.Context, id string) (model.PopulationRecord, bool, error)
	DeletePopulation(ctx context.Context, id string) error
	SaveFitnessHistory(ctx context.Context, runID string, history []float64) error
	GetFitnessHistory(ctx context.Context, runID string) ([]float64, bool, error)
}
