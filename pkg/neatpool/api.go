// Package neatpool is the public surface of the steady-state neuroevolution
// engine. It re-exports the core types and adds checkpoint persistence on
// top of the pluggable storage backends.
package neatpool

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"neatpool/internal/config"
	"neatpool/internal/evo"
	"neatpool/internal/model"
	"neatpool/internal/nn"
	"neatpool/internal/storage"
)

const defaultDBPath = "neatpool.db"

// Core types re-exported so callers never import internal packages.
type (
	Config     = evo.Config
	Genome     = evo.Genome
	Species    = evo.Species
	Population = evo.Population
	Activation = nn.Activation
)

const (
	SigmoidActivation     = nn.Sigmoid
	FastSigmoidActivation = nn.FastSigmoid
	ReLUActivation        = nn.ReLU
)

// DefaultConfig returns the evaluator defaults.
func DefaultConfig() Config {
	return evo.DefaultConfig()
}

// LoadConfig reads an INI configuration file, filling missing keys from the
// defaults.
func LoadConfig(path string) (Config, error) {
	return config.Load(path)
}

// NewPopulation creates a population of clones of one freshly randomized
// genome, grouped into a single seed species.
func NewPopulation(cfg Config) (*Population, error) {
	return evo.NewPopulation(cfg)
}

// Activations lists the supported activation selectors.
func Activations() []Activation {
	return nn.Activations()
}

type Options struct {
	StoreKind string
	DBPath    string
}

// Client wraps a storage backend with checkpoint save and load operations.
type Client struct {
	store storage.Store
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}
	return &Client{store: store}, nil
}

func (c *Client) Init(ctx context.Context) error {
	return c.store.Init(ctx)
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

// SaveCheckpoint persists the population's full evolutionary state under id,
// generating a fresh id when none is given. The id used is returned.
func (c *Client) SaveCheckpoint(ctx context.Context, id string, pop *Population) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if err := c.store.SavePopulation(ctx, pop.Snapshot(id)); err != nil {
		return "", fmt.Errorf("save checkpoint %s: %w", id, err)
	}
	return id, nil
}

// LoadCheckpoint rebuilds a population from a stored checkpoint. cfg
// supplies the selection parameters; the checkpoint's networks win over the
// config topology.
func (c *Client) LoadCheckpoint(ctx context.Context, cfg Config, id string) (*Population, bool, error) {
	record, ok, err := c.store.GetPopulation(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("load checkpoint %s: %w", id, err)
	}
	if !ok {
		return nil, false, nil
	}
	pop, err := evo.RestorePopulation(cfg, record)
	if err != nil {
		return nil, false, fmt.Errorf("restore checkpoint %s: %w", id, err)
	}
	return pop, true, nil
}

// DeleteCheckpoint removes a stored checkpoint. Deleting an unknown id is
// not an error.
func (c *Client) DeleteCheckpoint(ctx context.Context, id string) error {
	return c.store.DeletePopulation(ctx, id)
}

// SaveBestGenome persists the highest-fitness genome of the population
// under its own id, generating one when none is given.
func (c *Client) SaveBestGenome(ctx context.Context, id string, pop *Population) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}

	record := pop.Snapshot("")
	best := 0
	for i := range record.Genomes {
		if record.Genomes[i].Fitness > record.Genomes[best].Fitness {
			best = i
		}
	}
	genome := record.Genomes[best]
	genome.ID = id

	if err := c.store.SaveGenome(ctx, genome); err != nil {
		return "", fmt.Errorf("save genome %s: %w", id, err)
	}
	return id, nil
}

// BestGenome loads a genome stored with SaveBestGenome.
func (c *Client) BestGenome(ctx context.Context, id string) (model.GenomeRecord, bool, error) {
	return c.store.GetGenome(ctx, id)
}

func (c *Client) SaveFitnessHistory(ctx context.Context, runID string, history []float64) error {
	return c.store.SaveFitnessHistory(ctx, runID, history)
}

func (c *Client) FitnessHistory(ctx context.Context, runID string) ([]float64, bool, error) {
	return c.store.GetFitnessHistory(ctx, runID)
}

// CheckpointSummary describes a stored checkpoint without rebuilding it.
type CheckpointSummary struct {
	ID          string
	Genomes     int
	Species     int
	Innovation  int
	Solved      bool
	BestFitness float64
	MeanFitness float64
}

// Checkpoint summarizes a stored checkpoint.
func (c *Client) Checkpoint(ctx context.Context, id string) (CheckpointSummary, bool, error) {
	record, ok, err := c.store.GetPopulation(ctx, id)
	if err != nil || !ok {
		return CheckpointSummary{}, false, err
	}

	summary := CheckpointSummary{
		ID:         record.ID,
		Genomes:    len(record.Genomes),
		Species:    len(record.Species),
		Innovation: record.Innovation,
		Solved:     record.Solved,
	}
	for i, g := range record.Genomes {
		if i == 0 || g.Fitness > summary.BestFitness {
			summary.BestFitness = g.Fitness
		}
		summary.MeanFitness += g.Fitness
	}
	if len(record.Genomes) > 0 {
		summary.MeanFitness /= float64(len(record.Genomes))
	}
	return summary, true, nil
}
