package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"neatpool/internal/storage"
	"neatpool/pkg/neatpool"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "xor":
		return runXOR(ctx, args[1:])
	case "show":
		return runShow(ctx, args[1:])
	case "fitness":
		return runFitness(ctx, args[1:])
	case "activations":
		return runActivations(args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "neatpool.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := neatpool.New(neatpool.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}

	fmt.Printf("initialized store=%s\n", *storeKind)
	return nil
}

var xorCases = [][3]float64{
	{0, 0, 0},
	{0, 1, 1},
	{1, 0, 1},
	{1, 1, 0},
}

// xorFitness scores a genome on the four XOR rows; 4 is a perfect score.
func xorFitness(pop *neatpool.Population, id int) (float64, error) {
	fitness := 4.0
	for _, row := range xorCases {
		out, err := pop.Run(id, []float64{row[0], row[1]})
		if err != nil {
			return 0, err
		}
		diff := out[0] - row[2]
		fitness -= diff * diff
	}
	return fitness, nil
}

func runXOR(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("xor", flag.ContinueOnError)
	configPath := fs.String("config", "", "INI configuration file (optional)")
	seed := fs.Int64("seed", 0, "override the configured random seed (0 keeps it)")
	epochs := fs.Int("epochs", 5000, "max replacement cycles")
	target := fs.Float64("target", 3.9, "fitness considered solved")
	save := fs.Bool("save", false, "checkpoint the final population")
	checkpointID := fs.String("checkpoint-id", "", "checkpoint id (generated when empty)")
	runID := fs.String("run-id", "xor", "run id for the fitness history")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "neatpool.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := neatpool.DefaultConfig()
	if *configPath != "" {
		loaded, err := neatpool.LoadConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	} else {
		cfg.PopulationSize = 150
		cfg.MinimumTicksAlive = 10
		cfg.Inputs = 2
		cfg.Hiddens = 4
		cfg.HiddenLayers = 1
		cfg.Outputs = 1
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if cfg.Inputs != 2 || cfg.Outputs != 1 {
		return errors.New("xor needs a 2-input 1-output topology")
	}

	pop, err := neatpool.NewPopulation(cfg)
	if err != nil {
		return err
	}

	var history []float64
	best := 0.0
	for epoch := 0; epoch < *epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		for i := 0; i < pop.Size(); i++ {
			fitness, err := xorFitness(pop, i)
			if err != nil {
				return err
			}
			if err := pop.SetFitness(i, fitness); err != nil {
				return err
			}
			if err := pop.IncreaseTimeAlive(i); err != nil {
				return err
			}
			if fitness > best {
				best = fitness
			}
		}
		history = append(history, best)

		if best >= *target {
			pop.MarkSolved()
			fmt.Printf("solved after %d epochs best_fitness=%.6f\n", epoch+1, best)
			break
		}
		pop.Epoch()
	}
	if !pop.Solved() {
		fmt.Printf("stopped after %d epochs best_fitness=%.6f\n", len(history), best)
	}

	if !*save {
		return nil
	}

	client, err := neatpool.New(neatpool.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()
	if err := client.Init(ctx); err != nil {
		return err
	}

	id, err := client.SaveCheckpoint(ctx, *checkpointID, pop)
	if err != nil {
		return err
	}
	if err := client.SaveFitnessHistory(ctx, *runID, history); err != nil {
		return err
	}

	fmt.Printf("saved checkpoint=%s run_id=%s\n", id, *runID)
	return nil
}

func runShow(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	checkpointID := fs.String("checkpoint-id", "", "checkpoint id")
	jsonOut := fs.Bool("json", false, "emit the summary as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "neatpool.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *checkpointID == "" {
		return errors.New("show requires --checkpoint-id")
	}

	client, err := neatpool.New(neatpool.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()
	if err := client.Init(ctx); err != nil {
		return err
	}

	summary, ok, err := client.Checkpoint(ctx, *checkpointID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("checkpoint not found: %s", *checkpointID)
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	fmt.Printf("checkpoint=%s genomes=%d species=%d innovation=%d solved=%t best_fitness=%.6f mean_fitness=%.6f\n",
		summary.ID, summary.Genomes, summary.Species, summary.Innovation, summary.Solved, summary.BestFitness, summary.MeanFitness)
	return nil
}

func runFitness(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("fitness", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	limit := fs.Int("limit", 50, "max epochs to print (<=0 for all)")
	jsonOut := fs.Bool("json", false, "emit fitness history as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "neatpool.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return errors.New("fitness requires --run-id")
	}

	client, err := neatpool.New(neatpool.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()
	if err := client.Init(ctx); err != nil {
		return err
	}

	history, ok, err := client.FitnessHistory(ctx, *runID)
	if err != nil {
		return err
	}
	if !ok || len(history) == 0 {
		fmt.Println("no fitness history")
		return nil
	}
	if *limit > 0 && len(history) > *limit {
		history = history[len(history)-*limit:]
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(history)
	}

	for i, best := range history {
		fmt.Printf("epoch=%d best_fitness=%.6f\n", i+1, best)
	}
	return nil
}

func runActivations(args []string) error {
	fs := flag.NewFlagSet("activations", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	for _, activation := range neatpool.Activations() {
		fmt.Println(activation)
	}
	return nil
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: neatpoolctl <init|xor|show|fitness|activations> [flags]", msg)
}
