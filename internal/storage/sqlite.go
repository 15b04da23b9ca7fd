//go:build sqlite

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"neatpool/internal/model"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveGenome(ctx context.Context, genome model.GenomeRecord) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := EncodeGenome(genome)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO genomes (id, schema_version, codec_version, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			schema_version = excluded.schema_version,
			codec_version = excluded.codec_version,
			payload = excluded.payload
	`, genome.ID, CurrentSchemaVersion, CurrentCodecVersion, payload)
	return err
}

func (s *SQLiteStore) GetGenome(ctx context.Context, id string) (model.GenomeRecord, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return model.GenomeRecord{}, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM genomes WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.GenomeRecord{}, false, nil
		}
		return model.GenomeRecord{}, false, err
	}

	genome, err := DecodeGenome(payload)
	if err != nil {
		return model.GenomeRecord{}, false, fmt.Errorf("decode genome %s: %w", id, err)
	}
	return genome, true, nil
}

func (s *SQLiteStore) SavePopulation(ctx context.Context, population model.PopulationRecord) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := EncodePopulation(population)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO populations (id, schema_version, codec_version, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			schema_version = excluded.schema_version,
			codec_version = excluded.codec_version,
			payload = excluded.payload
	`, population.ID, CurrentSchemaVersion, CurrentCodecVersion, payload)
	return err
}

func (s *SQLiteStore) GetPopulation(ctx context.Context, id string) (model.PopulationRecord, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return model.PopulationRecord{}, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM populations WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.PopulationRecord{}, false, nil
		}
		return model.PopulationRecord{}, false, err
	}

	population, err := DecodePopulation(payload)
	if err != nil {
		return model.PopulationRecord{}, false, fmt.Errorf("decode population %s: %w", id, err)
	}
	return population, true, nil
}

func (s *SQLiteStore) DeletePopulation(ctx context.Context, id string) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `DELETE FROM populations WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) SaveFitnessHistory(ctx context.Context, runID string, history []float64) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := EncodeFitnessHistory(history)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO fitness_history (run_id, payload)
		VALUES (?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			payload = excluded.payload
	`, runID, payload)
	return err
}

func (s *SQLiteStore) GetFitnessHistory(ctx context.Context, runID string) ([]float64, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM fitness_history WHERE run_id = ?`, runID).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	history, err := DecodeFitnessHistory(payload)
	if err != nil {
		return nil, false, fmt.Errorf("decode fitness history %s: %w", runID, err)
	}
	return history, true, nil
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS genomes (
			id TEXT PRIMARY KEY,
			schema_version INTEGER NOT NULL,
			codec_version INTEGER NOT NULL,
			payload BLOB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS populations (
			id TEXT PRIMARY KEY,
			schema_version INTEGER NOT NULL,
			codec_version INTEGER NOT NULL,
			payload BLOB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS fitness_history (
			run_id TEXT PRIMARY KEY,
			payload BLOB NOT NULL
		);
	`)
	return err
}
