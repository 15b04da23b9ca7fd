package storage

import (
	"encoding/json"
	"errors"

	"neatpool/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

// EncodeGenome stamps the current record versions before marshalling, so
// callers never have to manage them.
func EncodeGenome(g model.GenomeRecord) ([]byte, error) {
	g.SchemaVersion = CurrentSchemaVersion
	g.CodecVersion = CurrentCodecVersion
	return json.Marshal(g)
}

func DecodeGenome(data []byte) (model.GenomeRecord, error) {
	var genome model.GenomeRecord
	if err := json.Unmarshal(data, &genome); err != nil {
		return model.GenomeRecord{}, err
	}
	if err := checkVersion(genome.VersionedRecord); err != nil {
		return model.GenomeRecord{}, err
	}
	return genome, nil
}

func EncodePopulation(p model.PopulationRecord) ([]byte, error) {
	p.SchemaVersion = CurrentSchemaVersion
	p.CodecVersion = CurrentCodecVersion
	return json.Marshal(p)
}

func DecodePopulation(data []byte) (model.PopulationRecord, error) {
	var population model.PopulationRecord
	if err := json.Unmarshal(data, &population); err != nil {
		return model.PopulationRecord{}, err
	}
	if err := checkVersion(population.VersionedRecord); err != nil {
		return model.PopulationRecord{}, err
	}
	return population, nil
}

func EncodeFitnessHistory(history []float64) ([]byte, error) {
	return json.Marshal(history)
}

func DecodeFitnessHistory(data []byte) ([]float64, error) {
	var history []float64
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, err
	}
	return history, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
