package storage

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestGenomeCodecRoundTrip(t *testing.T) {
	input := testGenomeRecord("g1")

	encoded, err := EncodeGenome(input)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoded, err := DecodeGenome(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if decoded.ID != input.ID {
		t.Fatalf("id mismatch: got=%s want=%s", decoded.ID, input.ID)
	}
	if decoded.SchemaVersion != CurrentSchemaVersion || decoded.CodecVersion != CurrentCodecVersion {
		t.Fatalf("versions not stamped: %+v", decoded.VersionedRecord)
	}
	if len(decoded.Network.Weights) != len(input.Network.Weights) {
		t.Fatalf("weight count mismatch: got=%d want=%d", len(decoded.Network.Weights), len(input.Network.Weights))
	}
}

func TestPopulationCodecRoundTrip(t *testing.T) {
	input := testPopulationRecord("p1")
	input.Solved = true

	encoded, err := EncodePopulation(input)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoded, err := DecodePopulation(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if decoded.ID != input.ID || !decoded.Solved {
		t.Fatalf("unexpected population: %+v", decoded)
	}
	if len(decoded.Species) != 1 || decoded.Species[0].Representative != 0 {
		t.Fatalf("unexpected species records: %+v", decoded.Species)
	}
}

func TestDecodeRejectsVersionMismatch(t *testing.T) {
	stale := testPopulationRecord("p1")
	stale.SchemaVersion = CurrentSchemaVersion + 1
	stale.CodecVersion = CurrentCodecVersion

	// Marshal directly so Encode cannot restamp the versions.
	data, err := json.Marshal(stale)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if _, err := DecodePopulation(data); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("decode population: got %v, want ErrVersionMismatch", err)
	}

	staleGenome := testGenomeRecord("g1")
	data, err = json.Marshal(staleGenome)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := DecodeGenome(data); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("decode genome: got %v, want ErrVersionMismatch", err)
	}
}

func TestFitnessHistoryCodecRoundTrip(t *testing.T) {
	input := []float64{1, 2.5, 4}

	encoded, err := EncodeFitnessHistory(input)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeFitnessHistory(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded) != 3 || decoded[1] != 2.5 {
		t.Fatalf("unexpected history: %+v", decoded)
	}
}
