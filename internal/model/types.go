package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// NetworkRecord is the serializable form of a feed-forward network: the
// topology constants plus the flat weight buffer in evaluation order.
type NetworkRecord struct {
	Inputs           int       `json:"inputs"`
	Hiddens          int       `json:"hiddens"`
	Outputs          int       `json:"outputs"`
	HiddenLayers     int       `json:"hidden_layers"`
	Bias             float64   `json:"bias"`
	HiddenActivation string    `json:"hidden_activation"`
	OutputActivation string    `json:"output_activation"`
	Weights          []float64 `json:"weights"`
}

type GenomeRecord struct {
	VersionedRecord
	ID         string        `json:"id,omitempty"`
	Innovation int           `json:"innovation"`
	Fitness    float64       `json:"fitness"`
	TimeAlive  int           `json:"time_alive"`
	Network    NetworkRecord `json:"network"`
}

// SpeciesRecord stores membership as population slot indexes. Representative
// is -1 when the representative genome no longer occupies any slot.
type SpeciesRecord struct {
	Members        []int `json:"members"`
	Representative int   `json:"representative"`
}

type PopulationRecord struct {
	VersionedRecord
	ID         string          `json:"id"`
	Genomes    []GenomeRecord  `json:"genomes"`
	Species    []SpeciesRecord `json:"species"`
	Innovation int             `json:"innovation"`
	Solved     bool            `json:"solved"`
}
