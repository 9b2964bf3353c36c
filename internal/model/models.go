package model

import "go-survival-pipeline/internal/survival"

// Source represents a data source for an analysis job
type Source struct {
	Type string `json:"type"` // csv, json, api
	URL  string `json:"url"`
}

// Analysis selects which aggregations to run over the ingested table.
// At least one of Hazard and Empirical must be set.
type Analysis struct {
	Hazard    *survival.HazardConfig    `json:"hazard,omitempty"`    // per-step hazards -> survival curves
	Empirical *survival.EmpiricalConfig `json:"empirical,omitempty"` // uncensored ages -> empirical curves
}

// Export defines export targets for the derived tables
type Export struct {
	DB  string `json:"db"`  // non-empty persists result rows to the job store
	Dir string `json:"dir"` // directory for file exports
	// Format picks the file encoding ("csv" or "json"); csv by default.
	Format string `json:"format"`
}

// Workers defines number of workers per stage
type Workers struct {
	Ingest      int `json:"ingest"`
	Aggregation int `json:"aggregation"`
}

// ConcurrencyConfig defines concurrency and job options
type ConcurrencyConfig struct {
	Workers           Workers `json:"workers"`
	ChannelBufferSize int     `json:"channelBufferSize"`
	JobTimeout        string  `json:"jobTimeout"` // e.g., "5m"
}

// JobSpec is the payload for POST /api/v1/analyses
type JobSpec struct {
	Sources     []Source          `json:"sources"`
	Analysis    Analysis          `json:"analysis"`
	Export      *Export           `json:"export,omitempty"`
	Concurrency ConcurrencyConfig `json:"concurrency"`
}
