package model

import "time"

// Result table names produced by an analysis job.
const (
	TableDetails   = "details"
	TableLifetime  = "expected_lifetime"
	TableEmpirical = "empirical_survival"
)

// ExportResult represents the result of an export operation
type ExportResult struct {
	Type        string    `json:"type"` // "database", "csv", "json"
	Table       string    `json:"table"`
	Path        string    `json:"path"` // file path or table name
	RecordCount int       `json:"record_count"`
	Success     bool      `json:"success"`
	Error       string    `json:"error,omitempty"`
	ExportedAt  time.Time `json:"exported_at"`
}
