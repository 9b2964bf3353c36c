package pipeline

import (
	"fmt"

	"go-survival-pipeline/internal/model"
	"go-survival-pipeline/internal/survival"
)

// AnalysisResult holds the derived tables of one analysis job, keyed by
// result table name. Tables lists the names in a stable order.
type AnalysisResult struct {
	Tables map[string]survival.Table
}

// TableNames returns the result table names in their canonical order.
func (r *AnalysisResult) TableNames() []string {
	var names []string
	for _, name := range []string{model.TableDetails, model.TableLifetime, model.TableEmpirical} {
		if _, ok := r.Tables[name]; ok {
			names = append(names, name)
		}
	}
	return names
}

// RunAnalysis executes the configured aggregations over the materialized
// table. This is a one-shot synchronous batch call: both engines gather all
// partition results before returning, so the caller never sees partial
// output.
func RunAnalysis(rows survival.Table, analysis model.Analysis, workers int) (*AnalysisResult, error) {
	result := &AnalysisResult{Tables: make(map[string]survival.Table)}

	if hz := analysis.Hazard; hz != nil {
		cfg := *hz
		if cfg.Workers == 0 {
			cfg.Workers = workers
		}
		summary, err := survival.SummarizeHazard(rows, cfg)
		if err != nil {
			return nil, fmt.Errorf("hazard aggregation failed: %w", err)
		}
		result.Tables[model.TableDetails] = summary.Details
		result.Tables[model.TableLifetime] = summary.Lifetime
		fmt.Printf("📊 Hazard aggregation: %d detail rows, %d subjects\n",
			len(summary.Details), len(summary.Lifetime))
	}

	if em := analysis.Empirical; em != nil {
		cfg := *em
		if cfg.Workers == 0 {
			cfg.Workers = workers
		}
		curves, err := survival.SummarizeAgesByGroup(rows, cfg)
		if err != nil {
			return nil, fmt.Errorf("empirical survival estimation failed: %w", err)
		}
		result.Tables[model.TableEmpirical] = curves
		fmt.Printf("📊 Empirical estimation: %d curve rows\n", len(curves))
	}

	return result, nil
}
