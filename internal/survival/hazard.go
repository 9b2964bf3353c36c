package survival

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// HazardConfig describes one hazard-summarization call. Hazard, survival and
// (optional) intensity column lists are parallel: output column i is derived
// from hazard column i.
type HazardConfig struct {
	IDColumn         string   `json:"idColumn"`
	TimeColumn       string   `json:"timeColumn"`
	HazardColumns    []string `json:"hazardColumns"`
	SurvivalColumns  []string `json:"survivalColumns"`
	IntensityColumns []string `json:"intensityColumns,omitempty"`

	// Workers > 1 distributes subjects across a goroutine pool.
	// The result is identical to the sequential path.
	Workers int `json:"workers,omitempty"`
}

// HazardSummary is the result of SummarizeHazard.
//
// Details carries every input row, time-sorted within each subject, with one
// survival (and optionally one event-intensity) column appended per hazard
// column. Lifetime carries one row per subject with the expected lifetime for
// each hazard/survival pair, keyed by the survival column name.
type HazardSummary struct {
	Details  Table
	Lifetime Table
}

// SummarizeHazard converts per-step hazard predictions into discrete survival
// and event-intensity curves plus a per-subject expected lifetime.
//
// For a subject with hazards h_1..h_k ordered by time index, survival is the
// running product s_i = prod(1 - h_j), intensity_i = s_{i-1} - s_i with
// s_0 = 1, and the expected lifetime is sum(s_i) plus a geometric tail term
// s_k/h_k (zero when h_k is zero). The tail keeps the literal s_k/h_k
// convention of the source model rather than the mean of a geometric
// distribution restarted at the window boundary, which would be one less.
//
// All schema and value preconditions are checked over the whole table before
// any subject is processed; a subject whose time indices are not exactly 1..k
// fails the entire call.
func SummarizeHazard(rows Table, cfg HazardConfig) (*HazardSummary, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: input table is empty", ErrSchema)
	}
	if cfg.IDColumn == "" || cfg.TimeColumn == "" {
		return nil, fmt.Errorf("%w: id and time column names are required", ErrSchema)
	}
	if len(cfg.HazardColumns) == 0 {
		return nil, fmt.Errorf("%w: at least one hazard column is required", ErrContract)
	}
	if len(cfg.SurvivalColumns) != len(cfg.HazardColumns) {
		return nil, fmt.Errorf("%w: %d hazard columns but %d survival output names",
			ErrContract, len(cfg.HazardColumns), len(cfg.SurvivalColumns))
	}
	if len(cfg.IntensityColumns) > 0 && len(cfg.IntensityColumns) != len(cfg.HazardColumns) {
		return nil, fmt.Errorf("%w: %d hazard columns but %d intensity output names",
			ErrContract, len(cfg.HazardColumns), len(cfg.IntensityColumns))
	}

	if err := requireColumn(rows, cfg.IDColumn); err != nil {
		return nil, err
	}
	if err := requireColumn(rows, cfg.TimeColumn); err != nil {
		return nil, err
	}

	// Whole-table hazard validation, before any grouping work.
	for _, col := range cfg.HazardColumns {
		for i, rec := range rows {
			h, ok := numericValue(rec[col])
			if !ok {
				return nil, fmt.Errorf("%w: hazard column %q has a missing or non-numeric value at row %d",
					ErrContract, col, i)
			}
			if h < 0 || h > 1 {
				return nil, fmt.Errorf("%w: hazard column %q has value %v outside [0,1] at row %d",
					ErrContract, col, h, i)
			}
		}
	}

	parts, err := partitionBy(rows, cfg.IDColumn)
	if err != nil {
		return nil, err
	}

	// Each subject owns a precomputed, disjoint slice of the details table,
	// so parallel workers never contend on output slots.
	offsets := make([]int, len(parts))
	slot := make(map[string]int, len(parts))
	total := 0
	for pi, p := range parts {
		offsets[pi] = total
		slot[p.key] = pi
		total += len(p.indices)
	}

	details := make(Table, len(rows))
	lifetime := make(Table, len(parts))

	err = runPartitions(parts, cfg.Workers, func(p partition) error {
		pi := slot[p.key]
		return summarizeSubject(rows, p, cfg, details[offsets[pi]:offsets[pi]+len(p.indices)], &lifetime[pi])
	})
	if err != nil {
		return nil, err
	}

	return &HazardSummary{Details: details, Lifetime: lifetime}, nil
}

// summarizeSubject reduces one subject's rows into its details slots and
// lifetime row. The rows are sorted by time index and must form the exact
// interval 1..k.
func summarizeSubject(rows Table, p partition, cfg HazardConfig, details Table, lifetime *Record) error {
	k := len(p.indices)

	ordered := make([]int, k)
	copy(ordered, p.indices)

	times := make(map[int]int, k) // row index -> time index
	for _, ri := range p.indices {
		t, ok := integerValue(rows[ri][cfg.TimeColumn])
		if !ok || t < 1 {
			return fmt.Errorf("%w: subject %v has a non-positive or non-integer time index",
				ErrStructure, p.value)
		}
		times[ri] = t
	}
	sort.Slice(ordered, func(a, b int) bool { return times[ordered[a]] < times[ordered[b]] })

	for j, ri := range ordered {
		if times[ri] != j+1 {
			return fmt.Errorf("%w: subject %v time indices are not the interval 1..%d (duplicate or gap near %d)",
				ErrStructure, p.value, k, times[ri])
		}
	}

	for j, ri := range ordered {
		details[j] = rows[ri].clone(2 * len(cfg.HazardColumns))
	}

	life := make(Record, len(cfg.SurvivalColumns)+1)
	life[cfg.IDColumn] = p.value

	surv := make([]float64, k)
	for c, col := range cfg.HazardColumns {
		hk := 0.0
		for j, ri := range ordered {
			h, _ := numericValue(rows[ri][col])
			// Hazards are validated up front; the clamp stays as a guard
			// against the global check ever being relaxed.
			if h < 0 {
				h = 0
			} else if h > 1 {
				h = 1
			}
			surv[j] = 1 - h
			if j == k-1 {
				hk = h
			}
		}
		floats.CumProd(surv, surv)

		prev := 1.0
		for j := range surv {
			details[j][cfg.SurvivalColumns[c]] = surv[j]
			if len(cfg.IntensityColumns) > 0 {
				details[j][cfg.IntensityColumns[c]] = prev - surv[j]
			}
			prev = surv[j]
		}

		expected := floats.Sum(surv)
		if hk > 0 {
			expected += surv[k-1] / hk
		}
		life[cfg.SurvivalColumns[c]] = expected
	}

	*lifetime = life
	return nil
}
