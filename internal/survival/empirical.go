package survival

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Output column names of the empirical survival estimator.
const (
	AgeColumn      = "age"
	SurvivalColumn = "survival"
)

// EmpiricalConfig describes a grouped empirical survival estimation.
type EmpiricalConfig struct {
	GroupColumn string `json:"groupColumn"`
	AgeColumn   string `json:"ageColumn"`

	// Workers > 1 distributes groups across a goroutine pool.
	Workers int `json:"workers,omitempty"`
}

// SummarizeAges computes the empirical survival curve for fully observed
// (uncensored) ages: for every integer threshold t in 0..ageRange the
// fraction of subjects whose age exceeds t. The result has ageRange+1 rows
// with columns "age" and "survival".
//
// Ages above ageRange are rejected rather than silently truncated; the
// estimator has no notion of censoring and must not see censored data.
func SummarizeAges(ages []int, ageRange int) (Table, error) {
	if len(ages) == 0 {
		return nil, fmt.Errorf("%w: no ages to summarize", ErrContract)
	}
	if ageRange <= 0 {
		return nil, fmt.Errorf("%w: age range must be positive, got %d", ErrContract, ageRange)
	}

	freq := make([]float64, ageRange+1)
	for i, age := range ages {
		if age < 0 {
			return nil, fmt.Errorf("%w: negative age %d at position %d", ErrContract, age, i)
		}
		if age > ageRange {
			return nil, fmt.Errorf("%w: age %d at position %d exceeds range %d", ErrContract, age, i, ageRange)
		}
		freq[age]++
	}

	// Cumulative count of subjects with age <= t.
	floats.CumSum(freq, freq)
	total := float64(len(ages))

	curve := make(Table, ageRange+1)
	for t := 0; t <= ageRange; t++ {
		curve[t] = Record{
			AgeColumn:      t,
			SurvivalColumn: (total - freq[t]) / total,
		}
	}
	return curve, nil
}

// SummarizeAgesByGroup computes one empirical survival curve per group over a
// shared domain 0..max(age), so the per-group curves are directly joinable by
// (group, age). Curves are concatenated in first-appearance group order, each
// row tagged with its group value.
func SummarizeAgesByGroup(rows Table, cfg EmpiricalConfig) (Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: input table is empty", ErrSchema)
	}
	if cfg.GroupColumn == "" || cfg.AgeColumn == "" {
		return nil, fmt.Errorf("%w: group and age column names are required", ErrSchema)
	}
	if err := requireColumn(rows, cfg.GroupColumn); err != nil {
		return nil, err
	}
	if err := requireColumn(rows, cfg.AgeColumn); err != nil {
		return nil, err
	}

	// The range is computed once, globally, and broadcast to every group.
	ages := make([]int, len(rows))
	ageRange := 0
	for i, rec := range rows {
		age, ok := integerValue(rec[cfg.AgeColumn])
		if !ok {
			return nil, fmt.Errorf("%w: age column %q has a missing or non-integer value at row %d",
				ErrContract, cfg.AgeColumn, i)
		}
		if age < 0 {
			return nil, fmt.Errorf("%w: negative age %d at row %d", ErrContract, age, i)
		}
		ages[i] = age
		if age > ageRange {
			ageRange = age
		}
	}

	parts, err := partitionBy(rows, cfg.GroupColumn)
	if err != nil {
		return nil, err
	}

	slot := make(map[string]int, len(parts))
	for pi, p := range parts {
		slot[p.key] = pi
	}

	// One curve of ageRange+1 rows per group, written into disjoint ranges.
	out := make(Table, len(parts)*(ageRange+1))
	err = runPartitions(parts, cfg.Workers, func(p partition) error {
		groupAges := make([]int, len(p.indices))
		for j, ri := range p.indices {
			groupAges[j] = ages[ri]
		}

		curve, err := SummarizeAges(groupAges, ageRange)
		if err != nil {
			return fmt.Errorf("group %v: %w", p.value, err)
		}

		base := slot[p.key] * (ageRange + 1)
		for j, rec := range curve {
			rec[cfg.GroupColumn] = p.value
			out[base+j] = rec
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
