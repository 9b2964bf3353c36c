package survival

import (
	"fmt"
	"math"
)

// Record is a schema-agnostic row with named columns
type Record map[string]interface{}

// Table is an ordered collection of records
type Table []Record

// clone copies the record with room for extra appended columns.
func (r Record) clone(extra int) Record {
	cp := make(Record, len(r)+extra)
	for k, v := range r {
		cp[k] = v
	}
	return cp
}

// Clone returns a shallow per-record copy so appended output columns never
// mutate caller-owned rows.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for i, rec := range t {
		out[i] = rec.clone(0)
	}
	return out
}

// partition holds the row indices belonging to one group, in input order.
type partition struct {
	key     string
	value   interface{}
	indices []int
}

// partitionBy splits a table into disjoint groups by the given column,
// in a single linear pass. Groups come back in first-appearance order and
// each group keeps the original row order.
func partitionBy(rows Table, column string) ([]partition, error) {
	byKey := make(map[string]int)
	var parts []partition

	for i, rec := range rows {
		val, ok := rec[column]
		if !ok {
			return nil, fmt.Errorf("%w: row %d has no %q column", ErrSchema, i, column)
		}
		key := fmt.Sprintf("%v", val)
		pi, seen := byKey[key]
		if !seen {
			pi = len(parts)
			byKey[key] = pi
			parts = append(parts, partition{key: key, value: val})
		}
		parts[pi].indices = append(parts[pi].indices, i)
	}

	return parts, nil
}

// requireColumn checks that every row carries the column.
func requireColumn(rows Table, column string) error {
	for i, rec := range rows {
		if _, ok := rec[column]; !ok {
			return fmt.Errorf("%w: row %d has no %q column", ErrSchema, i, column)
		}
	}
	return nil
}

// numericValue coerces the column types produced by ingestion (int, int64,
// float32, float64) to float64. The second return is false for missing or
// non-numeric values.
func numericValue(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case float32:
		f := float64(val)
		return f, !math.IsNaN(f)
	case float64:
		return val, !math.IsNaN(val)
	default:
		return 0, false
	}
}

// integerValue coerces integer-valued numerics (including whole floats,
// which CSV ingestion can produce) to int.
func integerValue(v interface{}) (int, bool) {
	f, ok := numericValue(v)
	if !ok {
		return 0, false
	}
	if f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
