package survival

import "errors"

// The three failure classes of an aggregation call. A call either fully
// succeeds or fails with one of these; there is no partial-result mode.
var (
	// ErrSchema covers missing required columns and non-tabular input.
	// Raised before any data is touched.
	ErrSchema = errors.New("schema error")

	// ErrContract covers whole-table value violations: mismatched column
	// lists, hazards outside [0,1], missing hazard values, non-positive
	// age ranges, negative ages. Checked globally before partitioning.
	ErrContract = errors.New("contract violation")

	// ErrStructure covers per-subject time indices that are not the exact
	// interval 1..k. Raised when the offending partition is processed and
	// aborts the whole call.
	ErrStructure = errors.New("structural violation")
)
