package pipeline

import (
	"fmt"

	"go-survival-pipeline/internal/model"
	"go-survival-pipeline/internal/survival"
)

// ValidateTable runs the whole-table precondition checks for the requested
// analyses before any aggregation work starts. The checks are single-threaded
// on purpose: they are the only shared step, computed once and broadcast to
// every partition. Any violation fails the job; there is no filtering of bad
// rows.
func ValidateTable(rows survival.Table, analysis model.Analysis) error {
	if len(rows) == 0 {
		return fmt.Errorf("%w: no records ingested", survival.ErrSchema)
	}
	if analysis.Hazard == nil && analysis.Empirical == nil {
		return fmt.Errorf("%w: at least one analysis (hazard or empirical) is required", survival.ErrSchema)
	}

	if hz := analysis.Hazard; hz != nil {
		if err := validateHazardSpec(hz); err != nil {
			return err
		}
	}
	if em := analysis.Empirical; em != nil {
		if em.GroupColumn == "" || em.AgeColumn == "" {
			return fmt.Errorf("%w: empirical analysis requires group and age column names", survival.ErrSchema)
		}
	}

	return nil
}

// validateHazardSpec checks the column-list contracts that do not depend on
// the data. Value-level checks (hazard range, missingness, time intervals)
// live in the survival engine, which re-runs the list checks as well.
func validateHazardSpec(hz *survival.HazardConfig) error {
	if hz.IDColumn == "" || hz.TimeColumn == "" {
		return fmt.Errorf("%w: hazard analysis requires id and time column names", survival.ErrSchema)
	}
	if len(hz.HazardColumns) == 0 {
		return fmt.Errorf("%w: hazard analysis requires at least one hazard column", survival.ErrContract)
	}
	if len(hz.SurvivalColumns) != len(hz.HazardColumns) {
		return fmt.Errorf("%w: %d hazard columns but %d survival output names",
			survival.ErrContract, len(hz.HazardColumns), len(hz.SurvivalColumns))
	}
	if len(hz.IntensityColumns) > 0 && len(hz.IntensityColumns) != len(hz.HazardColumns) {
		return fmt.Errorf("%w: %d hazard columns but %d intensity output names",
			survival.ErrContract, len(hz.HazardColumns), len(hz.IntensityColumns))
	}
	return nil
}
