package survival

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quasiRows builds one subject's quasi-observation rows with time indices
// 1..len(hazards) and a passthrough group column.
func quasiRows(id string, group string, hazards []float64) Table {
	rows := make(Table, len(hazards))
	for i, h := range hazards {
		rows[i] = Record{"id": id, "time": i + 1, "hazard": h, "group": group}
	}
	return rows
}

func baseConfig() HazardConfig {
	return HazardConfig{
		IDColumn:         "id",
		TimeColumn:       "time",
		HazardColumns:    []string{"hazard"},
		SurvivalColumns:  []string{"surv"},
		IntensityColumns: []string{"deathInt"},
	}
}

func TestSummarizeHazardZeroHazards(t *testing.T) {
	rows := quasiRows("p1", "a", []float64{0, 0, 0, 0})

	summary, err := SummarizeHazard(rows, baseConfig())
	require.NoError(t, err)

	require.Len(t, summary.Details, 4)
	for _, rec := range summary.Details {
		assert.Equal(t, 1.0, rec["surv"])
		assert.Equal(t, 0.0, rec["deathInt"])
	}

	// Tail term is zero when the last hazard is zero.
	require.Len(t, summary.Lifetime, 1)
	assert.Equal(t, 4.0, summary.Lifetime[0]["surv"])
	assert.Equal(t, "p1", summary.Lifetime[0]["id"])
}

func TestSummarizeHazardConstantHazard(t *testing.T) {
	const h = 0.2
	const k = 5
	rows := quasiRows("p1", "a", []float64{h, h, h, h, h})

	summary, err := SummarizeHazard(rows, baseConfig())
	require.NoError(t, err)

	intensitySum := 0.0
	for i, rec := range summary.Details {
		want := math.Pow(1-h, float64(i+1))
		assert.InDelta(t, want, rec["surv"].(float64), 1e-12, "survival at step %d", i+1)
		intensitySum += rec["deathInt"].(float64)
	}

	sk := math.Pow(1-h, k)
	assert.InDelta(t, 1-sk, intensitySum, 1e-12, "intensities must sum to 1 - s_k")

	wantLifetime := 0.0
	for i := 1; i <= k; i++ {
		wantLifetime += math.Pow(1-h, float64(i))
	}
	wantLifetime += sk / h
	assert.InDelta(t, wantLifetime, summary.Lifetime[0]["surv"].(float64), 1e-12)
}

func TestSummarizeHazardTailTerm(t *testing.T) {
	// Single step with h=0.5: s_1 = 0.5, lifetime = 0.5 + 0.5/0.5 = 1.5.
	// The tail is the literal s_k/h_k convention, not the geometric mean
	// restarted at the window boundary (which would give 1.0 here).
	rows := quasiRows("p1", "a", []float64{0.5})

	summary, err := SummarizeHazard(rows, baseConfig())
	require.NoError(t, err)
	assert.InDelta(t, 1.5, summary.Lifetime[0]["surv"].(float64), 1e-12)
}

func TestSummarizeHazardReorderedRows(t *testing.T) {
	ordered := quasiRows("p1", "a", []float64{0.1, 0.2, 0.3, 0.4})

	shuffled := Table{ordered[2], ordered[0], ordered[3], ordered[1]}

	want, err := SummarizeHazard(ordered, baseConfig())
	require.NoError(t, err)
	got, err := SummarizeHazard(shuffled, baseConfig())
	require.NoError(t, err)

	require.Equal(t, want.Details, got.Details)
	require.Equal(t, want.Lifetime, got.Lifetime)
}

func TestSummarizeHazardRowCounts(t *testing.T) {
	rows := append(quasiRows("p1", "a", []float64{0.1, 0.2}),
		append(quasiRows("p2", "b", []float64{0.3}),
			quasiRows("p3", "a", []float64{0.05, 0.05, 0.05})...)...)

	summary, err := SummarizeHazard(rows, baseConfig())
	require.NoError(t, err)

	assert.Len(t, summary.Details, len(rows))
	assert.Len(t, summary.Lifetime, 3)

	// Groups come back in first-appearance order.
	assert.Equal(t, "p1", summary.Lifetime[0]["id"])
	assert.Equal(t, "p2", summary.Lifetime[1]["id"])
	assert.Equal(t, "p3", summary.Lifetime[2]["id"])
}

func TestSummarizeHazardMonotonicBounded(t *testing.T) {
	rows := quasiRows("p1", "a", []float64{0.05, 0.5, 0.0, 0.99, 0.3, 1.0, 0.2})

	summary, err := SummarizeHazard(rows, baseConfig())
	require.NoError(t, err)

	prev := 1.0
	for i, rec := range summary.Details {
		s := rec["surv"].(float64)
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
		assert.LessOrEqual(t, s, prev, "survival must be non-increasing at step %d", i+1)
		prev = s
	}
}

func TestSummarizeHazardMultipleColumns(t *testing.T) {
	rows := Table{
		{"id": 1, "time": 1, "hazCancer": 0.1, "hazOther": 0.2, "region": "north"},
		{"id": 1, "time": 2, "hazCancer": 0.3, "hazOther": 0.1, "region": "north"},
	}

	cfg := HazardConfig{
		IDColumn:        "id",
		TimeColumn:      "time",
		HazardColumns:   []string{"hazCancer", "hazOther"},
		SurvivalColumns: []string{"survCancer", "survOther"},
	}

	summary, err := SummarizeHazard(rows, cfg)
	require.NoError(t, err)

	first := summary.Details[0]
	assert.InDelta(t, 0.9, first["survCancer"].(float64), 1e-12)
	assert.InDelta(t, 0.8, first["survOther"].(float64), 1e-12)
	// No intensity columns were requested.
	assert.NotContains(t, first, "deathInt")
	// Passthrough columns are preserved verbatim.
	assert.Equal(t, "north", first["region"])

	second := summary.Details[1]
	assert.InDelta(t, 0.9*0.7, second["survCancer"].(float64), 1e-12)
	assert.InDelta(t, 0.8*0.9, second["survOther"].(float64), 1e-12)

	life := summary.Lifetime[0]
	assert.Contains(t, life, "survCancer")
	assert.Contains(t, life, "survOther")
	assert.Equal(t, 1, life["id"])
}

func TestSummarizeHazardErrors(t *testing.T) {
	valid := quasiRows("p1", "a", []float64{0.1, 0.2})

	cases := []struct {
		name    string
		rows    Table
		mutate  func(cfg *HazardConfig)
		wantErr error
	}{
		{
			name:    "empty table",
			rows:    Table{},
			wantErr: ErrSchema,
		},
		{
			name:    "missing id column",
			rows:    Table{{"time": 1, "hazard": 0.1}},
			wantErr: ErrSchema,
		},
		{
			name:    "missing time column",
			rows:    Table{{"id": "p1", "hazard": 0.1}},
			wantErr: ErrSchema,
		},
		{
			name: "no hazard columns",
			rows: valid,
			mutate: func(cfg *HazardConfig) {
				cfg.HazardColumns = nil
				cfg.SurvivalColumns = nil
				cfg.IntensityColumns = nil
			},
			wantErr: ErrContract,
		},
		{
			name:    "mismatched survival names",
			rows:    valid,
			mutate:  func(cfg *HazardConfig) { cfg.SurvivalColumns = []string{"s1", "s2"} },
			wantErr: ErrContract,
		},
		{
			name:    "mismatched intensity names",
			rows:    valid,
			mutate:  func(cfg *HazardConfig) { cfg.IntensityColumns = []string{"i1", "i2"} },
			wantErr: ErrContract,
		},
		{
			name: "hazard above one",
			rows: Table{
				{"id": "p1", "time": 1, "hazard": 0.1},
				{"id": "p1", "time": 2, "hazard": 1.5},
			},
			wantErr: ErrContract,
		},
		{
			name: "negative hazard",
			rows: Table{{"id": "p1", "time": 1, "hazard": -0.1}},
			wantErr: ErrContract,
		},
		{
			name: "missing hazard value",
			rows: Table{
				{"id": "p1", "time": 1, "hazard": 0.1},
				{"id": "p1", "time": 2},
			},
			wantErr: ErrContract,
		},
		{
			name: "non-numeric hazard",
			rows: Table{{"id": "p1", "time": 1, "hazard": "high"}},
			wantErr: ErrContract,
		},
		{
			name: "time gap",
			rows: Table{
				{"id": "p1", "time": 1, "hazard": 0.1},
				{"id": "p1", "time": 3, "hazard": 0.1},
			},
			wantErr: ErrStructure,
		},
		{
			name: "duplicate time",
			rows: Table{
				{"id": "p1", "time": 1, "hazard": 0.1},
				{"id": "p1", "time": 1, "hazard": 0.2},
			},
			wantErr: ErrStructure,
		},
		{
			name: "time starts at zero",
			rows: Table{{"id": "p1", "time": 0, "hazard": 0.1}},
			wantErr: ErrStructure,
		},
		{
			name: "fractional time index",
			rows: Table{{"id": "p1", "time": 1.5, "hazard": 0.1}},
			wantErr: ErrStructure,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := baseConfig()
			if tc.mutate != nil {
				tc.mutate(&cfg)
			}
			summary, err := SummarizeHazard(tc.rows, cfg)
			require.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, summary)
		})
	}
}

func TestSummarizeHazardValidatesBeforeGrouping(t *testing.T) {
	// The out-of-range hazard sits in a later subject, but the malformed
	// time interval of the first subject must not be reported: the global
	// contract check runs before any per-subject processing.
	rows := Table{
		{"id": "p1", "time": 1, "hazard": 0.1},
		{"id": "p1", "time": 3, "hazard": 0.1}, // gap, would be ErrStructure
		{"id": "p2", "time": 1, "hazard": 1.5}, // contract violation
	}

	_, err := SummarizeHazard(rows, baseConfig())
	require.ErrorIs(t, err, ErrContract)
}

func TestSummarizeHazardParallelEquivalence(t *testing.T) {
	var rows Table
	ids := []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8"}
	for i, id := range ids {
		k := 3 + i%4
		hazards := make([]float64, k)
		for j := range hazards {
			hazards[j] = float64((i*7+j*3)%10) / 10.0
		}
		rows = append(rows, quasiRows(id, "g", hazards)...)
	}

	sequential := baseConfig()
	sequential.Workers = 1
	parallel := baseConfig()
	parallel.Workers = 4

	want, err := SummarizeHazard(rows, sequential)
	require.NoError(t, err)
	got, err := SummarizeHazard(rows, parallel)
	require.NoError(t, err)

	require.Equal(t, want.Details, got.Details)
	require.Equal(t, want.Lifetime, got.Lifetime)
}

func TestSummarizeHazardDoesNotMutateInput(t *testing.T) {
	rows := quasiRows("p1", "a", []float64{0.1, 0.2})

	_, err := SummarizeHazard(rows, baseConfig())
	require.NoError(t, err)

	for _, rec := range rows {
		assert.NotContains(t, rec, "surv")
		assert.NotContains(t, rec, "deathInt")
	}
}
