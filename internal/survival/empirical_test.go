package survival

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeAges(t *testing.T) {
	curve, err := SummarizeAges([]int{1, 2, 3, 4, 5}, 7)
	require.NoError(t, err)
	require.Len(t, curve, 8)

	assert.Equal(t, 0, curve[0][AgeColumn])
	assert.Equal(t, 1.0, curve[0][SurvivalColumn])

	// Strictly decreasing while mass remains.
	for tt := 1; tt <= 5; tt++ {
		assert.Equal(t, tt, curve[tt][AgeColumn])
		assert.Less(t, curve[tt][SurvivalColumn].(float64), curve[tt-1][SurvivalColumn].(float64),
			"survival must drop at threshold %d", tt)
	}

	// Flat at zero past the largest observed age.
	for tt := 5; tt <= 7; tt++ {
		assert.Equal(t, 0.0, curve[tt][SurvivalColumn])
	}
}

func TestSummarizeAgesSmallCohort(t *testing.T) {
	curve, err := SummarizeAges([]int{2, 1, 2}, 3)
	require.NoError(t, err)
	require.Len(t, curve, 4)

	assert.Equal(t, 1.0, curve[0][SurvivalColumn])
	assert.InDelta(t, 2.0/3.0, curve[1][SurvivalColumn].(float64), 1e-12)
	assert.Equal(t, 0.0, curve[2][SurvivalColumn])
	assert.Equal(t, 0.0, curve[3][SurvivalColumn])
}

func TestSummarizeAgesErrors(t *testing.T) {
	cases := []struct {
		name     string
		ages     []int
		ageRange int
	}{
		{"no ages", nil, 5},
		{"zero range", []int{1, 2}, 0},
		{"negative range", []int{1, 2}, -1},
		{"negative age", []int{1, -2}, 5},
		{"age beyond range", []int{1, 9}, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			curve, err := SummarizeAges(tc.ages, tc.ageRange)
			require.ErrorIs(t, err, ErrContract)
			assert.Nil(t, curve)
		})
	}
}

func ageRows(group string, ages ...int) Table {
	rows := make(Table, len(ages))
	for i, age := range ages {
		rows[i] = Record{"cohort": group, "age": age}
	}
	return rows
}

func TestSummarizeAgesByGroup(t *testing.T) {
	rows := append(ageRows("treated", 1, 3, 2), ageRows("control", 5, 2)...)

	curves, err := SummarizeAgesByGroup(rows, EmpiricalConfig{GroupColumn: "cohort", AgeColumn: "age"})
	require.NoError(t, err)

	// Shared global range: max age 5 -> 6 thresholds per group.
	require.Len(t, curves, 12)

	treated := curves[:6]
	control := curves[6:]

	for tt, rec := range treated {
		assert.Equal(t, "treated", rec["cohort"])
		assert.Equal(t, tt, rec[AgeColumn])
	}
	for tt, rec := range control {
		assert.Equal(t, "control", rec["cohort"])
		assert.Equal(t, tt, rec[AgeColumn])
	}

	// treated ages {1,2,3}: survival(1) = 2/3, survival(3) = 0.
	assert.InDelta(t, 2.0/3.0, treated[1][SurvivalColumn].(float64), 1e-12)
	assert.Equal(t, 0.0, treated[3][SurvivalColumn])
	assert.Equal(t, 0.0, treated[5][SurvivalColumn])

	// control ages {2,5}: survival(2) = 1/2, survival(4) = 1/2, survival(5) = 0.
	assert.Equal(t, 1.0, control[0][SurvivalColumn])
	assert.InDelta(t, 0.5, control[2][SurvivalColumn].(float64), 1e-12)
	assert.InDelta(t, 0.5, control[4][SurvivalColumn].(float64), 1e-12)
	assert.Equal(t, 0.0, control[5][SurvivalColumn])
}

func TestSummarizeAgesByGroupErrors(t *testing.T) {
	cases := []struct {
		name    string
		rows    Table
		cfg     EmpiricalConfig
		wantErr error
	}{
		{
			name:    "empty table",
			rows:    Table{},
			cfg:     EmpiricalConfig{GroupColumn: "cohort", AgeColumn: "age"},
			wantErr: ErrSchema,
		},
		{
			name:    "missing group column",
			rows:    Table{{"age": 3}},
			cfg:     EmpiricalConfig{GroupColumn: "cohort", AgeColumn: "age"},
			wantErr: ErrSchema,
		},
		{
			name:    "missing age column",
			rows:    Table{{"cohort": "a"}},
			cfg:     EmpiricalConfig{GroupColumn: "cohort", AgeColumn: "age"},
			wantErr: ErrSchema,
		},
		{
			name:    "unnamed columns",
			rows:    Table{{"cohort": "a", "age": 3}},
			cfg:     EmpiricalConfig{},
			wantErr: ErrSchema,
		},
		{
			name:    "negative age",
			rows:    Table{{"cohort": "a", "age": -1}},
			cfg:     EmpiricalConfig{GroupColumn: "cohort", AgeColumn: "age"},
			wantErr: ErrContract,
		},
		{
			name:    "fractional age",
			rows:    Table{{"cohort": "a", "age": 2.5}},
			cfg:     EmpiricalConfig{GroupColumn: "cohort", AgeColumn: "age"},
			wantErr: ErrContract,
		},
		{
			name:    "all ages zero",
			rows:    Table{{"cohort": "a", "age": 0}},
			cfg:     EmpiricalConfig{GroupColumn: "cohort", AgeColumn: "age"},
			wantErr: ErrContract,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			curves, err := SummarizeAgesByGroup(tc.rows, tc.cfg)
			require.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, curves)
		})
	}
}

func TestSummarizeAgesByGroupParallelEquivalence(t *testing.T) {
	var rows Table
	groups := []string{"g1", "g2", "g3", "g4", "g5"}
	for i, g := range groups {
		for j := 0; j < 10; j++ {
			rows = append(rows, Record{"cohort": g, "age": (i*3 + j*5) % 17})
		}
	}

	want, err := SummarizeAgesByGroup(rows, EmpiricalConfig{GroupColumn: "cohort", AgeColumn: "age", Workers: 1})
	require.NoError(t, err)
	got, err := SummarizeAgesByGroup(rows, EmpiricalConfig{GroupColumn: "cohort", AgeColumn: "age", Workers: 4})
	require.NoError(t, err)

	require.Equal(t, want, got)
}
