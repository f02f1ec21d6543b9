package roster

import (
	"math"
	"math/rand"
	"testing"

	"github.com/arnavshah/duty-roster-go/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFairnessState_RecordNormalisesByFTE(t *testing.T) {
	f := NewFairnessState([]models.Staff{
		{Name: "Full", Category: "A", FTE: 1},
		{Name: "Half", Category: "A", FTE: 0.5},
	})

	f.Record(models.Staff{Name: "Full", FTE: 1}, "Day", 8)
	f.Record(models.Staff{Name: "Half", FTE: 0.5}, "Day", 8)
	f.Record(models.Staff{Name: "Half", FTE: 0.5}, "Night", 11)

	assert.True(t, decimal.NewFromInt(8).Equal(f.Hours("Full")))
	assert.True(t, decimal.NewFromInt(38).Equal(f.Hours("Half")))
	assert.Equal(t, 1, f.Count("Half", "Night"))
	assert.Equal(t, 0, f.Count("Full", "Night"))
	assert.Equal(t, 0, f.Count("Nobody", "Night"))

	hours := f.HoursSnapshot()
	assert.Equal(t, map[string]float64{"Full": 8, "Half": 38}, hours)

	// snapshots are copies
	counts := f.CountsSnapshot()
	counts["Full"]["Day"] = 99
	assert.Equal(t, 1, f.Count("Full", "Day"))
}

func TestFairnessState_HoursRoundedToTwoPlaces(t *testing.T) {
	f := NewFairnessState([]models.Staff{{Name: "Part", FTE: 0.3}})

	f.Record(models.Staff{Name: "Part", FTE: 0.3}, "Day", 1)

	assert.Equal(t, 3.33, f.HoursSnapshot()["Part"])
}

func TestRuleState_StreakThenGap(t *testing.T) {
	st := newRuleState()

	st.begin("Nina", 2, 3)
	holder, remaining := st.Holder()
	assert.Equal(t, "Nina", holder)
	assert.Equal(t, 2, remaining)

	st.tick()
	st.advance(3)
	st.tick()
	st.advance(3)

	holder, _ = st.Holder()
	assert.Empty(t, holder)

	// three full days of rest, free on the fourth
	for i := 0; i < 3; i++ {
		st.tick()
		assert.Truef(t, st.InGap("Nina"), "day %d of gap", i+1)
	}
	st.tick()
	assert.False(t, st.InGap("Nina"))
}

func TestRuleState_SingleDayStreakRestsAtOnce(t *testing.T) {
	st := newRuleState()

	st.begin("Nina", 0, 1)

	holder, _ := st.Holder()
	assert.Empty(t, holder)
	st.tick()
	assert.True(t, st.InGap("Nina"))
	st.tick()
	assert.False(t, st.InGap("Nina"))
}

func TestRuleState_StaffStreaks(t *testing.T) {
	st := newRuleState()

	st.beginStaff("Alice", 1, 2)
	st.beginStaff("Bob", 2, 2)
	assert.Equal(t, 1, st.Streak("Alice"))

	st.advanceStaff("Alice", 2)
	assert.Zero(t, st.Streak("Alice"))
	assert.True(t, st.InGap("Alice"))
	assert.Equal(t, 2, st.Streak("Bob"))
	assert.False(t, st.InGap("Bob"))
}

func testRun(t *testing.T, cfg models.RosterConfig) *run {
	t.Helper()
	ix, err := buildIndex(cfg, DefaultLeaveShiftName)
	require.NoError(t, err)
	r := &run{
		ix:       ix,
		rng:      rand.New(rand.NewSource(1)),
		fairness: NewFairnessState(ix.staff),
		rules:    make([]*RuleState, len(ix.rules)),
		logger:   nopLogger{},
	}
	for i := range r.rules {
		r.rules[i] = newRuleState()
	}
	return r
}

func monday(t *testing.T, r *run) *day {
	t.Helper()
	cal := calendar{holidays: r.ix.holidays}
	return cal.classify(models.MustParseDate("2025-01-06"))
}

func TestPreferredPool_LowestHoursInDeclarationOrder(t *testing.T) {
	r := testRun(t, models.RosterConfig{
		Staff: []models.Staff{
			{Name: "A", Category: "X", FTE: 1},
			{Name: "B", Category: "X", FTE: 1},
			{Name: "C", Category: "X", FTE: 1},
			{Name: "D", Category: "X", FTE: 1},
		},
	})
	r.fairness.Record(r.ix.staff[0], "Day", 8)
	r.fairness.Record(r.ix.staff[2], "Day", 4)
	d := monday(t, r)
	d.assign("B")

	pool := r.preferredPool(d, r.fairness, 2)

	require.Len(t, pool, 2)
	assert.Equal(t, "D", pool[0].Name)
	assert.Equal(t, "C", pool[1].Name)
}

func TestResolveFallback_PoolThenAllStaff(t *testing.T) {
	r := testRun(t, models.RosterConfig{
		Staff: []models.Staff{
			{Name: "Junior", Category: "J", FTE: 1},
			{Name: "Senior", Category: "S", FTE: 1},
		},
		Shifts: []models.ShiftDefinition{
			{Name: "Consult", Order: 1, Days: []string{"Mon"}, Duration: 8, StaffCategories: []string{"S"}},
		},
	})
	r.fairness.Record(r.ix.staff[1], "Consult", 8)
	d := monday(t, r)

	// the pool holds only Junior, who cannot take the shift
	out := r.resolveFallback(d, r.fairness, []*models.ShiftDefinition{&r.ix.shifts[0]})

	require.Len(t, out, 1)
	assert.Equal(t, []string{"Senior"}, out[0].Staff)
	assert.Equal(t, models.SourceFallback, out[0].Source)
	assert.True(t, d.assigned["Senior"])

	// fallback reads the trackers but does not update them
	assert.Equal(t, 1, r.fairness.Count("Senior", "Consult"))
}

func TestFewestOf_PrefersLeastAssigned(t *testing.T) {
	r := testRun(t, models.RosterConfig{
		Staff: []models.Staff{
			{Name: "A", Category: "X", FTE: 1},
			{Name: "B", Category: "X", FTE: 1},
		},
	})
	r.fairness.Record(r.ix.staff[0], "Night", 11)

	for i := 0; i < 20; i++ {
		s := r.fewestOf(r.fairness, "Night", []*models.Staff{&r.ix.staff[0], &r.ix.staff[1]})
		require.NotNil(t, s)
		assert.Equal(t, "B", s.Name)
	}
	assert.Nil(t, r.fewestOf(r.fairness, "Night", nil))
}

func TestCheckRange(t *testing.T) {
	start := models.MustParseDate("2025-01-01")

	assert.NoError(t, checkRange(start, start, 0))
	assert.NoError(t, checkRange(start, start.AddDays(364), 365))
	assert.ErrorIs(t, checkRange(start, start.AddDays(365), 365), ErrRangeTooLarge)
	assert.ErrorIs(t, checkRange(start, start.AddDays(-1), 0), ErrInvalidRange)
	assert.ErrorIs(t, checkRange(models.Date{}, start, 0), ErrInvalidRange)

	// several centuries, beyond what a time.Duration can hold
	far := models.MustParseDate("1700-01-01")
	assert.ErrorIs(t, checkRange(far, start, 100000), ErrRangeTooLarge)
	assert.Equal(t, 146098, calendar{start: far, end: models.MustParseDate("2100-01-01")}.days())
}

func TestBuildIndex_FirstFixedAssignmentWins(t *testing.T) {
	ix, err := buildIndex(models.RosterConfig{
		Staff: []models.Staff{{Name: "A", FTE: 1}, {Name: "B", FTE: 1}},
		Shifts: []models.ShiftDefinition{
			{Name: "Clinic", Days: []string{"Mon"}},
		},
		FixedAssignments: []models.FixedAssignment{
			{Staff: "A", Shift: "Clinic", Days: []string{"Mon"}},
			{Staff: "B", Shift: "Clinic", Days: []string{"Mon", "Tue"}},
		},
	}, DefaultLeaveShiftName)
	require.NoError(t, err)

	assert.Equal(t, "A", ix.fixed[fixedKey{shift: "Clinic", weekday: "Mon"}])
	assert.Equal(t, "B", ix.fixed[fixedKey{shift: "Clinic", weekday: "Tue"}])
	assert.Nil(t, ix.leaveShift)
}

func TestBuildIndex_RejectsInvalidConfig(t *testing.T) {
	valid := func() models.RosterConfig {
		return models.RosterConfig{
			Staff:  []models.Staff{{Name: "A", Category: "X", FTE: 1}},
			Shifts: []models.ShiftDefinition{{Name: "Day", Days: []string{"Mon"}, Duration: 8}},
		}
	}

	tests := []struct {
		name   string
		mutate func(*models.RosterConfig)
		field  string
	}{
		{"empty staff name", func(c *models.RosterConfig) { c.Staff[0].Name = "" }, "staff[0].name"},
		{"duplicate staff", func(c *models.RosterConfig) { c.Staff = append(c.Staff, c.Staff[0]) }, "staff[1].name"},
		{"negative fte", func(c *models.RosterConfig) { c.Staff[0].FTE = -1 }, "staff[0].fte"},
		{"NaN fte", func(c *models.RosterConfig) { c.Staff[0].FTE = math.NaN() }, "staff[0].fte"},
		{"infinite fte", func(c *models.RosterConfig) { c.Staff[0].FTE = math.Inf(1) }, "staff[0].fte"},
		{"duplicate shift", func(c *models.RosterConfig) { c.Shifts = append(c.Shifts, c.Shifts[0]) }, "shifts[1].name"},
		{"negative duration", func(c *models.RosterConfig) { c.Shifts[0].Duration = -2 }, "shifts[0].duration"},
		{"NaN duration", func(c *models.RosterConfig) { c.Shifts[0].Duration = math.NaN() }, "shifts[0].duration"},
		{"infinite duration", func(c *models.RosterConfig) { c.Shifts[0].Duration = math.Inf(-1) }, "shifts[0].duration"},
		{"unknown rule type", func(c *models.RosterConfig) {
			c.Rules = []models.ContinuityRule{{Kind: "Team", ConsecutiveDays: 1, GapDays: 1}}
		}, "rules[0].type"},
		{"zero consecutive days", func(c *models.RosterConfig) {
			c.Rules = []models.ContinuityRule{{Kind: models.RuleShiftGroup, GapDays: 1}}
		}, "rules[0].consecutive_days"},
		{"leave without dates", func(c *models.RosterConfig) {
			c.Leaves = []models.LeaveInterval{{Staff: "A"}}
		}, "leaves[0]"},
		{"leave ending before it starts", func(c *models.RosterConfig) {
			c.Leaves = []models.LeaveInterval{{
				Staff: "A",
				From:  models.MustParseDate("2025-01-10"),
				To:    models.MustParseDate("2025-01-09"),
			}}
		}, "leaves[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			_, err := buildIndex(cfg, DefaultLeaveShiftName)

			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
