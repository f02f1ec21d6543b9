package database

import (
	"fmt"
	"testing"

	"github.com/arnavshah/duty-roster-go/pkg/config"
	"github.com/arnavshah/duty-roster-go/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := InitDB(config.Config{
		DataPath: fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	})
	require.NoError(t, err)
	return db
}

func TestKeyFor_CreatesOnce(t *testing.T) {
	db := testDB(t)

	first, err := KeyFor(db, "ward7.0123456789abcdef", "ward7", 500)
	require.NoError(t, err)
	second, err := KeyFor(db, "ward7.0123456789abcdef", "ignored", 1)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "ward7", second.Name)
	assert.Equal(t, 500, second.RateLimit)
	assert.Equal(t, "war...cdef", second.KeyPreview)
	assert.NotNil(t, second.LastUsed)
}

func TestRecordUsage_Upserts(t *testing.T) {
	db := testDB(t)
	key, err := KeyFor(db, "k.1", "k", 10)
	require.NoError(t, err)

	require.NoError(t, RecordUsage(db, key.ID, 28, 7))
	require.NoError(t, RecordUsage(db, key.ID, 7, 3))

	today, err := RequestsToday(db, key.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, today)

	usage, err := UsageHistory(db, key.ID)
	require.NoError(t, err)
	require.Len(t, usage, 1)
	assert.Equal(t, 2, usage[0].RequestCount)
	assert.Equal(t, 35, usage[0].TotalDays)
	assert.Equal(t, 10, usage[0].TotalStaff)
}

func TestSavedConfig_RoundTripsConfigAsJSON(t *testing.T) {
	db := testDB(t)
	cfg := models.RosterConfig{
		Staff:  []models.Staff{{Name: "Alice", Category: "A", FTE: 0.8}},
		Shifts: []models.ShiftDefinition{{Name: "Day", Days: []string{"Mon"}, Duration: 8, StaffCategories: []string{"A"}}},
		Leaves: []models.LeaveInterval{{
			Staff: "Alice",
			From:  models.MustParseDate("2025-03-01"),
			To:    models.MustParseDate("2025-03-02"),
		}},
	}
	require.NoError(t, db.Create(&SavedConfig{KeyID: 1, Name: "ward", Config: cfg}).Error)

	got, err := FindConfig(db, 1, "1")
	require.NoError(t, err)
	assert.Equal(t, cfg, got.Config)

	_, err = FindConfig(db, 2, "1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSaveRun(t *testing.T) {
	db := testDB(t)
	r := &models.Roster{
		ID:            "0b7f6f3e-2d7a-4c55-9d8c-1f7c0e7d2b11",
		StartDate:     models.MustParseDate("2025-01-06"),
		EndDate:       models.MustParseDate("2025-01-12"),
		Seed:          42,
		Days:          make([]models.DayRoster, 7),
		Vacancies:     []models.Vacancy{{Shift: "Night"}},
		FairnessScore: 97.5,
	}

	_, err := SaveRun(db, 3, nil, r)
	require.NoError(t, err)

	runs, err := ListRuns(db, 3, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "2025-01-06", runs[0].StartDate)
	assert.Equal(t, 7, runs[0].Days)
	assert.Equal(t, 1, runs[0].Vacancies)
	assert.Equal(t, int64(42), runs[0].Seed)
}
