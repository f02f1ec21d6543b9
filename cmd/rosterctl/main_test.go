package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arnavshah/duty-roster-go/pkg/models"
	"github.com/arnavshah/duty-roster-go/pkg/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wardYAML = `
staff:
  - {name: Alice, category: A, fte: 1}
  - {name: Bob, category: A, fte: 1}
shifts:
  - name: Day
    order: 1
    days: [Mon, Tue, Wed, Thu, Fri]
    duration: 8
    staff_categories: [A]
  - name: Radiology
    order: 2
    days: [Mon]
    duration: 8
    staff_categories: [R]
public_holidays:
  - date: 2025-01-07
    name: Test Day
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func generateWard(t *testing.T) (models.RosterConfig, *models.Roster) {
	t.Helper()
	cfg, err := loadRosterConfig(writeFile(t, "ward.yaml", wardYAML))
	require.NoError(t, err)

	seed := int64(1)
	out, err := roster.NewGenerator().Generate(context.Background(), models.RosterRequest{
		StartDate: models.MustParseDate("2025-01-06"),
		EndDate:   models.MustParseDate("2025-01-08"),
		Seed:      &seed,
		Config:    cfg,
	})
	require.NoError(t, err)
	return cfg, out
}

func TestLoadRosterConfig(t *testing.T) {
	cfg, err := loadRosterConfig(writeFile(t, "ward.yaml", wardYAML))
	require.NoError(t, err)
	assert.Len(t, cfg.Staff, 2)
	assert.Equal(t, "2025-01-07", cfg.PublicHolidays[0].Date.String())

	asJSON, err := json.Marshal(cfg)
	require.NoError(t, err)
	fromJSON, err := loadRosterConfig(writeFile(t, "ward.json", string(asJSON)))
	require.NoError(t, err)
	assert.Equal(t, cfg, fromJSON)

	_, err = loadRosterConfig(writeFile(t, "ward.toml", ""))
	assert.ErrorContains(t, err, "unsupported")

	_, err = loadRosterConfig("")
	assert.Error(t, err)
}

func TestRender_Table(t *testing.T) {
	cfg, out := generateWard(t)

	var buf bytes.Buffer
	require.NoError(t, render(&buf, "table", cfg, out))

	s := buf.String()
	assert.Contains(t, s, "Radiology")
	assert.Contains(t, s, "Tue (PH)")
	assert.Contains(t, s, "VACANT")
	assert.Contains(t, s, "Fairness")
	assert.Contains(t, s, "1 vacant shift(s)")
	assert.Contains(t, s, "2 staff not in an eligible category")
}

func TestRender_CSVAndJSON(t *testing.T) {
	cfg, out := generateWard(t)

	var csvBuf bytes.Buffer
	require.NoError(t, render(&csvBuf, "csv", cfg, out))
	lines := strings.Split(strings.TrimSpace(csvBuf.String()), "\n")
	// Mon: Day + Radiology, Tue (PH): nothing, Wed: Day
	assert.Len(t, lines, 4)

	var jsonBuf bytes.Buffer
	require.NoError(t, render(&jsonBuf, "json", cfg, out))
	var back models.Roster
	require.NoError(t, json.Unmarshal(jsonBuf.Bytes(), &back))
	assert.Equal(t, out.Days, back.Days)

	assert.Error(t, render(&bytes.Buffer{}, "xml", cfg, out))
}
