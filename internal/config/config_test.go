package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbenali/garrison-duty/pkg/core/roster"
)

func validConfig() *Config {
	return &Config{
		Store: StoreConfig{Backend: "memory"},
		Ranks: []RankConfig{
			{ID: "Lieutenant", Label: "Lieutenant", Order: 1},
			{ID: "Soldat", Label: "Soldat", Order: 2},
		},
		Roles: []RoleConfig{
			{ID: "standby_officer", Name: "Officier de permanence", AllowedRanks: []string{"Lieutenant"}},
			{ID: "guard", Name: "Sentinelle", AllowedRanks: []string{"Soldat"}},
		},
		GuardPoints: []GuardPointConfig{
			{ID: 1, Name: "Poste principal"},
		},
		Profiles: []ProfileConfig{
			{ID: "p_week", DayType: "WEEKDAY", ActivePointIDs: []int{1}},
			{ID: "p_wend", DayType: "WEEKEND", ActivePointIDs: []int{1},
				Specialists: []SpecialistConfig{{Specialty: "Infirmier", Count: 1}}},
		},
		Holidays: HolidayConfig{
			Dates: []string{"2026-11-01"},
			Rules: []string{"FREQ=YEARLY;BYMONTH=7;BYMONTHDAY=5"},
		},
		RotationHours: []string{"06:00", "08:00"},
	}
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, Validate(validConfig()))
}

func TestValidate_BackendSettings(t *testing.T) {
	cfg := validConfig()
	cfg.Store.Backend = "sqlite"
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.path")

	cfg.Store.Path = "garrison.db"
	assert.NoError(t, Validate(cfg))

	cfg = validConfig()
	cfg.Store.Backend = "postgres"
	err = Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.dsn")

	cfg.Store.Backend = "mongodb"
	assert.Error(t, Validate(cfg), "unknown backends are rejected")
}

func TestValidate_UnknownRankReference(t *testing.T) {
	cfg := validConfig()
	cfg.Roles[0].AllowedRanks = []string{"Capitaine"}

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown rank")
}

func TestValidate_DuplicateDayType(t *testing.T) {
	cfg := validConfig()
	cfg.Profiles[1].DayType = "WEEKDAY"

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate profile")
}

func TestValidate_UnknownGuardPoint(t *testing.T) {
	cfg := validConfig()
	cfg.Profiles[0].ActivePointIDs = []int{99}

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown guard point")
}

func TestValidate_BadHolidays(t *testing.T) {
	cfg := validConfig()
	cfg.Holidays.Dates = []string{"01/11/2026"}
	require.Error(t, Validate(cfg))

	cfg = validConfig()
	cfg.Holidays.Rules = []string{"FREQ=SOMETIMES"}
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule")
}

func TestLoadFromPath(t *testing.T) {
	content := `
store:
  backend: memory
ranks:
  - id: Lieutenant
    label: Lieutenant
    order: 1
  - id: Soldat
    label: Soldat
    order: 2
roles:
  - id: standby_officer
    name: Officier de permanence
    allowedRanks: [Lieutenant]
  - id: guard
    name: Sentinelle
    allowedRanks: [Soldat]
guardPoints:
  - id: 1
    name: Poste principal
    location: Entrée nord
profiles:
  - id: p_week
    dayType: WEEKDAY
    activePointIds: [1]
    requiredSpecialists:
      - specialty: Infirmier
        count: 2
holidays:
  dates: ["2026-11-01"]
  rules: ["FREQ=YEARLY;BYMONTH=7;BYMONTHDAY=14"]
rotationHours: ["06:00", "08:00"]
`
	path := filepath.Join(t.TempDir(), "garrison_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Len(t, cfg.Ranks, 2)
	assert.Equal(t, []string{"Lieutenant"}, cfg.Roles[0].AllowedRanks)
	assert.Equal(t, "Entrée nord", cfg.GuardPoints[0].Location)
	assert.Equal(t, 2, cfg.Profiles[0].Specialists[0].Count)
}

func TestLoadFromPath_Missing(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestCatalog(t *testing.T) {
	catalog, err := validConfig().Catalog()
	require.NoError(t, err)

	assert.Len(t, catalog.Ranks, 2)
	assert.Len(t, catalog.Roles, 2)
	assert.Equal(t, roster.RoleID("standby_officer"), catalog.Roles[0].ID)
	assert.Equal(t, []string{"06:00", "08:00"}, catalog.RotationHours)

	profile, exact := catalog.Profile(roster.ClassWeekend)
	assert.True(t, exact)
	assert.Equal(t, "p_wend", profile.ID)

	// Fixed date and recurring rule both classify as holidays
	assert.Equal(t, roster.ClassHoliday, roster.Classify("2026-11-01", catalog.Calendar))
	assert.Equal(t, roster.ClassHoliday, roster.Classify("2026-07-05", catalog.Calendar))
	assert.Equal(t, roster.ClassWeekday, roster.Classify("2026-09-07", catalog.Calendar))
}
