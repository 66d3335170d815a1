package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rbenali/garrison-duty/pkg/core/roster"
	"github.com/rbenali/garrison-duty/pkg/db"
)

func testCatalog() *roster.Catalog {
	cal, _ := roster.NewCalendar(nil, nil)
	return &roster.Catalog{
		Roles: []roster.Role{
			{ID: roster.RoleStandbyOfficer, AllowedRanks: []string{"Lieutenant"}},
			{ID: roster.RoleStandbyNCO, AllowedRanks: []string{"Adjudant"}},
			{ID: roster.RolePoliceChief, AllowedRanks: []string{"Sergent-Chef"}},
			{ID: roster.RolePoliceDeputy, AllowedRanks: []string{"Sergent"}},
			{ID: roster.RoleGuardSentinel, AllowedRanks: []string{"Soldat"}},
		},
		GuardPoints: []roster.GuardPoint{{ID: 1, Name: "Main Gate"}},
		Profiles: []roster.DayProfile{{
			ID:             "p_week",
			Classification: roster.ClassWeekday,
			ActivePointIDs: []int{1},
		}},
		Calendar: cal,
	}
}

func seededStore(t *testing.T) *db.MemoryDB {
	t.Helper()
	store := db.NewMemoryDB()
	personnel := []roster.Person{
		{ID: "off1", Rank: "Lieutenant"},
		{ID: "off2", Rank: "Lieutenant"},
		{ID: "nco1", Rank: "Adjudant"},
		{ID: "s1", Rank: "Soldat"},
		{ID: "s2", Rank: "Soldat"},
		{ID: "s3", Rank: "Soldat"},
		{ID: "s4", Rank: "Soldat"},
	}
	require.NoError(t, store.ReplacePersonnel(context.Background(), personnel))
	return store
}

const monday = roster.Date("2026-09-07")

func TestGenerateRoster_PersistsDraft(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	result, err := GenerateRoster(ctx, store, testCatalog(), zap.NewNop(), monday, nil)
	require.NoError(t, err)
	assert.Equal(t, roster.StatusDraft, result.Status)

	stored, err := GetRoster(ctx, store, monday)
	require.NoError(t, err)
	assert.Equal(t, result.BusySet(), stored.BusySet())
}

func TestGenerateRoster_ReplacesExistingDraft(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()
	catalog := testCatalog()

	first, err := GenerateRoster(ctx, store, catalog, zap.NewNop(), monday, nil)
	require.NoError(t, err)

	// Manually vacate a slot, then regenerate: the edit is discarded
	require.NoError(t, first.SetOccupant(roster.SlotRef{Kind: roster.SlotStandbyOfficer}, nil))
	require.NoError(t, store.SaveRoster(ctx, first))

	second, err := GenerateRoster(ctx, store, catalog, zap.NewNop(), monday, nil)
	require.NoError(t, err)
	assert.NotNil(t, second.Standby.OfficerID, "regeneration fully replaces the draft")
}

func TestGenerateRoster_RejectedWhenValidated(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()
	catalog := testCatalog()

	first, err := GenerateRoster(ctx, store, catalog, zap.NewNop(), monday, nil)
	require.NoError(t, err)
	_, err = SetRosterStatus(ctx, store, zap.NewNop(), monday, roster.StatusValidated)
	require.NoError(t, err)

	_, err = GenerateRoster(ctx, store, catalog, zap.NewNop(), monday, nil)
	assert.ErrorIs(t, err, ErrRosterLocked)

	// The stored roster is untouched
	stored, err := GetRoster(ctx, store, monday)
	require.NoError(t, err)
	assert.Equal(t, roster.StatusValidated, stored.Status)
	assert.Equal(t, first.BusySet(), stored.BusySet())
}

func TestSetRosterStatus_RoundTripPreservesSlots(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	original, err := GenerateRoster(ctx, store, testCatalog(), zap.NewNop(), monday, nil)
	require.NoError(t, err)

	locked, err := SetRosterStatus(ctx, store, zap.NewNop(), monday, roster.StatusValidated)
	require.NoError(t, err)
	assert.Equal(t, roster.StatusValidated, locked.Status)

	unlocked, err := SetRosterStatus(ctx, store, zap.NewNop(), monday, roster.StatusDraft)
	require.NoError(t, err)
	assert.Equal(t, roster.StatusDraft, unlocked.Status)
	assert.Equal(t, original.BusySet(), unlocked.BusySet())
}

func TestSetRosterStatus_MissingRoster(t *testing.T) {
	store := db.NewMemoryDB()

	_, err := SetRosterStatus(context.Background(), store, zap.NewNop(), monday, roster.StatusValidated)
	assert.ErrorIs(t, err, ErrRosterNotFound)
}

func TestListReplacementCandidates(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()
	catalog := testCatalog()

	_, err := GenerateRoster(ctx, store, catalog, zap.NewNop(), monday, nil)
	require.NoError(t, err)

	candidates, err := ListReplacementCandidates(ctx, store, catalog, zap.NewNop(),
		monday, roster.SlotRef{Kind: roster.SlotStandbyOfficer})
	require.NoError(t, err)

	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ID)
	}
	// off1 holds the slot (never blocked by themselves), off2 is free
	assert.ElementsMatch(t, []string{"off1", "off2"}, ids)
}

func TestApplyReplacement_CommitsAndRevertsToDraft(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()
	catalog := testCatalog()

	_, err := GenerateRoster(ctx, store, catalog, zap.NewNop(), monday, nil)
	require.NoError(t, err)

	result, err := ApplyReplacement(ctx, store, catalog, zap.NewNop(),
		monday, roster.SlotRef{Kind: roster.SlotStandbyOfficer}, "off2")
	require.NoError(t, err)

	assert.Equal(t, roster.StatusDraft, result.Status)
	require.NotNil(t, result.Standby.OfficerID)
	assert.Equal(t, "off2", *result.Standby.OfficerID)

	stored, err := GetRoster(ctx, store, monday)
	require.NoError(t, err)
	assert.Equal(t, "off2", *stored.Standby.OfficerID)
}

func TestApplyReplacement_RejectedWhenValidated(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()
	catalog := testCatalog()

	_, err := GenerateRoster(ctx, store, catalog, zap.NewNop(), monday, nil)
	require.NoError(t, err)
	_, err = SetRosterStatus(ctx, store, zap.NewNop(), monday, roster.StatusValidated)
	require.NoError(t, err)

	_, err = ApplyReplacement(ctx, store, catalog, zap.NewNop(),
		monday, roster.SlotRef{Kind: roster.SlotStandbyOfficer}, "off2")
	assert.ErrorIs(t, err, ErrRosterLocked)

	stored, err := GetRoster(ctx, store, monday)
	require.NoError(t, err)
	assert.NotEqual(t, "off2", *stored.Standby.OfficerID)
}

func TestApplyReplacement_ReValidatesEligibility(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()
	catalog := testCatalog()

	_, err := GenerateRoster(ctx, store, catalog, zap.NewNop(), monday, nil)
	require.NoError(t, err)

	// Wrong rank for the officer slot
	_, err = ApplyReplacement(ctx, store, catalog, zap.NewNop(),
		monday, roster.SlotRef{Kind: roster.SlotStandbyOfficer}, "s4")
	assert.ErrorIs(t, err, ErrIneligibleCandidate)

	// Unknown person id
	_, err = ApplyReplacement(ctx, store, catalog, zap.NewNop(),
		monday, roster.SlotRef{Kind: roster.SlotStandbyOfficer}, "ghost")
	assert.ErrorIs(t, err, ErrUnknownPerson)
}

func TestApplyReplacement_ExclusivityEnforced(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()
	catalog := testCatalog()

	generated, err := GenerateRoster(ctx, store, catalog, zap.NewNop(), monday, nil)
	require.NoError(t, err)

	// Deterministic fill puts s1, s2, s3 on the three sentinel slots
	first := generated.GuardPoints[0].Sentinels[0]
	require.NotNil(t, first)
	require.Equal(t, "s1", *first)

	// s1 already stands a post; moving them onto a second one is refused
	// even though the rank matches
	_, err = ApplyReplacement(ctx, store, catalog, zap.NewNop(),
		monday, roster.SlotRef{Kind: roster.SlotSentinel, PointID: 1, Index: 1}, "s1")
	assert.ErrorIs(t, err, ErrIneligibleCandidate)

	// A free soldier of the same rank is accepted on that same slot
	result, err := ApplyReplacement(ctx, store, catalog, zap.NewNop(),
		monday, roster.SlotRef{Kind: roster.SlotSentinel, PointID: 1, Index: 1}, "s4")
	require.NoError(t, err)
	require.NotNil(t, result.GuardPoints[0].Sentinels[1])
	assert.Equal(t, "s4", *result.GuardPoints[0].Sentinels[1])
}
