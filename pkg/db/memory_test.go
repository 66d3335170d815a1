package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbenali/garrison-duty/pkg/core/roster"
)

func strPtr(s string) *string { return &s }

func sampleRoster(date roster.Date) *roster.Roster {
	return &roster.Roster{
		Date:           date,
		Classification: roster.ClassWeekday,
		Status:         roster.StatusDraft,
		Standby:        roster.StandbyAssignment{OfficerID: strPtr("off1")},
	}
}

func TestMemoryDB_RosterRoundTrip(t *testing.T) {
	store := NewMemoryDB()
	ctx := context.Background()

	missing, err := store.GetRoster(ctx, "2026-09-07")
	require.NoError(t, err)
	assert.Nil(t, missing, "absent roster yields nil, not an error")

	require.NoError(t, store.SaveRoster(ctx, sampleRoster("2026-09-07")))

	got, err := store.GetRoster(ctx, "2026-09-07")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, roster.Date("2026-09-07"), got.Date)
	assert.Equal(t, "off1", *got.Standby.OfficerID)
}

func TestMemoryDB_SaveOverwrites(t *testing.T) {
	store := NewMemoryDB()
	ctx := context.Background()

	require.NoError(t, store.SaveRoster(ctx, sampleRoster("2026-09-07")))

	updated := sampleRoster("2026-09-07")
	updated.Standby.OfficerID = strPtr("off2")
	updated.Status = roster.StatusValidated
	require.NoError(t, store.SaveRoster(ctx, updated))

	got, err := store.GetRoster(ctx, "2026-09-07")
	require.NoError(t, err)
	assert.Equal(t, "off2", *got.Standby.OfficerID)
	assert.Equal(t, roster.StatusValidated, got.Status)
}

func TestMemoryDB_ReturnsIsolatedCopies(t *testing.T) {
	store := NewMemoryDB()
	ctx := context.Background()

	original := sampleRoster("2026-09-07")
	require.NoError(t, store.SaveRoster(ctx, original))

	// Mutating either the saved value or a fetched copy must not leak
	// into stored state
	original.Standby.OfficerID = strPtr("tampered")
	first, err := store.GetRoster(ctx, "2026-09-07")
	require.NoError(t, err)
	first.Status = roster.StatusValidated

	second, err := store.GetRoster(ctx, "2026-09-07")
	require.NoError(t, err)
	assert.Equal(t, "off1", *second.Standby.OfficerID)
	assert.Equal(t, roster.StatusDraft, second.Status)
}

func TestMemoryDB_ListRostersBefore(t *testing.T) {
	store := NewMemoryDB()
	ctx := context.Background()

	for _, d := range []roster.Date{"2026-09-05", "2026-09-06", "2026-09-07", "2026-09-08"} {
		require.NoError(t, store.SaveRoster(ctx, sampleRoster(d)))
	}

	got, err := store.ListRostersBefore(ctx, "2026-09-07")
	require.NoError(t, err)

	dates := make([]roster.Date, 0, len(got))
	for _, r := range got {
		dates = append(dates, r.Date)
	}
	assert.ElementsMatch(t, []roster.Date{"2026-09-05", "2026-09-06"}, dates)
}

func TestMemoryDB_PersonnelAndAbsences(t *testing.T) {
	store := NewMemoryDB()
	ctx := context.Background()

	people := []roster.Person{{ID: "p1", Rank: "Soldat"}, {ID: "p2", Rank: "Sergent"}}
	require.NoError(t, store.ReplacePersonnel(ctx, people))

	got, err := store.ListPersonnel(ctx)
	require.NoError(t, err)
	assert.Equal(t, people, got)

	// Replace is a full swap, not an append
	require.NoError(t, store.ReplacePersonnel(ctx, people[:1]))
	got, err = store.ListPersonnel(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	absences := []roster.AbsenceRecord{{
		ID:       "a1",
		PersonID: "p1",
		Category: roster.AbsenceLeave,
		Start:    "2026-09-01",
		End:      "2026-09-10",
	}}
	require.NoError(t, store.ReplaceAbsences(ctx, absences))
	gotAbs, err := store.ListAbsences(ctx)
	require.NoError(t, err)
	assert.Equal(t, absences, gotAbs)
}
