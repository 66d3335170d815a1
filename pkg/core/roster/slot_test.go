package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sampleRoster() *Roster {
	return &Roster{
		Date:           "2026-09-07",
		Classification: ClassWeekday,
		Status:         StatusDraft,
		PoliceStation:  PoliceStationAssignment{ChiefID: strPtr("c1")},
		Standby:        StandbyAssignment{OfficerID: strPtr("o1"), NCOID: strPtr("n1")},
		Specialists: []SpecialistAssignment{
			{Specialty: "Conducteur", PersonID: strPtr("sp1")},
			{Specialty: "Infirmier"},
		},
		GuardPoints: []GuardPointAssignment{
			{PointID: 1, Sentinels: [SentinelsPerPoint]*string{strPtr("g1"), strPtr("g2"), nil}},
		},
	}
}

func TestRoster_BusySet(t *testing.T) {
	r := sampleRoster()

	busy := r.BusySet()

	assert.Equal(t, map[string]bool{
		"c1": true, "o1": true, "n1": true, "sp1": true, "g1": true, "g2": true,
	}, busy)
	assert.True(t, r.Occupies("g1"))
	assert.False(t, r.Occupies("missing"))
}

func TestRoster_OccupantSingletons(t *testing.T) {
	r := sampleRoster()

	chief, err := r.Occupant(SlotRef{Kind: SlotPoliceChief})
	require.NoError(t, err)
	require.NotNil(t, chief)
	assert.Equal(t, "c1", *chief)

	deputy, err := r.Occupant(SlotRef{Kind: SlotPoliceDeputy})
	require.NoError(t, err)
	assert.Nil(t, deputy, "vacant slot yields nil occupant")
}

func TestRoster_OccupantSpecialist(t *testing.T) {
	r := sampleRoster()

	occ, err := r.Occupant(SlotRef{Kind: SlotSpecialist, Specialty: "Conducteur", Index: 0})
	require.NoError(t, err)
	assert.Equal(t, "sp1", *occ)

	// Mismatched specialty for the index is an addressing error
	_, err = r.Occupant(SlotRef{Kind: SlotSpecialist, Specialty: "Conducteur", Index: 1})
	assert.ErrorIs(t, err, ErrUnknownSlot)

	_, err = r.Occupant(SlotRef{Kind: SlotSpecialist, Specialty: "Infirmier", Index: 5})
	assert.ErrorIs(t, err, ErrUnknownSlot)
}

func TestRoster_OccupantSentinel(t *testing.T) {
	r := sampleRoster()

	occ, err := r.Occupant(SlotRef{Kind: SlotSentinel, PointID: 1, Index: 1})
	require.NoError(t, err)
	assert.Equal(t, "g2", *occ)

	occ, err = r.Occupant(SlotRef{Kind: SlotSentinel, PointID: 1, Index: 2})
	require.NoError(t, err)
	assert.Nil(t, occ)

	_, err = r.Occupant(SlotRef{Kind: SlotSentinel, PointID: 9, Index: 0})
	assert.ErrorIs(t, err, ErrUnknownSlot)

	_, err = r.Occupant(SlotRef{Kind: SlotSentinel, PointID: 1, Index: 3})
	assert.ErrorIs(t, err, ErrUnknownSlot)
}

func TestRoster_SetOccupant(t *testing.T) {
	r := sampleRoster()

	require.NoError(t, r.SetOccupant(SlotRef{Kind: SlotStandbyOfficer}, strPtr("o2")))
	assert.Equal(t, "o2", *r.Standby.OfficerID)

	require.NoError(t, r.SetOccupant(SlotRef{Kind: SlotSentinel, PointID: 1, Index: 2}, strPtr("g3")))
	assert.Equal(t, "g3", *r.GuardPoints[0].Sentinels[2])

	// Vacate
	require.NoError(t, r.SetOccupant(SlotRef{Kind: SlotPoliceChief}, nil))
	assert.Nil(t, r.PoliceStation.ChiefID)

	err := r.SetOccupant(SlotRef{Kind: "bogus"}, strPtr("x"))
	assert.ErrorIs(t, err, ErrUnknownSlot)
}

func TestRoster_LockUnlock(t *testing.T) {
	r := sampleRoster()
	assert.False(t, r.Locked())

	r.Lock()
	assert.True(t, r.Locked())
	assert.Equal(t, StatusValidated, r.Status)

	r.Unlock()
	assert.False(t, r.Locked())
	assert.Equal(t, StatusDraft, r.Status)
}
