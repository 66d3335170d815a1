package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvailable_ExemptNeverAvailable(t *testing.T) {
	p := Person{ID: "1", Rank: "Soldat", Exempt: true}

	assert.False(t, Available(p, "2026-09-07", nil))
}

func TestAvailable_AbsenceBoundsAreInclusive(t *testing.T) {
	p := Person{ID: "1", Rank: "Soldat"}
	absences := []AbsenceRecord{
		{ID: "a1", PersonID: "1", Category: AbsenceLeave, Start: "2026-09-07", End: "2026-09-10"},
	}

	assert.False(t, Available(p, "2026-09-07", absences), "start date is covered")
	assert.False(t, Available(p, "2026-09-10", absences), "end date is covered")
	assert.False(t, Available(p, "2026-09-08", absences))
	assert.True(t, Available(p, "2026-09-06", absences))
	assert.True(t, Available(p, "2026-09-11", absences))
}

func TestAvailable_OtherPersonsAbsenceIgnored(t *testing.T) {
	p := Person{ID: "1", Rank: "Soldat"}
	absences := []AbsenceRecord{
		{ID: "a1", PersonID: "2", Category: AbsenceMission, Start: "2026-09-01", End: "2026-09-30"},
	}

	assert.True(t, Available(p, "2026-09-07", absences))
}

func TestAvailablePool(t *testing.T) {
	personnel := []Person{
		{ID: "1", Rank: "Soldat"},
		{ID: "2", Rank: "Soldat", Exempt: true},
		{ID: "3", Rank: "Caporal"},
	}
	absences := []AbsenceRecord{
		{ID: "a1", PersonID: "3", Category: AbsenceIllness, Start: "2026-09-07", End: "2026-09-07"},
	}

	pool := AvailablePool(personnel, "2026-09-07", absences)

	assert.Len(t, pool, 1)
	assert.Equal(t, "1", pool[0].ID)
}
