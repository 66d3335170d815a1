package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalog_ProfileFallback(t *testing.T) {
	c := &Catalog{Profiles: []DayProfile{
		{ID: "p_week", Classification: ClassWeekday},
		{ID: "p_weekend", Classification: ClassWeekend},
	}}

	p, exact := c.Profile(ClassWeekend)
	assert.True(t, exact)
	assert.Equal(t, "p_weekend", p.ID)

	// No HOLIDAY profile configured: first profile wins, flagged inexact
	p, exact = c.Profile(ClassHoliday)
	assert.False(t, exact)
	assert.Equal(t, "p_week", p.ID)
}

func TestCatalog_MissingRoleHasNoAllowedRanks(t *testing.T) {
	c := &Catalog{Roles: []Role{
		{ID: RoleGuardSentinel, AllowedRanks: []string{"Soldat"}},
	}}

	role := c.Role(RolePoliceChief)
	assert.Empty(t, role.AllowedRanks)
	assert.False(t, role.Allows("Soldat"))
}
