package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusActive, StatusCompleted, StatusDeclined} {
		assert.True(t, ValidStatus(s), s)
	}
	for _, s := range []string{"", "pending", "Paused", "Done"} {
		assert.False(t, ValidStatus(s), s)
	}
}

func TestEffectiveDate(t *testing.T) {
	req := ServiceRequest{
		ScheduledDate: "2026-04-01",
		CreatedAt:     time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, "2026-04-01", req.EffectiveDate())

	req.ScheduledDate = ""
	assert.Equal(t, "2026-03-02", req.EffectiveDate(), "falls back to the submission date")
}

func TestKnownCategory(t *testing.T) {
	assert.True(t, KnownCategory("Pool care"))
	assert.True(t, KnownCategory("Driveway sealing / patio cleaning"))
	assert.True(t, KnownCategory("Others"))

	assert.False(t, KnownCategory(""))
	assert.False(t, KnownCategory("pool care"), "matching is exact, not case-folded")
	assert.False(t, KnownCategory("Chimney sweeping"))
}

func TestDisplayName(t *testing.T) {
	u := User{Username: "janedoe", FirstName: "Jane", LastName: "Doe"}
	assert.Equal(t, "Jane Doe", u.DisplayName())

	u = User{Username: "janedoe"}
	assert.Equal(t, "janedoe", u.DisplayName(), "login stands in when no name is set")
}

func TestIsProvider(t *testing.T) {
	pro := User{Role: RoleLocalProvider}
	member := User{Role: RoleHomeMember}
	assert.True(t, pro.IsProvider())
	assert.False(t, member.IsProvider())
}
