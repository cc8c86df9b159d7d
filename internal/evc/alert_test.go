package evc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Na1awut/NDLP/internal/models"
)

func TestDecider_RaisesAtThreshold(t *testing.T) {
	d := NewDecider(testEVCConfig())
	now := time.Unix(1700000000, 0)
	st := &models.EmotionalState{E: -6, Zone: models.ZoneExtremeNegative}
	rec := &models.AlertRecord{}

	raised, payload := d.Decide("id-1", st, rec, "telegram", now)
	require.True(t, raised)
	require.NotNil(t, payload)
	assert.Equal(t, models.IdentityID("id-1"), payload.Identity)
	assert.Equal(t, -6.0, payload.Energy)
	assert.Equal(t, "telegram", payload.Platform)
	assert.Equal(t, now, rec.LastAlertAt)
}

func TestDecider_AboveThresholdNeverRaises(t *testing.T) {
	d := NewDecider(testEVCConfig())
	st := &models.EmotionalState{E: -5.9}
	rec := &models.AlertRecord{}

	raised, payload := d.Decide("id-1", st, rec, "telegram", time.Now())
	assert.False(t, raised)
	assert.Nil(t, payload)
	assert.True(t, rec.LastAlertAt.IsZero())
}

func TestDecider_CooldownSuppressesAndExpires(t *testing.T) {
	d := NewDecider(testEVCConfig())
	t0 := time.Unix(1700000000, 0)
	st := &models.EmotionalState{E: -8}
	rec := &models.AlertRecord{}

	raised, _ := d.Decide("id-1", st, rec, "discord", t0)
	require.True(t, raised)

	// One hour later: still deep in crisis, but inside the cool-down.
	raised, _ = d.Decide("id-1", st, rec, "discord", t0.Add(time.Hour))
	assert.False(t, raised)
	assert.Equal(t, t0, rec.LastAlertAt)

	// Seven hours later the cool-down has elapsed.
	raised, _ = d.Decide("id-1", st, rec, "discord", t0.Add(7*time.Hour))
	assert.True(t, raised)
	assert.Equal(t, t0.Add(7*time.Hour), rec.LastAlertAt)
}

func TestDecider_MergedCooldownSurvives(t *testing.T) {
	// A later alert stamp inherited through a merge still suppresses.
	d := NewDecider(testEVCConfig())
	t0 := time.Unix(1700000000, 0)
	st := &models.EmotionalState{E: -9}
	rec := &models.AlertRecord{LastAlertAt: t0}

	raised, _ := d.Decide("id-1", st, rec, "web", t0.Add(5*time.Hour))
	assert.False(t, raised)
}
