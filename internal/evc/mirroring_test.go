package evc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Na1awut/NDLP/internal/models"
)

func TestMirror_PacesDownWithNegativeUser(t *testing.T) {
	m := NewMirror()
	ms := &models.MirrorState{}

	m.Update(ms, -5)
	assert.Less(t, ms.BotE, 0.0)
	// The bot never drops as far as the user.
	assert.Greater(t, ms.BotE, -5.0)
	assert.Equal(t, 1, ms.PacingTurns)
}

func TestMirror_LeadsUpwardAfterPacing(t *testing.T) {
	m := NewMirror()
	ms := &models.MirrorState{}

	// Pace long enough to reach equilibrium against a flat -6 user.
	for i := 0; i < m.MinPacing; i++ {
		m.Update(ms, -6)
	}
	paced := ms.BotE

	// From now on the lead term pulls the target up each turn even though
	// the user stays put.
	for i := 0; i < 6; i++ {
		m.Update(ms, -6)
	}
	assert.Greater(t, ms.BotE, paced)
}

func TestMirror_MatchesPositiveUser(t *testing.T) {
	m := NewMirror()
	ms := &models.MirrorState{}

	for i := 0; i < 20; i++ {
		m.Update(ms, 5)
	}
	// Converges near MatchRatio * 5, never above it.
	assert.InDelta(t, 4.0, ms.BotE, 0.2)
	assert.LessOrEqual(t, ms.BotE, m.BotMax)
	assert.Equal(t, 0, ms.NegativeStreak)
}

func TestMirror_BoundsHold(t *testing.T) {
	m := NewMirror()
	ms := &models.MirrorState{}

	for i := 0; i < 50; i++ {
		m.Update(ms, -10)
	}
	assert.GreaterOrEqual(t, ms.BotE, m.BotMin)

	for i := 0; i < 100; i++ {
		m.Update(ms, 10)
	}
	assert.LessOrEqual(t, ms.BotE, m.BotMax)
}

func TestMirror_ToneBands(t *testing.T) {
	m := NewMirror()
	assert.Equal(t, models.BotToneDeepEmpathy, m.Tone(models.MirrorState{BotE: -5}))
	assert.Equal(t, models.BotToneGentleSupport, m.Tone(models.MirrorState{BotE: -1}))
	assert.Equal(t, models.BotToneSoftEncouragement, m.Tone(models.MirrorState{BotE: 1}))
	assert.Equal(t, models.BotToneHopefulLead, m.Tone(models.MirrorState{BotE: 4}))
}
