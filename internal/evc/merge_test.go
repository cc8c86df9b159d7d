package evc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Na1awut/NDLP/internal/models"
)

func TestMergeStates_MoreExtremeEnergyWins(t *testing.T) {
	now := time.Unix(1700000000, 0)
	survivor := &models.EmotionalState{E: 3, Zone: models.ZonePositive, Phase: models.PhaseRising, Turn: 4, LastUpdated: now}
	loser := &models.EmotionalState{E: -8, Zone: models.ZoneExtremeNegative, Phase: models.PhaseFalling, Turn: 2, LastUpdated: now.Add(time.Minute)}

	MergeStates(survivor, loser, 16)

	assert.Equal(t, -8.0, survivor.E)
	assert.Equal(t, models.ZoneExtremeNegative, survivor.Zone)
	assert.Equal(t, models.PhaseFalling, survivor.Phase)
	assert.Equal(t, 6, survivor.Turn)
	assert.Equal(t, now.Add(time.Minute), survivor.LastUpdated)
}

func TestMergeStates_SurvivorKeepsOwnWhenMoreExtreme(t *testing.T) {
	survivor := &models.EmotionalState{E: -7, Zone: models.ZoneExtremeNegative}
	loser := &models.EmotionalState{E: 4, Zone: models.ZonePositive}

	MergeStates(survivor, loser, 16)
	assert.Equal(t, -7.0, survivor.E)
	assert.Equal(t, models.ZoneExtremeNegative, survivor.Zone)
}

func TestMergeStates_HistoryInterleavedByTime(t *testing.T) {
	base := time.Unix(1700000000, 0)
	survivor := &models.EmotionalState{History: []models.EnergySample{
		{At: base, E: 1},
		{At: base.Add(2 * time.Minute), E: 2},
	}}
	loser := &models.EmotionalState{History: []models.EnergySample{
		{At: base.Add(time.Minute), E: -1},
		{At: base.Add(3 * time.Minute), E: -2},
	}}

	MergeStates(survivor, loser, 16)

	assert.Len(t, survivor.History, 4)
	for i := 1; i < len(survivor.History); i++ {
		assert.False(t, survivor.History[i].At.Before(survivor.History[i-1].At))
	}
	assert.Equal(t, -2.0, survivor.History[3].E)
}

func TestMergeStates_HistoryCapKeepsNewest(t *testing.T) {
	base := time.Unix(1700000000, 0)
	survivor := &models.EmotionalState{}
	loser := &models.EmotionalState{}
	for i := 0; i < 12; i++ {
		survivor.History = append(survivor.History, models.EnergySample{At: base.Add(time.Duration(2*i) * time.Second), E: float64(i)})
		loser.History = append(loser.History, models.EnergySample{At: base.Add(time.Duration(2*i+1) * time.Second), E: float64(-i)})
	}

	MergeStates(survivor, loser, 16)
	assert.Len(t, survivor.History, 16)
	assert.Equal(t, base.Add(23*time.Second), survivor.History[15].At)
}

func TestMergeAlertRecords_LaterStampWins(t *testing.T) {
	t0 := time.Unix(1700000000, 0)
	a := &models.AlertRecord{LastAlertAt: t0}
	b := &models.AlertRecord{LastAlertAt: t0.Add(time.Hour)}

	MergeAlertRecords(a, b)
	assert.Equal(t, t0.Add(time.Hour), a.LastAlertAt)

	// The other direction leaves the later stamp untouched.
	c := &models.AlertRecord{LastAlertAt: t0.Add(2 * time.Hour)}
	MergeAlertRecords(c, &models.AlertRecord{LastAlertAt: t0})
	assert.Equal(t, t0.Add(2*time.Hour), c.LastAlertAt)
}
