package evc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Na1awut/NDLP/internal/models"
)

func hormonalTestPolicy() *HormonalPolicy {
	cfg := testEVCConfig()
	cfg.EnergyPolicy = "hormonal"
	return NewHormonalPolicy(cfg)
}

func TestHormonalPolicy_PersistsLevelsOnState(t *testing.T) {
	p := hormonalTestPolicy()
	st := models.NewNeutralState(time.Unix(1700000000, 0))

	p.Target(models.EmotionFeatures{Valence: 0.5, Arousal: 0.5}, Forces{S: 0.5, D: 0.2, K: 1}, st)

	require.NotNil(t, st.Hormones)
	assert.Len(t, st.Hormones, len(hormoneDefs))
	for _, def := range hormoneDefs {
		level, ok := st.Hormones[def.name]
		require.True(t, ok, def.name)
		assert.GreaterOrEqual(t, level, 0.0)
		assert.LessOrEqual(t, level, hormoneMax)
	}
}

func TestHormonalPolicy_NegativeInputRaisesCortisol(t *testing.T) {
	p := hormonalTestPolicy()
	st := models.NewNeutralState(time.Unix(1700000000, 0))

	distress := models.EmotionFeatures{Valence: -0.9, Arousal: 0.9, Uncertainty: 0.7}
	for i := 0; i < 5; i++ {
		p.Target(distress, Forces{S: 0, D: 0.9, K: 2}, st)
	}

	assert.Greater(t, st.Hormones["cortisol"], 1.0) // above baseline
	assert.Less(t, st.Hormones["serotonin"], 4.0)
}

func TestHormonalPolicy_PositiveInputLiftsTarget(t *testing.T) {
	p := hormonalTestPolicy()
	stPos := models.NewNeutralState(time.Unix(1700000000, 0))
	stNeg := models.NewNeutralState(time.Unix(1700000000, 0))

	joy := models.EmotionFeatures{Valence: 0.9, Arousal: 0.6, Intent: models.IntentPraise}
	pain := models.EmotionFeatures{Valence: -0.9, Arousal: 0.8}

	var posTarget, negTarget float64
	for i := 0; i < 5; i++ {
		posTarget = p.Target(joy, Forces{S: 0.9, D: 0.1, K: 1.2}, stPos)
		negTarget = p.Target(pain, Forces{S: 0.1, D: 0.9, K: 1.2}, stNeg)
	}
	assert.Greater(t, posTarget, negTarget)
}

func TestHormonalPolicy_TargetStaysInBounds(t *testing.T) {
	p := hormonalTestPolicy()
	st := models.NewNeutralState(time.Unix(1700000000, 0))

	extremes := []models.EmotionFeatures{
		{Valence: -1, Arousal: 1, Dominance: 1, Uncertainty: 1, SupportNeed: 1},
		{Valence: 1, Arousal: 1, Intent: models.IntentPraise},
	}
	for _, f := range extremes {
		for i := 0; i < 20; i++ {
			target := p.Target(f, ComputeForces(f, st), st)
			assert.GreaterOrEqual(t, target, -10.0)
			assert.LessOrEqual(t, target, 10.0)
		}
	}
}

func TestDominantState(t *testing.T) {
	assert.Equal(t, "neutral", DominantState(nil))

	levels := map[string]float64{"cortisol": 4.0}
	assert.Equal(t, "stressed", DominantState(levels))

	// Nothing clears the margin over its baseline.
	flat := map[string]float64{"cortisol": 1.2, "dopamine": 2.1}
	assert.Equal(t, "neutral", DominantState(flat))
}

func TestRestoreLevels_ClampsAndDefaults(t *testing.T) {
	levels := restoreLevels(map[string]float64{"serotonin": 99, "cortisol": -5})
	assert.Equal(t, hormoneMax, levels[0])
	assert.Equal(t, 0.0, levels[2])
	assert.Equal(t, 2.0, levels[1]) // dopamine falls back to baseline
}
