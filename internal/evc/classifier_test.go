package evc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Na1awut/NDLP/internal/models"
)

func TestRawZone_Boundaries(t *testing.T) {
	cases := []struct {
		e    float64
		want models.Zone
	}{
		{-10, models.ZoneExtremeNegative},
		{-6, models.ZoneExtremeNegative},
		{-5.9, models.ZoneNegative},
		{-2, models.ZoneNegative},
		{-1.9, models.ZoneNeutral},
		{0, models.ZoneNeutral},
		{2, models.ZoneNeutral},
		{2.1, models.ZonePositive},
		{6, models.ZonePositive},
		{6.1, models.ZoneOverheatPositive},
		{10, models.ZoneOverheatPositive},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, rawZone(c.e), "e=%v", c.e)
	}
}

func TestClassifyZone_NoPriorUsesRaw(t *testing.T) {
	assert.Equal(t, models.ZoneNegative, ClassifyZone(-3, "", 0.3))
}

func TestClassifyZone_HysteresisHoldsNearBoundary(t *testing.T) {
	// Dropping just past -2 from Neutral does not flip until the value
	// clears the boundary by the dead-band.
	assert.Equal(t, models.ZoneNeutral, ClassifyZone(-2.2, models.ZoneNeutral, 0.3))
	assert.Equal(t, models.ZoneNegative, ClassifyZone(-2.4, models.ZoneNeutral, 0.3))

	// Same on the way back up.
	assert.Equal(t, models.ZoneNegative, ClassifyZone(-1.8, models.ZoneNegative, 0.3))
	assert.Equal(t, models.ZoneNeutral, ClassifyZone(-1.6, models.ZoneNegative, 0.3))
}

func TestClassifyZone_OscillationAroundBoundaryIsStable(t *testing.T) {
	zone := models.ZoneNeutral
	for i := 0; i < 10; i++ {
		e := -2.1
		if i%2 == 1 {
			e = -1.9
		}
		zone = ClassifyZone(e, zone, 0.3)
		assert.Equal(t, models.ZoneNeutral, zone, "iteration %d", i)
	}
}

func TestClassifyZone_ClearCrossingFlips(t *testing.T) {
	assert.Equal(t, models.ZoneExtremeNegative, ClassifyZone(-6.5, models.ZoneNegative, 0.3))
	assert.Equal(t, models.ZoneOverheatPositive, ClassifyZone(6.5, models.ZonePositive, 0.3))
}

func history(es ...float64) []models.EnergySample {
	base := time.Unix(1700000000, 0)
	out := make([]models.EnergySample, len(es))
	for i, e := range es {
		out[i] = models.EnergySample{At: base.Add(time.Duration(i) * time.Minute), E: e}
	}
	return out
}

func TestClassifyPhase(t *testing.T) {
	assert.Equal(t, models.PhaseStable, ClassifyPhase(nil, 0.5, -6))
	assert.Equal(t, models.PhaseStable, ClassifyPhase(history(1), 0.5, -6))

	assert.Equal(t, models.PhaseRising, ClassifyPhase(history(0, 1, 2, 3), 0.5, -6))
	assert.Equal(t, models.PhaseFalling, ClassifyPhase(history(3, 2, 1, 0), 0.5, -6))
	assert.Equal(t, models.PhaseStable, ClassifyPhase(history(1, 1.2, 1.1, 1.3), 0.5, -6))
}

func TestClassifyPhase_CrashRecovery(t *testing.T) {
	// Climbing after touching the crisis band inside the window.
	assert.Equal(t, models.PhaseCrashRecovery, ClassifyPhase(history(-7, -5, -3), 0.5, -6))

	// Climbing without a crisis in the window is plain Rising.
	assert.Equal(t, models.PhaseRising, ClassifyPhase(history(-4, -2, 0), 0.5, -6))

	// Still falling through the crisis band is Falling, not recovery.
	assert.Equal(t, models.PhaseFalling, ClassifyPhase(history(-3, -5, -7), 0.5, -6))
}
