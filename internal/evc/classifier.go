package evc

import "github.com/Na1awut/NDLP/internal/models"

// Zone boundaries, ascending. boundary[i] separates zoneOrder[i] from
// zoneOrder[i+1].
var zoneBoundaries = [4]float64{-6, -2, 2, 6}

var zoneOrder = [5]models.Zone{
	models.ZoneExtremeNegative,
	models.ZoneNegative,
	models.ZoneNeutral,
	models.ZonePositive,
	models.ZoneOverheatPositive,
}

func rawZone(e float64) models.Zone {
	for i, b := range zoneBoundaries {
		if e <= b {
			return zoneOrder[i]
		}
	}
	return zoneOrder[len(zoneOrder)-1]
}

func zoneIndex(z models.Zone) int {
	for i, v := range zoneOrder {
		if v == z {
			return i
		}
	}
	return 2 // unknown zones classify from scratch as Neutral
}

// ClassifyZone maps the energy to a zone with hysteresis: when the raw
// classification differs from prev, the new zone is accepted only if the
// value clears the crossed boundary by more than deadband; otherwise prev
// is retained. The bounded step rule guarantees at most one boundary is
// crossed per message, so prev is always adjacent to the raw zone here.
func ClassifyZone(e float64, prev models.Zone, deadband float64) models.Zone {
	raw := rawZone(e)
	if prev == "" || raw == prev {
		return raw
	}
	pi, ri := zoneIndex(prev), zoneIndex(raw)
	if ri > pi {
		if e > zoneBoundaries[pi]+deadband {
			return raw
		}
		return prev
	}
	if e <= zoneBoundaries[ri]-deadband {
		return raw
	}
	return prev
}

// ClassifyPhase derives the phase from the trend of the rolling history.
// Slope is the average per-sample delta across the window; CrashRecovery
// wins when the identity touched the crisis band inside the window and is
// now climbing.
func ClassifyPhase(history []models.EnergySample, slopeThreshold, crisisAt float64) models.Phase {
	if len(history) < 2 {
		return models.PhaseStable
	}

	first, last := history[0], history[len(history)-1]
	slope := (last.E - first.E) / float64(len(history)-1)

	if slope > 0 {
		for _, s := range history {
			if s.E <= crisisAt {
				return models.PhaseCrashRecovery
			}
		}
	}

	switch {
	case slope > slopeThreshold:
		return models.PhaseRising
	case slope < -slopeThreshold:
		return models.PhaseFalling
	default:
		return models.PhaseStable
	}
}
