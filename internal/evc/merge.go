package evc

import (
	"sort"

	"github.com/Na1awut/NDLP/internal/models"
)

// MergeStates folds the loser's record into the survivor's after a
// cross-platform link. The more extreme energy wins outright, together
// with the classification and mirror data that belong to it; histories are
// interleaved by timestamp. Both records must be held under their critical
// sections.
func MergeStates(survivor, loser *models.EmotionalState, historySize int) {
	if abs(loser.E) > abs(survivor.E) {
		survivor.E = loser.E
		survivor.PrevE = loser.PrevE
		survivor.DeltaE = loser.DeltaE
		survivor.Zone = loser.Zone
		survivor.Phase = loser.Phase
		survivor.Flags = loser.Flags
		survivor.Mirror = loser.Mirror
		survivor.Hormones = loser.Hormones
		survivor.DeltaHistory = loser.DeltaHistory
	}

	survivor.History = mergeHistory(survivor.History, loser.History, historySize)
	survivor.Turn += loser.Turn
	if loser.LastUpdated.After(survivor.LastUpdated) {
		survivor.LastUpdated = loser.LastUpdated
	}
}

// MergeAlertRecords keeps the later alert timestamp so a merge can never
// re-open a cool-down window.
func MergeAlertRecords(survivor, loser *models.AlertRecord) {
	if loser.LastAlertAt.After(survivor.LastAlertAt) {
		survivor.LastAlertAt = loser.LastAlertAt
	}
}

func mergeHistory(a, b []models.EnergySample, maxLen int) []models.EnergySample {
	merged := make([]models.EnergySample, 0, len(a)+len(b))
	merged = append(merged, a...)
	merged = append(merged, b...)
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].At.Before(merged[j].At)
	})
	if maxLen > 0 && len(merged) > maxLen {
		merged = merged[len(merged)-maxLen:]
	}
	return merged
}
