package evc

import "github.com/Na1awut/NDLP/internal/models"

// UpdateFlags derives the per-turn markers from the feature vector and the
// freshly updated energy. crisisAt is the alert threshold from config.
func UpdateFlags(f models.EmotionFeatures, e float64, crisisAt float64) models.Flags {
	return models.Flags{
		Sarcasm:         f.SarcasmProb > 0.5,
		Anger:           f.Valence < -0.5 && f.Arousal > 0.7 && f.Dominance > 0.6,
		Anxiety:         f.Valence < -0.3 && f.Arousal > 0.6 && f.Dominance < 0.4,
		Stress:          f.Arousal > 0.7 && f.SupportNeed > 0.6,
		Crisis:          e <= crisisAt,
		BoundarySetting: f.Dominance > 0.7 && f.Intent == models.IntentAggression,
		MoodSwing:       abs(f.Valence) > 0.7 && f.Arousal > 0.6,
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
