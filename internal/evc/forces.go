package evc

import "github.com/Na1awut/NDLP/internal/models"

// Force weights. S and D are convex combinations of their components, so
// both stay in [0,1] before the explicit clamp.
const (
	wPraise  = 0.40
	wApology = 0.30
	wClarity = 0.20
	wTrust   = 0.10

	vInsult      = 0.30
	vSarcasm     = 0.25
	vUncertainty = 0.25
	vConflict    = 0.20

	kBase  = 1.0
	kAlpha = 0.3 // arousal
	kBeta  = 0.2 // uncertainty
	kGamma = 0.4 // risk score

	kMin = 0.5
	kMax = 2.5
)

// Forces are the three scalars the energy update is driven by: Support
// lifts, Drag pulls down, Sensitivity scales the reaction.
type Forces struct {
	S float64 `json:"s"`
	D float64 `json:"d"`
	K float64 `json:"k"`
}

// ComputeForces derives (S, D, K) from the feature vector and the prior
// state. Pure function: same inputs, same output.
func ComputeForces(f models.EmotionFeatures, prior *models.EmotionalState) Forces {
	return Forces{
		S: supportForce(f, prior),
		D: dragForce(f),
		K: sensitivity(f, prior),
	}
}

func supportForce(f models.EmotionFeatures, prior *models.EmotionalState) float64 {
	var praise float64
	switch {
	case f.Intent == models.IntentPraise:
		praise = max(0, f.Valence)
	case f.Valence > 0.3:
		praise = f.Valence * 0.5 // partial credit for plain positive valence
	}

	var apology float64
	if f.Intent == models.IntentApology {
		apology = 0.5
	}

	clarity := 1.0 - f.Uncertainty

	trust := (1.0 - f.SarcasmProb) * 0.5
	if prior.E > 0 {
		trust += 0.3
	}

	s := wPraise*praise + wApology*apology + wClarity*clarity + wTrust*trust
	return clamp(s, 0, 1)
}

func dragForce(f models.EmotionFeatures) float64 {
	insult := max(0, -f.Valence)

	var conflict float64
	if f.Valence < 0 && f.Dominance > 0.6 {
		conflict = f.Dominance * 0.5
	}

	d := vInsult*insult + vSarcasm*f.SarcasmProb + vUncertainty*f.Uncertainty + vConflict*conflict
	return clamp(d, 0, 1)
}

func sensitivity(f models.EmotionFeatures, prior *models.EmotionalState) float64 {
	risk := riskScore(prior.Flags)
	k := kBase + kAlpha*f.Arousal + kBeta*f.Uncertainty + kGamma*risk
	return clamp(k, kMin, kMax)
}

// riskScore aggregates the prior turn's flags into [0,1]. A recent crisis
// dominates so the trajectory stays reactive right after one.
func riskScore(fl models.Flags) float64 {
	var r float64
	if fl.Anger {
		r += 0.3
	}
	if fl.Anxiety {
		r += 0.2
	}
	if fl.Stress {
		r += 0.2
	}
	if fl.Sarcasm {
		r += 0.15
	}
	if fl.Crisis {
		r += 0.5
	}
	return min(1, r)
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
