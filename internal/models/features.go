package models

// Intent is the coarse message intent reported by the external extractor.
type Intent string

const (
	IntentGreeting    Intent = "greeting"
	IntentVenting     Intent = "venting"
	IntentSeekingHelp Intent = "seeking_help"
	IntentPraise      Intent = "praise"
	IntentApology     Intent = "apology"
	IntentSarcasm     Intent = "sarcasm"
	IntentAggression  Intent = "aggression"
	IntentNeutral     Intent = "neutral"
	IntentFarewell    Intent = "farewell"
)

// EmotionFeatures is the feature vector produced by the external extraction
// model for a single message. All fields are already normalized by the
// extractor: Valence is in [-1,1], everything else in [0,1].
type EmotionFeatures struct {
	Valence     float64 `json:"valence"`
	Arousal     float64 `json:"arousal"`
	Dominance   float64 `json:"dominance"`
	Intent      Intent  `json:"intent"`
	SarcasmProb float64 `json:"sarcasm_prob"`
	SupportNeed float64 `json:"support_need"`
	Uncertainty float64 `json:"uncertainty"`
	Confidence  float64 `json:"confidence"`
}

// NeutralFeatures is the no-signal vector used when extraction fails. The
// values match the extractor's documented field defaults, so a degraded
// message nudges the energy toward no particular direction.
func NeutralFeatures() EmotionFeatures {
	return EmotionFeatures{
		Valence:     0,
		Arousal:     0.5,
		Dominance:   0.5,
		Intent:      IntentNeutral,
		SarcasmProb: 0,
		SupportNeed: 0.5,
		Uncertainty: 0.3,
		Confidence:  0,
	}
}
