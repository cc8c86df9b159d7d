package evc

import (
	"math"

	"github.com/Na1awut/NDLP/internal/models"
	"github.com/Na1awut/NDLP/internal/structures"
)

// Hormonal energy policy: eight simulated hormone levels with production,
// cross-interaction and decay toward baseline, combined into a composite
// energy target and blended with the force-based target. Selected with
// evc.energyPolicy: hormonal.

const (
	hormoneMax     = 10.0
	hormonalBlend  = 0.7 // weight of the composite E in the blended target
	dominantMargin = 0.5 // below this above baseline the state is neutral
)

type hormoneDef struct {
	name     string
	baseline float64
	halfLife float64 // turns until the excess over baseline halves
	maxProd  float64 // max production per turn
	eWeight  float64 // contribution to the composite energy
	stimulus func(f models.EmotionFeatures) float64
}

// Order matters: the interaction matrix is indexed by this slice.
var hormoneDefs = []hormoneDef{
	{
		name: "serotonin", baseline: 3.0, halfLife: 6, maxProd: 1.5, eWeight: 0.25,
		stimulus: func(f models.EmotionFeatures) float64 {
			posVal := max(0, f.Valence)
			calm := max(0, 1-f.Arousal)
			clarity := 1 - f.Uncertainty
			return posVal*0.5 + calm*0.3 + clarity*0.2
		},
	},
	{
		name: "dopamine", baseline: 2.0, halfLife: 2, maxProd: 3.0, eWeight: 0.15,
		stimulus: func(f models.EmotionFeatures) float64 {
			excitement := max(0, f.Valence) * f.Arousal
			var praise float64
			if f.Intent == models.IntentPraise {
				praise = 0.5
			}
			return min(1, excitement*0.6+praise*0.4)
		},
	},
	{
		name: "cortisol", baseline: 1.0, halfLife: 8, maxProd: 2.0, eWeight: -0.25,
		stimulus: func(f models.EmotionFeatures) float64 {
			stress := max(0, -f.Valence)
			return min(1, stress*0.5+f.Arousal*0.5+f.Uncertainty*0.3)
		},
	},
	{
		name: "oxytocin", baseline: 1.0, halfLife: 4, maxProd: 1.5, eWeight: 0.15,
		stimulus: func(f models.EmotionFeatures) float64 {
			trust := (1 - f.SarcasmProb) * 0.3
			var gratitude float64
			if f.Intent == models.IntentPraise || f.Intent == models.IntentApology {
				gratitude = 0.4
			}
			warmth := max(0, f.Valence) * 0.3
			return min(1, trust+gratitude+warmth)
		},
	},
	{
		name: "adrenaline", baseline: 0.5, halfLife: 1, maxProd: 5.0, eWeight: -0.10,
		stimulus: func(f models.EmotionFeatures) float64 {
			danger := max(0, -f.Valence) * f.Arousal
			var crisis float64
			if f.SupportNeed > 0.8 {
				crisis = 0.5
			}
			var anger float64
			if f.Intent == models.IntentAggression && f.Dominance > 0.7 {
				anger = 0.3
			}
			return min(1, danger*0.5+crisis+anger)
		},
	},
	{
		name: "endorphin", baseline: 1.5, halfLife: 3, maxProd: 2.0, eWeight: 0.10,
		stimulus: func(f models.EmotionFeatures) float64 {
			relief := max(0, 0.5+f.Valence*0.5)
			var venting float64
			if f.Intent == models.IntentVenting {
				venting = 0.3
			}
			lowArousal := max(0, 1-f.Arousal) * 0.2
			return min(1, relief*0.5+venting+lowArousal)
		},
	},
	{
		name: "gaba", baseline: 2.0, halfLife: 3, maxProd: 2.0, eWeight: 0.05,
		stimulus: func(f models.EmotionFeatures) float64 {
			calm := max(0, 1-f.Arousal)
			safe := max(0, 0.5+f.Valence*0.5)
			lowNeed := max(0, 1-f.SupportNeed) * 0.3
			return min(1, calm*0.4+safe*0.3+lowNeed)
		},
	},
	{
		name: "norepinephrine", baseline: 1.5, halfLife: 2, maxProd: 2.5, eWeight: -0.05,
		stimulus: func(f models.EmotionFeatures) float64 {
			return min(1, f.Arousal*0.6+abs(f.Valence)*0.2+f.Dominance*0.2)
		},
	},
}

// interactionMatrix[i][j] is the effect of hormone j on hormone i, applied
// to normalized levels. Positive stimulates, negative suppresses.
var interactionMatrix = [8][8]float64{
	{0.00, 0.10, -0.20, 0.10, 0.00, 0.10, 0.10, 0.00},    // serotonin
	{0.10, 0.00, 0.00, 0.00, 0.10, 0.00, 0.00, 0.10},     // dopamine
	{-0.15, -0.05, 0.00, -0.15, 0.20, -0.10, -0.10, 0.10}, // cortisol
	{0.15, 0.00, -0.15, 0.00, -0.10, 0.10, 0.15, 0.00},   // oxytocin
	{-0.10, 0.05, 0.15, -0.05, 0.00, 0.00, -0.25, 0.15},  // adrenaline
	{0.10, 0.00, -0.10, 0.10, -0.05, 0.00, 0.10, 0.00},   // endorphin
	{0.10, 0.00, -0.10, 0.10, -0.15, 0.05, 0.00, -0.10},  // gaba
	{0.00, 0.10, 0.10, 0.00, 0.20, 0.00, -0.10, 0.00},    // norepinephrine
}

// HormonalPolicy blends the hormone-composite energy with the force-based
// target. Levels persist on the state record between turns.
type HormonalPolicy struct {
	force ForcePolicy
}

func NewHormonalPolicy(cfg structures.EVCConfig) *HormonalPolicy {
	return &HormonalPolicy{
		force: ForcePolicy{Gain: cfg.ForceGain, Min: cfg.EnergyMin, Max: cfg.EnergyMax},
	}
}

func (p *HormonalPolicy) Target(f models.EmotionFeatures, forces Forces, st *models.EmotionalState) float64 {
	levels := restoreLevels(st.Hormones)

	// production
	for i, def := range hormoneDefs {
		levels[i] = min(hormoneMax, levels[i]+def.stimulus(f)*def.maxProd)
	}

	// cross-hormone interactions on the pre-interaction snapshot
	var normalized [8]float64
	for i := range levels {
		normalized[i] = levels[i] / hormoneMax
	}
	for i := range hormoneDefs {
		var sum float64
		for j := range hormoneDefs {
			if i == j {
				continue
			}
			sum += interactionMatrix[i][j] * normalized[j]
		}
		levels[i] = clamp(levels[i]+sum, 0, hormoneMax)
	}

	// decay toward baseline
	for i, def := range hormoneDefs {
		rate := math.Pow(0.5, 1.0/def.halfLife)
		levels[i] = def.baseline + (levels[i]-def.baseline)*rate
	}

	if st.Hormones == nil {
		st.Hormones = make(map[string]float64, len(hormoneDefs))
	}
	var composite float64
	for i, def := range hormoneDefs {
		st.Hormones[def.name] = levels[i]
		composite += def.eWeight * levels[i]
	}
	composite = clamp(composite, p.force.Min, p.force.Max)

	forceTarget := p.force.Target(f, forces, st)
	return hormonalBlend*composite + (1-hormonalBlend)*forceTarget
}

// DominantState names the hormone furthest above its baseline, or neutral
// when none stands out. Surfaced in /status for observability.
func DominantState(levels map[string]float64) string {
	stateNames := map[string]string{
		"serotonin":      "content",
		"dopamine":       "excited",
		"cortisol":       "stressed",
		"oxytocin":       "trusting",
		"adrenaline":     "alert",
		"endorphin":      "relieved",
		"gaba":           "calm",
		"norepinephrine": "focused",
	}

	maxDiff := math.Inf(-1)
	dominant := "neutral"
	for _, def := range hormoneDefs {
		level, ok := levels[def.name]
		if !ok {
			level = def.baseline
		}
		if diff := level - def.baseline; diff > maxDiff {
			maxDiff = diff
			dominant = stateNames[def.name]
		}
	}
	if maxDiff < dominantMargin {
		return "neutral"
	}
	return dominant
}

func restoreLevels(saved map[string]float64) [8]float64 {
	var levels [8]float64
	for i, def := range hormoneDefs {
		levels[i] = def.baseline
		if saved != nil {
			if v, ok := saved[def.name]; ok {
				levels[i] = clamp(v, 0, hormoneMax)
			}
		}
	}
	return levels
}
