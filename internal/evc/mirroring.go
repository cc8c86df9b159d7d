package evc

import "github.com/Na1awut/NDLP/internal/models"

// Mirror implements pacing-and-leading tone control: pace down with a
// negative user, hold there long enough to feel matched, then lead upward
// a little each turn. It mutates only the MirrorState on the identity's
// record and therefore runs inside the critical section.
type Mirror struct {
	MirrorRatio float64 // fraction of the user's negative E the bot drops to
	MatchRatio  float64 // fraction of the user's positive E the bot matches
	LeadRate    float64 // upward pull per turn past MinPacing
	MinPacing   int     // turns to pace before leading
	Smoothing   float64 // approach speed toward the target
	MaxLead     float64 // cap on the upward pull
	BotMin      float64
	BotMax      float64
}

func NewMirror() *Mirror {
	return &Mirror{
		MirrorRatio: 0.6,
		MatchRatio:  0.8,
		LeadRate:    0.4,
		MinPacing:   2,
		Smoothing:   0.5,
		MaxLead:     3.0,
		BotMin:      -8.0,
		BotMax:      8.0,
	}
}

// Update advances the bot's emotional value toward its pacing/leading
// target given the user's freshly updated energy.
func (m *Mirror) Update(ms *models.MirrorState, userE float64) {
	if userE < -0.5 {
		ms.NegativeStreak++
		ms.PacingTurns++
	} else {
		ms.NegativeStreak = 0
		if ms.PacingTurns > 0 {
			ms.PacingTurns-- // gradual transition out of pacing
		}
	}

	var target float64
	if userE < 0 {
		target = userE * m.MirrorRatio
	} else {
		target = userE * m.MatchRatio
	}

	if ms.PacingTurns >= m.MinPacing && userE < 0 {
		lead := m.LeadRate * float64(ms.PacingTurns-m.MinPacing)
		target += min(m.MaxLead, lead)
	}

	ms.BotE += m.Smoothing * (target - ms.BotE)
	ms.BotE = clamp(ms.BotE, m.BotMin, m.BotMax)
}

// Tone maps the bot's emotional value to its tone label.
func (m *Mirror) Tone(ms models.MirrorState) models.BotTone {
	switch {
	case ms.BotE < -3.0:
		return models.BotToneDeepEmpathy
	case ms.BotE < 0:
		return models.BotToneGentleSupport
	case ms.BotE < 2.0:
		return models.BotToneSoftEncouragement
	default:
		return models.BotToneHopefulLead
	}
}
