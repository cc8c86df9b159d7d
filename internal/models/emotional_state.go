package models

import "time"

// Zone is the discrete emotional band the energy value falls in.
type Zone string

const (
	ZoneExtremeNegative  Zone = "ExtremeNegative"  // E ≤ -6
	ZoneNegative         Zone = "Negative"         // -6 < E ≤ -2
	ZoneNeutral          Zone = "Neutral"          // -2 < E ≤ 2
	ZonePositive         Zone = "Positive"         // 2 < E ≤ 6
	ZoneOverheatPositive Zone = "OverheatPositive" // E > 6
)

// Phase is the short-term trend of the energy over the rolling window.
type Phase string

const (
	PhaseRising        Phase = "Rising"
	PhaseFalling       Phase = "Falling"
	PhaseStable        Phase = "Stable"
	PhaseCrashRecovery Phase = "CrashRecovery"
)

// Flags are per-turn boolean markers derived from the feature vector and
// the updated energy. They feed the sensitivity risk score on the next turn.
type Flags struct {
	Sarcasm         bool `json:"sarcasm,omitempty"`
	Anger           bool `json:"anger,omitempty"`
	Anxiety         bool `json:"anxiety,omitempty"`
	Stress          bool `json:"stress,omitempty"`
	Crisis          bool `json:"crisis,omitempty"`
	BoundarySetting bool `json:"boundary_setting,omitempty"`
	MoodSwing       bool `json:"mood_swing,omitempty"`
}

// EnergySample is one point of the rolling trend history.
type EnergySample struct {
	At time.Time `json:"at"`
	E  float64   `json:"e"`
}

// MirrorState is the bot's own emotional value used for pacing-and-leading
// tone control. It rides along with the user's state and merges with it.
type MirrorState struct {
	BotE           float64 `json:"bot_e"`
	PacingTurns    int     `json:"pacing_turns"`
	NegativeStreak int     `json:"negative_streak"`
}

// EmotionalState is the one mutable record per canonical identity. It is
// only ever mutated inside the identity's exclusive critical section.
type EmotionalState struct {
	E            float64            `json:"e"`
	PrevE        float64            `json:"prev_e"`
	DeltaE       float64            `json:"delta_e"`
	Zone         Zone               `json:"zone"`
	Phase        Phase              `json:"phase"`
	Flags        Flags              `json:"flags"`
	Turn         int                `json:"turn"`
	History      []EnergySample     `json:"history"`
	DeltaHistory []float64          `json:"delta_history,omitempty"`
	Mirror       MirrorState        `json:"mirror"`
	Hormones     map[string]float64 `json:"hormones,omitempty"`
	LastUpdated  time.Time          `json:"last_updated"`
}

// Clone returns a deep copy, safe to read after the critical section ends.
func (s *EmotionalState) Clone() *EmotionalState {
	c := *s
	c.History = append([]EnergySample(nil), s.History...)
	c.DeltaHistory = append([]float64(nil), s.DeltaHistory...)
	if s.Hormones != nil {
		c.Hormones = make(map[string]float64, len(s.Hormones))
		for k, v := range s.Hormones {
			c.Hormones[k] = v
		}
	}
	return &c
}

// NewNeutralState returns the baseline state a fresh identity starts with
// and /reset returns to.
func NewNeutralState(now time.Time) *EmotionalState {
	return &EmotionalState{
		E:           0,
		Zone:        ZoneNeutral,
		Phase:       PhaseStable,
		LastUpdated: now,
	}
}
