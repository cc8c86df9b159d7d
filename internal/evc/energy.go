package evc

import (
	"time"

	"github.com/Na1awut/NDLP/internal/models"
	"github.com/Na1awut/NDLP/internal/structures"
)

const deltaHistorySize = 5

// DeltaPolicy produces the desired energy value for one message, before
// rate limiting and clamping. Target may maintain policy-owned fields on
// the state record (the hormonal policy stores its levels there), but must
// be deterministic for a given (features, forces, state).
type DeltaPolicy interface {
	Target(f models.EmotionFeatures, forces Forces, st *models.EmotionalState) float64
}

// ForcePolicy is the default policy: target = K*(S-D)*gain, clamped to the
// energy bounds. Monotonically non-decreasing in S and non-increasing in D.
type ForcePolicy struct {
	Gain float64
	Min  float64
	Max  float64
}

func (p ForcePolicy) Target(_ models.EmotionFeatures, forces Forces, _ *models.EmotionalState) float64 {
	return clamp(forces.K*(forces.S-forces.D)*p.Gain, p.Min, p.Max)
}

// Updater applies the bounded energy update rule and maintains the rolling
// trend history. One Updater is shared by all identities; all per-identity
// data lives on the state record.
type Updater struct {
	cfg    structures.EVCConfig
	policy DeltaPolicy
}

func NewUpdater(cfg structures.EVCConfig, policy DeltaPolicy) *Updater {
	return &Updater{cfg: cfg, policy: policy}
}

// NewDeltaPolicy picks the configured policy implementation.
func NewDeltaPolicy(cfg structures.EVCConfig) DeltaPolicy {
	if cfg.EnergyPolicy == "hormonal" {
		return NewHormonalPolicy(cfg)
	}
	return ForcePolicy{Gain: cfg.ForceGain, Min: cfg.EnergyMin, Max: cfg.EnergyMax}
}

// Apply computes the new energy for one message and mutates st in place:
// energy, delta, turn counter and trend history. Must be called inside the
// identity's critical section. Invariants regardless of policy:
// E stays in [EnergyMin, EnergyMax] and |ΔE| ≤ MaxStep.
func (u *Updater) Apply(st *models.EmotionalState, f models.EmotionFeatures, forces Forces, now time.Time) float64 {
	target := u.policy.Target(f, forces, st)

	delta := clamp(target-st.E, -u.cfg.MaxStep, u.cfg.MaxStep)
	next := clamp(st.E+delta, u.cfg.EnergyMin, u.cfg.EnergyMax)
	delta = next - st.E

	st.PrevE = st.E
	st.E = next
	st.DeltaE = delta
	st.Turn++
	st.LastUpdated = now

	st.DeltaHistory = append(st.DeltaHistory, delta)
	if len(st.DeltaHistory) > deltaHistorySize {
		st.DeltaHistory = st.DeltaHistory[len(st.DeltaHistory)-deltaHistorySize:]
	}

	st.History = append(st.History, models.EnergySample{At: now, E: next})
	st.History = trimHistory(st.History, now, u.cfg.TrendWindow, u.cfg.HistorySize)

	return delta
}

// trimHistory evicts samples older than the trend window, then caps the
// slice at maxLen keeping the newest entries.
func trimHistory(h []models.EnergySample, now time.Time, window time.Duration, maxLen int) []models.EnergySample {
	cutoff := now.Add(-window)
	i := 0
	for i < len(h) && h[i].At.Before(cutoff) {
		i++
	}
	h = h[i:]
	if maxLen > 0 && len(h) > maxLen {
		h = h[len(h)-maxLen:]
	}
	return h
}
