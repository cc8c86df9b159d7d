package evc

import (
	"time"

	"github.com/Na1awut/NDLP/internal/models"
	"github.com/Na1awut/NDLP/internal/structures"
)

// Decider is the threshold + rate-limit gate for crisis alerts. It never
// talks to the notification transport; it only produces the payload.
type Decider struct {
	threshold float64
	cooldown  time.Duration
}

func NewDecider(cfg structures.EVCConfig) *Decider {
	return &Decider{threshold: cfg.AlertThreshold, cooldown: cfg.AlertCooldown}
}

// Decide raises an alert iff the energy is at or below the threshold and
// the cool-down since the last alert has elapsed. On raising it stamps
// rec.LastAlertAt = now; the caller holds the identity's critical section,
// which is what makes the check-and-stamp atomic.
func (d *Decider) Decide(id models.IdentityID, st *models.EmotionalState, rec *models.AlertRecord, platform string, now time.Time) (bool, *models.AlertPayload) {
	if st.E > d.threshold {
		return false, nil
	}
	if !rec.LastAlertAt.IsZero() && now.Sub(rec.LastAlertAt) < d.cooldown {
		return false, nil
	}
	rec.LastAlertAt = now
	return true, &models.AlertPayload{
		Identity: id,
		Energy:   st.E,
		Zone:     st.Zone,
		Platform: platform,
		Reason:   "energy at or below crisis threshold",
		At:       now,
	}
}
