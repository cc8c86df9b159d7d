package models

import (
	"time"

	"github.com/google/uuid"
)

// IdentityID is the canonical, platform-independent id of one physical
// user. Identities are never destroyed; a merge retires the loser and
// repoints its bindings at the survivor.
type IdentityID string

func NewIdentityID() IdentityID {
	return IdentityID(uuid.NewString())
}

type CanonicalIdentity struct {
	ID         IdentityID `json:"id"`
	CreatedAt  time.Time  `json:"created_at"`
	Retired    bool       `json:"retired,omitempty"`
	MergedInto IdentityID `json:"merged_into,omitempty"`
}

// BindingKey is the map key for a (platform, platform user id) pair. Each
// pair maps to at most one canonical identity.
func BindingKey(platform, platformUserID string) string {
	return platform + ":" + platformUserID
}

// LinkToken is a single-use cross-platform link code. Redeemable exactly
// once and only before ExpiresAt.
type LinkToken struct {
	Code      string     `json:"code"`
	Owner     IdentityID `json:"owner"`
	IssuedAt  time.Time  `json:"issued_at"`
	ExpiresAt time.Time  `json:"expires_at"`
	Used      bool       `json:"used"`
}

func (t *LinkToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// AlertRecord tracks crisis-alert rate limiting per identity. A zero
// LastAlertAt means no alert has ever been raised.
type AlertRecord struct {
	LastAlertAt time.Time `json:"last_alert_at,omitempty"`
}

// AlertPayload is handed to the external notification transport when the
// decider raises a crisis alert.
type AlertPayload struct {
	Identity IdentityID `json:"identity"`
	Energy   float64    `json:"energy"`
	Zone     Zone       `json:"zone"`
	Platform string     `json:"platform"`
	Reason   string     `json:"reason"`
	At       time.Time  `json:"at"`
}
