package models

import "time"

type ProcessRequest struct {
	Platform string `json:"platform"`
	UserID   string `json:"user_id"`
	Message  string `json:"message"`
}

// StateView is the read-only projection of an emotional state returned to
// API callers. It never exposes alert bookkeeping.
type StateView struct {
	E        float64 `json:"e"`
	DeltaE   float64 `json:"delta_e"`
	Zone     Zone    `json:"zone"`
	Phase    Phase   `json:"phase"`
	Turn     int     `json:"turn"`
	Flags    Flags   `json:"flags"`
	Tone     Tone    `json:"tone,omitempty"`
	BotTone  BotTone `json:"bot_tone,omitempty"`
	Dominant string  `json:"dominant_hormone,omitempty"`
}

type ProcessResponse struct {
	Reply       string     `json:"reply"`
	Identity    IdentityID `json:"identity"`
	State       StateView  `json:"state"`
	AlertRaised bool       `json:"alert_raised"`
	Degraded    bool       `json:"degraded,omitempty"`
}

type StatusResponse struct {
	Identity    IdentityID `json:"identity"`
	State       StateView  `json:"state"`
	Platforms   []string   `json:"platforms"`
	LastUpdated time.Time  `json:"last_updated"`
}

type TokenResponse struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

type LinkResponse struct {
	Identity IdentityID `json:"identity"`
	Linked   bool       `json:"linked"`
}
