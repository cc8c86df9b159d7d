package models

// Tone is the closed set of response-tone directives the external composer
// understands.
type Tone string

const (
	ToneGentleProtective   Tone = "gentle-protective"
	ToneWarmEmpathetic     Tone = "warm-empathetic"
	ToneFriendlyNatural    Tone = "friendly-natural"
	ToneEnthusiastic       Tone = "enthusiastic"
	ToneWarmWithBoundaries Tone = "warm-with-boundaries"
)

// BotTone labels the bot's own mirrored emotional level.
type BotTone string

const (
	BotToneDeepEmpathy       BotTone = "deep-empathy"
	BotToneGentleSupport     BotTone = "gentle-support"
	BotToneSoftEncouragement BotTone = "soft-encouragement"
	BotToneHopefulLead       BotTone = "hopeful-lead"
)

// Directive is the full instruction set forwarded to the composer.
// ConcealAlert tells it to never reveal that a crisis alert was dispatched.
type Directive struct {
	Tone         Tone    `json:"tone"`
	BotTone      BotTone `json:"bot_tone"`
	Guidance     string  `json:"guidance"`
	ConcealAlert bool    `json:"conceal_alert"`
}
