package evc

import "github.com/Na1awut/NDLP/internal/models"

// GeneratePolicy maps (zone, phase) to a tone directive. Total and
// deterministic; no I/O.
func GeneratePolicy(zone models.Zone, phase models.Phase, botTone models.BotTone, alertRaised bool) models.Directive {
	d := models.Directive{
		BotTone:      botTone,
		ConcealAlert: alertRaised,
	}

	switch zone {
	case models.ZoneExtremeNegative:
		d.Tone = models.ToneGentleProtective
		d.Guidance = "Protect and stay close. No judging, no lecturing. Ask about safety, say you are here to listen."
	case models.ZoneNegative:
		d.Tone = models.ToneWarmEmpathetic
		d.Guidance = "Acknowledge the feeling, listen first, gently explore a way forward."
	case models.ZonePositive:
		d.Tone = models.ToneEnthusiastic
		d.Guidance = "Share the joy, encourage, build on it."
	case models.ZoneOverheatPositive:
		d.Tone = models.ToneWarmWithBoundaries
		d.Guidance = "Celebrate together but help rebalance; do not amplify the excitement further."
	default:
		d.Tone = models.ToneFriendlyNatural
		d.Guidance = "Be natural and friendly."
	}

	switch phase {
	case models.PhaseCrashRecovery:
		d.Tone = models.ToneGentleProtective
		d.Guidance += " They are recovering from a crash: light praise, keep watching."
	case models.PhaseFalling:
		if zone == models.ZoneNeutral {
			d.Tone = models.ToneWarmEmpathetic
		}
		d.Guidance += " Mood is sliding: be more careful, ask proactively."
	case models.PhaseRising:
		d.Guidance += " Mood is improving: keep encouraging."
	}

	return d
}
