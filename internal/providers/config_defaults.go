package providers

import (
	"time"

	"github.com/Na1awut/NDLP/internal/structures"
)

// applyDefaults fills every unset tunable with its documented default so a
// minimal config file (server + logger + persistence) is enough to run.
func applyDefaults(conf *structures.Config) {
	e := &conf.EVC
	if e.EnergyMin == 0 && e.EnergyMax == 0 {
		e.EnergyMin, e.EnergyMax = -10, 10
	}
	if e.MaxStep == 0 {
		e.MaxStep = 3.0
	}
	if e.ForceGain == 0 {
		e.ForceGain = 10
	}
	if e.ZoneDeadband == 0 {
		e.ZoneDeadband = 0.3
	}
	if e.PhaseSlope == 0 {
		e.PhaseSlope = 0.5
	}
	if e.HistorySize == 0 {
		e.HistorySize = 16
	}
	if e.TrendWindow == 0 {
		e.TrendWindow = 10 * time.Minute
	}
	if e.AlertThreshold == 0 {
		e.AlertThreshold = -6
	}
	if e.AlertCooldown == 0 {
		e.AlertCooldown = 6 * time.Hour
	}
	if e.EnergyPolicy == "" {
		e.EnergyPolicy = "force"
	}

	t := &conf.Token
	if t.Length == 0 {
		t.Length = 6
	}
	if t.TTL == 0 {
		t.TTL = 5 * time.Minute
	}
	if t.MaxAttempts == 0 {
		t.MaxAttempts = 5
	}
	if t.SweepInterval == 0 {
		t.SweepInterval = time.Minute
	}

	if conf.Lock.AcquireTimeout == 0 {
		conf.Lock.AcquireTimeout = 2 * time.Second
	}
	if conf.External.Timeout == 0 {
		conf.External.Timeout = 5 * time.Second
	}
	if conf.Cache.TTL == 0 {
		conf.Cache.TTL = 5
	}
}
