package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

// EVCConfig carries every tunable of the scoring pipeline. Thresholds and
// steps were calibrated together; change them as a set, not one by one.
type EVCConfig struct {
	EnergyMin      float64       `yaml:"energyMin"`      // -10
	EnergyMax      float64       `yaml:"energyMax"`      // 10
	MaxStep        float64       `yaml:"maxStep"`        // 3.0, caps |ΔE| per message
	ForceGain      float64       `yaml:"forceGain"`      // 10, scales K*(S-D) to the energy range
	ZoneDeadband   float64       `yaml:"zoneDeadband"`   // 0.3, hysteresis around zone boundaries
	PhaseSlope     float64       `yaml:"phaseSlope"`     // 0.5, |slope| below which the phase is Stable
	HistorySize    int           `yaml:"historySize"`    // 16 samples
	TrendWindow    time.Duration `yaml:"trendWindow"`    // 10m
	AlertThreshold float64       `yaml:"alertThreshold"` // -6
	AlertCooldown  time.Duration `yaml:"alertCooldown"`  // 6h
	EnergyPolicy   string        `yaml:"energyPolicy" validate:"in:force,hormonal"`
}

type TokenConfig struct {
	Length        int           `yaml:"length"`        // 6
	TTL           time.Duration `yaml:"ttl"`           // 5m
	MaxAttempts   int           `yaml:"maxAttempts"`   // generation retries on collision
	SweepInterval time.Duration `yaml:"sweepInterval"` // 1m
}

type LockConfig struct {
	AcquireTimeout time.Duration `yaml:"acquireTimeout"` // 2s
}

// ExternalConfig points at the black-box collaborators: the feature
// extractor, the response composer and the alert transport. An empty URL
// disables the corresponding client and activates its local fallback.
type ExternalConfig struct {
	ExtractorURL string        `yaml:"extractorUrl"`
	ComposerURL  string        `yaml:"composerUrl"`
	NotifierURL  string        `yaml:"notifierUrl"`
	Timeout      time.Duration `yaml:"timeout"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
	TTL     int  `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type AdminConfig struct {
	Key string `yaml:"key"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	EVC         EVCConfig      `yaml:"evc"`
	Token       TokenConfig    `yaml:"token"`
	Lock        LockConfig     `yaml:"lock"`
	External    ExternalConfig `yaml:"external"`
	WebServer   Server         `yaml:"webServer"`
	Persistence Persistence    `yaml:"persistence"`
	Logger      LoggerConfig   `yaml:"logger"`
	Cache       CacheConfig    `yaml:"cache"`
	Metrics     MetricsConfig  `yaml:"metrics"`
	Admin       AdminConfig    `yaml:"admin"`
}
