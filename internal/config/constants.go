package config

import "time"

// Application settings.
const (
	AppName        = "mscoach"
	ConfigFileName = "config.yaml"
	TokenFileName  = "token"

	DefaultBaseURL = "http://localhost:8000"
	HTTPTimeout    = 60 * time.Second
)

// Environment overrides.
const (
	EnvBaseURL = "MSCOACH_BASE_URL"
	EnvToken   = "MSCOACH_TOKEN"
)

// Quota display thresholds.
const (
	QuotaWarnFraction = 0.8
	QuotaCritFraction = 0.95
)

// Input limits. The backend enforces its own; these keep the UI sane.
const (
	MaxMessageLength = 4000
	MaxNoteLength    = 1000
	MaxNameLength    = 100
)

// Mood scale bounds for daily check-ins.
const (
	MoodMin = 1
	MoodMax = 5
)
