package config

import "time"

// Frame timing. The simulation always advances by FrameTime per tick,
// whatever the frontend's real frame rate turns out to be.
const (
	TargetFPS = 60
	FrameTime = time.Second / TargetFPS
)

// Terminal rendering limits.
const (
	MaxTermWidth  = 160 // Columns beyond this are left as border
	MaxTermHeight = 60  // Rows beyond this are left as border
)

// Inactivity (SSH sessions)
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Persistence
const (
	AppName      = "nyanko"
	HighScoreKey = "nyankoHighScore"
)

// Environment variable names shared by the commands.
const (
	EnvTuning   = "NYANKO_TUNING"
	EnvLogLevel = "NYANKO_LOG_LEVEL"
	EnvLogFile  = "NYANKO_LOG_FILE"
)
