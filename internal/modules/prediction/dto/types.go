package dto

import "time"

const (
	StatusIdle        = "idle"
	StatusCalculating = "calculating"
	StatusRevealed    = "revealed"
)

type Snapshot struct {
	Status         string
	LoadingMessage string
	MessageIndex   int
	MessageCount   int
	PredictedDate  string
	RunID          string
	StartedAt      time.Time
	Elapsed        time.Duration
	Progress       float64
	Revision       uint64
}

type StartOutput struct {
	RunID          string
	StartedAt      time.Time
	LoadingMessage string
}
