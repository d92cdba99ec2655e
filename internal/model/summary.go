package model

import "time"

// Status is the presentation state shown next to the summary.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusInProgress Status = "in_progress"
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
)

const (
	MessageInProgress = "Summarizing... Please wait ⏳"
	MessageSuccess    = "Summary generated successfully!"
)

// SummaryRequest is the immutable input of one summarization cycle.
type SummaryRequest struct {
	SessionID string
	Text      string
	Settings  Settings
}

// Summary is the generated text with the routing details of the call that produced it.
type Summary struct {
	Text     string        `json:"text"`
	Language Language      `json:"language"`
	Endpoint string        `json:"endpoint"`
	Model    string        `json:"model"`
	Backend  string        `json:"backend"`
	Duration time.Duration `json:"-"`
}
