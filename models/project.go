package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is the record the persistence collaborator keeps per processed
// video. The collaborator owns the schema; this struct mirrors its create
// contract, so only metadata and the serialized transcription cross the wire,
// never media bytes.
type Project struct {
	ID                uuid.UUID `json:"id,omitempty"`
	VideoFileName     string    `json:"videoFileName"`
	VideoFileSize     int64     `json:"videoFileSize"`
	VideoFileDuration float64   `json:"videoFileDuration"`
	AudioFileName     string    `json:"audioFileName"`
	AudioFileSize     int64     `json:"audioFileSize"`
	Transcription     string    `json:"transcription"`
	ProcessingTime    float64   `json:"processingTime"`
	CreatedAt         time.Time `json:"created_at,omitempty"`
	UpdatedAt         time.Time `json:"updated_at,omitempty"`
}

// Quota is the rate-limit collaborator's answer to "how many runs are left".
type Quota struct {
	Remaining int `json:"remaining"`
	Total     int `json:"total"`
}
