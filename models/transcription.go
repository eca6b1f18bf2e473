package models

// RawSegment is one segment of the speech-recognition service's output.
// Timestamp holds [start, end] in seconds. The service's timestamps are not
// trusted: they may overlap the previous segment or restart from zero, so a
// RawSegment list must pass through timeline.Normalize before use.
type RawSegment struct {
	Text      string     `json:"text"`
	Timestamp [2]float64 `json:"timestamp"`
}
