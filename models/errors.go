package models

import "fmt"

// ValidationError rejects bad user input (wrong file type, over-limit video,
// malformed edit request). Always recoverable: the session continues.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// TranscodeError means the media engine failed to produce output. Not retried
// automatically; the whole run may be retried by the user.
type TranscodeError struct {
	Op     string // "extract-audio", "embed-subtitles", "probe"
	Stderr string
	Err    error
}

func (e *TranscodeError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("transcode %s: %v: %s", e.Op, e.Err, e.Stderr)
	}
	return fmt.Sprintf("transcode %s: %v", e.Op, e.Err)
}

func (e *TranscodeError) Unwrap() error {
	return e.Err
}

// TranscriptionError is a failure talking to the speech-recognition service.
// Transient distinguishes "service unavailable" (network, 5xx) from
// "malformed response" (bad shape, 4xx) so callers can decide whether a
// retry makes sense. The client itself never retries.
type TranscriptionError struct {
	Transient bool
	Message   string
	Err       error
}

func (e *TranscriptionError) Error() string {
	kind := "malformed response"
	if e.Transient {
		kind = "service unavailable"
	}
	if e.Err != nil {
		return fmt.Sprintf("transcription (%s): %s: %v", kind, e.Message, e.Err)
	}
	return fmt.Sprintf("transcription (%s): %s", kind, e.Message)
}

func (e *TranscriptionError) Unwrap() error {
	return e.Err
}

// RateLimitError is the expected "quota exhausted" condition. The pipeline
// halts before any work starts; the user waits out the window.
type RateLimitError struct {
	Message   string
	Remaining int
	Total     int
}

func (e *RateLimitError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("rate limit exceeded (%d/%d remaining)", e.Remaining, e.Total)
}

// EditReason identifies which timeline edit rule rejected a boundary change.
type EditReason string

const (
	EditIndexOutOfRange  EditReason = "index_out_of_range"
	EditValueInvalid     EditReason = "value_invalid"
	EditBeyondTrack      EditReason = "beyond_track_duration"
	EditStartAfterEnd    EditReason = "start_not_before_end"
	EditOverlapsPrevious EditReason = "overlaps_previous_chunk"
	EditEndBeforeStart   EditReason = "end_not_after_start"
	EditOverlapsNext     EditReason = "overlaps_next_chunk"
)

// EditError rejects a single timeline edit. The timeline the edit was applied
// to is left untouched.
type EditError struct {
	Reason  EditReason
	Message string
}

func (e *EditError) Error() string {
	return fmt.Sprintf("edit rejected (%s): %s", e.Reason, e.Message)
}
