package models

import "encoding/json"

// CaptionChunk represents a single span of transcribed speech on the caption
// timeline. Start and End are in seconds from the beginning of the video.
type CaptionChunk struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Duration returns the length of the chunk in seconds.
func (c CaptionChunk) Duration() float64 {
	return c.End - c.Start
}

// CaptionTimeline is the ordered, non-overlapping caption track for one video.
// Operations that change it return a new timeline instead of mutating in place.
type CaptionTimeline []CaptionChunk

// Clone returns an independent copy of the timeline.
func (tl CaptionTimeline) Clone() CaptionTimeline {
	if tl == nil {
		return nil
	}
	out := make(CaptionTimeline, len(tl))
	copy(out, tl)
	return out
}

// transcriptEnvelope is the wire shape the frontend and the project store
// exchange: the raw chunk list keyed under "chunks".
type transcriptEnvelope struct {
	Chunks []RawSegment `json:"chunks"`
}

// SerializeTimeline renders a timeline into the transcription payload stored
// on a project record.
func SerializeTimeline(tl CaptionTimeline) (string, error) {
	env := transcriptEnvelope{Chunks: make([]RawSegment, 0, len(tl))}
	for _, c := range tl {
		env.Chunks = append(env.Chunks, RawSegment{
			Text:      c.Text,
			Timestamp: [2]float64{c.Start, c.End},
		})
	}
	data, err := json.Marshal(env)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DeserializeTimeline parses a stored transcription payload back into a
// timeline. The payload is trusted to already satisfy the timeline invariant.
func DeserializeTimeline(s string) (CaptionTimeline, error) {
	var env transcriptEnvelope
	if err := json.Unmarshal([]byte(s), &env); err != nil {
		return nil, err
	}
	tl := make(CaptionTimeline, 0, len(env.Chunks))
	for _, seg := range env.Chunks {
		tl = append(tl, CaptionChunk{
			Text:  seg.Text,
			Start: seg.Timestamp[0],
			End:   seg.Timestamp[1],
		})
	}
	return tl, nil
}
