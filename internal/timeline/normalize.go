// Package timeline repairs raw transcription timestamps into a strictly
// ordered, non-overlapping caption track and applies validated user edits to
// it. Both operations are pure: no I/O, no clocks.
package timeline

import (
	"math"

	"github.com/iyashjayesh/captune-ai/models"
)

// Normalize converts an untrusted RawSegment list into a CaptionTimeline
// where chunk[i].End <= chunk[i+1].Start for every adjacent pair.
//
// Speech-recognition services routinely emit timestamps that restart near
// zero partway through or overlap the previous segment because of model
// windowing. The repair keeps the original segment order and every segment's
// reported duration, and shifts any segment that would start before the
// previous corrected end forward so it starts exactly there. Bounds are
// rounded to 0.1s before storing. Running Normalize on an already-normalized
// list is a no-op.
func Normalize(segments []models.RawSegment) models.CaptionTimeline {
	out := make(models.CaptionTimeline, 0, len(segments))
	lastEnd := 0.0

	for _, seg := range segments {
		start, end := seg.Timestamp[0], seg.Timestamp[1]

		if start < lastEnd {
			// Overlap or timestamp reset: keep the duration, move the
			// segment so it begins where the previous one ended.
			duration := end - start
			start = lastEnd
			end = start + duration
		}

		// Chain on the unrounded end so rounding can never reintroduce
		// an overlap with the next segment.
		lastEnd = end

		out = append(out, models.CaptionChunk{
			Text:  seg.Text,
			Start: roundTenth(start),
			End:   roundTenth(end),
		})
	}

	return out
}

// roundTenth rounds to one decimal place, the timeline's time resolution.
func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
