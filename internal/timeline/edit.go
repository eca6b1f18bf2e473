package timeline

import (
	"fmt"
	"math"

	"github.com/iyashjayesh/captune-ai/models"
)

// Boundary names which edge of a chunk an edit moves.
type Boundary string

const (
	BoundaryStart Boundary = "start"
	BoundaryEnd   Boundary = "end"
)

// SetBoundary moves one edge of the chunk at index to value (seconds) and
// returns the updated timeline. The input timeline is never mutated.
//
// Validation runs in a fixed order and the first failing rule wins:
//
//  1. value must be a finite number >= 0
//  2. value must not exceed trackDuration
//  3. a start must stay strictly before its own chunk's end
//  4. a start must not move before the previous chunk's end
//  5. an end must stay strictly after its own chunk's start
//  6. an end must not move past the next chunk's start
//
// Neighbors are never adjusted to make room: a conflicting edit is rejected
// back to the caller rather than silently resolved. On success only the
// edited chunk changes, with both its bounds rounded to 0.1s.
func SetBoundary(tl models.CaptionTimeline, index int, which Boundary, value float64, trackDuration float64) (models.CaptionTimeline, error) {
	if index < 0 || index >= len(tl) {
		return nil, &models.EditError{
			Reason:  models.EditIndexOutOfRange,
			Message: fmt.Sprintf("chunk index %d out of range [0,%d)", index, len(tl)),
		}
	}

	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return nil, &models.EditError{
			Reason:  models.EditValueInvalid,
			Message: "timestamp must be a finite number of seconds >= 0",
		}
	}

	if value > trackDuration {
		return nil, &models.EditError{
			Reason:  models.EditBeyondTrack,
			Message: fmt.Sprintf("timestamp %.1fs is past the end of the video (%.1fs)", value, trackDuration),
		}
	}

	chunk := tl[index]

	switch which {
	case BoundaryStart:
		if value >= chunk.End {
			return nil, &models.EditError{
				Reason:  models.EditStartAfterEnd,
				Message: fmt.Sprintf("start %.1fs must be before the chunk's end (%.1fs)", value, chunk.End),
			}
		}
		if index > 0 && value < tl[index-1].End {
			return nil, &models.EditError{
				Reason:  models.EditOverlapsPrevious,
				Message: fmt.Sprintf("start %.1fs overlaps the previous chunk (ends at %.1fs)", value, tl[index-1].End),
			}
		}
	case BoundaryEnd:
		if value <= chunk.Start {
			return nil, &models.EditError{
				Reason:  models.EditEndBeforeStart,
				Message: fmt.Sprintf("end %.1fs must be after the chunk's start (%.1fs)", value, chunk.Start),
			}
		}
		if index < len(tl)-1 && value > tl[index+1].Start {
			return nil, &models.EditError{
				Reason:  models.EditOverlapsNext,
				Message: fmt.Sprintf("end %.1fs overlaps the next chunk (starts at %.1fs)", value, tl[index+1].Start),
			}
		}
	default:
		return nil, &models.EditError{
			Reason:  models.EditValueInvalid,
			Message: fmt.Sprintf("unknown boundary %q", which),
		}
	}

	out := tl.Clone()
	if which == BoundaryStart {
		out[index].Start = value
	} else {
		out[index].End = value
	}
	out[index].Start = roundTenth(out[index].Start)
	out[index].End = roundTenth(out[index].End)
	return out, nil
}
