// Package subtitle renders a caption timeline into SubRip (.srt) text.
package subtitle

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/iyashjayesh/captune-ai/models"
)

// FormatTimestamp renders seconds as the SRT time form HH:MM:SS,mmm.
// Components are floored, never rounded, so a time never lands inside the
// following second. Output is locale-independent.
func FormatTimestamp(seconds float64) string {
	whole := int(math.Floor(seconds))
	hours := whole / 3600
	minutes := (whole % 3600) / 60
	secs := whole % 60
	millis := int(math.Floor((seconds - math.Floor(seconds)) * 1000))
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// Format renders the whole timeline as SRT: for each chunk a 1-based sequence
// number, the "start --> end" range, the text, and a blank separator line.
func Format(tl models.CaptionTimeline) string {
	var b strings.Builder
	for i, chunk := range tl {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString("\n")
		b.WriteString(FormatTimestamp(chunk.Start))
		b.WriteString(" --> ")
		b.WriteString(FormatTimestamp(chunk.End))
		b.WriteString("\n")
		b.WriteString(chunk.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}
