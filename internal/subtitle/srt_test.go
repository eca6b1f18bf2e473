package subtitle

import (
	"testing"

	"github.com/iyashjayesh/captune-ai/models"
)

func TestFormatTimestamp(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00,000"},
		{1.2, "00:00:01,199"},
		{61.234, "00:01:01,234"},
		{62.0, "00:01:02,000"},
		{3599.9, "00:59:59,900"},
		{3600, "01:00:00,000"},
		{7325.5, "02:02:05,500"},
	}
	for _, tc := range cases {
		if got := FormatTimestamp(tc.seconds); got != tc.want {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestFormatTimeRange(t *testing.T) {
	got := Format(models.CaptionTimeline{{Text: "hello", Start: 61.234, End: 62.0}})
	want := "1\n00:01:01,234 --> 00:01:02,000\nhello\n\n"
	if got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestFormatSequencesAndSeparators(t *testing.T) {
	tl := models.CaptionTimeline{
		{Text: "first line", Start: 0, End: 1.2},
		{Text: "second line", Start: 1.2, End: 2.6},
	}
	// 1.2 carries a fractional part just under 0.2, so flooring yields 199.
	want := "1\n00:00:00,000 --> 00:00:01,199\nfirst line\n\n" +
		"2\n00:00:01,199 --> 00:00:02,600\nsecond line\n\n"
	if got := Format(tl); got != want {
		t.Errorf("Format =\n%q\nwant\n%q", got, want)
	}
}

func TestFormatEmptyTimeline(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}
}
