package ffmpeg

import (
	"os"
	"testing"
)

func TestFileExtension(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"talk.mp4", "mp4"},
		{"archive.tar.gz", "gz"},
		{"noext", ""},
		{"trailingdot.", ""},
	}
	for _, tc := range cases {
		if got := FileExtension(tc.name); got != tc.want {
			t.Errorf("FileExtension(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestReplaceExtension(t *testing.T) {
	cases := []struct {
		name string
		ext  string
		want string
	}{
		{"talk.mp4", "mp3", "talk.mp3"},
		{"noext", "srt", "noext.srt"},
		{"a.b.c", "srt", "a.b.srt"},
	}
	for _, tc := range cases {
		if got := ReplaceExtension(tc.name, tc.ext); got != tc.want {
			t.Errorf("ReplaceExtension(%q, %q) = %q, want %q", tc.name, tc.ext, got, tc.want)
		}
	}
}

func TestWorkspaceCleanupRemovesEverything(t *testing.T) {
	ws, err := newWorkspace()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ws.WriteFile("input.mp4", []byte("bytes")); err != nil {
		t.Fatal(err)
	}
	if _, err := ws.WriteFile("subtitles.srt", []byte("1\n...")); err != nil {
		t.Fatal(err)
	}

	ws.Cleanup()

	if _, err := os.Stat(ws.dir); !os.IsNotExist(err) {
		t.Errorf("workspace directory still exists after cleanup: %v", err)
	}
}

func TestTailKeepsSuffix(t *testing.T) {
	if got := tail("abcdef", 3); got != "def" {
		t.Errorf("tail = %q, want %q", got, "def")
	}
	if got := tail("ab", 3); got != "ab" {
		t.Errorf("tail = %q, want %q", got, "ab")
	}
}
