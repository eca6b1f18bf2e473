package models

// AssetKind tags what a MediaAsset's bytes contain.
type AssetKind string

const (
	KindVideo    AssetKind = "video"
	KindAudio    AssetKind = "audio"
	KindSubtitle AssetKind = "subtitle"
)

// EmbedMode selects how subtitles are attached to a video on export.
type EmbedMode string

const (
	// EmbedSoft muxes the subtitles in as a selectable text stream with the
	// picture and audio stream-copied. Fast and lossless.
	EmbedSoft EmbedMode = "soft"
	// EmbedBurn renders the subtitles into the pixels. Re-encodes video.
	EmbedBurn EmbedMode = "burn"
)

// MediaAsset is an in-memory media file moving between pipeline stages.
// Assets are ephemeral: produced by one stage, consumed by the next, and
// discarded. Only their metadata ever reaches the project store.
type MediaAsset struct {
	Data     []byte
	Kind     AssetKind
	Format   string // container/extension hint, e.g. "mp4", "mp3"
	FileName string
}

// Size returns the asset's payload size in bytes.
func (a MediaAsset) Size() int64 {
	return int64(len(a.Data))
}
