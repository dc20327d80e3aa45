// Package playback computes the full set of transcode decisions for one
// playout item: codecs, resolution normalization, rate control and seek.
package playback

import (
	"time"

	"github.com/pwllr/airwave/internal/domain"
)

// CodecCopy asks the transcoder to pass a track through untouched.
const CodecCopy = "copy"

// DefaultFormatFlags are always applied for live output.
func DefaultFormatFlags() []string {
	return []string{"+genpts", "+discardcorrupt", "+igndts"}
}

// Settings is the full transcode decision record for one playout item.
type Settings struct {
	ThreadCount    int
	FormatFlags    []string
	RealtimeOutput bool

	// StreamSeek is how far into the item playback starts when joining
	// mid-item. Zero means play from the beginning; never negative.
	StreamSeek time.Duration

	Deinterlace bool

	// ScaledSize is the target scale size, nil when no scaling is needed.
	ScaledSize *domain.Resolution
	// PadToDesiredResolution is set when the scaled frame must be padded to
	// exactly fill the profile resolution.
	PadToDesiredResolution bool

	VideoFormat     string // codec name, or CodecCopy
	VideoBitrate    int
	VideoBufferSize int

	AudioFormat     string // codec name, or CodecCopy
	AudioBitrate    int
	AudioBufferSize int
	AudioChannels   int
	AudioSampleRate int

	// AudioDuration is the target duration for audio padding/alignment,
	// nil when audio is copied.
	AudioDuration *time.Duration

	NormalizeLoudness bool
}

// TranscodeVideo reports whether the video track is re-encoded.
func (s Settings) TranscodeVideo() bool {
	return s.VideoFormat != CodecCopy
}

// TranscodeAudio reports whether the audio track is re-encoded.
func (s Settings) TranscodeAudio() bool {
	return s.AudioFormat != CodecCopy
}
