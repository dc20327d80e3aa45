package domain

import "github.com/google/uuid"

// FFmpegProfile is a channel's output profile: target resolution, codecs and
// rate control, plus the per-track normalization toggles.
type FFmpegProfile struct {
	ID          uuid.UUID
	Name        string
	ThreadCount int

	Resolution      Resolution
	VideoFormat     string // desired video codec ("h264", "hevc", "mpeg2video")
	VideoBitrate    int    // kbit/s
	VideoBufferSize int    // kbit

	AudioFormat     string // desired audio codec ("aac", "ac3")
	AudioBitrate    int    // kbit/s
	AudioBufferSize int    // kbit
	AudioChannels   int
	AudioSampleRate int // kHz

	HardwareAcceleration HardwareAccelerationKind
	DeinterlaceVideo     bool

	NormalizeResolution bool
	NormalizeVideoCodec bool
	NormalizeAudioCodec bool
	NormalizeLoudness   bool
}

// Channel is one simulated live channel.
type Channel struct {
	ID     uuid.UUID
	Number string
	Name   string

	StreamingMode StreamingMode
	FFmpegProfile FFmpegProfile

	Watermark *ChannelWatermark

	PreferredAudioLanguage    string
	PreferredAudioTitle       string
	PreferredSubtitleLanguage string
	SubtitleMode              ChannelSubtitleMode

	// StreamSelectorFile points at an optional per-channel YAML rule file that
	// replaces the built-in audio/subtitle selection.
	StreamSelectorFile string
}
