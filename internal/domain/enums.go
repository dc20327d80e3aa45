package domain

// StreamingMode selects the output transport for a channel.
type StreamingMode string

const (
	// StreamingModeTransportStream is the buffered MPEG-TS output.
	StreamingModeTransportStream StreamingMode = "transport-stream"
	// StreamingModeHLSSegmenter produces HLS segments via our own segmenter.
	StreamingModeHLSSegmenter StreamingMode = "hls-segmenter"
	// StreamingModeHLSDirect remuxes straight to HLS without transcoding.
	StreamingModeHLSDirect StreamingMode = "hls-direct"
)

// DecoMode controls how one decoration concern resolves against the next scope.
type DecoMode string

const (
	DecoModeInherit  DecoMode = "inherit"
	DecoModeDisable  DecoMode = "disable"
	DecoModeOverride DecoMode = "override"
	DecoModeMerge    DecoMode = "merge"
)

// FillerKind classifies a playout item as deliberate content or padding.
type FillerKind string

const (
	FillerKindNone      FillerKind = "none"
	FillerKindPreRoll   FillerKind = "pre-roll"
	FillerKindMidRoll   FillerKind = "mid-roll"
	FillerKindPostRoll  FillerKind = "post-roll"
	FillerKindTail      FillerKind = "tail"
	FillerKindFallback  FillerKind = "fallback"
	FillerKindGuideMode FillerKind = "guide-mode"
)

// HardwareAccelerationKind names the encoder/decoder acceleration family.
type HardwareAccelerationKind string

const (
	HardwareAccelerationNone         HardwareAccelerationKind = "none"
	HardwareAccelerationQsv          HardwareAccelerationKind = "qsv"
	HardwareAccelerationNvenc        HardwareAccelerationKind = "nvenc"
	HardwareAccelerationVaapi        HardwareAccelerationKind = "vaapi"
	HardwareAccelerationVideoToolbox HardwareAccelerationKind = "videotoolbox"
	HardwareAccelerationAmf          HardwareAccelerationKind = "amf"
)

// StreamKind is the track type inside a media container.
type StreamKind string

const (
	StreamKindVideo    StreamKind = "video"
	StreamKindAudio    StreamKind = "audio"
	StreamKindSubtitle StreamKind = "subtitle"
)

// SubtitleKind distinguishes embedded subtitle tracks from sidecar files.
type SubtitleKind string

const (
	SubtitleKindEmbedded SubtitleKind = "embedded"
	SubtitleKindSidecar  SubtitleKind = "sidecar"
)

// ChannelSubtitleMode controls which subtitle candidates a channel considers.
type ChannelSubtitleMode string

const (
	SubtitleModeNone    ChannelSubtitleMode = "none"
	SubtitleModeForced  ChannelSubtitleMode = "forced"
	SubtitleModeDefault ChannelSubtitleMode = "default"
	SubtitleModeAny     ChannelSubtitleMode = "any"
)

// WatermarkMode controls whether a watermark is shown at all, and how often.
type WatermarkMode string

const (
	WatermarkModeNone         WatermarkMode = "none"
	WatermarkModePermanent    WatermarkMode = "permanent"
	WatermarkModeIntermittent WatermarkMode = "intermittent"
)

// WatermarkLocation is one of the four frame corners.
type WatermarkLocation string

const (
	WatermarkLocationBottomRight WatermarkLocation = "bottom-right"
	WatermarkLocationBottomLeft  WatermarkLocation = "bottom-left"
	WatermarkLocationTopRight    WatermarkLocation = "top-right"
	WatermarkLocationTopLeft     WatermarkLocation = "top-left"
)

// WatermarkSize selects between scaled and as-is watermark rendering.
type WatermarkSize string

const (
	WatermarkSizeScaled WatermarkSize = "scaled"
	WatermarkSizeActual WatermarkSize = "actual"
)
