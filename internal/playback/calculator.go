package playback

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/pwllr/airwave/internal/domain"
)

// Calculator derives Settings from a channel profile, media facts and "now".
// It is stateless and safe for concurrent use.
type Calculator struct {
	log zerolog.Logger
}

func NewCalculator(log zerolog.Logger) Calculator {
	return Calculator{log: log}
}

// CalculateSettings computes the transcode decisions for one playout item.
func (c Calculator) CalculateSettings(
	mode domain.StreamingMode,
	profile domain.FFmpegProfile,
	version domain.MediaVersion,
	item domain.PlayoutItem,
	now time.Time,
) Settings {
	settings := Settings{
		ThreadCount:    profile.ThreadCount,
		FormatFlags:    DefaultFormatFlags(),
		RealtimeOutput: true,
		VideoFormat:    CodecCopy,
		AudioFormat:    CodecCopy,
	}

	if now.After(item.Start) {
		settings.StreamSeek = now.Sub(item.Start)
	}

	// Direct remux never transcodes, scales or pads.
	if mode == domain.StreamingModeHLSDirect {
		return settings
	}

	scaled, pad := normalizeResolution(mode, profile, version)
	settings.ScaledSize = scaled
	settings.PadToDesiredResolution = pad

	needsResize := scaled != nil || pad
	if profile.NormalizeVideoCodec && (version.VideoCodec != profile.VideoFormat || needsResize) {
		settings.VideoFormat = profile.VideoFormat
		settings.VideoBitrate = profile.VideoBitrate
		settings.VideoBufferSize = profile.VideoBufferSize
	}
	settings.Deinterlace = profile.DeinterlaceVideo && settings.TranscodeVideo()

	if profile.NormalizeAudioCodec && version.AudioCodec != profile.AudioFormat {
		settings.AudioFormat = profile.AudioFormat
		settings.AudioBitrate = profile.AudioBitrate
		settings.AudioBufferSize = profile.AudioBufferSize
		settings.AudioChannels = profile.AudioChannels
		settings.AudioSampleRate = profile.AudioSampleRate
		if version.Duration > 0 {
			duration := version.Duration
			settings.AudioDuration = &duration
		}
	}
	settings.NormalizeLoudness = profile.NormalizeLoudness && settings.TranscodeAudio()

	c.log.Debug().
		Str("mode", string(mode)).
		Str("video", settings.VideoFormat).
		Str("audio", settings.AudioFormat).
		Bool("pad", settings.PadToDesiredResolution).
		Msg("calculated playback settings")

	return settings
}

// normalizeResolution decides scaling and padding. The source size is first
// corrected for non-square sample aspect ratios. Padding applies to the
// segmented outputs only, never to direct remux.
func normalizeResolution(
	mode domain.StreamingMode,
	profile domain.FFmpegProfile,
	version domain.MediaVersion,
) (*domain.Resolution, bool) {
	if !profile.NormalizeResolution || profile.Resolution.IsZero() {
		return nil, false
	}

	actual := version.SquarePixelResolution()
	stored := domain.Resolution{Width: version.Width, Height: version.Height}
	desired := profile.Resolution

	// Anamorphic content whose display size already matches still needs a
	// corrective scale: the stored frame and its SAR are wrong as-is.
	if actual == desired && stored == desired {
		return nil, false
	}

	scaled := scaleToFit(desired, actual)

	var scaledSize *domain.Resolution
	if scaled != stored {
		scaledSize = &scaled
	}

	pad := mode != domain.StreamingModeHLSDirect && scaled != desired
	return scaledSize, pad
}

// scaleToFit returns the largest size preserving the source aspect ratio that
// fits within the desired box, rounded down to even dimensions so the result
// never exceeds the profile's bounds.
func scaleToFit(desired, actual domain.Resolution) domain.Resolution {
	widthRatio := float64(desired.Width) / float64(actual.Width)
	heightRatio := float64(desired.Height) / float64(actual.Height)
	ratio := math.Min(widthRatio, heightRatio)

	width := downToEven(int(math.Round(float64(actual.Width) * ratio)))
	height := downToEven(int(math.Round(float64(actual.Height) * ratio)))

	if width > desired.Width {
		width = downToEven(desired.Width)
	}
	if height > desired.Height {
		height = downToEven(desired.Height)
	}

	return domain.Resolution{Width: width, Height: height}
}

func downToEven(v int) int {
	return v - v%2
}
