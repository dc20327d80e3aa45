// Package filtergraph renders transcode decisions into a literal ffmpeg
// -filter_complex expression. The builder is an immutable value: every With*
// call returns a copy, so a partially configured builder can be shared and
// branched safely across goroutines.
package filtergraph

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pwllr/airwave/internal/deco"
	"github.com/pwllr/airwave/internal/domain"
	"github.com/pwllr/airwave/internal/metrics"
)

// Result is the rendered filter graph plus the resulting stream labels to map
// into the output. Labels are bracketed pad names when a filter produced them
// ("[v]", "[a]") and raw stream specifiers ("0:0", "0:1") otherwise.
type Result struct {
	Filter     string
	VideoLabel string
	AudioLabel string
}

// HasFilter reports whether any filtering is needed at all.
func (r Result) HasFilter() bool {
	return r.Filter != ""
}

// Builder accumulates optional filter stages.
type Builder struct {
	log zerolog.Logger

	resolution   domain.Resolution
	alignedAudio *time.Duration
	deinterlace  bool
	scaleSize    *domain.Resolution
	padSize      *domain.Resolution
	watermark    *deco.WatermarkOptions
	acceleration domain.HardwareAccelerationKind
	inputCodec   string
}

func NewBuilder(log zerolog.Logger) Builder {
	return Builder{log: log}
}

// WithResolution sets the output frame size used for watermark placement.
func (b Builder) WithResolution(resolution domain.Resolution) Builder {
	b.resolution = resolution
	return b
}

// WithAlignedAudio pads audio to exactly the given duration.
func (b Builder) WithAlignedAudio(duration time.Duration) Builder {
	b.alignedAudio = &duration
	return b
}

// WithDeinterlace enables deinterlacing ahead of any scaling.
func (b Builder) WithDeinterlace() Builder {
	b.deinterlace = true
	return b
}

// WithScaling scales video to the given size.
func (b Builder) WithScaling(size domain.Resolution) Builder {
	b.scaleSize = &size
	return b
}

// WithBlackBars pads video to exactly the given size, centering the frame.
func (b Builder) WithBlackBars(size domain.Resolution) Builder {
	b.padSize = &size
	return b
}

// WithWatermark overlays the given watermark. Watermarking is a software
// filter; callers run the software pipeline when a watermark is present.
func (b Builder) WithWatermark(options deco.WatermarkOptions) Builder {
	b.watermark = &options
	return b
}

// WithAcceleration selects the hardware-specific filter names.
func (b Builder) WithAcceleration(kind domain.HardwareAccelerationKind) Builder {
	b.acceleration = kind
	return b
}

// WithInputCodec records the source video codec; VAAPI needs it to decide
// whether decoded frames arrive in hardware memory.
func (b Builder) WithInputCodec(codec string) Builder {
	b.inputCodec = codec
	return b
}

// Build renders the filter graph for the given input stream indexes. A result
// with an empty Filter means no filtering is needed.
func (b Builder) Build(videoStreamIndex, audioStreamIndex int) Result {
	videoLabel := fmt.Sprintf("%d:%d", 0, videoStreamIndex)
	audioLabel := fmt.Sprintf("%d:%d", 0, audioStreamIndex)

	var chains []string

	if b.alignedAudio != nil {
		chains = append(chains, fmt.Sprintf(
			"[0:%d]apad=whole_dur=%dms[a]",
			audioStreamIndex, b.alignedAudio.Milliseconds()))
		audioLabel = "[a]"
	}

	videoStages := b.videoStages()
	if len(videoStages) > 0 {
		out := "[v]"
		if b.watermark != nil {
			out = "[vt]"
		}
		chains = append(chains, fmt.Sprintf(
			"[0:%d]%s%s",
			videoStreamIndex, strings.Join(videoStages, ","), out))
		videoLabel = out
	}

	if b.watermark != nil {
		prep, watermarkLabel := b.watermarkPrep()
		if prep != "" {
			chains = append(chains, prep)
		}
		in := videoLabel
		if !strings.HasPrefix(in, "[") {
			in = "[" + in + "]"
		}
		chains = append(chains, fmt.Sprintf(
			"%s%soverlay=%s[v]",
			in, watermarkLabel, b.overlayPosition()))
		videoLabel = "[v]"
	}

	if len(chains) == 0 {
		return Result{VideoLabel: videoLabel, AudioLabel: audioLabel}
	}

	acceleration := b.acceleration
	if acceleration == "" {
		acceleration = domain.HardwareAccelerationNone
	}
	metrics.CountFilterBuild(string(acceleration))

	result := Result{
		Filter:     strings.Join(chains, ";"),
		VideoLabel: videoLabel,
		AudioLabel: audioLabel,
	}
	b.log.Debug().
		Str("filter", result.Filter).
		Str("acceleration", string(acceleration)).
		Msg("built complex filter")
	return result
}

func (b Builder) videoStages() []string {
	switch b.acceleration {
	case domain.HardwareAccelerationQsv:
		return b.qsvStages()
	case domain.HardwareAccelerationNvenc:
		return b.nvencStages()
	case domain.HardwareAccelerationVaapi:
		return b.vaapiStages()
	default:
		return b.softwareStages()
	}
}

func (b Builder) softwareStages() []string {
	var stages []string
	if b.deinterlace {
		stages = append(stages, "yadif=1")
	}
	if b.scaleSize != nil {
		stages = append(stages, fmt.Sprintf(
			"scale=%d:%d:flags=fast_bilinear", b.scaleSize.Width, b.scaleSize.Height))
	}
	if b.scaleSize != nil || b.padSize != nil {
		stages = append(stages, "setsar=1")
	}
	if b.padSize != nil {
		stages = append(stages, padStage(*b.padSize))
	}
	return stages
}

// qsvStages keeps frames in GPU memory between QSV filters; padding is a
// software filter so frames are downloaded around it and re-uploaded with
// extra surface headroom for the encoder.
func (b Builder) qsvStages() []string {
	var stages []string
	if b.deinterlace {
		stages = append(stages, "deinterlace_qsv")
	}
	if b.scaleSize != nil {
		stages = append(stages, fmt.Sprintf(
			"scale_qsv=w=%d:h=%d", b.scaleSize.Width, b.scaleSize.Height))
	}
	if b.padSize != nil {
		stages = append(stages,
			"hwdownload", "format=nv12", "setsar=1",
			padStage(*b.padSize),
			"hwupload=extra_hw_frames=64")
	}
	return stages
}

// nvencStages: scale_npp needs frames in CUDA memory; yadif_cuda already
// leaves them there, otherwise an explicit upload precedes the scaler.
func (b Builder) nvencStages() []string {
	var stages []string
	if b.deinterlace {
		stages = append(stages, "yadif_cuda")
	}
	if b.scaleSize != nil {
		if !b.deinterlace {
			stages = append(stages, "hwupload_cuda")
		}
		stages = append(stages, fmt.Sprintf(
			"scale_npp=%d:%d", b.scaleSize.Width, b.scaleSize.Height))
	}
	if b.padSize != nil {
		stages = append(stages,
			"hwdownload", "format=nv12", "setsar=1",
			padStage(*b.padSize),
			"hwupload_cuda")
	}
	return stages
}

// vaapiStages: when the input codec is not hardware-decodable the decoded
// frames are in system memory and must be uploaded before any VAAPI filter.
func (b Builder) vaapiStages() []string {
	var stages []string
	if (b.deinterlace || b.scaleSize != nil) && !vaapiDecodable(b.inputCodec) {
		stages = append(stages, "hwupload")
	}
	if b.deinterlace {
		stages = append(stages, "deinterlace_vaapi")
	}
	if b.scaleSize != nil {
		stages = append(stages, fmt.Sprintf(
			"scale_vaapi=w=%d:h=%d", b.scaleSize.Width, b.scaleSize.Height))
	}
	if b.padSize != nil {
		stages = append(stages,
			"hwdownload", "format=nv12", "setsar=1",
			padStage(*b.padSize),
			"hwupload")
	}
	return stages
}

func vaapiDecodable(codec string) bool {
	switch strings.ToLower(codec) {
	case "mpeg4", "msmpeg4v2", "msmpeg4v3":
		return false
	default:
		return true
	}
}

func padStage(size domain.Resolution) string {
	return fmt.Sprintf("pad=%d:%d:(ow-iw)/2:(oh-ih)/2", size.Width, size.Height)
}

// watermarkPrep returns an optional preparation chain for the watermark input
// and the label the overlay consumes. Scaling takes precedence over opacity
// when both apply.
func (b Builder) watermarkPrep() (string, string) {
	wm := b.watermark.Watermark

	if wm.Size == domain.WatermarkSizeScaled && wm.WidthPercent > 0 {
		width := int(math.Round(wm.WidthPercent * float64(b.frameSize().Width) / 100.0))
		return fmt.Sprintf("[1:v]scale=%d:-1[wmp]", width), "[wmp]"
	}

	if wm.Opacity > 0 && wm.Opacity < 100 {
		return fmt.Sprintf(
			"[1:v]format=yuva420p,colorchannelmixer=aa=%.2f[wmp]",
			float64(wm.Opacity)/100.0), "[wmp]"
	}

	return "", "[1:v]"
}

func (b Builder) overlayPosition() string {
	wm := b.watermark.Watermark
	frame := b.frameSize()

	horizontalMargin := int(math.Round(wm.HorizontalMarginPercent * float64(frame.Width) / 100.0))
	verticalMargin := int(math.Round(wm.VerticalMarginPercent * float64(frame.Height) / 100.0))

	var x, y string
	switch wm.Location {
	case domain.WatermarkLocationBottomLeft:
		x = fmt.Sprintf("%d", horizontalMargin)
		y = fmt.Sprintf("H-h-%d", verticalMargin)
	case domain.WatermarkLocationTopLeft:
		x = fmt.Sprintf("%d", horizontalMargin)
		y = fmt.Sprintf("%d", verticalMargin)
	case domain.WatermarkLocationTopRight:
		x = fmt.Sprintf("W-w-%d", horizontalMargin)
		y = fmt.Sprintf("%d", verticalMargin)
	default: // bottom-right
		x = fmt.Sprintf("W-w-%d", horizontalMargin)
		y = fmt.Sprintf("H-h-%d", verticalMargin)
	}

	position := fmt.Sprintf("x=%s:y=%s", x, y)
	if wm.Mode == domain.WatermarkModeIntermittent && wm.FrequencyMinutes > 0 {
		position += fmt.Sprintf(
			":enable='lt(mod(mod(time(0),60*60),%d*60),%d)'",
			wm.FrequencyMinutes, wm.DurationSeconds)
	}
	return position
}

// frameSize is the output frame the watermark is placed against.
func (b Builder) frameSize() domain.Resolution {
	if !b.resolution.IsZero() {
		return b.resolution
	}
	if b.padSize != nil {
		return *b.padSize
	}
	if b.scaleSize != nil {
		return *b.scaleSize
	}
	return domain.Resolution{}
}
