package filtergraph

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/pwllr/airwave/internal/deco"
	"github.com/pwllr/airwave/internal/domain"
)

var (
	size1080p = domain.Resolution{Width: 1920, Height: 1080}
	size1440  = domain.Resolution{Width: 1440, Height: 1080}
)

func TestBuild_NoStagesMeansNoFilter(t *testing.T) {
	result := NewBuilder(zerolog.Nop()).Build(0, 1)

	assert.False(t, result.HasFilter())
	assert.Equal(t, "", result.Filter)
	assert.Equal(t, "0:0", result.VideoLabel)
	assert.Equal(t, "0:1", result.AudioLabel)
}

func TestBuild_AlignedAudioOnly(t *testing.T) {
	result := NewBuilder(zerolog.Nop()).
		WithAlignedAudio(54 * time.Minute).
		Build(0, 1)

	assert.Equal(t, "[0:1]apad=whole_dur=3240000ms[a]", result.Filter)
	assert.Equal(t, "[a]", result.AudioLabel)
	assert.Equal(t, "0:0", result.VideoLabel)
}

func TestBuild_SoftwareStages(t *testing.T) {
	tests := []struct {
		name  string
		build func(Builder) Builder
		want  string
	}{
		{
			name:  "deinterlace only",
			build: func(b Builder) Builder { return b.WithDeinterlace() },
			want:  "[0:0]yadif=1[v]",
		},
		{
			name:  "scale only",
			build: func(b Builder) Builder { return b.WithScaling(size1440) },
			want:  "[0:0]scale=1440:1080:flags=fast_bilinear,setsar=1[v]",
		},
		{
			name:  "pad only",
			build: func(b Builder) Builder { return b.WithBlackBars(size1080p) },
			want:  "[0:0]setsar=1,pad=1920:1080:(ow-iw)/2:(oh-ih)/2[v]",
		},
		{
			name: "scale then pad",
			build: func(b Builder) Builder {
				return b.WithScaling(size1440).WithBlackBars(size1080p)
			},
			want: "[0:0]scale=1440:1080:flags=fast_bilinear,setsar=1,pad=1920:1080:(ow-iw)/2:(oh-ih)/2[v]",
		},
		{
			name: "deinterlace scale pad",
			build: func(b Builder) Builder {
				return b.WithDeinterlace().WithScaling(size1440).WithBlackBars(size1080p)
			},
			want: "[0:0]yadif=1,scale=1440:1080:flags=fast_bilinear,setsar=1,pad=1920:1080:(ow-iw)/2:(oh-ih)/2[v]",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.build(NewBuilder(zerolog.Nop())).Build(0, 1)
			assert.Equal(t, tc.want, result.Filter)
			assert.Equal(t, "[v]", result.VideoLabel)
			assert.Equal(t, "0:1", result.AudioLabel)
		})
	}
}

func TestBuild_QsvPadBracketsSoftwareStage(t *testing.T) {
	result := NewBuilder(zerolog.Nop()).
		WithAcceleration(domain.HardwareAccelerationQsv).
		WithScaling(size1440).
		WithBlackBars(size1080p).
		Build(0, 1)

	want := "[0:0]scale_qsv=w=1440:h=1080," +
		"hwdownload,format=nv12,setsar=1,pad=1920:1080:(ow-iw)/2:(oh-ih)/2," +
		"hwupload=extra_hw_frames=64[v]"
	assert.Equal(t, want, result.Filter)
}

func TestBuild_QsvDeinterlaceOnly(t *testing.T) {
	result := NewBuilder(zerolog.Nop()).
		WithAcceleration(domain.HardwareAccelerationQsv).
		WithDeinterlace().
		Build(0, 1)

	assert.Equal(t, "[0:0]deinterlace_qsv[v]", result.Filter)
}

func TestBuild_NvencScaleNeedsUploadWithoutDeinterlace(t *testing.T) {
	result := NewBuilder(zerolog.Nop()).
		WithAcceleration(domain.HardwareAccelerationNvenc).
		WithScaling(size1440).
		Build(0, 1)

	assert.Equal(t, "[0:0]hwupload_cuda,scale_npp=1440:1080[v]", result.Filter)
}

func TestBuild_NvencDeinterlaceFeedsScalerDirectly(t *testing.T) {
	result := NewBuilder(zerolog.Nop()).
		WithAcceleration(domain.HardwareAccelerationNvenc).
		WithDeinterlace().
		WithScaling(size1440).
		Build(0, 1)

	assert.Equal(t, "[0:0]yadif_cuda,scale_npp=1440:1080[v]", result.Filter)
}

func TestBuild_NvencPad(t *testing.T) {
	result := NewBuilder(zerolog.Nop()).
		WithAcceleration(domain.HardwareAccelerationNvenc).
		WithDeinterlace().
		WithScaling(size1440).
		WithBlackBars(size1080p).
		Build(0, 1)

	want := "[0:0]yadif_cuda,scale_npp=1440:1080," +
		"hwdownload,format=nv12,setsar=1,pad=1920:1080:(ow-iw)/2:(oh-ih)/2," +
		"hwupload_cuda[v]"
	assert.Equal(t, want, result.Filter)
}

func TestBuild_VaapiUploadsSoftwareDecodedInput(t *testing.T) {
	result := NewBuilder(zerolog.Nop()).
		WithAcceleration(domain.HardwareAccelerationVaapi).
		WithInputCodec("mpeg4").
		WithDeinterlace().
		Build(0, 1)

	assert.Equal(t, "[0:0]hwupload,deinterlace_vaapi[v]", result.Filter)
}

func TestBuild_VaapiHardwareDecodedInputSkipsUpload(t *testing.T) {
	result := NewBuilder(zerolog.Nop()).
		WithAcceleration(domain.HardwareAccelerationVaapi).
		WithInputCodec("h264").
		WithDeinterlace().
		WithScaling(size1440).
		Build(0, 1)

	assert.Equal(t, "[0:0]deinterlace_vaapi,scale_vaapi=w=1440:h=1080[v]", result.Filter)
}

func watermarkOptions(wm domain.ChannelWatermark) deco.WatermarkOptions {
	return deco.WatermarkOptions{Watermark: wm}
}

func TestBuild_WatermarkBottomRight(t *testing.T) {
	wm := domain.ChannelWatermark{
		Mode:                    domain.WatermarkModePermanent,
		Location:                domain.WatermarkLocationBottomRight,
		Size:                    domain.WatermarkSizeActual,
		HorizontalMarginPercent: 7,
		VerticalMarginPercent:   5,
		Opacity:                 100,
	}

	result := NewBuilder(zerolog.Nop()).
		WithResolution(size1080p).
		WithWatermark(watermarkOptions(wm)).
		Build(0, 1)

	assert.Equal(t, "[0:0][1:v]overlay=x=W-w-134:y=H-h-54[v]", result.Filter)
	assert.Equal(t, "[v]", result.VideoLabel)
}

func TestBuild_WatermarkScaledTakesPrecedenceOverOpacity(t *testing.T) {
	wm := domain.ChannelWatermark{
		Mode:                    domain.WatermarkModePermanent,
		Location:                domain.WatermarkLocationBottomRight,
		Size:                    domain.WatermarkSizeScaled,
		WidthPercent:            10.625,
		HorizontalMarginPercent: 7,
		VerticalMarginPercent:   5,
		Opacity:                 80,
	}

	result := NewBuilder(zerolog.Nop()).
		WithResolution(size1080p).
		WithWatermark(watermarkOptions(wm)).
		Build(0, 1)

	want := "[1:v]scale=204:-1[wmp];" +
		"[0:0][wmp]overlay=x=W-w-134:y=H-h-54[v]"
	assert.Equal(t, want, result.Filter)
}

func TestBuild_WatermarkOpacity(t *testing.T) {
	wm := domain.ChannelWatermark{
		Mode:     domain.WatermarkModePermanent,
		Location: domain.WatermarkLocationTopLeft,
		Size:     domain.WatermarkSizeActual,
		Opacity:  80,
	}

	result := NewBuilder(zerolog.Nop()).
		WithResolution(size1080p).
		WithWatermark(watermarkOptions(wm)).
		Build(0, 1)

	want := "[1:v]format=yuva420p,colorchannelmixer=aa=0.80[wmp];" +
		"[0:0][wmp]overlay=x=0:y=0[v]"
	assert.Equal(t, want, result.Filter)
}

func TestBuild_WatermarkIntermittentEnableClause(t *testing.T) {
	wm := domain.ChannelWatermark{
		Mode:                    domain.WatermarkModeIntermittent,
		Location:                domain.WatermarkLocationBottomRight,
		Size:                    domain.WatermarkSizeActual,
		HorizontalMarginPercent: 7,
		VerticalMarginPercent:   5,
		Opacity:                 100,
		FrequencyMinutes:        15,
		DurationSeconds:         10,
	}

	result := NewBuilder(zerolog.Nop()).
		WithResolution(size1080p).
		WithWatermark(watermarkOptions(wm)).
		Build(0, 1)

	want := "[0:0][1:v]overlay=x=W-w-134:y=H-h-54" +
		":enable='lt(mod(mod(time(0),60*60),15*60),10)'[v]"
	assert.Equal(t, want, result.Filter)
}

func TestBuild_WatermarkAfterVideoStagesUsesIntermediateLabel(t *testing.T) {
	wm := domain.ChannelWatermark{
		Mode:     domain.WatermarkModePermanent,
		Location: domain.WatermarkLocationTopRight,
		Size:     domain.WatermarkSizeActual,
		Opacity:  100,
	}

	result := NewBuilder(zerolog.Nop()).
		WithResolution(size1080p).
		WithScaling(size1440).
		WithBlackBars(size1080p).
		WithWatermark(watermarkOptions(wm)).
		Build(0, 1)

	want := "[0:0]scale=1440:1080:flags=fast_bilinear,setsar=1,pad=1920:1080:(ow-iw)/2:(oh-ih)/2[vt];" +
		"[vt][1:v]overlay=x=W-w-0:y=0[v]"
	assert.Equal(t, want, result.Filter)
}

func TestBuild_CombinedAudioAndVideo(t *testing.T) {
	result := NewBuilder(zerolog.Nop()).
		WithAlignedAudio(30 * time.Minute).
		WithScaling(size1440).
		Build(0, 2)

	want := "[0:2]apad=whole_dur=1800000ms[a];" +
		"[0:0]scale=1440:1080:flags=fast_bilinear,setsar=1[v]"
	assert.Equal(t, want, result.Filter)
	assert.Equal(t, "[v]", result.VideoLabel)
	assert.Equal(t, "[a]", result.AudioLabel)
}

func TestBuild_ImmutableBuilderValue(t *testing.T) {
	base := NewBuilder(zerolog.Nop()).WithScaling(size1440)
	withPad := base.WithBlackBars(size1080p)

	assert.NotEqual(t, base.Build(0, 1).Filter, withPad.Build(0, 1).Filter)
	assert.Equal(t,
		"[0:0]scale=1440:1080:flags=fast_bilinear,setsar=1[v]",
		base.Build(0, 1).Filter,
		"branching a builder must not mutate the original")
}
