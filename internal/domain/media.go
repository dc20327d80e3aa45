package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Resolution is a frame size in pixels.
type Resolution struct {
	Width  int
	Height int
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// IsZero reports whether the resolution is unset.
func (r Resolution) IsZero() bool {
	return r.Width == 0 && r.Height == 0
}

// MediaStream is one track inside a media container.
type MediaStream struct {
	Index    int
	Kind     StreamKind
	Codec    string
	Language string
	Title    string
	Channels int
	Default  bool
	Forced   bool
}

// Subtitle is an embedded subtitle track or a sidecar subtitle file.
type Subtitle struct {
	Kind        SubtitleKind
	StreamIndex int
	Codec       string
	Language    string
	Title       string
	Path        string
	Default     bool
	Forced      bool
}

// MediaVersion holds the technical facts about one media file.
type MediaVersion struct {
	Width             int
	Height            int
	SampleAspectRatio string // "num:den", empty means square pixels
	VideoCodec        string
	AudioCodec        string
	Duration          time.Duration
	Streams           []MediaStream
	Subtitles         []Subtitle
}

// SquarePixelResolution returns the display resolution after correcting for a
// non-square sample aspect ratio (anamorphic content).
func (v MediaVersion) SquarePixelResolution() Resolution {
	width := v.Width
	if num, den, ok := parseAspectRatio(v.SampleAspectRatio); ok && num != den {
		width = int(float64(v.Width) * float64(num) / float64(den))
	}
	return Resolution{Width: width, Height: v.Height}
}

func parseAspectRatio(raw string) (int, int, bool) {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	num, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || num <= 0 {
		return 0, 0, false
	}
	den, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || den <= 0 {
		return 0, 0, false
	}
	return num, den, true
}
