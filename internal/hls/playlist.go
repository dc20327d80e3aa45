// Package hls maintains the sliding-window live playlist: parsing the
// segmenter's output, trimming it to a bounded window and rewriting sequence
// counters and program-date-time stamps.
package hls

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// programDateTimeFormat is the timestamp format written next to each segment.
const programDateTimeFormat = "2006-01-02T15:04:05.000-07:00"

type segment struct {
	// discontinuities preceding this segment in the source playlist.
	discontinuities int
	duration        time.Duration
	durationText    string // EXTINF payload, re-emitted verbatim
	fileName        string
	// startTime is the nominal program date time, recomputed from the
	// playlist start plus the cumulative duration of earlier segments.
	startTime time.Time
}

type playlist struct {
	header                []string // #EXTM3U, #EXT-X-VERSION, #EXT-X-TARGETDURATION
	mediaSequence         int
	discontinuitySequence int
	segments              []segment
}

// parsePlaylist reads the segmenter's playlist. The input format is fully
// controlled by our own encoder invocation, so malformed tag sequences are a
// precondition violation and reported as errors, never repaired.
func parsePlaylist(lines []string) (playlist, error) {
	var p playlist

	pendingDiscontinuities := 0
	pendingDuration := time.Duration(0)
	pendingDurationText := ""
	havePendingSegment := false

	for _, raw := range lines {
		line := strings.TrimRight(raw, "\r")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case line == "#EXTM3U",
			strings.HasPrefix(line, "#EXT-X-VERSION:"),
			strings.HasPrefix(line, "#EXT-X-TARGETDURATION:"):
			p.header = append(p.header, line)

		case strings.HasPrefix(line, "#EXT-X-MEDIA-SEQUENCE:"):
			seq, err := strconv.Atoi(strings.TrimPrefix(line, "#EXT-X-MEDIA-SEQUENCE:"))
			if err != nil {
				return p, fmt.Errorf("invalid media sequence: %q", line)
			}
			p.mediaSequence = seq

		case strings.HasPrefix(line, "#EXT-X-DISCONTINUITY-SEQUENCE:"):
			seq, err := strconv.Atoi(strings.TrimPrefix(line, "#EXT-X-DISCONTINUITY-SEQUENCE:"))
			if err != nil {
				return p, fmt.Errorf("invalid discontinuity sequence: %q", line)
			}
			p.discontinuitySequence = seq

		case line == "#EXT-X-DISCONTINUITY":
			pendingDiscontinuities++

		case strings.HasPrefix(line, "#EXT-X-PROGRAM-DATE-TIME:"):
			// Ignored: program date times are recomputed from the playlist start.

		case strings.HasPrefix(line, "#EXTINF:"):
			payload := strings.TrimPrefix(line, "#EXTINF:")
			payload = strings.TrimSuffix(payload, ",")
			secs, err := strconv.ParseFloat(payload, 64)
			if err != nil {
				return p, fmt.Errorf("invalid EXTINF duration: %q", line)
			}
			pendingDuration = time.Duration(secs * float64(time.Second))
			pendingDurationText = payload
			havePendingSegment = true

		case strings.HasPrefix(line, "#"):
			// Unknown tags from our own segmenter are unexpected but harmless.

		default:
			if !havePendingSegment {
				return p, fmt.Errorf("segment %q without preceding EXTINF", line)
			}
			p.segments = append(p.segments, segment{
				discontinuities: pendingDiscontinuities,
				duration:        pendingDuration,
				durationText:    pendingDurationText,
				fileName:        line,
			})
			pendingDiscontinuities = 0
			pendingDuration = 0
			pendingDurationText = ""
			havePendingSegment = false
		}
	}

	if havePendingSegment {
		return p, fmt.Errorf("trailing EXTINF without segment file name")
	}

	return p, nil
}
