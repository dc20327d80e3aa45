package hls

import (
	"fmt"
	"strings"
	"time"

	"github.com/pwllr/airwave/internal/metrics"
)

// TrimResult is a rewritten live playlist window.
type TrimResult struct {
	// Playlist is the full rewritten playlist body, "\n" line endings.
	Playlist string
	// Sequence is the new #EXT-X-MEDIA-SEQUENCE value.
	Sequence int
	// PlaylistStart is the recomputed timestamp of the first kept segment.
	PlaylistStart time.Time
}

// TrimPlaylist rewrites a segmenter playlist into a bounded live window.
//
// Each segment's program date time is recomputed as playlistStart plus the
// cumulative duration of the segments before it. Segments whose recomputed
// time lies strictly before sinceCutoff are dropped, advancing the media
// sequence by the number of dropped segments and the discontinuity sequence
// by the number of discontinuity markers dropped with them. maxSegments <= 0
// means unbounded; otherwise only the newest maxSegments entries survive.
// When forceDiscontinuity is set a trailing discontinuity marker is appended
// so the next window can splice cleanly.
func TrimPlaylist(
	playlistStart time.Time,
	sinceCutoff time.Time,
	lines []string,
	maxSegments int,
	forceDiscontinuity bool,
) (TrimResult, error) {
	begin := time.Now()

	p, err := parsePlaylist(lines)
	if err != nil {
		return TrimResult{}, fmt.Errorf("trim playlist: %w", err)
	}

	current := playlistStart
	for i := range p.segments {
		p.segments[i].startTime = current
		current = current.Add(p.segments[i].duration)
	}

	dropped := 0
	droppedDiscontinuities := 0
	kept := p.segments
	for len(kept) > 0 && kept[0].startTime.Before(sinceCutoff) {
		droppedDiscontinuities += kept[0].discontinuities
		kept = kept[1:]
		dropped++
	}

	if maxSegments > 0 && len(kept) > maxSegments {
		excess := len(kept) - maxSegments
		for _, seg := range kept[:excess] {
			droppedDiscontinuities += seg.discontinuities
		}
		kept = kept[excess:]
		dropped += excess
	}

	sequence := p.mediaSequence + dropped
	discontinuitySequence := p.discontinuitySequence + droppedDiscontinuities

	newStart := playlistStart
	if len(kept) > 0 {
		newStart = kept[0].startTime
	}

	var b strings.Builder
	for _, h := range p.header {
		b.WriteString(h)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "#EXT-X-MEDIA-SEQUENCE:%d\n", sequence)
	fmt.Fprintf(&b, "#EXT-X-DISCONTINUITY-SEQUENCE:%d\n", discontinuitySequence)

	for _, seg := range kept {
		for i := 0; i < seg.discontinuities; i++ {
			b.WriteString("#EXT-X-DISCONTINUITY\n")
		}
		fmt.Fprintf(&b, "#EXT-X-PROGRAM-DATE-TIME:%s\n", seg.startTime.Format(programDateTimeFormat))
		fmt.Fprintf(&b, "#EXTINF:%s,\n", seg.durationText)
		b.WriteString(seg.fileName)
		b.WriteString("\n")
	}

	if forceDiscontinuity {
		b.WriteString("#EXT-X-DISCONTINUITY\n")
	}

	metrics.ObservePlaylistTrim(dropped, time.Since(begin))

	return TrimResult{
		Playlist:      b.String(),
		Sequence:      sequence,
		PlaylistStart: newStart,
	}, nil
}

// TrimPlaylistWithDiscontinuity trims without a segment cap and marks the end
// of the window with a discontinuity.
func TrimPlaylistWithDiscontinuity(
	playlistStart time.Time,
	sinceCutoff time.Time,
	lines []string,
) (TrimResult, error) {
	return TrimPlaylist(playlistStart, sinceCutoff, lines, 0, true)
}
