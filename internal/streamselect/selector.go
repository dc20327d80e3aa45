// Package streamselect picks the audio and subtitle stream for a media
// version, either via built-in rules or a per-channel YAML rule file.
package streamselect

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pwllr/airwave/internal/domain"
	"github.com/pwllr/airwave/internal/lang"
)

// Selector implements the built-in selection rules.
type Selector struct {
	log zerolog.Logger
}

func New(log zerolog.Logger) Selector {
	return Selector{log: log}
}

// SelectAudioStream picks an audio stream in this order: preferred title
// substring, preferred language (code-equivalence aware), default flag, first
// audio stream. Returns nil when the version has no audio at all.
func (s Selector) SelectAudioStream(channel domain.Channel, version domain.MediaVersion) *domain.MediaStream {
	streams := audioStreams(version)
	if len(streams) == 0 {
		return nil
	}

	if title := strings.TrimSpace(channel.PreferredAudioTitle); title != "" {
		needle := strings.ToLower(title)
		for i := range streams {
			if strings.Contains(strings.ToLower(streams[i].Title), needle) {
				return &streams[i]
			}
		}
	}

	if pref := strings.TrimSpace(channel.PreferredAudioLanguage); pref != "" {
		codes := lang.Codes([]string{pref})
		for i := range streams {
			if containsCode(codes, streams[i].Language) {
				return &streams[i]
			}
		}
	}

	for i := range streams {
		if streams[i].Default {
			return &streams[i]
		}
	}

	return &streams[0]
}

// SelectSubtitleStream picks a subtitle according to the channel's subtitle
// mode, optionally narrowed to the channel's preferred subtitle language.
// "No subtitle" is a legitimate result and is returned as nil.
func (s Selector) SelectSubtitleStream(channel domain.Channel, version domain.MediaVersion) *domain.Subtitle {
	if channel.SubtitleMode == "" || channel.SubtitleMode == domain.SubtitleModeNone {
		return nil
	}

	candidates := version.Subtitles
	if pref := strings.TrimSpace(channel.PreferredSubtitleLanguage); pref != "" {
		codes := lang.Codes([]string{pref})
		var filtered []domain.Subtitle
		for _, sub := range candidates {
			if containsCode(codes, sub.Language) {
				filtered = append(filtered, sub)
			}
		}
		candidates = filtered
	}

	switch channel.SubtitleMode {
	case domain.SubtitleModeForced:
		for i := range candidates {
			if candidates[i].Forced {
				return &candidates[i]
			}
		}
	case domain.SubtitleModeDefault:
		for i := range candidates {
			if candidates[i].Default {
				return &candidates[i]
			}
		}
	case domain.SubtitleModeAny:
		if len(candidates) > 0 {
			return &candidates[0]
		}
	}

	return nil
}

// audioStreams returns the version's audio streams ordered by stream index.
func audioStreams(version domain.MediaVersion) []domain.MediaStream {
	var out []domain.MediaStream
	for _, st := range version.Streams {
		if st.Kind == domain.StreamKindAudio {
			out = append(out, st)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

func containsCode(codes []string, language string) bool {
	l := strings.ToLower(strings.TrimSpace(language))
	for _, c := range codes {
		if c == l {
			return true
		}
	}
	return false
}
