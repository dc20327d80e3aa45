package streamselect

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pwllr/airwave/internal/domain"
)

func audio(index int, language, title string, def bool) domain.MediaStream {
	return domain.MediaStream{
		Index:    index,
		Kind:     domain.StreamKindAudio,
		Codec:    "aac",
		Language: language,
		Title:    title,
		Default:  def,
	}
}

func versionWith(streams ...domain.MediaStream) domain.MediaVersion {
	return domain.MediaVersion{Streams: streams}
}

func TestSelectAudioStream_PreferredTitleWinsFirst(t *testing.T) {
	s := New(zerolog.Nop())
	channel := domain.Channel{
		PreferredAudioLanguage: "ja",
		PreferredAudioTitle:    "commentary",
	}
	version := versionWith(
		audio(1, "jpn", "Main", true),
		audio(2, "eng", "Director Commentary", false),
	)

	got := s.SelectAudioStream(channel, version)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.Index)
}

func TestSelectAudioStream_LanguageEquivalence(t *testing.T) {
	s := New(zerolog.Nop())
	channel := domain.Channel{PreferredAudioLanguage: "en"}
	version := versionWith(
		audio(1, "jpn", "", true),
		audio(2, "eng", "", false),
	)

	got := s.SelectAudioStream(channel, version)
	require.NotNil(t, got)
	assert.Equal(t, "eng", got.Language)
}

func TestSelectAudioStream_DefaultFlagFallback(t *testing.T) {
	s := New(zerolog.Nop())
	channel := domain.Channel{PreferredAudioLanguage: "fr"}
	version := versionWith(
		audio(1, "jpn", "", false),
		audio(2, "eng", "", true),
	)

	got := s.SelectAudioStream(channel, version)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.Index)
}

func TestSelectAudioStream_FirstStreamFallback(t *testing.T) {
	s := New(zerolog.Nop())
	version := versionWith(
		audio(3, "jpn", "", false),
		audio(1, "eng", "", false),
	)

	got := s.SelectAudioStream(domain.Channel{}, version)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.Index, "lowest stream index wins")
}

func TestSelectAudioStream_NoAudioYieldsNil(t *testing.T) {
	s := New(zerolog.Nop())
	version := versionWith(domain.MediaStream{Index: 0, Kind: domain.StreamKindVideo})

	assert.Nil(t, s.SelectAudioStream(domain.Channel{}, version))
}

func TestSelectSubtitleStream_Modes(t *testing.T) {
	s := New(zerolog.Nop())
	version := domain.MediaVersion{
		Subtitles: []domain.Subtitle{
			{Kind: domain.SubtitleKindEmbedded, StreamIndex: 3, Language: "eng", Forced: false, Default: false},
			{Kind: domain.SubtitleKindEmbedded, StreamIndex: 4, Language: "eng", Forced: true},
			{Kind: domain.SubtitleKindSidecar, Path: "movie.de.srt", Language: "deu", Default: true},
		},
	}

	tests := []struct {
		name     string
		channel  domain.Channel
		wantNil  bool
		wantLang string
		forced   bool
	}{
		{
			name:    "mode none yields nothing",
			channel: domain.Channel{SubtitleMode: domain.SubtitleModeNone},
			wantNil: true,
		},
		{
			name:     "forced mode picks forced track",
			channel:  domain.Channel{SubtitleMode: domain.SubtitleModeForced},
			wantLang: "eng",
			forced:   true,
		},
		{
			name:     "default mode picks default track",
			channel:  domain.Channel{SubtitleMode: domain.SubtitleModeDefault},
			wantLang: "deu",
		},
		{
			name:     "any mode respects preferred language",
			channel:  domain.Channel{SubtitleMode: domain.SubtitleModeAny, PreferredSubtitleLanguage: "de"},
			wantLang: "deu",
		},
		{
			name:    "no match yields nil, never a fabricated index",
			channel: domain.Channel{SubtitleMode: domain.SubtitleModeAny, PreferredSubtitleLanguage: "ko"},
			wantNil: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := s.SelectSubtitleStream(tc.channel, version)
			if tc.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tc.wantLang, got.Language)
			assert.Equal(t, tc.forced, got.Forced)
		})
	}
}
