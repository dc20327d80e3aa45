package streamselect

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/pwllr/airwave/internal/domain"
	"github.com/pwllr/airwave/internal/lang"
	"github.com/pwllr/airwave/internal/metrics"
)

// Rule is one entry of a per-channel stream selector file. Language entries
// are case-insensitive, support exact 2/3-letter codes and a trailing '*'
// wildcard. A rule without audio_language is a catch-all subtitle clause.
type Rule struct {
	AudioLanguage    []string `yaml:"audio_language"`
	SubtitleLanguage []string `yaml:"subtitle_language"`
	DisableSubtitles bool     `yaml:"disable_subtitles"`
}

// RuleFile is the on-disk shape of a stream selector file.
type RuleFile struct {
	Items []Rule `yaml:"items"`
}

// CustomSelector evaluates a channel's rule file, falling back to the
// built-in selector when the file is missing, unreadable or matches nothing.
type CustomSelector struct {
	log     zerolog.Logger
	builtin Selector
	cache   *RuleCache
}

// NewCustom builds a custom selector. cache may be nil, in which case rule
// files are read on every call.
func NewCustom(log zerolog.Logger, cache *RuleCache) CustomSelector {
	return CustomSelector{log: log, builtin: New(log), cache: cache}
}

// Select resolves audio and subtitle for one media version. Errors never
// escape: any rule file problem degrades to the built-in selector.
func (c CustomSelector) Select(
	ctx context.Context,
	channel domain.Channel,
	version domain.MediaVersion,
) (*domain.MediaStream, *domain.Subtitle) {
	if channel.StreamSelectorFile == "" {
		return c.builtin.SelectAudioStream(channel, version),
			c.builtin.SelectSubtitleStream(channel, version)
	}

	rules, err := c.loadRules(ctx, channel.StreamSelectorFile)
	if err != nil {
		metrics.CountStreamSelectorFallback(channel.Number)
		c.log.Warn().
			Err(err).
			Str("channel", channel.Number).
			Str("file", channel.StreamSelectorFile).
			Msg("stream selector file unusable, using built-in selection")
		return c.builtin.SelectAudioStream(channel, version),
			c.builtin.SelectSubtitleStream(channel, version)
	}

	for _, rule := range rules {
		audio, ok := c.matchAudio(rule, channel, version)
		if !ok {
			continue
		}

		if rule.DisableSubtitles {
			return audio, nil
		}
		var subtitle *domain.Subtitle
		if len(rule.SubtitleLanguage) > 0 {
			subtitle = findSubtitle(version, rule.SubtitleLanguage)
		}
		return audio, subtitle
	}

	c.log.Debug().
		Str("channel", channel.Number).
		Msg("no stream selector rule matched, using built-in selection")
	return c.builtin.SelectAudioStream(channel, version),
		c.builtin.SelectSubtitleStream(channel, version)
}

// matchAudio applies one rule's audio clause. Rules without audio_language
// always match and delegate the audio pick to the built-in selector.
func (c CustomSelector) matchAudio(
	rule Rule,
	channel domain.Channel,
	version domain.MediaVersion,
) (*domain.MediaStream, bool) {
	if len(rule.AudioLanguage) == 0 {
		return c.builtin.SelectAudioStream(channel, version), true
	}
	if st := findAudioStream(version, rule.AudioLanguage); st != nil {
		return st, true
	}
	return nil, false
}

func findAudioStream(version domain.MediaVersion, patterns []string) *domain.MediaStream {
	streams := audioStreams(version)
	for i := range streams {
		for _, p := range patterns {
			if lang.MatchesPattern(p, streams[i].Language) {
				return &streams[i]
			}
		}
	}
	return nil
}

func findSubtitle(version domain.MediaVersion, patterns []string) *domain.Subtitle {
	for i := range version.Subtitles {
		for _, p := range patterns {
			if lang.MatchesPattern(p, version.Subtitles[i].Language) {
				return &version.Subtitles[i]
			}
		}
	}
	return nil
}

// loadRules reads and parses a rule file, via the cache when one is wired.
func (c CustomSelector) loadRules(ctx context.Context, path string) ([]Rule, error) {
	if c.cache != nil {
		return c.cache.Get(ctx, path)
	}
	return readRules(ctx, path)
}

// readRules is a cancellable file read plus strict YAML decode. Cancellation
// abandons the in-flight read; no partial state is kept.
func readRules(ctx context.Context, path string) ([]Rule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		data []byte
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		data, err := os.ReadFile(path) // #nosec G304 -- operator-provided selector path
		ch <- result{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.err != nil {
			return nil, fmt.Errorf("read rule file: %w", r.err)
		}
		var file RuleFile
		if err := yaml.Unmarshal(r.data, &file); err != nil {
			return nil, fmt.Errorf("parse rule file: %w", err)
		}
		return file.Items, nil
	}
}
