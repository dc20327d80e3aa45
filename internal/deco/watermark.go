package deco

import (
	"time"

	"github.com/pwllr/airwave/internal/domain"
)

// WatermarkResult is the item-level watermark decision.
type WatermarkResult string

const (
	// WatermarkInherit lets the usual item > channel > global cascade run.
	WatermarkInherit WatermarkResult = "inherit"
	// WatermarkDisable suppresses watermarking entirely for the item.
	WatermarkDisable WatermarkResult = "disable"
)

// WatermarkOptions is one resolved watermark ready for filter construction.
type WatermarkOptions struct {
	Watermark domain.ChannelWatermark
}

// GetPlayoutItemWatermark returns Disable when the item opts out of
// watermarking. No further resolution happens in that case.
func (s Selector) GetPlayoutItemWatermark(item domain.PlayoutItem) WatermarkResult {
	if item.DisableWatermarks {
		return WatermarkDisable
	}
	return WatermarkInherit
}

// GetWatermarkOptions picks the most specific configured watermark:
// item-level beats the channel watermark, which beats the global watermark.
// Exactly one is selected, never merged.
func (s Selector) GetWatermarkOptions(
	channel domain.Channel,
	itemWatermark *domain.ChannelWatermark,
	globalWatermark *domain.ChannelWatermark,
) *WatermarkOptions {
	switch {
	case itemWatermark != nil:
		return &WatermarkOptions{Watermark: *itemWatermark}
	case channel.Watermark != nil:
		return &WatermarkOptions{Watermark: *channel.Watermark}
	case globalWatermark != nil:
		return &WatermarkOptions{Watermark: *globalWatermark}
	default:
		return nil
	}
}

// SelectWatermarks resolves the effective watermark list for one playout item.
// The item's DisableWatermarks flag short-circuits everything. Otherwise deco
// scopes (template, then channel default) are walked with the usual
// Inherit/Disable/Override/Merge algebra before falling back to the
// item > channel > global cascade. When the item supplies several explicit
// watermarks all of them are forwarded.
func (s Selector) SelectWatermarks(
	globalWatermark *domain.ChannelWatermark,
	channel domain.Channel,
	item domain.PlayoutItem,
	now time.Time,
) []WatermarkOptions {
	if s.GetPlayoutItemWatermark(item) == WatermarkDisable {
		return nil
	}

	var merged []WatermarkOptions

	for _, scope := range s.scopesFor(item, now) {
		switch scope.WatermarkMode {
		case domain.DecoModeDisable:
			return merged
		case domain.DecoModeOverride:
			if item.IsFiller() && !scope.UseWatermarkDuringFiller {
				return merged
			}
			return append(merged, watermarkOptions(scope.Watermarks)...)
		case domain.DecoModeMerge:
			if !item.IsFiller() || scope.UseWatermarkDuringFiller {
				merged = append(merged, watermarkOptions(scope.Watermarks)...)
			}
		default:
			// Inherit: defer to the next scope.
		}
	}

	if len(item.Watermarks) > 0 {
		return append(merged, watermarkOptions(item.Watermarks)...)
	}
	if opts := s.GetWatermarkOptions(channel, nil, globalWatermark); opts != nil {
		return append(merged, *opts)
	}
	return merged
}

// scopesFor returns the deco scopes from most to least specific: the template
// deco (if a window matches now), then the playout's channel-default deco.
// Resolution never consults more than these two scopes.
func (s Selector) scopesFor(item domain.PlayoutItem, now time.Time) []domain.Deco {
	var scopes []domain.Deco
	entries := s.GetDecoEntries(item.Playout, now)
	if entries.TemplateDeco != nil {
		scopes = append(scopes, *entries.TemplateDeco)
	}
	if item.Playout != nil && item.Playout.Deco != nil {
		scopes = append(scopes, *item.Playout.Deco)
	}
	return scopes
}

func watermarkOptions(watermarks []domain.ChannelWatermark) []WatermarkOptions {
	out := make([]WatermarkOptions, 0, len(watermarks))
	for _, wm := range watermarks {
		out = append(out, WatermarkOptions{Watermark: wm})
	}
	return out
}
