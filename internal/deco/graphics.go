package deco

import (
	"time"

	"github.com/pwllr/airwave/internal/domain"
)

// SelectGraphicsElements resolves the ordered list of overlay graphics for one
// playout item. Scopes from most to least specific: template deco, channel
// default deco, then the item's own graphics elements. An Override at a more
// specific scope discards everything beneath it; a Merge prepends its elements
// ahead of the remaining scopes; Disable stops resolution with what has been
// merged so far; Inherit defers entirely.
//
// Filler suppression is per scope: a Merge scope whose "use during filler"
// flag is off contributes nothing for filler items, but scopes beneath it are
// still evaluated.
func (s Selector) SelectGraphicsElements(
	channel domain.Channel,
	item domain.PlayoutItem,
	now time.Time,
) []domain.PlayoutItemGraphicsElement {
	// Direct remux cannot burn in overlays.
	if channel.StreamingMode == domain.StreamingModeHLSDirect {
		return nil
	}

	var merged []domain.PlayoutItemGraphicsElement

	for _, scope := range s.scopesFor(item, now) {
		switch scope.GraphicsMode {
		case domain.DecoModeDisable:
			return merged
		case domain.DecoModeOverride:
			if item.IsFiller() && !scope.UseGraphicsDuringFiller {
				return merged
			}
			return append(merged, itemGraphicsElements(scope.GraphicsElements)...)
		case domain.DecoModeMerge:
			if !item.IsFiller() || scope.UseGraphicsDuringFiller {
				merged = append(merged, itemGraphicsElements(scope.GraphicsElements)...)
			}
		default:
			// Inherit: defer to the next scope.
		}
	}

	// Item-level elements participate as the innermost scope.
	return append(merged, item.GraphicsElements...)
}

func itemGraphicsElements(elements []domain.GraphicsElement) []domain.PlayoutItemGraphicsElement {
	out := make([]domain.PlayoutItemGraphicsElement, 0, len(elements))
	for _, el := range elements {
		out = append(out, domain.PlayoutItemGraphicsElement{Element: el})
	}
	return out
}
