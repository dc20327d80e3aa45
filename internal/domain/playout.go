package domain

import (
	"time"

	"github.com/google/uuid"
)

// Playout is a channel's timeline plus its decoration configuration.
type Playout struct {
	ID        uuid.UUID
	Channel   Channel
	Deco      *Deco // channel-default deco, nil when unset
	Templates []PlayoutTemplate
}

// PlayoutItem is one scheduled instant of content on a channel's timeline.
type PlayoutItem struct {
	ID     uuid.UUID
	Start  time.Time
	Finish time.Time

	MediaItemID  uuid.UUID
	MediaVersion MediaVersion

	FillerKind FillerKind

	// Item-level decoration overrides.
	Watermarks        []ChannelWatermark
	GraphicsElements  []PlayoutItemGraphicsElement
	DisableWatermarks bool

	Playout *Playout
}

// IsFiller reports whether the item pads time rather than being deliberately
// scheduled content.
func (i PlayoutItem) IsFiller() bool {
	return i.FillerKind != "" && i.FillerKind != FillerKindNone
}

// Duration is the scheduled length of the item.
func (i PlayoutItem) Duration() time.Duration {
	return i.Finish.Sub(i.Start)
}
