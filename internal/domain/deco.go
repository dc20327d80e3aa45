package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChannelWatermark describes one overlay watermark asset and its placement.
type ChannelWatermark struct {
	ID        uuid.UUID
	Name      string
	Mode      WatermarkMode
	ImagePath string

	Location WatermarkLocation
	Size     WatermarkSize

	WidthPercent            float64
	HorizontalMarginPercent float64
	VerticalMarginPercent   float64
	Opacity                 int // 0..100

	// Intermittent display: shown for DurationSeconds every FrequencyMinutes.
	FrequencyMinutes int
	DurationSeconds  int
}

// GraphicsElement is an overlay graphics asset (template definition).
type GraphicsElement struct {
	ID   uuid.UUID
	Path string
}

// PlayoutItemGraphicsElement is a graphics element bound to a playout item,
// optionally carrying template variables for rendering.
type PlayoutItemGraphicsElement struct {
	Element   GraphicsElement
	Variables map[string]string
}

// Deco is a named decoration bundle. Watermark and graphics each have an
// independent mode plus their own "show during filler" flag.
type Deco struct {
	ID   uuid.UUID
	Name string

	WatermarkMode            DecoMode
	Watermarks               []ChannelWatermark
	UseWatermarkDuringFiller bool

	GraphicsMode            DecoMode
	GraphicsElements        []GraphicsElement
	UseGraphicsDuringFiller bool
}

// DecoTemplateItem assigns a deco to a time-of-day window [StartTime, EndTime)
// expressed as offsets from midnight. EndTime may be a full 24h.
type DecoTemplateItem struct {
	StartTime time.Duration
	EndTime   time.Duration
	Deco      Deco
}

// DecoTemplate is an ordered day plan of deco windows.
type DecoTemplate struct {
	ID    uuid.UUID
	Name  string
	Items []DecoTemplateItem
}

// PlayoutTemplate scopes a deco template to calendar day sets. A template
// applies on a given date only when all three sets contain that date.
type PlayoutTemplate struct {
	ID           uuid.UUID
	Index        int // declared order, lower wins on tie
	DaysOfWeek   []time.Weekday
	DaysOfMonth  []int
	MonthsOfYear []time.Month
	DecoTemplate *DecoTemplate
}
