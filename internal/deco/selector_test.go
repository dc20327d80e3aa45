package deco

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pwllr/airwave/internal/domain"
)

func templateFor(day time.Time, items ...domain.DecoTemplateItem) domain.PlayoutTemplate {
	return domain.PlayoutTemplate{
		DaysOfWeek:   []time.Weekday{day.Weekday()},
		DaysOfMonth:  []int{day.Day()},
		MonthsOfYear: []time.Month{day.Month()},
		DecoTemplate: &domain.DecoTemplate{Name: "plan", Items: items},
	}
}

func TestGetDecoEntries_WindowContainsNow(t *testing.T) {
	now := time.Date(2025, 5, 14, 12, 30, 0, 0, time.UTC)
	playout := &domain.Playout{
		Templates: []domain.PlayoutTemplate{
			templateFor(now, domain.DecoTemplateItem{
				StartTime: 10 * time.Hour,
				EndTime:   18 * time.Hour,
				Deco:      domain.Deco{Name: "daytime"},
			}),
		},
	}

	entries := NewSelector(zerolog.Nop()).GetDecoEntries(playout, now)
	require.NotNil(t, entries.TemplateDeco)
	assert.Equal(t, "daytime", entries.TemplateDeco.Name)
}

func TestGetDecoEntries_BeforeWindowStartDoesNotMatch(t *testing.T) {
	now := time.Date(2025, 5, 14, 9, 0, 0, 0, time.UTC)
	playout := &domain.Playout{
		Templates: []domain.PlayoutTemplate{
			templateFor(now, domain.DecoTemplateItem{
				StartTime: 10 * time.Hour,
				EndTime:   18 * time.Hour,
				Deco:      domain.Deco{Name: "daytime"},
			}),
		},
	}

	entries := NewSelector(zerolog.Nop()).GetDecoEntries(playout, now)
	assert.Nil(t, entries.TemplateDeco)
}

func TestGetDecoEntries_EndIsExclusive(t *testing.T) {
	now := time.Date(2025, 5, 14, 18, 0, 0, 0, time.UTC)
	playout := &domain.Playout{
		Templates: []domain.PlayoutTemplate{
			templateFor(now, domain.DecoTemplateItem{
				StartTime: 10 * time.Hour,
				EndTime:   18 * time.Hour,
				Deco:      domain.Deco{Name: "daytime"},
			}),
		},
	}

	entries := NewSelector(zerolog.Nop()).GetDecoEntries(playout, now)
	assert.Nil(t, entries.TemplateDeco)
}

func TestGetDecoEntries_FirstMatchingTemplateWins(t *testing.T) {
	now := time.Date(2025, 5, 14, 12, 0, 0, 0, time.UTC)
	playout := &domain.Playout{
		Templates: []domain.PlayoutTemplate{
			templateFor(now, domain.DecoTemplateItem{
				StartTime: 0,
				EndTime:   24 * time.Hour,
				Deco:      domain.Deco{Name: "first"},
			}),
			templateFor(now, domain.DecoTemplateItem{
				StartTime: 11 * time.Hour,
				EndTime:   13 * time.Hour,
				Deco:      domain.Deco{Name: "tighter-but-later"},
			}),
		},
	}

	entries := NewSelector(zerolog.Nop()).GetDecoEntries(playout, now)
	require.NotNil(t, entries.TemplateDeco)
	assert.Equal(t, "first", entries.TemplateDeco.Name)
}

func TestGetDecoEntries_WrongDayOfWeekSkipsTemplate(t *testing.T) {
	now := time.Date(2025, 5, 14, 12, 0, 0, 0, time.UTC) // a Wednesday
	tpl := templateFor(now, domain.DecoTemplateItem{
		StartTime: 0,
		EndTime:   24 * time.Hour,
		Deco:      domain.Deco{Name: "weekend"},
	})
	tpl.DaysOfWeek = []time.Weekday{time.Saturday, time.Sunday}

	playout := &domain.Playout{Templates: []domain.PlayoutTemplate{tpl}}

	entries := NewSelector(zerolog.Nop()).GetDecoEntries(playout, now)
	assert.Nil(t, entries.TemplateDeco)
}

func TestGetDecoEntries_NilPlayout(t *testing.T) {
	entries := NewSelector(zerolog.Nop()).GetDecoEntries(nil, time.Now())
	assert.Nil(t, entries.TemplateDeco)
}
