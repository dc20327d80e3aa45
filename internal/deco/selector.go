// Package deco resolves which decoration (watermark, graphics overlay) applies
// to a playout item at a given instant. All selectors are pure functions of
// (channel, item, now) and never mutate their inputs.
package deco

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/pwllr/airwave/internal/domain"
)

// Entries is the result of template-deco resolution for one instant.
type Entries struct {
	// TemplateDeco is the deco owned by the first matching playout template,
	// nil when no template window covers the instant.
	TemplateDeco *domain.Deco
}

// Selector resolves decos, watermarks and graphics elements.
type Selector struct {
	log zerolog.Logger
}

func NewSelector(log zerolog.Logger) Selector {
	return Selector{log: log}
}

// GetDecoEntries scans the playout's templates in declared order and returns
// the deco of the first template whose calendar sets contain now's date and
// whose deco template owns a [start,end) time-of-day window containing now.
// First match wins; callers fall through to the channel-default deco when the
// result is empty.
func (s Selector) GetDecoEntries(playout *domain.Playout, now time.Time) Entries {
	if playout == nil {
		return Entries{}
	}

	tod := timeOfDay(now)
	for _, tpl := range playout.Templates {
		if !templateAppliesOn(tpl, now) {
			continue
		}
		if tpl.DecoTemplate == nil {
			continue
		}
		for _, item := range tpl.DecoTemplate.Items {
			if tod >= item.StartTime && tod < item.EndTime {
				deco := item.Deco
				s.log.Debug().
					Str("deco", deco.Name).
					Str("template", tpl.DecoTemplate.Name).
					Msg("template deco window matched")
				return Entries{TemplateDeco: &deco}
			}
		}
	}

	return Entries{}
}

// templateAppliesOn checks the day-of-week / day-of-month / month-of-year sets.
// A template with an empty set never applies; templates are expected to carry
// fully populated sets.
func templateAppliesOn(tpl domain.PlayoutTemplate, now time.Time) bool {
	return containsWeekday(tpl.DaysOfWeek, now.Weekday()) &&
		containsInt(tpl.DaysOfMonth, now.Day()) &&
		containsMonth(tpl.MonthsOfYear, now.Month())
}

func timeOfDay(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}

func containsWeekday(days []time.Weekday, day time.Weekday) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func containsMonth(months []time.Month, m time.Month) bool {
	for _, x := range months {
		if x == m {
			return true
		}
	}
	return false
}
