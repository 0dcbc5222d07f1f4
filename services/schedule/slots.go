package schedule

import (
	"fmt"
	"time"

	"trylocal/models"
)

// SlotConfig controls pickup slot generation.
type SlotConfig struct {
	LeadTime    time.Duration // minimum delay between now and the earliest offerable slot
	Granularity time.Duration // spacing between consecutive slot boundaries
	HorizonDays int           // days to look ahead from today
}

// DefaultSlotConfig returns the standard pickup policy: 30-minute slots,
// 15 minutes of lead time, one week of lookahead.
func DefaultSlotConfig() SlotConfig {
	return SlotConfig{
		LeadTime:    15 * time.Minute,
		Granularity: 30 * time.Minute,
		HorizonDays: 7,
	}
}

func (c SlotConfig) normalized() SlotConfig {
	// The slot walk advances in whole minutes; anything below one minute
	// would round to a zero step.
	if c.Granularity < time.Minute {
		c.Granularity = 30 * time.Minute
	}
	if c.HorizonDays <= 0 {
		c.HorizonDays = 7
	}
	if c.LeadTime < 0 {
		c.LeadTime = 0
	}
	return c
}

// GenerateSlots computes the future pickup slots a customer may choose
// from, given a business's declared weekly hours. Pure: deterministic for
// identical inputs, no I/O.
//
// Slot boundaries run from each day's open time at Granularity spacing and
// stop before the close time. Any boundary before now+LeadTime is
// discarded, so the first offerable slot is now+LeadTime rounded up to the
// next boundary (a boundary landing exactly on now+LeadTime is kept).
// Days without declared hours contribute no slots; an empty result means
// no availability, not an error.
func GenerateSlots(hours models.BusinessHours, now time.Time, cfg SlotConfig) []models.PickupSlot {
	cfg = cfg.normalized()
	earliest := now.Add(cfg.LeadTime)
	granMin := int(cfg.Granularity.Minutes())

	var slots []models.PickupSlot
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for d := 0; d <= cfg.HorizonDays; d++ {
		day := today.AddDate(0, 0, d)
		dh, ok := hours.ForWeekday(day.Weekday())
		if !ok {
			continue
		}

		openMin, err := parseMinutes(dh.Open)
		if err != nil {
			continue
		}
		closeMin, err := parseMinutes(dh.Close)
		if err != nil || closeMin <= openMin {
			continue
		}

		for m := openMin; m < closeMin; m += granMin {
			at := day.Add(time.Duration(m) * time.Minute)
			if at.Before(earliest) {
				continue
			}
			slots = append(slots, models.PickupSlot{
				Date:  day.Format("2006-01-02"),
				Time:  fmt.Sprintf("%02d:%02d", m/60, m%60),
				Label: at.Format("Mon, Jan 2 at 3:04 PM"),
			})
		}
	}
	return slots
}

// parseMinutes converts a "15:04" time-of-day into minutes from midnight.
func parseMinutes(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
