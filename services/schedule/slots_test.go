package schedule

import (
	"testing"
	"time"

	"trylocal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// June 2, 2025 is a Monday.
var monday = time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

func mondayHours(open, close string) models.BusinessHours {
	return models.BusinessHours{
		"monday": {Open: open, Close: close},
	}
}

func TestGenerateSlots_FirstAndLastSlot(t *testing.T) {
	// Hours Mon 09:00-17:00, granularity 30 min, lead time 15 min,
	// now = Mon 11:50. Lead pushes the earliest instant to 12:05, which
	// rounds up to the 12:30 boundary; the last boundary before close is 16:30.
	hours := mondayHours("09:00", "17:00")
	now := monday.Add(11*time.Hour + 50*time.Minute)
	cfg := SlotConfig{LeadTime: 15 * time.Minute, Granularity: 30 * time.Minute, HorizonDays: 1}

	slots := GenerateSlots(hours, now, cfg)
	require.NotEmpty(t, slots)

	assert.Equal(t, "2025-06-02", slots[0].Date)
	assert.Equal(t, "12:30", slots[0].Time)

	last := slots[len(slots)-1]
	assert.Equal(t, "2025-06-02", last.Date)
	assert.Equal(t, "16:30", last.Time)
}

func TestGenerateSlots_LeadLandsExactlyOnBoundary(t *testing.T) {
	// now+lead = 12:00 exactly; a boundary landing on the earliest
	// offerable instant is kept.
	hours := mondayHours("09:00", "17:00")
	now := monday.Add(11*time.Hour + 45*time.Minute)
	cfg := SlotConfig{LeadTime: 15 * time.Minute, Granularity: 30 * time.Minute, HorizonDays: 1}

	slots := GenerateSlots(hours, now, cfg)
	require.NotEmpty(t, slots)
	assert.Equal(t, "12:00", slots[0].Time)
}

func TestGenerateSlots_NoOpenDays(t *testing.T) {
	slots := GenerateSlots(models.BusinessHours{}, monday.Add(9*time.Hour), DefaultSlotConfig())
	assert.Empty(t, slots)
}

func TestGenerateSlots_PastClosingYieldsLaterDaysOnly(t *testing.T) {
	// Open Monday only; now is Monday 18:00, after close. The next
	// offerable slots are the following Monday.
	hours := mondayHours("09:00", "17:00")
	now := monday.Add(18 * time.Hour)

	slots := GenerateSlots(hours, now, DefaultSlotConfig())
	require.NotEmpty(t, slots)
	assert.Equal(t, "2025-06-09", slots[0].Date)
	assert.Equal(t, "09:00", slots[0].Time)
}

func TestGenerateSlots_PastClosingWithShortHorizonIsEmpty(t *testing.T) {
	// No availability is a valid, empty result, not an error.
	hours := mondayHours("09:00", "17:00")
	now := monday.Add(18 * time.Hour)
	cfg := SlotConfig{LeadTime: 15 * time.Minute, Granularity: 30 * time.Minute, HorizonDays: 3}

	slots := GenerateSlots(hours, now, cfg)
	assert.Empty(t, slots)
}

func TestGenerateSlots_StrictlyOrderedNoDuplicates(t *testing.T) {
	hours := models.BusinessHours{
		"monday":    {Open: "09:00", Close: "17:00"},
		"tuesday":   {Open: "08:00", Close: "12:00"},
		"wednesday": {Open: "10:30", Close: "15:30"},
		"saturday":  {Open: "09:00", Close: "13:00"},
	}
	now := monday.Add(7 * time.Hour)

	slots := GenerateSlots(hours, now, DefaultSlotConfig())
	require.NotEmpty(t, slots)

	for i := 1; i < len(slots); i++ {
		prev, cur := slots[i-1], slots[i]
		if prev.Date == cur.Date {
			assert.Less(t, prev.Time, cur.Time, "slots on %s out of order", cur.Date)
		} else {
			assert.Less(t, prev.Date, cur.Date)
		}
	}
}

func TestGenerateSlots_FirstSlotRespectsLeadTime(t *testing.T) {
	hours := mondayHours("09:00", "17:00")
	cfg := SlotConfig{LeadTime: 45 * time.Minute, Granularity: 30 * time.Minute, HorizonDays: 0}

	for _, minute := range []int{0, 1, 14, 29, 30, 31, 59} {
		now := monday.Add(10*time.Hour + time.Duration(minute)*time.Minute)
		slots := GenerateSlots(hours, now, cfg)
		require.NotEmpty(t, slots, "now=10:%02d", minute)

		first, err := time.ParseInLocation("2006-01-02 15:04", slots[0].Date+" "+slots[0].Time, time.UTC)
		require.NoError(t, err)
		assert.False(t, first.Before(now.Add(cfg.LeadTime)),
			"first slot %s is inside the lead window for now=10:%02d", slots[0].Time, minute)
	}
}

func TestGenerateSlots_ClosedDayContributesNothing(t *testing.T) {
	// Tuesday is closed, so no slot may carry Tuesday's date.
	hours := models.BusinessHours{
		"monday":    {Open: "09:00", Close: "17:00"},
		"wednesday": {Open: "09:00", Close: "17:00"},
	}
	now := monday.Add(8 * time.Hour)

	slots := GenerateSlots(hours, now, DefaultSlotConfig())
	require.NotEmpty(t, slots)
	for _, s := range slots {
		assert.NotEqual(t, "2025-06-03", s.Date)
	}
}

func TestGenerateSlots_DeterministicForIdenticalInputs(t *testing.T) {
	hours := mondayHours("09:00", "17:00")
	now := monday.Add(9*time.Hour + 5*time.Minute)

	first := GenerateSlots(hours, now, DefaultSlotConfig())
	second := GenerateSlots(hours, now, DefaultSlotConfig())
	assert.Equal(t, first, second)
}

func TestGenerateSlots_SubMinuteGranularityFallsBack(t *testing.T) {
	// A granularity below one minute would round to a zero-minute step;
	// the config must fall back to the default spacing and terminate.
	hours := mondayHours("09:00", "17:00")
	now := monday.Add(8 * time.Hour)
	cfg := SlotConfig{LeadTime: 15 * time.Minute, Granularity: 30 * time.Second, HorizonDays: 1}

	slots := GenerateSlots(hours, now, cfg)
	require.Len(t, slots, 16)
	assert.Equal(t, "09:00", slots[0].Time)
	assert.Equal(t, "09:30", slots[1].Time)
	assert.Equal(t, "16:30", slots[15].Time)
}

func TestGenerateSlots_MalformedHoursAreSkipped(t *testing.T) {
	hours := models.BusinessHours{
		"monday":  {Open: "nine", Close: "17:00"},
		"tuesday": {Open: "14:00", Close: "09:00"},
	}
	slots := GenerateSlots(hours, monday.Add(8*time.Hour), DefaultSlotConfig())
	assert.Empty(t, slots)
}

func TestGenerateSlots_LabelFormat(t *testing.T) {
	hours := mondayHours("09:00", "17:00")
	now := monday.Add(8 * time.Hour)
	cfg := SlotConfig{LeadTime: 15 * time.Minute, Granularity: 30 * time.Minute, HorizonDays: 0}

	slots := GenerateSlots(hours, now, cfg)
	require.NotEmpty(t, slots)
	assert.Equal(t, "Mon, Jun 2 at 9:00 AM", slots[0].Label)
}
