/*
night.go - Night-differential calculator

PURPOSE:
  Computes the night-shift bonus for a single shift. Hours worked inside
  the 23:00-05:00 wall-clock window earn a fixed 10 extra minutes each.

ALGORITHM:
  The shift starts at Start on a reference day; if End is at or before
  Start it ends the following day. The interval is walked in whole-hour
  steps from Start; each step whose starting wall-clock hour falls inside
  the night window accrues the bonus. The bonus is a step function of
  elapsed hours, not a per-minute proration: a partial hour counts for
  the hour-bucket it starts in.

SEE ALSO:
  - types.go: Shift.TotalHours
*/
package timecalc

import "github.com/shopspring/decimal"

// Night window, half-open [23:00, 05:00) on the wall clock.
const (
	nightWindowStartHour = 23
	nightWindowEndHour   = 5

	// Bonus credited per hour worked inside the window.
	nightBonusMinutesPerHour = 10
)

// NightMinutes returns the night-differential bonus in minutes for a shift
// running from start to end. The result is a non-negative multiple of 10.
//
// The caller guarantees valid wall-clock inputs; see Shift.Validate.
func NightMinutes(start, end TimeOfDay) int {
	s := start.MinuteOfDay()
	e := end.MinuteOfDay()
	if e <= s {
		// Crosses midnight: end occurs on the next day. Equal start and end
		// therefore means a full 24-hour shift.
		e += minutesPerDay
	}

	bonus := 0
	for cur := s; cur < e; cur += 60 {
		hour := (cur / 60) % 24
		if hour >= nightWindowStartHour || hour < nightWindowEndHour {
			bonus += nightBonusMinutesPerHour
		}
	}
	return bonus
}

// TotalHours returns the credited duration of a shift in hours: the elapsed
// wall-clock time plus the night bonus. The bonus is additive on top of
// elapsed time, so a shift fully inside the night window is paid its real
// duration plus 10 minutes per hour.
func TotalHours(start, end TimeOfDay) Amount {
	s := start.MinuteOfDay()
	e := end.MinuteOfDay()
	if e <= s {
		e += minutesPerDay
	}

	elapsed := decimal.NewFromInt(int64(e - s))
	bonus := decimal.NewFromInt(int64(NightMinutes(start, end)))
	return Amount{
		Value: elapsed.Add(bonus).Div(decimal.NewFromInt(60)),
		Unit:  UnitHours,
	}
}
