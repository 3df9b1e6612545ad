package forecast

import (
	"fmt"
	"strconv"
	"time"
)

const periodLayout = "2006-01-02Z"

// slotMinutes is how far past a slot's start it still counts as current.
const slotMinutes = 179

var daylightSlots = map[string]bool{
	"360":  true,
	"540":  true,
	"720":  true,
	"900":  true,
	"1080": true,
}

// ParsePeriodDate parses a Period value such as "2024-05-01Z".
func ParsePeriodDate(value string) (time.Time, error) {
	d, err := time.Parse(periodLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid period date %q: %w", value, err)
	}
	return d, nil
}

// IsDaylight reports whether the slot starting at minute is a flyable
// daylight slot (06:00 to 21:00).
func IsDaylight(minute string) bool {
	return daylightSlots[minute]
}

// IsNotPastDate reports whether day is today or later.
func IsNotPastDate(day, now time.Time) bool {
	return !dateOf(day).Before(dateOf(now))
}

// IsNotPastTime reports whether the slot starting at minute on day has not
// ended yet.
func IsNotPastTime(day time.Time, minute int, now time.Time) bool {
	if dateOf(day).After(dateOf(now)) {
		return true
	}
	return float64(minute+slotMinutes) > minutesSinceMidnight(now)
}

// FilterReport removes past days, past slots of today and night slots.
// Days left with no slots are dropped. Periods with unparsable dates are
// dropped as well.
func FilterReport(r Report, now time.Time) Report {
	periods := r.SiteRep.DV.Location.Period
	kept := make([]Period, 0, len(periods))

	for _, p := range periods {
		day, err := ParsePeriodDate(p.Value)
		if err != nil {
			continue
		}
		if !IsNotPastDate(day, now) {
			continue
		}

		reps := make([]Rep, 0, len(p.Rep))
		for _, rep := range p.Rep {
			minute, err := strconv.Atoi(rep.Minute)
			if err != nil {
				continue
			}
			if IsNotPastTime(day, minute, now) && IsDaylight(rep.Minute) {
				reps = append(reps, rep)
			}
		}

		if len(reps) > 0 {
			p.Rep = reps
			kept = append(kept, p)
		}
	}

	r.SiteRep.DV.Location.Period = kept
	return r
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// minutesSinceMidnight is the wall-clock minute of the day, which is what
// DataPoint slot offsets count. Elapsed time differs on DST change days.
func minutesSinceMidnight(t time.Time) float64 {
	return float64(t.Hour()*60+t.Minute()) + float64(t.Second())/60
}
