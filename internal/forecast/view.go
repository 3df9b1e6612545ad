package forecast

import (
	"log"
	"strconv"
	"time"
)

// View is the rendered form of a filtered report.
type View struct {
	LocationName string    `json:"locationName"`
	FetchedAt    time.Time `json:"fetchedAt"`
	Days         []DayView `json:"days"`
}

type DayView struct {
	Day   string     `json:"day"`  // "Today" or weekday name
	Date  string     `json:"date"` // "1st May"
	Slots []SlotView `json:"slots"`
}

type SlotView struct {
	Time        string `json:"time"`
	Condition   string `json:"condition"`
	Temperature string `json:"temperatureC"`

	WindDirection string `json:"windDirection"`
	WindSpeed     int    `json:"windSpeedMph"`
	WindGust      int    `json:"windGustMph"`
	GustDiff      int    `json:"gustDifferenceMph"`

	WindDirectionRating Rating `json:"windDirectionRating"`
	WindSpeedRating     Rating `json:"windSpeedRating"`
	GustRating          Rating `json:"gustRating"`
	GustDiffRating      Rating `json:"gustDifferenceRating"`
	ConditionRating     Rating `json:"conditionRating"`

	Sites []Site `json:"sites"`
}

// Flyable reports whether every rated attribute of the slot is positive.
func (s SlotView) Flyable() bool {
	for _, r := range []Rating{s.WindDirectionRating, s.WindSpeedRating, s.GustRating, s.GustDiffRating, s.ConditionRating} {
		if r != Positive {
			return false
		}
	}
	return true
}

// BuildView filters snap's report against now and formats what is left.
// Slots with codes outside the DataPoint tables are skipped.
func BuildView(snap Snapshot, now time.Time) View {
	report := FilterReport(snap.Report, now)
	loc := report.SiteRep.DV.Location

	v := View{
		LocationName: loc.Name,
		FetchedAt:    snap.FetchedAt,
		Days:         make([]DayView, 0, len(loc.Period)),
	}

	for _, p := range loc.Period {
		day, err := ParsePeriodDate(p.Value)
		if err != nil {
			continue
		}

		dv := DayView{
			Day:  DayName(day, now),
			Date: PrettifyDate(day),
		}
		for _, rep := range p.Rep {
			sv, err := buildSlot(rep)
			if err != nil {
				log.Printf("DEBUG: skipping slot %s on %s: %v", rep.Minute, p.Value, err)
				continue
			}
			dv.Slots = append(dv.Slots, sv)
		}
		if len(dv.Slots) > 0 {
			v.Days = append(v.Days, dv)
		}
	}

	return v
}

func buildSlot(rep Rep) (SlotView, error) {
	label, err := TimeSlot(rep.Minute)
	if err != nil {
		return SlotView{}, err
	}
	cond, err := Condition(rep.WeatherType)
	if err != nil {
		return SlotView{}, err
	}

	speed := atoiDefault(rep.WindSpeed, 0)
	gust := atoiDefault(rep.WindGust, speed)
	diff := gust - speed
	if diff < 0 {
		diff = 0
	}

	sv := SlotView{
		Time:                label,
		Condition:           cond,
		Temperature:         rep.Temperature,
		WindDirection:       rep.WindDirection,
		WindSpeed:           speed,
		WindGust:            gust,
		GustDiff:            diff,
		WindDirectionRating: ClassifyWindDirection(rep.WindDirection),
		Sites:               SitesFor(rep.WindDirection),
	}

	// Classify only fails for unknown attributes, which these are not.
	sv.WindSpeedRating, _ = Classify(AttrWindSpeed, speed)
	sv.GustRating, _ = Classify(AttrGustStrength, gust)
	sv.GustDiffRating, _ = Classify(AttrGustDifference, diff)

	// "NA" has no numeric code and never rates positive.
	if code, err := strconv.Atoi(rep.WeatherType); err == nil {
		sv.ConditionRating, _ = Classify(AttrConditions, code)
	} else {
		sv.ConditionRating = Negative
	}

	return sv, nil
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
