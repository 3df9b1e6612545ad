package forecast

import (
	"fmt"
	"time"
)

var timeSlots = map[string]string{
	"360":  "6-9am",
	"540":  "9-12pm",
	"720":  "12-3pm",
	"900":  "3-6pm",
	"1080": "6-9pm",
}

// Significant weather codes as published by DataPoint.
var conditions = map[string]string{
	"NA": "Not available",
	"0":  "Clear night",
	"1":  "Sunny day",
	"2":  "Partly cloudy",
	"3":  "Partly cloudy",
	"4":  "Not used",
	"5":  "Mist",
	"6":  "Fog",
	"7":  "Cloudy",
	"8":  "Overcast",
	"9":  "Light rain shower",
	"10": "Light rain shower",
	"11": "Drizzle",
	"12": "Light rain",
	"13": "Heavy rain shower",
	"14": "Heavy rain shower",
	"15": "Heavy rain",
	"16": "Sleet shower",
	"17": "Sleet shower",
	"18": "Sleet",
	"19": "Hail shower",
	"20": "Hail shower",
	"21": "Hail",
	"22": "Light snow shower",
	"23": "Light snow shower",
	"24": "Light snow",
	"25": "Heavy snow shower",
	"26": "Heavy snow shower",
	"27": "Heavy snow",
	"28": "Thunder shower",
	"29": "Thunder shower",
	"30": "Thunder",
}

// Ordinal returns n with its English suffix: 1st, 2nd, 3rd, 4th, 11th, 22nd.
func Ordinal(n int) string {
	suffix := "th"
	if (n/10)%10 != 1 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// PrettifyDate formats d like "1st May".
func PrettifyDate(d time.Time) string {
	return Ordinal(d.Day()) + " " + d.Month().String()
}

// DayName returns "Today" for the current date, otherwise the weekday name.
func DayName(d, now time.Time) string {
	if dateOf(d).Equal(dateOf(now)) {
		return "Today"
	}
	return d.Weekday().String()
}

// TimeSlot returns the label for a daylight slot start minute.
func TimeSlot(minute string) (string, error) {
	label, ok := timeSlots[minute]
	if !ok {
		return "", fmt.Errorf("%w: time slot %q", ErrUnknownCode, minute)
	}
	return label, nil
}

// Condition returns the description of a significant weather code.
func Condition(code string) (string, error) {
	text, ok := conditions[code]
	if !ok {
		return "", fmt.Errorf("%w: weather type %q", ErrUnknownCode, code)
	}
	return text, nil
}
