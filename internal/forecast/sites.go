package forecast

import (
	"fmt"
)

// Site is a flying site and the wind directions it works in.
type Site struct {
	Name           string   `json:"name"`
	WindDirections []string `json:"windDirections"`
}

var sites = []Site{
	{Name: "Beachy Head", WindDirections: []string{"SE"}},
	{Name: "Bo Peep", WindDirections: []string{"NNE", "NE", "ENE"}},
	{Name: "Caburn", WindDirections: []string{"S", "SSW", "SW"}},
	{Name: "Devils Dyke", WindDirections: []string{"N", "WNW", "NW", "NNW"}},
	{Name: "Ditchling", WindDirections: []string{"N", "NNE", "NNW"}},
	{Name: "Firle", WindDirections: []string{"N", "NNE", "NW", "NNW"}},
	{Name: "High & Over", WindDirections: []string{"E"}},
	{Name: "Newhaven Cliffs", WindDirections: []string{"SSE", "S", "SSW"}},
	{Name: "Truleigh", WindDirections: []string{"N", "NNE", "NNW"}},
}

// SitesFor returns the sites that work in the given wind direction, in
// table order.
func SitesFor(windDirection string) []Site {
	var out []Site
	for _, s := range sites {
		for _, d := range s.WindDirections {
			if d == windDirection {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// Rating is the outcome of classifying a forecast attribute.
type Rating string

const (
	Positive Rating = "positive"
	Negative Rating = "negative"
)

// Numeric attributes accepted by Classify. Wind direction is rated by
// ClassifyWindDirection.
type Attribute string

const (
	AttrWindSpeed      Attribute = "wind_speed"
	AttrGustStrength   Attribute = "gust_strength"
	AttrGustDifference Attribute = "gust_difference"
	AttrConditions     Attribute = "conditions"
)

// ClassifyWindDirection rates every direction except W and WSW as positive.
func ClassifyWindDirection(dir string) Rating {
	if dir == "W" || dir == "WSW" {
		return Negative
	}
	return Positive
}

// Classify rates a numeric attribute. Wind speeds and gusts are in mph.
func Classify(attr Attribute, value int) (Rating, error) {
	var ok bool
	switch attr {
	case AttrWindSpeed:
		ok = value >= 4 && value <= 13
	case AttrGustStrength:
		ok = value <= 15
	case AttrGustDifference:
		ok = value <= 5
	case AttrConditions:
		ok = value <= 8
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAttribute, attr)
	}
	if ok {
		return Positive, nil
	}
	return Negative, nil
}
