package forecast

import (
	"time"
)

// Report is the DataPoint 3-hourly site forecast payload.
type Report struct {
	SiteRep SiteRep `json:"SiteRep"`
}

type SiteRep struct {
	Wx Wx `json:"Wx"`
	DV DV `json:"DV"`
}

// Wx describes the parameters present in each Rep.
type Wx struct {
	Param []Param `json:"Param"`
}

type Param struct {
	Name  string `json:"name"`
	Units string `json:"units"`
	Text  string `json:"$"`
}

type DV struct {
	DataDate string   `json:"dataDate"`
	Type     string   `json:"type"`
	Location Location `json:"Location"`
}

type Location struct {
	ID        string   `json:"i"`
	Lat       string   `json:"lat"`
	Lon       string   `json:"lon"`
	Name      string   `json:"name"`
	Country   string   `json:"country"`
	Continent string   `json:"continent"`
	Elevation string   `json:"elevation"`
	Period    []Period `json:"Period"`
}

// Period is one forecast day. Value is formatted like "2024-05-01Z".
type Period struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Rep   []Rep  `json:"Rep"`
}

// Rep is one 3-hour slot. Minute is the slot start in minutes after
// midnight ("0", "180", ... "1260").
type Rep struct {
	WindDirection string `json:"D"`
	FeelsLike     string `json:"F"`
	WindGust      string `json:"G"`
	Humidity      string `json:"H"`
	PrecipProb    string `json:"Pp"`
	WindSpeed     string `json:"S"`
	Temperature   string `json:"T"`
	Visibility    string `json:"V"`
	WeatherType   string `json:"W"`
	UV            string `json:"U"`
	Minute        string `json:"$"`
}

// Snapshot is a fetched report for a location.
type Snapshot struct {
	LocationID string    `json:"locationId"`
	FetchedAt  time.Time `json:"fetchedAt"` // always UTC
	Report     Report    `json:"report"`
}
