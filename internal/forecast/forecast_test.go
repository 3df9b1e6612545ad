package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday, 10:00.
var testNow = time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)

func rep(minute, dir, speed, gust, weather string) Rep {
	return Rep{
		Minute:        minute,
		WindDirection: dir,
		WindSpeed:     speed,
		WindGust:      gust,
		WeatherType:   weather,
		Temperature:   "14",
	}
}

func testReport() Report {
	var r Report
	r.SiteRep.DV.Location.Name = "LEWES"
	r.SiteRep.DV.Location.Period = []Period{
		{Value: "2024-04-30Z", Rep: []Rep{rep("720", "N", "8", "12", "1")}},
		{Value: "2024-05-01Z", Rep: []Rep{
			rep("0", "N", "8", "12", "0"),
			rep("360", "N", "8", "12", "1"),
			rep("540", "N", "8", "12", "1"),
			rep("720", "W", "15", "25", "12"),
			rep("1260", "N", "8", "12", "0"),
		}},
		{Value: "2024-05-02Z", Rep: []Rep{
			rep("0", "S", "5", "8", "0"),
			rep("360", "S", "5", "8", "3"),
			rep("1080", "SSW", "6", "9", "7"),
		}},
		{Value: "2024-05-03Z", Rep: []Rep{
			rep("0", "S", "5", "8", "0"),
			rep("1260", "S", "5", "8", "0"),
		}},
	}
	return r
}

func minutes(p Period) []string {
	var out []string
	for _, r := range p.Rep {
		out = append(out, r.Minute)
	}
	return out
}

func TestFilterReport(t *testing.T) {
	got := FilterReport(testReport(), testNow).SiteRep.DV.Location.Period

	require.Len(t, got, 2)
	assert.Equal(t, "2024-05-01Z", got[0].Value)
	assert.Equal(t, []string{"540", "720"}, minutes(got[0]))
	assert.Equal(t, "2024-05-02Z", got[1].Value)
	assert.Equal(t, []string{"360", "1080"}, minutes(got[1]))
}

func TestFilterReportDoesNotMutateInput(t *testing.T) {
	r := testReport()
	_ = FilterReport(r, testNow)
	assert.Len(t, r.SiteRep.DV.Location.Period, 4)
	assert.Len(t, r.SiteRep.DV.Location.Period[1].Rep, 5)
}

func TestIsNotPastTime(t *testing.T) {
	today := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)

	assert.False(t, IsNotPastTime(today, 360, testNow)) // 06:00-08:59 ended
	assert.False(t, IsNotPastTime(today, 421, testNow)) // ends exactly at 10:00
	assert.True(t, IsNotPastTime(today, 422, testNow))
	assert.True(t, IsNotPastTime(today, 540, testNow))
	assert.True(t, IsNotPastTime(tomorrow, 0, testNow))
}

func TestIsNotPastTimeAcrossDSTChange(t *testing.T) {
	london, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	// Clocks went forward at 01:00; 09:30 is 510 elapsed minutes but 570 on the clock.
	spring := time.Date(2024, time.March, 31, 9, 30, 0, 0, london)
	springDay := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	assert.False(t, IsNotPastTime(springDay, 360, spring)) // 06:00-08:59 ended
	assert.True(t, IsNotPastTime(springDay, 540, spring))

	// Clocks went back at 02:00; 09:30 is 630 elapsed minutes but 570 on the clock.
	autumn := time.Date(2024, time.October, 27, 9, 30, 0, 0, london)
	autumnDay := time.Date(2024, time.October, 27, 0, 0, 0, 0, time.UTC)
	assert.True(t, IsNotPastTime(autumnDay, 422, autumn)) // ends at 10:01
	assert.False(t, IsNotPastTime(autumnDay, 360, autumn))
}

func TestIsDaylight(t *testing.T) {
	for _, m := range []string{"360", "540", "720", "900", "1080"} {
		assert.True(t, IsDaylight(m), m)
	}
	for _, m := range []string{"0", "180", "1260", "", "361"} {
		assert.False(t, IsDaylight(m), m)
	}
}

func TestPrettifyDate(t *testing.T) {
	cases := map[string]time.Time{
		"1st May":        time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		"2nd May":        time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC),
		"3rd March":      time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC),
		"11th July":      time.Date(2024, time.July, 11, 0, 0, 0, 0, time.UTC),
		"12th July":      time.Date(2024, time.July, 12, 0, 0, 0, 0, time.UTC),
		"13th July":      time.Date(2024, time.July, 13, 0, 0, 0, 0, time.UTC),
		"22nd June":      time.Date(2024, time.June, 22, 0, 0, 0, 0, time.UTC),
		"23rd June":      time.Date(2024, time.June, 23, 0, 0, 0, 0, time.UTC),
		"31st December":  time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
		"20th September": time.Date(2024, time.September, 20, 0, 0, 0, 0, time.UTC),
	}
	for want, d := range cases {
		assert.Equal(t, want, PrettifyDate(d))
	}
	assert.Equal(t, "111th", Ordinal(111))
	assert.Equal(t, "101st", Ordinal(101))
}

func TestDayName(t *testing.T) {
	assert.Equal(t, "Today", DayName(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), testNow))
	assert.Equal(t, "Thursday", DayName(time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC), testNow))
}

func TestTimeSlotAndCondition(t *testing.T) {
	label, err := TimeSlot("540")
	require.NoError(t, err)
	assert.Equal(t, "9-12pm", label)

	_, err = TimeSlot("0")
	assert.ErrorIs(t, err, ErrUnknownCode)

	text, err := Condition("NA")
	require.NoError(t, err)
	assert.Equal(t, "Not available", text)

	text, err = Condition("30")
	require.NoError(t, err)
	assert.Equal(t, "Thunder", text)

	_, err = Condition("31")
	assert.ErrorIs(t, err, ErrUnknownCode)
}

func TestSitesFor(t *testing.T) {
	names := func(ss []Site) []string {
		var out []string
		for _, s := range ss {
			out = append(out, s.Name)
		}
		return out
	}

	assert.Equal(t, []string{"Devils Dyke", "Ditchling", "Firle", "Truleigh"}, names(SitesFor("N")))
	assert.Equal(t, []string{"Caburn", "Newhaven Cliffs"}, names(SitesFor("S")))
	assert.Equal(t, []string{"Beachy Head"}, names(SitesFor("SE")))
	assert.Empty(t, SitesFor("W"))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, Negative, ClassifyWindDirection("W"))
	assert.Equal(t, Negative, ClassifyWindDirection("WSW"))
	assert.Equal(t, Positive, ClassifyWindDirection("NW"))

	cases := []struct {
		attr  Attribute
		value int
		want  Rating
	}{
		{AttrWindSpeed, 3, Negative},
		{AttrWindSpeed, 4, Positive},
		{AttrWindSpeed, 13, Positive},
		{AttrWindSpeed, 14, Negative},
		{AttrGustStrength, 15, Positive},
		{AttrGustStrength, 16, Negative},
		{AttrGustDifference, 5, Positive},
		{AttrGustDifference, 6, Negative},
		{AttrConditions, 8, Positive},
		{AttrConditions, 9, Negative},
	}
	for _, c := range cases {
		got, err := Classify(c.attr, c.value)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "%s=%d", c.attr, c.value)
	}

	_, err := Classify("altitude", 1)
	assert.ErrorIs(t, err, ErrUnknownAttribute)
}

func TestBuildView(t *testing.T) {
	snap := Snapshot{LocationID: "351611", FetchedAt: testNow, Report: testReport()}
	v := BuildView(snap, testNow)

	assert.Equal(t, "LEWES", v.LocationName)
	require.Len(t, v.Days, 2)

	today := v.Days[0]
	assert.Equal(t, "Today", today.Day)
	assert.Equal(t, "1st May", today.Date)
	require.Len(t, today.Slots, 2)

	good := today.Slots[0]
	assert.Equal(t, "9-12pm", good.Time)
	assert.Equal(t, "Sunny day", good.Condition)
	assert.Equal(t, 4, good.GustDiff)
	assert.True(t, good.Flyable())
	assert.Len(t, good.Sites, 4)

	bad := today.Slots[1]
	assert.Equal(t, "12-3pm", bad.Time)
	assert.Equal(t, Negative, bad.WindDirectionRating)
	assert.Equal(t, Negative, bad.WindSpeedRating)
	assert.Equal(t, Negative, bad.GustRating)
	assert.Equal(t, Negative, bad.GustDiffRating)
	assert.Equal(t, Negative, bad.ConditionRating)
	assert.False(t, bad.Flyable())
	assert.Empty(t, bad.Sites)

	assert.Equal(t, "Thursday", v.Days[1].Day)
	assert.Equal(t, "2nd May", v.Days[1].Date)
}

func TestBuildViewSkipsUnknownCodes(t *testing.T) {
	var r Report
	r.SiteRep.DV.Location.Period = []Period{
		{Value: "2024-05-02Z", Rep: []Rep{rep("360", "N", "8", "10", "99")}},
	}
	v := BuildView(Snapshot{Report: r}, testNow)
	assert.Empty(t, v.Days)
}
