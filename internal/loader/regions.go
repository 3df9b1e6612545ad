package loader

import (
	"sort"
	"sync"
)

// Region identifiers on the forecast page.
const (
	RegionForecast    = "forecast"
	RegionLoading     = "loading"
	RegionLoadingIcon = "loading-icon"
	RegionLoadingText = "loading-text"
)

// Icon classes used by the loading indicator.
const (
	ClassLoading = "mdi-loading"
	ClassSpin    = "mdi-spin"
	ClassAlert   = "mdi-alert"
)

// DefaultLoadingText is the status label shown while the request is pending.
const DefaultLoadingText = "Loading forecast..."

// region is an addressable area of the page. It is only touched under the
// owning Regions lock.
type region struct {
	id      string
	hidden  bool
	text    string
	html    string
	classes map[string]struct{}
	styles  map[string]string
}

func newRegion(id string, classes ...string) *region {
	r := &region{
		id:      id,
		classes: make(map[string]struct{}),
		styles:  make(map[string]string),
	}
	r.addClass(classes...)
	return r
}

func (r *region) addClass(names ...string) {
	for _, n := range names {
		r.classes[n] = struct{}{}
	}
}

func (r *region) removeClass(names ...string) {
	for _, n := range names {
		delete(r.classes, n)
	}
}

func (r *region) state() RegionState {
	st := RegionState{
		ID:      r.id,
		Hidden:  r.hidden,
		Text:    r.text,
		HTML:    r.html,
		Classes: make([]string, 0, len(r.classes)),
		Styles:  make(map[string]string, len(r.styles)),
	}
	for c := range r.classes {
		st.Classes = append(st.Classes, c)
	}
	sort.Strings(st.Classes)
	for k, v := range r.styles {
		st.Styles[k] = v
	}
	return st
}

// RegionState is a copy of one region: visibility, sorted style classes,
// inline styles, text and inner HTML.
type RegionState struct {
	ID      string
	Hidden  bool
	Classes []string
	Styles  map[string]string
	Text    string
	HTML    string
}

// PageState is a consistent copy of every region on the page.
type PageState struct {
	Forecast    RegionState
	Loading     RegionState
	LoadingIcon RegionState
	LoadingText RegionState
}

// Regions is the set of page regions the loader mutates. It implements
// UIState and is safe for use from multiple goroutines; reads go through
// State.
type Regions struct {
	mu sync.RWMutex

	forecast    *region
	loading     *region
	loadingIcon *region
	loadingText *region
}

// NewRegions returns the page in its initial loading state: forecast hidden,
// spinner spinning, default status text.
func NewRegions() *Regions {
	rs := &Regions{
		forecast:    newRegion(RegionForecast),
		loading:     newRegion(RegionLoading),
		loadingIcon: newRegion(RegionLoadingIcon, ClassLoading, ClassSpin),
		loadingText: newRegion(RegionLoadingText),
	}
	rs.forecast.hidden = true
	rs.loadingText.text = DefaultLoadingText
	return rs
}

// ShowForecast inserts content verbatim, hides the loading region and shows
// the forecast region.
func (rs *Regions) ShowForecast(content string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	rs.forecast.html = content
	rs.loading.hidden = true
	rs.forecast.hidden = false
}

// ShowError turns the spinner into a static alert icon and sets the message.
func (rs *Regions) ShowError(message string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	rs.loadingIcon.removeClass(ClassLoading, ClassSpin)
	rs.loadingIcon.styles["color"] = WarningColor
	rs.loadingIcon.addClass(ClassAlert)
	rs.loadingText.text = message
}

// State returns a copy of all regions taken under one read lock.
func (rs *Regions) State() PageState {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	return PageState{
		Forecast:    rs.forecast.state(),
		Loading:     rs.loading.state(),
		LoadingIcon: rs.loadingIcon.state(),
		LoadingText: rs.loadingText.state(),
	}
}
