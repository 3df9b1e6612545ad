package ui

import (
	"context"

	"github.com/maxence-charriere/go-app/v9/pkg/app"

	"github.com/i474232898/soaring-forecast/internal/loader"
)

var _ loader.UIState = (*Page)(nil)

// Page is the forecast page. It starts in the loading state and loads the
// forecast fragment once mounted.
type Page struct {
	app.Compo

	regions *loader.Regions
	loader  *loader.Loader
	cancel  context.CancelFunc
}

func (p *Page) OnInit() {
	p.regions = loader.NewRegions()
}

// OnMount is the page-ready event.
func (p *Page) OnMount(ctx app.Context) {
	pageCtx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel

	fetcher := loader.NewHTTPFetcher(nil, "")
	p.loader = loader.New(fetcher, p, func(fn func()) {
		ctx.Dispatch(func(app.Context) { fn() })
	})
	p.loader.OnReady(pageCtx)
}

func (p *Page) OnDismount() {
	if p.cancel != nil {
		p.cancel()
	}
}

// ShowForecast and ShowError run on the UI goroutine via ctx.Dispatch,
// which re-renders the component afterwards.
func (p *Page) ShowForecast(content string) { p.regions.ShowForecast(content) }
func (p *Page) ShowError(message string)    { p.regions.ShowError(message) }

func (p *Page) Render() app.UI {
	if p.regions == nil {
		p.regions = loader.NewRegions()
	}
	st := p.regions.State()

	return app.Main().Class("page").Body(
		app.Header().Class("page-header").Body(
			app.H1().Text("Soaring forecast"),
		),
		renderLoading(st),
		renderForecast(st.Forecast),
	)
}

func renderLoading(st loader.PageState) app.HTMLDiv {
	icon := app.I().
		ID(st.LoadingIcon.ID).
		Class(append([]string{"mdi"}, st.LoadingIcon.Classes...)...)
	for k, v := range st.LoadingIcon.Styles {
		icon = icon.Style(k, v)
	}

	return app.Div().
		ID(st.Loading.ID).
		Class("loading").
		Style("display", display(st.Loading)).
		Body(
			icon,
			app.Span().ID(st.LoadingText.ID).Text(st.LoadingText.Text),
		)
}

func renderForecast(r loader.RegionState) app.HTMLDiv {
	div := app.Div().ID(r.ID).Style("display", display(r))
	if r.HTML == "" {
		return div
	}
	// app.Raw needs a single root element.
	return div.Body(app.Raw("<div>" + r.HTML + "</div>"))
}

func display(r loader.RegionState) string {
	if r.Hidden {
		return "none"
	}
	return "block"
}
