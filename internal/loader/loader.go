package loader

import (
	"context"
	"log"
	"sync/atomic"
)

const (
	// ErrorMessage is shown in the loading-text region when the forecast
	// cannot be loaded.
	ErrorMessage = "Oops, something is wrong!"

	// WarningColor is applied to the loading icon on failure.
	WarningColor = "#ff7980"
)

// UIState is implemented by the rendering layer that owns the page regions.
type UIState interface {
	ShowForecast(content string)
	ShowError(message string)
}

// Fetcher issues the forecast request and blocks until it settles.
type Fetcher interface {
	Fetch(ctx context.Context) Outcome
}

// Dispatcher runs fn on the goroutine that owns the UI.
type Dispatcher func(fn func())

// Loader loads the forecast once per page and drives the UI from the outcome.
type Loader struct {
	fetcher  Fetcher
	ui       UIState
	dispatch Dispatcher

	started atomic.Bool
	done    chan struct{}
}

// New creates a Loader. A nil dispatcher runs the completion handler on the
// fetching goroutine.
func New(fetcher Fetcher, ui UIState, dispatch Dispatcher) *Loader {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &Loader{
		fetcher:  fetcher,
		ui:       ui,
		dispatch: dispatch,
		done:     make(chan struct{}),
	}
}

// OnReady issues the forecast request and returns immediately. It must be
// called once the page regions exist. Only the first call has any effect;
// it reports whether this call started the request.
//
// ctx bounds the lifetime of the page, not the request: the loader sets no
// timeout of its own. If ctx ends before the request settles the completion
// handler is skipped, since there is no page left to update.
func (l *Loader) OnReady(ctx context.Context) bool {
	if !l.started.CompareAndSwap(false, true) {
		return false
	}

	go func() {
		outcome := l.fetcher.Fetch(ctx)
		if ctx.Err() != nil {
			log.Printf("loader: page gone before forecast settled: %v", ctx.Err())
			close(l.done)
			return
		}

		l.dispatch(func() {
			defer close(l.done)
			Apply(outcome, l.ui)
		})
	}()

	return true
}

// Done is closed after the completion handler has run.
func (l *Loader) Done() <-chan struct{} {
	return l.done
}

// Apply drives ui from a settled outcome.
func Apply(outcome Outcome, ui UIState) {
	outcome.Match(
		func(content []byte) {
			ui.ShowForecast(string(content))
		},
		func(err error) {
			log.Printf("loader: %v", err)
			ui.ShowError(ErrorMessage)
		},
	)
}
