// Command soaring-forecast-web is the browser side of the forecast page.
// Build it with GOOS=js GOARCH=wasm into web/app.wasm.
package main

import (
	"github.com/maxence-charriere/go-app/v9/pkg/app"

	"github.com/i474232898/soaring-forecast/internal/ui"
)

func main() {
	app.Route("/", &ui.Page{})
	app.RunWhenOnBrowser()
}
