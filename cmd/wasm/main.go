//go:build js && wasm

// Command wasm is the browser build of the form handler:
//
//	GOOS=js GOARCH=wasm go build -o urlcheck.wasm ./cmd/wasm
package main

import (
	"net/url"
	"syscall/js"

	"urlcheck/backend"
	"urlcheck/dom"
	"urlcheck/form"
	"urlcheck/logging"
)

func main() {
	log := logging.GetLogger()

	page, err := dom.Bind(js.Global().Get("document"), dom.DefaultIDs)
	if err != nil {
		log.Errorf("Binding page: %v", err)
		return
	}

	endpoint := page.Attr("data-endpoint")
	if endpoint == "" {
		endpoint = "/predict"
	}
	// net/http needs an absolute URL, the page may give a path.
	if base, err := url.Parse(js.Global().Get("location").Get("href").String()); err == nil {
		if ref, err := url.Parse(endpoint); err == nil {
			endpoint = base.ResolveReference(ref).String()
		}
	}

	h, err := form.NewHandler(backend.NewClient(endpoint), page)
	if err != nil {
		log.Errorf("Creating handler: %v", err)
		return
	}
	page.Listen(h)
	log.Infof("Form handler ready, posting to %s", endpoint)

	select {}
}
