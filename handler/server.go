package handler

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFiles embed.FS

var indexTemplate = template.Must(template.ParseFS(staticFiles, "static/index.html"))

// PageOptions configures the page server.
type PageOptions struct {
	// Endpoint is where the page posts predictions; the proxy route by default.
	Endpoint string
	// WasmDir holds wasm_exec.js and urlcheck.wasm. Empty disables the script.
	WasmDir string
}

type indexData struct {
	Endpoint string
	Wasm     bool
}

// NewServer builds the page server's routes around the prediction proxy.
func NewServer(proxy http.Handler, opts PageOptions) http.Handler {
	if opts.Endpoint == "" {
		opts.Endpoint = "/predict"
	}

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}

	mux := http.NewServeMux()
	mux.Handle("/predict", proxy)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	if opts.WasmDir != "" {
		mux.Handle("/wasm/", http.StripPrefix("/wasm/", http.FileServer(http.Dir(opts.WasmDir))))
	}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			logAndReturnError(w, r, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		data := indexData{Endpoint: opts.Endpoint, Wasm: opts.WasmDir != ""}
		if err := indexTemplate.Execute(w, data); err != nil {
			log.Errorf("Rendering index: %v", err)
			return
		}
		logRequest(r, http.StatusOK)
	})
	return mux
}
