// Package server serves an app package and a content package over HTTP.
//
// The app package supplies the web application shell and the content
// package supplies what it displays. Both are loaded fully into memory at
// startup and served read-only, so handlers share them without locking.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/klauspost/compress/gzhttp"

	"github.com/meigma/media"
)

// Options configures Run.
type Options struct {
	// Address is the host:port to listen on.
	Address string

	// App is the path of the app package.
	App string

	// Content is the path of the content package.
	Content string

	// Logger receives access logs and lifecycle events. Nil discards.
	Logger *slog.Logger
}

// Server timeouts. Packages are served from memory, so a slow response
// means a slow client.
const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Run loads both packages and serves them on opts.Address until ctx is
// cancelled. The app package must hold an app manifest, and its handles
// type must match the content package's type.
func Run(ctx context.Context, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	app, err := media.Load(opts.App)
	if err != nil {
		return fmt.Errorf("server: load app package %s: %w", opts.App, err)
	}
	content, err := media.Load(opts.Content)
	if err != nil {
		return fmt.Errorf("server: load content package %s: %w", opts.Content, err)
	}

	manifest, ok := app.Manifest.(*media.App)
	if !ok {
		return &AppTypeError{Type: app.Manifest.Type()}
	}
	if typ := content.Manifest.Type(); typ != manifest.Handles {
		return &ContentTypeError{Content: typ, Handles: manifest.Handles}
	}

	srv := &http.Server{
		Addr:              opts.Address,
		Handler:           Handler(app, content, logger),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			slog.String("address", opts.Address),
			slog.String("app", opts.App),
			slog.String("content", opts.Content))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server: serve %s: %w", opts.Address, err)
	case <-ctx.Done():
	}

	logger.Info("server shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

// Handler builds the route tree Run serves. Responses are instrumented,
// access-logged, and gzip-compressed when the client accepts it.
func Handler(app, content *media.Package, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	m := newMetrics()

	r := chi.NewRouter()
	r.Use(m.middleware)
	r.Use(accessLog(logger))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		serveFile(w, app, "", "index.html")
	})
	r.Get("/api/manifest", func(w http.ResponseWriter, _ *http.Request) {
		serveManifest(w, content)
	})
	r.Get("/app/*", func(w http.ResponseWriter, r *http.Request) {
		serveFile(w, app, "/app/", chi.URLParam(r, "*"))
	})
	r.Get("/content/*", func(w http.ResponseWriter, r *http.Request) {
		serveFile(w, content, "/content/", chi.URLParam(r, "*"))
	})
	r.Method(http.MethodGet, "/metrics", m.handler())

	return gzhttp.GzipHandler(r)
}

// serveFile resolves name in pkg and writes the blob. Misses become 404s
// naming the request path.
func serveFile(w http.ResponseWriter, pkg *media.Package, prefix, name string) {
	contentType, data, ok := pkg.File(name)
	if !ok {
		http.Error(w, prefix+name+" not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(data)
}

func serveManifest(w http.ResponseWriter, content *media.Package) {
	data, err := json.Marshal(content.Manifest)
	if err != nil {
		http.Error(w, "manifest encoding failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}
