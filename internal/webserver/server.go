// Package webserver wires the theme and settings APIs into an HTTP server
package webserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jonboulle/clockwork"
	"github.com/rs/cors"

	"github.com/shaharia-lab/themify/internal/logger"
	"github.com/shaharia-lab/themify/internal/permission"
	"github.com/shaharia-lab/themify/internal/settings"
	"github.com/shaharia-lab/themify/internal/themes"
)

// Options carries everything the server needs to build its routes
type Options struct {
	Address            string
	ThemeHandler       *themes.Handler
	SettingsHandler    *settings.Handler
	StaticDirectory    string
	Evaluator          permission.Evaluator
	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration
	Clock              clockwork.Clock
	Logger             logger.Logger
}

// WebServer represents the themify HTTP server
type WebServer struct {
	opts    Options
	server  *http.Server
	router  *chi.Mux
	handler http.Handler
}

// NewWebServer creates a new WebServer and registers all routes
func NewWebServer(opts Options) *WebServer {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard
	}
	if opts.Evaluator == nil {
		opts.Evaluator = permission.StaticEvaluator{}
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewRequestLogger(opts.Logger, opts.Clock))

	ws := &WebServer{
		opts:   opts,
		router: r,
	}
	ws.setupRoutes()

	ws.handler = r
	if len(opts.CORSAllowedOrigins) > 0 {
		ws.handler = cors.New(cors.Options{
			AllowedOrigins: opts.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowedHeaders: []string{"Content-Type", "X-Api-Key", "Authorization"},
		}).Handler(r)
	}

	return ws
}

// Router returns the chi router to allow adding routes from outside
func (ws *WebServer) Router() *chi.Mux {
	return ws.router
}

// Handler returns the fully wrapped handler served by Start
func (ws *WebServer) Handler() http.Handler {
	return ws.handler
}

func (ws *WebServer) setupRoutes() {
	ws.router.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	})

	ws.router.Route("/api", func(r chi.Router) {
		r.Use(permission.Middleware(ws.opts.Evaluator))

		if th := ws.opts.ThemeHandler; th != nil {
			r.Route("/themes", func(r chi.Router) {
				r.With(permission.Require(permission.SettingsRead)).Get("/", th.ListThemesHTTPHandler())
				r.With(permission.Require(permission.SettingsRead)).Get("/{name}", th.GetThemeHTTPHandler())
				r.With(permission.Require(permission.Settings)).Post("/{name}", th.SaveThemeHTTPHandler())
				r.With(permission.Require(permission.Settings)).Delete("/{name}", th.DeleteThemeHTTPHandler())
			})
		}

		if sh := ws.opts.SettingsHandler; sh != nil {
			r.With(permission.Require(permission.SettingsRead)).Get("/settings", sh.GetSettingsHTTPHandler())
			r.With(permission.Require(permission.Settings)).Put("/settings", sh.UpdateSettingsHTTPHandler())
		}
	})

	if ws.opts.StaticDirectory != "" {
		ws.router.Handle("/static/themes/*", StaticThemes("/static/themes/", ws.opts.StaticDirectory))
	}
}

// Start listens on the configured address and serves in the background.
// Listen errors are returned synchronously.
func (ws *WebServer) Start() error {
	ln, err := net.Listen("tcp", ws.opts.Address)
	if err != nil {
		return err
	}

	ws.server = &http.Server{
		Handler:           ws.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := ws.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			ws.opts.Logger.Error("web server stopped unexpectedly", map[string]interface{}{
				logger.ErrorKey: err,
			})
		}
	}()

	ws.opts.Logger.Info("web server listening", map[string]interface{}{"address": ln.Addr().String()})
	return nil
}

// Stop gracefully shuts down the server with a timeout
func (ws *WebServer) Stop() error {
	if ws.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), ws.opts.ShutdownTimeout)
	defer cancel()

	return ws.server.Shutdown(ctx)
}
