// Package spaserve serves a built single page application so that client-side
// routes survive a page reload: files that exist are served as they are and any
// other page request gets the app's index.html, leaving the path to the router
// running in the browser.
package spaserve

import (
	"context"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/fasthttp/router"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/savsgio/gotils"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Defaults for Config.
const (
	DefaultAddr  = "127.0.0.1:8844"
	DefaultIndex = "index.html"
)

var allowedMethods = []string{fasthttp.MethodGet, fasthttp.MethodHead}

// Config describes what to serve.
type Config struct {
	Dir    string // directory holding the built app, "." if empty
	Index  string // file served for client-side routes, DefaultIndex if empty
	Addr   string // listen address, DefaultAddr if empty
	Logger *slog.Logger

	// Registry receives the request metrics and backs /metrics.
	// A new registry is created if nil.
	Registry *prometheus.Registry
}

// Server is an SPA file server.
type Server struct {
	cfg      Config
	router   *router.Router
	requests *prometheus.CounterVec
	srv      *fasthttp.Server
}

// New returns a Server for cfg.
func New(cfg Config) *Server {

	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	if cfg.Index == "" {
		cfg.Index = DefaultIndex
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}
	if abs, err := filepath.Abs(cfg.Dir); err == nil {
		cfg.Dir = abs
	}

	s := &Server{cfg: cfg}

	s.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pagerouter",
		Subsystem: "spaserve",
		Name:      "requests_total",
		Help:      "Requests served, by kind (file, fallback, missing, method).",
	}, []string{"kind"})
	cfg.Registry.MustRegister(s.requests)

	r := router.New()
	r.GET("/metrics", fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})))
	r.NotFound = s.serve
	r.HandleMethodNotAllowed = false
	s.router = r

	return s
}

// Handler returns the request handler, e.g. for use with a custom fasthttp.Server.
func (s *Server) Handler() fasthttp.RequestHandler {
	return s.router.Handler
}

// ListenAndServe serves on the configured address until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {

	s.srv = &fasthttp.Server{
		Handler: s.Handler(),
		Name:    "pagerouter-spaserve",
	}

	go func() {
		<-ctx.Done()
		if err := s.srv.Shutdown(); err != nil {
			s.cfg.Logger.Warn("spaserve: shutdown", "err", err)
		}
	}()

	s.cfg.Logger.Info("spaserve: listening", "addr", s.cfg.Addr, "dir", s.cfg.Dir)

	return s.srv.ListenAndServe(s.cfg.Addr)
}

func (s *Server) serve(ctx *fasthttp.RequestCtx) {

	if !gotils.StringSliceInclude(allowedMethods, gotils.B2S(ctx.Method())) {
		s.requests.WithLabelValues("method").Inc()
		ctx.Error(fasthttp.StatusMessage(fasthttp.StatusMethodNotAllowed), fasthttp.StatusMethodNotAllowed)
		return
	}

	p := path.Clean("/" + gotils.B2S(ctx.Path()))
	full := filepath.Join(s.cfg.Dir, filepath.FromSlash(p))

	if fi, err := os.Stat(full); err == nil && !fi.IsDir() {
		s.requests.WithLabelValues("file").Inc()
		fasthttp.ServeFile(ctx, full)
		return
	}

	// a missing asset is a real 404, only page paths fall back to the index
	if path.Ext(p) != "" {
		s.requests.WithLabelValues("missing").Inc()
		s.cfg.Logger.Debug("spaserve: missing file", "path", p)
		ctx.Error(fasthttp.StatusMessage(fasthttp.StatusNotFound), fasthttp.StatusNotFound)
		return
	}

	s.requests.WithLabelValues("fallback").Inc()
	fasthttp.ServeFile(ctx, filepath.Join(s.cfg.Dir, s.cfg.Index))
}
