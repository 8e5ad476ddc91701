package http_server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dayanaadylkhanova/barnum/internal/metrics"
	"github.com/dayanaadylkhanova/barnum/internal/service"
	"github.com/dayanaadylkhanova/barnum/internal/transform"
	"github.com/dayanaadylkhanova/barnum/internal/widget"
)

const authRealm = "barnum"

type Options struct {
	Addr string
	// Username and Password gate pages, widgets and the API with basic
	// auth. An empty password disables the gate.
	Username string
	Password string
	// Offline answers every page and API request with a 503 page.
	Offline         bool
	RateLimitPerMin int
	CORSOrigins     []string
	// Now is the clock of widget defaults, time.Now when nil.
	Now func() time.Time
}

type Server struct {
	log     *zap.Logger
	addr    string
	opts    Options
	api     *chi.Mux
	deps    widget.Deps
	pages   []Page
	httpSrv *http.Server
}

func NewServer(log *zap.Logger, opts Options, cat service.Catalogue, disp Dispatcher, transforms transform.Registry) *Server {
	s := &Server{log: log, addr: opts.Addr, opts: opts, pages: Pages()}
	s.api = newAPIRouter(log, cat, disp)

	// widgets read the API in process, behind neither auth nor rate limit
	internal := chi.NewRouter()
	internal.Mount("/api", s.api)
	s.deps = widget.Deps{
		Source:     widget.HandlerSource{Handler: internal},
		Transforms: transforms,
		Now:        opts.Now,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(zapLogger(log))
	r.Use(requestMetrics)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if opts.Offline {
			r.Use(offline)
		}
		if opts.Password != "" {
			r.Use(middleware.BasicAuth(authRealm, map[string]string{opts.Username: opts.Password}))
		}
		r.Group(func(r chi.Router) {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: opts.CORSOrigins,
				AllowedMethods: []string{http.MethodGet, http.MethodOptions},
				AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
				MaxAge:         300,
			}))
			if opts.RateLimitPerMin > 0 {
				r.Use(httprate.Limit(opts.RateLimitPerMin, time.Minute,
					httprate.WithKeyFuncs(httprate.KeyByIP),
					httprate.WithLimitHandler(rateLimited),
				))
			}
			r.Mount("/api", s.api)
		})
		r.Get("/widgets/{kind}", s.handleWidget())
		for _, p := range s.pages {
			r.Get(p.Path, s.handlePage(p))
		}
	})
	r.NotFound(s.notFound)

	s.httpSrv = &http.Server{Addr: opts.Addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	return s
}

// Handler is the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.httpSrv.Handler }

// WidgetDeps are the dependencies widgets are built with.
func (s *Server) WidgetDeps() widget.Deps { return s.deps }

func (s *Server) Start() error {
	s.log.Info("http listen", zap.String("addr", s.addr))
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func zapLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info("http",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.String("request_id", requestID(r)),
				zap.Duration("latency", time.Since(start)),
			)
		})
	}
}

// requestMetrics records requests by route pattern, so that path values do
// not grow the label set.
func requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.RecordAPIRequest(r.Method, route, status, time.Since(start))
	})
}

func rateLimited(w http.ResponseWriter, _ *http.Request) {
	metrics.APIRateLimitHits.Inc()
	writeError(w, http.StatusTooManyRequests, "Too many requests")
}

func offline(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "3600")
		if strings.HasPrefix(r.URL.Path, "/api/") || !wantsHTML(r) {
			writeError(w, http.StatusServiceUnavailable, "Service unavailable")
			return
		}
		writeHTML(w, http.StatusServiceUnavailable, renderStatusPage(offlinePage))
	})
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	if wantsHTML(r) {
		writeHTML(w, http.StatusNotFound, renderStatusPage(notFoundPage))
		return
	}
	writeError(w, http.StatusNotFound, "Not found")
}

func requestID(r *http.Request) string {
	return middleware.GetReqID(r.Context())
}
