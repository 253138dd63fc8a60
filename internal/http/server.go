package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"finboard/internal/core"
	"finboard/internal/events"
	"finboard/internal/log"
	"finboard/internal/middleware/ratelimit"
	"finboard/internal/middleware/security"
	"finboard/internal/middleware/trace"
	"finboard/internal/session"
	appweb "finboard/web"
)

// Options configures a Server.
type Options struct {
	Addr               string
	Registry           *session.Registry
	Publisher          events.Publisher
	CurrencyLabel      string
	CORSAllowedOrigins []string
	RateLimitPerMinute int
	Logger             *slog.Logger

	// Templates overrides the embedded templates; used by tests.
	Templates fs.FS
}

type Server struct {
	http.Server
	templates   *template.Template
	registry    *session.Registry
	publisher   events.Publisher
	currency    string
	logger      *slog.Logger
	rateLimiter *ratelimit.Limiter
	trace       *trace.Middleware
	started     time.Time
	today       func() core.Date
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
// A template parse failure is logged; the page routes then answer 500 and
// /readyz reports not ready.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	publisher := opts.Publisher
	if publisher == nil {
		publisher = events.Nop{}
	}

	s := &Server{
		registry:  opts.Registry,
		publisher: publisher,
		currency:  opts.CurrencyLabel,
		logger:    logger,
		rateLimiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: opts.RateLimitPerMinute,
			CleanupInterval:   5 * time.Minute,
		}),
		trace:   trace.NewMiddleware(logger),
		started: time.Now(),
		today:   func() core.Date { return core.DateOf(time.Now()) },
	}

	templatesFS := opts.Templates
	if templatesFS == nil {
		templatesFS = appweb.TemplatesFS
	}
	t, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		logger.Warn("Failed parsing templates", log.FieldError, err)
	} else {
		s.templates = t
	}

	s.Addr = opts.Addr
	s.Handler = s.routes(opts.CORSAllowedOrigins)
	s.ReadHeaderTimeout = 10 * time.Second
	s.ReadTimeout = 15 * time.Second
	s.WriteTimeout = 15 * time.Second
	s.IdleTimeout = 60 * time.Second
	return s
}

func (s *Server) routes(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(s.trace.Handler)
	r.Use(middleware.Recoverer)
	r.Use(security.Headers(security.DefaultHeadersConfig()))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	staticFS, err := fs.Sub(appweb.StaticFS, "static")
	if err == nil {
		r.With(security.StaticAssets(3600)).
			Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	}

	r.Group(func(r chi.Router) {
		r.Use(s.rateLimiter.Middleware(clientIP, func(w http.ResponseWriter, r *http.Request) {
			s.logger.WarnContext(r.Context(), "Rate limit exceeded",
				log.FieldClientIP, clientIP(r), log.FieldPath, r.URL.Path, log.FieldRequestID, trace.GetRequestID(r.Context()))
			TooManyRequestsError("Rate limit exceeded. Please try again later.").Write(w)
		}))

		r.Get("/", s.handleIndex)
		r.Post("/transactions", s.handleCreateTransaction)
		r.Get("/ui/summary", s.handleSummaryPartial)

		r.Route("/api", func(r chi.Router) {
			r.Use(cors.New(cors.Options{
				AllowedOrigins:   allowedOrigins,
				AllowedMethods:   []string{"GET", "OPTIONS"},
				AllowedHeaders:   []string{"Content-Type"},
				ExposedHeaders:   []string{"Content-Type"},
				AllowCredentials: true,
				MaxAge:           300,
			}).Handler)

			r.Get("/summary", s.handleAPISummary)
			r.Get("/trend", s.handleAPITrend)
			r.Get("/breakdown", s.handleAPIBreakdown)
		})
	})

	return r
}

// clientIP returns the host part of RemoteAddr, which RealIP has already
// rewritten from proxy headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Shutdown stops background work and gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.rateLimiter.Stop()
	return s.Server.Shutdown(ctx)
}
