package httpserver

import (
	"net/http"
	"time"

	"gatewayinfo/internal/catalog"
	"gatewayinfo/internal/config"
	"gatewayinfo/internal/report"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type RouterDeps struct {
	Config   config.Config
	Logger   *zap.Logger
	Resolver report.Resolver
	Catalog  catalog.Catalog
}

type Server struct {
	cfg       config.Config
	log       *zap.Logger
	collector *report.Collector
}

// NewServer wires the collector for HTML output. Routing lives in NewRouter.
func NewServer(deps RouterDeps) *Server {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		cfg: deps.Config,
		log: log,
		collector: report.NewCollector(report.Options{
			Title:    deps.Config.ReportTitle,
			Catalog:  deps.Catalog,
			Resolver: deps.Resolver,
			Escape:   report.HTMLEscaper,
			Logger:   log,
		}),
	}
}

func NewRouter(deps RouterDeps) (http.Handler, error) {
	s := NewServer(deps)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	if s.cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.cfg.RequestTimeout))
	}

	if len(s.cfg.AllowedSubnets) > 0 {
		allow, err := newCIDRAllowlist(s.cfg.AllowedSubnets)
		if err != nil {
			return nil, err
		}
		r.Use(allow.middleware)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})

	// Every method and every path below the mount gets the same report.
	mount := s.mountPath()
	if mount == "" {
		r.HandleFunc("/*", s.handleReport)
	} else {
		r.HandleFunc(mount, s.handleReport)
		r.HandleFunc(mount+"/*", s.handleReport)
	}

	return r, nil
}

// mountPath is the SCRIPT_NAME of the report: "" when mounted at the root.
func (s *Server) mountPath() string {
	if s.cfg.MountPath == "/" {
		return ""
	}
	return s.cfg.MountPath
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
