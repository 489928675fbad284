package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"github.com/tuanvumaihuynh/product-api/internal/apperr"
	"github.com/tuanvumaihuynh/product-api/internal/config"
	"github.com/tuanvumaihuynh/product-api/internal/http/apierr"
	"github.com/tuanvumaihuynh/product-api/internal/http/metric"
	"github.com/tuanvumaihuynh/product-api/internal/http/middleware"
	"github.com/tuanvumaihuynh/product-api/internal/http/swagger"
	"github.com/tuanvumaihuynh/product-api/internal/service"
	"github.com/tuanvumaihuynh/product-api/internal/storage/db"
	"github.com/tuanvumaihuynh/product-api/pkg/validator"
)

const healthPath = "/healthz"

var tracer = otel.Tracer("internal/http")

// Service represents the HTTP service.
type Service struct {
	cfg       config.HTTP
	logger    *slog.Logger
	metrics   *metric.Metrics
	validator validator.Validator

	// doc is nil when the docs routes are disabled.
	doc           *openapi3.T
	healthChecker db.HealthChecker

	productSvc service.ProductService
}

type CleanupFunc func(ctx context.Context) error

// handlerFunc is an HTTP handler whose error is rendered by the service.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// New creates the HTTP service. healthChecker may be nil when the store has
// nothing to probe.
func New(
	cfg config.HTTP,
	log *slog.Logger,
	doc *openapi3.T,
	healthChecker db.HealthChecker,
	productSvc service.ProductService,
) (*Service, error) {
	v, err := validator.NewDefaultValidator()
	if err != nil {
		return nil, fmt.Errorf("create validator: %w", err)
	}

	if !cfg.Swagger {
		doc = nil
	}

	return &Service{
		cfg:           cfg,
		logger:        log.With(slog.String("service", "http")),
		metrics:       metric.New(),
		validator:     v,
		doc:           doc,
		healthChecker: healthChecker,
		productSvc:    productSvc,
	}, nil
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	handler, err := s.Handler()
	if err != nil {
		return nil, err
	}

	return s.RunWithServer(ctx, handler)
}

// Handler builds the router with every middleware and route registered.
func (s *Service) Handler() (http.Handler, error) {
	r := chi.NewRouter()
	s.RegisterMiddlewares(r)

	if s.doc != nil {
		if err := swagger.Register(r, s.doc); err != nil {
			return nil, fmt.Errorf("register swagger: %w", err)
		}
	}

	s.RegisterHandlers(r)

	return r, nil
}

func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return nil, fmt.Errorf("listen on port %d: %w", s.cfg.Port, err)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	s.logger.InfoContext(ctx, "http server listening",
		slog.String("addr", lis.Addr().String()),
		slog.String("base_path", s.cfg.BasePath))

	go func() {
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.ErrorContext(ctx, "http server stopped", slog.Any("error", err))
		}
	}()

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	r.Use(
		middleware.Recoverer(s.logger),
		middleware.Trace(tracer),
		middleware.Metrics(s.metrics),
		middleware.CorrelationID(),
		middleware.Logging(s.logger),
		middleware.Cors(s.cfg.CorsAllowedOrigin),
	)
}

func (s *Service) RegisterHandlers(r chi.Router) {
	h := newProductHandler(s.logger, s.validator, s.productSvc)

	r.Route(s.cfg.BasePath, func(r chi.Router) {
		r.Get("/", s.handle(h.ListProducts))
		r.Post("/", s.handle(h.CreateProduct))
		r.Get("/{id}", s.handle(h.GetProduct))
		r.Put("/{id}", s.handle(h.UpdateProduct))
		r.Patch("/{id}", s.handle(h.ToggleAvailability))
		r.Delete("/{id}", s.handle(h.DeleteProduct))
	})

	r.Get(healthPath, s.handle(s.health))

	r.Handle(middleware.MetricsPath, promhttp.HandlerFor(s.metrics.Gatherer(), promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	}))

	r.NotFound(s.handle(func(http.ResponseWriter, *http.Request) error {
		return apperr.RouteNotFoundErr
	}))
	r.MethodNotAllowed(s.handle(func(http.ResponseWriter, *http.Request) error {
		return apperr.MethodNotAllowedErr
	}))
}

func (s *Service) health(w http.ResponseWriter, r *http.Request) error {
	if s.healthChecker != nil {
		if healthy, err := s.healthChecker.IsHealthy(r.Context()); !healthy || err != nil {
			return apperr.StorageUnavailableErr.WrapParent(err)
		}
	}

	writeJSON(s.logger, w, r, http.StatusOK, "ok")
	return nil
}

func (s *Service) handle(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			s.handleResponseError(w, r, err)
		}
	}
}

func (s *Service) handleResponseError(w http.ResponseWriter, r *http.Request, err error) {
	res := apierr.New(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)

	logLevel := slog.LevelInfo
	if res.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if res.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}
	s.logger.Log(r.Context(), logLevel, "http response error", slog.Any("error", err))

	if err := json.NewEncoder(w).Encode(res); err != nil {
		s.logger.ErrorContext(r.Context(), "error encoding error response",
			slog.Any("error", err))
	}
}
