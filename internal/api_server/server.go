package apiserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/kubev2v/profit-planner/internal/config"
	"github.com/kubev2v/profit-planner/internal/estimation"
	handlers "github.com/kubev2v/profit-planner/internal/handlers/v1alpha1"
	"github.com/kubev2v/profit-planner/internal/service"
	"github.com/kubev2v/profit-planner/internal/store"
	"github.com/kubev2v/profit-planner/internal/util"
	"github.com/kubev2v/profit-planner/pkg/log"
	"github.com/kubev2v/profit-planner/pkg/metrics"
	"github.com/kubev2v/profit-planner/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
)

type Server struct {
	cfg         *config.Config
	store       store.Store
	predictor   estimation.Predictor
	eventWriter service.EventWriter
	listener    net.Listener
}

// New returns a new instance of a profit-planner server.
// eventWriter may be nil, in which case no events are published.
func New(
	cfg *config.Config,
	store store.Store,
	predictor estimation.Predictor,
	eventWriter service.EventWriter,
	listener net.Listener,
) *Server {
	return &Server{
		cfg:         cfg,
		store:       store,
		predictor:   predictor,
		eventWriter: eventWriter,
		listener:    listener,
	}
}

// Router builds the API handler with its middleware chain.
func (s *Server) Router() (http.Handler, error) {
	metricMiddleware, err := metrics.NewMiddleware("api_server")
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics middleware: %w", err)
	}
	for _, c := range metricMiddleware.Collectors() {
		if err := prometheus.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if !errors.As(err, &already) {
				return nil, fmt.Errorf("failed to register http metrics: %w", err)
			}
		}
	}

	router := chi.NewRouter()
	router.Use(
		metricMiddleware.Handler,
		cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.Service.CorsOrigins,
			AllowedMethods: []string{"GET", "POST", "HEAD", "OPTIONS"},
			AllowedHeaders: []string{"*"},
			MaxAge:         300,
		}),
		chiMiddleware.RequestID,
		middleware.RequestID,
		log.Logger(zap.L(), "http"),
		chiMiddleware.Recoverer,
		util.GatewayApiRewrite,
	)

	h := handlers.NewServiceHandler(
		service.NewProfitService(s.predictor).WithEventWriter(s.eventWriter),
		service.NewDashboardService(s.store).WithEventWriter(s.eventWriter),
	)
	h.Routes(router)

	return router, nil
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")

	router, err := s.Router()
	if err != nil {
		return err
	}

	srv := http.Server{Addr: s.cfg.Service.Address, Handler: router}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		zap.S().Named("api_server").Infof("Shutdown signal received: %s", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		zap.S().Named("api_server").Info("api server terminated")
	}()

	zap.S().Named("api_server").Infof("Listening on %s...", s.listener.Addr().String())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	// Serve returns as soon as Shutdown starts; wait for in-flight requests
	<-stopped
	return nil
}
