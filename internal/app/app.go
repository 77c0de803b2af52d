package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/health"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
	httpsvc "github.com/vladislavdragonenkov/storefront/internal/service/http"
	"github.com/vladislavdragonenkov/storefront/internal/version"
)

const httpShutdownTimeout = 5 * time.Second

// Run поднимает хранилище, HTTP-сервер витрины, сервер метрик и outbox worker
// и работает до отмены ctx.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	deps, err := initRuntimeDependencies(ctx, cfg, logger.WithField("layer", "storage"))
	if err != nil {
		return err
	}
	defer deps.close(logger)

	producer := initKafkaProducer(cfg.KafkaBrokers, logger.WithField("layer", "kafka"))
	defer closeKafkaProducer(producer, logger)

	worker := newOutboxWorker(cfg, deps.outboxRepo, producer, logger)

	shopMetrics := metrics.NewShopMetrics()
	services := newServices(deps, deps.recordsEvents(worker != nil), shopMetrics, logger)

	if err := seedCatalog(ctx, cfg.SeedFile, services.Catalog, logger); err != nil {
		return err
	}

	templates, err := httpsvc.LoadTemplates(cfg.TemplatesDir)
	if err != nil {
		return err
	}

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	httpLogger := logger.WithField("layer", "http")
	router := httpsvc.NewRouter(services.handler(httpLogger), httpsvc.RouterOptions{
		Templates: templates,
		Metrics:   shopMetrics,
		Logger:    httpLogger,
	})

	healthHandler := health.NewHandler(version.GetVersion(), string(cfg.StorageDriver))
	healthHandler.RegisterChecker("storage", health.NewPingChecker("storage", deps.pinger))
	if worker != nil {
		healthHandler.RegisterChecker("outbox", health.NewOutboxBacklogChecker(deps.outboxRepo, cfg.OutboxMaxPendingAge))
	}

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)
	defer shutdownHTTP(metricsSrv, logger)

	stopWorker, workerDone := startOutboxWorker(ctx, worker)
	defer shutdownOutboxWorker(stopWorker, workerDone, logger)

	lis, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("storefront слушает %s", lis.Addr())
		errCh <- srv.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP сервер")
		shutdownHTTP(srv, logger)
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// startMetricsServer запускает служебный HTTP-сервер: метрики и health checks.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *health.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", health.LivenessHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
