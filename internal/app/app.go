// Package app собирает магазин из частей: хранилище, HTTP API, служебный
// сервер с метриками и health-проверками, опциональный Kafka producer.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	healthcheck "github.com/tolyara/webshop/internal/health"
	"github.com/tolyara/webshop/internal/version"
	"github.com/tolyara/webshop/internal/web"
)

// Run запускает магазин и блокируется до отмены ctx или падения сервера.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	deps, err := NewDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deps.Close()

	healthHandler := newHealthHandler(deps)

	// nil-интерфейс, а не nil-указатель: web проверяет events == nil.
	var events web.EventPublisher
	if deps.Producer != nil {
		events = deps.Producer
	}

	apiSrv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: web.NewServer(deps.Storage, events, log.WithField("component", "web")).Router(),
	}
	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP API слушает %s", cfg.HTTPAddr)
		errCh <- apiSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP API")
		shutdownHTTP(apiSrv, logger)
		shutdownHTTP(metricsSrv, logger)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(metricsSrv, logger)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// newHealthHandler регистрирует проверки живых зависимостей: для postgres —
// ping соединения, для памяти — всегда здоров.
func newHealthHandler(deps *Dependencies) *healthcheck.Handler {
	v, _, _ := version.Info()
	handler := healthcheck.NewHandler(v)

	if deps.Store != nil {
		handler.RegisterChecker("postgres",
			healthcheck.NewPingChecker("postgres", 3*time.Second, deps.Store.Ping))
	} else {
		handler.RegisterChecker("storage",
			healthcheck.NewSimpleChecker("storage", func() error { return nil }))
	}
	return handler
}

// startMetricsServer запускает служебный HTTP-сервер: метрики Prometheus
// и health-проверки.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez, %s/readyz", addr, addr, addr)
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
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
