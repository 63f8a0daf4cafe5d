package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorageMetrics содержит метрики операций хранилища.
type StorageMetrics struct {
	// Счётчики вызовов по операции и исходу (ok / not_found / error).
	operations *prometheus.CounterVec
	// Гистограмма времени выполнения по операции.
	opDuration *prometheus.HistogramVec
}

// NewStorageMetrics создаёт метрики хранилища в default-регистраторе.
func NewStorageMetrics() *StorageMetrics {
	return NewStorageMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewStorageMetricsWithRegisterer создаёт метрики в указанном регистраторе;
// повторная регистрация переиспользует уже существующие коллекторы.
func NewStorageMetricsWithRegisterer(registerer prometheus.Registerer) *StorageMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &StorageMetrics{
		operations: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "webshop_storage_operations_total",
			Help: "Total number of storage contract operations by outcome",
		}, []string{"operation", "outcome"}),
		opDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "webshop_storage_operation_duration_seconds",
			Help:    "Duration of storage contract operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"operation"}),
	}
}

// RecordOperation фиксирует исход и длительность одной операции контракта.
func (m *StorageMetrics) RecordOperation(operation, outcome string, duration time.Duration) {
	m.operations.WithLabelValues(operation, outcome).Inc()
	m.opDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}
