package metrics

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Результаты бизнес-операций для label "result".
const (
	ResultOK           = "ok"
	ResultDuplicate    = "duplicate"
	ResultInvalid      = "invalid"
	ResultRejected     = "rejected"
	ResultNotFound     = "not_found"
	ResultEmptyCart    = "empty_cart"
	ResultError        = "error"
	labelResult        = "result"
	labelReport        = "report"
	labelMethod        = "method"
	labelRoute         = "route"
	labelStatus        = "status"
	defaultRouteLabel  = "unmatched"
	metricsNamespace   = "storefront"
	httpSubsystem      = "http"
	businessSubsystem  = "shop"
	reportingSubsystem = "reports"
)

// ShopMetrics содержит метрики витрины: HTTP-слой и бизнес-операции.
// Все методы безопасны для nil-получателя, чтобы сервисы работали без метрик.
type ShopMetrics struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	httpInFlight prometheus.Gauge

	registrations *prometheus.CounterVec
	logins        *prometheus.CounterVec
	cartAdditions *prometheus.CounterVec
	checkouts     *prometheus.CounterVec
	orderValue    prometheus.Histogram

	reportDuration *prometheus.HistogramVec
	reportErrors   *prometheus.CounterVec

	outboxEvents prometheus.Counter
}

// NewShopMetrics регистрирует метрики в prometheus.DefaultRegisterer.
func NewShopMetrics() *ShopMetrics {
	return NewShopMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewShopMetricsWithRegisterer регистрирует метрики в заданном реестре.
// Повторная регистрация возвращает уже существующие коллекторы.
func NewShopMetricsWithRegisterer(registerer prometheus.Registerer) *ShopMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &ShopMetrics{
		httpRequests: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: httpSubsystem,
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, route and status.",
		}, []string{labelMethod, labelRoute, labelStatus})),
		httpDuration: register(registerer, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: httpSubsystem,
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{labelMethod, labelRoute})),
		httpInFlight: register(registerer, prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: httpSubsystem,
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served.",
		})),
		registrations: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: businessSubsystem,
			Name:      "registrations_total",
			Help:      "Customer registrations grouped by result.",
		}, []string{labelResult})),
		logins: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: businessSubsystem,
			Name:      "logins_total",
			Help:      "Login attempts grouped by result.",
		}, []string{labelResult})),
		cartAdditions: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: businessSubsystem,
			Name:      "cart_additions_total",
			Help:      "Add-to-cart requests grouped by result.",
		}, []string{labelResult})),
		checkouts: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: businessSubsystem,
			Name:      "checkouts_total",
			Help:      "Checkout attempts grouped by result.",
		}, []string{labelResult})),
		orderValue: register(registerer, prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: businessSubsystem,
			Name:      "order_total_price",
			Help:      "Total price of placed orders in minor currency units.",
			Buckets:   prometheus.ExponentialBuckets(100, 4, 8),
		})),
		reportDuration: register(registerer, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: reportingSubsystem,
			Name:      "duration_seconds",
			Help:      "Duration of aggregation reports in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{labelReport})),
		reportErrors: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: reportingSubsystem,
			Name:      "errors_total",
			Help:      "Failed aggregation reports.",
		}, []string{labelReport})),
		outboxEvents: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: businessSubsystem,
			Name:      "outbox_events_total",
			Help:      "Domain events written to the transactional outbox.",
		})),
	}
}

// register регистрирует коллектор или возвращает уже зарегистрированный экземпляр того же типа.
func register[C prometheus.Collector](registerer prometheus.Registerer, collector C) C {
	err := registerer.Register(collector)
	if err == nil {
		return collector
	}

	var alreadyRegistered prometheus.AlreadyRegisteredError
	if errors.As(err, &alreadyRegistered) {
		existing, ok := alreadyRegistered.ExistingCollector.(C)
		if !ok {
			panic(fmt.Sprintf("collector already registered with unexpected type %T", alreadyRegistered.ExistingCollector))
		}
		return existing
	}
	panic(fmt.Sprintf("register collector: %v", err))
}

// ObserveHTTPRequest фиксирует завершённый HTTP-запрос.
func (m *ShopMetrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = defaultRouteLabel
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// HTTPRequestStarted увеличивает число обслуживаемых запросов.
func (m *ShopMetrics) HTTPRequestStarted() {
	if m == nil {
		return
	}
	m.httpInFlight.Inc()
}

// HTTPRequestFinished уменьшает число обслуживаемых запросов.
func (m *ShopMetrics) HTTPRequestFinished() {
	if m == nil {
		return
	}
	m.httpInFlight.Dec()
}

// RecordRegistration учитывает попытку регистрации.
func (m *ShopMetrics) RecordRegistration(result string) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(result).Inc()
}

// RecordLogin учитывает попытку входа.
func (m *ShopMetrics) RecordLogin(result string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(result).Inc()
}

// RecordCartAddition учитывает добавление в корзину.
func (m *ShopMetrics) RecordCartAddition(result string) {
	if m == nil {
		return
	}
	m.cartAdditions.WithLabelValues(result).Inc()
}

// RecordCheckout учитывает попытку оформления; для успешных заказов пишет сумму.
func (m *ShopMetrics) RecordCheckout(result string, totalPrice int64) {
	if m == nil {
		return
	}
	m.checkouts.WithLabelValues(result).Inc()
	if result == ResultOK {
		m.orderValue.Observe(float64(totalPrice))
	}
}

// RecordReport записывает длительность отчёта и ошибку, если она была.
func (m *ShopMetrics) RecordReport(report string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.reportDuration.WithLabelValues(report).Observe(duration.Seconds())
	if err != nil {
		m.reportErrors.WithLabelValues(report).Inc()
	}
}

// RecordOutboxEvent увеличивает счётчик событий outbox.
func (m *ShopMetrics) RecordOutboxEvent() {
	if m == nil {
		return
	}
	m.outboxEvents.Inc()
}
