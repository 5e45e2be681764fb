package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry 服务指标集合，所有方法对 nil 接收者安全
type Registry struct {
	registry *prometheus.Registry

	requests             *prometheus.CounterVec
	latencyMS            *prometheus.HistogramVec
	ordersCreated        prometheus.Counter
	checkoutFailures     *prometheus.CounterVec
	notificationFailures *prometheus.CounterVec
	orderStatusUpdates   *prometheus.CounterVec
}

// New 创建独立的指标注册表
func New(namespace string) *Registry {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		namespace = "storefront"
	}
	r := &Registry{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		latencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"method", "route"}),
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Orders committed by checkout.",
		}),
		checkoutFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_failures_total",
			Help:      "Checkouts rejected or rolled back, by reason.",
		}, []string{"reason"}),
		notificationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_notification_failures_total",
			Help:      "Order confirmation notifications that could not be delivered or queued.",
		}, []string{"channel"}),
		orderStatusUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_status_updates_total",
			Help:      "Admin order status transitions, by target status.",
		}, []string{"status"}),
	}
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.requests,
		r.latencyMS,
		r.ordersCreated,
		r.checkoutFailures,
		r.notificationFailures,
		r.orderStatusUpdates,
	)
	return r
}

// Handler 暴露 /metrics
func (r *Registry) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Gatherer 返回底层采集器
func (r *Registry) Gatherer() prometheus.Gatherer {
	if r == nil {
		return prometheus.NewRegistry()
	}
	return r.registry
}

// ObserveRequest 记录一次 HTTP 请求
func (r *Registry) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	r.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.latencyMS.WithLabelValues(method, route).Observe(float64(elapsed.Microseconds()) / 1000)
}

// IncOrderCreated 下单成功
func (r *Registry) IncOrderCreated() {
	if r == nil {
		return
	}
	r.ordersCreated.Inc()
}

// IncCheckoutFailure 下单失败
func (r *Registry) IncCheckoutFailure(reason string) {
	if r == nil {
		return
	}
	r.checkoutFailures.WithLabelValues(reason).Inc()
}

// IncNotificationFailure 确认通知失败
func (r *Registry) IncNotificationFailure(channel string) {
	if r == nil {
		return
	}
	r.notificationFailures.WithLabelValues(channel).Inc()
}

// IncOrderStatusUpdate 后台状态变更
func (r *Registry) IncOrderStatusUpdate(status string) {
	if r == nil {
		return
	}
	r.orderStatusUpdates.WithLabelValues(status).Inc()
}
