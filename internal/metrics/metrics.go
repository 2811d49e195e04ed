package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// API 请求计数器
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qms_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	// API 请求响应时间
	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "qms_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// 记录创建数
	recordsCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qms_records_created_total",
			Help: "Total number of records created",
		},
		[]string{"module"},
	)

	// 状态流转数
	transitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qms_transitions_total",
			Help: "Total number of status transitions",
		},
		[]string{"module", "action", "outcome"}, // outcome: success, unauthorized, invalid, error
	)

	// 电子签名结果数
	signaturesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qms_signatures_total",
			Help: "Total number of signature gate outcomes",
		},
		[]string{"outcome"}, // confirmed, cancelled, mismatch
	)

	// 审计台账条目数
	auditEntriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "qms_audit_entries_total",
			Help: "Total number of audit trail entries written",
		},
	)

	// 通知数
	notificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qms_notifications_total",
			Help: "Total number of notifications recorded",
		},
		[]string{"type"}, // Email, System
	)

	registry     *prometheus.Registry
	registryOnce sync.Once
)

// Registry 返回全局指标注册表
func Registry() *prometheus.Registry {
	registryOnce.Do(func() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			apiRequestsTotal,
			apiRequestDuration,
			recordsCreatedTotal,
			transitionsTotal,
			signaturesTotal,
			auditEntriesTotal,
			notificationsTotal,
		)
	})
	return registry
}

// Handler Prometheus 指标 HTTP 处理器
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry(), promhttp.HandlerOpts{})
}

// RecordAPIRequest 记录一次 API 请求
func RecordAPIRequest(method string, path string, status int, durationSeconds float64) {
	apiRequestsTotal.WithLabelValues(method, path, httpStatusLabel(status)).Inc()
	apiRequestDuration.WithLabelValues(method, path).Observe(durationSeconds)
}

// RecordCreated 记录一次记录创建
func RecordCreated(module string) {
	recordsCreatedTotal.WithLabelValues(module).Inc()
}

// RecordTransition 记录一次状态流转尝试
func RecordTransition(module string, action string, outcome string) {
	transitionsTotal.WithLabelValues(module, action, outcome).Inc()
}

// RecordSignature 记录一次签名门结果
func RecordSignature(outcome string) {
	signaturesTotal.WithLabelValues(outcome).Inc()
}

// RecordAuditEntry 记录一次台账写入
func RecordAuditEntry() {
	auditEntriesTotal.Inc()
}

// RecordNotification 记录一次通知
func RecordNotification(kind string) {
	notificationsTotal.WithLabelValues(kind).Inc()
}

func httpStatusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
