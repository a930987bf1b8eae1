package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService Prometheus 指标：HTTP 请求、导出耗时与当前数据量
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	exportDuration  *prometheus.HistogramVec
	exportTotal     *prometheus.CounterVec
	backupTotal     *prometheus.CounterVec
}

// NewMetricsService 注册指标；store 非空时额外暴露课程数与备注数
func NewMetricsService(store *PlannerStore) *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "planner_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	exportDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "planner_export_duration_seconds",
		Help:    "Duration of export jobs in seconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
	}, []string{"format"})

	exportTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_exports_total",
		Help: "Total number of export jobs by result",
	}, []string{"format", "result"})

	backupTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_backups_total",
		Help: "Total number of scheduled backups by result",
	}, []string{"result"})

	registry.MustRegister(
		requestDuration,
		requestTotal,
		exportDuration,
		exportTotal,
		backupTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if store != nil {
		registry.MustRegister(
			prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Name: "planner_courses",
				Help: "Number of stored courses",
			}, func() float64 { return float64(len(store.Courses())) }),
			prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Name: "planner_notes",
				Help: "Number of days with a note",
			}, func() float64 { return float64(len(store.Snapshot().Notes)) }),
		)
	}

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		exportDuration:  exportDuration,
		exportTotal:     exportTotal,
		backupTotal:     backupTotal,
	}
}

// Handler /metrics 处理器
func (m *MetricsService) Handler() http.Handler {
	return m.handler
}

// Registry 底层注册表
func (m *MetricsService) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest 记录一次 HTTP 请求
func (m *MetricsService) ObserveRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labels := []string{method, path, strconv.Itoa(status)}
	m.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(labels...).Inc()
}

// ObserveExport 记录一次导出
func (m *MetricsService) ObserveExport(format string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.exportDuration.WithLabelValues(format).Observe(duration.Seconds())
	m.exportTotal.WithLabelValues(format, result).Inc()
}

// ObserveBackup 记录一次定时备份
func (m *MetricsService) ObserveBackup(err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.backupTotal.WithLabelValues(result).Inc()
}
