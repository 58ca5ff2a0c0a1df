// Package metrics 封装了基于 Prometheus 的独立指标注册表，以及计数服务与 HTTP 层的标准指标。
package metrics

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 封装了基于 Prometheus 的指标采集注册表及预定义的监控指标。
type Metrics struct {
	registry *prometheus.Registry // 内部独立的 Prometheus 注册中心

	HTTPRequestsTotal    *prometheus.CounterVec   // HTTP 请求总量 (维度: method, path, status)
	HTTPRequestDuration  *prometheus.HistogramVec // HTTP 请求耗时分布
	HTTPInFlight         *prometheus.GaugeVec     // 正在处理的 HTTP 请求数
	HTTPRequestSizeBytes *prometheus.HistogramVec // HTTP 请求体大小，RegisterRequestSizeMetrics 后可用

	CountsTotal    *prometheus.CounterVec   // 计数调用总量 (维度: strategy, result)
	SequenceLength prometheus.Histogram     // 输入序列长度分布
	CountDuration  *prometheus.HistogramVec // 单次计数耗时 (维度: strategy)
	CacheLookups   *prometheus.CounterVec   // 结果缓存查询 (维度: result=hit|miss)
	BuildInfo      *prometheus.GaugeVec     // 构建信息
}

// NewMetrics 初始化并返回一个新的指标采集器。
// 它会自动注册 Go 运行时指标和进程指标。
func NewMetrics(serviceName string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{registry: reg}

	m.HTTPRequestsTotal = m.NewCounterVec(prometheus.CounterOpts{
		Name: "http_server_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	m.HTTPRequestDuration = m.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_server_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	m.HTTPInFlight = m.NewGaugeVec(prometheus.GaugeOpts{
		Name: "http_server_requests_in_flight",
		Help: "Number of HTTP requests currently being served",
	}, []string{"method", "path"})

	m.CountsTotal = m.NewCounterVec(prometheus.CounterOpts{
		Name: "inversion_counts_total",
		Help: "Total number of inversion count calls by strategy and result",
	}, []string{"strategy", "result"})

	m.SequenceLength = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "inversion_sequence_length",
		Help:    "Length of sequences submitted for counting",
		Buckets: prometheus.ExponentialBuckets(1, 10, 8),
	})
	reg.MustRegister(m.SequenceLength)

	m.CountDuration = m.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inversion_count_duration_seconds",
		Help:    "Time spent counting inversions of a single sequence",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
	}, []string{"strategy"})

	m.CacheLookups = m.NewCounterVec(prometheus.CounterOpts{
		Name: "inversion_cache_lookups_total",
		Help: "Result cache lookups by outcome",
	}, []string{"result"})

	slog.Info("unified metrics registry initialized", "service", serviceName)
	return m
}

// NewCounterVec 创建并注册一个新的计数器指标。
func (m *Metrics) NewCounterVec(opts prometheus.CounterOpts, labelNames []string) *prometheus.CounterVec {
	cv := prometheus.NewCounterVec(opts, labelNames)
	m.registry.MustRegister(cv)
	return cv
}

// NewGaugeVec 创建并注册一个新的仪表盘指标。
func (m *Metrics) NewGaugeVec(opts prometheus.GaugeOpts, labelNames []string) *prometheus.GaugeVec {
	gv := prometheus.NewGaugeVec(opts, labelNames)
	m.registry.MustRegister(gv)
	return gv
}

// NewHistogramVec 创建并注册一个新的直方图指标。
func (m *Metrics) NewHistogramVec(opts prometheus.HistogramOpts, labelNames []string) *prometheus.HistogramVec {
	hv := prometheus.NewHistogramVec(opts, labelNames)
	m.registry.MustRegister(hv)
	return hv
}

// Registry 返回底层注册表，便于测试读取指标。
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler 返回用于暴露指标的 HTTP 处理器。
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
