package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus 指标定义
var (
	// HTTP 请求相关指标
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时分布",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// 数据集相关指标
	datasetLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_loads_total",
			Help: "数据集加载总数",
		},
		[]string{"source", "status"},
	)

	datasetRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_rows_current",
			Help: "当前数据集行数",
		},
	)

	// 分析相关指标
	analysisRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_runs_total",
			Help: "分析执行总数",
		},
		[]string{"kind", "status"},
	)

	analysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analysis_duration_seconds",
			Help:    "分析耗时分布",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0},
		},
		[]string{"kind"},
	)

	exportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_exports_total",
			Help: "报告导出总数",
		},
		[]string{"kind", "format"},
	)
)

// PrometheusMiddleware Gin中间件，用于收集HTTP指标
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// 处理请求
		c.Next()

		// 记录指标
		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			statusCode,
		).Inc()

		httpRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

// 业务指标记录函数
func RecordDatasetLoad(source, status string) {
	datasetLoadsTotal.WithLabelValues(source, status).Inc()
}

func UpdateDatasetRows(rows int) {
	datasetRows.Set(float64(rows))
}

func RecordAnalysisRun(kind, status string, duration time.Duration) {
	analysisRunsTotal.WithLabelValues(kind, status).Inc()
	analysisDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

func RecordExport(kind, format string) {
	exportsTotal.WithLabelValues(kind, format).Inc()
}
