package middleware

import (
	"log"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// PerformanceConfig 性能监控配置
type PerformanceConfig struct {
	SlowThreshold time.Duration // 慢请求阈值
	EnableLogging bool          // 是否记录日志
	SkipPaths     []string      // 跳过监控的路径
}

// DefaultPerformanceConfig 默认性能配置
func DefaultPerformanceConfig() PerformanceConfig {
	return PerformanceConfig{
		// 全量分析在大数据集上本身就要几百毫秒，阈值放宽
		SlowThreshold: time.Second,
		EnableLogging: true,
		SkipPaths:     []string{"/health", "/metrics", "/favicon.ico"},
	}
}

// Performance 性能监控中间件
func Performance(config ...PerformanceConfig) gin.HandlerFunc {
	cfg := DefaultPerformanceConfig()
	if len(config) > 0 {
		cfg = config[0]
	}

	return func(c *gin.Context) {
		for _, path := range cfg.SkipPaths {
			if c.Request.URL.Path == path {
				c.Next()
				return
			}
		}

		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		// 记录慢请求日志
		if cfg.EnableLogging && latency > cfg.SlowThreshold {
			log.Printf("[SLOW REQUEST] %s %s - Status: %d, Latency: %v",
				method, path, status, latency)
		}

		// 在响应头中添加性能信息（开发环境）
		if gin.Mode() == gin.DebugMode {
			c.Header("X-Response-Time", latency.String())
		}
	}
}

// RateLimit 线程安全的内存限流中间件
func RateLimit(rpm int) gin.HandlerFunc {
	var requests sync.Map

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		var timestamps []time.Time
		if value, exists := requests.Load(ip); exists {
			timestamps = value.([]time.Time)
		}

		// 清理过期的请求记录
		var validTimestamps []time.Time
		cutoff := now.Add(-time.Minute)
		for _, timestamp := range timestamps {
			if timestamp.After(cutoff) {
				validTimestamps = append(validTimestamps, timestamp)
			}
		}

		if len(validTimestamps) >= rpm {
			c.AbortWithStatusJSON(429, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": 60,
			})
			return
		}

		validTimestamps = append(validTimestamps, now)
		requests.Store(ip, validTimestamps)

		c.Next()
	}
}
