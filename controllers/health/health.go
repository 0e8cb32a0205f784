package health

import (
	"runtime"
	"time"

	"project-analysis/pkg/config"
	"project-analysis/pkg/response"

	"github.com/gin-gonic/gin"
)

var startTime = time.Now()

// HealthController 健康检查控制器
type HealthController struct{}

// NewHealthController 创建健康检查控制器
func NewHealthController() *HealthController {
	return &HealthController{}
}

// CheckHealth 基础健康检查
func (h *HealthController) CheckHealth(c *gin.Context) {
	response.Success(c, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
		"service":   "project-analysis",
		"version":   "1.0.0",
	})
}

// CheckLiveness 存活性检查
func (h *HealthController) CheckLiveness(c *gin.Context) {
	response.Success(c, gin.H{
		"status":    "alive",
		"timestamp": time.Now().Unix(),
	})
}

// CheckReadiness 就绪性检查，服务不依赖外部存储，启动即就绪
func (h *HealthController) CheckReadiness(c *gin.Context) {
	response.Success(c, gin.H{
		"status":    "ready",
		"timestamp": time.Now().Unix(),
	})
}

// GetSystemInfo 获取系统信息
func (h *HealthController) GetSystemInfo(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	cfg := config.GetConfig()

	response.Success(c, gin.H{
		"service": gin.H{
			"name":    "project-analysis",
			"version": "1.0.0",
			"mode":    cfg.Server.Mode,
			"uptime":  time.Since(startTime).String(),
		},
		"system": gin.H{
			"go_version":   runtime.Version(),
			"goroutines":   runtime.NumGoroutine(),
			"memory_alloc": m.Alloc,
			"memory_sys":   m.Sys,
			"gc_runs":      m.NumGC,
		},
	})
}
