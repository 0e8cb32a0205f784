package router

import (
	"project-analysis/controllers/admin"
	"project-analysis/controllers/health"
	"project-analysis/inout"
	"project-analysis/middleware"
	"project-analysis/pkg/config"

	"github.com/gin-gonic/gin"
)

// Init 注册分析服务路由
func Init(r *gin.Engine) {
	api := r.Group("/api/analysis")

	logGroup := api.Group("/")
	logGroup.Use(middleware.RequestLogger(config.GetConfig().Log.RequestDir))
	{
		// 数据集管理
		logGroup.POST("/dataset/upload", admin.UploadDataset)
		logGroup.GET("/dataset/local", admin.ListLocalFiles)
		logGroup.POST("/dataset/local", admin.LoadLocalFile)
		logGroup.GET("/dataset", admin.GetDataset)
		logGroup.DELETE("/dataset", admin.DeleteDataset)

		// 完整分析
		logGroup.POST("/complete", admin.RunCompleteAnalysis)
		logGroup.GET("/complete/export", admin.ExportComplete)
		logGroup.GET("/complete/chart", admin.ViolationChart)
		logGroup.GET("/raw/export", admin.ExportRawData)

		// 违规率统计，时间窗口参数用表单提交
		logGroup.POST("/statistics", middleware.ValidationMiddleware(&inout.StatisticsReq{}), admin.RunStatistics)
		logGroup.GET("/statistics/export", middleware.ValidationMiddleware(&inout.StatisticsReq{}), admin.ExportStatistics)

		// 分析设置
		logGroup.GET("/settings", admin.GetSettings)
		logGroup.PUT("/settings", admin.UpdateSettings)
	}
}

// InitHealth 注册健康检查路由
func InitHealth(r *gin.Engine) {
	h := health.NewHealthController()
	r.GET("/health", h.CheckHealth)
	r.GET("/health/live", h.CheckLiveness)
	r.GET("/health/ready", h.CheckReadiness)
	r.GET("/health/system", h.GetSystemInfo)
}
