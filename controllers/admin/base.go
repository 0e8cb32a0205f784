package admin

import (
	"project-analysis/pkg/response"
	"project-analysis/services/analysis_service"

	"github.com/gin-gonic/gin"
)

// 控制器共享一个分析服务实例
var analysisService = analysis_service.NewAnalysisService()

// Resp 为了兼容性保留，但推荐直接使用 response 包
var Resp = &rps{}

type rps struct{}

// Succ 成功响应 - 兼容旧接口
func (rps) Succ(c *gin.Context, data interface{}) {
	response.Success(c, data)
}

// Err 错误响应 - 兼容旧接口
func (rps) Err(c *gin.Context, errCode int, message string) {
	response.Error(c, errCode, message)
}
