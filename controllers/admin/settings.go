package admin

import (
	"project-analysis/inout"
	"project-analysis/pkg/response"
	"project-analysis/services/analysis_service"

	"github.com/gin-gonic/gin"
)

// GetSettings 返回当前分析设置
func GetSettings(c *gin.Context) {
	Resp.Succ(c, analysisService.Store.Settings())
}

// UpdateSettings 更新分析设置
func UpdateSettings(c *gin.Context) {
	var params inout.SettingsReq
	if err := c.ShouldBindJSON(&params); err != nil {
		Resp.Err(c, response.INVALID_PARAMS, err.Error())
		return
	}
	if params.MediumViolationThreshold > params.HighViolationThreshold {
		Resp.Err(c, response.INVALID_PARAMS, "中等风险阈值不能高于高风险阈值")
		return
	}

	settings := analysis_service.Settings{
		HighViolationThreshold:   params.HighViolationThreshold,
		MediumViolationThreshold: params.MediumViolationThreshold,
		HighlightViolations:      params.HighlightViolations,
		ShowCharts:               params.ShowCharts,
		ShowRawData:              params.ShowRawData,
		ShowDetailedAnalysis:     params.ShowDetailedAnalysis,
	}
	analysisService.Store.UpdateSettings(settings)
	Resp.Succ(c, settings)
}
