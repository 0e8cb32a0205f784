package inout

import (
	"project-analysis/services/analysis_service"
)

// LoadLocalFileReq 从本地数据目录加载文件
type LoadLocalFileReq struct {
	FileName string `json:"file_name" form:"file_name" binding:"required"`
}

// StatisticsReq 违规率统计的时间窗口，格式 2006-01-02 15:04:05，均可省略
type StatisticsReq struct {
	OrderStart  string `json:"order_start" form:"order_start" binding:"omitempty,datetime=2006-01-02 15:04:05"`
	OrderEnd    string `json:"order_end" form:"order_end" binding:"omitempty,datetime=2006-01-02 15:04:05"`
	FinishStart string `json:"finish_start" form:"finish_start" binding:"omitempty,datetime=2006-01-02 15:04:05"`
	FinishEnd   string `json:"finish_end" form:"finish_end" binding:"omitempty,datetime=2006-01-02 15:04:05"`
}

// SettingsReq 更新分析设置
type SettingsReq struct {
	HighViolationThreshold   float64 `json:"high_violation_threshold" binding:"gte=0,lte=100"`
	MediumViolationThreshold float64 `json:"medium_violation_threshold" binding:"gte=0,lte=100"`
	HighlightViolations      bool    `json:"highlight_violations"`
	ShowCharts               bool    `json:"show_charts"`
	ShowRawData              bool    `json:"show_raw_data"`
	ShowDetailedAnalysis     bool    `json:"show_detailed_analysis"`
}

// DatasetRep 当前数据集信息
type DatasetRep struct {
	FileName string   `json:"file_name"`
	Source   string   `json:"source"`
	RowCount int      `json:"row_count"`
	Columns  []string `json:"columns"`
	LoadedAt string   `json:"loaded_at"`
}

// CompleteRowItem 完整分析明细行，附带按阈值计算的风险等级
type CompleteRowItem struct {
	analysis_service.CompleteRow
	RiskLevel string `json:"risk_level"`
}

// CompleteSummary 完整分析的整体汇总
type CompleteSummary struct {
	TotalOrders          int    `json:"total_orders"`
	TotalInvalid         int    `json:"total_invalid"`
	TotalViolation       int    `json:"total_violation"`
	TotalRisk            int    `json:"total_risk"`
	TotalEstimateGMV     string `json:"total_estimate_gmv"`
	TotalActualGMV       string `json:"total_actual_gmv"`
	OverallViolationRate string `json:"overall_violation_rate"`
}

// CompleteRep 完整分析响应
type CompleteRep struct {
	ReportId        string                                      `json:"report_id"`
	GeneratedAt     string                                      `json:"generated_at"`
	UsedProjectCode bool                                        `json:"used_project_code"`
	GroupCount      int                                         `json:"group_count"`
	InputRowCount   int                                         `json:"input_row_count"`
	Summary         CompleteSummary                             `json:"summary"`
	Projects        map[string]analysis_service.ProjectStats    `json:"projects"`
	Items           []CompleteRowItem                           `json:"items"`
}

// StatisticsRowItem 违规率统计明细行
type StatisticsRowItem struct {
	analysis_service.StatisticsRow
	RiskLevel string `json:"risk_level"`
}

// StatisticsRep 违规率统计响应
type StatisticsRep struct {
	ReportId      string              `json:"report_id"`
	GeneratedAt   string              `json:"generated_at"`
	GroupCount    int                 `json:"group_count"`
	OrderCount    int                 `json:"order_count"`
	InputRowCount int                 `json:"input_row_count"`
	Window        StatisticsReq       `json:"window"`
	Message       string              `json:"message,omitempty"`
	Items         []StatisticsRowItem `json:"items"`
}
