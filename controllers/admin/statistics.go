package admin

import (
	"bytes"
	"errors"
	"time"

	"project-analysis/inout"
	"project-analysis/pkg/monitoring"
	"project-analysis/pkg/response"
	"project-analysis/services/analysis_service"
	"project-analysis/services/export_service"
	"project-analysis/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RunStatistics 按时间窗口统计违规率
func RunStatistics(c *gin.Context) {
	var params inout.StatisticsReq
	if err := c.ShouldBind(&params); err != nil {
		Resp.Err(c, response.INVALID_PARAMS, err.Error())
		return
	}

	win, err := parseWindow(params)
	if err != nil {
		Resp.Err(c, response.INVALID_PARAMS, err.Error())
		return
	}

	start := time.Now()
	report, err := analysisService.Statistics(win)
	if err != nil {
		// 下单时间窗口筛不出任何订单不算错误，返回空结果并提示
		var empty *analysis_service.EmptyFilterError
		if errors.As(err, &empty) {
			monitoring.RecordAnalysisRun("statistics", "success", time.Since(start))
			Resp.Succ(c, inout.StatisticsRep{
				ReportId:    uuid.NewString(),
				GeneratedAt: time.Now().Format(utils.DateTimeFormat),
				Window:      params,
				Message:     err.Error(),
				Items:       []inout.StatisticsRowItem{},
			})
			return
		}
		monitoring.RecordAnalysisRun("statistics", "error", time.Since(start))
		Resp.Err(c, analysisErrCode(err), err.Error())
		return
	}
	monitoring.RecordAnalysisRun("statistics", "success", time.Since(start))

	settings := analysisService.Store.Settings()
	items := make([]inout.StatisticsRowItem, 0, len(report.Rows))
	for _, row := range report.Rows {
		items = append(items, inout.StatisticsRowItem{
			StatisticsRow: row,
			RiskLevel:     settings.RiskLevel(row.ViolationRate),
		})
	}

	Resp.Succ(c, inout.StatisticsRep{
		ReportId:      uuid.NewString(),
		GeneratedAt:   time.Now().Format(utils.DateTimeFormat),
		GroupCount:    report.GroupCount,
		OrderCount:    report.OrderCount,
		InputRowCount: report.InputRowCount,
		Window:        params,
		Items:         items,
	})
}

// ExportStatistics 导出违规率统计报告（CSV）
func ExportStatistics(c *gin.Context) {
	var params inout.StatisticsReq
	if err := c.ShouldBind(&params); err != nil {
		Resp.Err(c, response.INVALID_PARAMS, err.Error())
		return
	}

	win, err := parseWindow(params)
	if err != nil {
		Resp.Err(c, response.INVALID_PARAMS, err.Error())
		return
	}

	report, err := analysisService.Statistics(win)
	if err != nil {
		// 空结果仍然导出只含表头的文件
		var empty *analysis_service.EmptyFilterError
		if errors.As(err, &empty) {
			report = &analysis_service.StatisticsReport{}
		} else {
			Resp.Err(c, analysisErrCode(err), err.Error())
			return
		}
	}

	var buf bytes.Buffer
	if err := export_service.WriteCSV(&buf, export_service.StatisticsTable(report)); err != nil {
		Resp.Err(c, response.EXPORT_FAILED, err.Error())
		return
	}
	monitoring.RecordExport("statistics", "csv")
	sendFile(c, export_service.ExportFileName("违规率统计报告", "csv"), "text/csv", buf.Bytes())
}

// parseWindow 解析时间窗口参数并校验边界顺序
func parseWindow(params inout.StatisticsReq) (analysis_service.Window, error) {
	var win analysis_service.Window
	var err error

	if win.OrderStart, err = parseWindowTime(params.OrderStart); err != nil {
		return win, err
	}
	if win.OrderEnd, err = parseWindowTime(params.OrderEnd); err != nil {
		return win, err
	}
	if win.FinishStart, err = parseWindowTime(params.FinishStart); err != nil {
		return win, err
	}
	if win.FinishEnd, err = parseWindowTime(params.FinishEnd); err != nil {
		return win, err
	}

	if win.OrderStart != nil && win.OrderEnd != nil && win.OrderEnd.Before(*win.OrderStart) {
		return win, errInvalidWindow("下单")
	}
	if win.FinishStart != nil && win.FinishEnd != nil && win.FinishEnd.Before(*win.FinishStart) {
		return win, errInvalidWindow("完成")
	}
	return win, nil
}

func parseWindowTime(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(utils.DateTimeFormat, value, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

type windowOrderError struct{ stage string }

func (e *windowOrderError) Error() string {
	return e.stage + "时间范围无效，结束时间早于开始时间"
}

func errInvalidWindow(stage string) error {
	return &windowOrderError{stage: stage}
}
