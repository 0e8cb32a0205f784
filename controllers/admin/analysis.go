package admin

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"project-analysis/inout"
	"project-analysis/pkg/monitoring"
	"project-analysis/pkg/response"
	"project-analysis/services/analysis_service"
	"project-analysis/services/export_service"
	"project-analysis/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// RunCompleteAnalysis 对当前数据集执行完整分析
func RunCompleteAnalysis(c *gin.Context) {
	start := time.Now()
	report, _, err := analysisService.Complete()
	if err != nil {
		monitoring.RecordAnalysisRun("complete", "error", time.Since(start))
		Resp.Err(c, analysisErrCode(err), err.Error())
		return
	}
	monitoring.RecordAnalysisRun("complete", "success", time.Since(start))

	settings := analysisService.Store.Settings()
	items := make([]inout.CompleteRowItem, 0, len(report.Rows))
	for _, row := range report.Rows {
		items = append(items, inout.CompleteRowItem{
			CompleteRow: row,
			RiskLevel:   settings.RiskLevel(row.ChannelViolationRate),
		})
	}

	Resp.Succ(c, inout.CompleteRep{
		ReportId:        uuid.NewString(),
		GeneratedAt:     utils.FormatTime(time.Now()),
		UsedProjectCode: report.UsedProjectCode,
		GroupCount:      report.GroupCount,
		InputRowCount:   report.InputRowCount,
		Summary:         completeSummary(report),
		Projects:        report.Projects,
		Items:           items,
	})
}

// ExportComplete 导出完整分析报告，format 支持 xlsx 和 csv
func ExportComplete(c *gin.Context) {
	report, ds, err := analysisService.Complete()
	if err != nil {
		Resp.Err(c, analysisErrCode(err), err.Error())
		return
	}

	format := c.DefaultQuery("format", "xlsx")
	switch format {
	case "csv":
		var buf bytes.Buffer
		if err := export_service.WriteCSV(&buf, export_service.CompleteTable(report)); err != nil {
			Resp.Err(c, response.EXPORT_FAILED, err.Error())
			return
		}
		monitoring.RecordExport("complete", "csv")
		sendFile(c, export_service.ExportFileName("违规率分析报告", "csv"), "text/csv", buf.Bytes())
	case "xlsx":
		wb, err := export_service.BuildCompleteWorkbook(report, ds)
		if err != nil {
			Resp.Err(c, response.EXPORT_FAILED, err.Error())
			return
		}
		var buf bytes.Buffer
		if err := wb.Write(&buf); err != nil {
			Resp.Err(c, response.EXPORT_FAILED, err.Error())
			return
		}
		monitoring.RecordExport("complete", "xlsx")
		sendFile(c, export_service.ExportFileName("违规率分析报告", "xlsx"),
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	default:
		Resp.Err(c, response.INVALID_PARAMS, "不支持的导出格式: "+format)
	}
}

// ExportRawData 导出当前数据集原始数据
func ExportRawData(c *gin.Context) {
	ds, _, ok := analysisService.Store.Dataset()
	if !ok {
		Resp.Err(c, response.NO_DATASET, "")
		return
	}

	var buf bytes.Buffer
	if err := export_service.WriteCSV(&buf, export_service.RawTable(ds)); err != nil {
		Resp.Err(c, response.EXPORT_FAILED, err.Error())
		return
	}
	monitoring.RecordExport("raw", "csv")
	sendFile(c, export_service.ExportFileName("原始数据", "csv"), "text/csv", buf.Bytes())
}

// ViolationChart 返回违规率TopN柱状图（SVG）
func ViolationChart(c *gin.Context) {
	report, _, err := analysisService.Complete()
	if err != nil {
		Resp.Err(c, analysisErrCode(err), err.Error())
		return
	}

	settings := analysisService.Store.Settings()
	if !settings.ShowCharts {
		Resp.Err(c, response.NOT_FOUND, "图表展示已在设置中关闭")
		return
	}

	svg := export_service.ViolationChartSVG(report, settings, 10)
	c.Data(http.StatusOK, "image/svg+xml", svg)
}

// completeSummary 汇总全部组合的整体指标
func completeSummary(report *analysis_service.CompleteReport) inout.CompleteSummary {
	totalOrders := lo.SumBy(report.Rows, func(r analysis_service.CompleteRow) int { return r.TotalCount })
	totalInvalid := lo.SumBy(report.Rows, func(r analysis_service.CompleteRow) int { return r.InvalidTotal })
	totalViolation := lo.SumBy(report.Rows, func(r analysis_service.CompleteRow) int { return r.InvalidViolation })
	totalRisk := lo.SumBy(report.Rows, func(r analysis_service.CompleteRow) int { return r.InvalidRisk })

	totalEstimate := decimal.Zero
	totalActual := decimal.Zero
	for _, r := range report.Rows {
		totalEstimate = totalEstimate.Add(r.EstimateCommissionGMV)
		totalActual = totalActual.Add(r.ActualCommissionGMV)
	}

	overall := 0.0
	if totalOrders > 0 {
		overall = float64(totalViolation+totalRisk) / float64(totalOrders)
	}

	return inout.CompleteSummary{
		TotalOrders:          totalOrders,
		TotalInvalid:         totalInvalid,
		TotalViolation:       totalViolation,
		TotalRisk:            totalRisk,
		TotalEstimateGMV:     utils.FormatAmount(totalEstimate),
		TotalActualGMV:       utils.FormatAmount(totalActual),
		OverallViolationRate: utils.FormatPercent(overall),
	}
}

// sendFile 以附件形式返回导出文件，文件名按RFC 5987编码
func sendFile(c *gin.Context, fileName, contentType string, data []byte) {
	encoded := url.PathEscape(fileName)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", encoded))
	c.Data(http.StatusOK, contentType, data)
}
