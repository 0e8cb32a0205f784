package export_service

import (
	"strconv"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"project-analysis/services/analysis_service"
	"project-analysis/utils"
)

// Table 导出用的表格数据，所有单元格已格式化为最终展示的字符串
type Table struct {
	Header []string
	Rows   [][]string
}

// CompleteTable 完整分析报告的明细表，列顺序与报表口径一致，
// 使用项目编号时编号列插在项目名称之后
func CompleteTable(report *analysis_service.CompleteReport) Table {
	header := []string{
		"日期",
		"项目名称",
		"渠道名称",
		"订单总数",
		"预估计佣GMV",
		"预估完成",
		"实际计佣GMV",
		"无效订单总数",
		"无效订单占比",
		"无效-违规订单数",
		"无效-违规订单占比",
		"无效-违规订单GMV",
		"无效-违规订单GMV占比",
		"无效-风险订单数",
		"无效-风险订单占比",
		"无效-风险订单GMV",
		"无效-风险订单GMV占比",
		"违规率",
		"违规GMV占比",
		"项目违规率",
		"项目违规GMV占比",
	}
	if report.UsedProjectCode {
		header = insertAt(header, 2, "项目编号")
	}

	rows := make([][]string, 0, len(report.Rows))
	for _, r := range report.Rows {
		row := []string{
			r.Date,
			r.ProjectName,
			r.ChannelName,
			strconv.Itoa(r.TotalCount),
			utils.FormatAmount(r.EstimateCommissionGMV),
			utils.FormatAmount(r.EstimateCompletedGMV),
			utils.FormatAmount(r.ActualCommissionGMV),
			strconv.Itoa(r.InvalidTotal),
			utils.FormatPercent(r.InvalidRatio),
			strconv.Itoa(r.InvalidViolation),
			utils.FormatPercent(r.ViolationRatio),
			utils.FormatAmount(r.ViolationGMV),
			utils.FormatPercent(r.ViolationGMVRatio),
			strconv.Itoa(r.InvalidRisk),
			utils.FormatPercent(r.RiskRatio),
			utils.FormatAmount(r.RiskGMV),
			utils.FormatPercent(r.RiskGMVRatio),
			utils.FormatPercent(r.ChannelViolationRate),
			utils.FormatPercent(r.ChannelViolationGMVRatio),
			utils.FormatPercent(r.ProjectViolationRate),
			utils.FormatPercent(r.ProjectViolationGMVRatio),
		}
		if report.UsedProjectCode {
			row = insertAt(row, 2, r.ProjectCode)
		}
		rows = append(rows, row)
	}
	return Table{Header: header, Rows: rows}
}

// ProjectSummaryTable 按项目汇总的报表，仅在使用项目编号时导出
func ProjectSummaryTable(report *analysis_service.CompleteReport) Table {
	header := []string{"项目编号", "项目名称", "订单总数", "预估计佣GMV", "实际计佣GMV", "无效-违规订单数", "无效-风险订单数"}

	type summary struct {
		code, name                  string
		totalCount, violation, risk int
		estimateGMV, actualGMV      decimal.Decimal
	}
	var order []string
	sums := make(map[string]*summary)
	for _, r := range report.Rows {
		s, ok := sums[r.ProjectName]
		if !ok {
			s = &summary{code: r.ProjectCode, name: r.ProjectName}
			sums[r.ProjectName] = s
			order = append(order, r.ProjectName)
		}
		s.totalCount += r.TotalCount
		s.violation += r.InvalidViolation
		s.risk += r.InvalidRisk
		s.estimateGMV = s.estimateGMV.Add(r.EstimateCommissionGMV)
		s.actualGMV = s.actualGMV.Add(r.ActualCommissionGMV)
	}

	rows := make([][]string, 0, len(order))
	for _, name := range order {
		s := sums[name]
		rows = append(rows, []string{
			s.code,
			s.name,
			strconv.Itoa(s.totalCount),
			utils.FormatCurrency(s.estimateGMV),
			utils.FormatCurrency(s.actualGMV),
			strconv.Itoa(s.violation),
			strconv.Itoa(s.risk),
		})
	}
	return Table{Header: header, Rows: rows}
}

// SummaryStatsTable 整体统计汇总，单行表
func SummaryStatsTable(report *analysis_service.CompleteReport) Table {
	totalOrders := lo.SumBy(report.Rows, func(r analysis_service.CompleteRow) int { return r.TotalCount })
	totalViolation := lo.SumBy(report.Rows, func(r analysis_service.CompleteRow) int { return r.InvalidViolation })
	totalRisk := lo.SumBy(report.Rows, func(r analysis_service.CompleteRow) int { return r.InvalidRisk })

	totalEstimate := decimal.Zero
	totalActual := decimal.Zero
	for _, r := range report.Rows {
		totalEstimate = totalEstimate.Add(r.EstimateCommissionGMV)
		totalActual = totalActual.Add(r.ActualCommissionGMV)
	}

	return Table{
		Header: []string{"总项目-渠道组合数", "总订单数", "总预估计佣GMV", "总实际计佣GMV", "总无效-违规订单数", "总无效-风险订单数", "分析时间", "数据来源"},
		Rows: [][]string{{
			strconv.Itoa(len(report.Rows)),
			strconv.Itoa(totalOrders),
			utils.FormatAmount(totalEstimate),
			utils.FormatAmount(totalActual),
			strconv.Itoa(totalViolation),
			strconv.Itoa(totalRisk),
			time.Now().Format("2006-01-02 15:04:05"),
			"违规率分析",
		}},
	}
}

// StatisticsTable 违规率统计结果表
func StatisticsTable(report *analysis_service.StatisticsReport) Table {
	rows := make([][]string, 0, len(report.Rows))
	for _, r := range report.Rows {
		rows = append(rows, []string{
			r.ProjectName,
			r.ChannelName,
			strconv.Itoa(r.OrderCount),
			strconv.Itoa(r.InvalidCount),
			strconv.Itoa(r.ViolationCount),
			utils.FormatPercent(r.ViolationRate),
		})
	}
	return Table{
		Header: []string{"项目名称", "渠道名称", "订单总数", "无效订单总数", "违规订单数", "违规率"},
		Rows:   rows,
	}
}

// RawTable 原始数据整表
func RawTable(ds *analysis_service.Dataset) Table {
	records := ds.Records()
	if len(records) == 0 {
		return Table{}
	}
	return Table{Header: records[0], Rows: records[1:]}
}

func insertAt(s []string, i int, v string) []string {
	out := make([]string, 0, len(s)+1)
	out = append(out, s[:i]...)
	out = append(out, v)
	out = append(out, s[i:]...)
	return out
}
