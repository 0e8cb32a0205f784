package export_service

import (
	"bytes"
	"fmt"
	"sort"

	svg "github.com/ajstarks/svgo"
	"project-analysis/services/analysis_service"
	"project-analysis/utils"
)

// 图表配色，按风险等级区分柱色
const (
	chartBarHigh   = "#ef4444"
	chartBarMedium = "#f59e0b"
	chartBarLow    = "#6366f1"
)

// ViolationChartSVG 生成违规率最高的topN个项目渠道组合的柱状图。
// 柱体颜色按分析设置的风险阈值区分。
func ViolationChartSVG(report *analysis_service.CompleteReport, settings analysis_service.Settings, topN int) []byte {
	rows := make([]analysis_service.CompleteRow, len(report.Rows))
	copy(rows, report.Rows)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].ChannelViolationRate > rows[j].ChannelViolationRate
	})
	if topN > 0 && len(rows) > topN {
		rows = rows[:topN]
	}

	const (
		width     = 900
		height    = 420
		marginX   = 60
		marginTop = 60
		barArea   = 280
	)

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:white")
	canvas.Text(width/2, 30, fmt.Sprintf("违规率最高的%d个项目", len(rows)),
		"text-anchor:middle;font-size:18px;fill:#111827")

	if len(rows) == 0 {
		canvas.Text(width/2, height/2, "暂无数据", "text-anchor:middle;font-size:14px;fill:#6b7280")
		canvas.End()
		return buf.Bytes()
	}

	maxRate := rows[0].ChannelViolationRate
	if maxRate <= 0 {
		maxRate = 1
	}

	// 坐标轴
	baseY := marginTop + barArea
	canvas.Line(marginX, marginTop, marginX, baseY, "stroke:#9ca3af;stroke-width:1")
	canvas.Line(marginX, baseY, width-marginX, baseY, "stroke:#9ca3af;stroke-width:1")

	slot := (width - 2*marginX) / len(rows)
	barWidth := slot * 2 / 3
	for i, r := range rows {
		barHeight := int(float64(barArea) * r.ChannelViolationRate / maxRate)
		x := marginX + i*slot + (slot-barWidth)/2
		y := baseY - barHeight

		color := chartBarLow
		switch settings.RiskLevel(r.ChannelViolationRate) {
		case analysis_service.RiskHigh:
			color = chartBarHigh
		case analysis_service.RiskMedium:
			color = chartBarMedium
		}
		canvas.Rect(x, y, barWidth, barHeight, fmt.Sprintf("fill:%s", color))

		canvas.Text(x+barWidth/2, y-6, utils.FormatPercent(r.ChannelViolationRate),
			"text-anchor:middle;font-size:11px;fill:#374151")
		label := r.ProjectName
		if r.ChannelName != "" {
			label = fmt.Sprintf("%s/%s", r.ProjectName, r.ChannelName)
		}
		canvas.Text(x+barWidth/2, baseY+18, label,
			fmt.Sprintf("text-anchor:middle;font-size:10px;fill:#374151;transform:rotate(20,%d,%d)", x+barWidth/2, baseY+18))
	}

	canvas.End()
	return buf.Bytes()
}
