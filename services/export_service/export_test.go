package export_service_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"project-analysis/services/analysis_service"
	"project-analysis/services/export_service"
)

func buildReport(t *testing.T, content string) (*analysis_service.CompleteReport, *analysis_service.Dataset) {
	t.Helper()
	ds, err := analysis_service.LoadCSV(strings.NewReader(content))
	require.NoError(t, err)
	report, err := analysis_service.AnalyzeComplete(ds)
	require.NoError(t, err)
	return report, ds
}

const plainHeader = "project_name,channel_name,bonus_invalid_text,bonus_text,order_text,estimate_cos_price,actual_cos_price\n"
const codedHeader = "project_name,project_code,channel_name,bonus_invalid_text,bonus_text,order_text,estimate_cos_price,actual_cos_price\n"

func TestCompleteTableColumns(t *testing.T) {
	report, _ := buildReport(t, plainHeader+"项目A,渠道X,,有效,已完成,100,90\n")
	table := export_service.CompleteTable(report)

	assert.Equal(t, "日期", table.Header[0])
	assert.Equal(t, "项目名称", table.Header[1])
	assert.Equal(t, "渠道名称", table.Header[2])
	assert.NotContains(t, table.Header, "项目编号")
	require.Len(t, table.Rows, 1)
	assert.Len(t, table.Rows[0], len(table.Header))
}

func TestCompleteTableWithProjectCode(t *testing.T) {
	report, _ := buildReport(t, codedHeader+"项目A,7,渠道X,,有效,已完成,100,90\n")
	table := export_service.CompleteTable(report)

	// 项目编号插在项目名称之后渠道名称之前
	assert.Equal(t, "项目名称", table.Header[1])
	assert.Equal(t, "项目编号", table.Header[2])
	assert.Equal(t, "渠道名称", table.Header[3])
	assert.Equal(t, "7", table.Rows[0][2])
}

func TestWriteCSVWithBOM(t *testing.T) {
	report, _ := buildReport(t, plainHeader+"项目A,渠道X,,有效,已完成,100,90\n")

	var buf bytes.Buffer
	require.NoError(t, export_service.WriteCSV(&buf, export_service.CompleteTable(report)))

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}))
	assert.Contains(t, string(out), "项目名称")
	assert.Contains(t, string(out), "100.00")
}

func TestBuildCompleteWorkbookSheets(t *testing.T) {
	report, ds := buildReport(t, codedHeader+"项目A,7,渠道X,,有效,已完成,100,90\n")

	wb, err := export_service.BuildCompleteWorkbook(report, ds)
	require.NoError(t, err)

	sheets := wb.GetSheetList()
	assert.Contains(t, sheets, export_service.SheetDetail)
	assert.Contains(t, sheets, export_service.SheetRawData)
	assert.Contains(t, sheets, export_service.SheetProjectSum)
	assert.Contains(t, sheets, export_service.SheetSummary)
	assert.NotContains(t, sheets, "Sheet1")

	name, err := wb.GetCellValue(export_service.SheetDetail, "B1")
	require.NoError(t, err)
	assert.Equal(t, "项目名称", name)
}

func TestBuildCompleteWorkbookWithoutProjectSum(t *testing.T) {
	report, ds := buildReport(t, plainHeader+"项目A,渠道X,,有效,已完成,100,90\n")

	wb, err := export_service.BuildCompleteWorkbook(report, ds)
	require.NoError(t, err)
	assert.NotContains(t, wb.GetSheetList(), export_service.SheetProjectSum)
}

func TestProjectSummaryTable(t *testing.T) {
	report, _ := buildReport(t, codedHeader+
		"项目A,7,渠道X,,有效,已完成,1000,900\n"+
		"项目A,7,渠道Y,无效-违规订单,无效,未完成,500,0\n")

	table := export_service.ProjectSummaryTable(report)
	require.Len(t, table.Rows, 1)

	row := table.Rows[0]
	assert.Equal(t, "7", row[0])
	assert.Equal(t, "项目A", row[1])
	assert.Equal(t, "2", row[2])
	assert.Equal(t, "¥1,500.00", row[3])
	assert.Equal(t, "¥900.00", row[4])
	assert.Equal(t, "1", row[5])
}

func TestStatisticsTable(t *testing.T) {
	ds, err := analysis_service.LoadCSV(strings.NewReader(
		"project_name,channel_name,bonus_invalid_text,bonus_text,order_time,finish_time\n" +
			"项目A,渠道X,无效-违规订单,无效,2024-03-10 10:00:00,2024-03-12 10:00:00\n"))
	require.NoError(t, err)

	report, err := analysis_service.AnalyzeStatistics(ds, analysis_service.Window{})
	require.NoError(t, err)

	table := export_service.StatisticsTable(report)
	assert.Equal(t, []string{"项目名称", "渠道名称", "订单总数", "无效订单总数", "违规订单数", "违规率"}, table.Header)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "100.00%", table.Rows[0][5])
}

func TestViolationChartSVG(t *testing.T) {
	report, _ := buildReport(t, plainHeader+
		"项目A,渠道X,无效-违规订单,无效,未完成,100,0\n"+
		"项目B,渠道Y,,有效,已完成,100,90\n")

	svg := export_service.ViolationChartSVG(report, analysis_service.DefaultSettings(), 10)
	out := string(svg)
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "</svg>")
	assert.Contains(t, out, "违规率最高")
	assert.Contains(t, out, "rect")
}
