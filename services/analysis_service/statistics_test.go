package analysis_service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"project-analysis/services/analysis_service"
)

const statsHeader = "project_name,channel_name,bonus_invalid_text,bonus_text,order_time,finish_time\n"

func timePtr(t time.Time) *time.Time { return &t }

func TestAnalyzeStatisticsTwoStageFilter(t *testing.T) {
	// 三单下单在3月，其中两单完成在3月，一单完成在4月
	ds := mustDataset(t, statsHeader+
		"项目A,渠道X,无效-违规订单,无效,2024-03-10 10:00:00,2024-03-12 10:00:00\n"+
		"项目A,渠道X,,有效,2024-03-11 10:00:00,2024-03-13 10:00:00\n"+
		"项目A,渠道X,无效-风险订单,无效,2024-03-12 10:00:00,2024-04-02 10:00:00\n"+
		"项目A,渠道X,,有效,2024-05-01 10:00:00,2024-05-02 10:00:00\n")

	win := analysis_service.Window{
		OrderStart:  timePtr(time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)),
		OrderEnd:    timePtr(time.Date(2024, 3, 31, 23, 59, 59, 0, time.Local)),
		FinishStart: timePtr(time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)),
		FinishEnd:   timePtr(time.Date(2024, 3, 31, 23, 59, 59, 0, time.Local)),
	}

	report, err := analysis_service.AnalyzeStatistics(ds, win)
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)

	row := report.Rows[0]
	// 订单总数基于下单时间，无效和违规数在此之上再按完成时间过滤
	assert.Equal(t, 3, row.OrderCount)
	assert.Equal(t, 1, row.InvalidCount)
	assert.Equal(t, 1, row.ViolationCount)
	assert.InDelta(t, 1.0/3.0, row.ViolationRate, 1e-9)
	assert.Equal(t, 3, report.OrderCount)
	assert.Equal(t, 4, report.InputRowCount)
}

func TestAnalyzeStatisticsOpenWindow(t *testing.T) {
	ds := mustDataset(t, statsHeader+
		"项目A,渠道X,无效-违规订单,无效,2024-03-10 10:00:00,2024-03-12 10:00:00\n"+
		"项目B,渠道Y,,有效,2024-05-01 10:00:00,2024-05-02 10:00:00\n")

	report, err := analysis_service.AnalyzeStatistics(ds, analysis_service.Window{})
	require.NoError(t, err)
	assert.Len(t, report.Rows, 2)
	assert.Equal(t, 2, report.OrderCount)
}

// 时间无法解析的订单不参与任何阶段的筛选
func TestAnalyzeStatisticsUnparseableTimes(t *testing.T) {
	ds := mustDataset(t, statsHeader+
		"项目A,渠道X,无效-违规订单,无效,2024-03-10 10:00:00,\n"+
		"项目A,渠道X,,有效,1/1/1970 08:00:00,2024-03-12 10:00:00\n")

	report, err := analysis_service.AnalyzeStatistics(ds, analysis_service.Window{})
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)

	row := report.Rows[0]
	assert.Equal(t, 1, row.OrderCount)
	// 完成时间缺失，无效订单不计入
	assert.Equal(t, 0, row.InvalidCount)
	assert.Equal(t, 0, row.ViolationCount)
}

func TestAnalyzeStatisticsEmptyFilter(t *testing.T) {
	ds := mustDataset(t, statsHeader+
		"项目A,渠道X,,有效,2024-03-10 10:00:00,2024-03-12 10:00:00\n")

	win := analysis_service.Window{
		OrderStart: timePtr(time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local)),
	}
	_, err := analysis_service.AnalyzeStatistics(ds, win)

	var empty *analysis_service.EmptyFilterError
	require.ErrorAs(t, err, &empty)
}

func TestAnalyzeStatisticsSortedByProject(t *testing.T) {
	ds := mustDataset(t, statsHeader+
		"项目B,渠道X,,有效,2024-03-10 10:00:00,2024-03-12 10:00:00\n"+
		"项目A,渠道Y,,有效,2024-03-10 10:00:00,2024-03-12 10:00:00\n")

	report, err := analysis_service.AnalyzeStatistics(ds, analysis_service.Window{})
	require.NoError(t, err)
	require.Len(t, report.Rows, 2)
	assert.Equal(t, "项目A", report.Rows[0].ProjectName)
	assert.Equal(t, "项目B", report.Rows[1].ProjectName)
}

func TestAnalyzeStatisticsMissingColumns(t *testing.T) {
	ds := mustDataset(t, completeHeader+
		"项目A,渠道X,,有效,已完成,100,90\n")

	_, err := analysis_service.AnalyzeStatistics(ds, analysis_service.Window{})
	var missing *analysis_service.MissingColumnsError
	require.ErrorAs(t, err, &missing)
	assert.Contains(t, missing.Columns, "order_time")
	assert.Contains(t, missing.Columns, "finish_time")
}

// 收紧完成时间窗口只会减少无效和违规数，订单总数不受影响
func TestAnalyzeStatisticsTighterFinishWindow(t *testing.T) {
	ds := mustDataset(t, statsHeader+
		"项目A,渠道X,无效-违规订单,无效,2024-03-10 10:00:00,2024-03-12 10:00:00\n"+
		"项目A,渠道X,无效-风险订单,无效,2024-03-11 10:00:00,2024-03-20 10:00:00\n"+
		"项目A,渠道X,,有效,2024-03-12 10:00:00,2024-03-25 10:00:00\n"+
		"项目B,渠道Y,无效-违规订单,无效,2024-03-13 10:00:00,2024-03-28 10:00:00\n")

	orderStart := timePtr(time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local))
	orderEnd := timePtr(time.Date(2024, 3, 31, 23, 59, 59, 0, time.Local))

	wide, err := analysis_service.AnalyzeStatistics(ds, analysis_service.Window{
		OrderStart: orderStart,
		OrderEnd:   orderEnd,
		FinishEnd:  timePtr(time.Date(2024, 3, 31, 23, 59, 59, 0, time.Local)),
	})
	require.NoError(t, err)

	tight, err := analysis_service.AnalyzeStatistics(ds, analysis_service.Window{
		OrderStart: orderStart,
		OrderEnd:   orderEnd,
		FinishEnd:  timePtr(time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)),
	})
	require.NoError(t, err)

	require.Len(t, tight.Rows, len(wide.Rows))
	for i, tr := range tight.Rows {
		wr := wide.Rows[i]
		assert.Equal(t, wr.ProjectName, tr.ProjectName)
		assert.Equal(t, wr.ChannelName, tr.ChannelName)
		assert.Equal(t, wr.OrderCount, tr.OrderCount)
		assert.LessOrEqual(t, tr.InvalidCount, wr.InvalidCount)
		assert.LessOrEqual(t, tr.ViolationCount, wr.ViolationCount)
	}

	// 项目A三单中只有一单在3月15日前完成，项目B的完成时间被收紧窗口排除
	assert.Equal(t, 3, tight.Rows[0].OrderCount)
	assert.Equal(t, 1, tight.Rows[0].InvalidCount)
	assert.Equal(t, 1, tight.Rows[0].ViolationCount)
	assert.Equal(t, 0, tight.Rows[1].InvalidCount)
	assert.Equal(t, 0, tight.Rows[1].ViolationCount)
}
