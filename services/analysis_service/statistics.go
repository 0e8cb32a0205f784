package analysis_service

import (
	"sort"
	"time"

	"project-analysis/model/report_model"
)

// statisticsRequiredColumns 违规率统计必须具备的列
var statisticsRequiredColumns = []string{
	"project_name",
	"channel_name",
	"bonus_invalid_text",
	"bonus_text",
	"order_time",
	"finish_time",
}

// Window 两段时间筛选条件，任一边界为nil表示该方向不限
type Window struct {
	OrderStart  *time.Time
	OrderEnd    *time.Time
	FinishStart *time.Time
	FinishEnd   *time.Time
}

// StatisticsRow 一个项目渠道组合的违规率统计结果。
// 订单总数基于下单时间筛选，无效数和违规数在此基础上再按完成时间筛选。
type StatisticsRow struct {
	ProjectName    string  `json:"project_name"`
	ChannelName    string  `json:"channel_name"`
	OrderCount     int     `json:"order_count"`
	InvalidCount   int     `json:"invalid_count"`
	ViolationCount int     `json:"violation_count"`
	ViolationRate  float64 `json:"violation_rate"`
}

// StatisticsReport 违规率统计报告
type StatisticsReport struct {
	Rows          []StatisticsRow `json:"rows"`
	GroupCount    int             `json:"group_count"`
	OrderCount    int             `json:"order_count"`
	InputRowCount int             `json:"input_row_count"`
}

// AnalyzeStatistics 按时间窗口统计违规率。
// 先按下单时间筛出参与统计的订单并确定项目渠道组合，
// 再在每个组合内按完成时间筛选，统计无效订单和违规订单。
func AnalyzeStatistics(ds *Dataset, win Window) (*StatisticsReport, error) {
	if missing := ds.MissingColumns(statisticsRequiredColumns...); len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	orders, err := ds.Orders(false, true)
	if err != nil {
		return nil, err
	}

	var orderFiltered []report_model.Order
	for _, o := range orders {
		if inRange(o.OrderTime, win.OrderStart, win.OrderEnd) {
			orderFiltered = append(orderFiltered, o)
		}
	}
	if len(orderFiltered) == 0 {
		return nil, &EmptyFilterError{}
	}

	type comboKey struct{ project, channel string }
	var combos []comboKey
	grouped := make(map[comboKey][]report_model.Order)
	for _, o := range orderFiltered {
		key := comboKey{o.ProjectName, o.ChannelName}
		if _, ok := grouped[key]; !ok {
			combos = append(combos, key)
		}
		grouped[key] = append(grouped[key], o)
	}

	rows := make([]StatisticsRow, 0, len(combos))
	for _, key := range combos {
		group := grouped[key]
		row := StatisticsRow{
			ProjectName: key.project,
			ChannelName: key.channel,
			OrderCount:  len(group),
		}
		for _, o := range group {
			if !inRange(o.FinishTime, win.FinishStart, win.FinishEnd) {
				continue
			}
			if o.BonusText == report_model.BonusInvalid {
				row.InvalidCount++
			}
			if o.InvalidReason.IsViolationLike() {
				row.ViolationCount++
			}
		}
		row.ViolationRate = countRatio(row.ViolationCount, row.OrderCount)
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].ProjectName < rows[j].ProjectName
	})

	return &StatisticsReport{
		Rows:          rows,
		GroupCount:    len(combos),
		OrderCount:    len(orderFiltered),
		InputRowCount: len(orders),
	}, nil
}

// inRange 时间落在闭区间内。时间缺失一律不通过筛选。
func inRange(t, start, end *time.Time) bool {
	if t == nil {
		return false
	}
	if start != nil && t.Before(*start) {
		return false
	}
	if end != nil && t.After(*end) {
		return false
	}
	return true
}
