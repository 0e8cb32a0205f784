package analysis_service

import (
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"project-analysis/model/report_model"
)

// completeRequiredColumns 完整分析必须具备的列
var completeRequiredColumns = []string{
	"project_name",
	"channel_name",
	"bonus_invalid_text",
	"bonus_text",
	"order_text",
	"estimate_cos_price",
	"actual_cos_price",
}

// ProjectStats 项目级别汇总，跨渠道统计
type ProjectStats struct {
	TotalCount        int             `json:"total_count"`
	EstimateGMV       decimal.Decimal `json:"estimate_gmv"`
	ActualGMV         decimal.Decimal `json:"actual_gmv"`
	InvalidViolation  int             `json:"invalid_violation"`
	InvalidRisk       int             `json:"invalid_risk"`
	ViolationGMV      decimal.Decimal `json:"violation_gmv"`
	RiskGMV           decimal.Decimal `json:"risk_gmv"`
	ViolationRate     float64         `json:"violation_rate"`
	ViolationGMVRatio float64         `json:"violation_gmv_ratio"`
}

// CompleteRow 一个项目渠道组合的完整分析结果
type CompleteRow struct {
	Date        string `json:"date"`
	ProjectName string `json:"project_name"`
	ProjectCode string `json:"project_code,omitempty"`
	ChannelName string `json:"channel_name"`

	TotalCount            int             `json:"total_count"`
	EstimateCommissionGMV decimal.Decimal `json:"estimate_commission_gmv"`
	EstimateCompletedGMV  decimal.Decimal `json:"estimate_completed_gmv"`
	ActualCommissionGMV   decimal.Decimal `json:"actual_commission_gmv"`

	InvalidTotal     int `json:"invalid_total"`
	InvalidViolation int `json:"invalid_violation"`
	InvalidRisk      int `json:"invalid_risk"`
	InvalidCancel    int `json:"invalid_cancel"`
	InvalidSplit     int `json:"invalid_split"`
	InvalidReturn    int `json:"invalid_return"`
	InvalidOther     int `json:"invalid_other"`

	InvalidRatio   float64 `json:"invalid_ratio"`
	ViolationRatio float64 `json:"violation_ratio"`
	RiskRatio      float64 `json:"risk_ratio"`

	ViolationGMV      decimal.Decimal `json:"violation_gmv"`
	RiskGMV           decimal.Decimal `json:"risk_gmv"`
	ViolationGMVRatio float64         `json:"violation_gmv_ratio"`
	RiskGMVRatio      float64         `json:"risk_gmv_ratio"`

	ChannelViolationRate     float64 `json:"channel_violation_rate"`
	ChannelViolationGMVRatio float64 `json:"channel_violation_gmv_ratio"`
	ProjectViolationRate     float64 `json:"project_violation_rate"`
	ProjectViolationGMVRatio float64 `json:"project_violation_gmv_ratio"`
}

// CompleteReport 完整分析报告
type CompleteReport struct {
	Rows            []CompleteRow           `json:"rows"`
	Projects        map[string]ProjectStats `json:"projects"`
	GroupCount      int                     `json:"group_count"`
	InputRowCount   int                     `json:"input_row_count"`
	UsedProjectCode bool                    `json:"used_project_code"`
}

// AnalyzeComplete 对整个数据集做完整分析，不应用时间筛选。
// 按项目渠道组合统计订单量、各类无效原因和GMV，并叠加项目级别汇总。
func AnalyzeComplete(ds *Dataset) (*CompleteReport, error) {
	if missing := ds.MissingColumns(completeRequiredColumns...); len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	orders, err := ds.Orders(true, false)
	if err != nil {
		return nil, err
	}

	// project_code 列存在且至少有一个非空值才参与展示和排序
	usedProjectCode := false
	if ds.HasColumn("project_code") {
		for _, o := range orders {
			if o.ProjectCode != "" {
				usedProjectCode = true
				break
			}
		}
	}

	// 每个项目取第一个非空编号，没有编号时退回项目名称
	projectCodes := make(map[string]string)
	if usedProjectCode {
		for _, o := range orders {
			if _, ok := projectCodes[o.ProjectName]; ok {
				continue
			}
			if o.ProjectCode != "" {
				projectCodes[o.ProjectName] = o.ProjectCode
			}
		}
		for _, o := range orders {
			if _, ok := projectCodes[o.ProjectName]; !ok {
				projectCodes[o.ProjectName] = o.ProjectName
			}
		}
	}

	projects := computeProjectStats(orders)

	// 项目渠道组合按首次出现顺序处理
	type comboKey struct{ project, channel string }
	var combos []comboKey
	grouped := make(map[comboKey][]report_model.Order)
	for _, o := range orders {
		key := comboKey{o.ProjectName, o.ChannelName}
		if _, ok := grouped[key]; !ok {
			combos = append(combos, key)
		}
		grouped[key] = append(grouped[key], o)
	}

	date := time.Now().Format("2006-01-02")
	rows := make([]CompleteRow, 0, len(combos))
	for _, key := range combos {
		group := grouped[key]
		row := CompleteRow{
			Date:        date,
			ProjectName: key.project,
			ChannelName: key.channel,
			TotalCount:  len(group),
		}
		if usedProjectCode {
			row.ProjectCode = projectCodes[key.project]
		}

		for _, o := range group {
			switch o.InvalidReason {
			case report_model.ReasonViolation:
				row.InvalidViolation++
				row.ViolationGMV = addPrice(row.ViolationGMV, o.EstimatePrice)
			case report_model.ReasonRisk:
				row.InvalidRisk++
				row.RiskGMV = addPrice(row.RiskGMV, o.EstimatePrice)
			case report_model.ReasonCancel:
				row.InvalidCancel++
			case report_model.ReasonSplit:
				row.InvalidSplit++
			case report_model.ReasonReturn:
				row.InvalidReturn++
			case report_model.ReasonOther:
				row.InvalidOther++
			}

			row.EstimateCommissionGMV = addPrice(row.EstimateCommissionGMV, o.EstimatePrice)
			if o.BonusValidOrder() {
				row.EstimateCompletedGMV = addPrice(row.EstimateCompletedGMV, o.EstimatePrice)
				if o.Completed() {
					row.ActualCommissionGMV = addPrice(row.ActualCommissionGMV, o.ActualPrice)
				}
			}
		}
		row.InvalidTotal = row.InvalidViolation + row.InvalidRisk + row.InvalidCancel +
			row.InvalidSplit + row.InvalidReturn + row.InvalidOther

		row.InvalidRatio = countRatio(row.InvalidTotal, row.TotalCount)
		row.ViolationRatio = countRatio(row.InvalidViolation, row.TotalCount)
		row.RiskRatio = countRatio(row.InvalidRisk, row.TotalCount)
		row.ChannelViolationRate = countRatio(row.InvalidViolation+row.InvalidRisk, row.TotalCount)

		row.ViolationGMVRatio = gmvRatio(row.ViolationGMV, row.EstimateCommissionGMV)
		row.RiskGMVRatio = gmvRatio(row.RiskGMV, row.EstimateCommissionGMV)
		row.ChannelViolationGMVRatio = gmvRatio(row.ViolationGMV.Add(row.RiskGMV), row.EstimateCommissionGMV)

		ps := projects[key.project]
		row.ProjectViolationRate = ps.ViolationRate
		row.ProjectViolationGMVRatio = ps.ViolationGMVRatio

		rows = append(rows, row)
	}

	sortCompleteRows(rows, usedProjectCode)

	return &CompleteReport{
		Rows:            rows,
		Projects:        projects,
		GroupCount:      len(combos),
		InputRowCount:   len(orders),
		UsedProjectCode: usedProjectCode,
	}, nil
}

// sortCompleteRows 有项目编号时按编号升序（全部可转数字则按数值比较），
// 否则按项目名称升序。稳定排序保证同项目内渠道保持首次出现顺序。
func sortCompleteRows(rows []CompleteRow, usedProjectCode bool) {
	if !usedProjectCode {
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].ProjectName < rows[j].ProjectName
		})
		return
	}

	numeric := make(map[string]float64, len(rows))
	allNumeric := true
	for _, r := range rows {
		v, err := strconv.ParseFloat(r.ProjectCode, 64)
		if err != nil {
			allNumeric = false
			break
		}
		numeric[r.ProjectCode] = v
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if allNumeric {
			return numeric[rows[i].ProjectCode] < numeric[rows[j].ProjectCode]
		}
		return rows[i].ProjectCode < rows[j].ProjectCode
	})
}

// computeProjectStats 按项目汇总全量订单，用于项目违规率和项目违规GMV占比
func computeProjectStats(orders []report_model.Order) map[string]ProjectStats {
	stats := make(map[string]ProjectStats)
	for _, o := range orders {
		ps := stats[o.ProjectName]
		ps.TotalCount++
		ps.EstimateGMV = addPrice(ps.EstimateGMV, o.EstimatePrice)
		if o.BonusValidOrder() && o.Completed() {
			ps.ActualGMV = addPrice(ps.ActualGMV, o.ActualPrice)
		}
		switch o.InvalidReason {
		case report_model.ReasonViolation:
			ps.InvalidViolation++
			ps.ViolationGMV = addPrice(ps.ViolationGMV, o.EstimatePrice)
		case report_model.ReasonRisk:
			ps.InvalidRisk++
			ps.RiskGMV = addPrice(ps.RiskGMV, o.EstimatePrice)
		}
		stats[o.ProjectName] = ps
	}

	for name, ps := range stats {
		ps.ViolationRate = countRatio(ps.InvalidViolation+ps.InvalidRisk, ps.TotalCount)
		ps.ViolationGMVRatio = gmvRatio(ps.ViolationGMV.Add(ps.RiskGMV), ps.EstimateGMV)
		stats[name] = ps
	}
	return stats
}

// addPrice 累加金额，缺失值不计入
func addPrice(sum decimal.Decimal, p decimal.NullDecimal) decimal.Decimal {
	if !p.Valid {
		return sum
	}
	return sum.Add(p.Decimal)
}

// countRatio 订单数占比，分母为0时返回0
func countRatio(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total)
}

// gmvRatio GMV占比，分母不为正数时返回0
func gmvRatio(part, total decimal.Decimal) float64 {
	if !total.IsPositive() {
		return 0
	}
	return part.Div(total).InexactFloat64()
}
