package report_model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// 订单状态相关的文本常量，与上游结算系统导出的字段取值保持一致
const (
	BonusValid     = "有效"   // bonus_text: 订单计佣有效
	BonusInvalid   = "无效"   // bonus_text: 订单计佣无效
	OrderCompleted = "已完成" // order_text: 订单已完成
)

// bonus_invalid_text 中已识别的无效原因文本
const (
	InvalidViolationText = "无效-违规订单"
	InvalidRiskText      = "无效-风险订单"
	InvalidCancelText    = "无效-取消"
	InvalidSplitText     = "无效-拆单"
	InvalidReturnText    = "无效-退货"
)

// InvalidReason 无效原因标签，在解析阶段对 bonus_invalid_text 做一次归类，
// 之后所有统计逻辑只按标签匹配，不再做字符串比较
type InvalidReason int

const (
	ReasonNone      InvalidReason = iota // 未标记无效原因
	ReasonViolation                      // 无效-违规订单
	ReasonRisk                           // 无效-风险订单
	ReasonCancel                         // 无效-取消
	ReasonSplit                          // 无效-拆单
	ReasonReturn                         // 无效-退货
	ReasonOther                          // 其他非空无效原因
)

// ParseInvalidReason 将原始无效原因文本归类为标签。
// 空文本表示订单未被标记无效；未识别的非空文本统一归入 ReasonOther。
func ParseInvalidReason(text string) InvalidReason {
	switch strings.TrimSpace(text) {
	case "":
		return ReasonNone
	case InvalidViolationText:
		return ReasonViolation
	case InvalidRiskText:
		return ReasonRisk
	case InvalidCancelText:
		return ReasonCancel
	case InvalidSplitText:
		return ReasonSplit
	case InvalidReturnText:
		return ReasonReturn
	default:
		return ReasonOther
	}
}

// String 返回标签对应的原因文本
func (r InvalidReason) String() string {
	switch r {
	case ReasonViolation:
		return InvalidViolationText
	case ReasonRisk:
		return InvalidRiskText
	case ReasonCancel:
		return InvalidCancelText
	case ReasonSplit:
		return InvalidSplitText
	case ReasonReturn:
		return InvalidReturnText
	case ReasonOther:
		return "无效-其他"
	default:
		return ""
	}
}

// IsViolationLike 违规类订单：违规或风险
func (r InvalidReason) IsViolationLike() bool {
	return r == ReasonViolation || r == ReasonRisk
}

// Order 单条订单记录，按分析所需字段从数据集逐行解析得到
type Order struct {
	ProjectName   string
	ProjectCode   string
	ChannelName   string
	BonusText     string
	InvalidReason InvalidReason
	OrderText     string

	// 预估/实际计佣金额；解析失败或为空时 Valid 为 false，不参与求和
	EstimatePrice decimal.NullDecimal
	ActualPrice   decimal.NullDecimal

	// 下单/完成时间；解析失败或为哨兵值时为 nil
	OrderTime  *time.Time
	FinishTime *time.Time
}

// BonusValidOrder 订单计佣是否有效
func (o *Order) BonusValidOrder() bool {
	return o.BonusText == BonusValid
}

// Completed 订单是否已完成
func (o *Order) Completed() bool {
	return o.OrderText == OrderCompleted
}
