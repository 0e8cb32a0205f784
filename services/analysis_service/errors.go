package analysis_service

import (
	"fmt"
	"strings"
)

// MissingColumnsError 数据集缺少分析必需的列
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("缺少必要的列: [%s]", strings.Join(e.Columns, ", "))
}

// NumericCoercionError 金额列无法转换为数值类型，整体分析中止
type NumericCoercionError struct {
	Column string
}

func (e *NumericCoercionError) Error() string {
	return fmt.Sprintf("转换 %s 为数值类型失败", e.Column)
}

// EmptyFilterError 下单时间筛选后没有任何订单
type EmptyFilterError struct{}

func (e *EmptyFilterError) Error() string {
	return "没有符合下单时间筛选条件的订单"
}
