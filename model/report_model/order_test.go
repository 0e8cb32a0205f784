package report_model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"project-analysis/model/report_model"
)

func TestParseInvalidReason(t *testing.T) {
	cases := map[string]report_model.InvalidReason{
		"":        report_model.ReasonNone,
		"无效-违规订单": report_model.ReasonViolation,
		"无效-风险订单": report_model.ReasonRisk,
		"无效-取消":   report_model.ReasonCancel,
		"无效-拆单":   report_model.ReasonSplit,
		"无效-退货":   report_model.ReasonReturn,
		"无效-其他原因": report_model.ReasonOther,
		"随便写的":    report_model.ReasonOther,
	}
	for in, want := range cases {
		assert.Equal(t, want, report_model.ParseInvalidReason(in), "输入 %q", in)
	}
}

func TestIsViolationLike(t *testing.T) {
	assert.True(t, report_model.ReasonViolation.IsViolationLike())
	assert.True(t, report_model.ReasonRisk.IsViolationLike())
	assert.False(t, report_model.ReasonCancel.IsViolationLike())
	assert.False(t, report_model.ReasonNone.IsViolationLike())
	assert.False(t, report_model.ReasonOther.IsViolationLike())
}
