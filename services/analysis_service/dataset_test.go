package analysis_service_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
	"project-analysis/services/analysis_service"
)

func TestLoadCSVBasics(t *testing.T) {
	ds := mustDataset(t, "a,b\n1,x\n2,y\n")

	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, []string{"a", "b"}, ds.Columns())
	assert.True(t, ds.HasColumn("a"))
	assert.False(t, ds.HasColumn("c"))
	assert.Equal(t, []string{"x", "y"}, ds.Column("b"))
}

func TestLoadCSVWithBOM(t *testing.T) {
	ds := mustDataset(t, "\xEF\xBB\xBFproject_name,channel_name\n项目A,渠道X\n")
	assert.True(t, ds.HasColumn("project_name"))
}

func TestLoadCSVGBKFallback(t *testing.T) {
	utf8Content := "project_name,channel_name\n测试项目,测试渠道\n"
	gbkContent, _, err := transform.Bytes(simplifiedchinese.GBK.NewEncoder(), []byte(utf8Content))
	require.NoError(t, err)

	ds, err := analysis_service.LoadCSV(bytes.NewReader(gbkContent))
	require.NoError(t, err)
	assert.Equal(t, []string{"测试项目"}, ds.Column("project_name"))
}

func TestLoadCSVEmpty(t *testing.T) {
	_, err := analysis_service.LoadCSV(strings.NewReader("   \n"))
	assert.Error(t, err)
}

func TestMissingColumnsKeepsOrder(t *testing.T) {
	ds := mustDataset(t, "b,d\n1,2\n")
	missing := ds.MissingColumns("a", "b", "c", "d", "e")
	assert.Equal(t, []string{"a", "c", "e"}, missing)
}

// 个别金额解析失败按缺失处理，不影响其余行求和
func TestAnalyzeCompletePartialPriceCoercion(t *testing.T) {
	ds := mustDataset(t, completeHeader+
		"项目A,渠道X,,有效,已完成,\"1,200.50\",90\n"+
		"项目A,渠道X,,有效,已完成,abc,10\n")

	report, err := analysis_service.AnalyzeComplete(ds)
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "1200.50", report.Rows[0].EstimateCommissionGMV.StringFixed(2))
	assert.Equal(t, "100.00", report.Rows[0].ActualCommissionGMV.StringFixed(2))
}

// 整列非空值全部解析失败说明列本身不是金额数据
func TestAnalyzeCompleteNumericCoercionError(t *testing.T) {
	ds := mustDataset(t, completeHeader+
		"项目A,渠道X,,有效,已完成,abc,90\n"+
		"项目A,渠道X,,有效,已完成,def,10\n")

	_, err := analysis_service.AnalyzeComplete(ds)
	var coercion *analysis_service.NumericCoercionError
	require.ErrorAs(t, err, &coercion)
	assert.Equal(t, "estimate_cos_price", coercion.Column)
	assert.Contains(t, coercion.Error(), "estimate_cos_price")
}
