package analysis_service

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
	"project-analysis/model/report_model"
)

// Dataset 一份已加载到内存的订单数据表。
// 所有列统一按字符串读入，数值和时间的类型转换由各分析入口自己负责。
type Dataset struct {
	df dataframe.DataFrame
}

// LoadCSV 读取CSV数据集。优先按UTF-8解析，失败时回退GBK
// （上游导出的文件常见GBK编码）。
func LoadCSV(r io.Reader) (*Dataset, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("读取文件失败: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("文件内容为空")
	}

	data := raw
	if !utf8.Valid(raw) {
		decoded, _, decErr := transform.Bytes(simplifiedchinese.GBK.NewDecoder(), raw)
		if decErr != nil {
			return nil, fmt.Errorf("文件编码无法识别: %w", decErr)
		}
		data = decoded
	}
	// 去掉UTF-8 BOM，否则首列名会带上BOM前缀
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("解析CSV失败: %w", df.Err)
	}
	return &Dataset{df: df}, nil
}

// Len 数据行数
func (ds *Dataset) Len() int {
	return ds.df.Nrow()
}

// Columns 数据列名
func (ds *Dataset) Columns() []string {
	return ds.df.Names()
}

// HasColumn 判断列是否存在
func (ds *Dataset) HasColumn(name string) bool {
	for _, col := range ds.df.Names() {
		if col == name {
			return true
		}
	}
	return false
}

// MissingColumns 返回 required 中缺失的列名，保持入参顺序
func (ds *Dataset) MissingColumns(required ...string) []string {
	var missing []string
	for _, name := range required {
		if !ds.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Records 整表的字符串记录，第一行为列名
func (ds *Dataset) Records() [][]string {
	return ds.df.Records()
}

// Column 按列名取出整列的原始字符串值。调用方需先确认列存在。
func (ds *Dataset) Column(name string) []string {
	return ds.df.Col(name).Records()
}

// Orders 将整表提取为订单切片。金额和时间列只在对应分析需要时转换，
// 转换失败的单元格按缺失值处理。
func (ds *Dataset) Orders(withPrices, withTimes bool) ([]report_model.Order, error) {
	orders := make([]report_model.Order, ds.Len())

	fill := func(col string, set func(i int, v string)) {
		if !ds.HasColumn(col) {
			return
		}
		for i, v := range ds.Column(col) {
			set(i, cleanCell(v))
		}
	}
	fill("project_name", func(i int, v string) { orders[i].ProjectName = v })
	fill("project_code", func(i int, v string) { orders[i].ProjectCode = v })
	fill("channel_name", func(i int, v string) { orders[i].ChannelName = v })
	fill("bonus_text", func(i int, v string) { orders[i].BonusText = v })
	fill("order_text", func(i int, v string) { orders[i].OrderText = v })
	fill("bonus_invalid_text", func(i int, v string) { orders[i].InvalidReason = report_model.ParseInvalidReason(v) })

	if withPrices {
		for _, col := range []string{"estimate_cos_price", "actual_cos_price"} {
			prices, err := coercePrices(col, ds.Column(col))
			if err != nil {
				return nil, err
			}
			for i, p := range prices {
				if col == "estimate_cos_price" {
					orders[i].EstimatePrice = p
				} else {
					orders[i].ActualPrice = p
				}
			}
		}
	}
	if withTimes {
		fill("order_time", func(i int, v string) { orders[i].OrderTime = ParseDate(v) })
		fill("finish_time", func(i int, v string) { orders[i].FinishTime = ParseDate(v) })
	}
	return orders, nil
}

// cleanCell 归一化单元格取值，gota 对缺失值会给出 "NaN" 字面量
func cleanCell(v string) string {
	s := strings.TrimSpace(v)
	if s == "NaN" {
		return ""
	}
	return s
}

// coercePrices 将金额列转换为数值。空值和无法解析的值按缺失处理（不参与求和）；
// 若整列都转换失败（且存在非空值），说明该列根本不是金额数据，返回 NumericCoercionError。
func coercePrices(column string, values []string) ([]decimal.NullDecimal, error) {
	out := make([]decimal.NullDecimal, len(values))
	nonEmpty := 0
	parsed := 0

	for i, raw := range values {
		s := cleanCell(raw)
		s = strings.ReplaceAll(s, ",", "")
		if s == "" || strings.EqualFold(s, "nan") || strings.EqualFold(s, "null") {
			continue
		}
		nonEmpty++
		d, err := decimal.NewFromString(s)
		if err != nil {
			continue
		}
		out[i] = decimal.NullDecimal{Decimal: d, Valid: true}
		parsed++
	}

	if nonEmpty > 0 && parsed == 0 {
		return nil, &NumericCoercionError{Column: column}
	}
	return out, nil
}
