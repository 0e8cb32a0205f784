package analysis_service

import (
	"strings"
	"time"
)

// epochSentinel 上游导出工具用 1970 年初填充缺失时间，视为无时间
const epochSentinel = "1/1/1970 08:00:00"

// dateLayouts 按优先级排列的时间格式，先匹配者生效。
// 顺序不能调整："03/04/2024" 这类日期按日/月/年还是月/日/年解释取决于先尝试哪个格式。
var dateLayouts = []string{
	"2/1/2006 15:04:05",
	"2006-01-02 15:04:05",
	"1/2/2006 15:04:05",
	"2/1/2006",
	"2006-01-02",
	"2006/01/02 15:04:05",
}

// ParseDate 解析各种格式的时间字符串。
// 空值、1970 哨兵值、以及所有格式都匹配失败的字符串返回 nil。
func ParseDate(value string) *time.Time {
	s := strings.TrimSpace(value)
	if s == "" || s == "NaN" || s == epochSentinel {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &t
		}
	}
	return nil
}
