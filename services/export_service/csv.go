package export_service

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// utf8BOM 写在CSV开头，保证Excel直接打开时按UTF-8识别中文
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV 将表格以UTF-8带BOM的CSV写入w
func WriteCSV(w io.Writer, table Table) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(table.Header); err != nil {
		return err
	}
	for _, row := range table.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFileName 生成带时间戳的导出文件名
func ExportFileName(prefix, ext string) string {
	return fmt.Sprintf("%s_%s.%s", prefix, time.Now().Format("20060102_150405"), ext)
}
