package export_service

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"project-analysis/services/analysis_service"
)

// 完整报告的工作表名
const (
	SheetDetail     = "详细分析"
	SheetRawData    = "原始数据"
	SheetProjectSum = "项目汇总"
	SheetSummary    = "统计汇总"
)

// BuildCompleteWorkbook 生成完整分析的Excel报告。
// 包含详细分析、原始数据和统计汇总，使用项目编号时追加项目汇总表。
func BuildCompleteWorkbook(report *analysis_service.CompleteReport, ds *analysis_service.Dataset) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := writeSheet(f, SheetDetail, CompleteTable(report)); err != nil {
		return nil, err
	}
	if err := writeSheet(f, SheetRawData, RawTable(ds)); err != nil {
		return nil, err
	}
	if report.UsedProjectCode {
		if err := writeSheet(f, SheetProjectSum, ProjectSummaryTable(report)); err != nil {
			return nil, err
		}
	}
	if err := writeSheet(f, SheetSummary, SummaryStatsTable(report)); err != nil {
		return nil, err
	}

	// excelize 新建文件自带 Sheet1，全部数据写完后移除
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	if idx, err := f.GetSheetIndex(SheetDetail); err == nil {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

// writeSheet 新建工作表并写入表头和数据行
func writeSheet(f *excelize.File, name string, table Table) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("创建工作表 %s 失败: %w", name, err)
	}
	header := make([]interface{}, len(table.Header))
	for i, h := range table.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}
	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return err
		}
	}
	return nil
}
