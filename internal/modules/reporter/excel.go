package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"urlsucker/internal/core/logger"
	"urlsucker/internal/core/types"
)

// GenerateDiscoveryExcel 生成 Excel 报告
func GenerateDiscoveryExcel(rows []types.Row, outputPath string) (string, error) {
	logger.Debugf("开始生成 Excel 报告: %s", outputPath)

	headers := []string{"Host", "Path", "Source JS File"}

	file := excelize.NewFile()
	sheetName := "URLs"
	file.SetSheetName(file.GetSheetName(0), sheetName)

	for idx, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(idx+1, 1)
		file.SetCellValue(sheetName, cell, header)
	}

	for rowIdx, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, rowIdx+2)
		values := []interface{}{row.Host, row.Path, row.SourceFile}
		file.SetSheetRow(sheetName, cell, &values)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return "", fmt.Errorf("创建输出目录失败: %w", err)
	}

	if err := file.SaveAs(outputPath); err != nil {
		return "", fmt.Errorf("保存 Excel 报告失败: %w", err)
	}

	logger.Infof("Excel Report: %s", outputPath)
	return outputPath, nil
}
