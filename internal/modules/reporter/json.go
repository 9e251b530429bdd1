package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"urlsucker/internal/core/logger"
	"urlsucker/internal/core/types"
	"urlsucker/internal/modules/forwarder"
)

// DiscoveryResult JSON报告根结构
type DiscoveryResult struct {
	Summary   DiscoverySummary           `json:"summary"`
	URLs      []DiscoveryRowOutput       `json:"urls"`
	Organizer []forwarder.OrganizerEntry `json:"organizer,omitempty"`
}

// DiscoverySummary 报告概要
type DiscoverySummary struct {
	Total       int    `json:"total"`
	Filter      string `json:"filter,omitempty"`
	GeneratedAt string `json:"generated_at"`
}

// DiscoveryRowOutput 单条发现结果
type DiscoveryRowOutput struct {
	Host       string `json:"host"`
	Path       string `json:"path"`
	SourceFile string `json:"source_file"`
}

// GenerateDiscoveryJSON 构建JSON报告数据
func GenerateDiscoveryJSON(rows []types.Row, entries []forwarder.OrganizerEntry, filter string) *DiscoveryResult {
	outputs := make([]DiscoveryRowOutput, 0, len(rows))
	for _, row := range rows {
		outputs = append(outputs, DiscoveryRowOutput{
			Host:       row.Host,
			Path:       row.Path,
			SourceFile: row.SourceFile,
		})
	}

	return &DiscoveryResult{
		Summary: DiscoverySummary{
			Total:       len(rows),
			Filter:      filter,
			GeneratedAt: time.Now().Format(time.RFC3339),
		},
		URLs:      outputs,
		Organizer: entries,
	}
}

// SaveDiscoveryJSON 保存JSON报告到指定路径
func SaveDiscoveryJSON(result *DiscoveryResult, outputPath string) (string, error) {
	if result == nil {
		return "", fmt.Errorf("报告数据为空")
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("JSON序列化失败: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return "", fmt.Errorf("创建输出目录失败: %v", err)
	}

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return "", fmt.Errorf("保存JSON报告失败: %v", err)
	}

	logger.Infof("JSON Report: %s", outputPath)
	return outputPath, nil
}
