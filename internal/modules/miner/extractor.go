package miner

import (
	"regexp"
	"strings"

	"urlsucker/internal/core/interfaces"
)

// ===========================================
// URL候选提取器
// ===========================================

// greedyPattern 贪婪模式：引号包裹且至少含一个"/"的字符串字面量
// 召回高、精度低，"a/b" 这类普通字符串也会被捞出来，噪声交给解析阶段丢弃
var greedyPattern = regexp.MustCompile(`"([^"'()\s:;,]+/[^"'()\s:;,]+)"|'([^"'()\s:;,]+/[^"'()\s:;,]+)'`)

// conservativePattern 保守模式：引号或括号包裹、限定在URL常见字符集内
var conservativePattern = regexp.MustCompile(`"([-\w./:?=]+)"|'([-\w./:?=]+)'|\(([-\w./:?=]+)\)`)

// Extractor 从响应文本中提取URL候选字符串
type Extractor struct{}

var _ interfaces.URLExtractorInterface = (*Extractor)(nil)

// NewExtractor 创建提取器
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract 提取候选字符串，按首次出现顺序返回，重复候选只保留一次
// 按行扫描以限制单次正则匹配的开销；跨行的字符串字面量不会命中（已知限制）
func (e *Extractor) Extract(text string, greedy bool) []string {
	pattern := conservativePattern
	if greedy {
		pattern = greedyPattern
	}

	var candidates []string
	seen := make(map[string]struct{})

	for _, line := range strings.Split(text, "\n") {
		for _, match := range pattern.FindAllStringSubmatch(line, -1) {
			for _, group := range match[1:] {
				if group == "" {
					continue
				}
				if _, dup := seen[group]; dup {
					continue
				}
				seen[group] = struct{}{}
				candidates = append(candidates, group)
			}
		}
	}

	return candidates
}
