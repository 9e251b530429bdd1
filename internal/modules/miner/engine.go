package miner

import (
	"net/url"
	"strings"

	"urlsucker/internal/core/config"
	"urlsucker/internal/core/interfaces"
	"urlsucker/internal/core/logger"
	"urlsucker/internal/core/types"
)

// ===========================================
// URL挖掘引擎 - 流量摄取主流程
// ===========================================

// IngestInput 单次摄取的输入
type IngestInput struct {
	Body        string                // 响应体(已解压)
	ContentType string                // 响应Content-Type头
	RequestURL  string                // 触发响应的请求URL
	Context     *types.RequestContext // 请求上下文, 可为nil
	Greedy      bool                  // 是否启用贪婪提取
}

// Engine URL挖掘引擎
// 串联分类、解码、提取、解析、入库各阶段
// 提取/解析/存储按接口持有，测试可替换实现
type Engine struct {
	classifier  *Classifier
	extractor   interfaces.URLExtractorInterface
	resolver    interfaces.URLResolverInterface
	decoder     *EncodingDetector
	store       interfaces.DiscoveryStoreInterface
	maxBodySize int
}

// NewEngine 创建挖掘引擎
func NewEngine(store interfaces.DiscoveryStoreInterface) *Engine {
	minerConfig := config.GetMinerConfig()

	return &Engine{
		classifier:  NewClassifier(),
		extractor:   NewExtractor(),
		resolver:    NewResolver(),
		decoder:     NewEncodingDetector(),
		store:       store,
		maxBodySize: minerConfig.MaxBodySize,
	}
}

// Ingest 摄取一条响应, 返回新入库的URL数量
func (e *Engine) Ingest(input IngestInput) int {
	// 1. 分类: 只处理JS类响应
	if !e.classifier.IsJSLike(input.ContentType, input.RequestURL) {
		return 0
	}

	body := input.Body
	if body == "" {
		return 0
	}

	// 2. 超大响应截断, 避免正则在大文件上耗尽内存
	if e.maxBodySize > 0 && len(body) > e.maxBodySize {
		logger.Debugf("响应体超过%d字节, 截断处理: %s", e.maxBodySize, input.RequestURL)
		body = body[:e.maxBodySize]
	}

	// 3. 编码归一化
	body = e.decoder.DetectAndConvert(body, input.ContentType)

	sourceFile := DeriveSourceFile(input.RequestURL)

	// 4. 提取 + 解析 + 入库
	inserted := 0
	for _, candidate := range e.extractor.Extract(body, input.Greedy) {
		resolved, err := e.resolver.Resolve(candidate, input.Context)
		if err != nil {
			logger.Debugf("丢弃候选 [ %s ]: %v", candidate, err)
			continue
		}

		entry := types.DiscoveredURL{
			URL:        resolved,
			SourceFile: sourceFile,
		}
		if e.store.Insert(originKey(resolved), entry) {
			inserted++
		}
	}

	if inserted > 0 {
		logger.Debugf("从 [ %s ] 挖掘到 %d 个新URL", input.RequestURL, inserted)
	}
	return inserted
}

// DeriveSourceFile 从请求URL推导来源文件名
// 取最后一个路径段并去掉查询参数, 无法推导时返回unknown
func DeriveSourceFile(requestURL string) string {
	if requestURL == "" {
		return "unknown"
	}

	segment := requestURL
	if idx := strings.LastIndex(segment, "/"); idx >= 0 {
		segment = segment[idx+1:]
	}
	if idx := strings.Index(segment, "?"); idx >= 0 {
		segment = segment[:idx]
	}

	if segment == "" {
		return "unknown"
	}
	return segment
}

// originKey 从已解析URL推导归属来源键
func originKey(resolved string) string {
	u, err := url.Parse(resolved)
	if err != nil || u.Scheme == "" || u.Hostname() == "" {
		return "unknown"
	}
	return u.Scheme + "://" + u.Hostname()
}
