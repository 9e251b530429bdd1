package interfaces

import "urlsucker/internal/core/types"

// ===========================================
// 核心业务接口定义
// ===========================================

// URLExtractorInterface URL候选提取器接口
// 负责从响应文本中挖出URL形态的字符串字面量
type URLExtractorInterface interface {
	// 提取候选字符串，greedy控制贪婪/保守两种策略
	Extract(text string, greedy bool) []string
}

// URLResolverInterface URL解析器接口
// 负责把候选字符串补全为绝对URL
type URLResolverInterface interface {
	// 解析候选，返回错误表示该候选被丢弃
	Resolve(candidate string, ctx *types.RequestContext) (string, error)
}

// DiscoveryStoreInterface 发现结果存储接口
// 负责按origin分组的去重存储和快照查询
type DiscoveryStoreInterface interface {
	// 插入一条发现记录，返回是否为新条目
	Insert(origin string, entry types.DiscoveredURL) bool
	// 原子清空全部结果
	Clear()
	// 过滤后的有序快照
	Snapshot(filter string) []types.Row
	// 当前条目总数
	Count() int
}

// HostActionsInterface 主机动作边界接口
// 把视图层选中的结果行转交给重放/整理动作，失败只记录日志
type HostActionsInterface interface {
	SendToReplay(host, path string)
	SendToOrganizer(host, path string)
}

// ===========================================
// 数据结构别名
// ===========================================

// DiscoveredURL 已发现URL
type DiscoveredURL = types.DiscoveredURL

// Row 快照投影行
type Row = types.Row

// RequestContext 请求上下文
type RequestContext = types.RequestContext
