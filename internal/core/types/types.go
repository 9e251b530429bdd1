package types

// ===========================================
// 核心数据结构定义
// ===========================================

// DiscoveredURL 已发现URL的值对象
// url + sourceFile 两个字段共同构成去重键，插入存储后不再修改
type DiscoveredURL struct {
	URL        string `json:"url"`
	SourceFile string `json:"source_file"`
}

// String 字符串表示
func (d DiscoveredURL) String() string {
	return d.URL + " (from: " + d.SourceFile + ")"
}

// Row 快照投影行，视图层按 Host / Path / SourceFile 三列渲染
type Row struct {
	Host       string `json:"host"`
	Path       string `json:"path"`
	SourceFile string `json:"source_file"`
}

// RequestContext 发起请求的上下文信息
// 仅在解析候选URL和派生来源标签时使用，不落库
type RequestContext struct {
	Scheme string // http / https
	Host   string // 不含端口
	Port   int
	Path   string // 完整请求路径（含query）
}

// Secure 发起请求是否走HTTPS；上下文缺失时按非安全处理
func (ctx *RequestContext) Secure() bool {
	return ctx != nil && ctx.Scheme == "https"
}
