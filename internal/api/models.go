package api

// APIResponse 标准响应结构
type APIResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ConfigRequest 运行时配置更新请求
type ConfigRequest struct {
	Greedy *bool   `json:"greedy,omitempty"`
	Search *string `json:"search,omitempty"`
}

// ConfigResponse 运行时配置查询响应
type ConfigResponse struct {
	Enabled bool   `json:"enabled"`
	Greedy  bool   `json:"greedy"`
	Search  string `json:"search"`
	Total   int    `json:"total"`
}

// ForwardRequest 转发请求, host+path对应视图中的一行
type ForwardRequest struct {
	Host string `json:"host"`
	Path string `json:"path"`
}

// OrganizerRequest 归档请求, host+path与url二选一
type OrganizerRequest struct {
	Host string `json:"host,omitempty"`
	Path string `json:"path,omitempty"`
	URL  string `json:"url,omitempty"`
}

// ExportRequest 导出请求, 按扩展名选择格式
type ExportRequest struct {
	Path   string `json:"path"`
	Filter string `json:"filter,omitempty"`
}

// URLListResponse 发现结果列表响应
type URLListResponse struct {
	Total  int         `json:"total"`
	Filter string      `json:"filter"`
	URLs   interface{} `json:"urls"`
}
