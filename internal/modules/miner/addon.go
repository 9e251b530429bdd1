package miner

import (
	"strconv"

	"github.com/lqqyt2423/go-mitmproxy/proxy"
	"go.uber.org/atomic"

	"urlsucker/internal/core/config"
	"urlsucker/internal/core/logger"
	"urlsucker/internal/core/types"
)

// ===========================================
// MinerAddon - 被动流量挖掘插件
// ===========================================

// MinerAddon 被动URL挖掘插件
// 挂载在MITM代理上, 对每条响应做无侵入的观察式提取
type MinerAddon struct {
	proxy.BaseAddon
	engine       *Engine
	store        *Store
	enabled      *atomic.Bool
	greedy       *atomic.Bool
	searchFilter *atomic.String
}

// NewMinerAddon 创建挖掘插件
func NewMinerAddon() *MinerAddon {
	store := NewStore()
	minerConfig := config.GetMinerConfig()

	return &MinerAddon{
		engine:       NewEngine(store),
		store:        store,
		enabled:      atomic.NewBool(true),
		greedy:       atomic.NewBool(minerConfig.Greedy),
		searchFilter: atomic.NewString(""),
	}
}

// Response 响应到达时的被动处理入口
func (ma *MinerAddon) Response(f *proxy.Flow) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("MinerAddon处理响应时发生异常: %v", r)
		}
	}()

	if !ma.enabled.Load() {
		return
	}
	if f == nil || f.Request == nil || f.Request.URL == nil || f.Response == nil {
		return
	}

	host := f.Request.URL.Hostname()
	if !config.IsHostAllowed(host) {
		return
	}

	body, err := f.Response.DecodedBody()
	if err != nil {
		logger.Debugf("响应体解码失败 [ %s ]: %v", f.Request.URL.String(), err)
		return
	}
	if len(body) == 0 {
		return
	}

	inserted := ma.engine.Ingest(IngestInput{
		Body:        string(body),
		ContentType: f.Response.Header.Get("Content-Type"),
		RequestURL:  f.Request.URL.String(),
		Context:     contextFromFlow(f),
		Greedy:      ma.greedy.Load(),
	})

	if inserted > 0 {
		logger.Infof("Record URL: [ %s ] (+%d)", f.Request.URL.String(), inserted)
	}
}

// contextFromFlow 从代理流构建请求上下文
func contextFromFlow(f *proxy.Flow) *types.RequestContext {
	u := f.Request.URL

	port := 0
	if p := u.Port(); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil {
			port = parsed
		}
	}
	if port == 0 {
		if u.Scheme == "https" {
			port = 443
		} else {
			port = 80
		}
	}

	return &types.RequestContext{
		Scheme: u.Scheme,
		Host:   u.Hostname(),
		Port:   port,
		Path:   u.RequestURI(),
	}
}

// ===========================================
// 运行时控制接口
// ===========================================

// Enable 开启挖掘
func (ma *MinerAddon) Enable() {
	ma.enabled.Store(true)
}

// Disable 暂停挖掘
func (ma *MinerAddon) Disable() {
	ma.enabled.Store(false)
}

// IsEnabled 查询挖掘开关
func (ma *MinerAddon) IsEnabled() bool {
	return ma.enabled.Load()
}

// SetGreedy 切换贪婪提取模式, 只影响后续流量
func (ma *MinerAddon) SetGreedy(greedy bool) {
	ma.greedy.Store(greedy)
	logger.Infof("贪婪提取模式: %v", greedy)
}

// IsGreedy 查询当前提取模式
func (ma *MinerAddon) IsGreedy() bool {
	return ma.greedy.Load()
}

// SetSearchFilter 设置当前搜索过滤串
func (ma *MinerAddon) SetSearchFilter(filter string) {
	ma.searchFilter.Store(filter)
}

// GetSearchFilter 查询当前搜索过滤串
func (ma *MinerAddon) GetSearchFilter() string {
	return ma.searchFilter.Load()
}

// Snapshot 按指定过滤串生成有序快照
func (ma *MinerAddon) Snapshot(filter string) []types.Row {
	return ma.store.Snapshot(filter)
}

// CurrentSnapshot 按当前过滤串生成快照
func (ma *MinerAddon) CurrentSnapshot() []types.Row {
	return ma.store.Snapshot(ma.searchFilter.Load())
}

// Clear 清空全部挖掘结果
func (ma *MinerAddon) Clear() {
	ma.store.Clear()
	logger.Info("挖掘结果已清空")
}

// Count 当前入库URL总数
func (ma *MinerAddon) Count() int {
	return ma.store.Count()
}

// GetName 返回插件名称
func (ma *MinerAddon) GetName() string {
	return "MinerAddon"
}

func (ma *MinerAddon) String() string {
	return ma.GetName()
}
