package forwarder

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	uuid "github.com/satori/go.uuid"
	"github.com/valyala/fasthttp"

	"urlsucker/internal/core/interfaces"
	"urlsucker/internal/core/logger"
	"urlsucker/internal/core/useragent"
	"urlsucker/internal/utils/httpclient"
)

// ===========================================
// Forwarder - 发现结果转发模块
// ===========================================

// ReplayRecord 单次复测记录
type ReplayRecord struct {
	Label      string    `json:"label"`
	URL        string    `json:"url"`
	StatusCode int       `json:"status_code"`
	Error      string    `json:"error,omitempty"`
	Time       time.Time `json:"time"`
}

// OrganizerEntry 待办归档条目
type OrganizerEntry struct {
	ID   string    `json:"id"`
	URL  string    `json:"url"`
	Time time.Time `json:"time"`
}

// Forwarder 把挖掘结果转发到复测或归档的执行器
type Forwarder struct {
	client  *fasthttp.Client
	timeout time.Duration

	mu      sync.Mutex
	replays []ReplayRecord
	entries []OrganizerEntry
}

var _ interfaces.HostActionsInterface = (*Forwarder)(nil)

// NewForwarder 创建转发器
func NewForwarder() *Forwarder {
	clientConfig := httpclient.DefaultConfig()

	return &Forwarder{
		client:  httpclient.CreateFasthttpClient(clientConfig),
		timeout: clientConfig.Timeout,
	}
}

// BuildTargetURL 拼接并校验目标URL
func BuildTargetURL(host, path string) (string, error) {
	target := host + path

	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("目标URL格式错误: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("不支持的协议: %s", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("目标URL缺少主机: %s", target)
	}
	return target, nil
}

// SendToReplay 对目标发起一次GET复测
// 失败只记录不上抛, 转发动作不影响挖掘主流程
func (fw *Forwarder) SendToReplay(host, path string) {
	target, err := BuildTargetURL(host, path)
	if err != nil {
		logger.Errorf("Replay目标无效: %v", err)
		return
	}

	record := ReplayRecord{
		Label: "urlsucker-" + target,
		URL:   target,
		Time:  time.Now(),
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(target)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetUserAgent(useragent.Pick())

	if err := fw.client.DoTimeout(req, resp, fw.timeout); err != nil {
		record.Error = err.Error()
		logger.Errorf("Replay请求失败 [ %s ]: %v", target, err)
	} else {
		record.StatusCode = resp.StatusCode()
		logger.Infof("Sent to Replay: %s [%d]", target, record.StatusCode)
	}

	fw.mu.Lock()
	fw.replays = append(fw.replays, record)
	fw.mu.Unlock()
}

// SendToOrganizer 把目标归档为待办条目
func (fw *Forwarder) SendToOrganizer(host, path string) {
	target, err := BuildTargetURL(host, path)
	if err != nil {
		logger.Errorf("Organizer目标无效: %v", err)
		return
	}

	entry := OrganizerEntry{
		ID:   uuid.NewV4().String(),
		URL:  target,
		Time: time.Now(),
	}

	fw.mu.Lock()
	fw.entries = append(fw.entries, entry)
	fw.mu.Unlock()

	logger.Infof("Sent to Organizer: %s", target)
}

// AddOrganizerNote 直接按URL归档, 供API层手工录入
func (fw *Forwarder) AddOrganizerNote(rawURL string) (OrganizerEntry, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return OrganizerEntry{}, fmt.Errorf("归档URL不能为空")
	}

	entry := OrganizerEntry{
		ID:   uuid.NewV4().String(),
		URL:  trimmed,
		Time: time.Now(),
	}

	fw.mu.Lock()
	fw.entries = append(fw.entries, entry)
	fw.mu.Unlock()

	return entry, nil
}

// ReplayHistory 复测历史副本
func (fw *Forwarder) ReplayHistory() []ReplayRecord {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	out := make([]ReplayRecord, len(fw.replays))
	copy(out, fw.replays)
	return out
}

// OrganizerEntries 归档条目副本
func (fw *Forwarder) OrganizerEntries() []OrganizerEntry {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	out := make([]OrganizerEntry, len(fw.entries))
	copy(out, fw.entries)
	return out
}
