package useragent

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"urlsucker/internal/core/config"
)

var (
	defaultUserAgents = []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:121.0) Gecko/20100101 Firefox/121.0",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Safari/605.1.15",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 Edg/120.0.0.0",
	}

	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
	rngMu sync.Mutex
)

// DefaultList 返回默认的User-Agent列表副本
func DefaultList() []string {
	result := make([]string, len(defaultUserAgents))
	copy(result, defaultUserAgents)
	return result
}

// GetConfiguredList 返回配置文件中定义的User-Agent列表（已清理空白）
func GetConfiguredList() []string {
	cfg := config.GetReplayConfig()
	if cfg == nil || len(cfg.UserAgents) == 0 {
		return nil
	}

	result := make([]string, 0, len(cfg.UserAgents))
	for _, ua := range cfg.UserAgents {
		clean := strings.TrimSpace(ua)
		if clean != "" {
			result = append(result, clean)
		}
	}

	return result
}

// Pick 随机选取一个User-Agent，配置列表优先
func Pick() string {
	candidates := GetConfiguredList()
	if len(candidates) == 0 {
		candidates = defaultUserAgents
	}

	rngMu.Lock()
	defer rngMu.Unlock()
	return candidates[rng.Intn(len(candidates))]
}
