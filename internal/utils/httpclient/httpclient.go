package httpclient

import (
	"time"

	"urlsucker/internal/core/config"
	"urlsucker/internal/core/useragent"
)

// ===========================================
// 配置结构
// ===========================================

// Config HTTP客户端配置结构
type Config struct {
	Timeout       time.Duration // 请求超时时间
	UserAgent     string        // User-Agent
	SkipTLSVerify bool          // 跳过TLS证书验证
	TLSTimeout    time.Duration // TLS握手超时
}

// DefaultConfig 获取默认HTTP客户端配置
func DefaultConfig() *Config {
	ua := useragent.Pick()
	if ua == "" {
		ua = "urlsucker-HTTPClient/1.0"
	}

	timeout := 10 * time.Second
	if replayConfig := config.GetReplayConfig(); replayConfig != nil && replayConfig.Timeout > 0 {
		timeout = time.Duration(replayConfig.Timeout) * time.Second
	}

	return &Config{
		Timeout:       timeout,
		UserAgent:     ua,
		SkipTLSVerify: true,            // 代理复测场景常见自签证书
		TLSTimeout:    5 * time.Second, // TLS握手超时
	}
}
