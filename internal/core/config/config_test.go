package config

import "testing"

func TestMatchPattern(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		pattern  string
		expected bool
	}{
		{"精确匹配", "example.com", "example.com", true},
		{"精确不匹配", "example.com", "example.org", false},
		{"全通配", "anything.test", "*", true},
		{"前缀通配", "api.example.com", "*.example.com", true},
		{"前缀通配不匹配", "example.com", "*.example.com", false},
		{"后缀通配", "example.com", "example*", true},
		{"两端通配", "www.example.com", "*example*", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := matchPattern(tc.text, tc.pattern)
			if result != tc.expected {
				t.Errorf("text=%q pattern=%q, 预期: %v, 实际: %v",
					tc.text, tc.pattern, tc.expected, result)
			}
		})
	}
}

func TestIsHostAllowed(t *testing.T) {
	original := GlobalConfig
	defer func() { GlobalConfig = original }()

	t.Run("无允许列表默认放行", func(t *testing.T) {
		GlobalConfig = DefaultConfig()
		if !IsHostAllowed("any.test") {
			t.Error("预期放行")
		}
	})

	t.Run("允许列表限定范围", func(t *testing.T) {
		GlobalConfig = DefaultConfig()
		GlobalConfig.Hosts.Allow = []string{"example.com", "*.example.com"}

		if !IsHostAllowed("example.com") {
			t.Error("预期放行example.com")
		}
		if !IsHostAllowed("api.example.com") {
			t.Error("预期放行子域名")
		}
		if IsHostAllowed("other.test") {
			t.Error("预期拦截范围外主机")
		}
	})

	t.Run("拒绝列表优先", func(t *testing.T) {
		GlobalConfig = DefaultConfig()
		GlobalConfig.Hosts.Allow = []string{"*"}
		GlobalConfig.Hosts.Reject = []string{"internal.example.com"}

		if IsHostAllowed("internal.example.com") {
			t.Error("拒绝列表预期优先于允许列表")
		}
		if !IsHostAllowed("public.example.com") {
			t.Error("未被拒绝的主机预期放行")
		}
	})
}

func TestValidateConfig(t *testing.T) {
	t.Run("默认配置合法", func(t *testing.T) {
		if err := validateConfig(DefaultConfig()); err != nil {
			t.Errorf("预期合法, 实际错误: %v", err)
		}
	})

	t.Run("缺少监听地址", func(t *testing.T) {
		config := DefaultConfig()
		config.Server.Listen = ""
		if err := validateConfig(config); err == nil {
			t.Error("预期报错")
		}
	})

	t.Run("负的响应体上限", func(t *testing.T) {
		config := DefaultConfig()
		config.Miner.MaxBodySize = -1
		if err := validateConfig(config); err == nil {
			t.Error("预期报错")
		}
	})
}
