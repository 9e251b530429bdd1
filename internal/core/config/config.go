package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"urlsucker/internal/core/logger"
)

// Config 全局配置结构体
type Config struct {
	Server ServerConfig `yaml:"server"`
	API    APIConfig    `yaml:"api"`
	Hosts  HostsConfig  `yaml:"hosts"`
	Miner  MinerConfig  `yaml:"miner"`
	Replay ReplayConfig `yaml:"replay"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig 代理服务器配置
type ServerConfig struct {
	Listen          string `yaml:"listen"`
	StreamLargebody int64  `yaml:"stream_largebody"` // 超过该字节数的响应体走流式转发，不进入插件
	SSLInsecure     bool   `yaml:"ssl_insecure"`
}

// APIConfig 结果查询API配置
type APIConfig struct {
	Enable bool   `yaml:"enable"`
	Listen string `yaml:"listen"`
}

// HostsConfig 主机过滤配置
type HostsConfig struct {
	Allow  []string `yaml:"allow"`
	Reject []string `yaml:"reject"`
}

// MinerConfig URL挖掘配置
type MinerConfig struct {
	Greedy      bool `yaml:"greedy"`        // 默认提取策略
	MaxBodySize int  `yaml:"max_body_size"` // 提取前的响应体截断上限（字节）
}

// ReplayConfig 重放客户端配置
type ReplayConfig struct {
	Timeout    int      `yaml:"timeout"` // 秒
	UserAgents []string `yaml:"user_agents"`
}

// LogConfig 日志配置结构体
type LogConfig struct {
	Level       string `yaml:"level"`
	ColorOutput bool   `yaml:"color_output"`
}

// 全局配置实例
var GlobalConfig *Config

// DefaultConfig 内置默认配置
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Listen:          ":9080",
			StreamLargebody: 1024 * 1024 * 32,
			SSLInsecure:     true,
		},
		API: APIConfig{
			Enable: true,
			Listen: ":9081",
		},
		Miner: MinerConfig{
			Greedy:      true,
			MaxBodySize: 2 * 1024 * 1024,
		},
		Replay: ReplayConfig{
			Timeout: 10,
		},
		Log: LogConfig{
			Level:       "info",
			ColorOutput: true,
		},
	}
}

// LoadConfig 加载配置文件
func LoadConfig(configPath string) (*Config, error) {
	logger.Debug("[config.go] 开始加载配置文件: ", configPath)

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %v", err)
	}

	// 在默认值之上解析YAML，缺省字段保持默认
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %v", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("配置验证失败: %v", err)
	}

	GlobalConfig = config
	logger.Debug("[config.go] 配置文件加载成功")
	return config, nil
}

// validateConfig 验证配置文件
func validateConfig(config *Config) error {
	if config.Server.Listen == "" {
		return fmt.Errorf("代理监听地址不能为空")
	}

	if config.API.Enable && config.API.Listen == "" {
		return fmt.Errorf("API监听地址不能为空")
	}

	if config.Miner.MaxBodySize < 0 {
		return fmt.Errorf("响应体上限不能为负数")
	}

	if config.Replay.Timeout <= 0 {
		return fmt.Errorf("重放超时时间必须大于0")
	}

	return nil
}

// InitConfig 初始化配置（自动查找配置文件，找不到时使用内置默认值）
func InitConfig() error {
	configPaths := []string{
		"config.yaml",
		"./configs/config.yaml",
	}

	for _, configPath := range configPaths {
		if _, err := os.Stat(configPath); err == nil {
			_, err := LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("加载配置文件 %s 失败: %v", configPath, err)
			}
			return nil
		}
	}

	logger.Debug("[config.go] 未找到配置文件，使用内置默认配置")
	GlobalConfig = DefaultConfig()
	return nil
}

// GetConfig 获取全局配置
func GetConfig() *Config {
	if GlobalConfig == nil {
		GlobalConfig = DefaultConfig()
	}
	return GlobalConfig
}

// GetServerConfig 获取代理服务器配置
func GetServerConfig() *ServerConfig {
	return &GetConfig().Server
}

// GetAPIConfig 获取API配置
func GetAPIConfig() *APIConfig {
	return &GetConfig().API
}

// GetHostsConfig 获取主机配置
func GetHostsConfig() *HostsConfig {
	return &GetConfig().Hosts
}

// GetMinerConfig 获取挖掘配置
func GetMinerConfig() *MinerConfig {
	return &GetConfig().Miner
}

// GetReplayConfig 获取重放配置
func GetReplayConfig() *ReplayConfig {
	return &GetConfig().Replay
}

// GetLogConfig 获取日志配置
func GetLogConfig() *LogConfig {
	return &GetConfig().Log
}

// IsHostAllowed 检查主机是否被允许
func IsHostAllowed(host string) bool {
	config := GetHostsConfig()

	// 拒绝列表优先
	for _, reject := range config.Reject {
		if matchPattern(host, reject) {
			return false
		}
	}

	// 没有允许列表时默认放行
	if len(config.Allow) == 0 {
		return true
	}

	for _, allow := range config.Allow {
		if matchPattern(host, allow) {
			return true
		}
	}

	return false
}

// matchPattern 简单的模式匹配（支持通配符*）
func matchPattern(text, pattern string) bool {
	if pattern == "*" {
		return true
	}

	if !strings.Contains(pattern, "*") {
		return text == pattern
	}

	if strings.HasPrefix(pattern, "*") && strings.HasSuffix(pattern, "*") {
		// *example*
		middle := pattern[1 : len(pattern)-1]
		return strings.Contains(text, middle)
	} else if strings.HasPrefix(pattern, "*") {
		// *example
		return strings.HasSuffix(text, pattern[1:])
	} else if strings.HasSuffix(pattern, "*") {
		// example*
		return strings.HasPrefix(text, pattern[:len(pattern)-1])
	}

	return text == pattern
}
