package httpclient

import (
	"crypto/tls"
	"time"

	"github.com/valyala/fasthttp"
)

// ClientFactory HTTP客户端工厂
type ClientFactory struct {
	defaultTLSConfig *tls.Config
}

// NewClientFactory 创建HTTP客户端工厂
func NewClientFactory() *ClientFactory {
	return &ClientFactory{
		defaultTLSConfig: &tls.Config{
			InsecureSkipVerify: true,
			ServerName:         "",
			MinVersion:         tls.VersionTLS10,
			MaxVersion:         tls.VersionTLS13,
		},
	}
}

// CreateFasthttpClient 创建fasthttp客户端
func (f *ClientFactory) CreateFasthttpClient(clientConfig *Config) *fasthttp.Client {
	if clientConfig == nil {
		clientConfig = DefaultConfig()
	}

	return &fasthttp.Client{
		TLSConfig:           f.defaultTLSConfig,
		ReadTimeout:         clientConfig.Timeout,
		WriteTimeout:        clientConfig.Timeout,
		MaxConnDuration:     30 * time.Second,
		MaxIdleConnDuration: 5 * time.Second,
		MaxConnsPerHost:     100,
	}
}

// 全局工厂实例
var globalFactory = NewClientFactory()

// CreateFasthttpClient 便捷函数：使用全局工厂创建fasthttp客户端
func CreateFasthttpClient(clientConfig *Config) *fasthttp.Client {
	return globalFactory.CreateFasthttpClient(clientConfig)
}
