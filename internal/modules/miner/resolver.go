package miner

import (
	"fmt"
	"net/url"
	"strings"

	"urlsucker/internal/core/interfaces"
	"urlsucker/internal/core/types"
)

// ===========================================
// URL解析器
// ===========================================

// minCandidateLength 短于该长度的候选直接丢弃
const minCandidateLength = 3

// Resolver 把提取到的候选字符串补全为绝对URL
type Resolver struct{}

var _ interfaces.URLResolverInterface = (*Resolver)(nil)

// NewResolver 创建解析器
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve 按候选形态逐分支解析
// 返回错误表示该候选被丢弃；调用方按单条跳过处理，不中断批次
func (r *Resolver) Resolve(candidate string, ctx *types.RequestContext) (string, error) {
	candidate = strings.TrimSpace(candidate)
	if len(candidate) < minCandidateLength {
		return "", fmt.Errorf("候选过短: %q", candidate)
	}

	// 已是绝对URL，原样返回
	if strings.HasPrefix(candidate, "http://") || strings.HasPrefix(candidate, "https://") {
		return candidate, nil
	}

	// 协议相对URL：按发起请求的协议补全，无上下文时默认http
	// 该分支永不失败
	if strings.HasPrefix(candidate, "//") {
		if ctx.Secure() {
			return "https:" + candidate, nil
		}
		return "http:" + candidate, nil
	}

	// 根路径：有上下文时对源站origin做标准路径解析，
	// 无上下文时原样放行（刻意保留的宽松行为，非绝对结果允许通过）
	if strings.HasPrefix(candidate, "/") {
		if ctx == nil {
			return candidate, nil
		}
		return resolveAgainst(ctx.Scheme+"://"+ctx.Host, candidate)
	}

	// 相对路径：必须有上下文，基址取源站根目录
	if ctx == nil {
		return "", fmt.Errorf("相对路径缺少请求上下文: %s", candidate)
	}
	return resolveAgainst(buildBaseURL(ctx), candidate)
}

// resolveAgainst 标准相对URL解析，.和..段会被折叠，query保留
func resolveAgainst(baseURL, candidate string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("基址解析失败: %v", err)
	}

	ref, err := url.Parse(candidate)
	if err != nil {
		return "", fmt.Errorf("候选解析失败: %v", err)
	}

	return base.ResolveReference(ref).String(), nil
}

// buildBaseURL 构造相对路径的解析基址
// 80和443端口一律省略，不区分协议（保持原始行为）
func buildBaseURL(ctx *types.RequestContext) string {
	if ctx.Port == 0 || ctx.Port == 80 || ctx.Port == 443 {
		return ctx.Scheme + "://" + ctx.Host + "/"
	}
	return fmt.Sprintf("%s://%s:%d/", ctx.Scheme, ctx.Host, ctx.Port)
}
