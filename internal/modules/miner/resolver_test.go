package miner

import (
	"testing"

	"urlsucker/internal/core/types"
)

func TestResolver_Resolve(t *testing.T) {
	resolver := NewResolver()

	httpsCtx := &types.RequestContext{Scheme: "https", Host: "a.test", Port: 443, Path: "/app.js"}
	httpCtx := &types.RequestContext{Scheme: "http", Host: "a.test", Port: 80, Path: "/app.js"}
	portCtx := &types.RequestContext{Scheme: "http", Host: "a.test", Port: 8080, Path: "/app.js"}

	testCases := []struct {
		name      string
		candidate string
		ctx       *types.RequestContext
		expected  string
		wantErr   bool
	}{
		{
			name:      "绝对URL原样返回",
			candidate: "https://a.test/x",
			ctx:       httpsCtx,
			expected:  "https://a.test/x",
		},
		{
			name:      "绝对URL无上下文也原样返回",
			candidate: "http://b.test/y",
			ctx:       nil,
			expected:  "http://b.test/y",
		},
		{
			name:      "协议相对URL按https补全",
			candidate: "//a.test/x",
			ctx:       httpsCtx,
			expected:  "https://a.test/x",
		},
		{
			name:      "协议相对URL按http补全",
			candidate: "//a.test/x",
			ctx:       httpCtx,
			expected:  "http://a.test/x",
		},
		{
			name:      "协议相对URL无上下文默认http",
			candidate: "//a.test/x",
			ctx:       nil,
			expected:  "http://a.test/x",
		},
		{
			name:      "根路径对源站解析",
			candidate: "/p/q",
			ctx:       httpsCtx,
			expected:  "https://a.test/p/q",
		},
		{
			name:      "根路径无上下文原样放行",
			candidate: "/p/q",
			ctx:       nil,
			expected:  "/p/q",
		},
		{
			name:      "相对路径带非标准端口",
			candidate: "rel/x",
			ctx:       portCtx,
			expected:  "http://a.test:8080/rel/x",
		},
		{
			name:      "相对路径80端口省略",
			candidate: "rel/x",
			ctx:       httpCtx,
			expected:  "http://a.test/rel/x",
		},
		{
			name:      "相对路径443端口省略",
			candidate: "rel/x",
			ctx:       httpsCtx,
			expected:  "https://a.test/rel/x",
		},
		{
			name:      "相对路径中的点段被折叠",
			candidate: "./a/../b/c",
			ctx:       httpCtx,
			expected:  "http://a.test/b/c",
		},
		{
			name:      "去空白后过短被拒绝",
			candidate: " ab",
			ctx:       httpsCtx,
			wantErr:   true,
		},
		{
			name:      "相对路径无上下文被拒绝",
			candidate: "rel/x",
			ctx:       nil,
			wantErr:   true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := resolver.Resolve(tc.candidate, tc.ctx)
			if tc.wantErr {
				if err == nil {
					t.Errorf("预期拒绝, 实际返回: %q", result)
				}
				return
			}
			if err != nil {
				t.Fatalf("预期成功, 实际错误: %v", err)
			}
			if result != tc.expected {
				t.Errorf("预期: %q, 实际: %q", tc.expected, result)
			}
		})
	}
}

// 解析结果应当幂等：绝对URL再次解析仍是自身
func TestResolver_AbsoluteIdempotent(t *testing.T) {
	resolver := NewResolver()
	ctx := &types.RequestContext{Scheme: "http", Host: "a.test", Port: 80}

	first, err := resolver.Resolve("rel/x", ctx)
	if err != nil {
		t.Fatalf("首次解析失败: %v", err)
	}

	second, err := resolver.Resolve(first, nil)
	if err != nil {
		t.Fatalf("二次解析失败: %v", err)
	}
	if second != first {
		t.Errorf("预期: %q, 实际: %q", first, second)
	}
}
