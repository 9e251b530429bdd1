package miner

import (
	"testing"

	"urlsucker/internal/core/types"
)

func newTestEngine() (*Engine, *Store) {
	store := NewStore()
	return NewEngine(store), store
}

func TestEngine_IngestPipeline(t *testing.T) {
	engine, store := newTestEngine()

	ctx := &types.RequestContext{Scheme: "https", Host: "shop.test", Port: 443, Path: "/assets/app.js"}
	body := "var api = \"/api/v1/users\";\nloadScript('static/js/vendor.js');"

	inserted := engine.Ingest(IngestInput{
		Body:        body,
		ContentType: "application/javascript",
		RequestURL:  "https://shop.test/assets/app.js?v=2",
		Context:     ctx,
		Greedy:      true,
	})
	if inserted != 2 {
		t.Fatalf("预期入库2条, 实际: %d", inserted)
	}

	rows := store.Snapshot("")
	if len(rows) != 2 {
		t.Fatalf("预期2行, 实际: %d", len(rows))
	}

	expected := []types.Row{
		{Host: "https://shop.test", Path: "/api/v1/users", SourceFile: "app.js"},
		{Host: "https://shop.test", Path: "/static/js/vendor.js", SourceFile: "app.js"},
	}
	for i, want := range expected {
		if rows[i] != want {
			t.Errorf("第%d行预期: %+v, 实际: %+v", i, want, rows[i])
		}
	}
}

func TestEngine_IngestConservativeAbsoluteURL(t *testing.T) {
	engine, store := newTestEngine()

	inserted := engine.Ingest(IngestInput{
		Body:        `var cdn = "https://cdn.test/lib.js";`,
		ContentType: "text/javascript",
		RequestURL:  "https://shop.test/app.js",
		Context:     &types.RequestContext{Scheme: "https", Host: "shop.test", Port: 443},
		Greedy:      false,
	})
	if inserted != 1 {
		t.Fatalf("预期入库1条, 实际: %d", inserted)
	}

	origins := store.Origins()
	if len(origins) != 1 || origins[0] != "https://cdn.test" {
		t.Errorf("预期origin为https://cdn.test, 实际: %v", origins)
	}
}

func TestEngine_IngestSkipsNonJS(t *testing.T) {
	engine, store := newTestEngine()

	inserted := engine.Ingest(IngestInput{
		Body:        `<a href="/link/here">x</a>`,
		ContentType: "text/html",
		RequestURL:  "https://shop.test/index.html",
		Context:     &types.RequestContext{Scheme: "https", Host: "shop.test", Port: 443},
		Greedy:      true,
	})
	if inserted != 0 {
		t.Errorf("HTML响应预期不处理, 实际入库: %d", inserted)
	}
	if count := store.Count(); count != 0 {
		t.Errorf("预期0条, 实际: %d", count)
	}
}

func TestEngine_IngestDuplicateIsNoop(t *testing.T) {
	engine, _ := newTestEngine()

	input := IngestInput{
		Body:        `var api = "/api/v1/users";`,
		ContentType: "application/javascript",
		RequestURL:  "https://shop.test/app.js",
		Context:     &types.RequestContext{Scheme: "https", Host: "shop.test", Port: 443},
		Greedy:      true,
	}

	if inserted := engine.Ingest(input); inserted != 1 {
		t.Fatalf("首次摄取预期1条, 实际: %d", inserted)
	}
	if inserted := engine.Ingest(input); inserted != 0 {
		t.Errorf("重复摄取预期0条, 实际: %d", inserted)
	}
}

// 无上下文时根路径候选原样放行, 入库到unknown来源
func TestEngine_IngestWithoutContext(t *testing.T) {
	engine, store := newTestEngine()

	inserted := engine.Ingest(IngestInput{
		Body:        `var api = "/api/v1/users";`,
		ContentType: "application/javascript",
		RequestURL:  "",
		Context:     nil,
		Greedy:      true,
	})
	if inserted != 1 {
		t.Fatalf("预期入库1条, 实际: %d", inserted)
	}

	rows := store.Snapshot("")
	if len(rows) != 1 {
		t.Fatalf("预期1行, 实际: %d", len(rows))
	}
	if rows[0].Host != "unknown" || rows[0].SourceFile != "unknown" {
		t.Errorf("预期降级为unknown行, 实际: %+v", rows[0])
	}
}

func TestDeriveSourceFile(t *testing.T) {
	testCases := []struct {
		name       string
		requestURL string
		expected   string
	}{
		{"带query的脚本", "https://a.test/assets/app.js?v=2", "app.js"},
		{"无query的脚本", "https://a.test/main.js", "main.js"},
		{"末段为空", "https://a.test/assets/", "unknown"},
		{"URL缺失", "", "unknown"},
		{"无路径分隔符", "app.js", "app.js"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := DeriveSourceFile(tc.requestURL)
			if result != tc.expected {
				t.Errorf("requestURL=%q, 预期: %q, 实际: %q", tc.requestURL, tc.expected, result)
			}
		})
	}
}
