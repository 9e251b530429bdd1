package miner

import (
	"fmt"
	"sync"
	"testing"

	"urlsucker/internal/core/types"
)

func TestStore_InsertDedup(t *testing.T) {
	store := NewStore()
	origin := "https://a.test"

	entry := types.DiscoveredURL{URL: "https://a.test/api", SourceFile: "app.js"}
	if !store.Insert(origin, entry) {
		t.Error("首次插入预期返回true")
	}
	if store.Insert(origin, entry) {
		t.Error("重复插入预期返回false")
	}
	if count := store.Count(); count != 1 {
		t.Errorf("相同(url, sourceFile)预期合并为1条, 实际: %d", count)
	}

	// 同一URL来自不同源文件算两条
	store.Insert(origin, types.DiscoveredURL{URL: "https://a.test/api", SourceFile: "vendor.js"})
	if count := store.Count(); count != 2 {
		t.Errorf("不同sourceFile预期2条, 实际: %d", count)
	}
}

func TestStore_SnapshotOrder(t *testing.T) {
	store := NewStore()

	store.Insert("https://b.test", types.DiscoveredURL{URL: "https://b.test/z", SourceFile: "main.js"})
	store.Insert("https://a.test", types.DiscoveredURL{URL: "https://a.test/api", SourceFile: "b.js"})
	store.Insert("https://a.test", types.DiscoveredURL{URL: "https://a.test/api", SourceFile: "a.js"})

	rows := store.Snapshot("")
	if len(rows) != 3 {
		t.Fatalf("预期3行, 实际: %d", len(rows))
	}

	// url升序, 相同url按sourceFile升序
	if rows[0].SourceFile != "a.js" || rows[1].SourceFile != "b.js" {
		t.Errorf("排序错误: %+v", rows)
	}
	if rows[2].Host != "https://b.test" || rows[2].Path != "/z" {
		t.Errorf("末行预期b.test/z, 实际: %+v", rows[2])
	}
}

func TestStore_SnapshotFilter(t *testing.T) {
	store := NewStore()

	store.Insert("https://a.test", types.DiscoveredURL{URL: "https://a.test/admin/login", SourceFile: "app.js"})
	store.Insert("https://a.test", types.DiscoveredURL{URL: "https://a.test/static/img", SourceFile: "app.js"})

	testCases := []struct {
		name     string
		filter   string
		expected int
	}{
		{"空过滤返回全部", "", 2},
		{"按path过滤", "admin", 1},
		{"过滤大小写不敏感", "ADMIN", 1},
		{"按sourceFile过滤", "app.js", 2},
		{"无命中", "nomatch", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rows := store.Snapshot(tc.filter)
			if len(rows) != tc.expected {
				t.Errorf("filter=%q, 预期: %d行, 实际: %d行", tc.filter, tc.expected, len(rows))
			}
		})
	}
}

func TestStore_SnapshotDerivesRows(t *testing.T) {
	store := NewStore()

	store.Insert("https://a.test", types.DiscoveredURL{URL: "https://a.test:8443/p?x=1", SourceFile: "app.js"})
	store.Insert("https://c.test", types.DiscoveredURL{URL: "https://c.test", SourceFile: "app.js"})
	store.Insert("unknown", types.DiscoveredURL{URL: "/orphan/path", SourceFile: "app.js"})

	rows := store.Snapshot("")
	if len(rows) != 3 {
		t.Fatalf("预期3行, 实际: %d", len(rows))
	}

	// 缺少scheme的URL降级为unknown行, 不丢弃
	if rows[0].Host != "unknown" || rows[0].Path != "/orphan/path" {
		t.Errorf("降级行错误: %+v", rows[0])
	}

	// host不含端口, path带query
	if rows[1].Host != "https://a.test" || rows[1].Path != "/p?x=1" {
		t.Errorf("派生行错误: %+v", rows[1])
	}

	// 无路径的URL保持空path, 不补斜杠
	if rows[2].Host != "https://c.test" || rows[2].Path != "" {
		t.Errorf("空路径行错误: %+v", rows[2])
	}
}

// 降级行的检索文本包含派生host和path, 过滤unknown能命中
func TestStore_SnapshotFilterMatchesDegradedRows(t *testing.T) {
	store := NewStore()

	store.Insert("unknown", types.DiscoveredURL{URL: "/orphan/path", SourceFile: "app.js"})
	store.Insert("https://a.test", types.DiscoveredURL{URL: "https://a.test/api", SourceFile: "app.js"})

	rows := store.Snapshot("unknown")
	if len(rows) != 1 {
		t.Fatalf("filter=unknown 预期命中1行降级行, 实际: %d行", len(rows))
	}
	if rows[0].Host != "unknown" || rows[0].Path != "/orphan/path" {
		t.Errorf("命中行错误: %+v", rows[0])
	}

	// 按原始路径过滤同样命中
	if rows := store.Snapshot("orphan"); len(rows) != 1 {
		t.Errorf("filter=orphan 预期命中1行, 实际: %d行", len(rows))
	}
}

func TestStore_Clear(t *testing.T) {
	store := NewStore()
	store.Insert("https://a.test", types.DiscoveredURL{URL: "https://a.test/x", SourceFile: "a.js"})

	store.Clear()
	if count := store.Count(); count != 0 {
		t.Errorf("清空后预期0条, 实际: %d", count)
	}
	if rows := store.Snapshot(""); len(rows) != 0 {
		t.Errorf("清空后快照预期为空, 实际: %d行", len(rows))
	}
}

func TestStore_ConcurrentInsert(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			origin := fmt.Sprintf("https://h%d.test", worker%4)
			for i := 0; i < 100; i++ {
				store.Insert(origin, types.DiscoveredURL{
					URL:        fmt.Sprintf("%s/path/%d", origin, i),
					SourceFile: "app.js",
				})
			}
		}(worker)
	}
	wg.Wait()

	// 4个origin各100条去重后的URL
	if count := store.Count(); count != 400 {
		t.Errorf("预期400条, 实际: %d", count)
	}
	if origins := store.Origins(); len(origins) != 4 {
		t.Errorf("预期4个origin, 实际: %v", origins)
	}
}
