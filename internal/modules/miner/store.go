package miner

import (
	"net/url"
	"sort"
	"strings"
	"sync"

	"urlsucker/internal/core/interfaces"
	"urlsucker/internal/core/logger"
	"urlsucker/internal/core/types"
)

// ===========================================
// 发现结果存储
// ===========================================

// originSet 单个origin下的去重集合
type originSet struct {
	mu      sync.RWMutex
	entries map[types.DiscoveredURL]struct{}
}

func newOriginSet() *originSet {
	return &originSet{entries: make(map[types.DiscoveredURL]struct{})}
}

// insert 插入一条记录，返回是否为新条目
func (s *originSet) insert(entry types.DiscoveredURL) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[entry]; exists {
		return false
	}
	s.entries[entry] = struct{}{}
	return true
}

func (s *originSet) snapshot() []types.DiscoveredURL {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]types.DiscoveredURL, 0, len(s.entries))
	for entry := range s.entries {
		result = append(result, entry)
	}
	return result
}

func (s *originSet) size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Store 以origin为键的并发安全发现结果存储
// 顶层读写锁只保护映射表本身，插入竞争被限制在单个origin内部，
// 不同origin的写入互不串行
type Store struct {
	mu      sync.RWMutex
	origins map[string]*originSet
}

var _ interfaces.DiscoveryStoreInterface = (*Store)(nil)

// NewStore 创建空存储
func NewStore() *Store {
	return &Store{origins: make(map[string]*originSet)}
}

// Insert 插入一条发现记录，重复的 url+sourceFile 自动合并
// 返回该记录是否为新条目
func (st *Store) Insert(origin string, entry types.DiscoveredURL) bool {
	st.mu.RLock()
	set := st.origins[origin]
	st.mu.RUnlock()

	if set == nil {
		st.mu.Lock()
		set = st.origins[origin]
		if set == nil {
			set = newOriginSet()
			st.origins[origin] = set
		}
		st.mu.Unlock()
	}

	if !set.insert(entry) {
		return false
	}
	logger.Debugf("新发现: [%s] %s", origin, entry)
	return true
}

// Clear 原子清空全部结果
// 清空瞬间并发执行的快照会看到清空前或清空后的完整状态，不会出现撕裂视图
func (st *Store) Clear() {
	st.mu.Lock()
	st.origins = make(map[string]*originSet)
	st.mu.Unlock()
	logger.Debug("发现结果已清空")
}

// Count 当前条目总数
func (st *Store) Count() int {
	st.mu.RLock()
	sets := make([]*originSet, 0, len(st.origins))
	for _, set := range st.origins {
		sets = append(sets, set)
	}
	st.mu.RUnlock()

	total := 0
	for _, set := range sets {
		total += set.size()
	}
	return total
}

// Origins 当前全部origin键（排序后）
func (st *Store) Origins() []string {
	st.mu.RLock()
	keys := make([]string, 0, len(st.origins))
	for origin := range st.origins {
		keys = append(keys, origin)
	}
	st.mu.RUnlock()

	sort.Strings(keys)
	return keys
}

// Snapshot 只读投影：展开全部条目，按url升序、sourceFile次序排序，
// 再按filter做大小写不敏感的子串过滤。不修改存储本身
func (st *Store) Snapshot(filter string) []types.Row {
	st.mu.RLock()
	sets := make([]*originSet, 0, len(st.origins))
	for _, set := range st.origins {
		sets = append(sets, set)
	}
	st.mu.RUnlock()

	var all []types.DiscoveredURL
	for _, set := range sets {
		all = append(all, set.snapshot()...)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].URL != all[j].URL {
			return all[i].URL < all[j].URL
		}
		return all[i].SourceFile < all[j].SourceFile
	})

	filter = strings.ToLower(filter)
	rows := make([]types.Row, 0, len(all))
	for _, entry := range all {
		row, searchText := deriveRow(entry)
		if filter != "" && !strings.Contains(searchText, filter) {
			continue
		}
		rows = append(rows, row)
	}

	return rows
}

// deriveRow 从存储的URL派生视图行和检索文本
// 缺少scheme/host时降级为 unknown 行，不丢弃记录；
// 只有彻底无法解析的URL才把检索文本限定在 url+sourceFile
func deriveRow(entry types.DiscoveredURL) (types.Row, string) {
	u, err := url.Parse(entry.URL)
	if err != nil {
		row := types.Row{
			Host:       "unknown",
			Path:       entry.URL,
			SourceFile: entry.SourceFile,
		}
		return row, strings.ToLower(entry.URL + " " + entry.SourceFile)
	}

	var row types.Row
	if u.Scheme == "" || u.Hostname() == "" {
		row = types.Row{
			Host:       "unknown",
			Path:       entry.URL,
			SourceFile: entry.SourceFile,
		}
	} else {
		path := u.Path
		if u.RawQuery != "" {
			path += "?" + u.RawQuery
		}
		row = types.Row{
			Host:       u.Scheme + "://" + u.Hostname(),
			Path:       path,
			SourceFile: entry.SourceFile,
		}
	}

	searchText := strings.ToLower(entry.URL + " " + entry.SourceFile + " " + row.Host + " " + row.Path)
	return row, searchText
}
