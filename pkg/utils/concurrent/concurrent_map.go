package concurrent

import (
	"maps"
	"sync"

	"gopkg.in/yaml.v3"
)

// 默认分片数量,建议为 2 的幂
const DefaultShardCount = 32

// Map 分片加锁的并发 Map
// K: 键的类型 (必须可比较), V: 值的类型
type Map[K comparable, V any] struct {
	shards     []*shard[K, V]
	hashFunc   func(K) uint32 // 计算 Key 哈希,决定分片位置
	shardCount uint32
}

// shard 单个分片,拥有自己的读写锁和原生 map
type shard[K comparable, V any] struct {
	items map[K]V
	sync.RWMutex
}

// Option 定义配置函数的类型
type Option[K comparable, V any] func(*Map[K, V])

// WithShardCount 自定义分片数量
func WithShardCount[K comparable, V any](count uint32) Option[K, V] {
	return func(m *Map[K, V]) {
		if count > 0 {
			m.shardCount = count
		}
	}
}

// NewMap 创建并发 Map
// hashFunc: 将 Key 转换为 uint32 的哈希函数
func NewMap[K comparable, V any](hashFunc func(K) uint32, opts ...Option[K, V]) *Map[K, V] {
	m := &Map[K, V]{
		shardCount: DefaultShardCount,
		hashFunc:   hashFunc,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.shards = make([]*shard[K, V], m.shardCount)
	for i := range m.shardCount {
		m.shards[i] = &shard[K, V]{items: make(map[K]V)}
	}
	return m
}

func (m *Map[K, V]) getShard(key K) *shard[K, V] {
	return m.shards[m.hashFunc(key)%m.shardCount]
}

// Set 写入键值对
func (m *Map[K, V]) Set(key K, value V) {
	sh := m.getShard(key)
	sh.Lock()
	defer sh.Unlock()
	sh.items[key] = value
}

// Get 读取键值对
func (m *Map[K, V]) Get(key K) (V, bool) {
	sh := m.getShard(key)
	sh.RLock()
	defer sh.RUnlock()
	val, ok := sh.items[key]
	return val, ok
}

// Remove 删除键值对
func (m *Map[K, V]) Remove(key K) {
	sh := m.getShard(key)
	sh.Lock()
	defer sh.Unlock()
	delete(sh.items, key)
}

// Count 元素总数 (高并发下是近似值)
func (m *Map[K, V]) Count() int {
	count := 0
	for _, sh := range m.shards {
		sh.RLock()
		count += len(sh.items)
		sh.RUnlock()
	}
	return count
}

// Keys 获取所有的 Key
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0)
	for _, sh := range m.shards {
		sh.RLock()
		for k := range sh.items {
			keys = append(keys, k)
		}
		sh.RUnlock()
	}
	return keys
}

// IterCb 遍历所有键值对,回调返回 false 时提前结束
// 一次只锁一个分片,遍历期间其他分片仍可读写
func (m *Map[K, V]) IterCb(fn func(key K, v V) bool) {
	for _, sh := range m.shards {
		sh.RLock()
		for k, v := range sh.items {
			if !fn(k, v) {
				sh.RUnlock()
				return
			}
		}
		sh.RUnlock()
	}
}

// Clear 清空所有分片
func (m *Map[K, V]) Clear() {
	for _, sh := range m.shards {
		sh.Lock()
		sh.items = make(map[K]V)
		sh.Unlock()
	}
}

// snapshot 把当前状态复制成一个普通 map
func (m *Map[K, V]) snapshot() map[K]V {
	tmp := make(map[K]V)
	for _, sh := range m.shards {
		sh.RLock()
		maps.Copy(tmp, sh.items)
		sh.RUnlock()
	}
	return tmp
}

// MarshalYAML 实现 yaml.Marshaler 接口
func (m *Map[K, V]) MarshalYAML() (interface{}, error) {
	return m.snapshot(), nil
}

// UnmarshalYAML 实现 yaml.Unmarshaler 接口
// 要求 m 已由 NewMap 初始化 (拥有 shards 和 hashFunc)
func (m *Map[K, V]) UnmarshalYAML(value *yaml.Node) error {
	tmp := make(map[K]V)
	if err := value.Decode(&tmp); err != nil {
		return err
	}
	for k, v := range tmp {
		m.Set(k, v)
	}
	return nil
}
