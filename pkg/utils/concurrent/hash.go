package concurrent

import (
	"hash/fnv"
)

// HashString 针对 string 类型的标准 FNV-1a 哈希算法
// 分布均匀,用作 Map 的默认分片函数
func HashString(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}
