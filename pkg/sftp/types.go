package sftp

import "time"

const (
	// DefaultChunkSize 每次循环读取的分块大小
	DefaultChunkSize = 8 * 1024
	// DefaultStallTimeout 下载侧连续零字节读的最长容忍时间
	DefaultStallTimeout = 30 * time.Second
	// DefaultStallBackoff 零字节读后的重试间隔
	DefaultStallBackoff = 200 * time.Millisecond
	// DefaultOpTimeout 单次下载的整体截止时间
	DefaultOpTimeout = 30 * time.Second
)

// TransferConfig 定义传输引擎的行为参数
type TransferConfig struct {
	ChunkSize    int           // 分块大小
	StallTimeout time.Duration // 停滞判定时间 (仅下载)
	StallBackoff time.Duration // 停滞重试间隔 (仅下载)
	OpTimeout    time.Duration // 整体截止时间 (仅下载, <=0 表示不限制)
}

func DefaultConfig() TransferConfig {
	return TransferConfig{
		ChunkSize:    DefaultChunkSize,
		StallTimeout: DefaultStallTimeout,
		StallBackoff: DefaultStallBackoff,
		OpTimeout:    DefaultOpTimeout,
	}
}

// ProgressCallback 进度回调,每个非空分块写入成功后同步调用一次
// 回调必须廉价且不阻塞,否则会拖慢拷贝循环;
// 需要解耦观察者时请使用 Stream
type ProgressCallback func(ProgressSample)
