package sftp

import "time"

// ProgressSample 某一时刻传输指标的不可变快照
// 引擎在每个非空分块后生成一份交给观察者,自身不保留
type ProgressSample struct {
	BytesTransferred int64         // 累计已传输字节数,单次传输内单调不减
	TotalBytes       int64         // 传输开始时确定,0 表示未知
	SpeedKbps        float64       // 派生速度,恒 >= 0
	ETA              time.Duration // 派生剩余时间,恒 >= 0
	Elapsed          time.Duration // 自循环开始的墙钟时间
}

// sampleAt 按累计字节与耗时派生一份快照
// 速度为 0 时 ETA 为 0
func sampleAt(transferred, total int64, elapsed time.Duration) ProgressSample {
	s := ProgressSample{
		BytesTransferred: transferred,
		TotalBytes:       total,
		Elapsed:          elapsed,
	}
	if secs := elapsed.Seconds(); secs > 0 {
		s.SpeedKbps = float64(transferred) / 1024 / secs
	}
	if s.SpeedKbps > 0 {
		estimated := float64(total) / 1024 / s.SpeedKbps
		if remaining := estimated - elapsed.Seconds(); remaining > 0 {
			s.ETA = time.Duration(remaining * float64(time.Second))
		}
	}
	return s
}

// Stream 有界进度队列。拷贝循环非阻塞地发布样本,
// 队列满时丢弃最旧样本,保证慢观察者不拖慢循环
type Stream struct {
	ch chan ProgressSample
}

func NewStream(capacity int) *Stream {
	if capacity <= 0 {
		capacity = 16
	}
	return &Stream{ch: make(chan ProgressSample, capacity)}
}

// Samples 消费端读取样本的通道
func (s *Stream) Samples() <-chan ProgressSample {
	return s.ch
}

// Callback 返回可直接传给引擎的回调
func (s *Stream) Callback() ProgressCallback {
	return s.publish
}

// Close 传输结束后由生产侧关闭,通知消费端收尾
func (s *Stream) Close() {
	close(s.ch)
}

func (s *Stream) publish(p ProgressSample) {
	for {
		select {
		case s.ch <- p:
			return
		default:
		}
		// 队列已满,丢一个最旧的再试
		select {
		case <-s.ch:
		default:
		}
	}
}
