package sftp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleAt(t *testing.T) {
	tests := []struct {
		name        string
		transferred int64
		total       int64
		elapsed     time.Duration
		wantSpeed   float64
		wantETA     time.Duration
	}{
		{
			name:        "零耗时速度为零",
			transferred: 4096,
			total:       8192,
			elapsed:     0,
			wantSpeed:   0,
			wantETA:     0,
		},
		{
			name:        "匀速传输到一半",
			transferred: 2048,
			total:       4096,
			elapsed:     2 * time.Second,
			wantSpeed:   1, // 2 KiB / 2s
			wantETA:     2 * time.Second,
		},
		{
			name:        "超过预估总量时剩余时间不为负",
			transferred: 8192,
			total:       4096,
			elapsed:     time.Second,
			wantSpeed:   8,
			wantETA:     0,
		},
		{
			name:        "零字节传输",
			transferred: 0,
			total:       4096,
			elapsed:     time.Second,
			wantSpeed:   0,
			wantETA:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := sampleAt(tt.transferred, tt.total, tt.elapsed)
			assert.Equal(t, tt.transferred, s.BytesTransferred)
			assert.Equal(t, tt.total, s.TotalBytes)
			assert.Equal(t, tt.elapsed, s.Elapsed)
			assert.InDelta(t, tt.wantSpeed, s.SpeedKbps, 0.001)
			assert.InDelta(t, float64(tt.wantETA), float64(s.ETA), float64(time.Millisecond))
		})
	}
}

func TestStreamDropsOldestWhenFull(t *testing.T) {
	stream := NewStream(2)
	publish := stream.Callback()

	for i := 1; i <= 5; i++ {
		publish(ProgressSample{BytesTransferred: int64(i)})
	}
	stream.Close()

	var got []int64
	for s := range stream.Samples() {
		got = append(got, s.BytesTransferred)
	}
	// 慢消费者只看到最新的样本,发布侧从不阻塞
	require.Len(t, got, 2)
	assert.Equal(t, []int64{4, 5}, got)
}

func TestStreamDefaultCapacity(t *testing.T) {
	stream := NewStream(0)
	publish := stream.Callback()
	for i := 0; i < 16; i++ {
		publish(ProgressSample{BytesTransferred: int64(i)})
	}
	stream.Close()

	count := 0
	for range stream.Samples() {
		count++
	}
	assert.Equal(t, 16, count)
}
