package sftp

import (
	"fmt"
	"io"
	"os"
	"time"
)

// 传输引擎:在本地文件与远程 SFTP 流之间做严格顺序的分块拷贝,
// 同时计算吞吐指标、检测停滞、响应协作式取消。
// 上传与下载共享同一个循环骨架,下载额外带停滞检测与整体截止时间。

// Upload 上传单个本地文件到远程路径
// 每个分块边界检查一次令牌;取消时已写入远端的部分字节保持原样
func (s *Session) Upload(localPath, remotePath string, token *Token, onProgress ProgressCallback) Outcome {
	src, err := os.Open(localPath)
	if err != nil {
		return Outcome{Kind: OutcomeIoFailed, Detail: fmt.Sprintf("failed to open local file: %v", err)}
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return Outcome{Kind: OutcomeIoFailed, Detail: fmt.Sprintf("failed to stat local file: %v", err)}
	}

	dst, err := s.sftpClient.Create(remotePath)
	if err != nil {
		return Outcome{Kind: OutcomeIoFailed, Detail: fmt.Sprintf("failed to create remote file: %v", err)}
	}
	defer dst.Close()

	return uploadLoop(src, dst, info.Size(), s.cfg, token, onProgress)
}

// Download 下载单个远程文件到本地路径
// 整个操作与 OpTimeout 赛跑:截止时间先到时通过同一个令牌
// 取消仍在运行的拷贝循环,并以 TimedOut 返回
func (s *Session) Download(remotePath, localPath string, token *Token, onProgress ProgressCallback) Outcome {
	info, err := s.sftpClient.Stat(remotePath)
	if err != nil {
		return Outcome{Kind: OutcomeIoFailed, Detail: fmt.Sprintf("failed to stat remote file: %v", err)}
	}

	src, err := s.sftpClient.Open(remotePath)
	if err != nil {
		return Outcome{Kind: OutcomeIoFailed, Detail: fmt.Sprintf("failed to open remote file: %v", err)}
	}
	defer src.Close()

	dst, err := os.Create(localPath)
	if err != nil {
		return Outcome{Kind: OutcomeIoFailed, Detail: fmt.Sprintf("failed to create local file: %v", err)}
	}
	defer dst.Close()

	if token == nil {
		// 截止时间路径需要一个可取消的令牌
		token = &Token{}
	}

	done := make(chan Outcome, 1)
	go func() {
		done <- downloadLoop(src, dst, info.Size(), s.cfg, token, onProgress)
	}()
	return raceDeadline(done, s.cfg.OpTimeout, token)
}

// raceDeadline 等待拷贝结果或整体截止时间,先到者为准
// 截止时间先到时取消令牌,让循环在下一个分块边界退出,其结果被丢弃
func raceDeadline(done <-chan Outcome, opTimeout time.Duration, token *Token) Outcome {
	var deadline <-chan time.Time
	if opTimeout > 0 {
		timer := time.NewTimer(opTimeout)
		defer timer.Stop()
		deadline = timer.C
	}

	select {
	case outcome := <-done:
		return outcome
	case <-deadline:
		token.Cancel()
		return Outcome{
			Kind:   OutcomeTimedOut,
			Detail: fmt.Sprintf("no data in %d seconds", int(opTimeout.Seconds())),
		}
	}
}

// uploadLoop 上传侧拷贝循环
// 本地源不受网络停滞影响,读到零字节即视为文件结束
func uploadLoop(src io.Reader, dst io.Writer, total int64, cfg TransferConfig, token *Token, onProgress ProgressCallback) Outcome {
	buf := make([]byte, cfg.ChunkSize)
	start := time.Now()
	var transferred int64

	for {
		if !token.Active() {
			return Outcome{Kind: OutcomeCancelled}
		}

		n, err := src.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return Outcome{Kind: OutcomeIoFailed, Detail: fmt.Sprintf("failed to write to remote stream: %v", werr)}
			}
			transferred += int64(n)
			emit(onProgress, transferred, total, time.Since(start))
		}

		if err == io.EOF {
			return Outcome{Kind: OutcomeSuccess}
		}
		if err != nil {
			return Outcome{Kind: OutcomeIoFailed, Detail: fmt.Sprintf("failed to read local file: %v", err)}
		}
		if n == 0 {
			// 本地文件读尽
			return Outcome{Kind: OutcomeSuccess}
		}
	}
}

// downloadLoop 下载侧拷贝循环
// 零字节读且流未结束视为停滞:记录最后一次有效读的时刻,
// 超过 StallTimeout 未收到数据则超时,否则退避 StallBackoff 后重试
func downloadLoop(src io.Reader, dst io.Writer, total int64, cfg TransferConfig, token *Token, onProgress ProgressCallback) Outcome {
	buf := make([]byte, cfg.ChunkSize)
	start := time.Now()
	lastData := start
	var transferred int64

	for {
		if !token.Active() {
			return Outcome{Kind: OutcomeCancelled}
		}

		n, err := src.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return Outcome{Kind: OutcomeIoFailed, Detail: fmt.Sprintf("failed to write local file: %v", werr)}
			}
			transferred += int64(n)
			lastData = time.Now()
			emit(onProgress, transferred, total, time.Since(start))
		}

		if err == io.EOF {
			return Outcome{Kind: OutcomeSuccess}
		}
		if err != nil {
			return Outcome{Kind: OutcomeIoFailed, Detail: fmt.Sprintf("connection dropped during read: %v", err)}
		}
		if n == 0 {
			if time.Since(lastData) >= cfg.StallTimeout {
				return Outcome{
					Kind:   OutcomeTimedOut,
					Detail: fmt.Sprintf("no data received for %d seconds", int(cfg.StallTimeout.Seconds())),
				}
			}
			time.Sleep(cfg.StallBackoff)
		}
	}
}

func emit(onProgress ProgressCallback, transferred, total int64, elapsed time.Duration) {
	if onProgress == nil {
		return
	}
	onProgress(sampleAt(transferred, total, elapsed))
}
