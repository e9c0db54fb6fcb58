package sftp

import (
	"fmt"
	"time"

	"example.com/MikuTransfer/pkg/logger"
	"example.com/MikuTransfer/pkg/netcheck"
)

// 面向调用方的一次性操作。每次调用独立建立并释放一条连接,
// 结构化的 Outcome 只在这一层被渲染成字符串。

// DefaultProbeTimeout 公网探测的默认超时
const DefaultProbeTimeout = 1500 * time.Millisecond

// TestConnection 测试能否连接并认证,返回人类可读的结果消息
func TestConnection(host, username, password string, port uint16) string {
	sess, err := Connect(host, username, password, port)
	if err != nil {
		return fmt.Sprintf("Connection failed: %v", err)
	}
	sess.Close()
	return "Connection successful."
}

// ListFiles 枚举远程目录。连接或枚举失败时记录日志并返回空列表
func ListFiles(host, username, password string, port uint16, remotePath string) []RemoteEntry {
	sess, err := Connect(host, username, password, port)
	if err != nil {
		logger.Logger.Error("failed to connect for listing", "host", host, "err", err)
		return []RemoteEntry{}
	}
	defer sess.Close()
	return sess.List(remotePath)
}

// UploadFile 上传单个文件,仅返回是否成功
// 具体失败原因通过日志暴露 (与 DownloadFile 的不对称为兼容保留)
func UploadFile(host, username, password string, port uint16, localPath, remotePath string, onProgress ProgressCallback, token *Token, onComplete func()) bool {
	outcome := runUpload(host, username, password, port, localPath, remotePath, onProgress, token, onComplete)
	if !outcome.OK() {
		logger.Logger.Error("upload failed", "local", localPath, "remote", remotePath, "outcome", outcome.String())
	}
	return outcome.OK()
}

// DownloadFile 下载单个文件,返回状态消息
// 成功为 "Download Finished.",失败为 "ERROR:" 前缀加原因
func DownloadFile(host, username, password string, port uint16, remoteFilePath, localPath string, onProgress ProgressCallback, token *Token, onComplete func()) string {
	outcome := runDownload(host, username, password, port, remoteFilePath, localPath, onProgress, token, onComplete)
	if outcome.OK() {
		return "Download Finished."
	}
	return "ERROR:\n" + outcome.Describe()
}

// HasInternetConnection 公网可达性探测,timeout <= 0 时使用默认值
// 结果仅供参考,传输引擎不依赖它
func HasInternetConnection(timeout time.Duration) bool {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return netcheck.HasInternet(timeout)
}

func runUpload(host, username, password string, port uint16, localPath, remotePath string, onProgress ProgressCallback, token *Token, onComplete func()) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = Outcome{Kind: OutcomeUnhandled, Detail: fmt.Sprintf("unhandled error during upload: %v", r)}
		}
	}()

	sess, err := Connect(host, username, password, port)
	if err != nil {
		return Outcome{Kind: OutcomeConnectionFailed, Detail: err.Error()}
	}
	defer sess.Close()

	outcome = sess.Upload(localPath, remotePath, token, onProgress)
	if outcome.OK() {
		notifyComplete(onComplete)
	}
	return outcome
}

func runDownload(host, username, password string, port uint16, remoteFilePath, localPath string, onProgress ProgressCallback, token *Token, onComplete func()) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = Outcome{Kind: OutcomeUnhandled, Detail: fmt.Sprintf("unhandled error during download: %v", r)}
		}
	}()

	sess, err := Connect(host, username, password, port)
	if err != nil {
		return Outcome{Kind: OutcomeConnectionFailed, Detail: err.Error()}
	}
	defer sess.Close()

	outcome = sess.Download(remoteFilePath, localPath, token, onProgress)
	if outcome.OK() {
		notifyComplete(onComplete)
	}
	return outcome
}

// notifyComplete 调用完成回调
// 回调里的任何异常只记录日志,绝不覆盖传输本身的 Success 结果
func notifyComplete(onComplete func()) {
	if onComplete == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Logger.Error("completion callback failed", "panic", r)
		}
	}()
	onComplete()
}
