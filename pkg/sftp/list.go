package sftp

import (
	"os"
	"time"

	"example.com/MikuTransfer/pkg/logger"
)

// EntryKind 远程目录项的类别
type EntryKind int

const (
	KindFile EntryKind = iota
	KindDirectory
)

func (k EntryKind) String() string {
	if k == KindDirectory {
		return "directory"
	}
	return "file"
}

// RemoteEntry 一条远程目录项
type RemoteEntry struct {
	Name       string
	Kind       EntryKind
	SizeKiB    int64 // 字节长度向下取整到 KiB
	ModifiedAt time.Time
}

// List 枚举远程目录
// "." 和 ".." 以及无法归类为文件/目录的条目会被跳过;
// 枚举失败只记录日志并返回空列表,调用方无法区分 "目录为空" 与 "枚举失败"
func (s *Session) List(remotePath string) []RemoteEntry {
	infos, err := s.sftpClient.ReadDir(remotePath)
	if err != nil {
		logger.Logger.Error("failed to list remote directory", "path", remotePath, "err", err)
		return []RemoteEntry{}
	}

	entries := make([]RemoteEntry, 0, len(infos))
	for _, info := range infos {
		if entry, ok := entryFromFileInfo(info); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

func entryFromFileInfo(info os.FileInfo) (RemoteEntry, bool) {
	name := info.Name()
	if name == "" || name == "." || name == ".." {
		return RemoteEntry{}, false
	}

	var kind EntryKind
	switch mode := info.Mode(); {
	case mode.IsDir():
		kind = KindDirectory
	case mode.IsRegular():
		kind = KindFile
	default:
		// 符号链接、设备文件等直接跳过
		return RemoteEntry{}, false
	}

	return RemoteEntry{
		Name:       name,
		Kind:       kind,
		SizeKiB:    info.Size() / 1024,
		ModifiedAt: info.ModTime(),
	}, true
}
