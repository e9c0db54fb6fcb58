package sftp

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFileInfo struct {
	name    string
	size    int64
	mode    os.FileMode
	modTime time.Time
}

func (f fakeFileInfo) Name() string       { return f.name }
func (f fakeFileInfo) Size() int64        { return f.size }
func (f fakeFileInfo) Mode() os.FileMode  { return f.mode }
func (f fakeFileInfo) ModTime() time.Time { return f.modTime }
func (f fakeFileInfo) IsDir() bool        { return f.mode.IsDir() }
func (f fakeFileInfo) Sys() any           { return nil }

func TestEntryFromFileInfo(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		info     fakeFileInfo
		wantOk   bool
		wantKind EntryKind
		wantKiB  int64
	}{
		{
			name:     "普通文件大小向下取整",
			info:     fakeFileInfo{name: "app.log", size: 3000, mode: 0644, modTime: now},
			wantOk:   true,
			wantKind: KindFile,
			wantKiB:  2,
		},
		{
			name:     "小于1KiB的文件",
			info:     fakeFileInfo{name: "tiny", size: 1023, mode: 0644, modTime: now},
			wantOk:   true,
			wantKind: KindFile,
			wantKiB:  0,
		},
		{
			name:     "目录",
			info:     fakeFileInfo{name: "data", size: 4096, mode: os.ModeDir | 0755, modTime: now},
			wantOk:   true,
			wantKind: KindDirectory,
			wantKiB:  4,
		},
		{
			name:   "当前目录被跳过",
			info:   fakeFileInfo{name: ".", mode: os.ModeDir | 0755},
			wantOk: false,
		},
		{
			name:   "上级目录被跳过",
			info:   fakeFileInfo{name: "..", mode: os.ModeDir | 0755},
			wantOk: false,
		},
		{
			name:   "空名称被跳过",
			info:   fakeFileInfo{name: ""},
			wantOk: false,
		},
		{
			name:   "符号链接被跳过",
			info:   fakeFileInfo{name: "link", mode: os.ModeSymlink | 0777},
			wantOk: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, ok := entryFromFileInfo(tt.info)
			require.Equal(t, tt.wantOk, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.info.name, entry.Name)
			assert.Equal(t, tt.wantKind, entry.Kind)
			assert.Equal(t, tt.wantKiB, entry.SizeKiB)
			assert.Equal(t, tt.info.modTime, entry.ModifiedAt)
		})
	}
}

func TestEntryKindString(t *testing.T) {
	assert.Equal(t, "file", KindFile.String())
	assert.Equal(t, "directory", KindDirectory.String())
}
