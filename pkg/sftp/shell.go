package sftp

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/schollz/progressbar/v3"
)

// Shell 定义交互式 SFTP 环境
type Shell struct {
	session *Session
	cwd     string    // 远程当前目录
	stdin   io.Reader // 输入源
	stdout  io.Writer // 输出源
	stderr  io.Writer // 错误输出源
}

// NewShell 创建一个新的交互式 Shell
func (s *Session) NewShell(stdin io.Reader, stdout, stderr io.Writer) (*Shell, error) {
	cwd, err := s.Cwd()
	if err != nil {
		cwd = "."
	}

	return &Shell{
		session: s,
		cwd:     cwd,
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
	}, nil
}

// Run 启动交互式循环 (REPL)
func (s *Shell) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.stdin)
	s.printPrompt()

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			s.printPrompt()
			continue
		}

		args := strings.Fields(line)
		cmd := args[0]
		params := args[1:]

		switch cmd {
		case "exit", "quit", "bye":
			return nil
		case "help", "?":
			s.printHelp()
		case "pwd":
			fmt.Fprintln(s.stdout, s.cwd)
		case "lpwd":
			wd, _ := os.Getwd()
			fmt.Fprintln(s.stdout, wd)
		case "ls", "ll":
			s.handleLs(params)
		case "lls":
			s.handleLocalLs(params)
		case "cd":
			s.handleCd(params)
		case "lcd":
			s.handleLocalCd(params)
		case "mkdir":
			s.handleMkdir(params)
		case "rm":
			s.handleRm(params)
		case "get":
			s.handleGet(params)
		case "put":
			s.handlePut(params)
		case "cancel":
			Cancel()
		default:
			fmt.Fprintf(s.stderr, "未知命令: %s (输入 help 查看可用命令)\n", cmd)
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.printPrompt()
	}
	return scanner.Err()
}

// ================= 命令处理逻辑 =================

func (s *Shell) printPrompt() {
	fmt.Fprintf(s.stdout, "sftp:%s> ", s.cwd)
}

func (s *Shell) resolvePath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return s.session.JoinPath(s.cwd, p)
}

func (s *Shell) handleCd(args []string) {
	if len(args) == 0 {
		return
	}
	target := s.resolvePath(args[0])

	info, err := s.session.Client().Stat(target)
	if err != nil {
		fmt.Fprintf(s.stderr, "cd: %v\n", err)
		return
	}
	if !info.IsDir() {
		fmt.Fprintf(s.stderr, "cd: '%s' 不是目录\n", args[0])
		return
	}
	s.cwd = target
}

func (s *Shell) handleLocalCd(args []string) {
	if len(args) == 0 {
		return
	}
	if err := os.Chdir(args[0]); err != nil {
		fmt.Fprintf(s.stderr, "lcd: %v\n", err)
	}
}

func (s *Shell) handleLs(args []string) {
	path := s.cwd
	if len(args) > 0 {
		path = s.resolvePath(args[0])
	}

	entries := s.session.List(path)

	// 使用 tabwriter 格式化输出
	w := tabwriter.NewWriter(s.stdout, 0, 0, 1, ' ', 0)
	for _, e := range entries {
		modTime := e.ModifiedAt.Format("Jan 02 15:04")
		name := e.Name
		if e.Kind == KindDirectory {
			name += "/"
		}
		fmt.Fprintf(w, "%s\t%d KiB\t%s\t%s\n", e.Kind, e.SizeKiB, modTime, name)
	}
	w.Flush()
}

func (s *Shell) handleLocalLs(args []string) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		fmt.Fprintf(s.stderr, "lls: %v\n", err)
		return
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		fmt.Fprintln(s.stdout, name)
	}
}

func (s *Shell) handleGet(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.stderr, "用法: get <远程文件> [本地路径]")
		return
	}
	remote := s.resolvePath(args[0])
	local := filepath.Base(remote)
	if len(args) > 1 {
		local = args[1]
	}

	fmt.Fprintf(s.stdout, "下载 %s -> %s\n", remote, local)

	outcome := s.session.Download(remote, local, NewCancellationToken(), s.progressBar(remote, "Downloading"))
	if outcome.OK() {
		fmt.Fprintln(s.stdout, "\nDownload Finished.")
	} else {
		fmt.Fprintf(s.stderr, "\n下载失败: %s\n", outcome.Describe())
	}
}

func (s *Shell) handlePut(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.stderr, "用法: put <本地文件> [远程路径]")
		return
	}
	local := args[0]
	var remote string
	if len(args) > 1 {
		remote = s.resolvePath(args[1])
	} else {
		// 默认上传到远程当前目录
		remote = s.session.JoinPath(s.cwd, filepath.Base(local))
	}

	fmt.Fprintf(s.stdout, "上传 %s -> %s\n", local, remote)

	var bar *progressbar.ProgressBar
	if info, err := os.Stat(local); err == nil {
		bar = progressbar.DefaultBytes(info.Size(), "Uploading")
	} else {
		bar = progressbar.Default(-1, "Uploading")
	}

	outcome := s.session.Upload(local, remote, NewCancellationToken(), barCallback(bar))
	if outcome.OK() {
		fmt.Fprintln(s.stdout, "\n上传完成")
	} else {
		fmt.Fprintf(s.stderr, "\n上传失败: %s\n", outcome.Describe())
	}
}

func (s *Shell) handleMkdir(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.stderr, "用法: mkdir <路径>")
		return
	}
	path := s.resolvePath(args[0])
	if err := s.session.Client().Mkdir(path); err != nil {
		fmt.Fprintf(s.stderr, "mkdir: %v\n", err)
	}
}

func (s *Shell) handleRm(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.stderr, "用法: rm <路径>")
		return
	}
	path := s.resolvePath(args[0])
	if err := s.session.Client().Remove(path); err != nil {
		// 尝试作为目录删除
		if err2 := s.session.Client().RemoveDirectory(path); err2 != nil {
			fmt.Fprintf(s.stderr, "rm: %v\n", err)
		}
	}
}

func (s *Shell) printHelp() {
	help := `
可用命令:
  cd <path>     切换远程目录
  lcd <path>    切换本地目录
  pwd           显示远程当前目录
  lpwd          显示本地当前目录
  ls [path]     列出远程文件
  lls [path]    列出本地文件
  get <remote> [local]  下载文件
  put <local> [remote]  上传文件
  mkdir <path>  创建远程目录
  rm <path>     删除远程文件或目录
  cancel        取消当前令牌对应的传输
  exit/quit     退出
`
	fmt.Fprintln(s.stdout, help)
}

// progressBar 按远程文件大小创建进度条回调,拿不到大小时退化为 spinner
func (s *Shell) progressBar(remotePath, label string) ProgressCallback {
	info, err := s.session.Client().Stat(remotePath)
	if err != nil || info.IsDir() {
		return barCallback(progressbar.Default(-1, label))
	}
	return barCallback(progressbar.DefaultBytes(info.Size(), label))
}

// barCallback 把进度样本换算成进度条的增量
func barCallback(bar *progressbar.ProgressBar) ProgressCallback {
	var last int64
	return func(p ProgressSample) {
		bar.Add64(p.BytesTransferred - last)
		last = p.BytesTransferred
	}
}
