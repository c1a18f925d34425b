// Package rw 实现文件往返探针：向文件写入固定的 token，或从文件读回并校验。
//
// 用于验证挂载命名空间、bind mount 下文件的可见性。不同的退出码区分
// “无法测试”（用法错误、打开失败、读写失败）和“测试失败”（内容不符）。
package rw

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/wangao1236/runc-probes/pkg/probe"
)

const (
	// Token 是写入与校验的固定内容
	Token = "1145141919810"
	// MaxTokenSize 是读取 token 的上限
	MaxTokenSize = 255

	ModeRead  = "r"
	ModeWrite = "w"
)

var _ probe.Probe = &Probe{}

// Probe 的 Stdin、Stdout 为空时使用进程的标准输入输出。
type Probe struct {
	Stdin  io.Reader
	Stdout io.Writer
}

func New() *Probe {
	return &Probe{}
}

func (p *Probe) Name() string {
	return "rw"
}

func (p *Probe) Aliases() []string {
	return []string{"file-round-trip"}
}

func (p *Probe) Usage() string {
	return "{r|w} [filename]: write the oracle token, or read it back and compare"
}

func (p *Probe) Run(args []string) error {
	if len(args) != 1 && len(args) != 2 {
		return probe.Exitf(probe.ExitUsage, "usage: rw {r|w} [filename]")
	}
	mode := args[0]
	if mode != ModeRead && mode != ModeWrite {
		return probe.Exitf(probe.ExitUsage, "usage: rw {r|w} [filename], unknown mode %q", mode)
	}

	if len(args) == 1 {
		if mode == ModeWrite {
			return writeToken(p.stdout())
		}
		return readToken(p.stdin())
	}

	filename := args[1]
	if mode == ModeWrite {
		file, err := os.Create(filename)
		if err != nil {
			return probe.Exit(probe.ExitOpen, fmt.Errorf("failed to open %v: %w", filename, err))
		}
		if err = writeToken(file); err != nil {
			_ = file.Close()
			return err
		}
		if err = file.Close(); err != nil {
			return probe.Exit(probe.ExitOperation, fmt.Errorf("failed to close %v: %w", filename, err))
		}
		logrus.Debugf("wrote token to %v", filename)
		return nil
	}

	file, err := os.Open(filename)
	if err != nil {
		return probe.Exit(probe.ExitOpen, fmt.Errorf("failed to open %v: %w", filename, err))
	}
	defer func() {
		if err := file.Close(); err != nil {
			logrus.Warningf("failed to close %v: %v", filename, err)
		}
	}()
	return readToken(file)
}

func writeToken(w io.Writer) error {
	if _, err := io.WriteString(w, Token); err != nil {
		return probe.Exit(probe.ExitOperation, fmt.Errorf("failed to write token: %w", err))
	}
	return nil
}

func readToken(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, MaxTokenSize+1), MaxTokenSize+1)
	scanner.Split(bufio.ScanWords)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return probe.Exit(probe.ExitOperation, fmt.Errorf("failed to get the token: %w", err))
		}
		return probe.Exitf(probe.ExitOperation, "failed to get the token: no token found")
	}
	if got := scanner.Text(); got != Token {
		return probe.Exitf(probe.ExitMismatch, "file content is incorrect: got %q", got)
	}
	return nil
}

func (p *Probe) stdin() io.Reader {
	if p.Stdin != nil {
		return p.Stdin
	}
	return os.Stdin
}

func (p *Probe) stdout() io.Writer {
	if p.Stdout != nil {
		return p.Stdout
	}
	return os.Stdout
}
