// Package fsize 实现文件大小上限探针：向文件写入 4 MiB 的零。
//
// Go 运行时忽略 SIGXFSZ，超过 RLIMIT_FSIZE 的写入会以 EFBIG 返回，探针据此以 3 退出。
package fsize

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/wangao1236/runc-probes/pkg/barrier"
	"github.com/wangao1236/runc-probes/pkg/probe"
)

const (
	// BlockSize 是单次写入的大小
	BlockSize = 4096
	// DefaultBlocks 是写入的块数，合计 4 MiB
	DefaultBlocks = 1024
)

var _ probe.Probe = &Probe{}

type Probe struct {
	Blocks int
}

func New() *Probe {
	return &Probe{Blocks: DefaultBlocks}
}

func (p *Probe) Name() string {
	return "fsize"
}

func (p *Probe) Aliases() []string {
	return []string{"file-size"}
}

func (p *Probe) Usage() string {
	return fmt.Sprintf("filename: write %d KiB of zeros; exit 3 when the write is refused", p.Blocks*BlockSize>>10)
}

func (p *Probe) Run(args []string) error {
	if len(args) != 1 {
		return probe.Exitf(probe.ExitUsage, "usage: fsize filename")
	}
	filename := args[0]

	file, err := os.Create(filename)
	if err != nil {
		return probe.Exit(probe.ExitOpen, fmt.Errorf("failed to open %v: %w", filename, err))
	}
	defer func() {
		if err := file.Close(); err != nil {
			logrus.Warningf("failed to close %v: %v", filename, err)
		}
	}()

	block := make([]byte, BlockSize)
	for i := 0; i < p.Blocks; i++ {
		if _, err = file.Write(block); err != nil {
			return probe.Exit(probe.ExitOperation, fmt.Errorf("failed to write block #%d of %v: %w", i+1, filename, err))
		}
	}
	barrier.Touch(block)
	logrus.Infof("wrote %d bytes to %v", p.Blocks*BlockSize, filename)
	return nil
}
