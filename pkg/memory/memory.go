// Package memory 实现内存压力探针：申请一大块内存并写满每一页。
package memory

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v3/process"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/wangao1236/runc-probes/pkg/barrier"
	"github.com/wangao1236/runc-probes/pkg/probe"
)

// DefaultSize 是探针申请的内存大小：256 MiB。
const DefaultSize = 256 << 20

var _ probe.Probe = &Probe{}

// Probe 申请 Size 字节的匿名映射并逐字节写入 1。
//
// 不使用 make([]byte)：Go 堆扩张失败是不可恢复的 fatal error，
// 进程会以 2 退出并打印栈，而探针要求分配失败时干净地以 1 退出。
type Probe struct {
	Size int
}

func New() *Probe {
	return &Probe{Size: DefaultSize}
}

func (p *Probe) Name() string {
	return "memory"
}

func (p *Probe) Aliases() []string {
	return []string{"memory-pressure"}
}

func (p *Probe) Usage() string {
	return fmt.Sprintf("Allocate and touch %d MiB; exit 1 if the allocation fails", p.Size>>20)
}

func (p *Probe) Run(_ []string) error {
	block, err := unix.Mmap(-1, 0, p.Size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return probe.Exit(probe.ExitFailure, fmt.Errorf("failed to map %d bytes: %w", p.Size, err))
	}
	logrus.Debugf("mapped %d bytes", p.Size)

	fill(block, 1)
	barrier.Touch(block)
	logResidentSize()

	if err = unix.Munmap(block); err != nil {
		// 内存已经全部写过，探针的结论不受影响
		logrus.Warningf("failed to unmap block: %v", err)
	}
	return nil
}

// fill 相当于 memset：先写一个字节，再按倍增的长度复制自身。
func fill(buf []byte, v byte) {
	if len(buf) == 0 {
		return
	}
	buf[0] = v
	for n := 1; n < len(buf); n *= 2 {
		copy(buf[n:], buf[:n])
	}
}

func logResidentSize() {
	if !logrus.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	self, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		logrus.Debugf("failed to inspect current process: %v", err)
		return
	}
	info, err := self.MemoryInfo()
	if err != nil {
		logrus.Debugf("failed to read memory info: %v", err)
		return
	}
	logrus.Debugf("resident set size after touching block: %d bytes", info.RSS)
}
