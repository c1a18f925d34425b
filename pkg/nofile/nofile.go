// Package nofile 实现文件描述符上限探针：连续打开固定数量的描述符且不关闭。
package nofile

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/wangao1236/runc-probes/pkg/probe"
)

const (
	// DefaultCount 是要打开的描述符数量
	DefaultCount = 256
	// Target 是被反复打开的文件
	Target = "/dev/null"
)

var _ probe.Probe = &Probe{}

type Probe struct {
	Count int
	Open  func() (int, error)
}

func New() *Probe {
	return &Probe{
		Count: DefaultCount,
		Open:  openTarget,
	}
}

func (p *Probe) Name() string {
	return "waste-fd"
}

func (p *Probe) Aliases() []string {
	return []string{"fd-exhaustion"}
}

func (p *Probe) Usage() string {
	return fmt.Sprintf("Open %v %d times without closing; exit 1 when refused", Target, p.Count)
}

// Run 打开的描述符随进程退出释放。
func (p *Probe) Run(_ []string) error {
	for i := 0; i < p.Count; i++ {
		fd, err := p.Open()
		if err != nil {
			return probe.Exit(probe.ExitFailure, fmt.Errorf("failed to open descriptor #%d: %w", i+1, err))
		}
		logrus.Tracef("opened descriptor %d", fd)
	}
	logrus.Infof("opened %d descriptors", p.Count)
	return nil
}

func openTarget() (int, error) {
	return unix.Open(Target, unix.O_RDONLY|unix.O_CLOEXEC, 0)
}
