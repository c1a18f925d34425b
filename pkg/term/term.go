// Package term 实现终止处理探针：忽略 SIGTERM 并永远等待，只能被 SIGKILL 结束。
package term

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wangao1236/runc-probes/pkg/probe"
)

// Interval 是两次休眠之间的间隔。
const Interval = 10 * time.Millisecond

// ReadyMessage 在 SIGTERM 已被忽略之后打印到 stderr。
const ReadyMessage = "ignoring SIGTERM, waiting to be killed"

var _ probe.Probe = &Probe{}

type Probe struct{}

func New() *Probe {
	return &Probe{}
}

func (p *Probe) Name() string {
	return "ignore-term"
}

func (p *Probe) Aliases() []string {
	return []string{"orga-itsuka", "termination-handling"}
}

func (p *Probe) Usage() string {
	return "Ignore SIGTERM and idle forever; only a forced kill ends it"
}

// Run 从不返回。
func (p *Probe) Run(_ []string) error {
	signal.Ignore(syscall.SIGTERM)
	logrus.Info(ReadyMessage)
	for {
		time.Sleep(Interval)
	}
}
