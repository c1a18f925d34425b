// Package nonewprivs 检查 no_new_privs 标志是否已经由启动者设置。
package nonewprivs

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/wangao1236/runc-probes/pkg/probe"
)

var _ probe.Probe = &Probe{}

type Probe struct {
	Query func() (int, error)
}

func New() *Probe {
	return &Probe{Query: Query}
}

func (p *Probe) Name() string {
	return "no-new-privs"
}

func (p *Probe) Aliases() []string {
	return []string{"nosgid"}
}

func (p *Probe) Usage() string {
	return "Expect the no_new_privs flag to be set on this process"
}

func (p *Probe) Run(_ []string) error {
	flag, err := p.Query()
	if err != nil {
		return probe.Exit(probe.ExitOperation, fmt.Errorf("prctl(PR_GET_NO_NEW_PRIVS): %w", err))
	}
	if flag != 1 {
		return probe.Exitf(probe.ExitFailure, "no_new_privs is %d, expected 1", flag)
	}
	logrus.Info("no_new_privs is set")
	return nil
}

// Query 读取当前进程的 no_new_privs 标志。
func Query() (int, error) {
	return unix.PrctlRetInt(unix.PR_GET_NO_NEW_PRIVS, 0, 0, 0, 0)
}
