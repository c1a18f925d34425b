// Package setuid 实现 UID 映射探针。
//
// 在只映射了少数 UID 的用户命名空间里，setuid 到一个不存在映射的 UID 会返回 EINVAL。
// 探针的通过条件是这次调用“失败且错误为 EINVAL”，调用成功反而说明隔离没有生效。
package setuid

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/wangao1236/runc-probes/pkg/probe"
)

// TargetUID 在独立的用户命名空间中不应该存在。
const TargetUID = 514

var _ probe.Probe = &Probe{}

type Probe struct {
	UID    int
	Setuid func(uid int) error
}

func New() *Probe {
	return &Probe{
		UID:    TargetUID,
		Setuid: unix.Setuid,
	}
}

func (p *Probe) Name() string {
	return "setuid"
}

func (p *Probe) Aliases() []string {
	return []string{"privilege-mapping"}
}

func (p *Probe) Usage() string {
	return fmt.Sprintf("Expect setuid(%d) to be rejected with EINVAL", p.UID)
}

func (p *Probe) Run(_ []string) error {
	return Check(p.UID, p.Setuid(p.UID))
}

// Check 根据 setuid 的结果给出结论：只有 EINVAL 算通过。
func Check(uid int, err error) error {
	if err == nil {
		return probe.Exitf(probe.ExitFailure, "setuid(%d) succeeded, uid %d is mapped in this namespace", uid, uid)
	}
	if !errors.Is(err, unix.EINVAL) {
		return probe.Exit(probe.ExitFailure, fmt.Errorf("setuid(%d) failed with an unexpected error: %w", uid, err))
	}
	logrus.Infof("setuid(%d) rejected as expected: %v", uid, err)
	return nil
}
