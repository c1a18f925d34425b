// Package shm 实现 IPC 命名空间隔离探针：以 IPC_EXCL 独占创建一个固定 key 的共享内存段。
//
// 段在进程退出后依然存在。同一个 IPC 命名空间里第二次运行会失败，
// 每次都在新的 IPC 命名空间里运行则总能成功。
package shm

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/wangao1236/runc-probes/pkg/probe"
)

const (
	// DefaultKey 是约定的 System V IPC key
	DefaultKey = 114
	// SegmentSize 是共享内存段的大小
	SegmentSize = 4096
)

var _ probe.Probe = &Probe{}

type Probe struct {
	Key int
}

func New() *Probe {
	return &Probe{Key: DefaultKey}
}

func (p *Probe) Name() string {
	return "shm"
}

func (p *Probe) Aliases() []string {
	return []string{"shared-memory-isolation"}
}

func (p *Probe) Usage() string {
	return fmt.Sprintf("Exclusively create the System V shared memory segment with key %d", p.Key)
}

func (p *Probe) Run(_ []string) error {
	id, err := Claim(p.Key)
	if err != nil {
		return probe.Exit(probe.ExitFailure, err)
	}
	logrus.Infof("claimed shm key %d as segment %d", p.Key, id)
	return nil
}

// Claim 以 IPC_CREAT|IPC_EXCL 创建 key 对应的段，返回段 ID。
func Claim(key int) (int, error) {
	id, err := unix.SysvShmGet(key, SegmentSize, unix.IPC_CREAT|unix.IPC_EXCL|0600)
	if err != nil {
		return -1, fmt.Errorf("shmget(%d): %w", key, err)
	}
	return id, nil
}

// Release 删除段 id。
func Release(id int) error {
	if _, err := unix.SysvShmCtl(id, unix.IPC_RMID, nil); err != nil {
		return fmt.Errorf("shmctl(%d, IPC_RMID): %w", id, err)
	}
	return nil
}
