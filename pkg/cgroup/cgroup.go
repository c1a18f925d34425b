// Package cgroup 读取当前进程所在 cgroup 的资源限制，仅用于打印诊断信息。
//
// 探针的结论只取决于限制产生的效果，从不取决于这里读到的值；这个包也从不写 cgroupfs。
package cgroup

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/wangao1236/runc-probes/pkg/util"
)

var (
	Subsystems = []Subsystem{
		&MemorySubsystem{},
		&CPUSubsystem{},
		&PidsSubsystem{},
	}
)

// Subsystem 对应 linux cgroup 的每一个 subsystem：
type Subsystem interface {
	// Name 返回 controller 名称，如 memory、cpu、pids
	Name() string
	// LimitFile 返回保存限制的文件名，unified 表示 cgroup v2
	LimitFile(unified bool) string
}

type Manager struct {
	// Root 是读取 /proc 与 cgroupfs 时的前缀，测试中指向临时目录
	Root string
}

func NewManager() *Manager {
	return &Manager{}
}

// Path 返回当前进程在 subsystem 中的 cgroup 目录。优先使用 v1 的独立层级，找不到时使用 v2。
func (m *Manager) Path(subsystem string) (cgroupPath string, unified bool, err error) {
	entries, err := m.readProcCgroup()
	if err != nil {
		return "", false, err
	}
	mounts, err := m.readMountInfo()
	if err != nil {
		return "", false, err
	}

	for _, entry := range entries {
		if !util.Contains(entry.Controllers, subsystem) {
			continue
		}
		for _, mnt := range mounts {
			if mnt.FSType == "cgroup" && util.Contains(mnt.SuperOptions, subsystem) {
				return m.join(mnt, entry.Path), false, nil
			}
		}
	}
	for _, entry := range entries {
		if entry.Hierarchy != 0 {
			continue
		}
		for _, mnt := range mounts {
			if mnt.FSType == "cgroup2" {
				return m.join(mnt, entry.Path), true, nil
			}
		}
	}
	return "", false, fmt.Errorf("subsystem %v is not found", subsystem)
}

// Limit 读取 subsystem 对当前进程的限制，原样返回文件内容，如 "max"、"268435456"、"100000 100000"。
func (m *Manager) Limit(ss Subsystem) (string, error) {
	cgroupPath, unified, err := m.Path(ss.Name())
	if err != nil {
		return "", err
	}
	limitFilePath := path.Join(cgroupPath, ss.LimitFile(unified))
	body, err := os.ReadFile(limitFilePath)
	if err != nil {
		return "", fmt.Errorf("failed to read limit of %v: %w", ss.Name(), err)
	}
	return strings.TrimSpace(string(body)), nil
}

// Lookup 按名称查找 subsystem。
func Lookup(name string) (Subsystem, bool) {
	for _, ss := range Subsystems {
		if ss.Name() == name {
			return ss, true
		}
	}
	return nil, false
}

// LogLimit 以 debug 级别打印 subsystem 的限制，读取失败也只打印。
func LogLimit(name string) {
	if !logrus.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	ss, ok := Lookup(name)
	if !ok {
		logrus.Debugf("unknown cgroup subsystem %v", name)
		return
	}
	limit, err := NewManager().Limit(ss)
	if err != nil {
		logrus.Debugf("failed to read cgroup %v limit: %v", name, err)
		return
	}
	logrus.Debugf("cgroup %v limit: %v", name, limit)
}

func (m *Manager) join(mnt util.MountInfo, cgroupPath string) string {
	// cgroup 命名空间或 bind mount 时，挂载点对应的是层级中的 mnt.Root
	rel := cgroupPath
	if mnt.Root != "/" && strings.HasPrefix(cgroupPath, mnt.Root) {
		rel = strings.TrimPrefix(cgroupPath, mnt.Root)
	}
	return path.Join(m.Root, mnt.MountPoint, rel)
}

func (m *Manager) readProcCgroup() ([]util.CgroupEntry, error) {
	f, err := os.Open(path.Join(m.Root, "/proc/self/cgroup"))
	if err != nil {
		return nil, fmt.Errorf("open /proc/self/cgroup err: %v", err)
	}
	defer func() {
		if err = f.Close(); err != nil {
			logrus.Warningf("close /proc/self/cgroup failed: %v", err)
		}
	}()
	return util.ParseProcCgroup(f)
}

func (m *Manager) readMountInfo() ([]util.MountInfo, error) {
	f, err := os.Open(path.Join(m.Root, "/proc/self/mountinfo"))
	if err != nil {
		return nil, fmt.Errorf("open /proc/self/mountinfo err: %v", err)
	}
	defer func() {
		if err = f.Close(); err != nil {
			logrus.Warningf("close mountinfo failed: %v", err)
		}
	}()
	return util.ParseMountInfo(f)
}
