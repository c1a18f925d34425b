package command

import (
	"github.com/wangao1236/runc-probes/pkg/cpuacct"
	"github.com/wangao1236/runc-probes/pkg/fsize"
	"github.com/wangao1236/runc-probes/pkg/memory"
	"github.com/wangao1236/runc-probes/pkg/netisolation"
	"github.com/wangao1236/runc-probes/pkg/nofile"
	"github.com/wangao1236/runc-probes/pkg/nonewprivs"
	"github.com/wangao1236/runc-probes/pkg/pidchurn"
	"github.com/wangao1236/runc-probes/pkg/probe"
	"github.com/wangao1236/runc-probes/pkg/rw"
	"github.com/wangao1236/runc-probes/pkg/setuid"
	"github.com/wangao1236/runc-probes/pkg/shm"
	"github.com/wangao1236/runc-probes/pkg/term"
)

// Probes 返回 probe-aux 内置的全部探针。minimal 不在其中，它是单独的静态二进制。
func Probes() []probe.Probe {
	return []probe.Probe{
		memory.New(),
		cpuacct.New(),
		term.New(),
		rw.New(),
		setuid.New(),
		shm.New(),
		pidchurn.New(),
		netisolation.New(),
		nofile.New(),
		nonewprivs.New(),
		fsize.New(),
	}
}

// cgroupSubsystems 记录探针所针对的 cgroup subsystem，运行前以 debug 级别打印其限制。
var cgroupSubsystems = map[string]string{
	"memory":    "memory",
	"threads":   "cpu",
	"waste-pid": "pids",
}

// Lookup 按名称或别名查找探针。
func Lookup(name string) (probe.Probe, bool) {
	for _, p := range Probes() {
		if p.Name() == name {
			return p, true
		}
		for _, alias := range p.Aliases() {
			if alias == name {
				return p, true
			}
		}
	}
	return nil, false
}
