// Package netisolation 实现网络命名空间隔离探针：当前网络命名空间中只应该看得到回环设备。
package netisolation

import (
	"fmt"
	"net"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vishvananda/netlink"
	"github.com/vishvananda/netns"

	"github.com/wangao1236/runc-probes/pkg/probe"
)

var _ probe.Probe = &Probe{}

type Probe struct {
	ListLinks func() ([]netlink.Link, error)
}

func New() *Probe {
	return &Probe{ListLinks: netlink.LinkList}
}

func (p *Probe) Name() string {
	return "private-network"
}

func (p *Probe) Aliases() []string {
	return []string{"network-isolation"}
}

func (p *Probe) Usage() string {
	return "Expect only loopback links in the current network namespace"
}

func (p *Probe) Run(_ []string) error {
	logNamespace()

	links, err := p.ListLinks()
	if err != nil {
		return probe.Exit(probe.ExitOpen, fmt.Errorf("failed to list links: %w", err))
	}
	if visible := NonLoopback(links); len(visible) > 0 {
		return probe.Exitf(probe.ExitFailure, "network namespace is not private, visible links: %v",
			strings.Join(visible, ", "))
	}
	logrus.Infof("only loopback visible among %d links", len(links))
	return nil
}

// NonLoopback 返回所有非回环设备的名称。
func NonLoopback(links []netlink.Link) []string {
	var names []string
	for _, link := range links {
		attrs := link.Attrs()
		if attrs == nil || attrs.Flags&net.FlagLoopback != 0 {
			continue
		}
		names = append(names, attrs.Name)
	}
	return names
}

func logNamespace() {
	handle, err := netns.Get()
	if err != nil {
		logrus.Warningf("failed to get current netns: %v", err)
		return
	}
	defer func() {
		if err := handle.Close(); err != nil {
			logrus.Warningf("failed to close netns handle (%v): %v", handle, err)
		}
	}()
	logrus.Debugf("current netns is %v", handle.UniqueId())
}
