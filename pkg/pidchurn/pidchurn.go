// Package pidchurn 实现 PID 消耗探针：递归地创建一条固定深度的线程链，每一层等待下一层结束。
//
// 每一层都是锁定在独立 OS 线程上的 goroutine。锁定的 goroutine 阻塞时，它的线程随之挂起，
// 下一层只能运行在新的线程上，所以链条最深时内核中的任务数不少于链的深度。
// 如果 PID 上限不允许创建新线程，Go 运行时会直接终止进程，这正是外部要观察到的失败。
package pidchurn

import (
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/process"
	"github.com/sirupsen/logrus"

	"github.com/wangao1236/runc-probes/pkg/probe"
)

// DefaultDepth 是线程链的深度。
const DefaultDepth = 100

var _ probe.Probe = &Probe{}

type Probe struct {
	Depth int
	// OnDeepest 在最深一层被调用，此时整条链上的线程都还存在
	OnDeepest func()
}

func New() *Probe {
	return &Probe{
		Depth:     DefaultDepth,
		OnDeepest: logThreadCount,
	}
}

func (p *Probe) Name() string {
	return "waste-pid"
}

func (p *Probe) Aliases() []string {
	return []string{"pid-churn"}
}

func (p *Probe) Usage() string {
	return fmt.Sprintf("Spawn and join a chain of %d threads", p.Depth)
}

func (p *Probe) Run(_ []string) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	p.chain(p.Depth)
	logrus.Infof("thread chain of depth %d unwound", p.Depth)
	return nil
}

func (p *Probe) chain(depth int) {
	if depth == 0 {
		if p.OnDeepest != nil {
			p.OnDeepest()
		}
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		// 不解锁：goroutine 退出时运行时会一并结束这个线程
		runtime.LockOSThread()
		p.chain(depth - 1)
	}()
	<-done
}

// ThreadCount 返回当前进程的线程数。
func ThreadCount() (int32, error) {
	self, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, err
	}
	return self.NumThreads()
}

func logThreadCount() {
	if !logrus.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	n, err := ThreadCount()
	if err != nil {
		logrus.Debugf("failed to count threads: %v", err)
		return
	}
	logrus.Debugf("%d threads alive at the bottom of the chain", n)
}
