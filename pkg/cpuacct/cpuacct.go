// Package cpuacct 实现 CPU 时间统计探针。
//
// 两个 worker 分别绑定在独立的 OS 线程上空转，不断读取整个进程已消耗的 CPU 时间，
// 直到超过阈值。在两个 CPU 上真正并行时，墙钟时间约为阈值的一半；
// 被限制到单个 CPU 或 100% 配额时，墙钟时间不少于阈值。
package cpuacct

import (
	"fmt"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"

	"github.com/wangao1236/runc-probes/pkg/barrier"
	"github.com/wangao1236/runc-probes/pkg/probe"
)

const (
	// DefaultWorkers 是并行空转的线程数
	DefaultWorkers = 2
	// DefaultThreshold 是进程 CPU 时间的目标值
	DefaultThreshold = time.Second
	// SpinIterations 是两次读取时钟之间的空转次数
	SpinIterations = 10000
)

// Clock 读取进程级 CPU 时间。
type Clock func() (time.Duration, error)

// ProcessCPUTime 通过 clock_gettime(CLOCK_PROCESS_CPUTIME_ID) 读取所有线程累计的 CPU 时间。
func ProcessCPUTime() (time.Duration, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_PROCESS_CPUTIME_ID, &ts); err != nil {
		return 0, err
	}
	return time.Duration(ts.Nano()), nil
}

var _ probe.Probe = &Probe{}

type Probe struct {
	Workers   int
	Threshold time.Duration
	Clock     Clock
}

func New() *Probe {
	return &Probe{
		Workers:   DefaultWorkers,
		Threshold: DefaultThreshold,
		Clock:     ProcessCPUTime,
	}
}

func (p *Probe) Name() string {
	return "threads"
}

func (p *Probe) Aliases() []string {
	return []string{"cpu-accounting"}
}

func (p *Probe) Usage() string {
	return fmt.Sprintf("Spin %d threads until the process used %v of CPU time", p.Workers, p.Threshold)
}

func (p *Probe) Run(_ []string) error {
	// 保证每个 worker 都能同时持有一个 P，否则 GOMAXPROCS=1 时它们只能轮流运行
	if runtime.GOMAXPROCS(0) < p.Workers {
		runtime.GOMAXPROCS(p.Workers)
	}

	start := time.Now()
	var g errgroup.Group
	for i := 0; i < p.Workers; i++ {
		g.Go(p.spin)
	}
	// Wait 返回之后才读取失败标记：所有 worker 此时都已退出
	if err := g.Wait(); err != nil {
		return probe.Exit(probe.ExitFailure, fmt.Errorf("failed to query process cpu time: %w", err))
	}
	logrus.Infof("%d workers reached %v of cpu time in %v", p.Workers, p.Threshold, time.Since(start))
	return nil
}

func (p *Probe) spin() error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	var acc uint64
	for {
		for i := uint64(0); i < SpinIterations; i++ {
			acc = acc*31 + i
		}
		barrier.Sink(acc)

		used, err := p.Clock()
		if err != nil {
			return err
		}
		if used >= p.Threshold {
			return nil
		}
	}
}
