package command

import (
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/wangao1236/runc-probes/pkg/cgroup"
	"github.com/wangao1236/runc-probes/pkg/probe"
)

// NewProbeCommand 把探针包装成 cli 子命令。
// 探针只接受位置参数，所以关闭 flag 解析，ctx.Args() 原样交给 Run。
func NewProbeCommand(p probe.Probe) cli.Command {
	return cli.Command{
		Name:            p.Name(),
		Aliases:         p.Aliases(),
		Usage:           p.Usage(),
		SkipFlagParsing: true,
		// 这里是子命令执行的真正函数：
		// 1. 打印探针针对的 cgroup 限制，仅作诊断；
		// 2. 执行探针；
		// 3. 失败时只记录一次日志，再把退出码交给 cli 退出。
		Action: func(ctx *cli.Context) error {
			if name, ok := cgroupSubsystems[p.Name()]; ok {
				cgroup.LogLimit(name)
			}
			logrus.Debugf("run probe %v with args: %+v", p.Name(), []string(ctx.Args()))
			err := p.Run(ctx.Args())
			if err == nil {
				logrus.Debugf("probe %v passed", p.Name())
				return nil
			}
			code := probe.ExitCode(err)
			logrus.Errorf("probe %v failed with code %d: %v", p.Name(), code, err)
			// 消息为空，cli 不再重复打印
			return cli.NewExitError("", code)
		},
	}
}
