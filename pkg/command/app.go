package command

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

const usage = `probe-aux bundles small probe programs that each exercise one resource-control primitive.
               A probe reports only through its exit status: 0 means the expected behaviour was observed.`

// NewApp 构造 probe-aux 的 cli.App，每个探针是一个子命令。
func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "probe-aux"
	app.Usage = usage
	app.HideVersion = true

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "log-level",
			Value: "info",
			Usage: "Log level written to stderr (debug, info, warn, error)",
		},
	}

	for _, p := range Probes() {
		app.Commands = append(app.Commands, NewProbeCommand(p))
	}

	app.Before = func(ctx *cli.Context) error {
		level, err := logrus.ParseLevel(ctx.String("log-level"))
		if err != nil {
			return err
		}
		logrus.SetLevel(level)
		logrus.SetReportCaller(true)
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
		// stdout 留给 rw 探针
		logrus.SetOutput(os.Stderr)
		return nil
	}
	return app
}

// Dispatch 处理通过符号链接调用的情况：argv[0] 的 basename 是探针名或别名时，
// 把它改写成对应的子命令调用，其余参数原样保留。
func Dispatch(args []string) []string {
	if len(args) == 0 {
		return args
	}
	p, ok := Lookup(filepath.Base(args[0]))
	if !ok {
		return args
	}
	return append([]string{args[0], p.Name()}, args[1:]...)
}
