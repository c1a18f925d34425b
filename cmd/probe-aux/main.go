package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/wangao1236/runc-probes/pkg/command"
)

func main() {
	app := command.NewApp()
	// 探针失败时 cli 已经按退出码退出，走到这里的都是命令行本身的错误
	if err := app.Run(command.Dispatch(os.Args)); err != nil {
		logrus.Fatal(err)
	}
}
