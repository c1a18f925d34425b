// minimal 是最小可运行程序：进入 main 后立即用一条系统调用退出。
//
// 用 CGO_ENABLED=0 构建得到的静态二进制不依赖动态链接器和 libc，
// 可以放进一个只 bind mount 了探针目录作为根的挂载命名空间中运行。
package main

import "github.com/wangao1236/runc-probes/pkg/rawexit"

func main() {
	rawexit.Exit(0)
}
