// Package probetest 通过 /proc/self/exe 重新执行测试二进制，在子进程里运行探针并检查真实的退出状态。
//
// 用法：在 TestMain 中调用 Main，子进程不会运行测试，而是把参数交给 child 处理。
package probetest

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
	"testing"
)

// EnvReexec 标记当前进程是 Command 启动的子进程。
const EnvReexec = "PROBETEST_REEXEC"

// Main 代替 m.Run 作为 TestMain 的主体。
func Main(m *testing.M, child func(args []string) int) {
	if os.Getenv(EnvReexec) == "1" {
		os.Exit(child(os.Args))
	}
	os.Exit(m.Run())
}

// Command 构造一个重新执行当前测试二进制的命令，args 原样成为子进程的 os.Args[1:]。
// 测试进程退出时子进程会收到 SIGKILL。
func Command(args ...string) *exec.Cmd {
	cmd := exec.Command("/proc/self/exe", args...)
	cmd.Env = append(os.Environ(), EnvReexec+"=1")
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Pdeathsig: syscall.SIGKILL,
	}
	return cmd
}

// ExitCode 从 cmd.Run 或 cmd.Wait 的返回值中取出退出码。
// 进程被信号结束时返回 -1；err 不是退出状态时原样返回。
func ExitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 0, err
}

// Signaled 报告进程是否因信号 sig 结束。
func Signaled(state *os.ProcessState, sig syscall.Signal) bool {
	if state == nil {
		return false
	}
	status, ok := state.Sys().(syscall.WaitStatus)
	return ok && status.Signaled() && status.Signal() == sig
}
