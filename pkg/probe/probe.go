// Package probe 定义所有探针共同遵守的约定：退出码的含义，以及探针的入口形式。
package probe

import (
	"errors"
	"fmt"
)

// 探针退出码。0 表示观察到了预期的资源控制行为，其余都是失败。
const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitUsage     = 1
	ExitOpen      = 2
	ExitOperation = 3
	ExitMismatch  = 4
)

// Probe 对应一个独立的探针程序。
type Probe interface {
	// Name 返回探针名称，也是 probe-aux 的子命令名，如 memory、rw
	Name() string
	// Aliases 返回探针的别名，供符号链接调用
	Aliases() []string
	// Usage 返回一行说明
	Usage() string
	// Run 执行探针。返回 nil 表示通过，否则用 ExitCode 取得退出码
	Run(args []string) error
}

// ExitError 携带探针的退出码。它同时满足 urfave/cli 的 ExitCoder 接口。
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("probe exited with code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) ExitCode() int {
	return e.Code
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Exit 用退出码 code 包装 err。
func Exit(code int, err error) error {
	return &ExitError{Code: code, Err: err}
}

// Exitf 用格式化的错误信息构造 ExitError。
func Exitf(code int, format string, args ...interface{}) error {
	return &ExitError{Code: code, Err: fmt.Errorf(format, args...)}
}

// ExitCode 把 Run 的返回值映射为进程退出码。
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
