// Package rawexit 只用一条系统调用结束进程，不经过 os.Exit 的任何收尾逻辑。
//
// amd64、386、arm64 上由汇编直接发起 exit_group；Go 进程天然是多线程的，
// 只结束调用线程的 exit 不够用。其他架构退回到 unix.Exit。
//
// 这个包只能依赖 golang.org/x/sys/unix，cmd/minimal 不应因为它引入任何包初始化。
package rawexit
