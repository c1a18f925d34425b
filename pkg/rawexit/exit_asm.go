//go:build linux && (amd64 || 386 || arm64)

package rawexit

// rawExit 在汇编中实现，不会返回。
func rawExit(code int32)

// Exit 以 code 结束整个进程。
func Exit(code int) {
	rawExit(int32(code))
}
