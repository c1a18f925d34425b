// Package barrier 提供探针使用的副作用屏障。
//
// Go 没有 volatile，也没有 `asm volatile("":::"memory")` 这样的写法。
// 这里用一个包级别的原子变量充当“外部可见”的写入目标：
// 编译器无法证明写进去的值没人读，所以产生这个值的循环不会被消除。
package barrier

import (
	"runtime"
	"sync/atomic"
)

var sink atomic.Uint64

// Sink 发布 v，保证计算 v 的代码不会被当作死代码删掉。
func Sink(v uint64) {
	sink.Add(v)
}

// Touch 发布 buf 的首尾字节，并让 buf 在此之前保持可达。
// 对 buf 的写入因此必须真实发生。
func Touch(buf []byte) {
	if len(buf) > 0 {
		sink.Add(uint64(buf[0]) + uint64(buf[len(buf)-1]))
	}
	runtime.KeepAlive(buf)
}

// Load returns the accumulated sink value.
func Load() uint64 {
	return sink.Load()
}
