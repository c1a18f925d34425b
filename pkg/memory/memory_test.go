package memory

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wangao1236/runc-probes/pkg/probe"
)

func TestFill(t *testing.T) {
	for _, size := range []int{0, 1, 2, 3, 4095, 4096, 10000} {
		buf := make([]byte, size)
		fill(buf, 1)
		for i := range buf {
			if buf[i] != 1 {
				t.Fatalf("size %d: byte %d is %d", size, i, buf[i])
			}
		}
	}
}

func TestRunSmallBlock(t *testing.T) {
	p := &Probe{Size: 4 << 20}
	assert.NoError(t, p.Run(nil))
}

func TestRunAllocationFailure(t *testing.T) {
	// 超出任何地址空间的大小，mmap 必然返回 ENOMEM
	p := &Probe{Size: math.MaxInt}
	err := p.Run(nil)
	assert.Error(t, err)
	assert.Equal(t, probe.ExitFailure, probe.ExitCode(err))
}
