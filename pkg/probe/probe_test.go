package probe

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitFailure, ExitCode(errors.New("boom")))
	assert.Equal(t, ExitMismatch, ExitCode(Exitf(ExitMismatch, "got %q", "x")))

	// 外层再包一层也能取出退出码
	wrapped := fmt.Errorf("rw: %w", Exit(ExitOpen, errors.New("no such file")))
	assert.Equal(t, ExitOpen, ExitCode(wrapped))
}

func TestExitError(t *testing.T) {
	cause := errors.New("permission denied")
	err := Exit(ExitOperation, cause)
	assert.Equal(t, "permission denied", err.Error())
	assert.True(t, errors.Is(err, cause))

	bare := &ExitError{Code: 7}
	assert.Equal(t, "probe exited with code 7", bare.Error())
	assert.Equal(t, 7, bare.ExitCode())
}
