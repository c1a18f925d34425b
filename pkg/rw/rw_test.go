package rw

import (
	"bytes"
	"errors"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wangao1236/runc-probes/pkg/probe"
)

func TestWriteThenRead(t *testing.T) {
	filename := path.Join(t.TempDir(), "token")
	p := New()

	require.NoError(t, p.Run([]string{ModeWrite, filename}))
	body, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, Token, string(body))

	assert.NoError(t, p.Run([]string{ModeRead, filename}))
}

func TestWriteTruncates(t *testing.T) {
	filename := path.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(filename, []byte("an older and much longer content"), 0644))

	require.NoError(t, New().Run([]string{ModeWrite, filename}))
	body, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, Token, string(body))
}

func TestReadExitCodes(t *testing.T) {
	dir := t.TempDir()
	unrelated := path.Join(dir, "unrelated")
	require.NoError(t, os.WriteFile(unrelated, []byte("114514\n"), 0644))
	empty := path.Join(dir, "empty")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	padded := path.Join(dir, "padded")
	require.NoError(t, os.WriteFile(padded, []byte("\n\t  "+Token+"  trailing\n"), 0644))

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"no args", nil, probe.ExitUsage},
		{"too many args", []string{ModeRead, unrelated, "extra"}, probe.ExitUsage},
		{"unknown mode", []string{"x", unrelated}, probe.ExitUsage},
		{"missing file", []string{ModeRead, path.Join(dir, "missing")}, probe.ExitOpen},
		{"write into missing dir", []string{ModeWrite, path.Join(dir, "missing", "token")}, probe.ExitOpen},
		{"empty file", []string{ModeRead, empty}, probe.ExitOperation},
		{"unrelated token", []string{ModeRead, unrelated}, probe.ExitMismatch},
		{"surrounding whitespace", []string{ModeRead, padded}, probe.ExitOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, probe.ExitCode(New().Run(tt.args)))
		})
	}
}

func TestStreams(t *testing.T) {
	var out bytes.Buffer
	p := &Probe{Stdout: &out}
	require.NoError(t, p.Run([]string{ModeWrite}))
	assert.Equal(t, Token, out.String())

	p = &Probe{Stdin: strings.NewReader(out.String())}
	assert.NoError(t, p.Run([]string{ModeRead}))

	p = &Probe{Stdin: strings.NewReader("")}
	assert.Equal(t, probe.ExitOperation, probe.ExitCode(p.Run([]string{ModeRead})))
}

func TestOversizedToken(t *testing.T) {
	p := &Probe{Stdin: strings.NewReader(strings.Repeat("1", MaxTokenSize+10))}
	assert.Equal(t, probe.ExitOperation, probe.ExitCode(p.Run([]string{ModeRead})))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("no space left on device")
}

func TestWriteFailure(t *testing.T) {
	p := &Probe{Stdout: failingWriter{}}
	err := p.Run([]string{ModeWrite})
	assert.Equal(t, probe.ExitOperation, probe.ExitCode(err))
	assert.Contains(t, err.Error(), "no space left on device")
}
