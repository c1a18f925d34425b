package cgroup

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	p := path.Join(root, name)
	require.NoError(t, os.MkdirAll(path.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
}

func TestUnifiedHierarchy(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "/proc/self/cgroup", "0::/probe.slice/run-1.scope\n")
	writeFile(t, root, "/proc/self/mountinfo",
		"22 1 8:1 / / rw,relatime shared:1 - ext4 /dev/sda1 rw\n"+
			"25 22 0:22 / /sys/fs/cgroup rw,nosuid shared:4 - cgroup2 cgroup2 rw,nsdelegate\n")
	writeFile(t, root, "/sys/fs/cgroup/probe.slice/run-1.scope/memory.max", "402653184\n")
	writeFile(t, root, "/sys/fs/cgroup/probe.slice/run-1.scope/cpu.max", "100000 100000\n")
	writeFile(t, root, "/sys/fs/cgroup/probe.slice/run-1.scope/pids.max", "max\n")

	m := &Manager{Root: root}
	cgroupPath, unified, err := m.Path("memory")
	require.NoError(t, err)
	assert.True(t, unified)
	assert.Equal(t, path.Join(root, "/sys/fs/cgroup/probe.slice/run-1.scope"), cgroupPath)

	expected := map[string]string{
		"memory": "402653184",
		"cpu":    "100000 100000",
		"pids":   "max",
	}
	for _, ss := range Subsystems {
		limit, err := m.Limit(ss)
		require.NoError(t, err, ss.Name())
		assert.Equal(t, expected[ss.Name()], limit)
	}
}

func TestLegacyHierarchy(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "/proc/self/cgroup",
		"4:cpu,cpuacct:/probe\n2:memory:/probe\n0::/probe\n")
	writeFile(t, root, "/proc/self/mountinfo",
		"33 30 0:29 / /sys/fs/cgroup/memory rw,relatime shared:14 - cgroup cgroup rw,memory\n"+
			"34 30 0:30 / /sys/fs/cgroup/cpu,cpuacct rw,relatime shared:15 - cgroup cgroup rw,cpu,cpuacct\n")
	writeFile(t, root, "/sys/fs/cgroup/memory/probe/memory.limit_in_bytes", "134217728\n")
	writeFile(t, root, "/sys/fs/cgroup/cpu,cpuacct/probe/cpu.cfs_quota_us", "-1\n")

	m := &Manager{Root: root}
	limit, err := m.Limit(&MemorySubsystem{})
	require.NoError(t, err)
	assert.Equal(t, "134217728", limit)

	limit, err = m.Limit(&CPUSubsystem{})
	require.NoError(t, err)
	assert.Equal(t, "-1", limit)

	// pids 既没有 v1 层级也没有 cgroup2 挂载
	_, err = m.Limit(&PidsSubsystem{})
	assert.Error(t, err)
}

func TestNamespacedMountRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "/proc/self/cgroup", "0::/outer/inner\n")
	writeFile(t, root, "/proc/self/mountinfo",
		"25 22 0:22 /outer /sys/fs/cgroup rw shared:4 - cgroup2 cgroup2 rw\n")

	cgroupPath, _, err := (&Manager{Root: root}).Path("pids")
	require.NoError(t, err)
	assert.Equal(t, path.Join(root, "/sys/fs/cgroup/inner"), cgroupPath)
}

func TestLookup(t *testing.T) {
	ss, ok := Lookup("pids")
	assert.True(t, ok)
	assert.Equal(t, "pids", ss.Name())

	_, ok = Lookup("blkio")
	assert.False(t, ok)
}
