package cgroup

var _ Subsystem = &CPUSubsystem{}

// CPUSubsystem 读取 CPU 配额。v2 的 cpu.max 形如 "quota period"，v1 只有 quota。
type CPUSubsystem struct {
}

func (s *CPUSubsystem) Name() string {
	return "cpu"
}

func (s *CPUSubsystem) LimitFile(unified bool) string {
	if unified {
		return "cpu.max"
	}
	return "cpu.cfs_quota_us"
}
