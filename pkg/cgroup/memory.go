package cgroup

var _ Subsystem = &MemorySubsystem{}

type MemorySubsystem struct {
}

func (s *MemorySubsystem) Name() string {
	return "memory"
}

func (s *MemorySubsystem) LimitFile(unified bool) string {
	if unified {
		return "memory.max"
	}
	return "memory.limit_in_bytes"
}
