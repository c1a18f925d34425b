package cgroup

var _ Subsystem = &PidsSubsystem{}

type PidsSubsystem struct {
}

func (s *PidsSubsystem) Name() string {
	return "pids"
}

func (s *PidsSubsystem) LimitFile(bool) string {
	return "pids.max"
}
