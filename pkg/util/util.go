package util

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// MountInfo 对应 /proc/self/mountinfo 中的一行，只保留用得到的字段。
type MountInfo struct {
	// Root 是被挂载的文件系统内部的路径，bind mount 或 cgroup 命名空间下不一定是 /
	Root       string
	MountPoint string
	FSType     string
	// SuperOptions 是 " - " 之后的超级块选项，cgroup v1 在这里列出 controller
	SuperOptions []string
}

// ParseMountInfo 解析 mountinfo 格式的内容，例如：
//
//	36 35 98:0 /mnt1 /mnt2 rw,noatime master:1 - ext3 /dev/root rw,errors=continue
func ParseMountInfo(r io.Reader) ([]MountInfo, error) {
	var mounts []MountInfo
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		txt := scanner.Text()
		if len(txt) == 0 {
			continue
		}
		fields := strings.Split(txt, " ")
		sep := -1
		for i := 6; i < len(fields); i++ {
			if fields[i] == "-" {
				sep = i
				break
			}
		}
		if len(fields) < 7 || sep < 0 || sep+3 > len(fields) {
			logrus.Errorf("malformed mountinfo line: %v", txt)
			return nil, fmt.Errorf("malformed mountinfo line: %q", txt)
		}
		mounts = append(mounts, MountInfo{
			Root:         fields[3],
			MountPoint:   fields[4],
			FSType:       fields[sep+1],
			SuperOptions: strings.Split(fields[len(fields)-1], ","),
		})
	}
	if err := scanner.Err(); err != nil {
		logrus.Errorf("file scanner err: %v", err)
		return nil, fmt.Errorf("file scanner err: %v", err)
	}
	return mounts, nil
}

// CgroupEntry 对应 /proc/self/cgroup 中的一行：hierarchy-ID:controller-list:cgroup-path。
// cgroup v2 的行 hierarchy 为 0，controller 列表为空。
type CgroupEntry struct {
	Hierarchy   int
	Controllers []string
	Path        string
}

// ParseProcCgroup 解析 /proc/<pid>/cgroup 格式的内容。
func ParseProcCgroup(r io.Reader) ([]CgroupEntry, error) {
	var entries []CgroupEntry
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		txt := scanner.Text()
		if len(txt) == 0 {
			continue
		}
		parts := strings.SplitN(txt, ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("malformed cgroup line: %q", txt)
		}
		hierarchy, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("malformed hierarchy id in %q: %v", txt, err)
		}
		var controllers []string
		if len(parts[1]) > 0 {
			controllers = strings.Split(parts[1], ",")
		}
		entries = append(entries, CgroupEntry{
			Hierarchy:   hierarchy,
			Controllers: controllers,
			Path:        parts[2],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("file scanner err: %v", err)
	}
	return entries, nil
}

// Contains 判断 list 中是否有 s。
func Contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
