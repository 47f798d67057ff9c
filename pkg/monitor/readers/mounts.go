// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package readers

import (
	"bufio"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/stratastor/dtop/pkg/errors"
)

const mountsPath = "/proc/mounts"

var skipFSTypes = map[string]bool{
	"proc": true, "sysfs": true, "devpts": true, "tmpfs": true, "devtmpfs": true,
	"cgroup": true, "cgroup2": true, "pstore": true, "efivarfs": true,
	"securityfs": true, "debugfs": true, "tracefs": true, "bpf": true,
	"hugetlbfs": true, "mqueue": true, "fusectl": true, "configfs": true,
	"binfmt_misc": true, "overlay": true, "nsfs": true, "rpc_pipefs": true,
	"autofs": true, "squashfs": true,
}

var skipMountPrefixes = []string{"/proc", "/sys", "/dev", "/run/user", "/snap"}

// MountEntry is one parsed /proc/mounts row.
type MountEntry struct {
	Device     string
	MountPoint string
	FSType     string
}

// ReadMounts returns the filtered list of mounts worth monitoring: pseudo
// filesystems, container bind-mount noise, and loop-mounted snaps excluded.
func ReadMounts() ([]MountEntry, error) {
	f, err := os.Open(mountsPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.DiskReadFailed).WithMetadata("path", mountsPath)
	}
	defer f.Close()

	var out []MountEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}
		device, mount, fsType := fields[0], fields[1], fields[2]

		if skipFSTypes[fsType] {
			continue
		}
		if strings.HasPrefix(device, "/dev/loop") {
			continue
		}
		skip := false
		for _, p := range skipMountPrefixes {
			if strings.HasPrefix(mount, p) {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		out = append(out, MountEntry{Device: device, MountPoint: mount, FSType: fsType})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.DiskReadFailed).WithMetadata("path", mountsPath)
	}
	return out, nil
}

// StatvfsStats is the subset of unix.Statfs_t the engine consumes, resolved
// through golang.org/x/sys/unix since the stdlib exposes no statvfs call.
type StatvfsStats struct {
	TotalBytes     uint64
	UsedBytes      uint64
	AvailableBytes uint64
	TotalInodes    uint64
	FreeInodes     uint64
}

// Statvfs stats a mount point via the statfs(2) syscall.
func Statvfs(mountPoint string) (StatvfsStats, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(mountPoint, &st); err != nil {
		return StatvfsStats{}, errors.Wrap(err, errors.DiskReadFailed).WithMetadata("mount", mountPoint)
	}

	frsize := uint64(st.Frsize)
	if frsize == 0 {
		frsize = uint64(st.Bsize)
	}
	total := st.Blocks * frsize
	free := st.Bfree * frsize
	avail := st.Bavail * frsize
	used := uint64(0)
	if total > free {
		used = total - free
	}

	return StatvfsStats{
		TotalBytes:     total,
		UsedBytes:      used,
		AvailableBytes: avail,
		TotalInodes:    st.Files,
		FreeInodes:     st.Ffree,
	}, nil
}
