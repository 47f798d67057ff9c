// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package readers

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/stratastor/dtop/pkg/errors"
	"github.com/stratastor/dtop/pkg/monitor/types"
)

const diskstatsPath = "/proc/diskstats"

// ReadDiskstats reads /proc/diskstats and returns a map of device name to
// raw counters, filtering out loop/ram/zram devices and partitions.
func ReadDiskstats() (map[string]types.RawDiskstat, error) {
	f, err := os.Open(diskstatsPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.DiskReadFailed).WithMetadata("path", diskstatsPath)
	}
	defer f.Close()

	out := make(map[string]types.RawDiskstat)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 14 {
			continue
		}
		name := fields[2]
		if strings.HasPrefix(name, "loop") || strings.HasPrefix(name, "ram") || strings.HasPrefix(name, "zram") {
			continue
		}
		if isPartition(name) {
			continue
		}
		out[name] = types.RawDiskstat{
			ReadsCompleted:  parseUint(fields[3]),
			SectorsRead:     parseUint(fields[5]),
			MsReading:       parseUint(fields[6]),
			WritesCompleted: parseUint(fields[7]),
			SectorsWritten:  parseUint(fields[9]),
			MsWriting:       parseUint(fields[10]),
			IosInProgress:   parseUint(fields[11]),
			MsIO:            parseUint(fields[12]),
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.DiskReadFailed).WithMetadata("path", diskstatsPath)
	}
	return out, nil
}

func parseUint(s string) uint64 {
	v, _ := strconv.ParseUint(s, 10, 64)
	return v
}

// isPartition reports true for entries like sda1, nvme0n1p1, sdb3 — md and
// dm- devices are never treated as partitions.
func isPartition(name string) bool {
	if strings.HasPrefix(name, "nvme") {
		idx := strings.LastIndex(name, "p")
		if idx < 0 || idx == len(name)-1 {
			return false
		}
		rest := name[idx+1:]
		return isAllDigits(rest)
	}
	if strings.HasPrefix(name, "md") || strings.HasPrefix(name, "dm-") {
		return false
	}
	i := 0
	for i < len(name) && isAlpha(rune(name[i])) {
		i++
	}
	if i == 0 || i == len(name) {
		return false
	}
	return isAllDigits(name[i:])
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
