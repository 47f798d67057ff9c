// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package readers

import (
	"os"
	"strconv"
	"strings"

	"github.com/stratastor/dtop/pkg/monitor/types"
)

const mountstatsPath = "/proc/self/mountstats"

// ReadNfsMounts parses /proc/self/mountstats and returns only NFS/NFSv4
// mounts. A missing or unreadable file (no NFS mounts, or /proc/self not
// exposing mountstats) yields an empty result, not an error.
func ReadNfsMounts() types.NfsMountStats {
	data, err := os.ReadFile(mountstatsPath)
	if err != nil {
		return types.NfsMountStats{}
	}

	var mounts []types.NfsMount
	var current *types.NfsMount
	var readOps, writeOps uint64
	var readRTTTotal, writeRTTTotal float64

	flush := func() {
		if current == nil {
			return
		}
		if readOps > 0 {
			current.RTTMs = readRTTTotal / float64(readOps)
		}
		if writeOps > 0 && writeRTTTotal/float64(writeOps) > current.RTTMs {
			current.RTTMs = writeRTTTotal / float64(writeOps)
		}
		mounts = append(mounts, *current)
		current = nil
		readOps, writeOps, readRTTTotal, writeRTTTotal = 0, 0, 0, 0
	}

	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "device ") {
			flush()
			parts := strings.Fields(trimmed)
			if len(parts) >= 8 && strings.HasPrefix(parts[7], "nfs") {
				dev := parts[1]
				server, export := dev, ""
				if idx := strings.Index(dev, ":"); idx >= 0 {
					server, export = dev[:idx], dev[idx+1:]
				}
				current = &types.NfsMount{
					Server:     server,
					Export:     export,
					MountPoint: parts[4],
					Version:    parts[7],
				}
			}
			continue
		}

		if current == nil {
			continue
		}

		upper := strings.ToUpper(trimmed)
		if strings.HasPrefix(upper, "READ:") || strings.HasPrefix(upper, "WRITE:") {
			f := strings.Fields(trimmed)
			if len(f) >= 8 {
				ops, _ := strconv.ParseUint(f[1], 10, 64)
				rttTotal, _ := strconv.ParseFloat(f[7], 64)
				if strings.HasPrefix(upper, "READ:") {
					readOps, readRTTTotal = ops, rttTotal
				} else {
					writeOps, writeRTTTotal = ops, rttTotal
				}
			}
		}
	}
	flush()

	return types.NfsMountStats{Mounts: mounts}
}
