// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package readers

import (
	"strconv"
	"strings"

	"github.com/stratastor/dtop/pkg/monitor/types"
)

// ParseVgs parses `vgs --noheadings --nosuffix --units b -o
// vg_name,vg_size,vg_free,pv_count` output.
func ParseVgs(output []byte) []types.VolumeGroup {
	var out []types.VolumeGroup
	for _, line := range strings.Split(string(output), "\n") {
		f := strings.Fields(line)
		if len(f) < 4 {
			continue
		}
		size, _ := strconv.ParseUint(f[1], 10, 64)
		free, _ := strconv.ParseUint(f[2], 10, 64)
		count, _ := strconv.Atoi(f[3])
		out = append(out, types.VolumeGroup{
			Name:          f[0],
			SizeBytes:     size,
			FreeBytes:     free,
			PhysicalCount: count,
		})
	}
	return out
}

// ParseLvs parses `lvs --noheadings --nosuffix --units b -o
// lv_name,vg_name,lv_size,data_percent` output. data_percent is blank for
// plain linear volumes, which is reported as UsedPct 0.
func ParseLvs(output []byte) []types.LogicalVolume {
	var out []types.LogicalVolume
	for _, line := range strings.Split(string(output), "\n") {
		f := strings.Fields(line)
		if len(f) < 3 {
			continue
		}
		size, _ := strconv.ParseUint(f[2], 10, 64)
		usedPct := 0.0
		if len(f) >= 4 {
			usedPct, _ = strconv.ParseFloat(f[3], 64)
		}
		out = append(out, types.LogicalVolume{
			Name:        f[0],
			VolumeGroup: f[1],
			SizeBytes:   size,
			UsedPct:     usedPct,
		})
	}
	return out
}
