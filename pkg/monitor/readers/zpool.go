// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package readers

import (
	"strconv"
	"strings"

	"github.com/stratastor/dtop/pkg/monitor/types"
)

// ParseZpoolList parses `zpool list -Hp -o
// name,size,alloc,free,health,frag` tab-delimited output.
func ParseZpoolList(output []byte) []types.ZfsPool {
	var out []types.ZfsPool
	for _, line := range strings.Split(string(output), "\n") {
		if line == "" {
			continue
		}
		f := strings.Split(line, "\t")
		if len(f) < 5 {
			continue
		}
		size, _ := strconv.ParseUint(f[1], 10, 64)
		alloc, _ := strconv.ParseUint(f[2], 10, 64)
		free, _ := strconv.ParseUint(f[3], 10, 64)
		frag := 0.0
		if len(f) >= 6 {
			frag, _ = strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(f[5]), "%"), 64)
		}
		capPct := 0.0
		if size > 0 {
			capPct = float64(alloc) / float64(size) * 100
		}
		out = append(out, types.ZfsPool{
			Name:      f[0],
			SizeBytes: size,
			AllocB:    alloc,
			FreeB:     free,
			CapPct:    capPct,
			Health:    strings.TrimSpace(f[4]),
			Fragment:  frag,
		})
	}
	return out
}
