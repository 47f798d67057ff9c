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

const mdstatPath = "/proc/mdstat"

// ReadMdstat parses /proc/mdstat into a list of RAID arrays. A missing file
// (no software RAID on this host) is not an error — it returns an empty
// slice.
func ReadMdstat() []types.RaidArray {
	data, err := os.ReadFile(mdstatPath)
	if err != nil {
		return nil
	}

	lines := strings.Split(string(data), "\n")
	var arrays []types.RaidArray

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if !strings.HasPrefix(line, "md") || !strings.Contains(line, " : ") {
			continue
		}

		parts := strings.SplitN(line, " : ", 2)
		if len(parts) < 2 {
			continue
		}
		name := strings.TrimSpace(parts[0])
		tokens := strings.Fields(parts[1])

		state := "unknown"
		if len(tokens) > 0 {
			state = tokens[0]
		}

		level := "unknown"
		for _, t := range tokens {
			if strings.HasPrefix(t, "raid") || t == "linear" || t == "multipath" {
				level = t
				break
			}
		}

		var members []string
		for _, t := range tokens {
			if idx := strings.Index(t, "["); idx >= 0 {
				members = append(members, t[:idx])
			}
		}

		var detailLine string
		if i+1 < len(lines) {
			detailLine = strings.TrimSpace(lines[i+1])
			if detailLine != "" && (isDigitLeading(detailLine) || strings.HasPrefix(lines[i+1], "      ")) {
				i++
			}
		}

		var totalDevices, activeDevices int
		if open := strings.Index(detailLine, "["); open >= 0 {
			if closeIdx := strings.Index(detailLine[open:], "]"); closeIdx >= 0 {
				bitmap := detailLine[open+1 : open+closeIdx]
				if slash := strings.Index(bitmap, "/"); slash >= 0 {
					totalDevices, _ = strconv.Atoi(bitmap[:slash])
					activeDevices, _ = strconv.Atoi(bitmap[slash+1:])
				}
			}
		}

		syncPct := 0.0
		if i+1 < len(lines) {
			next := strings.TrimSpace(lines[i+1])
			if strings.Contains(next, "recovery =") || strings.Contains(next, "resync =") || strings.Contains(next, "check =") {
				if eq := strings.Index(next, "="); eq >= 0 {
					rest := strings.TrimSpace(next[eq+1:])
					if pct := strings.Index(rest, "%"); pct >= 0 {
						syncPct, _ = strconv.ParseFloat(strings.TrimSpace(rest[:pct]), 64)
					}
				}
				i++
			}
		}

		arrays = append(arrays, types.RaidArray{
			Name:          name,
			Level:         level,
			Members:       members,
			ActiveDevices: activeDevices,
			TotalDevices:  totalDevices,
			State:         state,
			SyncPct:       syncPct,
		})
	}

	return arrays
}

func isDigitLeading(s string) bool {
	return len(s) > 0 && s[0] >= '0' && s[0] <= '9'
}
