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

// ReadPressure reads Pressure Stall Information from /proc/pressure/*. Only
// io is treated as mandatory (kernels without PSI, or without CONFIG_PSI,
// lack the whole directory); cpu/memory default to zero lines if absent.
func ReadPressure() (types.SystemPressure, bool) {
	ioSome, ioFull, ok := parsePSIFile("/proc/pressure/io")
	if !ok {
		return types.SystemPressure{}, false
	}
	cpuSome, _, _ := parsePSIFile("/proc/pressure/cpu")
	_, memFull, _ := parsePSIFile("/proc/pressure/memory")
	memSome, _, _ := parsePSIFile("/proc/pressure/memory")

	return types.SystemPressure{
		CPUSome:    cpuSome,
		MemorySome: memSome,
		MemoryFull: memFull,
		IOSome:     ioSome,
		IOFull:     ioFull,
	}, true
}

func parsePSIFile(path string) (some, full types.PressureLine, ok bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.PressureLine{}, types.PressureLine{}, false
	}

	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		var target *types.PressureLine
		switch fields[0] {
		case "some":
			target = &some
		case "full":
			target = &full
		default:
			continue
		}
		for _, tok := range fields[1:] {
			kv := strings.SplitN(tok, "=", 2)
			if len(kv) != 2 {
				continue
			}
			switch kv[0] {
			case "avg10":
				target.Avg10, _ = strconv.ParseFloat(kv[1], 64)
			case "avg60":
				target.Avg60, _ = strconv.ParseFloat(kv[1], 64)
			case "avg300":
				target.Avg300, _ = strconv.ParseFloat(kv[1], 64)
			case "total":
				v, _ := strconv.ParseUint(kv[1], 10, 64)
				target.Total = v
			}
		}
	}
	return some, full, true
}
