// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

// Package smart collects and parses SMART telemetry via smartctl --json,
// and schedules polls across devices without blocking the engine's fast
// tick.
package smart

import (
	"encoding/json"

	"github.com/stratastor/dtop/pkg/errors"
	"github.com/stratastor/dtop/pkg/monitor/types"
)

// smartctlJSON is the subset of smartctl's --json --all output dtop reads.
type smartctlJSON struct {
	SmartStatus struct {
		Passed bool `json:"passed"`
	} `json:"smart_status"`

	ATASmartAttributes *struct {
		Table []struct {
			ID         int    `json:"id"`
			Name       string `json:"name"`
			Value      int    `json:"value"`
			Worst      int    `json:"worst"`
			Thresh     int    `json:"thresh"`
			WhenFailed string `json:"when_failed"`
			Flags      struct {
				Prefail bool `json:"prefailure"`
			} `json:"flags"`
			Raw struct {
				Value  uint64 `json:"value"`
				String string `json:"string"`
			} `json:"raw"`
		} `json:"table"`
	} `json:"ata_smart_attributes,omitempty"`

	NVMeSmartHealthInformationLog *struct {
		CriticalWarning         uint8  `json:"critical_warning"`
		Temperature             int    `json:"temperature"`
		AvailableSpare          int    `json:"available_spare"`
		AvailableSpareThreshold int    `json:"available_spare_threshold"`
		PercentageUsed          int    `json:"percentage_used"`
		DataUnitsRead           uint64 `json:"data_units_read"`
		DataUnitsWritten        uint64 `json:"data_units_written"`
		PowerOnHours            uint64 `json:"power_on_hours"`
		UnsafeShutdowns         uint64 `json:"unsafe_shutdowns"`
		MediaErrors             uint64 `json:"media_errors"`
		NumErrLogEntries        uint64 `json:"num_err_log_entries"`
	} `json:"nvme_smart_health_information_log,omitempty"`

	Temperature *struct {
		Current int `json:"current"`
	} `json:"temperature,omitempty"`

	PowerOnTime *struct {
		Hours int `json:"hours"`
	} `json:"power_on_time,omitempty"`
}

// ParseSmartctlAll parses `smartctl --json --all <device>` output into a
// SmartData snapshot and applies the Passed→Warning downgrade rule.
func ParseSmartctlAll(data []byte, device string) (*types.SmartData, error) {
	var raw smartctlJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, errors.SmartParseFailed).WithMetadata("device", device)
	}

	sd := &types.SmartData{}
	if raw.SmartStatus.Passed {
		sd.Status = types.SmartPassed
	} else {
		sd.Status = types.SmartFailed
	}

	if raw.Temperature != nil {
		t := raw.Temperature.Current
		sd.Temperature = &t
	}
	if raw.PowerOnTime != nil {
		h := uint64(raw.PowerOnTime.Hours)
		sd.PowerOnHours = &h
	}

	if raw.ATASmartAttributes != nil {
		for _, a := range raw.ATASmartAttributes.Table {
			sd.Attributes = append(sd.Attributes, types.SmartAttribute{
				ID:         a.ID,
				Name:       a.Name,
				Value:      a.Value,
				Worst:      a.Worst,
				Thresh:     a.Thresh,
				Prefail:    a.Flags.Prefail,
				RawValue:   a.Raw.Value,
				RawString:  a.Raw.String,
				WhenFailed: a.WhenFailed,
			})
		}
	}

	if n := raw.NVMeSmartHealthInformationLog; n != nil {
		sd.Nvme = &types.NvmeHealth{
			CriticalWarning:         n.CriticalWarning,
			Temperature:             n.Temperature,
			AvailableSparePct:       n.AvailableSpare,
			AvailableSpareThreshold: n.AvailableSpareThreshold,
			PercentageUsed:          n.PercentageUsed,
			DataUnitsRead:           n.DataUnitsRead,
			DataUnitsWritten:        n.DataUnitsWritten,
			PowerOnHours:            n.PowerOnHours,
			UnsafeShutdowns:         n.UnsafeShutdowns,
			MediaErrors:             n.MediaErrors,
			NumErrLogEntries:        n.NumErrLogEntries,
		}
		if sd.Temperature == nil {
			t := n.Temperature
			sd.Temperature = &t
		}
	}

	sd.DeriveStatus()
	return sd, nil
}
