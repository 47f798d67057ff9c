// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package alerts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratastor/dtop/pkg/monitor/types"
)

func testThresholds() Thresholds {
	return Thresholds{
		HDDTempWarnC:    50,
		HDDTempCritC:    60,
		NonHDDTempWarnC: 55,
		NonHDDTempCritC: 70,
		FsUsePctWarn:    85,
		FsUsePctCrit:    95,
		FsInodePctWarn:  85,
		FsInodePctCrit:  95,
		IoUtilSustained: 90,
	}
}

func deviceWithSmart(name string, rotational bool, sd *types.SmartData) *types.BlockDevice {
	dev := types.NewBlockDevice(name, "/dev/"+name, types.DeviceHDD)
	dev.Rotational = rotational
	dev.Smart = sd
	return dev
}

func TestEvaluateSmartFailedIsCritical(t *testing.T) {
	dev := deviceWithSmart("sda", true, &types.SmartData{Status: types.SmartFailed})
	alerts := Evaluate([]*types.BlockDevice{dev}, nil, nil, nil, testThresholds(), time.Now())

	require.Len(t, alerts, 1)
	assert.Equal(t, types.SeverityCritical, alerts[0].Severity)
	assert.Equal(t, "SMART", alerts[0].Prefix)
}

func TestEvaluateTemperatureThresholdsRotationalVsNot(t *testing.T) {
	temp := 65
	hdd := deviceWithSmart("sda", true, &types.SmartData{Status: types.SmartPassed, Temperature: &temp})
	ssd := deviceWithSmart("nvme0n1", false, &types.SmartData{Status: types.SmartPassed, Temperature: &temp})

	hddAlerts := Evaluate([]*types.BlockDevice{hdd}, nil, nil, nil, testThresholds(), time.Now())
	require.Len(t, hddAlerts, 1)
	assert.Equal(t, types.SeverityCritical, hddAlerts[0].Severity)
	assert.Equal(t, "TEMP", hddAlerts[0].Prefix)

	ssdAlerts := Evaluate([]*types.BlockDevice{ssd}, nil, nil, nil, testThresholds(), time.Now())
	require.Len(t, ssdAlerts, 1)
	assert.Equal(t, types.SeverityWarning, ssdAlerts[0].Severity)
}

func TestEvaluateAtRiskAttributeWarns(t *testing.T) {
	dev := deviceWithSmart("sda", true, &types.SmartData{
		Status:     types.SmartPassed,
		Attributes: []types.SmartAttribute{{ID: 9, Name: "Power_On_Hours", Prefail: true, Thresh: 10, Value: 15}},
	})
	alerts := Evaluate([]*types.BlockDevice{dev}, nil, nil, nil, testThresholds(), time.Now())
	require.Len(t, alerts, 1)
	assert.Equal(t, types.SeverityWarning, alerts[0].Severity)
}

func TestEvaluatePendingAndReallocatedSectors(t *testing.T) {
	dev := deviceWithSmart("sda", true, &types.SmartData{
		Status: types.SmartPassed,
		Attributes: []types.SmartAttribute{
			{ID: 197, Name: "Current_Pending_Sector", RawValue: 2},
			{ID: 5, Name: "Reallocated_Sector_Ct", RawValue: 3},
		},
	})
	alerts := Evaluate([]*types.BlockDevice{dev}, nil, nil, nil, testThresholds(), time.Now())
	require.Len(t, alerts, 2)
	for _, a := range alerts {
		assert.Equal(t, types.SeverityWarning, a.Severity)
	}
}

func TestEvaluatePrefailDegradationAgainstPrevSmart(t *testing.T) {
	dev := deviceWithSmart("sda", true, &types.SmartData{
		Status:     types.SmartPassed,
		Attributes: []types.SmartAttribute{{ID: 5, Name: "Reallocated_Sector_Ct", Prefail: true, Value: 90}},
	})
	dev.PrevSmart = &types.SmartData{
		Attributes: []types.SmartAttribute{{ID: 5, Name: "Reallocated_Sector_Ct", Prefail: true, Value: 100}},
	}

	alerts := Evaluate([]*types.BlockDevice{dev}, nil, nil, nil, testThresholds(), time.Now())
	require.Len(t, alerts, 1)
	assert.Contains(t, alerts[0].Message, "degraded 100 → 90")
}

func TestEvaluateNvmeSignals(t *testing.T) {
	dev := deviceWithSmart("nvme0n1", false, &types.SmartData{
		Status: types.SmartPassed,
		Nvme: &types.NvmeHealth{
			CriticalWarning:         1,
			MediaErrors:             2,
			AvailableSparePct:       5,
			AvailableSpareThreshold: 10,
		},
	})
	alerts := Evaluate([]*types.BlockDevice{dev}, nil, nil, nil, testThresholds(), time.Now())
	require.Len(t, alerts, 3)

	var sawCritical bool
	for _, a := range alerts {
		if a.Severity == types.SeverityCritical {
			sawCritical = true
		}
	}
	assert.True(t, sawCritical)
}

func TestEvaluateSustainedIoUtilWarns(t *testing.T) {
	dev := types.NewBlockDevice("sda", "/dev/sda", types.DeviceHDD)
	dev.IO.IoUtilPct = 95

	alerts := Evaluate([]*types.BlockDevice{dev}, nil, nil, nil, testThresholds(), time.Now())
	require.Len(t, alerts, 1)
	assert.Equal(t, "IO", alerts[0].Prefix)
}

func TestEvaluateFilesystemUsedPctThresholds(t *testing.T) {
	warn := &types.Filesystem{MountPoint: "/home", UsedPct: 90}
	crit := &types.Filesystem{MountPoint: "/", UsedPct: 97}

	alerts := Evaluate(nil, []*types.Filesystem{warn, crit}, nil, nil, testThresholds(), time.Now())
	require.Len(t, alerts, 2)

	// Critical sorts before Warning.
	assert.Equal(t, types.SeverityCritical, alerts[0].Severity)
	assert.Equal(t, "/", alerts[0].Source)
	assert.Equal(t, types.SeverityWarning, alerts[1].Severity)
	assert.Equal(t, "/home", alerts[1].Source)
}

func TestEvaluateFilesystemInodePctThresholds(t *testing.T) {
	fs := &types.Filesystem{MountPoint: "/var", TotalInodes: 1000, FreeInodes: 20}
	alerts := Evaluate(nil, []*types.Filesystem{fs}, nil, nil, testThresholds(), time.Now())
	require.Len(t, alerts, 1)
	assert.Equal(t, types.SeverityCritical, alerts[0].Severity)
	assert.Contains(t, alerts[0].Message, "Inodes")
}

func TestEvaluateSortOrderCriticalFirst(t *testing.T) {
	failedDev := deviceWithSmart("sda", true, &types.SmartData{Status: types.SmartFailed})
	warnFs := &types.Filesystem{MountPoint: "/home", UsedPct: 90}

	alerts := Evaluate([]*types.BlockDevice{failedDev}, []*types.Filesystem{warnFs}, nil, nil, testThresholds(), time.Now())
	require.Len(t, alerts, 2)
	assert.Equal(t, types.SeverityCritical, alerts[0].Severity)
	assert.Equal(t, types.SeverityWarning, alerts[1].Severity)
}

func TestEvaluateRaidDegradedIsCritical(t *testing.T) {
	r := types.RaidArray{Name: "md0", ActiveDevices: 1, TotalDevices: 2}
	alerts := Evaluate(nil, nil, []types.RaidArray{r}, nil, testThresholds(), time.Now())
	require.Len(t, alerts, 1)
	assert.Equal(t, types.SeverityCritical, alerts[0].Severity)
	assert.Equal(t, "RAID", alerts[0].Prefix)
	assert.Equal(t, "md0", alerts[0].Source)
}

func TestEvaluateRaidRebuildingWarns(t *testing.T) {
	r := types.RaidArray{Name: "md0", ActiveDevices: 2, TotalDevices: 2, State: "recovering", SyncPct: 42}
	alerts := Evaluate(nil, nil, []types.RaidArray{r}, nil, testThresholds(), time.Now())
	require.Len(t, alerts, 1)
	assert.Equal(t, types.SeverityWarning, alerts[0].Severity)
	assert.Contains(t, alerts[0].Message, "rebuilding 42%")
}

func TestEvaluateRaidDegradedAndRebuildingBothFire(t *testing.T) {
	r := types.RaidArray{Name: "md0", ActiveDevices: 1, TotalDevices: 2, State: "recovering", SyncPct: 10}
	alerts := Evaluate(nil, nil, []types.RaidArray{r}, nil, testThresholds(), time.Now())
	require.Len(t, alerts, 2)
	assert.Equal(t, types.SeverityCritical, alerts[0].Severity)
	assert.Equal(t, types.SeverityWarning, alerts[1].Severity)
}

func TestEvaluateZfsUnhealthyIsCritical(t *testing.T) {
	z := types.ZfsPool{Name: "tank", Health: "DEGRADED"}
	alerts := Evaluate(nil, nil, nil, []types.ZfsPool{z}, testThresholds(), time.Now())
	require.Len(t, alerts, 1)
	assert.Equal(t, types.SeverityCritical, alerts[0].Severity)
	assert.Equal(t, "ZFS", alerts[0].Prefix)
	assert.Equal(t, "tank", alerts[0].Source)
}

func TestEvaluateZfsOnlineIsSilent(t *testing.T) {
	z := types.ZfsPool{Name: "tank", Health: "ONLINE"}
	alerts := Evaluate(nil, nil, nil, []types.ZfsPool{z}, testThresholds(), time.Now())
	assert.Empty(t, alerts)
}
