// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package readers

import (
	"encoding/json"
	"strings"

	"github.com/stratastor/dtop/pkg/errors"
	"github.com/stratastor/dtop/pkg/monitor/types"
)

type lsblkJSON struct {
	BlockDevices []lsblkDevice `json:"blockdevices"`
}

type lsblkDevice struct {
	Name       string        `json:"name"`
	Type       string        `json:"type"`
	Size       uint64        `json:"size"`
	FSType     *string       `json:"fstype"`
	MountPoint *string       `json:"mountpoint"`
	Model      *string       `json:"model"`
	Serial     *string       `json:"serial"`
	Rota       bool          `json:"rota"`
	Tran       *string       `json:"tran"`
	Vendor     *string       `json:"vendor"`
	Children   []lsblkDevice `json:"children"`
}

// LsblkDisk is a discovered top-level disk device with its partitions.
type LsblkDisk struct {
	Name       string
	SizeBytes  uint64
	Model      string
	Serial     string
	Rotational bool
	Transport  string
	Partitions []types.Partition
}

// ParseLsblkJSON parses `lsblk --json --bytes -o
// NAME,TYPE,SIZE,FSTYPE,MOUNTPOINT,MODEL,SERIAL,ROTA,TRAN,VENDOR` output.
func ParseLsblkJSON(data []byte) ([]LsblkDisk, error) {
	var v lsblkJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, errors.Wrap(err, errors.DiskParseFailed).WithMetadata("tool", "lsblk")
	}

	var disks []LsblkDisk
	for _, dev := range v.BlockDevices {
		if dev.Name == "" || dev.Type != "disk" {
			continue
		}

		var partitions []types.Partition
		for _, child := range dev.Children {
			partitions = append(partitions, types.Partition{
				Name:       child.Name,
				Path:       "/dev/" + child.Name,
				SizeBytes:  child.Size,
				FSType:     strOpt(child.FSType),
				MountPoint: strOpt(child.MountPoint),
			})
		}

		disks = append(disks, LsblkDisk{
			Name:       dev.Name,
			SizeBytes:  dev.Size,
			Model:      strOpt(dev.Model),
			Serial:     strOpt(dev.Serial),
			Rotational: dev.Rota,
			Transport:  strOpt(dev.Tran),
			Partitions: partitions,
		})
	}
	return disks, nil
}

func strOpt(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// ClassifyDeviceType derives a DeviceType from lsblk's rota/tran fields.
func ClassifyDeviceType(rotational bool, transport, name string) types.DeviceType {
	switch {
	case transport == "nvme" || (len(name) >= 4 && name[:4] == "nvme"):
		return types.DeviceNVMe
	case transport == "virtio" || transport == "loop":
		return types.DeviceVirtual
	case rotational:
		return types.DeviceHDD
	case transport == "sata" || transport == "usb" || transport == "sas" || transport == "ata":
		return types.DeviceSSD
	default:
		return types.DeviceUnknown
	}
}
