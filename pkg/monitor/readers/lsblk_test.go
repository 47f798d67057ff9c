// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package readers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratastor/dtop/pkg/monitor/types"
)

const lsblkFixture = `{
  "blockdevices": [
    {
      "name": "sda", "type": "disk", "size": 1000204886016,
      "fstype": null, "mountpoint": null,
      "model": "ST1000DM", "serial": "Z1D2AB3C",
      "rota": true, "tran": "sata", "vendor": "ATA",
      "children": [
        {
          "name": "sda1", "type": "part", "size": 536870912,
          "fstype": "vfat", "mountpoint": "/boot"
        },
        {
          "name": "sda2", "type": "part", "size": 999667015680,
          "fstype": "ext4", "mountpoint": "/"
        }
      ]
    },
    {
      "name": "nvme0n1", "type": "disk", "size": 512110190592,
      "fstype": null, "mountpoint": null,
      "model": "Samsung SSD 980", "serial": "S6",
      "rota": false, "tran": "nvme",
      "children": null
    },
    {
      "name": "loop0", "type": "loop", "size": 4096
    }
  ]
}`

func TestParseLsblkJSON(t *testing.T) {
	disks, err := ParseLsblkJSON([]byte(lsblkFixture))
	require.NoError(t, err)
	require.Len(t, disks, 2)

	sda := disks[0]
	assert.Equal(t, "sda", sda.Name)
	assert.Equal(t, uint64(1000204886016), sda.SizeBytes)
	assert.Equal(t, "ST1000DM", sda.Model)
	assert.Equal(t, "Z1D2AB3C", sda.Serial)
	assert.True(t, sda.Rotational)
	assert.Equal(t, "sata", sda.Transport)
	require.Len(t, sda.Partitions, 2)
	assert.Equal(t, "sda1", sda.Partitions[0].Name)
	assert.Equal(t, "/dev/sda1", sda.Partitions[0].Path)
	assert.Equal(t, "vfat", sda.Partitions[0].FSType)
	assert.Equal(t, "/boot", sda.Partitions[0].MountPoint)

	nvme := disks[1]
	assert.Equal(t, "nvme0n1", nvme.Name)
	assert.False(t, nvme.Rotational)
	assert.Equal(t, "nvme", nvme.Transport)
	assert.Empty(t, nvme.Partitions)
}

func TestParseLsblkJSONInvalid(t *testing.T) {
	_, err := ParseLsblkJSON([]byte("not json"))
	assert.Error(t, err)
}

func TestClassifyDeviceType(t *testing.T) {
	cases := []struct {
		name       string
		rotational bool
		transport  string
		devName    string
		want       types.DeviceType
	}{
		{"nvme by transport", false, "nvme", "nvme0n1", types.DeviceNVMe},
		{"nvme by name prefix", false, "", "nvme1n1", types.DeviceNVMe},
		{"virtio", false, "virtio", "vda", types.DeviceVirtual},
		{"loop", false, "loop", "loop0", types.DeviceVirtual},
		{"rotational hdd", true, "sata", "sda", types.DeviceHDD},
		{"sata ssd", false, "sata", "sda", types.DeviceSSD},
		{"usb ssd", false, "usb", "sdb", types.DeviceSSD},
		{"unknown", false, "weird", "xvda", types.DeviceUnknown},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ClassifyDeviceType(c.rotational, c.transport, c.devName))
		})
	}
}
