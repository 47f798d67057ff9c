// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package readers

// FilesystemSample is one mounted filesystem with its statvfs figures.
type FilesystemSample struct {
	Device     string
	MountPoint string
	FSType     string
	Stats      StatvfsStats
}

// ReadFilesystemSamples reads /proc/mounts and stats each surviving mount
// point via statvfs, returning raw samples for the engine to fold into its
// tracked Filesystem set. Mounts that fail to stat (race with an unmount)
// are skipped.
func ReadFilesystemSamples() ([]FilesystemSample, error) {
	mounts, err := ReadMounts()
	if err != nil {
		return nil, err
	}

	var out []FilesystemSample
	for _, m := range mounts {
		stats, err := Statvfs(m.MountPoint)
		if err != nil {
			continue
		}
		out = append(out, FilesystemSample{
			Device:     m.Device,
			MountPoint: m.MountPoint,
			FSType:     m.FSType,
			Stats:      stats,
		})
	}
	return out, nil
}
