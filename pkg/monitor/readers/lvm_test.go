// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package readers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVgs(t *testing.T) {
	out := []byte("  vg0   536870912000   107374182400   2\n  vg1   107374182400   0   1\n")
	vgs := ParseVgs(out)
	require.Len(t, vgs, 2)

	assert.Equal(t, "vg0", vgs[0].Name)
	assert.Equal(t, uint64(536870912000), vgs[0].SizeBytes)
	assert.Equal(t, uint64(107374182400), vgs[0].FreeBytes)
	assert.Equal(t, 2, vgs[0].PhysicalCount)

	assert.Equal(t, "vg1", vgs[1].Name)
	assert.Equal(t, uint64(0), vgs[1].FreeBytes)
}

func TestParseVgsSkipsShortLines(t *testing.T) {
	vgs := ParseVgs([]byte("  \n  vg0 only-two-fields\n"))
	assert.Empty(t, vgs)
}

func TestParseLvs(t *testing.T) {
	out := []byte("  lv_root   vg0   53687091200   \n  lv_thin   vg0   10737418240   42.50\n")
	lvs := ParseLvs(out)
	require.Len(t, lvs, 2)

	assert.Equal(t, "lv_root", lvs[0].Name)
	assert.Equal(t, "vg0", lvs[0].VolumeGroup)
	assert.Equal(t, uint64(53687091200), lvs[0].SizeBytes)
	assert.Equal(t, 0.0, lvs[0].UsedPct)

	assert.Equal(t, "lv_thin", lvs[1].Name)
	assert.Equal(t, 42.50, lvs[1].UsedPct)
}
