// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package readers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseZpoolList(t *testing.T) {
	out := []byte("tank\t1000000\t250000\t750000\tONLINE\t5%\ndata\t500000\t500000\t0\tDEGRADED\t0%\n")
	pools := ParseZpoolList(out)
	require.Len(t, pools, 2)

	tank := pools[0]
	assert.Equal(t, "tank", tank.Name)
	assert.Equal(t, uint64(1000000), tank.SizeBytes)
	assert.Equal(t, uint64(250000), tank.AllocB)
	assert.Equal(t, uint64(750000), tank.FreeB)
	assert.Equal(t, "ONLINE", tank.Health)
	assert.Equal(t, 5.0, tank.Fragment)
	assert.InDelta(t, 25.0, tank.CapPct, 0.001)

	data := pools[1]
	assert.Equal(t, "DEGRADED", data.Health)
	assert.Equal(t, 100.0, data.CapPct)
}

func TestParseZpoolListSkipsEmptyLines(t *testing.T) {
	pools := ParseZpoolList([]byte("\n\n"))
	assert.Empty(t, pools)
}
