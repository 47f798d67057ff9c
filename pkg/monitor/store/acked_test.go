// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAckedAlertsSaveLoadRoundTrips(t *testing.T) {
	l := testLogger(t)
	dir := t.TempDir()

	acked := map[string]bool{"WARN\x1fTEMP\x1fhot": true}
	SaveAckedAlerts(l, dir, acked)

	loaded := LoadAckedAlerts(l, dir)
	assert.Equal(t, acked, loaded)
}

func TestLoadAckedAlertsMissingReturnsEmptyMap(t *testing.T) {
	l := testLogger(t)
	loaded := LoadAckedAlerts(l, t.TempDir())
	assert.Empty(t, loaded)
}
