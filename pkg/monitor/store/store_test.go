// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratastor/logger"
)

func testLogger(t *testing.T) logger.Logger {
	l, err := logger.NewTag(logger.Config{LogLevel: "debug"}, "test")
	require.NoError(t, err)
	return l
}

func TestSaveJSONThenLoadJSONRoundTrips(t *testing.T) {
	l := testLogger(t)
	path := filepath.Join(t.TempDir(), "sub", "data.json")

	type payload struct {
		Name  string
		Count int
	}

	SaveJSON(l, path, &payload{Name: "sda", Count: 3})

	var out payload
	LoadJSON(l, path, &out)
	assert.Equal(t, "sda", out.Name)
	assert.Equal(t, 3, out.Count)
}

func TestLoadJSONMissingFileLeavesValueUntouched(t *testing.T) {
	l := testLogger(t)
	path := filepath.Join(t.TempDir(), "missing.json")

	out := map[string]int{"x": 1}
	LoadJSON(l, path, &out)
	assert.Equal(t, map[string]int{"x": 1}, out)
}
