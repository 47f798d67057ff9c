// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package readers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPartition(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"sda", false},
		{"sda1", true},
		{"sdb3", true},
		{"nvme0n1", false},
		{"nvme0n1p1", true},
		{"nvme1n1p12", true},
		{"md0", false},
		{"md0p1", false},
		{"dm-0", false},
		{"dm-1", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, isPartition(c.name))
		})
	}
}

func TestParseUint(t *testing.T) {
	assert.Equal(t, uint64(1234), parseUint("1234"))
	assert.Equal(t, uint64(0), parseUint("not-a-number"))
	assert.Equal(t, uint64(0), parseUint(""))
}

func TestIsAllDigits(t *testing.T) {
	assert.True(t, isAllDigits("123"))
	assert.False(t, isAllDigits(""))
	assert.False(t, isAllDigits("12a"))
	assert.False(t, isAllDigits("a12"))
}
