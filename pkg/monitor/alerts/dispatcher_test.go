// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package alerts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratastor/logger"

	"github.com/stratastor/dtop/pkg/monitor/types"
)

func newTestDispatcher(t *testing.T, cooldownHours int) *Dispatcher {
	l, err := logger.NewTag(logger.Config{LogLevel: "debug"}, "test")
	require.NoError(t, err)
	return NewDispatcher(l, "", false, false, cooldownHours, make(map[string]bool))
}

func crit(source, msg string) types.Alert {
	return types.Alert{Severity: types.SeverityCritical, Prefix: "SMART", Source: source, Message: msg}
}

func TestDispatchFirstOccurrenceIsFresh(t *testing.T) {
	d := newTestDispatcher(t, 0)
	current, fresh := d.Dispatch(context.Background(), []types.Alert{crit("sda", "SMART health check FAILED")}, time.Now())

	assert.Len(t, current, 1)
	assert.Len(t, fresh, 1)
}

func TestDispatchRepeatedConditionWithoutCooldownIsNotFresh(t *testing.T) {
	d := newTestDispatcher(t, 0)
	now := time.Now()
	a := crit("sda", "SMART health check FAILED")

	d.Dispatch(context.Background(), []types.Alert{a}, now)
	_, fresh := d.Dispatch(context.Background(), []types.Alert{a}, now.Add(time.Minute))

	// cooldown disabled (0 hours) means every tick the condition holds is
	// folded into current but never re-flagged as fresh once active.
	assert.Empty(t, fresh)
}

func TestDispatchClearedConditionReactivatesAsFresh(t *testing.T) {
	d := newTestDispatcher(t, 1)
	now := time.Now()
	a := crit("sda", "SMART health check FAILED")

	d.Dispatch(context.Background(), []types.Alert{a}, now)
	// condition clears for one tick
	d.Dispatch(context.Background(), nil, now.Add(time.Minute))
	_, fresh := d.Dispatch(context.Background(), []types.Alert{a}, now.Add(2*time.Minute))

	assert.Len(t, fresh, 1)
}

func TestDispatchAckedAlertSuppressed(t *testing.T) {
	d := newTestDispatcher(t, 0)
	a := crit("sda", "SMART health check FAILED")
	d.Ack(a.Key())

	current, fresh := d.Dispatch(context.Background(), []types.Alert{a}, time.Now())
	assert.Len(t, current, 1)
	assert.Empty(t, fresh)
}

func TestDispatchHistoryCapped(t *testing.T) {
	d := newTestDispatcher(t, 0)
	now := time.Now()

	for i := 0; i < maxHistoryEntries+10; i++ {
		a := crit("sda", string(rune('a'+i%26))+"-event")
		d.Dispatch(context.Background(), []types.Alert{a}, now.Add(time.Duration(i)*time.Second))
	}

	assert.Len(t, d.History(), maxHistoryEntries)
}

func TestAckedAlertsExposesUnderlyingSet(t *testing.T) {
	d := newTestDispatcher(t, 0)
	d.Ack("some-key")
	assert.True(t, d.AckedAlerts()["some-key"])
}
