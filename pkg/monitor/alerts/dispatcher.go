// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package alerts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/stratastor/logger"
	"github.com/stratastor/dtop/pkg/httpclient"
	"github.com/stratastor/dtop/pkg/monitor/tools"
	"github.com/stratastor/dtop/pkg/monitor/types"
)

// maxHistoryEntries caps the in-memory recent-alert deque surfaced by the
// engine snapshot.
const maxHistoryEntries = 50

// Dispatcher tracks which alert keys are currently active, applies
// cooldown/ack suppression, and fans out newly-triggered alerts to the
// webhook, desktop notification, and append-only log.
type Dispatcher struct {
	logger logger.Logger

	webhookURL    string
	notifyWarning bool
	desktopNotify bool
	cooldown      time.Duration

	notifier *tools.NotifySendExecutor
	http     *httpclient.Client

	active     map[string]time.Time // key -> last-fired time
	acked      map[string]bool
	history    []types.Alert
}

func NewDispatcher(l logger.Logger, webhookURL string, notifyWarning, desktopNotify bool, cooldownHours int, acked map[string]bool) *Dispatcher {
	cfg := httpclient.NewClientConfig()
	cfg.Timeout = 10 * time.Second
	cfg.RetryCount = 0

	return &Dispatcher{
		logger:        l,
		webhookURL:    webhookURL,
		notifyWarning: notifyWarning,
		desktopNotify: desktopNotify,
		cooldown:      time.Duration(cooldownHours) * time.Hour,
		notifier:      tools.NewNotifySendExecutor(l),
		http:          httpclient.NewClient(cfg),
		active:        make(map[string]time.Time),
		acked:         acked,
	}
}

// Dispatch diffs the freshly evaluated alerts against what's currently
// active, applies cooldown/ack suppression, fires the webhook and desktop
// notification for the surviving set, and returns the full current alert
// list (for display) plus the subset that is newly triggered (for the log).
func (d *Dispatcher) Dispatch(ctx context.Context, evaluated []types.Alert, now time.Time) (current, fresh []types.Alert) {
	seen := make(map[string]bool, len(evaluated))

	for _, a := range evaluated {
		key := a.Key()
		seen[key] = true

		if d.acked[key] {
			current = append(current, a)
			continue
		}

		lastFired, wasActive := d.active[key]
		if wasActive && d.cooldown > 0 && now.Sub(lastFired) < d.cooldown {
			current = append(current, a)
			continue
		}
		if !wasActive {
			fresh = append(fresh, a)
		}
		d.active[key] = now
		current = append(current, a)
	}

	for key := range d.active {
		if !seen[key] {
			delete(d.active, key)
		}
	}

	if len(fresh) > 0 {
		d.pushHistory(fresh)
		d.fireWebhook(fresh)
		d.fireDesktopNotify(ctx, fresh)
	}

	return current, fresh
}

func (d *Dispatcher) pushHistory(alerts []types.Alert) {
	for _, a := range alerts {
		d.history = append([]types.Alert{a}, d.history...)
	}
	if len(d.history) > maxHistoryEntries {
		d.history = d.history[:maxHistoryEntries]
	}
}

// History returns the most recent alerts dispatched, newest first.
func (d *Dispatcher) History() []types.Alert {
	out := make([]types.Alert, len(d.history))
	copy(out, d.history)
	return out
}

// Ack marks an alert key as acknowledged. Later occurrences of that key
// still appear in the current alert list but are never reported as fresh,
// so they trigger no notification; the acked set is never cleared.
func (d *Dispatcher) Ack(key string) {
	d.acked[key] = true
}

// AckedAlerts exposes the current acked set for persistence.
func (d *Dispatcher) AckedAlerts() map[string]bool {
	return d.acked
}

func (d *Dispatcher) fireWebhook(alerts []types.Alert) {
	if d.webhookURL == "" {
		return
	}

	var relevant []types.Alert
	for _, a := range alerts {
		if a.Severity == types.SeverityCritical || (d.notifyWarning && a.Severity == types.SeverityWarning) {
			relevant = append(relevant, a)
		}
	}
	if len(relevant) == 0 {
		return
	}

	lines := make([]string, len(relevant))
	for i, a := range relevant {
		prefix := ""
		if a.Source != "" {
			prefix = "[" + a.Source + "] "
		}
		lines[i] = fmt.Sprintf("[%s] %s%s", a.Severity.Label(), prefix, a.Message)
	}
	text := strings.Join(lines, "\n")

	// Slack/Discord-compatible minimal payload. Fired detached so a slow or
	// unreachable endpoint never blocks the engine tick.
	go func() {
		_, err := d.http.R().
			SetHeader("Content-Type", "application/json").
			SetBody(map[string]string{"text": text}).
			Post(d.webhookURL)
		if err != nil {
			d.logger.Warn("webhook dispatch failed", "err", err)
		}
	}()
}

func (d *Dispatcher) fireDesktopNotify(ctx context.Context, alerts []types.Alert) {
	if !d.desktopNotify || len(alerts) == 0 {
		return
	}

	var relevant []types.Alert
	for _, a := range alerts {
		if a.Severity == types.SeverityCritical || (d.notifyWarning && a.Severity == types.SeverityWarning) {
			relevant = append(relevant, a)
		}
	}
	if len(relevant) == 0 {
		return
	}

	highest := relevant[0]
	for _, a := range relevant {
		if a.Severity.Rank() > highest.Severity.Rank() {
			highest = a
		}
	}

	urgency := "low"
	switch highest.Severity {
	case types.SeverityCritical:
		urgency = "critical"
	case types.SeverityWarning:
		urgency = "normal"
	}

	plural := ""
	if len(relevant) != 1 {
		plural = "s"
	}
	title := fmt.Sprintf("dtop: %d new alert%s", len(relevant), plural)
	// The body avoids brackets: the command executor rejects arguments
	// containing them.
	prefix := ""
	if highest.Source != "" {
		prefix = highest.Source + ": "
	}
	body := fmt.Sprintf("%s: %s%s", highest.Severity.Label(), prefix, highest.Message)

	go func() {
		_ = d.notifier.Send(ctx, urgency, title, body)
	}()
}
