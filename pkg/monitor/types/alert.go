// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"fmt"
	"time"
)

// Alert is one evaluator finding. Source identifies the device/mount/
// process the alert concerns (e.g. "sda", "/home", "nfs:server:/export").
type Alert struct {
	Severity  Severity
	Prefix    string // short category tag, e.g. "SMART", "TEMP", "FS", "RAID"
	Source    string
	Message   string
	Timestamp time.Time
}

// Key is the dedup/ack/cooldown identity of an alert: severity, prefix,
// source, and message. Timestamp deliberately does not participate, since
// the same condition recurring on the same source is the same alert; Source
// does participate, since the same condition on two different devices or
// mounts is two distinct alerts.
func (a Alert) Key() string {
	return fmt.Sprintf("%s\x1f%s\x1f%s\x1f%s", a.Severity.Label(), a.Prefix, a.Source, a.Message)
}

// String renders a one-line form: RFC 3339 timestamp, [SEV] tag, source and
// message. The alert log file uses its own layout (see store.AppendAlertLog).
func (a Alert) String() string {
	return fmt.Sprintf("%s [%s] %s: %s", a.Timestamp.Format(time.RFC3339), a.Severity.Label(), a.Source, a.Message)
}
