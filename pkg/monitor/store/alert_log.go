// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/stratastor/logger"
	"github.com/stratastor/dtop/pkg/monitor/types"
)

const alertLogFileName = "alerts.log"

// alertLogTimeLayout is the fixed-offset log line timestamp: "2006-01-02
// 15:04:05".
const alertLogTimeLayout = "2006-01-02 15:04:05"

func alertLogPath(dataDir string) string {
	return filepath.Join(dataDir, alertLogFileName)
}

// AppendAlertLog appends one line per alert to the append-only log file.
func AppendAlertLog(l logger.Logger, dataDir string, alerts []types.Alert, now time.Time) {
	if len(alerts) == 0 {
		return
	}
	path := alertLogPath(dataDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		l.Warn("failed to create alert log directory", "err", err)
		return
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		l.Warn("failed to open alert log", "err", err)
		return
	}
	defer f.Close()

	ts := now.Format(alertLogTimeLayout)
	for _, a := range alerts {
		prefix := ""
		if a.Source != "" {
			prefix = "[" + a.Source + "] "
		}
		fmt.Fprintf(f, "%s [%s] %s%s\n", ts, a.Severity.Label(), prefix, a.Message)
	}
}

// LoadRecentAlertLog reads the last n lines of the alert log, oldest first,
// for pre-populating in-memory alert history on startup. Lines that don't
// match the fixed-offset format are skipped.
func LoadRecentAlertLog(dataDir string, n int) []types.Alert {
	f, err := os.Open(alertLogPath(dataDir))
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	start := 0
	if len(lines) > n {
		start = len(lines) - n
	}

	var out []types.Alert
	for _, line := range lines[start:] {
		if a, ok := parseAlertLogLine(line); ok {
			out = append(out, a)
		}
	}
	return out
}

func parseAlertLogLine(line string) (types.Alert, bool) {
	if len(line) < len(alertLogTimeLayout)+2 {
		return types.Alert{}, false
	}
	ts, err := time.ParseInLocation(alertLogTimeLayout, line[:len(alertLogTimeLayout)], time.Local)
	if err != nil {
		return types.Alert{}, false
	}
	rest := strings.TrimSpace(line[len(alertLogTimeLayout):])

	var severity types.Severity
	switch {
	case strings.HasPrefix(rest, "[CRIT]"):
		severity = types.SeverityCritical
		rest = rest[len("[CRIT]"):]
	case strings.HasPrefix(rest, "[WARN]"):
		severity = types.SeverityWarning
		rest = rest[len("[WARN]"):]
	case strings.HasPrefix(rest, "[INFO]"):
		severity = types.SeverityInfo
		rest = rest[len("[INFO]"):]
	default:
		return types.Alert{}, false
	}

	message := strings.TrimSpace(rest)
	source := ""
	if strings.HasPrefix(message, "[") {
		if end := strings.Index(message, "]"); end > 0 {
			source = message[1:end]
			message = strings.TrimSpace(message[end+1:])
		}
	}

	return types.Alert{Severity: severity, Source: source, Message: message, Timestamp: ts}, true
}
