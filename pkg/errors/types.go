/*
 * Copyright 2024-2025 Raamsri Kumar <raam@tinkershack.in>
 * Copyright 2024-2025 The StrataSTOR Authors and Contributors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package errors provides a domain-coded error type for dtop: a stable
// (domain, code) pair plus a human message, instead of bare fmt.Errorf
// strings. It carries no proto/gRPC conversion helpers — dtop exposes no
// RPC surface.
package errors

const (
	DomainConfig  Domain = "CONFIG"
	DomainCommand Domain = "CMD"
	DomainDisk    Domain = "DISK"
	DomainSmart   Domain = "SMART"
	DomainStore   Domain = "STORE"
	DomainAlert   Domain = "ALERT"
	DomainEngine  Domain = "ENGINE"
)

// ErrorCode is a unique, domain-scoped error identifier.
type ErrorCode int

// Domain is the subsystem where the error originated.
type Domain string

// DtopError is the engine's structured error type. Readers and parsers
// return it for failed reads and parses (e.g. DiskReadFailed,
// DiskParseFailed, SmartParseFailed), and the engine wraps scheduler set-up
// failures in it (EngineInvariantViolation).
type DtopError struct {
	Code    ErrorCode `json:"code"`
	Domain  Domain    `json:"domain"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`

	Metadata map[string]string `json:"metadata,omitempty"`
}

type errorDef struct {
	domain  Domain
	message string
}

var errorDefinitions = map[ErrorCode]errorDef{
	// Configuration errors (1000-1099)
	ConfigNotFound:     {DomainConfig, "config file not found"},
	ConfigInvalid:      {DomainConfig, "invalid config format"},
	ConfigLoadFailed:   {DomainConfig, "failed to load config"},
	ConfigWriteFailed:  {DomainConfig, "failed to write config"},
	ConfigParseFailed:  {DomainConfig, "failed to parse config"},

	// Command execution errors (1300-1399)
	CommandExecution:      {DomainCommand, "command execution failed"},
	CommandNotFound:       {DomainCommand, "command binary not found"},
	CommandInvalidInput:   {DomainCommand, "command arguments rejected by validator"},
	CommandTimeout:        {DomainCommand, "command timed out"},

	// Disk/counter-reader errors (2300-2399)
	DiskReadFailed:        {DomainDisk, "failed to read counter source"},
	DiskParseFailed:       {DomainDisk, "failed to parse counter source"},
	DiskDeviceNotFound:    {DomainDisk, "device not found"},

	// SMART errors (2400-2499)
	SmartExecFailed:       {DomainSmart, "smartctl invocation failed"},
	SmartParseFailed:      {DomainSmart, "failed to parse smartctl output"},
	SmartSchedulerBusy:    {DomainSmart, "device already has a poll in flight"},

	// Persistent-store errors (2500-2599)
	StoreLoadFailed:       {DomainStore, "failed to load persisted store"},
	StoreSaveFailed:       {DomainStore, "failed to save persisted store"},
	StoreCorrupted:        {DomainStore, "persisted store is corrupted"},

	// Alert errors (2600-2699)
	AlertDispatchFailed:   {DomainAlert, "failed to dispatch alert"},
	AlertWebhookFailed:    {DomainAlert, "webhook POST failed"},
	AlertNotifyFailed:     {DomainAlert, "desktop notification failed"},

	// Engine errors (2700-2799)
	EngineInvariantViolation: {DomainEngine, "internal invariant violated"},
}

const (
	ConfigNotFound = 1000 + iota
	ConfigInvalid
	ConfigLoadFailed
	ConfigWriteFailed
	ConfigParseFailed
)

const (
	CommandExecution = 1300 + iota
	CommandNotFound
	CommandInvalidInput
	CommandTimeout
)

const (
	DiskReadFailed = 2300 + iota
	DiskParseFailed
	DiskDeviceNotFound
)

const (
	SmartExecFailed = 2400 + iota
	SmartParseFailed
	SmartSchedulerBusy
)

const (
	StoreLoadFailed = 2500 + iota
	StoreSaveFailed
	StoreCorrupted
)

const (
	AlertDispatchFailed = 2600 + iota
	AlertWebhookFailed
	AlertNotifyFailed
)

const (
	EngineInvariantViolation = 2700 + iota
)
