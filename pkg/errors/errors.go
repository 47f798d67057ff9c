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

package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

func (e *DtopError) Error() string {
	msg := fmt.Sprintf("[%s-%d] %s", e.Domain, e.Code, e.Message)
	if e.Details != "" {
		msg += " - " + e.Details
	}
	if e.Metadata != nil {
		if stderr, ok := e.Metadata["stderr"]; ok && stderr != "" {
			msg += "\nCommand output: " + stderr
		}
	}
	return msg
}

func (e *DtopError) WithMetadata(key, value string) *DtopError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]string)
	}
	e.Metadata[key] = value
	return e
}

// MarshalJSON customizes JSON serialization to stamp a timestamp.
func (e *DtopError) MarshalJSON() ([]byte, error) {
	type Alias DtopError
	return json.Marshal(&struct {
		*Alias
		Timestamp string `json:"timestamp"`
	}{
		Alias:     (*Alias)(e),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// New creates a new DtopError from a known error code.
func New(code ErrorCode, details string) *DtopError {
	def, ok := errorDefinitions[code]
	if !ok {
		return &DtopError{
			Code:    code,
			Domain:  "UNKNOWN",
			Message: "unknown error",
			Details: details,
		}
	}

	return &DtopError{
		Code:    code,
		Domain:  def.domain,
		Message: def.message,
		Details: details,
	}
}

// Is implements the interface for errors.Is.
func (e *DtopError) Is(target error) bool {
	if t, ok := target.(*DtopError); ok {
		return e.Code == t.Code && e.Domain == t.Domain
	}
	return false
}

// Is checks if an error matches a sentinel error by (domain, code).
func Is(err, target error) bool {
	de, ok := err.(*DtopError)
	if !ok {
		return false
	}
	if t, ok := target.(*DtopError); ok {
		return de.Code == t.Code && de.Domain == t.Domain
	}
	return false
}

// Wrap wraps an existing error with additional context, preserving metadata.
func Wrap(err error, code ErrorCode) *DtopError {
	if de, ok := err.(*DtopError); ok {
		newErr := New(code, de.Details)
		if de.Metadata != nil {
			for k, v := range de.Metadata {
				newErr.WithMetadata(k, v)
			}
		}
		newErr.WithMetadata("wrapped_code", fmt.Sprintf("%d", de.Code))
		newErr.WithMetadata("wrapped_domain", string(de.Domain))
		newErr.WithMetadata("wrapped_message", de.Message)
		return newErr
	}
	return New(code, err.Error())
}

// NewCommandError builds a DtopError for a failed external-tool invocation.
func NewCommandError(cmd string, exitCode int, stderr string) *DtopError {
	return New(CommandExecution, "command execution failed").
		WithMetadata("command", cmd).
		WithMetadata("exit_code", fmt.Sprintf("%d", exitCode)).
		WithMetadata("stderr", stderr)
}

// IsDtopError checks if an error is a DtopError.
func IsDtopError(err error) bool {
	_, ok := err.(*DtopError)
	return ok
}

// GetCode extracts the error code from an error if it's a DtopError.
func GetCode(err error) (ErrorCode, bool) {
	if err == nil {
		return 0, false
	}
	if de, ok := err.(*DtopError); ok {
		return de.Code, true
	}
	var de *DtopError
	if errors.As(err, &de) {
		return de.Code, true
	}
	return 0, false
}
