// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"encoding/json"
	"io"
	"time"
)

// Observer emits operation timing events for the mapping pipeline.
type Observer struct {
	level  Level
	writer io.Writer
}

// Level controls whether the observer emits anything. Debug is the only
// emitting level; there is no intermediate state.
type Level int

const (
	Off   Level = 0
	Debug Level = 1
)

// NewObserver creates an observer writing to the given sink, typically
// stderr so events never mix with formatted output on stdout.
func NewObserver(level Level, writer io.Writer) *Observer {
	return &Observer{level: level, writer: writer}
}

// StartTiming returns a completion function that records the elapsed time
// of an operation together with caller-supplied metadata.
func (o *Observer) StartTiming(component, operation, subject string) func(success bool, metadata map[string]interface{}) {
	start := time.Now()

	return func(success bool, metadata map[string]interface{}) {
		o.LogOperation(Event{
			Component:  component,
			Operation:  operation,
			Subject:    subject,
			DurationMs: time.Since(start).Milliseconds(),
			Success:    success,
			Metadata:   metadata,
		})
	}
}

// LogOperation writes one event as a JSON line. Events are suppressed
// entirely below Debug.
func (o *Observer) LogOperation(event Event) {
	if o.level < Debug {
		return
	}
	json.NewEncoder(o.writer).Encode(event)
}

// Event describes one timed operation.
type Event struct {
	Component  string                 `json:"component"`
	Operation  string                 `json:"operation"`
	Subject    string                 `json:"subject,omitempty"`
	DurationMs int64                  `json:"duration_ms,omitempty"`
	Success    bool                   `json:"success"`
	Error      string                 `json:"error,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}
