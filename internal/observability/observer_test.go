// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestStartTiming_EmitsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	obs := NewObserver(Debug, &buf)

	finish := obs.StartTiming("batch", "process", "3 inputs")
	finish(true, map[string]interface{}{"total": 3})

	if buf.Len() == 0 {
		t.Fatal("debug observer should emit an event")
	}

	var ev Event
	if err := json.Unmarshal(buf.Bytes(), &ev); err != nil {
		t.Fatalf("event is not valid JSON: %v", err)
	}
	if ev.Component != "batch" || ev.Operation != "process" {
		t.Errorf("unexpected event identity: %s/%s", ev.Component, ev.Operation)
	}
	if !ev.Success {
		t.Error("expected success flag on event")
	}
}

func TestLogOperation_SilentWhenOff(t *testing.T) {
	var buf bytes.Buffer
	obs := NewObserver(Off, &buf)

	obs.LogOperation(Event{Component: "batch", Operation: "process", Success: true})

	if buf.Len() != 0 {
		t.Errorf("off observer must stay silent, wrote %q", buf.String())
	}
}
