/*
 * mparse
 *
 * Copyright 2024 The mparse Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

/*
Package trace implements the side-channel trace manager protocol. Tracing
never influences parse results - a failure while serializing details falls
back to a sentinel string rather than propagating.
*/
package trace

import (
	"encoding/json"
	"fmt"
	"time"
)

/*
Phase identifies which pipeline stage emitted a trace.
*/
type Phase string

/*
Known trace phases.
*/
const (
	PhaseLex   Phase = "Lex"
	PhaseParse Phase = "Parse"
)

/*
jsonStringifyErrorSentinel is returned in place of trace details that could
not be marshalled.
*/
const jsonStringifyErrorSentinel = "[JSON.stringify Error]"

/*
Trace is a single open trace span.
*/
type Trace interface {

	/*
		TraceMsg records an intermediate message against this span.
	*/
	TraceMsg(message string, details interface{})

	/*
		Exit closes this span.
	*/
	Exit(details interface{})
}

/*
Manager is the trace manager protocol. Implementations must tolerate being
nil-like no-ops - tracing is never load-bearing for a parse result.
*/
type Manager interface {

	/*
		Entry opens a new trace span for a task within a pipeline phase.
	*/
	Entry(phase Phase, task string, details interface{}) Trace
}

func formatEntry(phase Phase, task string, details interface{}) string {
	return fmt.Sprintf("[%s] %s ENTRY %s", phase, task, safeJSON(details))
}

func formatMsg(phase Phase, task, message string, details interface{}) string {
	return fmt.Sprintf("[%s] %s %s %s", phase, task, message, safeJSON(details))
}

func formatExit(phase Phase, task string, details interface{}) string {
	return fmt.Sprintf("[%s] %s EXIT %s", phase, task, safeJSON(details))
}

func safeJSON(v interface{}) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return jsonStringifyErrorSentinel
	}
	return string(b)
}

// NoOp
// ====

type noOpManager struct{}
type noOpTrace struct{}

/*
NoOpManager returns a Manager which discards every trace.
*/
func NoOpManager() Manager { return noOpManager{} }

func (noOpManager) Entry(Phase, string, interface{}) Trace { return noOpTrace{} }
func (noOpTrace) TraceMsg(string, interface{})             {}
func (noOpTrace) Exit(interface{})                         {}

// Report
// ======

/*
Callback receives a single formatted trace line.
*/
type Callback func(line string)

type reportManager struct {
	cb Callback
}

type reportTrace struct {
	cb    Callback
	phase Phase
	task  string
}

/*
ReportManager returns a Manager which formats every emission and forwards it
to cb.
*/
func ReportManager(cb Callback) Manager {
	return &reportManager{cb: cb}
}

func (m *reportManager) Entry(phase Phase, task string, details interface{}) Trace {
	m.cb(formatEntry(phase, task, details))
	return &reportTrace{cb: m.cb, phase: phase, task: task}
}

func (t *reportTrace) TraceMsg(message string, details interface{}) {
	t.cb(formatMsg(t.phase, t.task, message, details))
}

func (t *reportTrace) Exit(details interface{}) {
	t.cb(formatExit(t.phase, t.task, details))
}

// Benchmark
// =========

/*
benchmarkManager is a ReportManager variant which additionally stamps every
emission with the current time and the delta since the span was opened.
*/
type benchmarkManager struct {
	cb Callback
}

type benchmarkTrace struct {
	cb     Callback
	phase  Phase
	task   string
	opened time.Time
	last   time.Time
}

/*
BenchmarkManager returns a Manager like ReportManager but additionally
includes {timeNow, timeDelta} in every emission.
*/
func BenchmarkManager(cb Callback) Manager {
	return &benchmarkManager{cb: cb}
}

func (m *benchmarkManager) Entry(phase Phase, task string, details interface{}) Trace {
	now := time.Now()
	m.cb(fmt.Sprintf("[%s] %s ENTRY %s (timeNow=%s timeDelta=0s)",
		phase, task, safeJSON(details), now.Format(time.RFC3339Nano)))
	return &benchmarkTrace{cb: m.cb, phase: phase, task: task, opened: now, last: now}
}

func (t *benchmarkTrace) TraceMsg(message string, details interface{}) {
	now := time.Now()
	t.cb(fmt.Sprintf("[%s] %s %s %s (timeNow=%s timeDelta=%s)",
		t.phase, t.task, message, safeJSON(details), now.Format(time.RFC3339Nano), now.Sub(t.last)))
	t.last = now
}

func (t *benchmarkTrace) Exit(details interface{}) {
	now := time.Now()
	t.cb(fmt.Sprintf("[%s] %s EXIT %s (timeNow=%s timeDelta=%s)",
		t.phase, t.task, safeJSON(details), now.Format(time.RFC3339Nano), now.Sub(t.opened)))
}
