/*
 * mparse
 *
 * Copyright 2024 The mparse Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package trace

import "sync"

/*
FanoutCallback receives one formatted trace line along with the phase and
task it came from, so a single subscriber can tell a Lex emission from a
Parse one without parsing the line itself.
*/
type FanoutCallback func(phase Phase, task string, line string)

/*
PubSubManager is a Manager that fans every emission out to however many
independent subscribers have registered for it - a logger, a live UI feed,
and a benchmark collector can all watch the same parse without wiring
through each other. A subscription with task == "" matches every task within
that phase.
*/
type PubSubManager struct {
	observers map[Phase]map[string][]FanoutCallback
	lock      sync.Mutex
}

/*
NewPubSubManager returns an empty PubSubManager.
*/
func NewPubSubManager() *PubSubManager {
	return &PubSubManager{observers: make(map[Phase]map[string][]FanoutCallback)}
}

/*
Subscribe registers cb for phase (and, if task is non-empty, only that task).
*/
func (m *PubSubManager) Subscribe(phase Phase, task string, cb FanoutCallback) {
	if cb == nil {
		return
	}
	m.lock.Lock()
	defer m.lock.Unlock()

	tasks, ok := m.observers[phase]
	if !ok {
		tasks = make(map[string][]FanoutCallback)
		m.observers[phase] = tasks
	}
	tasks[task] = append(tasks[task], cb)
}

/*
Unsubscribe drops every callback registered for phase and task. An empty
task clears only the phase-wide ("all tasks") subscriptions, mirroring
Subscribe's own task == "" meaning.
*/
func (m *PubSubManager) Unsubscribe(phase Phase, task string) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if tasks, ok := m.observers[phase]; ok {
		delete(tasks, task)
	}
}

func (m *PubSubManager) publish(phase Phase, task, line string) {
	m.lock.Lock()
	var matched []FanoutCallback
	if tasks, ok := m.observers[phase]; ok {
		matched = append(matched, tasks[task]...)
		if task != "" {
			matched = append(matched, tasks[""]...)
		}
	}
	m.lock.Unlock()

	for _, cb := range matched {
		cb(phase, task, line)
	}
}

/*
Entry opens a trace span and publishes its ENTRY line to every matching
subscriber.
*/
func (m *PubSubManager) Entry(phase Phase, task string, details interface{}) Trace {
	m.publish(phase, task, formatEntry(phase, task, details))
	return &pubSubTrace{m: m, phase: phase, task: task}
}

type pubSubTrace struct {
	m     *PubSubManager
	phase Phase
	task  string
}

func (t *pubSubTrace) TraceMsg(message string, details interface{}) {
	t.m.publish(t.phase, t.task, formatMsg(t.phase, t.task, message, details))
}

func (t *pubSubTrace) Exit(details interface{}) {
	t.m.publish(t.phase, t.task, formatExit(t.phase, t.task, details))
}
