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
Package mlog is the logging half of the toolchain's ambient stack: a small
leveled logger cmd/mlang and the trace manager's Report variant write
through. It knows the parse domain's own diagnostic shapes - a
*parser.Error operand logs as its reason tag plus the offending token's
position, not the flat Error() string - but nothing in the parser or
inspection packages depends on it; logging is never load-bearing for a
parse result.
*/
package mlog

import (
	"fmt"
	"log"
	"strings"

	"devt.de/krotik/common/datautil"

	"github.com/mlangtools/mparse/lexer"
	"github.com/mlangtools/mparse/parser"
)

/*
Level orders log severities from most to least verbose.
*/
type Level int

/*
Known log levels.
*/
const (
	Debug Level = iota
	Info
	Error
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	default:
		return "error"
	}
}

/*
ParseLevel maps a level name, as supplied on a CLI flag, to its Level.
*/
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return Debug, nil
	case "info":
		return Info, nil
	case "error":
		return Error, nil
	}
	return Error, fmt.Errorf("invalid log level: %v", name)
}

/*
Logger receives leveled messages. Operands are rendered through FormatValue
so parse diagnostics keep their structure in the emitted line.
*/
type Logger interface {
	LogError(m ...interface{})
	LogInfo(m ...interface{})
	LogDebug(m ...interface{})
}

/*
FormatValue renders a single log operand. The parse domain's diagnostic
shapes get a readable form of their own: a *parser.Error as its reason tag
anchored to the offending token's position, a lexer.Token as the token plus
where it sits. Everything else falls through to fmt.
*/
func FormatValue(v interface{}) string {
	switch d := v.(type) {
	case *parser.Error:
		return fmt.Sprintf("%s at line %d, col %d (found %s)",
			d.Reason, d.Token.PositionStart.LineNumber, d.Token.PositionStart.LineCodeUnit, d.Token)
	case lexer.Token:
		return fmt.Sprintf("%s at line %d, col %d",
			d, d.PositionStart.LineNumber, d.PositionStart.LineCodeUnit)
	}
	return fmt.Sprint(v)
}

func formatLine(lv Level, m []interface{}) string {
	parts := make([]string, len(m))
	for i, v := range m {
		parts[i] = FormatValue(v)
	}
	return lv.String() + ": " + strings.Join(parts, " ")
}

/*
LevelLogger writes formatted lines through a standard library *log.Logger,
dropping everything below its minimum level.
*/
type LevelLogger struct {
	min Level
	out *log.Logger
}

/*
NewLevelLogger returns a LevelLogger writing to out (log.Default() when
nil), keeping messages at or above the named level.
*/
func NewLevelLogger(out *log.Logger, level string) (*LevelLogger, error) {
	min, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = log.Default()
	}
	return &LevelLogger{min: min, out: out}, nil
}

func (l *LevelLogger) logAt(lv Level, m []interface{}) {
	if lv < l.min {
		return
	}
	l.out.Print(formatLine(lv, m))
}

func (l *LevelLogger) LogError(m ...interface{}) { l.logAt(Error, m) }
func (l *LevelLogger) LogInfo(m ...interface{})  { l.logAt(Info, m) }
func (l *LevelLogger) LogDebug(m ...interface{}) { l.logAt(Debug, m) }

/*
MemoryLogger retains the last size formatted lines in a bounded RingBuffer,
for a host that wants to surface recent parse diagnostics without growing
memory across a long editing session.
*/
type MemoryLogger struct {
	buf *datautil.RingBuffer
}

/*
NewMemoryLogger returns a memory logger retaining the last size lines.
*/
func NewMemoryLogger(size int) *MemoryLogger {
	return &MemoryLogger{buf: datautil.NewRingBuffer(size)}
}

func (ml *MemoryLogger) LogError(m ...interface{}) { ml.buf.Add(formatLine(Error, m)) }
func (ml *MemoryLogger) LogInfo(m ...interface{})  { ml.buf.Add(formatLine(Info, m)) }
func (ml *MemoryLogger) LogDebug(m ...interface{}) { ml.buf.Add(formatLine(Debug, m)) }

/*
Lines returns the retained lines, oldest first.
*/
func (ml *MemoryLogger) Lines() []string {
	sl := ml.buf.Slice()
	out := make([]string, len(sl))
	for i, v := range sl {
		out[i] = v.(string)
	}
	return out
}

/*
AsTraceCallback adapts l into the trace.Callback shape ReportManager and
BenchmarkManager take, logging each trace line at info level.
*/
func AsTraceCallback(l Logger) func(line string) {
	return func(line string) {
		l.LogInfo(line)
	}
}
