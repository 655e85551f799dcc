/*
 * mparse
 *
 * Copyright 2024 The mparse Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package mlog

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/mlangtools/mparse/lexer"
	"github.com/mlangtools/mparse/parser"
)

func TestLevelLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLevelLogger(log.New(&buf, "", 0), "info")
	if err != nil {
		t.Fatalf("NewLevelLogger: %v", err)
	}

	l.LogDebug("dropped")
	l.LogInfo("kept")
	l.LogError("kept too")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("debug line should have been filtered, got %q", out)
	}
	if !strings.Contains(out, "info: kept") {
		t.Errorf("expected the info line in %q", out)
	}
	if !strings.Contains(out, "error: kept too") {
		t.Errorf("expected the error line in %q", out)
	}
}

func TestNewLevelLoggerRejectsUnknownLevel(t *testing.T) {
	if _, err := NewLevelLogger(nil, "chatty"); err == nil {
		t.Fatalf("expected an error for an unknown level")
	}
}

func TestFormatValueRendersParseErrors(t *testing.T) {
	snap, err := lexer.Tokenize("test", "{1, }")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	res := parser.ParseExpression(snap, nil, nil)
	pe, ok := res.Err.(*parser.Error)
	if !ok {
		t.Fatalf("expected a parse error, got %v", res.Err)
	}

	line := FormatValue(pe)
	if !strings.Contains(line, pe.Reason.String()) {
		t.Errorf("expected the reason tag in %q", line)
	}
	if !strings.Contains(line, "line 0") {
		t.Errorf("expected the token position in %q", line)
	}
}

func TestFormatValueRendersTokens(t *testing.T) {
	snap, err := lexer.Tokenize("test", "foo")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	line := FormatValue(snap.At(0))
	if !strings.Contains(line, `"foo"`) || !strings.Contains(line, "line 0, col 0") {
		t.Errorf("expected token text and position in %q", line)
	}
}

func TestMemoryLoggerBounded(t *testing.T) {
	ml := NewMemoryLogger(2)
	ml.LogInfo("one")
	ml.LogInfo("two")
	ml.LogDebug("three")

	lines := ml.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected the buffer to retain 2 lines, got %v", lines)
	}
	if lines[0] != "info: two" || lines[1] != "debug: three" {
		t.Fatalf("expected the oldest line evicted, got %v", lines)
	}
}
