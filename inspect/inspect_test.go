/*
 * mparse
 *
 * Copyright 2024 The mparse Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package inspect

import (
	"strings"
	"testing"

	"github.com/mlangtools/mparse/ast"
	"github.com/mlangtools/mparse/lexer"
	"github.com/mlangtools/mparse/parser"
)

/*
cursorFromMarker strips the single "|" marker out of input and returns the
clean source together with the lexer.Position the marker stood at, using the
same byte-offset accounting lexer.Tokenize uses internally.
*/
func cursorFromMarker(t *testing.T, input string) (string, lexer.Position) {
	t.Helper()
	idx := strings.IndexByte(input, '|')
	if idx < 0 {
		t.Fatalf("input %q has no | cursor marker", input)
	}
	clean := input[:idx] + input[idx+1:]

	before := input[:idx]
	lineStart := strings.LastIndex(before, "\n") + 1
	pos := lexer.Position{
		LineNumber:   strings.Count(before, "\n"),
		LineCodeUnit: idx - lineStart,
		CodeUnit:     idx,
	}
	return clean, pos
}

func mustParseExpr(t *testing.T, input string) parser.Result {
	t.Helper()
	snap, err := lexer.Tokenize("test", input)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", input, err)
	}
	res := parser.ParseExpression(snap, nil, nil)
	if res.Err != nil {
		t.Fatalf("unexpected parse error for %q: %v", input, res.Err)
	}
	return res
}

/*
activeAt parses input as an expression, locates the "|" cursor marker, and
returns the resulting ActiveNode together with the node store it belongs to.
*/
func activeAt(t *testing.T, markedInput string) (*ast.Store, *ActiveNode) {
	t.Helper()
	clean, pos := cursorFromMarker(t, markedInput)
	res := mustParseExpr(t, clean)
	active, ok := TryFromPosition(res.Store, pos)
	if !ok {
		t.Fatalf("TryFromPosition found no active node in %q at %+v", clean, pos)
	}
	return res.Store, active
}
