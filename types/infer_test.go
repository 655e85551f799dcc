package types_test

import (
	"testing"

	"github.com/mlangtools/mparse/inspect"
	"github.com/mlangtools/mparse/lexer"
	"github.com/mlangtools/mparse/parser"
	"github.com/mlangtools/mparse/types"
)

func inferExpr(t *testing.T, input string) (*types.Inferencer, parser.Result) {
	t.Helper()
	snap, err := lexer.Tokenize("test", input)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", input, err)
	}
	res := parser.ParseExpression(snap, nil, nil)
	if res.Err != nil {
		t.Fatalf("unexpected parse error for %q: %v", input, res.Err)
	}
	return types.NewInferencer(res.Store, inspect.NewResolver(res.Store)), res
}

func rootTypeName(t *testing.T, input string) string {
	t.Helper()
	inf, res := inferExpr(t, input)
	return types.NameOf(inf.TryScopeType(res.RootId))
}

func TestInferLiterals(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"1", "number"},
		{"0x10", "number"},
		{`"hello"`, "text"},
		{"true", "true"},
		{"false", "false"},
		{"null", "nullable null"},
	}
	for _, c := range cases {
		if got := rootTypeName(t, c.input); got != c.want {
			t.Errorf("type of %q = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestInferArithmeticAndComparisons(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"1 + 2", "number"},
		{`"a" & "b"`, "text"},
		{"1 < 2", "logical"},
		{"1 = 2", "logical"},
		{`1 + "a"`, "none"},
		{"not true", "logical"},
		{"-1", "number"},
		{"1 is number", "logical"},
	}
	for _, c := range cases {
		if got := rootTypeName(t, c.input); got != c.want {
			t.Errorf("type of %q = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestInferIfUnionsBranchTypes(t *testing.T) {
	if got := rootTypeName(t, `if true then 1 else "x"`); got != "number | text" {
		t.Fatalf("got %q, want %q", got, "number | text")
	}
	if got := rootTypeName(t, "if true then 1 else 2"); got != "number" {
		t.Fatalf("same-kind branches should collapse, got %q", got)
	}
}

func TestInferLetFlowsFromInExpression(t *testing.T) {
	if got := rootTypeName(t, "let a = 1 in a"); got != "number" {
		t.Fatalf("got %q", got)
	}
	if got := rootTypeName(t, `let a = 1, b = "x" in if true then a else b`); got != "number | text" {
		t.Fatalf("got %q", got)
	}
}

func TestInferEachIsFunctionOverUnderscore(t *testing.T) {
	if got := rootTypeName(t, "each _"); got != "(_ as nullable any) => nullable any" {
		t.Fatalf("got %q", got)
	}
}

func TestInferFunctionExpression(t *testing.T) {
	if got := rootTypeName(t, "(x as number) => x"); got != "(x as number) => number" {
		t.Fatalf("got %q", got)
	}
	if got := rootTypeName(t, "(x) => x"); got != "(x as nullable any) => nullable any" {
		t.Fatalf("unannotated parameter should default to nullable any, got %q", got)
	}
}

func TestInferInvokeOfKnownFunctionIsItsReturn(t *testing.T) {
	if got := rootTypeName(t, "let f = (x as number) => x in f(1)"); got != "number" {
		t.Fatalf("got %q", got)
	}
}

func TestInferRecordLiteralAndFieldSelection(t *testing.T) {
	if got := rootTypeName(t, `[a = 1, b = "s"]`); got != `[a: number, b: text]` {
		t.Fatalf("record literal: %q", got)
	}
	if got := rootTypeName(t, "[a = 1].a"); got != "number" {
		t.Fatalf("field selection: %q", got)
	}
	if got := rootTypeName(t, "[a = 1].b"); got != "none" {
		t.Fatalf("missing field on a closed record should be none, got %q", got)
	}
}

func TestInferListLiteral(t *testing.T) {
	if got := rootTypeName(t, `{1, "x"}`); got != `{number, text}` {
		t.Fatalf("got %q", got)
	}
}

func TestInferRecursiveLetTerminatesAsUnknown(t *testing.T) {
	if got := rootTypeName(t, "let x = @x in x"); got != "unknown" {
		t.Fatalf("got %q", got)
	}
}

func TestInferContextNodeIsUnknown(t *testing.T) {
	snap, err := lexer.Tokenize("test", "{1, ")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	res := parser.ParseExpression(snap, nil, nil)
	if res.Err == nil {
		t.Fatalf("expected a parse error for the unterminated list")
	}
	if !res.HasRoot {
		t.Fatalf("expected a partial tree to survive the error")
	}
	inf := types.NewInferencer(res.Store, inspect.NewResolver(res.Store))
	if got := types.NameOf(inf.TryScopeType(res.RootId)); got != "unknown" {
		t.Fatalf("an open context should type as unknown, got %q", got)
	}
}

func TestInferMemoizesPerNodeId(t *testing.T) {
	inf, res := inferExpr(t, "1 + 2")
	first := inf.TryScopeType(res.RootId)
	second := inf.TryScopeType(res.RootId)
	if first != second {
		t.Fatalf("expected the cached *Type back on reentry")
	}
}
