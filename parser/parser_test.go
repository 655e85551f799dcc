package parser

import (
	"strings"
	"testing"

	"github.com/mlangtools/mparse/ast"
	"github.com/mlangtools/mparse/cancel"
	"github.com/mlangtools/mparse/lexer"
)

func mustTokenize(t *testing.T, input string) *lexer.Snapshot {
	t.Helper()
	snap, err := lexer.Tokenize("test", input)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", input, err)
	}
	return snap
}

func parseExpr(t *testing.T, input string) Result {
	t.Helper()
	return ParseExpression(mustTokenize(t, input), nil, nil)
}

func requireOK(t *testing.T, res Result) {
	t.Helper()
	if res.Err != nil {
		t.Fatalf("unexpected parse error: %v\n%s", res.Err, res.Store.Print(rootOrZero(res)))
	}
}

func rootOrZero(res Result) int {
	if res.HasRoot {
		return res.RootId
	}
	return 0
}

func TestArithmeticPrecedence(t *testing.T) {
	res := parseExpr(t, "1 + 2 * 3")
	requireOK(t, res)

	root, ok := res.Store.GetAst(res.RootId)
	if !ok || root.Kind != ast.KindArithmeticExpression {
		t.Fatalf("expected root ArithmeticExpression, got %+v", root)
	}
	if root.Attributes["operator"] != "+" {
		t.Errorf("expected top operator '+', got %v", root.Attributes["operator"])
	}

	rhs, ok := res.Store.NthChildAstChecked(root.Id, 1, ast.KindArithmeticExpression)
	if !ok {
		t.Fatalf("expected right child to be the multiplicative subexpression")
	}
	if rhs.Attributes["operator"] != "*" {
		t.Errorf("expected nested operator '*', got %v", rhs.Attributes["operator"])
	}
}

func TestLetExpression(t *testing.T) {
	res := parseExpr(t, "let a = 1, b = a + 1 in b")
	requireOK(t, res)

	root, ok := res.Store.GetAst(res.RootId)
	if !ok || root.Kind != ast.KindLetExpression {
		t.Fatalf("expected LetExpression root, got %+v", root)
	}

	wrapper, ok := res.Store.NthChildAstChecked(root.Id, 0, ast.KindArrayWrapper)
	if !ok {
		t.Fatalf("expected ArrayWrapper of bindings as child 0")
	}
	if got := len(res.Store.ChildIds(wrapper.Id)); got != 2 {
		t.Errorf("expected 2 bindings, got %d", got)
	}
}

func TestLetExpressionDanglingCommaReportsLetVariant(t *testing.T) {
	res := parseExpr(t, "let x = 1, in x")

	if res.Err == nil {
		t.Fatalf("expected an error for a dangling comma in a let binding list")
	}

	parseErr, ok := res.Err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T: %v", res.Err, res.Err)
	}
	if parseErr.Reason != ExpectedCsvContinuationLetExpression {
		t.Errorf("expected ExpectedCsvContinuationLetExpression, got %v", parseErr.Reason)
	}
}

func TestIfExpression(t *testing.T) {
	res := parseExpr(t, "if true then 1 else 2")
	requireOK(t, res)

	root, ok := res.Store.GetAst(res.RootId)
	if !ok || root.Kind != ast.KindIfExpression {
		t.Fatalf("expected IfExpression root, got %+v", root)
	}
	if len(res.Store.ChildIds(root.Id)) != 3 {
		t.Errorf("expected 3 children (cond/then/else), got %d", len(res.Store.ChildIds(root.Id)))
	}
}

func TestFunctionVsParenthesizedDisambiguation(t *testing.T) {
	fn := parseExpr(t, "(x, y) => x + y")
	requireOK(t, fn)
	if root, ok := fn.Store.GetAst(fn.RootId); !ok || root.Kind != ast.KindFunctionExpression {
		t.Fatalf("expected FunctionExpression, got %+v", root)
	}

	paren := parseExpr(t, "(1 + 2)")
	requireOK(t, paren)
	if root, ok := paren.Store.GetAst(paren.RootId); !ok || root.Kind != ast.KindParenthesizedExpr {
		t.Fatalf("expected ParenthesizedExpression, got %+v", root)
	}
}

func TestFunctionVsParenthesizedDisambiguation_Strict(t *testing.T) {
	fn := ParseExpressionWithBehavior(mustTokenize(t, "(x) => x"), nil, nil, Strict)
	requireOK(t, fn)
	if root, ok := fn.Store.GetAst(fn.RootId); !ok || root.Kind != ast.KindFunctionExpression {
		t.Fatalf("expected FunctionExpression under Strict, got %+v", root)
	}

	paren := ParseExpressionWithBehavior(mustTokenize(t, "(x)"), nil, nil, Strict)
	requireOK(t, paren)
	if root, ok := paren.Store.GetAst(paren.RootId); !ok || root.Kind != ast.KindParenthesizedExpr {
		t.Fatalf("expected ParenthesizedExpression under Strict, got %+v", root)
	}
}

/*
TestCancellationDuringSpeculationPropagatesInsteadOfFallback covers
spec.md sec. 4.2.4/sec. 7: a *cancel.Error raised while speculatively
reading the function-expression branch of "(x) => x" must propagate
immediately, not be treated as "that guess failed" and trigger a restore
into the parenthesized-expression fallback. Two polls (the outer primary
entry, then the parameter-list csv loop) are allowed through so
cancellation fires on the third poll, inside the function body - deep
enough that a restore-and-retry would be observable as a different root
node kind.
*/
func TestCancellationDuringSpeculationPropagatesInsteadOfFallback(t *testing.T) {
	tok := cancel.Counter(2)
	res := ParseExpressionWithBehavior(mustTokenize(t, "(x) => x"), tok, nil, Thorough)

	if _, ok := res.Err.(*cancel.Error); !ok {
		t.Fatalf("expected *cancel.Error, got %T: %v", res.Err, res.Err)
	}
	if !res.HasRoot {
		t.Fatalf("expected the in-progress function-expression context to remain as root")
	}
	ctx, ok := res.Store.GetContext(res.RootId)
	if !ok {
		t.Fatalf("expected root to still be an open Context, not a promoted AST node")
	}
	if ctx.Kind != ast.KindFunctionExpression {
		t.Fatalf("expected a cancellation to leave the FunctionExpression attempt in place rather than falling back to ParenthesizedExpression, got %v", ctx.Kind)
	}
}

/*
TestCancellationShortCircuitsDocumentOrchestrator covers the same
propagation rule one level up: a *cancel.Error from the expression attempt
in ParseDocumentWithBehavior must short-circuit immediately rather than be
treated as an ordinary parse failure that triggers a full second attempt
at readSection. The input also happens to be a well-formed section, so if
the section attempt were allowed to run it would open its own root
Context before its first cancellation poll (inside the member loop, after
consuming "section Foo;") and - having read further than the
zero-token expression attempt - would win the tie and be returned
instead, surfacing a Section root rather than no root at all.
*/
func TestCancellationShortCircuitsDocumentOrchestrator(t *testing.T) {
	tok := cancel.Counter(0)
	res := ParseDocumentWithBehavior(mustTokenize(t, "section Foo; a = 1;"), tok, nil, Thorough)

	if _, ok := res.Err.(*cancel.Error); !ok {
		t.Fatalf("expected *cancel.Error, got %T: %v", res.Err, res.Err)
	}
	if res.HasRoot {
		t.Fatalf("expected no root to have been opened - the section attempt must never run once the expression attempt was cancelled")
	}
}

func TestInvokeAndFieldAccessChain(t *testing.T) {
	res := parseExpr(t, "Table.AddColumn(source, \"x\")[x]")
	requireOK(t, res)

	root, ok := res.Store.GetAst(res.RootId)
	if !ok || root.Kind != ast.KindItemAccessExpr {
		t.Fatalf("expected ItemAccessExpression at the top, got %+v", root)
	}

	invoke, ok := res.Store.NthChildAstChecked(root.Id, 0, ast.KindInvokeExpression)
	if !ok {
		t.Fatalf("expected InvokeExpression as the item-access base")
	}

	fieldSel, ok := res.Store.NthChildAstChecked(invoke.Id, 0, ast.KindFieldSelector)
	if !ok {
		t.Fatalf("expected FieldSelector (Table.AddColumn) as the invoke's callee")
	}
	base, ok := res.Store.NthChildAstChecked(fieldSel.Id, 0, ast.KindIdentifier)
	if !ok || base.Token.Data != "Table" {
		t.Fatalf("expected Identifier 'Table' as the field selector's base, got %+v", base)
	}
}

func TestEachExpressionAndTry(t *testing.T) {
	res := parseExpr(t, "try each _ otherwise null")
	requireOK(t, res)

	root, ok := res.Store.GetAst(res.RootId)
	if !ok || root.Kind != ast.KindErrorHandlingExpr {
		t.Fatalf("expected ErrorHandlingExpression root, got %+v", root)
	}
	if len(res.Store.ChildIds(root.Id)) != 2 {
		t.Errorf("expected try + otherwise children, got %d", len(res.Store.ChildIds(root.Id)))
	}
}

func TestTypeExpression(t *testing.T) {
	res := parseExpr(t, "type nullable text")
	requireOK(t, res)

	root, ok := res.Store.GetAst(res.RootId)
	if !ok || root.Kind != ast.KindTypePrimaryType {
		t.Fatalf("expected TypePrimaryType root, got %+v", root)
	}
}

func TestSectionDisambiguation(t *testing.T) {
	snap := mustTokenize(t, "section Foo; a = 1; shared b = 2;")
	res := ParseDocument(snap, nil, nil)
	requireOK(t, res)

	root, ok := res.Store.GetAst(res.RootId)
	if !ok || root.Kind != ast.KindSection {
		t.Fatalf("expected Section root, got %+v", root)
	}
	if got := len(res.Store.ChildIds(root.Id)); got != 3 {
		t.Errorf("expected name + 2 members, got %d", got)
	}
}

func TestExpressionDocumentWins(t *testing.T) {
	snap := mustTokenize(t, "1 + 1")
	res := ParseDocument(snap, nil, nil)
	requireOK(t, res)

	root, ok := res.Store.GetAst(res.RootId)
	if !ok || root.Kind != ast.KindArithmeticExpression {
		t.Fatalf("expected a bare expression to win, got %+v", root)
	}
}

func TestUnterminatedListLeavesOpenContext(t *testing.T) {
	res := parseExpr(t, "{1, 2, ")

	if res.Err == nil {
		t.Fatalf("expected an error for unterminated list")
	}

	parseErr, ok := res.Err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T: %v", res.Err, res.Err)
	}
	if parseErr.Reason != ExpectedCsvContinuationDanglingComma && parseErr.Reason != UnterminatedSequence {
		t.Errorf("unexpected reason %v", parseErr.Reason)
	}

	if !res.HasRoot {
		t.Fatalf("expected a root to have been opened despite the error")
	}
	if _, ok := res.Store.GetContext(res.RootId); !ok {
		t.Errorf("expected the list literal to still be an open Context, not a promoted AST node")
	}
}

func TestSectionDisambiguationRecordsAbandonedExpressionAttempt(t *testing.T) {
	snap := mustTokenize(t, "section Foo; a = 1; shared b = 2;")
	res := ParseDocument(snap, nil, nil)
	requireOK(t, res)

	if len(res.AbandonedErrors) == 0 {
		t.Fatalf("expected the losing expression attempt's error to be recorded")
	}
}

func TestTryParseExpressionReportsOkAndErr(t *testing.T) {
	snap := mustTokenize(t, "1 + 1")
	outcome := TryParseExpression(snap, nil, nil, Thorough)
	if !outcome.IsOk() {
		t.Fatalf("expected Ok, got err %v", outcome.Err())
	}

	badSnap := mustTokenize(t, "{1, }")
	badOutcome := TryParseExpression(badSnap, nil, nil, Thorough)
	if badOutcome.IsOk() {
		t.Fatalf("expected an error outcome for a dangling comma")
	}
	if badOutcome.Err() == nil {
		t.Fatalf("expected TryParseExpression's Err outcome to carry the parse error")
	}
}

func TestTryParseDocumentMatchesParseDocument(t *testing.T) {
	snap := mustTokenize(t, "section Foo; a = 1;")
	outcome := TryParseDocument(snap, nil, nil, Thorough)
	res, ok := outcome.Value()
	if !ok {
		t.Fatalf("expected Ok, got err %v", outcome.Err())
	}
	if !res.HasRoot {
		t.Fatalf("expected a root node in the wrapped Result")
	}
}

func TestDeepestErrorPicksFurthestAttempt(t *testing.T) {
	shallow := &Error{Token: lexer.Token{PositionStart: lexer.Position{CodeUnit: 2}}}
	deep := &Error{Token: lexer.Token{PositionStart: lexer.Position{CodeUnit: 9}}}

	got := deepestError(shallow, deep)
	if got != deep {
		t.Errorf("expected the error at the furthest code unit to win")
	}
}

func TestRecordLiteralAndFieldProjection(t *testing.T) {
	res := parseExpr(t, "[a = 1, b = 2][[a]]")
	requireOK(t, res)

	root, ok := res.Store.GetAst(res.RootId)
	if !ok || root.Kind != ast.KindFieldProjection {
		t.Fatalf("expected FieldProjection root, got %+v", root)
	}
}

func TestTryCatchExpression(t *testing.T) {
	res := parseExpr(t, "try 1 / 0 catch (e) => e")
	requireOK(t, res)

	root, ok := res.Store.GetAst(res.RootId)
	if !ok || root.Kind != ast.KindErrorHandlingExpr {
		t.Fatalf("expected ErrorHandlingExpression root, got %+v", root)
	}
	catch, ok := res.Store.NthChildAstChecked(root.Id, 1, ast.KindCatchExpression)
	if !ok {
		t.Fatalf("expected CatchExpression as child 1")
	}
	param, ok := res.Store.NthChildAstChecked(catch.Id, 0, ast.KindIdentifier)
	if !ok || param.Token.Data != "e" {
		t.Fatalf("expected catch parameter 'e', got %+v", param)
	}
}

func TestInvalidCatchFunctionTwoParameters(t *testing.T) {
	res := parseExpr(t, "try 1 catch (e, f) => e")
	if res.Err == nil {
		t.Fatalf("expected an error for a two-parameter catch function")
	}
	parseErr, ok := res.Err.(*Error)
	if !ok || parseErr.Reason != InvalidCatchFunction {
		t.Fatalf("expected InvalidCatchFunction, got %v", res.Err)
	}
}

func TestQuotedIdentifierFieldAccess(t *testing.T) {
	res := parseExpr(t, `record.#"field name"`)
	requireOK(t, res)

	root, ok := res.Store.GetAst(res.RootId)
	if !ok || root.Kind != ast.KindFieldSelector {
		t.Fatalf("expected FieldSelector root, got %+v", root)
	}
}

func TestNotImplementedExpression(t *testing.T) {
	res := parseExpr(t, "(x) => ...")
	requireOK(t, res)
	if len(res.Store.IdsByKind(ast.KindNotImplementedExpr)) != 1 {
		t.Fatalf("expected a single NotImplementedExpression leaf")
	}
}

func TestRecordEntriesAreGeneralizedPairs(t *testing.T) {
	res := parseExpr(t, "[a = 1]")
	requireOK(t, res)
	if len(res.Store.IdsByKind(ast.KindGeneralizedIdPairedExpr)) != 1 {
		t.Fatalf("expected the record entry to be a generalized identifier pair")
	}

	res = parseExpr(t, "let a = 1 in a")
	requireOK(t, res)
	if len(res.Store.IdsByKind(ast.KindIdentifierPairedExpr)) != 1 {
		t.Fatalf("expected the let binding to stay an identifier pair")
	}
}

func TestNullableStructuralType(t *testing.T) {
	res := parseExpr(t, "type nullable {text}")
	requireOK(t, res)
	if len(res.Store.IdsByKind(ast.KindNullableType)) != 1 {
		t.Fatalf("expected a NullableType wrapper around the list type")
	}
}

func TestOptionalParameter(t *testing.T) {
	res := parseExpr(t, "(optional x) => 1")
	requireOK(t, res)

	paramIds := res.Store.IdsByKind(ast.KindParameter)
	if len(paramIds) != 1 {
		t.Fatalf("expected one parameter, got %v", paramIds)
	}
	param, _ := res.Store.GetAst(paramIds[0])
	if opt, _ := param.Attributes["optional"].(bool); !opt {
		t.Fatalf("expected the parameter to be marked optional")
	}
}

func TestRequiredParameterAfterOptionalParameter(t *testing.T) {
	res := ParseExpressionWithBehavior(mustTokenize(t, "(optional x, y) => y"), nil, nil, Strict)
	pe, ok := res.Err.(*Error)
	if !ok || pe.Reason != RequiredParameterAfterOptionalParameter {
		t.Fatalf("expected RequiredParameterAfterOptionalParameter, got %v", res.Err)
	}
}

/*
TestCancellationObservedMidPostfixChain drives a long dotted chain, which
never re-enters readPrimaryExpression or a csv loop after the first leaf:
the field selector's dotted name takes every remaining `.b` segment in one
loop, so that loop must poll, or the whole chain would be consumed before a
cancellation is noticed.
*/
func TestCancellationObservedMidPostfixChain(t *testing.T) {
	src := "a" + strings.Repeat(".b", 50)
	res := ParseExpression(mustTokenize(t, src), cancel.Counter(10), nil)

	if _, ok := res.Err.(*cancel.Error); !ok {
		t.Fatalf("expected *cancel.Error, got %T: %v", res.Err, res.Err)
	}
}
