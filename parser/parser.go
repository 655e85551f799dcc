/*
 * mparse
 *
 * Copyright 2024 The mparse Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package parser

import (
	"github.com/mlangtools/mparse/ast"
	"github.com/mlangtools/mparse/cancel"
	"github.com/mlangtools/mparse/lexer"
	"github.com/mlangtools/mparse/result"
	"github.com/mlangtools/mparse/trace"
)

/*
Result is what a top-level parse returns: the store (populated regardless of
success - a failed parse still has whatever Context/AST nodes it managed to
open), the root node id if one was set, and the terminal error if the parse
did not run cleanly to EOF.
*/
type Result struct {
	Store   *ast.Store
	RootId  int
	HasRoot bool
	Err     error

	// AbandonedErrors carries the errors from alternative top-level attempts
	// that lost the expression-vs-section disambiguation (spec.md sec.
	// 4.2.3), oldest first. Empty when only one attempt was ever made.
	AbandonedErrors []*Error
}

/*
ParseDocument is the package's single entry point (spec.md sec. 4.2):
a document is either a bare expression or a section declaration, and
nothing in the grammar decides which without looking ahead arbitrarily far,
so both are tried and the one that reads further into the token stream
wins, with a plain expression winning ties (spec.md sec. 4.2.3). A
*cancel.Error from the expression attempt short-circuits immediately
instead of being treated as "that attempt failed, try the other one" -
per spec.md sec. 7 the outermost orchestrator only catches a parse error,
never a cancellation.
*/
func ParseDocument(snap *lexer.Snapshot, cancelToken cancel.Token, traceManager trace.Manager) Result {
	return ParseDocumentWithBehavior(snap, cancelToken, traceManager, Thorough)
}

/*
ParseDocumentWithBehavior is ParseDocument with an explicit
DisambiguationBehavior (spec.md sec. 3.6) applied to every ambiguous prefix
decision the reader set encounters along the way.
*/
func ParseDocumentWithBehavior(snap *lexer.Snapshot, cancelToken cancel.Token, traceManager trace.Manager, behavior DisambiguationBehavior) Result {
	if traceManager == nil {
		traceManager = trace.NoOpManager()
	}
	tr := traceManager.Entry(trace.PhaseParse, "ParseDocument", nil)
	defer tr.Exit(nil)

	exprState := NewStateWithBehavior(snap, cancelToken, traceManager, behavior)
	exprErr := runToEnd(exprState, readExpression)

	if exprErr == nil {
		tr.TraceMsg("expression parse succeeded", nil)
		return resultOf(exprState, nil)
	}
	if _, cancelled := exprErr.(*cancel.Error); cancelled {
		tr.TraceMsg("expression parse cancelled", exprErr.Error())
		return resultOf(exprState, exprErr)
	}
	tr.TraceMsg("expression parse failed, trying section", exprErr.Error())

	sectionState := NewStateWithBehavior(snap, cancelToken, traceManager, behavior)
	sectionErr := runToEnd(sectionState, readSection)

	if sectionErr == nil {
		tr.TraceMsg("section parse succeeded", nil)
		sectionState.recordAbandoned(asParseError(exprErr))
		return resultOf(sectionState, nil)
	}

	if sectionState.TokenIndex() > exprState.TokenIndex() {
		tr.TraceMsg("section parse read further, wins the tie", nil)
		sectionState.recordAbandoned(asParseError(exprErr))
		return resultOf(sectionState, sectionErr)
	}
	exprState.recordAbandoned(asParseError(sectionErr))
	return resultOf(exprState, exprErr)
}

/*
ParseExpression parses snap as a single top-level expression, without the
section/expression disambiguation ParseDocument performs. Used by inspection
tooling that already knows it's looking at an expression fragment (e.g. a
formula bar entry).
*/
func ParseExpression(snap *lexer.Snapshot, cancelToken cancel.Token, traceManager trace.Manager) Result {
	return ParseExpressionWithBehavior(snap, cancelToken, traceManager, Thorough)
}

/*
ParseExpressionWithBehavior is ParseExpression with an explicit
DisambiguationBehavior.
*/
func ParseExpressionWithBehavior(snap *lexer.Snapshot, cancelToken cancel.Token, traceManager trace.Manager, behavior DisambiguationBehavior) Result {
	if traceManager == nil {
		traceManager = trace.NoOpManager()
	}
	tr := traceManager.Entry(trace.PhaseParse, "ParseExpression", nil)
	defer tr.Exit(nil)

	s := NewStateWithBehavior(snap, cancelToken, traceManager, behavior)
	err := runToEnd(s, readExpression)
	return resultOf(s, err)
}

func runToEnd(s *State, read func(s *State, attrIndex int) (*ast.Node, error)) error {
	if _, err := read(s, 0); err != nil {
		return err
	}
	if !isOnTokenKind(s, lexer.KindEOF) {
		return newUnusedTokensRemain(s.Current())
	}
	return nil
}

func resultOf(s *State, err error) Result {
	rootId, hasRoot := s.Store.RootId()
	return Result{Store: s.Store, RootId: rootId, HasRoot: hasRoot, Err: err, AbandonedErrors: s.AbandonedErrors()}
}

func asParseError(err error) *Error {
	pe, _ := err.(*Error)
	return pe
}

/*
TryParseDocument is ParseDocumentWithBehavior wrapped as a result.Result
(spec.md sec. 6.2's "the parser stays two-valued" - unlike the lexer, a
parse attempt either ran clean to EOF or it didn't, with no third state).
*/
func TryParseDocument(snap *lexer.Snapshot, cancelToken cancel.Token, traceManager trace.Manager, behavior DisambiguationBehavior) result.Result[Result] {
	r := ParseDocumentWithBehavior(snap, cancelToken, traceManager, behavior)
	if r.Err != nil {
		return result.Err[Result](r.Err)
	}
	return result.Ok(r)
}

/*
TryParseExpression is ParseExpressionWithBehavior wrapped as a result.Result.
*/
func TryParseExpression(snap *lexer.Snapshot, cancelToken cancel.Token, traceManager trace.Manager, behavior DisambiguationBehavior) result.Result[Result] {
	r := ParseExpressionWithBehavior(snap, cancelToken, traceManager, behavior)
	if r.Err != nil {
		return result.Err[Result](r.Err)
	}
	return result.Ok(r)
}
