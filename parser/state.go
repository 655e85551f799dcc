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
Package parser builds a resumable AST/Context tree (package ast) from an
lexer.Snapshot. On syntactically incomplete input it stops at the first
error and keeps whatever Context nodes it managed to open in the tree, still
open, instead of discarding the attempt (spec.md sec. 4.2).
*/
package parser

import (
	"github.com/mlangtools/mparse/ast"
	"github.com/mlangtools/mparse/cancel"
	"github.com/mlangtools/mparse/lexer"
	"github.com/mlangtools/mparse/trace"
)

/*
DisambiguationBehavior selects how the parser resolves an ambiguous prefix
such as `(x) => x` vs `(x)` (spec.md sec. 3.6, 4.2.3).
*/
type DisambiguationBehavior int

const (
	// Thorough speculates: take a checkpoint, try one branch, and on
	// failure restore and try the other. A successful branch wins; when
	// both fail the deeper parse wins, equal depth being broken in favor of
	// the earlier-tried alternative.
	Thorough DisambiguationBehavior = iota
	// Strict decides from a bounded lookahead window, never speculating or
	// backtracking. When the window doesn't resolve the ambiguity it takes
	// the parenthesized reading rather than failing early.
	Strict
)

func (b DisambiguationBehavior) String() string {
	if b == Strict {
		return "Strict"
	}
	return "Thorough"
}

/*
State is the mutable cursor a parse runs with: the dual store being built,
the current read position into the token snapshot, and the id of the
Context node most recently opened (the "current tip" the teacher's p.node
plays in its own TDOP loop).
*/
type State struct {
	Snapshot *lexer.Snapshot
	Store    *ast.Store

	tokenIndex    int
	currentCtxId  int
	hasCurrentCtx bool

	Cancel         cancel.Token
	Trace          trace.Manager
	Disambiguation DisambiguationBehavior

	abandoned *errorTrail
}

/*
NewState creates a parse cursor over a token snapshot under Thorough
disambiguation (spec.md sec. 4.2.3), the behavior every reader was written
against. cancelToken and traceManager may be nil, in which case a no-op of
each is substituted - a caller that doesn't care about cancellation or
tracing should never have to construct one.
*/
func NewState(snap *lexer.Snapshot, cancelToken cancel.Token, traceManager trace.Manager) *State {
	return NewStateWithBehavior(snap, cancelToken, traceManager, Thorough)
}

/*
NewStateWithBehavior is NewState with an explicit DisambiguationBehavior.
*/
func NewStateWithBehavior(snap *lexer.Snapshot, cancelToken cancel.Token, traceManager trace.Manager, behavior DisambiguationBehavior) *State {
	if cancelToken == nil {
		cancelToken = cancel.NoOp()
	}
	if traceManager == nil {
		traceManager = trace.NoOpManager()
	}
	return &State{
		Snapshot:       snap,
		Store:          ast.NewStore(),
		Cancel:         cancelToken,
		Trace:          traceManager,
		Disambiguation: behavior,
	}
}

/*
Checkpoint is a restorable snapshot of parse progress (spec.md sec. 4.2.2):
enough to undo every side effect of a speculative attempt without
deep-copying the store.
*/
type Checkpoint struct {
	tokenIndex   int
	idCounter    int
	currentCtxId int
	hasCtx       bool
}

/*
Checkpoint captures the current position so a speculative parse can be
undone.
*/
func (s *State) Checkpoint() Checkpoint {
	return Checkpoint{
		tokenIndex:   s.tokenIndex,
		idCounter:    s.Store.IdCounter(),
		currentCtxId: s.currentCtxId,
		hasCtx:       s.hasCurrentCtx,
	}
}

/*
Restore rewinds the read position and deletes every store id allocated since
the checkpoint was taken (spec.md sec. 8: "Restoring a checkpoint taken at
idCounter = k leaves every id <= k present and deletes every id > k").
*/
func (s *State) Restore(cp Checkpoint) {
	s.tokenIndex = cp.tokenIndex
	s.currentCtxId = cp.currentCtxId
	s.hasCurrentCtx = cp.hasCtx
	s.Store.RestoreTo(cp.idCounter)
}

/*
TokenIndex returns the current read position.
*/
func (s *State) TokenIndex() int {
	return s.tokenIndex
}

/*
Current returns the token at the current read position, which is an EOF
sentinel once the snapshot is exhausted.
*/
func (s *State) Current() lexer.Token {
	return s.Snapshot.At(s.tokenIndex)
}

/*
PeekAt returns the token offset tokens ahead of the current position, without
moving the cursor.
*/
func (s *State) PeekAt(offset int) lexer.Token {
	return s.Snapshot.At(s.tokenIndex + offset)
}

/*
Advance moves the read cursor forward by one token.
*/
func (s *State) Advance() {
	s.tokenIndex++
}

/*
OpenContext opens a Context node as a child of the current tip (or as the
root, if none is open yet) and makes it the new tip.
*/
func (s *State) OpenContext(kind ast.Kind, attributeIndex int) *ast.Context {
	parentId, hasParent := s.currentCtxId, s.hasCurrentCtx
	ctx := s.Store.OpenContext(kind, parentId, hasParent, attributeIndex, s.tokenIndex)
	if !hasParent {
		s.Store.SetRootId(ctx.Id)
	}
	s.currentCtxId = ctx.Id
	s.hasCurrentCtx = true
	return ctx
}

/*
CloseContext promotes the currently open tip into an AST node and moves the
tip back up to its parent (spec.md sec. 4.1/4.2). tokenStart is carried in
the Context already; tokenEnd is the caller's current read position.
*/
func (s *State) CloseContext(isLeaf bool, token *lexer.Token) *ast.Node {
	ctx, ok := s.Store.GetContext(s.currentCtxId)
	if !ok {
		return nil
	}
	node := s.Store.PromoteContext(s.currentCtxId, ast.TokenRange{Start: ctx.TokenIndexStart, End: s.tokenIndex}, isLeaf, token)
	if node.HasParent {
		s.currentCtxId = node.ParentId
		s.hasCurrentCtx = true
	} else {
		s.hasCurrentCtx = false
	}
	return node
}

/*
CurrentContextId returns the id of the tip context, if any is open.
*/
func (s *State) CurrentContextId() (int, bool) {
	return s.currentCtxId, s.hasCurrentCtx
}

/*
recordAbandoned keeps a trailing window of the errors from attempts this
state gave up on in favor of another (spec.md sec. 4.2.3 disambiguation),
so a caller can see what else was tried instead of only the winning error.
*/
func (s *State) recordAbandoned(err *Error) {
	if err == nil {
		return
	}
	if s.abandoned == nil {
		s.abandoned = newErrorTrail(4)
	}
	s.abandoned.record(err)
}

/*
AbandonedErrors returns the errors from attempts this state's parse gave up
on, oldest first.
*/
func (s *State) AbandonedErrors() []*Error {
	if s.abandoned == nil {
		return nil
	}
	return s.abandoned.recent()
}

/*
SetAttribute attaches production-specific scalar data (e.g. an operator
kind) to an already-closed node.
*/
func (s *State) SetAttribute(id int, key string, value interface{}) {
	s.Store.SetAttribute(id, key, value)
}

/*
WrapLeft opens a new Context of kind that takes over left's slot in its
parent's child list, then reparents left as the new context's child 0. This
is the dual-store translation of the teacher's leftDenotation pattern
(parser/parser.go ldInfix: "self.Children = append(self.Children, left)") -
ours must reparent explicitly because a node's parent link is fixed at
allocation time rather than at append time.
*/
func (s *State) WrapLeft(kind ast.Kind, left *ast.Node) *ast.Context {
	ctx := s.OpenContext(kind, left.AttributeIndex)
	s.Store.Reparent(left.Id, ctx.Id, 0)
	return ctx
}
