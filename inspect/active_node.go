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
Package inspect implements the post-parse inspection layer of spec.md sec.
4.3-4.7: mapping a cursor position to an active node and its ancestry,
resolving the lexical scope visible there, extracting invoke-expression
signature help, and assembling autocomplete suggestions. Every operation
here is read-only with respect to an ast.Store and tolerates Context-tagged
(still-open) subtrees the same way package types does.
*/
package inspect

import (
	"sort"

	"github.com/mlangtools/mparse/ast"
	"github.com/mlangtools/mparse/lexer"
)

/*
Classification describes a cursor's relationship to its active leaf's token
span (spec.md sec. 4.3).
*/
type Classification int

const (
	OnTokenStart Classification = iota
	OnTokenEnd
	InsideToken
	BetweenTokens
)

func (c Classification) String() string {
	switch c {
	case OnTokenStart:
		return "OnTokenStart"
	case OnTokenEnd:
		return "OnTokenEnd"
	case InsideToken:
		return "InsideToken"
	case BetweenTokens:
		return "BetweenTokens"
	default:
		return "Unknown"
	}
}

/*
ActiveNode is the cursor's active leaf together with its ancestry path back
to the root, leaf first (spec.md sec. 4.3).
*/
type ActiveNode struct {
	Leaf           ast.XorNode
	Ancestry       []ast.XorNode // leaf first, root last
	Classification Classification
}

func comparePos(a, b lexer.Position) int {
	if a.LineNumber != b.LineNumber {
		if a.LineNumber < b.LineNumber {
			return -1
		}
		return 1
	}
	if a.LineCodeUnit != b.LineCodeUnit {
		if a.LineCodeUnit < b.LineCodeUnit {
			return -1
		}
		return 1
	}
	return 0
}

/*
TryFromPosition maps a cursor position to an ActiveNode by binary-searching
the store's leaf ids for the leaf whose token span contains or most closely
precedes the cursor (spec.md sec. 4.3). Leaf ids are sorted by id, which -
because parse ids are allocated depth-first and monotonically - coincides
with left-to-right source order, so the search is valid without consulting
the token snapshot directly.

Returns false ("out of bounds") when the store has no leaves at all, or the
cursor sits before the very first leaf - there is no "closest-before" leaf
to report in that case.
*/
func TryFromPosition(store *ast.Store, cursor lexer.Position) (*ActiveNode, bool) {
	leafIds := store.LeafIds()
	if len(leafIds) == 0 {
		return nil, false
	}

	leafAt := func(i int) *ast.Node {
		n, _ := store.GetAst(leafIds[i])
		return n
	}

	idx := sort.Search(len(leafIds), func(i int) bool {
		n := leafAt(i)
		if n.Token == nil {
			return false
		}
		return comparePos(n.Token.PositionStart, cursor) > 0
	}) - 1

	if idx < 0 {
		return nil, false
	}

	id := leafIds[idx]
	n, _ := store.GetAst(id)
	leafXor, _ := store.GetXor(id)

	classification := BetweenTokens
	if n.Token != nil {
		switch {
		case comparePos(n.Token.PositionStart, cursor) == 0:
			classification = OnTokenStart
		case comparePos(n.Token.PositionEnd, cursor) == 0:
			classification = OnTokenEnd
		case comparePos(n.Token.PositionStart, cursor) < 0 && comparePos(cursor, n.Token.PositionEnd) < 0:
			classification = InsideToken
		}
	}

	return &ActiveNode{
		Leaf:           leafXor,
		Ancestry:       Ancestry(store, id),
		Classification: classification,
	}, true
}

/*
Ancestry returns the chain from the node at id back to the root, leaf
(nodeId) first, with no duplicates (spec.md sec. 8's "ancestry ends at the
root and contains no duplicates").
*/
func Ancestry(store *ast.Store, nodeId int) []ast.XorNode {
	var out []ast.XorNode
	seen := make(map[int]bool)
	id := nodeId
	for {
		x, ok := store.GetXor(id)
		if !ok || seen[id] {
			return out
		}
		seen[id] = true
		out = append(out, x)

		parentId, hasParent := x.ParentId()
		if !hasParent {
			return out
		}
		id = parentId
	}
}

/*
ancestryRootFirst is Ancestry in root-to-leaf order, the direction the scope
resolver walks in (spec.md sec. 4.4).
*/
func ancestryRootFirst(store *ast.Store, nodeId int) []ast.XorNode {
	leafFirst := Ancestry(store, nodeId)
	out := make([]ast.XorNode, len(leafFirst))
	for i, x := range leafFirst {
		out[len(leafFirst)-1-i] = x
	}
	return out
}
