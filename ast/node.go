/*
 * mparse
 *
 * Copyright 2024 The mparse Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package ast

import "github.com/mlangtools/mparse/lexer"

/*
TokenRange is a half-open [Start, End) span of token indices into the token
snapshot a parse was run against.
*/
type TokenRange struct {
	Start int
	End   int
}

/*
Node is a fully-formed AST node (spec.md sec. 3.2). Every node carries an id
which is unique and strictly increasing within a parse.
*/
type Node struct {
	Id             int
	Kind           Kind
	ParentId       int // 0 when the node is the root; see HasParent
	HasParent      bool
	AttributeIndex int
	TokenRange     TokenRange
	IsLeaf         bool

	// Token is only set for leaves (identifiers, literals, constants).
	Token *lexer.Token

	// Attributes carries production-specific scalar data that doesn't
	// warrant its own child node, e.g. the operator kind of an
	// ArithmeticExpression or the boolean value of a LogicalLiteral.
	Attributes map[string]interface{}
}

/*
Context mirrors an AST node before all of its children have been read
(spec.md sec. 3.3). A context node is replaced in place by an AST node once
its production completes; if the production fails, the context remains as
the tip of a partially parsed subtree.
*/
type Context struct {
	Id               int
	Kind             Kind
	TokenIndexStart  int
	AttributeCounter int // number of child slots already begun
	AttributeIndex   int
	ParentId         int
	HasParent        bool
	IsClosed         bool

	// Attributes set while the production is still open; carried over onto
	// the AST node at promotion.
	Attributes map[string]interface{}
}

/*
Variant tags which half of the dual store a XorNode points into.
*/
type Variant int

/*
The two XorNode variants.
*/
const (
	VariantAst Variant = iota
	VariantContext
)

/*
XorNode is the inspection-facing unified reference to either an AST node or
a Context node (spec.md sec. 3.4). Every tree query returns XorNodes so
clients handle complete and in-progress subtrees uniformly.
*/
type XorNode struct {
	Variant Variant
	AstNode *Node
	CtxNode *Context
}

/*
AstXor wraps an AST node as a XorNode.
*/
func AstXor(n *Node) XorNode {
	return XorNode{Variant: VariantAst, AstNode: n}
}

/*
ContextXor wraps a Context node as a XorNode.
*/
func ContextXor(c *Context) XorNode {
	return XorNode{Variant: VariantContext, CtxNode: c}
}

/*
Id returns the id shared by both variants.
*/
func (x XorNode) Id() int {
	if x.Variant == VariantAst {
		return x.AstNode.Id
	}
	return x.CtxNode.Id
}

/*
Kind returns the node kind shared by both variants.
*/
func (x XorNode) Kind() Kind {
	if x.Variant == VariantAst {
		return x.AstNode.Kind
	}
	return x.CtxNode.Kind
}

/*
ParentId returns the parent id and whether a parent is present.
*/
func (x XorNode) ParentId() (int, bool) {
	if x.Variant == VariantAst {
		return x.AstNode.ParentId, x.AstNode.HasParent
	}
	return x.CtxNode.ParentId, x.CtxNode.HasParent
}

/*
AttributeIndex returns the node's slot position within its parent.
*/
func (x XorNode) AttributeIndex() int {
	if x.Variant == VariantAst {
		return x.AstNode.AttributeIndex
	}
	return x.CtxNode.AttributeIndex
}

/*
IsLeaf returns true only for a fully-formed AST leaf. A Context is never a
leaf - it is definitionally still expecting children.
*/
func (x XorNode) IsLeaf() bool {
	return x.Variant == VariantAst && x.AstNode.IsLeaf
}

/*
TokenRangeStart returns the starting token index shared by both variants.
AST nodes have a closed end as well; Context nodes do not until promoted.
*/
func (x XorNode) TokenRangeStart() int {
	if x.Variant == VariantAst {
		return x.AstNode.TokenRange.Start
	}
	return x.CtxNode.TokenIndexStart
}
