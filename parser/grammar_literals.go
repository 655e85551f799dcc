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
	"github.com/mlangtools/mparse/lexer"
)

/*
readLeaf closes a single-token leaf node of kind, consuming exactly one
token and carrying it on the promoted AST node.
*/
func readLeaf(s *State, attrIndex int, kind ast.Kind, tokenKind lexer.Kind) (*ast.Node, error) {
	s.OpenContext(kind, attrIndex)
	tok, err := expectTokenKind(s, tokenKind)
	if err != nil {
		return nil, err
	}
	return s.CloseContext(true, &tok), nil
}

/*
readNumberLiteral reads a NumberLiteral leaf.
*/
func readNumberLiteral(s *State, attrIndex int) (*ast.Node, error) {
	return readLeaf(s, attrIndex, ast.KindNumberLiteral, lexer.KindNumber)
}

/*
readTextLiteral reads a TextLiteral leaf.
*/
func readTextLiteral(s *State, attrIndex int) (*ast.Node, error) {
	return readLeaf(s, attrIndex, ast.KindTextLiteral, lexer.KindTextLiteral)
}

/*
readLogicalLiteral reads a `true`/`false` leaf, recording the boolean value
as an attribute since the lexer only hands back the source text.
*/
func readLogicalLiteral(s *State, attrIndex int) (*ast.Node, error) {
	ctx := s.OpenContext(ast.KindLogicalLiteral, attrIndex)
	tok, err := expectAnyTokenKind(s, lexer.KindTrue, lexer.KindFalse)
	if err != nil {
		return nil, err
	}
	node := s.CloseContext(true, &tok)
	s.SetAttribute(ctx.Id, "value", tok.Kind == lexer.KindTrue)
	return node, nil
}

/*
readNullLiteral reads a `null` leaf.
*/
func readNullLiteral(s *State, attrIndex int) (*ast.Node, error) {
	return readLeaf(s, attrIndex, ast.KindNullLiteral, lexer.KindNull)
}

/*
readNotImplementedExpression reads the `...` placeholder, a complete
expression that only fails once evaluated.
*/
func readNotImplementedExpression(s *State, attrIndex int) (*ast.Node, error) {
	return readLeaf(s, attrIndex, ast.KindNotImplementedExpr, lexer.KindDotDotDot)
}

/*
readIdentifier reads a plain or quoted identifier leaf. Both surface the same
node kind; the raw token text (including the #"..." quoting, if any) is kept
on the token and normalized lazily by package ident when needed.
*/
func readIdentifier(s *State, attrIndex int) (*ast.Node, error) {
	s.OpenContext(ast.KindIdentifier, attrIndex)
	tok, err := expectAnyTokenKind(s, lexer.KindIdentifier, lexer.KindQuotedIdentifier)
	if err != nil {
		return nil, err
	}
	return s.CloseContext(true, &tok), nil
}

/*
readGeneralizedIdentifier reads the relaxed identifier grammar used for field
names and for record and let binding keys: an identifier or quoted
identifier followed by any number of `.`-separated identifier segments,
polling cancellation before each segment. Keyword tokens are not accepted
(spec.md's ident module covers the text-level validation; here we just
accept one or more identifier-ish tokens of text).
*/
func readGeneralizedIdentifier(s *State, attrIndex int) (*ast.Node, error) {
	s.OpenContext(ast.KindGeneralizedIdentifier, attrIndex)

	tok, err := expectAnyTokenKind(s, lexer.KindIdentifier, lexer.KindQuotedIdentifier)
	if err != nil {
		return nil, err
	}

	for isOnTokenKind(s, lexer.KindDot) {
		if err := checkCancellation(s); err != nil {
			return nil, err
		}
		s.Advance()
		if _, err := expectAnyTokenKind(s, lexer.KindIdentifier, lexer.KindQuotedIdentifier); err != nil {
			return nil, err
		}
	}

	return s.CloseContext(true, &tok), nil
}
