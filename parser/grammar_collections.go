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
)

/*
readListLiteral reads `{a, b, c}`. An element followed by `..` is folded
into a RangeExpression instead of being a plain csv item, since M allows
`{1..5}` inline.
*/
func readListLiteral(s *State, attrIndex int) (*ast.Node, error) {
	s.OpenContext(ast.KindListLiteral, attrIndex)
	if _, err := expectTokenKind(s, lexer.KindLeftBrace); err != nil {
		return nil, err
	}

	_, err := readCsv(s, 0, lexer.KindRightBrace, func(s *State, i int) error {
		return readListItem(s, i)
	})
	if err != nil {
		return nil, err
	}

	if _, err := expectClosingTokenKind(s, lexer.KindRightBrace, SequenceBrace); err != nil {
		return nil, err
	}
	return s.CloseContext(false, nil), nil
}

func readListItem(s *State, attrIndex int) error {
	left, err := readExpression(s, attrIndex)
	if err != nil {
		return err
	}
	if isOnTokenKind(s, lexer.KindDotDot) {
		s.WrapLeft(ast.KindRangeExpression, left)
		s.Advance()
		if _, err := readExpression(s, 1); err != nil {
			return err
		}
		s.CloseContext(false, nil)
	}
	return nil
}

/*
readRecordLiteral reads `[a = 1, b = 2]` - a csv of
GeneralizedIdentifierPairedExpression entries.
*/
func readRecordLiteral(s *State, attrIndex int) (*ast.Node, error) {
	s.OpenContext(ast.KindRecordLiteral, attrIndex)
	if _, err := expectTokenKind(s, lexer.KindLeftBracket); err != nil {
		return nil, err
	}

	_, err := readCsv(s, 0, lexer.KindRightBracket, func(s *State, i int) error {
		return readGeneralizedIdentifierPairedExpression(s, i)
	})
	if err != nil {
		return nil, err
	}

	if _, err := expectClosingTokenKind(s, lexer.KindRightBracket, SequenceBracket); err != nil {
		return nil, err
	}
	return s.CloseContext(false, nil), nil
}

func readIdentifierPairedExpression(s *State, attrIndex int) error {
	return readPairedExpression(s, attrIndex, ast.KindIdentifierPairedExpr)
}

/*
readGeneralizedIdentifierPairedExpression is the record-entry sibling of
readIdentifierPairedExpression. Both read their key with the relaxed
generalized grammar (dotted segments, quoting); they differ only in the node
kind they produce.
*/
func readGeneralizedIdentifierPairedExpression(s *State, attrIndex int) error {
	return readPairedExpression(s, attrIndex, ast.KindGeneralizedIdPairedExpr)
}

func readPairedExpression(s *State, attrIndex int, kind ast.Kind) error {
	s.OpenContext(kind, attrIndex)
	if _, err := readGeneralizedIdentifier(s, 0); err != nil {
		return err
	}
	if _, err := expectTokenKind(s, lexer.KindEqual); err != nil {
		return err
	}
	if _, err := readExpression(s, 1); err != nil {
		return err
	}
	s.CloseContext(false, nil)
	return nil
}

/*
readParenthesizedOrFunctionExpression disambiguates `(` between a
parenthesized expression and the start of a function's parameter list
(spec.md sec. 4.2.3, end-to-end scenario 3). Under Thorough it speculates:
checkpoint, try the function interpretation first, and on failure restore
and fall back to parenthesization. A successful attempt wins; when both
fail, the one that read further wins, a tie going to the function
interpretation, which is then read again so its partial tree and error are
the ones returned. A *cancel.Error from either attempt is never treated as
"that branch failed" - per spec.md sec. 4.2.4 it propagates unchanged
instead of triggering a restore-and-retry. Under Strict it instead scans
ahead for the matching `)` within a bounded window and decides from what
follows it, never backtracking; when the window ends (or the input runs
out) before the matching `)`, the parenthesized reading is taken - Strict
does not fail early on an undecided window.
*/
func readParenthesizedOrFunctionExpression(s *State, attrIndex int) (*ast.Node, error) {
	if s.Disambiguation == Strict {
		if looksLikeFunctionExpression(s) {
			return readFunctionExpression(s, attrIndex)
		}
		return readParenthesizedExpression(s, attrIndex)
	}

	cp := s.Checkpoint()

	node, err := readFunctionExpression(s, attrIndex)
	if err == nil {
		return node, nil
	}
	if _, cancelled := err.(*cancel.Error); cancelled {
		return nil, err
	}
	functionDepth := s.tokenIndex
	s.Restore(cp)

	node, err = readParenthesizedExpression(s, attrIndex)
	if err == nil || s.tokenIndex > functionDepth {
		return node, err
	}
	if _, cancelled := err.(*cancel.Error); cancelled {
		return nil, err
	}
	s.Restore(cp)
	return readFunctionExpression(s, attrIndex)
}

/*
strictLookaheadWindow bounds how far looksLikeFunctionExpression scans
before giving up on a verdict, the way Strict disambiguation is specified to
work from "a bounded lookahead window" rather than arbitrary lookahead.
*/
const strictLookaheadWindow = 256

/*
looksLikeFunctionExpression decides, without consuming any input, whether
the `(` at s's current position opens a function's parameter list rather
than a parenthesized expression: it walks forward tracking paren nesting
depth to find the matching `)`, then checks whether `as` or `=>` follows.
Returns false (parenthesized expression) both when the lookahead genuinely
resolves that way and when the window is exhausted without finding the
match - either way Strict takes the single branch it commits to without
speculating.
*/
func looksLikeFunctionExpression(s *State) bool {
	depth := 0
	for i := 0; i < strictLookaheadWindow; i++ {
		tok := s.PeekAt(i)
		switch tok.Kind {
		case lexer.KindLeftParen:
			depth++
		case lexer.KindRightParen:
			depth--
			if depth == 0 {
				next := s.PeekAt(i + 1)
				return next.Kind == lexer.KindFatArrow || next.Kind == lexer.KindAs
			}
		case lexer.KindEOF:
			return false
		}
	}
	return false
}

func readParenthesizedExpression(s *State, attrIndex int) (*ast.Node, error) {
	s.OpenContext(ast.KindParenthesizedExpr, attrIndex)
	if _, err := expectTokenKind(s, lexer.KindLeftParen); err != nil {
		return nil, err
	}
	if _, err := readExpression(s, 0); err != nil {
		return nil, err
	}
	if _, err := expectClosingTokenKind(s, lexer.KindRightParen, SequenceParenthesis); err != nil {
		return nil, err
	}
	return s.CloseContext(false, nil), nil
}

/*
readFunctionExpression reads `(params) as type => body` or the simpler
`(params) => body`.
*/
func readFunctionExpression(s *State, attrIndex int) (*ast.Node, error) {
	s.OpenContext(ast.KindFunctionExpression, attrIndex)
	if _, err := expectTokenKind(s, lexer.KindLeftParen); err != nil {
		return nil, err
	}

	if err := readParameterList(s, 0); err != nil {
		return nil, err
	}

	if _, err := expectClosingTokenKind(s, lexer.KindRightParen, SequenceParenthesis); err != nil {
		return nil, err
	}

	if isOnTokenKind(s, lexer.KindAs) {
		s.Advance()
		if _, err := readNullablePrimitiveType(s, 1); err != nil {
			return nil, err
		}
	}

	if _, err := expectTokenKind(s, lexer.KindFatArrow); err != nil {
		return nil, err
	}

	if _, err := readExpression(s, 2); err != nil {
		return nil, err
	}

	return s.CloseContext(false, nil), nil
}

/*
readParameterList reads the csv of parameters between a function's
parentheses, rejecting a required parameter once an optional one has been
seen (spec.md's RequiredParameterAfterOptionalParameter edge case).
*/
func readParameterList(s *State, attrIndex int) error {
	s.OpenContext(ast.KindParameterList, attrIndex)

	sawOptional := false
	_, err := readCsv(s, 0, lexer.KindRightParen, func(s *State, i int) error {
		isOptional, err := readParameter(s, i)
		if err != nil {
			return err
		}
		if sawOptional && !isOptional {
			return newRequiredParameterAfterOptionalParameter(s.Current())
		}
		sawOptional = sawOptional || isOptional
		return nil
	})
	if err != nil {
		return err
	}

	s.CloseContext(false, nil)
	return nil
}

func readParameter(s *State, attrIndex int) (bool, error) {
	s.OpenContext(ast.KindParameter, attrIndex)

	// `optional` is contextual, like `nullable` in type positions: it only
	// marks the parameter when another identifier follows it.
	isOptional := false
	if isOnTokenKind(s, lexer.KindIdentifier) && s.Current().Data == "optional" &&
		s.PeekAt(1).Kind == lexer.KindIdentifier {
		s.Advance()
		isOptional = true
	}

	if _, err := readIdentifier(s, 0); err != nil {
		return isOptional, err
	}

	if isOnTokenKind(s, lexer.KindAs) {
		s.Advance()
		if _, err := readNullablePrimitiveType(s, 1); err != nil {
			return isOptional, err
		}
	}

	ctx, _ := s.CurrentContextId()
	s.SetAttribute(ctx, "optional", isOptional)
	s.CloseContext(false, nil)
	return isOptional, nil
}
