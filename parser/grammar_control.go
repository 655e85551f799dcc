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
readLetExpression reads `let a = 1, b = 2 in a + b`. Each binding is its own
IdentifierPairedExpression, the same `name = value` shape as a record
literal entry (which is a GeneralizedIdentifierPairedExpression); what
distinguishes `let` is the trailing `in` and its single expression body. A
dangling comma in the binding list (`let x = 1, in x`) is caught here and
re-tagged ExpectedCsvContinuationLetExpression instead of the generic
ExpectedCsvContinuationDanglingComma readCsv raises on its own, per
spec.md sec. 8's "inside let, it raises the LetExpression variant".
*/
func readLetExpression(s *State, attrIndex int) (*ast.Node, error) {
	s.OpenContext(ast.KindLetExpression, attrIndex)
	if _, err := expectTokenKind(s, lexer.KindLet); err != nil {
		return nil, err
	}

	_, err := readCsv(s, 0, lexer.KindIn, func(s *State, i int) error {
		return readIdentifierPairedExpression(s, i)
	})
	if err != nil {
		if pe, ok := err.(*Error); ok && pe.Reason == ExpectedCsvContinuationDanglingComma {
			return nil, newExpectedCsvLetExpression(pe.Token)
		}
		return nil, err
	}

	if isOnTokenKind(s, lexer.KindEOF) {
		return nil, newExpectedCsvLetExpression(s.Current())
	}

	if _, err := expectTokenKind(s, lexer.KindIn); err != nil {
		return nil, err
	}
	if _, err := readExpression(s, 1); err != nil {
		return nil, err
	}
	return s.CloseContext(false, nil), nil
}

/*
readIfExpression reads `if cond then trueExpr else falseExpr`.
*/
func readIfExpression(s *State, attrIndex int) (*ast.Node, error) {
	s.OpenContext(ast.KindIfExpression, attrIndex)
	if _, err := expectTokenKind(s, lexer.KindIf); err != nil {
		return nil, err
	}
	if _, err := readExpression(s, 0); err != nil {
		return nil, err
	}
	if _, err := expectTokenKind(s, lexer.KindThen); err != nil {
		return nil, err
	}
	if _, err := readExpression(s, 1); err != nil {
		return nil, err
	}
	if _, err := expectTokenKind(s, lexer.KindElse); err != nil {
		return nil, err
	}
	if _, err := readExpression(s, 2); err != nil {
		return nil, err
	}
	return s.CloseContext(false, nil), nil
}

/*
readEachExpression reads `each <expr>`, sugar for a one-parameter function
taking the implicit `_`.
*/
func readEachExpression(s *State, attrIndex int) (*ast.Node, error) {
	s.OpenContext(ast.KindEachExpression, attrIndex)
	if _, err := expectTokenKind(s, lexer.KindEach); err != nil {
		return nil, err
	}
	if _, err := readExpression(s, 0); err != nil {
		return nil, err
	}
	return s.CloseContext(false, nil), nil
}

/*
readTryExpression reads `try expr`, `try expr otherwise fallback`, or
`try expr catch (e) => fallback` as a single ErrorHandlingExpression: child 0
is the protected TryExpression, child 1 (if present) is either the
OtherwiseExpression or CatchExpression fallback. Matching M's own grammar
naming, "try" alone is just one half of error handling; "catch" is sugar for
"otherwise" that binds the caught error to a name instead of discarding it.
*/
func readTryExpression(s *State, attrIndex int) (*ast.Node, error) {
	s.OpenContext(ast.KindErrorHandlingExpr, attrIndex)

	s.OpenContext(ast.KindTryExpression, 0)
	if _, err := expectTokenKind(s, lexer.KindTry); err != nil {
		return nil, err
	}
	if _, err := readExpression(s, 0); err != nil {
		return nil, err
	}
	s.CloseContext(false, nil)

	switch {
	case isOnTokenKind(s, lexer.KindOtherwise):
		s.OpenContext(ast.KindOtherwiseExpr, 1)
		s.Advance()
		if _, err := readExpression(s, 0); err != nil {
			return nil, err
		}
		s.CloseContext(false, nil)
	case isOnTokenKind(s, lexer.KindCatch):
		if _, err := readCatchExpression(s, 1); err != nil {
			return nil, err
		}
	}

	return s.CloseContext(false, nil), nil
}

/*
readCatchExpression reads the `catch (name) => expr` fallback form. Unlike a
general FunctionExpression, a catch function takes exactly one untyped
parameter and carries no `as` return annotation (spec.md's
InvalidCatchFunction edge case), so it's read directly rather than through
readParameterList/readFunctionExpression.
*/
func readCatchExpression(s *State, attrIndex int) (*ast.Node, error) {
	s.OpenContext(ast.KindCatchExpression, attrIndex)
	if _, err := expectTokenKind(s, lexer.KindCatch); err != nil {
		return nil, err
	}
	if _, err := expectTokenKind(s, lexer.KindLeftParen); err != nil {
		return nil, err
	}

	paramTok := s.Current()
	if _, err := readIdentifier(s, 0); err != nil {
		return nil, err
	}
	if isOnTokenKind(s, lexer.KindAs) || isOnTokenKind(s, lexer.KindComma) {
		return nil, newInvalidCatchFunction(paramTok)
	}

	if _, err := expectClosingTokenKind(s, lexer.KindRightParen, SequenceParenthesis); err != nil {
		return nil, err
	}
	if isOnTokenKind(s, lexer.KindAs) {
		return nil, newInvalidCatchFunction(s.Current())
	}

	if _, err := expectTokenKind(s, lexer.KindFatArrow); err != nil {
		return nil, err
	}
	if _, err := readExpression(s, 1); err != nil {
		return nil, err
	}
	return s.CloseContext(false, nil), nil
}

/*
readErrorRaisingExpression reads `error expr`.
*/
func readErrorRaisingExpression(s *State, attrIndex int) (*ast.Node, error) {
	s.OpenContext(ast.KindErrorRaisingExpr, attrIndex)
	if _, err := expectTokenKind(s, lexer.KindError_); err != nil {
		return nil, err
	}
	if _, err := readExpression(s, 0); err != nil {
		return nil, err
	}
	return s.CloseContext(false, nil), nil
}
