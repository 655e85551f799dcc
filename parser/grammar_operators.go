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
readExpression is the single entry point every production uses to read a
full M expression. It climbs the precedence ladder top-down the way the
teacher's TDOP loop climbs binding power bottom-up (parser/parser.go run):
each tier here is a thin recursive-descent wrapper that falls through to the
next-tighter tier whenever it doesn't recognize its own operator, so the
ladder's order IS the precedence table. Lowest precedence (loosest-binding,
read first) is logical or; tightest is the unary/postfix primary tier.
*/
func readExpression(s *State, attrIndex int) (*ast.Node, error) {
	return readLogicalOrExpression(s, attrIndex)
}

func readLogicalOrExpression(s *State, attrIndex int) (*ast.Node, error) {
	left, err := readLogicalAndExpression(s, attrIndex)
	if err != nil {
		return nil, err
	}
	for isOnTokenKind(s, lexer.KindOr) {
		ctx := s.WrapLeft(ast.KindLogicalExpression, left)
		s.SetAttribute(ctx.Id, "operator", "or")
		s.Advance()
		if _, err := readLogicalAndExpression(s, 1); err != nil {
			return nil, err
		}
		left = s.CloseContext(false, nil)
	}
	return left, nil
}

func readLogicalAndExpression(s *State, attrIndex int) (*ast.Node, error) {
	left, err := readEqualityExpression(s, attrIndex)
	if err != nil {
		return nil, err
	}
	for isOnTokenKind(s, lexer.KindAnd) {
		ctx := s.WrapLeft(ast.KindLogicalExpression, left)
		s.SetAttribute(ctx.Id, "operator", "and")
		s.Advance()
		if _, err := readEqualityExpression(s, 1); err != nil {
			return nil, err
		}
		left = s.CloseContext(false, nil)
	}
	return left, nil
}

func readEqualityExpression(s *State, attrIndex int) (*ast.Node, error) {
	left, err := readRelationalExpression(s, attrIndex)
	if err != nil {
		return nil, err
	}
	for isOnAnyTokenKind(s, lexer.KindEqual, lexer.KindNotEqual) {
		op := s.Current()
		ctx := s.WrapLeft(ast.KindEqualityExpression, left)
		s.SetAttribute(ctx.Id, "operator", op.Data)
		s.Advance()
		if _, err := readRelationalExpression(s, 1); err != nil {
			return nil, err
		}
		left = s.CloseContext(false, nil)
	}
	return left, nil
}

func readRelationalExpression(s *State, attrIndex int) (*ast.Node, error) {
	left, err := readIsExpression(s, attrIndex)
	if err != nil {
		return nil, err
	}
	for isOnAnyTokenKind(s, lexer.KindLessThan, lexer.KindLessThanEqual, lexer.KindGreaterThan, lexer.KindGreaterThanEqual) {
		op := s.Current()
		ctx := s.WrapLeft(ast.KindRelationalExpression, left)
		s.SetAttribute(ctx.Id, "operator", op.Data)
		s.Advance()
		if _, err := readIsExpression(s, 1); err != nil {
			return nil, err
		}
		left = s.CloseContext(false, nil)
	}
	return left, nil
}

func readIsExpression(s *State, attrIndex int) (*ast.Node, error) {
	left, err := readAsExpression(s, attrIndex)
	if err != nil {
		return nil, err
	}
	for isOnTokenKind(s, lexer.KindIs) {
		s.WrapLeft(ast.KindIsExpression, left)
		s.Advance()
		if _, err := readNullablePrimitiveType(s, 1); err != nil {
			return nil, err
		}
		left = s.CloseContext(false, nil)
	}
	return left, nil
}

func readAsExpression(s *State, attrIndex int) (*ast.Node, error) {
	left, err := readMetadataExpression(s, attrIndex)
	if err != nil {
		return nil, err
	}
	for isOnTokenKind(s, lexer.KindAs) {
		s.WrapLeft(ast.KindAsExpression, left)
		s.Advance()
		if _, err := readNullablePrimitiveType(s, 1); err != nil {
			return nil, err
		}
		left = s.CloseContext(false, nil)
	}
	return left, nil
}

func readMetadataExpression(s *State, attrIndex int) (*ast.Node, error) {
	left, err := readAdditiveExpression(s, attrIndex)
	if err != nil {
		return nil, err
	}
	for isOnTokenKind(s, lexer.KindMeta) {
		s.WrapLeft(ast.KindMetadataExpression, left)
		s.Advance()
		if _, err := readAdditiveExpression(s, 1); err != nil {
			return nil, err
		}
		left = s.CloseContext(false, nil)
	}
	return left, nil
}

func readAdditiveExpression(s *State, attrIndex int) (*ast.Node, error) {
	left, err := readMultiplicativeExpression(s, attrIndex)
	if err != nil {
		return nil, err
	}
	for isOnAnyTokenKind(s, lexer.KindPlus, lexer.KindMinus, lexer.KindAmpersand) {
		op := s.Current()
		ctx := s.WrapLeft(ast.KindArithmeticExpression, left)
		s.SetAttribute(ctx.Id, "operator", op.Data)
		s.Advance()
		if _, err := readMultiplicativeExpression(s, 1); err != nil {
			return nil, err
		}
		left = s.CloseContext(false, nil)
	}
	return left, nil
}

func readMultiplicativeExpression(s *State, attrIndex int) (*ast.Node, error) {
	left, err := readPrimaryExpression(s, attrIndex)
	if err != nil {
		return nil, err
	}
	for isOnAnyTokenKind(s, lexer.KindAsterisk, lexer.KindDivide) {
		op := s.Current()
		ctx := s.WrapLeft(ast.KindArithmeticExpression, left)
		s.SetAttribute(ctx.Id, "operator", op.Data)
		s.Advance()
		if _, err := readPrimaryExpression(s, 1); err != nil {
			return nil, err
		}
		left = s.CloseContext(false, nil)
	}
	return left, nil
}

/*
readUnaryExpression reads a prefix `not`, `+`, or `-` applied to the
tightest-binding tier (another unary, or a primary expression), mirroring
the teacher's ndPrefix but recursing into readPrimaryExpression directly
since M's prefix operators bind tighter than every binary operator.
*/
func readUnaryExpression(s *State, attrIndex int) (*ast.Node, error) {
	op := s.Current()
	ctx := s.OpenContext(ast.KindUnaryExpression, attrIndex)
	s.SetAttribute(ctx.Id, "operator", op.Data)
	s.Advance()

	if _, err := readPrimaryExpression(s, 0); err != nil {
		return nil, err
	}
	return s.CloseContext(false, nil), nil
}
