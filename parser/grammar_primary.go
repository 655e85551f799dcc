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
readPrimaryExpression dispatches on the current token to read a literal,
identifier, parenthesized expression, list/record literal, or one of the
keyword-led constructs, then folds in any postfix field/item access and
invoke-expression chain (spec.md's ExpressionTree 4.3/4.4).
*/
func readPrimaryExpression(s *State, attrIndex int) (*ast.Node, error) {
	if err := checkCancellation(s); err != nil {
		return nil, err
	}

	var (
		node *ast.Node
		err  error
	)

	switch s.Current().Kind {
	case lexer.KindNumber:
		node, err = readNumberLiteral(s, attrIndex)
	case lexer.KindTextLiteral:
		node, err = readTextLiteral(s, attrIndex)
	case lexer.KindTrue, lexer.KindFalse:
		node, err = readLogicalLiteral(s, attrIndex)
	case lexer.KindNull:
		node, err = readNullLiteral(s, attrIndex)
	case lexer.KindIdentifier, lexer.KindQuotedIdentifier:
		node, err = readIdentifier(s, attrIndex)
	case lexer.KindAtSign:
		node, err = readRecursiveIdentifier(s, attrIndex)
	case lexer.KindLeftParen:
		node, err = readParenthesizedOrFunctionExpression(s, attrIndex)
	case lexer.KindLeftBracket:
		node, err = readRecordLiteral(s, attrIndex)
	case lexer.KindLeftBrace:
		node, err = readListLiteral(s, attrIndex)
	case lexer.KindLet:
		node, err = readLetExpression(s, attrIndex)
	case lexer.KindIf:
		node, err = readIfExpression(s, attrIndex)
	case lexer.KindEach:
		node, err = readEachExpression(s, attrIndex)
	case lexer.KindTry:
		node, err = readTryExpression(s, attrIndex)
	case lexer.KindError_:
		node, err = readErrorRaisingExpression(s, attrIndex)
	case lexer.KindType:
		node, err = readTypeExpression(s, attrIndex)
	case lexer.KindNot, lexer.KindPlus, lexer.KindMinus:
		node, err = readUnaryExpression(s, attrIndex)
	case lexer.KindHashBinary, lexer.KindHashDate, lexer.KindHashDateTime,
		lexer.KindHashDateTimeZone, lexer.KindHashDuration, lexer.KindHashTable:
		node, err = readKeywordInvokeLiteral(s, attrIndex)
	case lexer.KindHashInfinity, lexer.KindHashNan:
		node, err = readHashNumberLiteral(s, attrIndex)
	case lexer.KindHashSections, lexer.KindHashShared:
		node, err = readHashIdentifier(s, attrIndex)
	case lexer.KindDotDotDot:
		node, err = readNotImplementedExpression(s, attrIndex)
	default:
		return nil, newExpectedAnyTokenKind(s.Current(),
			lexer.KindNumber, lexer.KindTextLiteral, lexer.KindIdentifier,
			lexer.KindLeftParen, lexer.KindLeftBracket, lexer.KindLeftBrace)
	}

	if err != nil {
		return nil, err
	}

	return readPostfixChain(s, node)
}

/*
readRecursiveIdentifier reads `@name`, a reference to a let or section
binding from inside its own defining value expression (spec.md sec. 4.4's
recursion rule). The leading "@" is discarded; the produced node is an
ordinary Identifier carrying the "recursive" attribute the scope resolver
checks before allowing the self-reference to resolve.
*/
func readRecursiveIdentifier(s *State, attrIndex int) (*ast.Node, error) {
	ctx := s.OpenContext(ast.KindIdentifier, attrIndex)
	if _, err := expectTokenKind(s, lexer.KindAtSign); err != nil {
		return nil, err
	}
	tok, err := expectAnyTokenKind(s, lexer.KindIdentifier, lexer.KindQuotedIdentifier)
	if err != nil {
		return nil, err
	}
	node := s.CloseContext(true, &tok)
	s.SetAttribute(ctx.Id, "recursive", true)
	return node, nil
}

/*
readPostfixChain folds field selectors (`.name`), item/optional-item access
(`[...]`, `[...]?`), field projection (`[[a],[b]]`), and invoke expressions
(`(...)`) onto an already-read primary expression, left to right.
*/
func readPostfixChain(s *State, left *ast.Node) (*ast.Node, error) {
	for {
		if err := checkCancellation(s); err != nil {
			return nil, err
		}

		switch s.Current().Kind {
		case lexer.KindDot:
			next, err := readFieldSelector(s, left)
			if err != nil {
				return nil, err
			}
			left = next
		case lexer.KindLeftBracket:
			next, err := readBracketedPostfix(s, left)
			if err != nil {
				return nil, err
			}
			left = next
		case lexer.KindLeftParen:
			next, err := readInvokeExpression(s, left)
			if err != nil {
				return nil, err
			}
			left = next
		case lexer.KindQuestionMark:
			// Nullable-access marker already consumed as part of the
			// bracketed postfix that preceded it; nothing further to fold.
			return left, nil
		default:
			return left, nil
		}
	}
}

func readFieldSelector(s *State, left *ast.Node) (*ast.Node, error) {
	ctx := s.WrapLeft(ast.KindFieldSelector, left)
	if _, err := expectTokenKind(s, lexer.KindDot); err != nil {
		return nil, err
	}
	if _, err := readGeneralizedIdentifier(s, 1); err != nil {
		return nil, err
	}
	optional := false
	if isOnTokenKind(s, lexer.KindQuestionMark) {
		s.Advance()
		optional = true
	}
	node := s.CloseContext(false, nil)
	s.SetAttribute(ctx.Id, "optional", optional)
	return node, nil
}

/*
readBracketedPostfix disambiguates `expr[...]` between ItemAccessExpression
(a single key expression) and FieldProjection (a csv of bracketed field
name lists) by looking at what follows the `[`.
*/
func readBracketedPostfix(s *State, left *ast.Node) (*ast.Node, error) {
	if s.PeekAt(1).Kind == lexer.KindLeftBracket {
		return readFieldProjection(s, left)
	}
	return readItemAccessExpression(s, left)
}

func readItemAccessExpression(s *State, left *ast.Node) (*ast.Node, error) {
	ctx := s.WrapLeft(ast.KindItemAccessExpr, left)
	if _, err := expectTokenKind(s, lexer.KindLeftBracket); err != nil {
		return nil, err
	}
	if _, err := readExpression(s, 1); err != nil {
		return nil, err
	}
	if _, err := expectClosingTokenKind(s, lexer.KindRightBracket, SequenceBracket); err != nil {
		return nil, err
	}
	optional := false
	if isOnTokenKind(s, lexer.KindQuestionMark) {
		s.Advance()
		optional = true
	}
	node := s.CloseContext(false, nil)
	s.SetAttribute(ctx.Id, "optional", optional)
	return node, nil
}

func readFieldProjection(s *State, left *ast.Node) (*ast.Node, error) {
	ctx := s.WrapLeft(ast.KindFieldProjection, left)
	if _, err := expectTokenKind(s, lexer.KindLeftBracket); err != nil {
		return nil, err
	}

	_, err := readCsv(s, 1, lexer.KindRightBracket, func(s *State, i int) error {
		return readFieldSpecification(s, i)
	})
	if err != nil {
		return nil, err
	}

	if _, err := expectClosingTokenKind(s, lexer.KindRightBracket, SequenceBracket); err != nil {
		return nil, err
	}
	optional := false
	if isOnTokenKind(s, lexer.KindQuestionMark) {
		s.Advance()
		optional = true
	}
	node := s.CloseContext(false, nil)
	s.SetAttribute(ctx.Id, "optional", optional)
	return node, nil
}

func readFieldSpecification(s *State, attrIndex int) error {
	s.OpenContext(ast.KindFieldSpecification, attrIndex)
	if _, err := expectTokenKind(s, lexer.KindLeftBracket); err != nil {
		return err
	}
	if _, err := readGeneralizedIdentifier(s, 0); err != nil {
		return err
	}
	if _, err := expectClosingTokenKind(s, lexer.KindRightBracket, SequenceBracket); err != nil {
		return err
	}
	s.CloseContext(false, nil)
	return nil
}

/*
readInvokeExpression reads the parenthesized, comma-separated argument list
of a function call.
*/
func readInvokeExpression(s *State, left *ast.Node) (*ast.Node, error) {
	s.WrapLeft(ast.KindInvokeExpression, left)
	if _, err := expectTokenKind(s, lexer.KindLeftParen); err != nil {
		return nil, err
	}

	_, err := readCsv(s, 1, lexer.KindRightParen, func(s *State, i int) error {
		_, err := readExpression(s, i)
		return err
	})
	if err != nil {
		return nil, err
	}

	if _, err := expectClosingTokenKind(s, lexer.KindRightParen, SequenceParenthesis); err != nil {
		return nil, err
	}
	return s.CloseContext(false, nil), nil
}

/*
readKeywordInvokeLiteral reads one of the #binary/#date/#datetime/... literal
constructors, which all share the shape `#keyword(arg, arg, ...)`.
*/
func readKeywordInvokeLiteral(s *State, attrIndex int) (*ast.Node, error) {
	ctx := s.OpenContext(ast.KindInvokeExpression, attrIndex)
	keyword := s.Current()
	s.Advance()
	s.SetAttribute(ctx.Id, "keyword", keyword.Data)

	if _, err := expectTokenKind(s, lexer.KindLeftParen); err != nil {
		return nil, err
	}
	_, err := readCsv(s, 0, lexer.KindRightParen, func(s *State, i int) error {
		_, err := readExpression(s, i)
		return err
	})
	if err != nil {
		return nil, err
	}
	if _, err := expectClosingTokenKind(s, lexer.KindRightParen, SequenceParenthesis); err != nil {
		return nil, err
	}
	return s.CloseContext(false, nil), nil
}

/*
readHashNumberLiteral reads the numeric constants `#infinity` and `#nan`,
which carry no parenthesized arguments.
*/
func readHashNumberLiteral(s *State, attrIndex int) (*ast.Node, error) {
	return readLeaf(s, attrIndex, ast.KindNumberLiteral, s.Current().Kind)
}

/*
readHashIdentifier reads the environment-reflection keywords `#sections` and
`#shared`, which behave like bare identifiers in expression position.
*/
func readHashIdentifier(s *State, attrIndex int) (*ast.Node, error) {
	return readLeaf(s, attrIndex, ast.KindIdentifier, s.Current().Kind)
}
