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
primitiveTypeNames are the identifiers recognized in a type-expression
position as primitive type names rather than ordinary identifiers (spec.md's
ident/types boundary - `type text` is a PrimitiveType, `text` alone in value
position is just an Identifier).
*/
var primitiveTypeNames = map[string]bool{
	"any": true, "anynonnull": true, "binary": true, "date": true,
	"datetime": true, "datetimezone": true, "duration": true, "function": true,
	"list": true, "logical": true, "none": true, "null": true, "number": true,
	"record": true, "table": true, "text": true, "time": true, "type": true,
}

/*
readTypeExpression reads `type <primary type>`, the expression-position
introduction of a type value.
*/
func readTypeExpression(s *State, attrIndex int) (*ast.Node, error) {
	s.OpenContext(ast.KindTypePrimaryType, attrIndex)
	if _, err := expectTokenKind(s, lexer.KindType); err != nil {
		return nil, err
	}
	if _, err := readPrimaryType(s, 0); err != nil {
		return nil, err
	}
	return s.CloseContext(false, nil), nil
}

/*
readNullablePrimitiveType reads an optionally `nullable`-prefixed primitive
type, the form used after `is`, `as`, and in parameter/return annotations.
`nullable` is itself just an identifier-shaped keyword in this grammar (the
teacher's lexer has no reserved word for it either), so it's recognized
positionally rather than as its own Kind.
*/
func readNullablePrimitiveType(s *State, attrIndex int) (*ast.Node, error) {
	if isOnTokenKind(s, lexer.KindIdentifier) && s.Current().Data == "nullable" {
		s.OpenContext(ast.KindNullablePrimitiveType, attrIndex)
		s.Advance()
		if _, err := readPrimitiveType(s, 0); err != nil {
			return nil, err
		}
		return s.CloseContext(false, nil), nil
	}
	return readPrimitiveType(s, attrIndex)
}

/*
readPrimaryType reads a primitive type, a record/table/list/function/
nullable type constructor - the full PrimaryType production.
*/
func readPrimaryType(s *State, attrIndex int) (*ast.Node, error) {
	switch s.Current().Kind {
	case lexer.KindLeftBracket:
		return readRecordType(s, attrIndex)
	case lexer.KindLeftBrace:
		return readListType(s, attrIndex)
	case lexer.KindHashTable:
		return readTableType(s, attrIndex)
	case lexer.KindIdentifier:
		if s.Current().Data == "nullable" {
			switch s.PeekAt(1).Kind {
			case lexer.KindLeftBrace, lexer.KindLeftBracket, lexer.KindHashTable:
				return readNullableType(s, attrIndex)
			}
			return readNullablePrimitiveType(s, attrIndex)
		}
		if s.Current().Data == "function" {
			return readFunctionType(s, attrIndex)
		}
		return readPrimitiveType(s, attrIndex)
	default:
		return readPrimitiveType(s, attrIndex)
	}
}

/*
readNullableType reads `nullable <primary type>` where the wrapped type is a
structural constructor rather than a bare primitive name - `nullable {text}`,
`nullable [a = number]`. The bare-primitive form stays a
NullablePrimitiveType, matching the annotation grammar.
*/
func readNullableType(s *State, attrIndex int) (*ast.Node, error) {
	s.OpenContext(ast.KindNullableType, attrIndex)
	s.Advance()
	if _, err := readPrimaryType(s, 0); err != nil {
		return nil, err
	}
	return s.CloseContext(false, nil), nil
}

func readPrimitiveType(s *State, attrIndex int) (*ast.Node, error) {
	ctx := s.OpenContext(ast.KindPrimitiveType, attrIndex)
	tok, err := expectTokenKind(s, lexer.KindIdentifier)
	if err != nil {
		return nil, err
	}
	if !primitiveTypeNames[tok.Data] {
		return nil, newInvalidPrimitiveType(tok)
	}
	node := s.CloseContext(true, &tok)
	s.SetAttribute(ctx.Id, "name", tok.Data)
	return node, nil
}

/*
readRecordType reads `[a = text, b = number, ...]` or the open-ended
`[a = text, ...]` form.
*/
func readRecordType(s *State, attrIndex int) (*ast.Node, error) {
	ctx := s.OpenContext(ast.KindRecordType, attrIndex)
	if _, err := expectTokenKind(s, lexer.KindLeftBracket); err != nil {
		return nil, err
	}

	open := false
	_, err := readCsv(s, 0, lexer.KindRightBracket, func(s *State, i int) error {
		if isOnTokenKind(s, lexer.KindDotDotDot) {
			s.Advance()
			open = true
			return nil
		}
		return readGeneralizedIdentifierPairedExpression(s, i)
	})
	if err != nil {
		return nil, err
	}

	if _, err := expectClosingTokenKind(s, lexer.KindRightBracket, SequenceBracket); err != nil {
		return nil, err
	}
	node := s.CloseContext(false, nil)
	s.SetAttribute(ctx.Id, "open", open)
	return node, nil
}

/*
readTableType reads `#table [a = text, b = number]` - the csv row-shape
form, read as a record type - or the empty `#table ()`.
*/
func readTableType(s *State, attrIndex int) (*ast.Node, error) {
	s.OpenContext(ast.KindTableType, attrIndex)
	if _, err := expectTokenKind(s, lexer.KindHashTable); err != nil {
		return nil, err
	}
	if isOnTokenKind(s, lexer.KindLeftBracket) {
		if _, err := readRecordType(s, 0); err != nil {
			return nil, err
		}
	} else {
		if _, err := expectTokenKind(s, lexer.KindLeftParen); err != nil {
			return nil, err
		}
		if _, err := expectClosingTokenKind(s, lexer.KindRightParen, SequenceParenthesis); err != nil {
			return nil, err
		}
	}
	return s.CloseContext(false, nil), nil
}

/*
readListType reads `{primaryType}`.
*/
func readListType(s *State, attrIndex int) (*ast.Node, error) {
	s.OpenContext(ast.KindListType, attrIndex)
	if _, err := expectTokenKind(s, lexer.KindLeftBrace); err != nil {
		return nil, err
	}
	if _, err := readPrimaryType(s, 0); err != nil {
		return nil, err
	}
	if _, err := expectClosingTokenKind(s, lexer.KindRightBrace, SequenceBrace); err != nil {
		return nil, err
	}
	return s.CloseContext(false, nil), nil
}

/*
readFunctionType reads `function (params) as returnType`.
*/
func readFunctionType(s *State, attrIndex int) (*ast.Node, error) {
	s.OpenContext(ast.KindFunctionType, attrIndex)
	if _, err := expectTokenKind(s, lexer.KindIdentifier); err != nil { // "function"
		return nil, err
	}
	if _, err := expectTokenKind(s, lexer.KindLeftParen); err != nil {
		return nil, err
	}

	_, err := readCsv(s, 0, lexer.KindRightParen, func(s *State, i int) error {
		return readParameterTypeEntry(s, i)
	})
	if err != nil {
		return nil, err
	}

	if _, err := expectClosingTokenKind(s, lexer.KindRightParen, SequenceParenthesis); err != nil {
		return nil, err
	}
	if _, err := expectTokenKind(s, lexer.KindAs); err != nil {
		return nil, err
	}
	if _, err := readNullablePrimitiveType(s, 1); err != nil {
		return nil, err
	}
	return s.CloseContext(false, nil), nil
}

func readParameterTypeEntry(s *State, attrIndex int) error {
	s.OpenContext(ast.KindParameter, attrIndex)
	if _, err := readIdentifier(s, 0); err != nil {
		return err
	}
	if _, err := expectTokenKind(s, lexer.KindAs); err != nil {
		return err
	}
	if _, err := readNullablePrimitiveType(s, 1); err != nil {
		return err
	}
	s.CloseContext(false, nil)
	return nil
}
