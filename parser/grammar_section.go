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
readSection reads a top-level `[shared] section [name];` followed by zero
or more semicolon-terminated SectionMember declarations - the alternative
top-level production to a bare expression (spec.md's "document is either an
expression or a section" disambiguation).
*/
func readSection(s *State, attrIndex int) (*ast.Node, error) {
	s.OpenContext(ast.KindSection, attrIndex)

	if isOnTokenKind(s, lexer.KindShared) {
		s.Advance()
	}

	if _, err := expectTokenKind(s, lexer.KindSection); err != nil {
		return nil, err
	}

	if isOnTokenKind(s, lexer.KindIdentifier) {
		if _, err := readIdentifier(s, 0); err != nil {
			return nil, err
		}
	}

	if _, err := expectTokenKind(s, lexer.KindSemicolon); err != nil {
		return nil, err
	}

	index := 1
	for isOnAnyTokenKind(s, lexer.KindShared, lexer.KindIdentifier) {
		if err := checkCancellation(s); err != nil {
			return nil, err
		}
		if err := readSectionMember(s, index); err != nil {
			return nil, err
		}
		index++
	}

	return s.CloseContext(false, nil), nil
}

/*
readSectionMember reads `[shared] name = expr;`.
*/
func readSectionMember(s *State, attrIndex int) error {
	s.OpenContext(ast.KindSectionMember, attrIndex)

	if isOnTokenKind(s, lexer.KindShared) {
		s.Advance()
	}

	if _, err := readIdentifier(s, 0); err != nil {
		return err
	}
	if _, err := expectTokenKind(s, lexer.KindEqual); err != nil {
		return err
	}
	if _, err := readExpression(s, 1); err != nil {
		return err
	}
	if _, err := expectTokenKind(s, lexer.KindSemicolon); err != nil {
		return err
	}

	s.CloseContext(false, nil)
	return nil
}
