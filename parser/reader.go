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
isOnTokenKind reports whether the current token matches kind, without
consuming it.
*/
func isOnTokenKind(s *State, kind lexer.Kind) bool {
	return s.Current().Kind == kind
}

/*
isOnAnyTokenKind reports whether the current token matches any of kinds.
*/
func isOnAnyTokenKind(s *State, kinds ...lexer.Kind) bool {
	cur := s.Current().Kind
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

/*
expectTokenKind consumes the current token if it matches kind, otherwise
returns a non-fatal ExpectedTokenKind error and leaves the cursor where it
was.
*/
func expectTokenKind(s *State, kind lexer.Kind) (lexer.Token, error) {
	tok := s.Current()
	if tok.Kind != kind {
		return tok, newExpectedTokenKind(tok, kind)
	}
	s.Advance()
	return tok, nil
}

/*
expectAnyTokenKind consumes the current token if it matches one of kinds.
*/
func expectAnyTokenKind(s *State, kinds ...lexer.Kind) (lexer.Token, error) {
	tok := s.Current()
	for _, k := range kinds {
		if tok.Kind == k {
			s.Advance()
			return tok, nil
		}
	}
	return tok, newExpectedAnyTokenKind(tok, kinds...)
}

/*
expectClosingTokenKind consumes a closing bracket/paren/brace, reporting an
UnterminatedSequence error (rather than a plain ExpectedTokenKind) when the
closer is never found because the input ran out - this is the edge case a
resumable parser exists to keep going through (spec.md sec. 4.2.5).
*/
func expectClosingTokenKind(s *State, kind lexer.Kind, seq SequenceKind) (lexer.Token, error) {
	tok := s.Current()
	if tok.Kind != kind {
		if tok.Kind == lexer.KindEOF {
			return tok, newUnterminatedSequence(tok, seq)
		}
		return tok, newExpectedClosingTokenKind(tok, kind)
	}
	s.Advance()
	return tok, nil
}

/*
checkCancellation polls the cooperative cancellation token at a reader entry
point, the same place the teacher's csv loops poll theirs (spec.md sec. 4.3).
Cancellation is never treated as a recoverable parse Error - it propagates
as-is so speculative recovery can't swallow it.
*/
func checkCancellation(s *State) error {
	return s.Cancel.ThrowIfCancelled()
}

/*
csvResult is what a comma-separated-value reader returns: the id of the
ArrayWrapper it opened (promoted to an AST node once done, left an open
Context if reading stopped on an error).
*/
type csvResult struct {
	wrapperId int
}

/*
readCsv reads a comma-separated sequence of productions, stopping when
closeKind or EOF is seen, cancellation fires, or an element read fails.
Elements are not checkpointed. On any error - including a dangling comma
directly before closeKind or EOF, reported as
ExpectedCsvContinuationDanglingComma - everything read so far stays in the
tree under an open ArrayWrapper Context and the error is returned.
*/
func readCsv(s *State, wrapperAttrIndex int, closeKind lexer.Kind, readElement func(s *State, attrIndex int) error) (csvResult, error) {
	wrapper := s.OpenContext(ast.KindArrayWrapper, wrapperAttrIndex)

	index := 0
	for {
		if err := checkCancellation(s); err != nil {
			return csvResult{wrapperId: wrapper.Id}, err
		}

		if isOnTokenKind(s, closeKind) || isOnTokenKind(s, lexer.KindEOF) {
			break
		}

		if err := readElement(s, index); err != nil {
			return csvResult{wrapperId: wrapper.Id}, err
		}
		index++

		if isOnTokenKind(s, lexer.KindComma) {
			s.Advance()
			if isOnTokenKind(s, closeKind) || isOnTokenKind(s, lexer.KindEOF) {
				return csvResult{wrapperId: wrapper.Id}, newExpectedCsvDanglingComma(s.Current())
			}
			continue
		}

		break
	}

	s.CloseContext(false, nil)
	return csvResult{wrapperId: wrapper.Id}, nil
}
