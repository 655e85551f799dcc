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
	"fmt"

	"github.com/mlangtools/mparse/lexer"
)

/*
Reason tags the kind of parse failure (spec.md sec. 4.2.6). Unlike a lexer or
invariant error, a parse Error is expected, recoverable traffic: the
disambiguation engine routes on it rather than treating it as exceptional.
*/
type Reason int

const (
	ExpectedTokenKind Reason = iota
	ExpectedAnyTokenKind
	ExpectedClosingTokenKind
	UnterminatedSequence
	UnusedTokensRemain
	RequiredParameterAfterOptionalParameter
	InvalidCatchFunction
	InvalidPrimitiveTypeError
	ExpectedCsvContinuationDanglingComma
	ExpectedCsvContinuationLetExpression
)

func (r Reason) String() string {
	switch r {
	case ExpectedTokenKind:
		return "ExpectedTokenKind"
	case ExpectedAnyTokenKind:
		return "ExpectedAnyTokenKind"
	case ExpectedClosingTokenKind:
		return "ExpectedClosingTokenKind"
	case UnterminatedSequence:
		return "UnterminatedSequence"
	case UnusedTokensRemain:
		return "UnusedTokensRemain"
	case RequiredParameterAfterOptionalParameter:
		return "RequiredParameterAfterOptionalParameter"
	case InvalidCatchFunction:
		return "InvalidCatchFunction"
	case InvalidPrimitiveTypeError:
		return "InvalidPrimitiveTypeError"
	case ExpectedCsvContinuationDanglingComma:
		return "ExpectedCsvContinuationDanglingComma"
	case ExpectedCsvContinuationLetExpression:
		return "ExpectedCsvContinuationLetExpression"
	default:
		return "UnknownReason"
	}
}

/*
SequenceKind names which bracketing construct an UnterminatedSequence error
was raised for.
*/
type SequenceKind int

const (
	SequenceBracket SequenceKind = iota
	SequenceParenthesis
	SequenceBrace
)

func (k SequenceKind) String() string {
	switch k {
	case SequenceBracket:
		return "Bracket"
	case SequenceParenthesis:
		return "Parenthesis"
	case SequenceBrace:
		return "Brace"
	default:
		return "Unknown"
	}
}

/*
Error is a non-fatal parse failure. It always carries the token where the
mismatch was detected, so a caller - including the disambiguation engine
comparing two failed attempts - can tell how far a parse got before failing.
*/
type Error struct {
	Reason       Reason
	Message      string
	Token        lexer.Token
	Expected     []lexer.Kind
	SequenceKind SequenceKind
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s (at %s)", e.Reason, e.Message, e.Token)
	}
	return fmt.Sprintf("%s (at %s)", e.Reason, e.Token)
}

func newExpectedTokenKind(tok lexer.Token, want lexer.Kind) *Error {
	return &Error{
		Reason:   ExpectedTokenKind,
		Message:  fmt.Sprintf("expected %s, got %s", want, tok.Kind),
		Token:    tok,
		Expected: []lexer.Kind{want},
	}
}

func newExpectedAnyTokenKind(tok lexer.Token, want ...lexer.Kind) *Error {
	return &Error{
		Reason:   ExpectedAnyTokenKind,
		Message:  fmt.Sprintf("expected one of %v, got %s", want, tok.Kind),
		Token:    tok,
		Expected: want,
	}
}

func newExpectedClosingTokenKind(tok lexer.Token, want lexer.Kind) *Error {
	return &Error{
		Reason:   ExpectedClosingTokenKind,
		Message:  fmt.Sprintf("expected closing %s, got %s", want, tok.Kind),
		Token:    tok,
		Expected: []lexer.Kind{want},
	}
}

func newUnterminatedSequence(tok lexer.Token, kind SequenceKind) *Error {
	return &Error{
		Reason:       UnterminatedSequence,
		Message:      fmt.Sprintf("unterminated %s", kind),
		Token:        tok,
		SequenceKind: kind,
	}
}

func newUnusedTokensRemain(tok lexer.Token) *Error {
	return &Error{
		Reason:  UnusedTokensRemain,
		Message: "unused tokens remain after a complete parse",
		Token:   tok,
	}
}

func newRequiredParameterAfterOptionalParameter(tok lexer.Token) *Error {
	return &Error{
		Reason:  RequiredParameterAfterOptionalParameter,
		Message: "a required parameter cannot follow an optional one",
		Token:   tok,
	}
}

func newInvalidCatchFunction(tok lexer.Token) *Error {
	return &Error{
		Reason:  InvalidCatchFunction,
		Message: "catch function must take exactly one parameter",
		Token:   tok,
	}
}

func newInvalidPrimitiveType(tok lexer.Token) *Error {
	return &Error{
		Reason:  InvalidPrimitiveTypeError,
		Message: fmt.Sprintf("%q is not a primitive type", tok.Data),
		Token:   tok,
	}
}

func newExpectedCsvDanglingComma(tok lexer.Token) *Error {
	return &Error{Reason: ExpectedCsvContinuationDanglingComma, Token: tok, Message: "dangling comma with no following item"}
}

func newExpectedCsvLetExpression(tok lexer.Token) *Error {
	return &Error{Reason: ExpectedCsvContinuationLetExpression, Token: tok, Message: "let expression binding list must be followed by another binding or 'in'"}
}
