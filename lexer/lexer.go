/*
 * mparse
 *
 * Copyright 2024 The mparse Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mlangtools/mparse/result"
)

/*
RuneEOF is a sentinel rune representing the end of input.
*/
const RuneEOF = -1

/*
Function which represents the current state of the scanner and returns the
next state. Mirrors the teacher's lexFunc state-machine shape.
*/
type stateFunc func(*scanner) stateFunc

/*
scanner holds the mutable cursor over the source string while tokenizing.
*/
type scanner struct {
	name   string
	input  string
	pos    int // byte offset of the next unread rune
	start  int // byte offset where the current token began
	line   int // zero-based line number
	lastnl int // byte offset of the last newline seen
	width  int // width in bytes of the last rune returned by next
	tokens []Token
	err    error
}

/*
Lex tokenizes a given input and returns a channel of tokens, in the style of
the teacher's own streaming Lex function. Most callers want the synchronous
Tokenize below; this variant is kept because a channel-based producer is the
idiom this codebase already uses elsewhere for one-shot pipelines.
*/
func Lex(name string, input string) <-chan Token {
	out := make(chan Token)
	go func() {
		defer close(out)
		snap, _ := Tokenize(name, input)
		if snap == nil {
			return
		}
		for i := 0; i < snap.Len(); i++ {
			out <- snap.At(i)
		}
	}()
	return out
}

/*
Tokenize scans a given input string and returns an immutable Snapshot. A
lexical error does not stop tokenization outright - the offending KindError
token is appended and scanning resumes right after the offending text, giving the parser a
best-effort token stream to work with, consistent with how errors are never
fatal to the whole pipeline (spec.md sec. 7).
*/
func Tokenize(name string, input string) (*Snapshot, error) {
	s := &scanner{name: name, input: input}

	for state := lexToken; state != nil; {
		state = state(s)
	}

	s.emit(KindEOF, "")

	return NewSnapshot(name, s.tokens), s.err
}

/*
TryTokenize is Tokenize wrapped as a result.PartialResult (spec.md sec. 6.2):
Ok when scanning hit no lexical error, Mixed when it did but still produced a
usable best-effort Snapshot alongside the error, per Tokenize's doc comment
above. Tokenize never returns a nil Snapshot, so TryTokenize never needs the
plain Err state - it's here for symmetry with the PartialResult type and for
callers that would rather branch on Kind than on a (value, error) pair.
*/
func TryTokenize(name string, input string) result.PartialResult[*Snapshot] {
	snap, err := Tokenize(name, input)
	if err != nil {
		return result.PartialMixed(snap, err)
	}
	return result.PartialOk(snap)
}

func (s *scanner) next() rune {
	if s.pos >= len(s.input) {
		s.width = 0
		return RuneEOF
	}
	r, w := utf8.DecodeRuneInString(s.input[s.pos:])
	s.width = w
	s.pos += w
	if r == '\n' {
		s.line++
		s.lastnl = s.pos
	}
	return r
}

func (s *scanner) peek() rune {
	if s.pos >= len(s.input) {
		return RuneEOF
	}
	r, _ := utf8.DecodeRuneInString(s.input[s.pos:])
	return r
}

func (s *scanner) peekAt(offset int) rune {
	pos := s.pos
	for i := 0; i < offset; i++ {
		if pos >= len(s.input) {
			return RuneEOF
		}
		_, w := utf8.DecodeRuneInString(s.input[pos:])
		pos += w
	}
	if pos >= len(s.input) {
		return RuneEOF
	}
	r, _ := utf8.DecodeRuneInString(s.input[pos:])
	return r
}

func (s *scanner) backup() {
	s.pos -= s.width
	if s.input[s.pos:s.pos+s.width] == "\n" {
		s.line--
	}
}

func (s *scanner) positionAt(byteOffset int) Position {
	// lastnl tracking is only valid for the current scan position, so for
	// the starting position of a token we recompute the line-local offset
	// from the token's own start, which is always <= s.pos.
	lineStart := strings.LastIndex(s.input[:byteOffset], "\n") + 1
	lineNumber := strings.Count(s.input[:byteOffset], "\n")
	return Position{
		LineNumber:   lineNumber,
		LineCodeUnit: byteOffset - lineStart,
		CodeUnit:     byteOffset,
	}
}

func (s *scanner) emit(kind Kind, data string) {
	s.tokens = append(s.tokens, Token{
		Kind:          kind,
		Data:          data,
		PositionStart: s.positionAt(s.start),
		PositionEnd:   s.positionAt(s.pos),
	})
	s.start = s.pos
}

func (s *scanner) emitError(format string, args ...interface{}) stateFunc {
	msg := fmt.Sprintf(format, args...)
	s.tokens = append(s.tokens, Token{
		Kind:          KindError,
		Data:          msg,
		PositionStart: s.positionAt(s.start),
		PositionEnd:   s.positionAt(s.pos),
	})
	if s.err == nil {
		s.err = fmt.Errorf("%s: %s", name(s), msg)
	}
	s.start = s.pos
	return lexToken
}

func name(s *scanner) string {
	if s.name == "" {
		return "<input>"
	}
	return s.name
}

func isIdentifierStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentifierContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

/*
lexToken is the scanner's dispatch state - it classifies the next rune and
hands off to the specialized scanning routine, the same top-level shape the
teacher's lexToken uses.
*/
func lexToken(s *scanner) stateFunc {
	r := s.skipWhitespaceAndComments()
	if r == RuneEOF {
		return nil
	}

	s.start = s.pos - s.width

	switch {
	case r == '"':
		return lexTextLiteral(s)

	case r == '#':
		return lexHashOrQuotedIdentifier(s)

	case unicode.IsDigit(r):
		s.backup()
		return lexNumber(s)

	case isIdentifierStart(r):
		s.backup()
		return lexIdentifierOrKeyword(s)

	default:
		s.backup()
		return lexSymbol(s)
	}
}

/*
skipWhitespaceAndComments consumes runs of whitespace, "//" line comments and
"/* ... *" block comments, returning the first significant rune (already
consumed) or RuneEOF.
*/
func (s *scanner) skipWhitespaceAndComments() rune {
	for {
		r := s.next()

		if r == RuneEOF {
			return RuneEOF
		}

		if unicode.IsSpace(r) {
			continue
		}

		if r == '/' && s.peek() == '/' {
			for r != '\n' && r != RuneEOF {
				r = s.next()
			}
			continue
		}

		if r == '/' && s.peek() == '*' {
			s.next() // consume '*'
			for {
				r = s.next()
				if r == RuneEOF {
					return RuneEOF
				}
				if r == '*' && s.peek() == '/' {
					s.next()
					break
				}
			}
			continue
		}

		return r
	}
}

func lexIdentifierOrKeyword(s *scanner) stateFunc {
	r := s.next()
	for isIdentifierContinue(s.peek()) {
		r = s.next()
	}
	_ = r

	text := s.input[s.start:s.pos]

	if kind, ok := KeywordKinds[text]; ok {
		s.emit(kind, text)
		return lexToken
	}

	s.emit(KindIdentifier, text)
	return lexToken
}

func lexNumber(s *scanner) stateFunc {
	r := s.next()

	if r == '0' && (s.peek() == 'x' || s.peek() == 'X') {
		s.next()
		for isHexDigit(s.peek()) {
			s.next()
		}
		s.emit(KindNumber, s.input[s.start:s.pos])
		return lexToken
	}

	for unicode.IsDigit(s.peek()) {
		s.next()
	}

	if s.peek() == '.' && unicode.IsDigit(s.peekAt(1)) {
		s.next()
		for unicode.IsDigit(s.peek()) {
			s.next()
		}
	}

	if s.peek() == 'e' || s.peek() == 'E' {
		offset := 1
		if s.peekAt(1) == '+' || s.peekAt(1) == '-' {
			offset = 2
		}
		if unicode.IsDigit(s.peekAt(offset)) {
			for i := 0; i < offset; i++ {
				s.next()
			}
			for unicode.IsDigit(s.peek()) {
				s.next()
			}
		}
	}

	s.emit(KindNumber, s.input[s.start:s.pos])
	return lexToken
}

func isHexDigit(r rune) bool {
	return unicode.IsDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func lexTextLiteral(s *scanner) stateFunc {
	var b strings.Builder

	for {
		r := s.next()

		if r == RuneEOF {
			return s.emitError("unterminated text literal")
		}

		if r == '"' {
			if s.peek() == '"' {
				// doubled quote is an escaped literal quote
				s.next()
				b.WriteRune('"')
				continue
			}
			break
		}

		b.WriteRune(r)
	}

	s.emit(KindTextLiteral, b.String())
	return lexToken
}

/*
lexHashOrQuotedIdentifier handles the '#' prefix, which introduces either a
quoted identifier (#"...") or one of the hash-keyword literal constructors
(#date, #table, ...). The quoted-identifier body is delegated to the
participle-driven sub-grammar in literals.go; hash keywords are matched
directly against HashKeywordKinds.
*/
func lexHashOrQuotedIdentifier(s *scanner) stateFunc {
	if s.peek() == '"' {
		s.next() // consume opening quote

		text, ok := scanQuotedIdentifierBody(s)
		if !ok {
			return s.emitError("unterminated quoted identifier")
		}

		s.emit(KindQuotedIdentifier, text)
		return lexToken
	}

	start := s.pos - s.width
	for isIdentifierContinue(s.peek()) {
		s.next()
	}
	text := s.input[start:s.pos]

	if kind, ok := HashKeywordKinds[text]; ok {
		s.emit(kind, text)
		return lexToken
	}

	return s.emitError("unrecognized '#' construct %q", text)
}

/*
lexSymbol matches the longest known multi-character symbol at the cursor.
*/
func lexSymbol(s *scanner) stateFunc {
	remaining := s.input[s.pos:]

	for _, sym := range SymbolKinds {
		if strings.HasPrefix(remaining, sym.Text) {
			for range sym.Text {
				s.next()
			}
			s.emit(sym.Kind, sym.Text)
			return lexToken
		}
	}

	r := s.next()
	return s.emitError("unexpected character %q", string(r))
}
