/*
 * mparse
 *
 * Copyright 2024 The mparse Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

/*
Package ident implements the identifier-text utilities of spec.md sec. 4.8:
recognizing the three identifier shapes the M grammar admits and converting
between their quoted and unquoted forms. These are pure text predicates with
no dependency on the lexer or parser - the same separation the teacher keeps
between its scanner and devt.de/krotik/common/stringutil's text helpers.
*/
package ident

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

/*
IsIdentifierStartRune reports whether r may begin a regular identifier:
a letter or underscore, matching the lexer's own isIdentifierStart.
*/
func IsIdentifierStartRune(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

/*
IsIdentifierContinueRune reports whether r may continue a regular
identifier after its first rune.
*/
func IsIdentifierContinueRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

/*
IsRegularIdentifier reports whether text is a full match for the identifier
grammar: a start rune followed by continue runes, optionally followed by a
single trailing period when allowTrailingPeriod is set (M permits
`Table.AddColumn`-style access chains to be written as one lexical
identifier in some contexts).
*/
func IsRegularIdentifier(text string, allowTrailingPeriod bool) bool {
	if text == "" {
		return false
	}

	runes := []rune(text)
	if allowTrailingPeriod && runes[len(runes)-1] == '.' {
		runes = runes[:len(runes)-1]
		if len(runes) == 0 {
			return false
		}
	}

	if !IsIdentifierStartRune(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !IsIdentifierContinueRune(r) {
			return false
		}
	}
	return true
}

/*
IsGeneralizedIdentifier reports whether text matches the generalized
identifier grammar: one or more dot-separated segments, each segment made of
identifier-continue runes or spaces, with no empty segment (so ".." is
rejected, matching spec.md sec. 4.8's "rejects .." requirement) and no
leading/trailing space within a segment.
*/
func IsGeneralizedIdentifier(text string) bool {
	if text == "" {
		return false
	}

	segments := strings.Split(text, ".")
	for _, seg := range segments {
		if seg == "" {
			return false
		}
		trimmed := strings.Trim(seg, " ")
		if trimmed == "" || trimmed != seg {
			return false
		}
		for _, r := range seg {
			if r == ' ' {
				continue
			}
			if !IsIdentifierContinueRune(r) {
				return false
			}
		}
		if !IsIdentifierStartRune([]rune(trimmed)[0]) {
			return false
		}
	}
	return true
}

/*
IsQuotedIdentifier reports whether text is a syntactically well-formed
`#"..."` quoted identifier: the #" prefix, a closing quote, and every
internal `"` doubled (paired-quote escaping, per spec.md sec. 4.8).
*/
func IsQuotedIdentifier(text string) bool {
	if !strings.HasPrefix(text, `#"`) || !strings.HasSuffix(text, `"`) || len(text) < 3 {
		return false
	}
	interior := text[2 : len(text)-1]
	return hasPairedQuotes(interior)
}

func hasPairedQuotes(interior string) bool {
	for i := 0; i < len(interior); i++ {
		if interior[i] != '"' {
			continue
		}
		// a lone '"' must be immediately followed by another to form a pair.
		if i+1 >= len(interior) || interior[i+1] != '"' {
			return false
		}
		i++
	}
	return true
}

/*
NormalizeIdentifier strips the #"..." quoting when the interior, once
unescaped, would itself be a valid regular identifier - a quoted identifier
is only "truly" quoted when it needs to be, per spec.md sec. 4.8. Anything
else (including malformed quoting) is returned unchanged.
*/
func NormalizeIdentifier(text string) string {
	if !IsQuotedIdentifier(text) {
		return text
	}
	interior := text[2 : len(text)-1]
	unquoted := strings.ReplaceAll(interior, `""`, `"`)
	if IsRegularIdentifier(unquoted, false) {
		return unquoted
	}
	return text
}

/*
QuoteIdentifier re-quotes a literal name as a #"..." quoted identifier,
doubling any interior quote. Used by types.NameOf to re-quote generalized
identifiers containing whitespace on output (spec.md sec. 4.5).
*/
func QuoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, `"`, `""`)
	return `#"` + escaped + `"`
}

/*
escapeSequences maps a literal rune sequence to its M string-literal escape
sequence. Order doesn't matter for encoding; Escape walks runes directly.
*/
var escapeSequences = map[rune]string{
	'\r': "#(cr)",
	'\n': "#(lf)",
	'\t': "#(tab)",
}

/*
Escape converts raw text into its M string-literal escaped form: CR, LF,
tab, and '#' each become a #(...) escape, CRLF collapses to the single
#(cr,lf) escape, and '"' doubles. This is a total, injective function on
arbitrary input (spec.md sec. 8: escape / unescape round-trip property).
*/
func Escape(raw string) string {
	var b strings.Builder
	runes := []rune(raw)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\r' && i+1 < len(runes) && runes[i+1] == '\n' {
			b.WriteString("#(cr,lf)")
			i++
			continue
		}
		if esc, ok := escapeSequences[r]; ok {
			b.WriteString(esc)
			continue
		}
		if r == '#' {
			b.WriteString("#(#)")
			continue
		}
		if r == '"' {
			b.WriteString(`""`)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

/*
unescapeTokens maps each recognized #(...) escape body to its decoded rune
sequence, checked longest-first by Unescape so "#(cr,lf)" isn't mistaken for
"#(cr)" followed by literal ",lf)".
*/
var unescapeTokens = []struct {
	token   string
	decoded string
}{
	{"#(cr,lf)", "\r\n"},
	{"#(cr)", "\r"},
	{"#(lf)", "\n"},
	{"#(tab)", "\t"},
	{"#(#)", "#"},
}

/*
Unescape converts an M string-literal escaped form back to raw text: each
recognized #(...) escape is decoded and doubled quotes collapse to one. An
escape sequence that doesn't match any known token is passed through
unchanged rather than raising an error, since Unescape is also used
defensively on text that may not have been escaped by Escape at all
(spec.md sec. 8's round-trip property is one-directional for arbitrary
input: escape then unescape is always identity, not the reverse).
*/
func Unescape(escaped string) string {
	var b strings.Builder
	i := 0
	for i < len(escaped) {
		matched := false
		for _, tok := range unescapeTokens {
			if strings.HasPrefix(escaped[i:], tok.token) {
				b.WriteString(tok.decoded)
				i += len(tok.token)
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		if strings.HasPrefix(escaped[i:], `""`) {
			b.WriteByte('"')
			i += 2
			continue
		}
		r, size := utf8.DecodeRuneInString(escaped[i:])
		b.WriteRune(r)
		i += size
	}
	return b.String()
}
