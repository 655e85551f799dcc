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
	"strings"

	"github.com/alecthomas/participle/v2"
	plex "github.com/alecthomas/participle/v2/lexer"
)

/*
quotedIdentifierLexer splits the raw interior of a #"..." quoted identifier
into escaped-quote pairs and plain runs, the way ritamzico-pgraph's DSL
splits its own source into a flat rule set before letting the grammar reduce
it - here the "grammar" is trivial (a repetition of two alternatives) but it
keeps the decoding declarative instead of another hand-rolled rune loop.
*/
var quotedIdentifierLexer = plex.MustSimple([]plex.SimpleRule{
	{Name: "EscapedQuote", Pattern: `""`},
	{Name: "Char", Pattern: `[^"]`},
})

/*
quotedIdentifierBody is the participle grammar for the interior of a quoted
identifier: any number of escaped-quote pairs or plain characters.
*/
type quotedIdentifierBody struct {
	Parts []*quotedIdentifierPart `parser:"@@*"`
}

type quotedIdentifierPart struct {
	EscapedQuote bool   `parser:"( @EscapedQuote"`
	Char         string `parser:"| @Char )"`
}

var quotedIdentifierParser = participle.MustBuild[quotedIdentifierBody](
	participle.Lexer(quotedIdentifierLexer),
)

/*
decodeQuotedIdentifierInterior decodes the raw (still-escaped) interior of a
quoted identifier - i.e. the text between the outer #" and " with doubled
quotes still doubled - into its final unescaped form.
*/
func decodeQuotedIdentifierInterior(raw string) (string, error) {
	body, err := quotedIdentifierParser.ParseString("", raw)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, part := range body.Parts {
		if part.EscapedQuote {
			b.WriteByte('"')
		} else {
			b.WriteString(part.Char)
		}
	}
	return b.String(), nil
}

/*
scanQuotedIdentifierBody scans the scanner forward past the interior of a
#"..." quoted identifier (the opening #" has already been consumed) up to
and including its closing quote, then decodes the interior via the
participle grammar above. Returns false if the input ends before a closing
quote is found.
*/
func scanQuotedIdentifierBody(s *scanner) (string, bool) {
	rawStart := s.pos

	for {
		r := s.next()

		if r == RuneEOF {
			return "", false
		}

		if r == '"' {
			if s.peek() == '"' {
				s.next()
				continue
			}
			break
		}
	}

	raw := s.input[rawStart : s.pos-1]

	decoded, err := decodeQuotedIdentifierInterior(raw)
	if err != nil {
		// Fall back to the trivial decode so a grammar edge case never
		// turns into a hard lexer failure for otherwise well-formed input.
		decoded = strings.ReplaceAll(raw, `""`, `"`)
	}

	return decoded, true
}
