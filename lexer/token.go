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
Package lexer tokenizes M formula language source into an immutable
Snapshot. The parser core treats the snapshot as an external collaborator
(see devt.de/krotik's own lexer.LexToken for the sibling idiom this package
generalizes): it never mutates tokens, only indexes into them.
*/
package lexer

import "fmt"

/*
Kind identifies the lexical category of a Token.
*/
type Kind int

/*
Token kinds. Grouped the way the teacher groups its KeywordMap/SymbolMap:
value tokens, then keywords, then symbols, with Error/EOF as sentinels.
*/
const (
	KindError Kind = iota
	KindEOF

	// Value tokens

	KindIdentifier
	KindGeneralizedIdentifier
	KindQuotedIdentifier
	KindNumber
	KindTextLiteral

	// Keywords

	KindAnd
	KindAs
	KindCatch
	KindEach
	KindElse
	KindError_
	KindFalse
	KindIf
	KindIn
	KindIs
	KindLet
	KindMeta
	KindNot
	KindNull
	KindOr
	KindOtherwise
	KindSection
	KindShared
	KindThen
	KindTrue
	KindTry
	KindType

	// Hash-keyword literal constructors and environment references

	KindHashBinary
	KindHashDate
	KindHashDateTime
	KindHashDateTimeZone
	KindHashDuration
	KindHashInfinity
	KindHashNan
	KindHashSections
	KindHashShared
	KindHashTable

	// Symbols

	KindComma
	KindSemicolon
	KindColon
	KindEqual
	KindEqualEqual
	KindNotEqual
	KindLessThan
	KindLessThanEqual
	KindGreaterThan
	KindGreaterThanEqual
	KindPlus
	KindMinus
	KindAsterisk
	KindDivide
	KindAmpersand
	KindDotDotDot
	KindDotDot
	KindDot
	KindQuestionMark
	KindAtSign
	KindFatArrow
	KindLeftParen
	KindRightParen
	KindLeftBracket
	KindRightBracket
	KindLeftBrace
	KindRightBrace
)

/*
Position is a zero-based position triple into the source.
*/
type Position struct {
	LineNumber   int // Zero-based line number
	LineCodeUnit int // Zero-based code unit offset within the line
	CodeUnit     int // Zero-based code unit offset within the whole document
}

/*
Token is a single lexical unit together with its source span.
*/
type Token struct {
	Kind          Kind
	Data          string
	PositionStart Position
	PositionEnd   Position
}

/*
String returns a human-readable representation of this token, used in parser
error messages.
*/
func (t Token) String() string {
	if t.Kind == KindEOF {
		return "end of input"
	}
	if t.Kind == KindError {
		return fmt.Sprintf("lexical error: %s", t.Data)
	}
	return fmt.Sprintf("%v %q", t.Kind, t.Data)
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

var kindNames = map[Kind]string{
	KindError:                 "Error",
	KindEOF:                   "EOF",
	KindIdentifier:            "Identifier",
	KindGeneralizedIdentifier: "GeneralizedIdentifier",
	KindQuotedIdentifier:      "QuotedIdentifier",
	KindNumber:                "Number",
	KindTextLiteral:           "TextLiteral",
	KindAnd:                   "and",
	KindAs:                    "as",
	KindCatch:                 "catch",
	KindEach:                  "each",
	KindElse:                  "else",
	KindError_:                "error",
	KindFalse:                 "false",
	KindIf:                    "if",
	KindIn:                    "in",
	KindIs:                    "is",
	KindLet:                   "let",
	KindMeta:                  "meta",
	KindNot:                   "not",
	KindNull:                  "null",
	KindOr:                    "or",
	KindOtherwise:             "otherwise",
	KindSection:               "section",
	KindShared:                "shared",
	KindThen:                  "then",
	KindTrue:                  "true",
	KindTry:                   "try",
	KindType:                  "type",
	KindHashBinary:            "#binary",
	KindHashDate:              "#date",
	KindHashDateTime:          "#datetime",
	KindHashDateTimeZone:      "#datetimezone",
	KindHashDuration:          "#duration",
	KindHashInfinity:          "#infinity",
	KindHashNan:               "#nan",
	KindHashSections:          "#sections",
	KindHashShared:            "#shared",
	KindHashTable:             "#table",
	KindComma:                 ",",
	KindSemicolon:             ";",
	KindColon:                 ":",
	KindEqual:                 "=",
	KindEqualEqual:            "==",
	KindNotEqual:              "<>",
	KindLessThan:              "<",
	KindLessThanEqual:         "<=",
	KindGreaterThan:           ">",
	KindGreaterThanEqual:      ">=",
	KindPlus:                  "+",
	KindMinus:                 "-",
	KindAsterisk:              "*",
	KindDivide:                "/",
	KindAmpersand:             "&",
	KindDotDotDot:             "...",
	KindDotDot:                "..",
	KindDot:                   ".",
	KindQuestionMark:          "?",
	KindAtSign:                "@",
	KindFatArrow:              "=>",
	KindLeftParen:             "(",
	KindRightParen:            ")",
	KindLeftBracket:           "[",
	KindRightBracket:          "]",
	KindLeftBrace:             "{",
	KindRightBrace:            "}",
}

/*
KeywordKinds maps reserved words to their Kind. Built the same way the
teacher builds its KeywordMap.
*/
var KeywordKinds = map[string]Kind{
	"and":       KindAnd,
	"as":        KindAs,
	"catch":     KindCatch,
	"each":      KindEach,
	"else":      KindElse,
	"error":     KindError_,
	"false":     KindFalse,
	"if":        KindIf,
	"in":        KindIn,
	"is":        KindIs,
	"let":       KindLet,
	"meta":      KindMeta,
	"not":       KindNot,
	"null":      KindNull,
	"or":        KindOr,
	"otherwise": KindOtherwise,
	"section":   KindSection,
	"shared":    KindShared,
	"then":      KindThen,
	"true":      KindTrue,
	"try":       KindTry,
	"type":      KindType,
}

/*
HashKeywordKinds maps the '#'-prefixed literal constructor keywords to their
Kind.
*/
var HashKeywordKinds = map[string]Kind{
	"#binary":       KindHashBinary,
	"#date":         KindHashDate,
	"#datetime":     KindHashDateTime,
	"#datetimezone": KindHashDateTimeZone,
	"#duration":     KindHashDuration,
	"#infinity":     KindHashInfinity,
	"#nan":          KindHashNan,
	"#sections":     KindHashSections,
	"#shared":       KindHashShared,
	"#table":        KindHashTable,
}

/*
SymbolKinds maps multi-character symbols to their Kind, longest first so the
scanner can greedily match. Mirrors the teacher's SymbolMap which notes
symbols are "maximal 2 characters long" - ours adds the 3-character "...".
*/
var SymbolKinds = []struct {
	Text string
	Kind Kind
}{
	{"...", KindDotDotDot},
	{"..", KindDotDot},
	{"=>", KindFatArrow},
	{"==", KindEqualEqual},
	{"<>", KindNotEqual},
	{"<=", KindLessThanEqual},
	{">=", KindGreaterThanEqual},
	{",", KindComma},
	{";", KindSemicolon},
	{":", KindColon},
	{"=", KindEqual},
	{"<", KindLessThan},
	{">", KindGreaterThan},
	{"+", KindPlus},
	{"-", KindMinus},
	{"*", KindAsterisk},
	{"/", KindDivide},
	{"&", KindAmpersand},
	{".", KindDot},
	{"?", KindQuestionMark},
	{"@", KindAtSign},
	{"(", KindLeftParen},
	{")", KindRightParen},
	{"[", KindLeftBracket},
	{"]", KindRightBracket},
	{"{", KindLeftBrace},
	{"}", KindRightBrace},
}
