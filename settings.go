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
Package mlang is the root façade spec.md sec. 6 describes: it glues the
lexer, parser, and inspection packages together behind the Settings object a
host application constructs once per parse, the way the teacher's
config.Config is assembled once and then treated as read-only (see
config.go's DefaultConfig idiom, generalized here into a builder because
Settings additionally carries live collaborators - a cancellation token, a
trace manager - that a flat map of strings cannot hold).
*/
package mlang

import (
	"github.com/mlangtools/mparse/cancel"
	"github.com/mlangtools/mparse/locale"
	"github.com/mlangtools/mparse/parser"
	"github.com/mlangtools/mparse/trace"
)

/*
ParserKind selects which reader set a Document is parsed with (spec.md sec.
6.3's "parser: chosen reader set"). Only RecursiveDescent is implemented;
the field exists so a host can plug in an alternative combinator-style
parser without changing any other Settings field.
*/
type ParserKind int

const (
	RecursiveDescent ParserKind = iota
)

/*
EntryPoint selects what a parse attempts at the top level.
*/
type EntryPoint int

const (
	// EntryPointDocument tries an expression, falls back to a section, and
	// returns whichever consumed more tokens (spec.md sec. 4.2.5).
	EntryPointDocument EntryPoint = iota
	// EntryPointExpression parses only a top-level expression, skipping the
	// section fallback - used by hosts (e.g. a formula bar) that already
	// know the fragment is an expression.
	EntryPointExpression
)

/*
Settings bundles every configuration option spec.md sec. 6.3 enumerates.
Once built, a Settings value is never mutated - the same immutability
contract the teacher's DefaultConfig carries, just with live collaborators
instead of plain values.
*/
type Settings struct {
	Locale               locale.Locale
	CancellationToken    cancel.Token
	InitialCorrelationId string
	Parser               ParserKind
	ParserEntryPoint     EntryPoint
	Disambiguation       parser.DisambiguationBehavior
	TraceManager         trace.Manager
}

/*
DefaultSettings returns the Settings a host gets if it asks for nothing in
particular: no cancellation, no tracing, the default locale, Thorough
disambiguation, and the document-then-section entry point.
*/
func DefaultSettings() Settings {
	return Settings{
		Locale:           locale.Default,
		Parser:           RecursiveDescent,
		ParserEntryPoint: EntryPointDocument,
		Disambiguation:   parser.Thorough,
		TraceManager:     trace.NoOpManager(),
	}
}

/*
SettingsBuilder assembles a Settings value field by field before it is
frozen into use, the way the teacher loads configuration options one key at
a time before treating config.DefaultConfig as read-only for the rest of a
run.
*/
type SettingsBuilder struct {
	s Settings
}

/*
NewSettingsBuilder starts from DefaultSettings.
*/
func NewSettingsBuilder() *SettingsBuilder {
	s := DefaultSettings()
	return &SettingsBuilder{s: s}
}

func (b *SettingsBuilder) WithLocale(l locale.Locale) *SettingsBuilder {
	b.s.Locale = l
	return b
}

func (b *SettingsBuilder) WithCancellationToken(t cancel.Token) *SettingsBuilder {
	b.s.CancellationToken = t
	return b
}

func (b *SettingsBuilder) WithInitialCorrelationId(id string) *SettingsBuilder {
	b.s.InitialCorrelationId = id
	return b
}

func (b *SettingsBuilder) WithParserEntryPoint(ep EntryPoint) *SettingsBuilder {
	b.s.ParserEntryPoint = ep
	return b
}

func (b *SettingsBuilder) WithDisambiguation(behavior parser.DisambiguationBehavior) *SettingsBuilder {
	b.s.Disambiguation = behavior
	return b
}

func (b *SettingsBuilder) WithTraceManager(m trace.Manager) *SettingsBuilder {
	b.s.TraceManager = m
	return b
}

/*
Build freezes the accumulated options into a Settings value. The builder
itself is discarded by convention after Build is called - callers that want
a second, slightly different Settings should start a fresh builder rather
than mutate this one further.
*/
func (b *SettingsBuilder) Build() Settings {
	if b.s.CancellationToken == nil {
		b.s.CancellationToken = cancel.NoOp()
	}
	if b.s.TraceManager == nil {
		b.s.TraceManager = trace.NoOpManager()
	}
	if b.s.Locale == "" {
		b.s.Locale = locale.Default
	}
	return b.s
}
