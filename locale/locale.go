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
Package locale is the localization collaborator spec.md sec. 6.3/7 delegates
user-visible error message construction to: a message template is selected
by locale tag and parse-error tag, then parametrized by token text and
position. Callers that don't care about localization (tests, internal
diagnostics) keep using Error.Error()'s fixed English message; Message is
only consulted by hosts building an end-user facing string.
*/
package locale

import (
	"fmt"
	"strings"
)

/*
Locale names a supported message-template set.
*/
type Locale string

/*
Default is used whenever a requested Locale has no template set of its own.
*/
const Default Locale = "en-US"

/*
Params are substituted into a template's "{{name}}" placeholders.
*/
type Params map[string]interface{}

// templates maps Locale -> tag -> template string. tag is a parser.Reason's
// String() form, kept as a plain string here so this package never needs to
// import package parser.
var templates = map[Locale]map[string]string{
	Default: {
		"ExpectedTokenKind":                       "expected {{want}}, found {{found}} at {{position}}",
		"ExpectedAnyTokenKind":                    "expected one of {{want}}, found {{found}} at {{position}}",
		"ExpectedClosingTokenKind":                "expected closing {{want}}, found {{found}} at {{position}}",
		"UnterminatedSequence":                    "unterminated {{sequence}} starting near {{position}}",
		"UnusedTokensRemain":                      "unexpected {{found}} after a complete expression at {{position}}",
		"RequiredParameterAfterOptionalParameter": "a required parameter cannot follow an optional one, near {{position}}",
		"InvalidCatchFunction":                    "a catch function must take exactly one parameter, near {{position}}",
		"InvalidPrimitiveTypeError":               "{{found}} is not a primitive type, at {{position}}",
		"ExpectedCsvContinuationDanglingComma":    "dangling comma with no following item, near {{position}}",
		"ExpectedCsvContinuationLetExpression":    "let expression must be followed by 'in', near {{position}}",
	},
}

/*
Message renders the template registered for loc and tag, substituting
params. Falls back to Default's template for the same tag if loc has none,
and to tag itself (so callers always get something) if no template at all
is registered.
*/
func Message(loc Locale, tag string, params Params) string {
	set, ok := templates[loc]
	if !ok {
		set = templates[Default]
	}
	tmpl, ok := set[tag]
	if !ok {
		tmpl = templates[Default][tag]
	}
	if tmpl == "" {
		return tag
	}
	return substitute(tmpl, params)
}

func substitute(tmpl string, params Params) string {
	out := tmpl
	for k, v := range params {
		out = strings.ReplaceAll(out, "{{"+k+"}}", toString(v))
	}
	return out
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
