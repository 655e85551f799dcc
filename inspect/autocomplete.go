/*
 * mparse
 *
 * Copyright 2024 The mparse Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package inspect

import (
	"sort"

	"github.com/mlangtools/mparse/ast"
	"github.com/mlangtools/mparse/types"
)

/*
SuggestionCategory tags where an autocomplete suggestion came from, so a
client can group or order them.
*/
type SuggestionCategory int

const (
	CategoryScope SuggestionCategory = iota
	CategoryKeyword
	CategoryPrimitiveType
	CategoryConstant
)

/*
Suggestion is one autocomplete candidate (spec.md sec. 4.7).
*/
type Suggestion struct {
	Text     string
	Category SuggestionCategory
}

/*
languageConstants are offered everywhere an expression is expected
(spec.md sec. 4.7).
*/
var languageConstants = []string{"true", "false", "null"}

/*
generalKeywords are offered in ordinary expression position, gated out of
type-expression positions where they don't apply.
*/
var generalKeywords = []string{
	"let", "if", "then", "else", "each", "try", "otherwise", "error",
	"type", "not", "meta", "as", "is", "section", "shared",
}

var typeExpressionKeyword = "nullable"

/*
inTypePosition reports whether the nearest structurally significant
ancestor of active's leaf is a type-expression production, gating primitive
type names and the "nullable" keyword in or out (spec.md sec. 4.7).
*/
func inTypePosition(active *ActiveNode) bool {
	for _, x := range active.Ancestry {
		switch x.Kind() {
		case ast.KindTypePrimaryType, ast.KindNullablePrimitiveType, ast.KindPrimitiveType,
			ast.KindRecordType, ast.KindTableType, ast.KindFunctionType, ast.KindListType:
			return true
		case ast.KindLetExpression, ast.KindIfExpression, ast.KindEachExpression,
			ast.KindFunctionExpression, ast.KindRecordLiteral, ast.KindListLiteral,
			ast.KindInvokeExpression, ast.KindArithmeticExpression, ast.KindSection:
			return false
		}
	}
	return false
}

/*
inOpenLet reports whether an unfinished (Context-variant) LetExpression is
among active's ancestors, the condition under which "in" belongs in the
keyword table (spec.md sec. 4.7's ancestry-gated keyword example).
*/
func inOpenLet(active *ActiveNode) bool {
	for _, x := range active.Ancestry {
		if x.Kind() == ast.KindLetExpression && x.Variant == ast.VariantContext {
			return true
		}
	}
	return false
}

/*
Autocomplete assembles the suggestion list visible at active: names bound in
scope, keywords gated by the ancestry, primitive type names inside
type-expression positions, and the language constants (spec.md sec. 4.7).
*/
func Autocomplete(resolver *Resolver, active *ActiveNode) []Suggestion {
	var out []Suggestion

	scope := resolver.TryNodeScope(active.Leaf.Id())
	names := make([]string, 0, len(scope))
	for name := range scope {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		out = append(out, Suggestion{Text: name, Category: CategoryScope})
	}

	if inTypePosition(active) {
		typeNames := make([]string, 0, len(types.PrimitiveKindByName))
		for name := range types.PrimitiveKindByName {
			typeNames = append(typeNames, name)
		}
		sort.Strings(typeNames)
		for _, name := range typeNames {
			out = append(out, Suggestion{Text: name, Category: CategoryPrimitiveType})
		}
		out = append(out, Suggestion{Text: typeExpressionKeyword, Category: CategoryKeyword})
		return out
	}

	for _, kw := range generalKeywords {
		out = append(out, Suggestion{Text: kw, Category: CategoryKeyword})
	}
	if inOpenLet(active) {
		out = append(out, Suggestion{Text: "in", Category: CategoryKeyword})
	}
	for _, c := range languageConstants {
		out = append(out, Suggestion{Text: c, Category: CategoryConstant})
	}

	return out
}
