/*
 * mparse
 *
 * Copyright 2024 The mparse Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mlangtools/mparse/ident"
)

/*
NameOf is the total pretty-printer of spec.md sec. 4.5: a deterministic
canonical textual form used in diagnostics and tests. It is injective on
non-AnyUnion types up to field ordering (spec.md sec. 8).
*/
func NameOf(t *Type) string {
	if t == nil {
		return "unknown"
	}

	nullablePrefix := ""
	if t.IsNullable {
		nullablePrefix = "nullable "
	}

	switch t.Tag {
	case TagPrimitive:
		return nullablePrefix + t.Kind.String()
	case TagNumberLiteral:
		return strconv.FormatFloat(t.NumberLiteral, 'g', -1, 64)
	case TagTextLiteral:
		return strconv.Quote(t.TextLiteral)
	case TagLogicalLiteral:
		if t.LogicalLiteral {
			return "true"
		}
		return "false"
	case TagAnyUnion:
		parts := make([]string, len(t.Unioned))
		for i, m := range t.Unioned {
			parts[i] = NameOf(m)
		}
		return strings.Join(parts, " | ")
	case TagDefinedList, TagListType, TagDefinedListType:
		return nameOfList(t)
	case TagDefinedRecord, TagRecordType:
		return nullablePrefix + nameOfFields(t.Fields, t.IsOpen, "[", "]")
	case TagDefinedTable, TagTableType:
		return nullablePrefix + "table " + nameOfFields(t.Fields, t.IsOpen, "[", "]")
	case TagTableTypePrimaryExpression:
		return "type " + NameOf(t.ReturnType)
	case TagDefinedFunction:
		return nullablePrefix + "(" + nameOfParams(t.Params) + ") => " + NameOf(t.ReturnType)
	case TagFunctionType:
		return "type function (" + nameOfParams(t.Params) + ") " + NameOf(t.ReturnType)
	case TagPrimaryPrimitiveType:
		return "type " + NameOf(t.ReturnType)
	default:
		return "unknown"
	}
}

func nameOfList(t *Type) string {
	if t.Tag == TagDefinedList {
		parts := make([]string, len(t.Items))
		for i, item := range t.Items {
			parts[i] = NameOf(item)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	item := "any"
	if t.ItemType != nil {
		item = NameOf(t.ItemType)
	}
	prefix := ""
	if t.Tag == TagDefinedListType || t.Tag == TagListType {
		prefix = "type "
	}
	return prefix + "{" + item + "}"
}

func nameOfFields(fields []Field, isOpen bool, open, close string) string {
	parts := make([]string, 0, len(fields)+1)
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", quoteFieldName(f.Name), NameOf(f.Type)))
	}
	if isOpen {
		parts = append(parts, "...")
	}
	return open + strings.Join(parts, ", ") + close
}

func nameOfParams(params []Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		opt := ""
		if p.IsOptional {
			opt = "optional "
		}
		parts[i] = fmt.Sprintf("%s%s as %s", opt, p.Name, NameOf(p.Type))
	}
	return strings.Join(parts, ", ")
}

/*
quoteFieldName re-quotes a generalized identifier as #"…" on output when it
contains whitespace (spec.md sec. 4.5's "generalized identifiers containing
whitespace are re-quoted as #"…" on output").
*/
func quoteFieldName(name string) string {
	if strings.ContainsAny(name, " \t") {
		return ident.QuoteIdentifier(name)
	}
	return name
}
