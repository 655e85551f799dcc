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
Package types implements the static type inspector of spec.md sec. 4.5: a
flow-insensitive inferencer that assigns every XorNode a Type, memoized per
node id, with cycles broken by seeding a recursive binding's cache entry
with Unknown before recursing into it.

Types are modeled as a single tagged struct in the same discriminated-union
style as ast.Node/ast.Context - a closed Tag enum plus the handful of fields
each variant actually populates - rather than an interface hierarchy, so a
dispatch switch over Tag can carry a compiler-checked "no remaining
variants" default the way ast.Kind switches do.
*/
package types

import "sort"

/*
PrimitiveKind enumerates the M primitive type names (spec.md sec. 4.5).
*/
type PrimitiveKind int

const (
	Any PrimitiveKind = iota
	AnyNonNull
	Binary
	Date
	DateTime
	DateTimeZone
	Duration
	Function
	List
	Logical
	None
	Null
	Number
	Record
	Table
	Text
	TypeKind
	Action
	Time
	NotApplicable
	Unknown
)

var primitiveNames = map[PrimitiveKind]string{
	Any: "any", AnyNonNull: "anynonnull", Binary: "binary", Date: "date",
	DateTime: "datetime", DateTimeZone: "datetimezone", Duration: "duration",
	Function: "function", List: "list", Logical: "logical", None: "none",
	Null: "null", Number: "number", Record: "record", Table: "table",
	Text: "text", TypeKind: "type", Action: "action", Time: "time",
	NotApplicable: "notApplicable", Unknown: "unknown",
}

func (k PrimitiveKind) String() string {
	if s, ok := primitiveNames[k]; ok {
		return s
	}
	return "unknown"
}

/*
PrimitiveKindByName maps the M source spelling of a primitive type keyword
back to its PrimitiveKind, the inverse of String - used by the type
inspector's PrimitiveType reader and by package inspect's scope resolver and
autocomplete. The parser's primitiveTypeNames gate is a separate map.
*/
var PrimitiveKindByName = func() map[string]PrimitiveKind {
	m := make(map[string]PrimitiveKind, len(primitiveNames))
	for k, v := range primitiveNames {
		m[v] = k
	}
	return m
}()

/*
Tag discriminates the Type sum's variants (spec.md sec. 4.5).
*/
type Tag int

const (
	TagPrimitive Tag = iota
	TagNumberLiteral
	TagTextLiteral
	TagLogicalLiteral
	TagAnyUnion
	TagDefinedList
	TagDefinedRecord
	TagDefinedTable
	TagDefinedFunction
	TagListType
	TagRecordType
	TagTableType
	TagFunctionType
	TagPrimaryPrimitiveType
	TagDefinedListType
	TagTableTypePrimaryExpression
)

/*
Field is one named slot of a DefinedRecord or DefinedTable.
*/
type Field struct {
	Name string
	Type *Type
}

/*
Param is one parameter slot of a DefinedFunction or FunctionType.
*/
type Param struct {
	Name       string
	Type       *Type
	IsOptional bool
}

/*
Type is the inferred-type sum (spec.md sec. 4.5). Only the fields relevant
to Tag are populated; NameOf and Simplify dispatch on Tag alone.
*/
type Type struct {
	Tag        Tag
	Kind       PrimitiveKind // TagPrimitive, and the base kind of literal refinements
	IsNullable bool

	NumberLiteral  float64
	TextLiteral    string
	LogicalLiteral bool

	Unioned []*Type // TagAnyUnion, insertion order preserved

	ItemType *Type   // TagDefinedListType, TagListType item type
	Items    []*Type // TagDefinedList element types, in order

	Fields []Field // TagDefinedRecord, TagDefinedTable (table fields are ordered)
	IsOpen bool     // TagDefinedRecord, TagDefinedTable, TagRecordType

	Params     []Param // TagDefinedFunction, TagFunctionType
	ReturnType *Type   // TagDefinedFunction, TagFunctionType, TagTableTypePrimaryExpression
}

/*
Primitive constructs a primitive type, optionally nullable.
*/
func Primitive(kind PrimitiveKind, isNullable bool) *Type {
	return &Type{Tag: TagPrimitive, Kind: kind, IsNullable: isNullable}
}

/*
NumberLiteralType constructs a literal-refined number type.
*/
func NumberLiteralType(v float64) *Type {
	return &Type{Tag: TagNumberLiteral, Kind: Number, NumberLiteral: v}
}

/*
TextLiteralType constructs a literal-refined text type.
*/
func TextLiteralType(v string) *Type {
	return &Type{Tag: TagTextLiteral, Kind: Text, TextLiteral: v}
}

/*
LogicalLiteralType constructs a literal-refined true/false type.
*/
func LogicalLiteralType(v bool) *Type {
	return &Type{Tag: TagLogicalLiteral, Kind: Logical, LogicalLiteral: v}
}

/*
AnyUnionType constructs an AnyUnion variant directly, without running
Simplify - callers that already know ts is a simplified, deduped sequence
(e.g. Simplify itself) use this; everyone else should call Simplify.
*/
func AnyUnionType(ts ...*Type) *Type {
	return &Type{Tag: TagAnyUnion, Kind: Any, Unioned: ts}
}

/*
DefinedListType constructs a DefinedList of element types in source order.
*/
func DefinedListType(items ...*Type) *Type {
	return &Type{Tag: TagDefinedList, Kind: List, Items: items}
}

/*
DefinedRecordType constructs a DefinedRecord.
*/
func DefinedRecordType(fields []Field, isOpen bool) *Type {
	return &Type{Tag: TagDefinedRecord, Kind: Record, Fields: fields, IsOpen: isOpen}
}

/*
DefinedTableType constructs a DefinedTable with ordered fields.
*/
func DefinedTableType(fields []Field, isOpen bool) *Type {
	return &Type{Tag: TagDefinedTable, Kind: Table, Fields: fields, IsOpen: isOpen}
}

/*
DefinedFunctionType constructs a DefinedFunction.
*/
func DefinedFunctionType(params []Param, ret *Type) *Type {
	return &Type{Tag: TagDefinedFunction, Kind: Function, Params: params, ReturnType: ret}
}

/*
ListTypeOf constructs the ListType type-value (`type {itemType}`).
*/
func ListTypeOf(item *Type) *Type {
	return &Type{Tag: TagListType, Kind: TypeKind, ItemType: item}
}

/*
RecordTypeValue constructs the RecordType type-value.
*/
func RecordTypeValue(fields []Field, isOpen bool) *Type {
	return &Type{Tag: TagRecordType, Kind: TypeKind, Fields: fields, IsOpen: isOpen}
}

/*
TableTypeValue constructs the TableType type-value.
*/
func TableTypeValue(fields []Field, isOpen bool) *Type {
	return &Type{Tag: TagTableType, Kind: TypeKind, Fields: fields, IsOpen: isOpen}
}

/*
FunctionTypeValue constructs the FunctionType type-value (`type function (...) R`).
*/
func FunctionTypeValue(params []Param, ret *Type) *Type {
	return &Type{Tag: TagFunctionType, Kind: TypeKind, Params: params, ReturnType: ret}
}

/*
PrimaryPrimitiveType constructs the type-value wrapping a bare primitive
name, e.g. `type text`.
*/
func PrimaryPrimitiveType(kind PrimitiveKind, isNullable bool) *Type {
	return &Type{Tag: TagPrimaryPrimitiveType, Kind: TypeKind, ReturnType: Primitive(kind, isNullable)}
}

/*
DefinedListTypeValue constructs the type-value for `type {itemType}` when the
item itself needs to be distinguished from a ListType used as a value
(spec.md lists both DefinedListType and ListType as distinct extended
variants; DefinedListTypeValue is the form produced by a TypePrimaryType
reading an explicit list-type primary).
*/
func DefinedListTypeValue(item *Type) *Type {
	return &Type{Tag: TagDefinedListType, Kind: TypeKind, ItemType: item}
}

/*
TableTypePrimaryExpressionValue wraps a RecordType describing a table's
row shape as the type-value produced by `type table [...]`.
*/
func TableTypePrimaryExpressionValue(fields []Field, isOpen bool) *Type {
	return &Type{Tag: TagTableTypePrimaryExpression, Kind: TypeKind, ReturnType: TableTypeValue(fields, isOpen)}
}

/*
IsAny reports whether t is the unconstrained `any` primitive - nullable or
not, since `any` already admits null.
*/
func IsAny(t *Type) bool {
	return t != nil && t.Tag == TagPrimitive && t.Kind == Any
}

/*
BasePrimitiveKind returns the primitive kind a type reduces to for
comparison purposes: a literal refinement reduces to its base kind, an
AnyUnion and everything else keeps Unknown as a sentinel "not a single
primitive".
*/
func BasePrimitiveKind(t *Type) (PrimitiveKind, bool) {
	if t == nil {
		return Unknown, false
	}
	switch t.Tag {
	case TagPrimitive, TagNumberLiteral, TagTextLiteral, TagLogicalLiteral:
		return t.Kind, true
	}
	return Unknown, false
}

/*
sortedFieldNames returns the names of fields in sorted order. Nothing in the
package calls it; NameOf prints fields in their stored order, which is
already deterministic (spec.md sec. 8).
*/
func sortedFieldNames(fields []Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	sort.Strings(names)
	return names
}
