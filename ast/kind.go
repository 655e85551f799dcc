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
Package ast holds the dual store of AST and Context nodes which the parser
core emits into, and the XorNode reference inspection clients use to query
both kinds uniformly (spec.md sec. 3 and 4.1).
*/
package ast

/*
Kind tags a node with the grammar production it represents. Exhaustive
switches over Kind should always carry a "no remaining variants" default
case, per the teacher's own discriminated-union discipline.
*/
type Kind string

/*
Node kinds. Leaves first, then structural productions, then type
expressions - grouped the way the teacher groups its own astNodeMap.
*/
const (
	// Leaves

	KindIdentifier            Kind = "Identifier"
	KindGeneralizedIdentifier Kind = "GeneralizedIdentifier"
	KindNumberLiteral         Kind = "NumberLiteral"
	KindTextLiteral           Kind = "TextLiteral"
	KindLogicalLiteral        Kind = "LogicalLiteral"
	KindNullLiteral           Kind = "NullLiteral"

	// Statements / top level

	KindSection                 Kind = "Section"
	KindSectionMember           Kind = "SectionMember"
	KindRecordLiteral           Kind = "RecordLiteral"
	KindListLiteral             Kind = "ListLiteral"
	KindRangeExpression         Kind = "RangeExpression"
	KindParenthesizedExpr       Kind = "ParenthesizedExpression"
	KindIdentifierPairedExpr    Kind = "IdentifierPairedExpression"
	KindGeneralizedIdPairedExpr Kind = "GeneralizedIdentifierPairedExpression"

	// Control flow

	KindLetExpression     Kind = "LetExpression"
	KindIfExpression      Kind = "IfExpression"
	KindEachExpression    Kind = "EachExpression"
	KindTryExpression     Kind = "TryExpression"
	KindOtherwiseExpr     Kind = "OtherwiseExpression"
	KindErrorRaisingExpr  Kind = "ErrorRaisingExpression"
	KindErrorHandlingExpr Kind = "ErrorHandlingExpression"
	KindCatchExpression   Kind = "CatchExpression"

	// Functions

	KindFunctionExpression Kind = "FunctionExpression"
	KindParameterList      Kind = "ParameterList"
	KindParameter          Kind = "Parameter"
	KindInvokeExpression   Kind = "InvokeExpression"

	// Field/item access

	KindFieldSelector      Kind = "FieldSelector"
	KindItemAccessExpr     Kind = "ItemAccessExpression"
	KindFieldProjection    Kind = "FieldProjection"
	KindFieldSpecification Kind = "FieldSpecification"

	// Operators

	KindUnaryExpression      Kind = "UnaryExpression"
	KindArithmeticExpression Kind = "ArithmeticExpression"
	KindRelationalExpression Kind = "RelationalExpression"
	KindEqualityExpression   Kind = "EqualityExpression"
	KindLogicalExpression    Kind = "LogicalExpression"
	KindIsExpression         Kind = "IsExpression"
	KindAsExpression         Kind = "AsExpression"
	KindMetadataExpression   Kind = "MetadataExpression"
	KindNotImplementedExpr   Kind = "NotImplementedExpression"

	// Types

	KindTypePrimaryType       Kind = "TypePrimaryType"
	KindPrimitiveType         Kind = "PrimitiveType"
	KindNullablePrimitiveType Kind = "NullablePrimitiveType"
	KindRecordType            Kind = "RecordType"
	KindTableType             Kind = "TableType"
	KindFunctionType          Kind = "FunctionType"
	KindListType              Kind = "ListType"
	KindNullableType          Kind = "NullableType"

	// Constructed grouping nodes used by the dual store itself

	KindArrayWrapper Kind = "ArrayWrapper" // csv-separated element sequences (params, list/record items, ...)
)
