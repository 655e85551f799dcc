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
	"github.com/mlangtools/mparse/ast"
)

/*
BindingKind tags what kind of name resolution a ScopeBinder handed back for
an identifier reference.
*/
type BindingKind int

const (
	BindingValue BindingKind = iota
	BindingParameter
	BindingEach
	BindingUndefined
)

/*
Binding is the minimal shape the type inspector needs out of a name
resolution - deliberately narrower than inspect.ScopeItem so this package
doesn't have to import the inspection layer (which itself imports types),
the same kind of one-way dependency the teacher keeps between its
interpreter and parser packages.
*/
type Binding struct {
	Kind             BindingKind
	ValueId          int
	HasValue         bool
	IsOptional       bool
	IsNullable       bool
	HasPrimitiveKind bool
	PrimitiveKind    PrimitiveKind
}

/*
ScopeBinder resolves an identifier reference seen at nodeId to whatever
binding is visible there. Implemented by package inspect's scope resolver;
Inferencer depends only on this narrow interface.
*/
type ScopeBinder interface {
	Lookup(nodeId int, name string) (Binding, bool)
}

/*
Inferencer computes and memoizes types for XorNodes (spec.md sec. 4.5).
Reentry on an id already present in the cache - including one seeded with
Unknown to break a recursive let cycle - returns the cached value without
recomputation.
*/
type Inferencer struct {
	store  *ast.Store
	binder ScopeBinder
	cache  map[int]*Type
}

/*
NewInferencer builds a type inspector over store, resolving identifiers
through binder.
*/
func NewInferencer(store *ast.Store, binder ScopeBinder) *Inferencer {
	return &Inferencer{store: store, binder: binder, cache: make(map[int]*Type)}
}

/*
TryScopeType infers the type of the node at id, memoizing the result. A
Context-tagged node - one whose production hasn't finished - always resolves
to Unknown (spec.md sec. 9's "memoization with partial state").
*/
func (inf *Inferencer) TryScopeType(id int) *Type {
	if t, ok := inf.cache[id]; ok {
		return t
	}

	// Seed with Unknown before recursing so a self-referential (`@name`)
	// binding terminates instead of looping (spec.md sec. 4.5).
	inf.cache[id] = Primitive(Unknown, false)

	x, ok := inf.store.GetXor(id)
	if !ok {
		return inf.cache[id]
	}
	if x.Variant == ast.VariantContext {
		return inf.cache[id]
	}

	t := inf.inferAst(x.AstNode)
	inf.cache[id] = t
	return t
}

func (inf *Inferencer) childIds(parentId int) []int {
	return inf.store.ChildIds(parentId)
}

func (inf *Inferencer) nthChild(parentId, i int) (int, bool) {
	ids := inf.childIds(parentId)
	if i < 0 || i >= len(ids) {
		return 0, false
	}
	return ids[i], true
}

func (inf *Inferencer) typeOfChild(parentId, i int) *Type {
	id, ok := inf.nthChild(parentId, i)
	if !ok {
		return Primitive(Unknown, false)
	}
	return inf.TryScopeType(id)
}

func (inf *Inferencer) inferAst(n *ast.Node) *Type {
	switch n.Kind {
	case ast.KindNumberLiteral:
		return Primitive(Number, false)
	case ast.KindTextLiteral:
		return Primitive(Text, false)
	case ast.KindLogicalLiteral:
		v, _ := n.Attributes["value"].(bool)
		return LogicalLiteralType(v)
	case ast.KindNullLiteral:
		return Primitive(Null, true)
	case ast.KindIdentifier:
		return inf.inferIdentifier(n)

	case ast.KindParenthesizedExpr:
		return inf.typeOfChild(n.Id, 0)

	case ast.KindArithmeticExpression:
		return inf.inferArithmetic(n)
	case ast.KindRelationalExpression:
		return inf.inferRelational(n)
	case ast.KindEqualityExpression:
		return Primitive(EqualityResult(), false)
	case ast.KindLogicalExpression:
		return inf.inferLogical(n)
	case ast.KindUnaryExpression:
		return inf.inferUnary(n)
	case ast.KindIsExpression:
		return Primitive(Logical, false)
	case ast.KindAsExpression:
		return inf.inferAsExpression(n)
	case ast.KindMetadataExpression:
		return inf.typeOfChild(n.Id, 0)

	case ast.KindIfExpression:
		return inf.inferIf(n)
	case ast.KindEachExpression:
		return DefinedFunctionType(
			[]Param{{Name: "_", Type: Primitive(Any, true)}},
			inf.typeOfChild(n.Id, 0),
		)
	case ast.KindLetExpression:
		return inf.inferLet(n)
	case ast.KindErrorRaisingExpr, ast.KindNotImplementedExpr:
		return Primitive(None, false)
	case ast.KindErrorHandlingExpr:
		return inf.inferErrorHandling(n)

	case ast.KindFunctionExpression:
		return inf.inferFunctionExpression(n)
	case ast.KindInvokeExpression:
		return inf.inferInvoke(n)

	case ast.KindRecordLiteral:
		return inf.inferRecordLiteral(n)
	case ast.KindListLiteral:
		return inf.inferListLiteral(n)
	case ast.KindRangeExpression:
		return inf.typeOfChild(n.Id, 0)

	case ast.KindFieldSelector:
		return inf.inferFieldSelector(n)
	case ast.KindItemAccessExpr:
		return inf.inferItemAccess(n)
	case ast.KindFieldProjection:
		return inf.inferFieldProjection(n)

	case ast.KindPrimitiveType:
		return inf.inferPrimitiveType(n)
	case ast.KindNullablePrimitiveType, ast.KindNullableType:
		inner := inf.typeOfChild(n.Id, 0)
		cp := *inner
		cp.IsNullable = true
		return &cp
	case ast.KindTypePrimaryType:
		return inf.inferTypePrimaryType(n)
	case ast.KindRecordType:
		return inf.inferRecordTypeNode(n)
	case ast.KindListType:
		return DefinedListTypeValue(inf.typeOfChild(n.Id, 0))
	case ast.KindFunctionType:
		return inf.inferFunctionTypeNode(n)
	case ast.KindTableType:
		return inf.inferTableTypeNode(n)

	case ast.KindSection:
		return Primitive(NotApplicable, false)
	case ast.KindSectionMember:
		return inf.typeOfChild(n.Id, 1)
	}

	return Primitive(Unknown, false)
}

func (inf *Inferencer) inferIdentifier(n *ast.Node) *Type {
	if n.Token == nil || inf.binder == nil {
		return Primitive(Unknown, false)
	}
	b, ok := inf.binder.Lookup(n.Id, n.Token.Data)
	if !ok {
		return Primitive(Unknown, false)
	}
	switch b.Kind {
	case BindingValue:
		if b.HasValue {
			return inf.TryScopeType(b.ValueId)
		}
		return Primitive(Unknown, false)
	case BindingParameter:
		if b.HasPrimitiveKind {
			return Primitive(b.PrimitiveKind, b.IsNullable)
		}
		return Primitive(Any, true)
	case BindingEach:
		return Primitive(Any, true)
	default:
		return Primitive(Unknown, false)
	}
}

func (inf *Inferencer) inferArithmetic(n *ast.Node) *Type {
	op, _ := n.Attributes["operator"].(string)
	left := inf.typeOfChild(n.Id, 0)
	right := inf.typeOfChild(n.Id, 1)
	lk, lok := BasePrimitiveKind(left)
	rk, rok := BasePrimitiveKind(right)
	if !lok || !rok {
		return Primitive(Unknown, false)
	}
	if result, ok := ArithmeticResult(lk, op, rk); ok {
		return Primitive(result, left.IsNullable || right.IsNullable)
	}
	return Primitive(None, false)
}

func (inf *Inferencer) inferRelational(n *ast.Node) *Type {
	left := inf.typeOfChild(n.Id, 0)
	right := inf.typeOfChild(n.Id, 1)
	lk, lok := BasePrimitiveKind(left)
	rk, rok := BasePrimitiveKind(right)
	if !lok || !rok {
		return Primitive(Unknown, false)
	}
	if result, ok := RelationalResult(lk, rk); ok {
		return Primitive(result, false)
	}
	return Primitive(None, false)
}

func (inf *Inferencer) inferLogical(n *ast.Node) *Type {
	op, _ := n.Attributes["operator"].(string)
	left := inf.typeOfChild(n.Id, 0)
	right := inf.typeOfChild(n.Id, 1)
	lk, lok := BasePrimitiveKind(left)
	rk, rok := BasePrimitiveKind(right)
	if !lok || !rok {
		return Primitive(Unknown, false)
	}
	if result, ok := LogicalResult(lk, op, rk); ok {
		return Primitive(result, left.IsNullable || right.IsNullable)
	}
	return Primitive(None, false)
}

func (inf *Inferencer) inferUnary(n *ast.Node) *Type {
	op, _ := n.Attributes["operator"].(string)
	operand := inf.typeOfChild(n.Id, 0)
	if op == "not" {
		if k, ok := BasePrimitiveKind(operand); ok && k == Logical {
			return Primitive(Logical, operand.IsNullable)
		}
		return Primitive(None, false)
	}
	if k, ok := BasePrimitiveKind(operand); ok && k == Number {
		return Primitive(Number, operand.IsNullable)
	}
	return Primitive(None, false)
}

func (inf *Inferencer) inferAsExpression(n *ast.Node) *Type {
	return inf.typeOfChild(n.Id, 1)
}

func (inf *Inferencer) inferIf(n *ast.Node) *Type {
	thenType := inf.typeOfChild(n.Id, 1)
	elseType := inf.typeOfChild(n.Id, 2)
	return Simplify([]*Type{thenType, elseType})
}

func (inf *Inferencer) inferLet(n *ast.Node) *Type {
	ids := inf.childIds(n.Id)
	if len(ids) == 0 {
		return Primitive(Unknown, false)
	}
	return inf.TryScopeType(ids[len(ids)-1])
}

func (inf *Inferencer) inferErrorHandling(n *ast.Node) *Type {
	ids := inf.childIds(n.Id)
	if len(ids) == 0 {
		return Primitive(Unknown, false)
	}
	protected := inf.tryExpressionBodyType(ids[0])
	if len(ids) == 1 {
		return protected
	}
	fallback := inf.errorFallbackType(ids[1])
	return Simplify([]*Type{protected, fallback})
}

func (inf *Inferencer) tryExpressionBodyType(tryId int) *Type {
	bodyIds := inf.childIds(tryId)
	if len(bodyIds) == 0 {
		return Primitive(Unknown, false)
	}
	return inf.TryScopeType(bodyIds[0])
}

func (inf *Inferencer) errorFallbackType(id int) *Type {
	x, ok := inf.store.GetXor(id)
	if !ok || x.Variant != ast.VariantAst {
		return Primitive(Unknown, false)
	}
	bodyIds := inf.childIds(id)
	switch x.AstNode.Kind {
	case ast.KindOtherwiseExpr:
		if len(bodyIds) > 0 {
			return inf.TryScopeType(bodyIds[0])
		}
	case ast.KindCatchExpression:
		if len(bodyIds) > 1 {
			return inf.TryScopeType(bodyIds[1])
		}
	}
	return Primitive(Unknown, false)
}

func (inf *Inferencer) inferFunctionExpression(n *ast.Node) *Type {
	ids := inf.childIds(n.Id)
	if len(ids) == 0 {
		return Primitive(Unknown, false)
	}
	params := inf.functionParams(ids[0])
	bodyId := ids[len(ids)-1]
	return DefinedFunctionType(params, inf.TryScopeType(bodyId))
}

/*
functionParams reads a ParameterList node's Parameter children (themselves
one level down, through the ArrayWrapper readCsv always interposes) into
types.Param slots, defaulting an absent annotation to nullable any
(spec.md sec. 4.5).
*/
func (inf *Inferencer) functionParams(parameterListId int) []Param {
	wrapperIds := inf.childIds(parameterListId)
	if len(wrapperIds) == 0 {
		return nil
	}
	paramIds := inf.childIds(wrapperIds[0])
	params := make([]Param, 0, len(paramIds))
	for _, pid := range paramIds {
		x, ok := inf.store.GetXor(pid)
		if !ok {
			continue
		}
		name := ""
		isOptional := false
		var paramType *Type = Primitive(Any, true)
		if x.Variant == ast.VariantAst {
			isOptional, _ = x.AstNode.Attributes["optional"].(bool)
			childIds := inf.childIds(pid)
			if len(childIds) > 0 {
				if idNode, ok := inf.store.GetAst(childIds[0]); ok && idNode.Token != nil {
					name = idNode.Token.Data
				}
			}
			if len(childIds) > 1 {
				paramType = inf.TryScopeType(childIds[1])
			}
		}
		params = append(params, Param{Name: name, Type: paramType, IsOptional: isOptional})
	}
	return params
}

func (inf *Inferencer) inferInvoke(n *ast.Node) *Type {
	if keyword, ok := n.Attributes["keyword"].(string); ok {
		return keywordLiteralResult(keyword)
	}
	ids := inf.childIds(n.Id)
	if len(ids) == 0 {
		return Primitive(Unknown, false)
	}
	calleeType := inf.TryScopeType(ids[0])
	if calleeType.Tag == TagDefinedFunction {
		return calleeType.ReturnType
	}
	return Primitive(Any, true)
}

func keywordLiteralResult(keyword string) *Type {
	switch keyword {
	case "#date":
		return Primitive(Date, false)
	case "#datetime":
		return Primitive(DateTime, false)
	case "#datetimezone":
		return Primitive(DateTimeZone, false)
	case "#duration":
		return Primitive(Duration, false)
	case "#binary":
		return Primitive(Binary, false)
	case "#table":
		return Primitive(Table, false)
	default:
		return Primitive(Unknown, false)
	}
}

func (inf *Inferencer) inferRecordLiteral(n *ast.Node) *Type {
	ids := inf.childIds(n.Id)
	if len(ids) == 0 {
		return DefinedRecordType(nil, false)
	}
	entryIds := inf.childIds(ids[0])
	fields := make([]Field, 0, len(entryIds))
	for _, eid := range entryIds {
		if name, valueId, ok := inf.identifierPairedExpression(eid); ok {
			fields = append(fields, Field{Name: name, Type: inf.TryScopeType(valueId)})
		}
	}
	return DefinedRecordType(fields, false)
}

func (inf *Inferencer) identifierPairedExpression(id int) (name string, valueId int, ok bool) {
	node, isAst := inf.store.GetAst(id)
	if !isAst {
		return "", 0, false
	}
	childIds := inf.childIds(node.Id)
	if len(childIds) < 2 {
		return "", 0, false
	}
	keyNode, ok := inf.store.GetAst(childIds[0])
	if !ok || keyNode.Token == nil {
		return "", 0, false
	}
	return keyNode.Token.Data, childIds[1], true
}

func (inf *Inferencer) inferListLiteral(n *ast.Node) *Type {
	ids := inf.childIds(n.Id)
	if len(ids) == 0 {
		return DefinedListType()
	}
	itemIds := inf.childIds(ids[0])
	items := make([]*Type, len(itemIds))
	for i, id := range itemIds {
		items[i] = inf.TryScopeType(id)
	}
	return DefinedListType(items...)
}

func (inf *Inferencer) inferFieldSelector(n *ast.Node) *Type {
	ids := inf.childIds(n.Id)
	if len(ids) < 2 {
		return Primitive(Unknown, false)
	}
	targetType := inf.TryScopeType(ids[0])
	fieldNode, ok := inf.store.GetAst(ids[1])
	if !ok || fieldNode.Token == nil {
		return Primitive(Unknown, false)
	}
	return inf.lookupField(targetType, fieldNode.Token.Data)
}

func (inf *Inferencer) lookupField(targetType *Type, name string) *Type {
	if targetType == nil {
		return Primitive(Unknown, false)
	}
	if targetType.Tag != TagDefinedRecord && targetType.Tag != TagDefinedTable {
		return Primitive(Any, true)
	}
	for _, f := range targetType.Fields {
		if f.Name == name {
			return f.Type
		}
	}
	if targetType.IsOpen {
		return Primitive(Any, true)
	}
	return Primitive(None, false)
}

func (inf *Inferencer) inferItemAccess(n *ast.Node) *Type {
	ids := inf.childIds(n.Id)
	if len(ids) == 0 {
		return Primitive(Unknown, false)
	}
	targetType := inf.TryScopeType(ids[0])
	if targetType.Tag == TagDefinedList {
		if len(targetType.Items) > 0 {
			return Simplify(targetType.Items)
		}
		return Primitive(Any, true)
	}
	return Primitive(Any, true)
}

func (inf *Inferencer) inferFieldProjection(n *ast.Node) *Type {
	ids := inf.childIds(n.Id)
	if len(ids) < 2 {
		return Primitive(Unknown, false)
	}
	targetType := inf.TryScopeType(ids[0])
	specIds := inf.childIds(ids[1])
	fields := make([]Field, 0, len(specIds))
	for _, sid := range specIds {
		specChildIds := inf.childIds(sid)
		if len(specChildIds) == 0 {
			continue
		}
		nameNode, ok := inf.store.GetAst(specChildIds[0])
		if !ok || nameNode.Token == nil {
			continue
		}
		fields = append(fields, Field{Name: nameNode.Token.Data, Type: inf.lookupField(targetType, nameNode.Token.Data)})
	}
	return DefinedRecordType(fields, false)
}

func (inf *Inferencer) inferPrimitiveType(n *ast.Node) *Type {
	name, _ := n.Attributes["name"].(string)
	kind, ok := PrimitiveKindByName[name]
	if !ok {
		kind = Unknown
	}
	return Primitive(kind, false)
}

func (inf *Inferencer) inferTypePrimaryType(n *ast.Node) *Type {
	ids := inf.childIds(n.Id)
	if len(ids) == 0 {
		return Primitive(Unknown, false)
	}
	inner := inf.TryScopeType(ids[0])
	if inner.Tag == TagPrimitive {
		return PrimaryPrimitiveType(inner.Kind, inner.IsNullable)
	}
	return inner
}

func (inf *Inferencer) inferRecordTypeNode(n *ast.Node) *Type {
	open, _ := n.Attributes["open"].(bool)
	ids := inf.childIds(n.Id)
	if len(ids) == 0 {
		return RecordTypeValue(nil, open)
	}
	entryIds := inf.childIds(ids[0])
	fields := make([]Field, 0, len(entryIds))
	for _, eid := range entryIds {
		if name, valueId, ok := inf.identifierPairedExpression(eid); ok {
			fields = append(fields, Field{Name: name, Type: inf.TryScopeType(valueId)})
		}
	}
	return RecordTypeValue(fields, open)
}

func (inf *Inferencer) inferTableTypeNode(n *ast.Node) *Type {
	ids := inf.childIds(n.Id)
	if len(ids) == 0 {
		return TableTypeValue(nil, false)
	}
	recordType := inf.TryScopeType(ids[0])
	return TableTypeValue(recordType.Fields, recordType.IsOpen)
}

func (inf *Inferencer) inferFunctionTypeNode(n *ast.Node) *Type {
	ids := inf.childIds(n.Id)
	if len(ids) < 2 {
		return FunctionTypeValue(nil, Primitive(Unknown, false))
	}
	paramIds := inf.childIds(ids[0])
	params := make([]Param, 0, len(paramIds))
	for _, pid := range paramIds {
		node, ok := inf.store.GetAst(pid)
		if !ok {
			continue
		}
		childIds := inf.childIds(node.Id)
		name := ""
		var paramType *Type = Primitive(Any, true)
		if len(childIds) > 0 {
			if idNode, ok := inf.store.GetAst(childIds[0]); ok && idNode.Token != nil {
				name = idNode.Token.Data
			}
		}
		if len(childIds) > 1 {
			paramType = inf.TryScopeType(childIds[1])
		}
		params = append(params, Param{Name: name, Type: paramType})
	}
	ret := inf.TryScopeType(ids[1])
	return FunctionTypeValue(params, ret)
}
