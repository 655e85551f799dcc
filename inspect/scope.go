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
	"github.com/mlangtools/mparse/ast"
	"github.com/mlangtools/mparse/ident"
	"github.com/mlangtools/mparse/types"
)

/*
ScopeItemKind discriminates the ScopeItem variants of spec.md sec. 4.4.
*/
type ScopeItemKind int

const (
	KindLetVariable ScopeItemKind = iota
	KindSectionMember
	KindRecordField
	KindParameter
	KindEach
	KindUndefined
)

/*
ScopeItem is a single named binding visible at some node (spec.md sec. 4.4).
Only the fields relevant to Kind are populated.
*/
type ScopeItem struct {
	Kind ScopeItemKind
	Key  string

	// LetVariable, SectionMember, RecordField
	ValueId  int
	HasValue bool

	// LetVariable, SectionMember: true once this binding's own key has been
	// re-pinned inside its own defining value expression - ordinary
	// (non-"@") references to it there don't resolve (spec.md sec. 4.4's
	// recursion rule).
	RequiresRecursiveAccess bool

	// Parameter
	IsOptional       bool
	IsNullable       bool
	HasPrimitiveKind bool
	PrimitiveKind    types.PrimitiveKind

	// Each
	EachExpressionId int

	// Undefined
	Xor ast.XorNode
}

/*
Scope is the mapping identifierLiteral -> ScopeItem visible at some node.
*/
type Scope map[string]ScopeItem

/*
clone returns a shallow copy of s so callers may safely extend it without
mutating a cached parent scope.
*/
func (s Scope) clone() Scope {
	out := make(Scope, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

/*
merge overlays extra onto base, extra entries winning on key collision -
the shadowing rule of spec.md sec. 4.4 ("inner bindings overwrite outer").
*/
func merge(base, extra Scope) Scope {
	if len(extra) == 0 {
		return base
	}
	out := base.clone()
	for k, v := range extra {
		out[k] = v
	}
	return out
}

/*
Resolver builds and memoizes the lexical scope visible at any node of a
single Store (spec.md sec. 3.7, 4.4). A Resolver also implements
types.ScopeBinder so package types can resolve identifier references without
importing this package.
*/
type Resolver struct {
	store *ast.Store
	cache map[int]Scope
}

/*
NewResolver creates a scope resolver over store. A Resolver is only valid
for the Store it was built against.
*/
func NewResolver(store *ast.Store) *Resolver {
	return &Resolver{store: store, cache: make(map[int]Scope)}
}

/*
TryNodeScope returns the scope visible at nodeId, computing and memoizing it
on first request. Re-invoking on the same (store, id) returns an equal
mapping (spec.md sec. 8).
*/
func (r *Resolver) TryNodeScope(nodeId int) Scope {
	if s, ok := r.cache[nodeId]; ok {
		return s
	}

	x, ok := r.store.GetXor(nodeId)
	if !ok {
		return Scope{}
	}

	parentId, hasParent := x.ParentId()
	if !hasParent {
		r.cache[nodeId] = Scope{}
		return r.cache[nodeId]
	}

	parentScope := r.TryNodeScope(parentId)

	siblings := r.store.ChildIds(parentId)
	ordinal := -1
	for i, id := range siblings {
		if id == nodeId {
			ordinal = i
			break
		}
	}

	contribution := r.contributionFor(parentId, ordinal, len(siblings))
	scope := merge(parentScope, contribution)
	r.cache[nodeId] = scope
	return scope
}

/*
contributionFor returns the extra bindings parentId's kind makes visible to
its child at position ordinal (0-based index into parentId's child list;
childCount is len(that list)). Returns nil when parentId contributes
nothing extra at that position.
*/
func (r *Resolver) contributionFor(parentId, ordinal, childCount int) Scope {
	if ordinal < 0 {
		return nil
	}

	px, ok := r.store.GetXor(parentId)
	if !ok {
		return nil
	}

	switch px.Kind() {
	case ast.KindLetExpression:
		// child 0 is the ArrayWrapper of bindings, child 1 is the body -
		// both see every binding.
		return r.bindingsOf(parentId, identifierPairKey)

	case ast.KindIdentifierPairedExpr:
		// Only meaningful for a let/section binding's value child (ordinal
		// 1); re-pin this pair's own key to require "@" self-access there.
		if ordinal != 1 {
			return nil
		}
		name, ok := identifierPairKey(r.store, parentId)
		if !ok {
			return nil
		}
		grandparentId, _ := px.ParentId()
		if !r.isBindingListEntry(grandparentId) {
			return nil
		}
		valueX, hasValue := r.store.ChildAtIndex(parentId, 1)
		item := ScopeItem{Kind: KindLetVariable, Key: name, RequiresRecursiveAccess: true}
		if hasValue {
			item.ValueId = valueX.Id()
			item.HasValue = true
		}
		return Scope{name: item}

	case ast.KindRecordLiteral:
		return r.bindingsOf(parentId, identifierPairKey).asRecordFields()

	case ast.KindSection:
		if ordinal == 0 {
			// the optional section-name identifier child - no bindings yet.
			return nil
		}
		return r.sectionMembersOf(parentId)

	case ast.KindSectionMember:
		if ordinal != 1 {
			return nil
		}
		name, valueId, hasValue, ok := sectionMemberParts(r.store, parentId)
		if !ok {
			return nil
		}
		item := ScopeItem{Kind: KindSectionMember, Key: name, RequiresRecursiveAccess: true}
		if hasValue {
			item.ValueId = valueId
			item.HasValue = true
		}
		return Scope{name: item}

	case ast.KindFunctionExpression:
		// the body is always the last child, whether or not a return-type
		// annotation occupies the middle slot.
		if ordinal == childCount-1 {
			return r.paramsOf(parentId)
		}
		return nil

	case ast.KindEachExpression:
		return Scope{"_": ScopeItem{Kind: KindEach, Key: "_", EachExpressionId: parentId}}
	}

	return nil
}

func (r *Resolver) isBindingListEntry(wrapperId int) bool {
	x, ok := r.store.GetXor(wrapperId)
	if !ok || x.Kind() != ast.KindArrayWrapper {
		return false
	}
	parentId, hasParent := x.ParentId()
	if !hasParent {
		return false
	}
	px, ok := r.store.GetXor(parentId)
	return ok && px.Kind() == ast.KindLetExpression
}

func identifierPairKey(store *ast.Store, pairId int) (string, bool) {
	keyX, ok := store.ChildAtIndex(pairId, 0)
	if !ok || keyX.Variant != ast.VariantAst || keyX.AstNode.Token == nil {
		return "", false
	}
	return ident.NormalizeIdentifier(keyX.AstNode.Token.Data), true
}

/*
bindingsOf collects every (key -> value-id) pair nested in parentId's csv
wrapper (child 0) as LetVariable-shaped items. Shared by LetExpression and
RecordLiteral, whose csv-of-IdentifierPairedExpression shape is identical;
callers retag the Kind where it differs (RecordLiteral via asRecordFields).
*/
func (r *Resolver) bindingsOf(parentId int, keyOf func(*ast.Store, int) (string, bool)) Scope {
	scope := Scope{}
	children := r.store.ChildIds(parentId)
	if len(children) == 0 {
		return scope
	}
	wrapperId := children[0]
	for _, pairId := range r.store.ChildIds(wrapperId) {
		name, ok := keyOf(r.store, pairId)
		if !ok {
			continue
		}
		item := ScopeItem{Kind: KindLetVariable, Key: name}
		if valX, ok := r.store.ChildAtIndex(pairId, 1); ok {
			item.ValueId = valX.Id()
			item.HasValue = true
		}
		scope[name] = item
	}
	return scope
}

func (s Scope) asRecordFields() Scope {
	out := make(Scope, len(s))
	for k, v := range s {
		v.Kind = KindRecordField
		out[k] = v
	}
	return out
}

func sectionMemberParts(store *ast.Store, memberId int) (name string, valueId int, hasValue bool, ok bool) {
	keyX, has := store.ChildAtIndex(memberId, 0)
	if !has || keyX.Variant != ast.VariantAst || keyX.AstNode.Token == nil {
		return "", 0, false, false
	}
	name = ident.NormalizeIdentifier(keyX.AstNode.Token.Data)
	if valX, has := store.ChildAtIndex(memberId, 1); has {
		return name, valX.Id(), true, true
	}
	return name, 0, false, true
}

func (r *Resolver) sectionMembersOf(sectionId int) Scope {
	scope := Scope{}
	for _, childId := range r.store.ChildIds(sectionId) {
		x, ok := r.store.GetXor(childId)
		if !ok || x.Kind() != ast.KindSectionMember {
			continue
		}
		name, valueId, hasValue, ok := sectionMemberParts(r.store, childId)
		if !ok {
			continue
		}
		item := ScopeItem{Kind: KindSectionMember, Key: name}
		if hasValue {
			item.ValueId = valueId
			item.HasValue = true
		}
		scope[name] = item
	}
	return scope
}

func (r *Resolver) paramsOf(functionId int) Scope {
	scope := Scope{}
	children := r.store.ChildIds(functionId)
	if len(children) == 0 {
		return scope
	}
	paramListId := children[0]
	plChildren := r.store.ChildIds(paramListId)
	if len(plChildren) == 0 {
		return scope
	}
	wrapperId := plChildren[0]
	for _, paramId := range r.store.ChildIds(wrapperId) {
		nameX, ok := r.store.ChildAtIndex(paramId, 0)
		if !ok || nameX.Variant != ast.VariantAst || nameX.AstNode.Token == nil {
			continue
		}
		name := ident.NormalizeIdentifier(nameX.AstNode.Token.Data)

		item := ScopeItem{Kind: KindParameter, Key: name}
		if n, ok := r.store.GetAst(paramId); ok {
			if opt, ok := n.Attributes["optional"].(bool); ok {
				item.IsOptional = opt
			}
		}
		if kind, isNullable, has := paramPrimitiveType(r.store, paramId); has {
			item.HasPrimitiveKind = true
			item.PrimitiveKind = kind
			item.IsNullable = isNullable
		}
		scope[name] = item
	}
	return scope
}

/*
paramPrimitiveType reads a parameter's "as <nullable> <primitiveType>"
annotation, if present.
*/
func paramPrimitiveType(store *ast.Store, paramId int) (kind types.PrimitiveKind, isNullable bool, has bool) {
	typeX, ok := store.ChildAtIndex(paramId, 1)
	if !ok {
		return 0, false, false
	}

	nullable := false
	primId := typeX.Id()
	if typeX.Kind() == ast.KindNullablePrimitiveType {
		nullable = true
		inner, ok := store.ChildAtIndex(typeX.Id(), 0)
		if !ok {
			return 0, false, false
		}
		primId = inner.Id()
	}

	n, ok := store.GetAst(primId)
	if !ok {
		return 0, false, false
	}
	name, ok := n.Attributes["name"].(string)
	if !ok {
		return 0, false, false
	}
	k, ok := types.PrimitiveKindByName[name]
	if !ok {
		return 0, false, false
	}
	return k, nullable, true
}

/*
isRecursiveReference reports whether the identifier at nodeId was written as
an "@name" recursive reference (spec.md sec. 4.4's recursion rule; set by
the parser's readRecursiveIdentifier).
*/
func isRecursiveReference(store *ast.Store, nodeId int) bool {
	n, ok := store.GetAst(nodeId)
	if !ok {
		return false
	}
	recursive, _ := n.Attributes["recursive"].(bool)
	return recursive
}

/*
Lookup implements types.ScopeBinder: it resolves name as seen from nodeId,
applying the let/section self-recursion rule (a binding re-pinned
RequiresRecursiveAccess inside its own value expression only resolves for a
reference written with "@").
*/
func (r *Resolver) Lookup(nodeId int, name string) (types.Binding, bool) {
	scope := r.TryNodeScope(nodeId)
	item, ok := scope[name]
	if !ok {
		return types.Binding{}, false
	}

	switch item.Kind {
	case KindLetVariable, KindSectionMember, KindRecordField:
		if item.RequiresRecursiveAccess && !isRecursiveReference(r.store, nodeId) {
			return types.Binding{}, false
		}
		return types.Binding{Kind: types.BindingValue, ValueId: item.ValueId, HasValue: item.HasValue}, true
	case KindParameter:
		return types.Binding{
			Kind:             types.BindingParameter,
			IsOptional:       item.IsOptional,
			IsNullable:       item.IsNullable,
			HasPrimitiveKind: item.HasPrimitiveKind,
			PrimitiveKind:    item.PrimitiveKind,
		}, true
	case KindEach:
		return types.Binding{Kind: types.BindingEach}, true
	default:
		return types.Binding{Kind: types.BindingUndefined}, true
	}
}
