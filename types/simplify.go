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

/*
Simplify reduces a sequence of types to their set-theoretic union following
the six rules of spec.md sec. 4.5, in order:

 1. Any non-nullable `any` member collapses the whole result to `any`.
 2. Group by primitive kind; if both nullable and non-nullable forms of a
    kind are present, the nullable form wins for that kind.
 3. Dedupe literals by value; a literal plus its bare primitive collapses
    to the primitive.
 4. Boolean literals `{true, false}` collapse to `logical`; if either was
    nullable the result is `nullable logical`.
 5. Flatten nested AnyUnion one level, preserving insertion order so NameOf
    stays stable across the flattening (spec.md sec. 9).
 6. One remaining member returns that member; otherwise AnyUnion(members…).

Simplify is idempotent: re-running it on its own output returns an equal
result (spec.md sec. 8).
*/
func Simplify(ts []*Type) *Type {
	flat := flatten(ts)
	if len(flat) == 0 {
		return Primitive(Unknown, false)
	}

	for _, t := range flat {
		if t.Tag == TagPrimitive && t.Kind == Any && !t.IsNullable {
			return Primitive(Any, false)
		}
	}

	// Group by base kind, preserving first-seen order; collapse literals and
	// bare primitives of the same kind, and booleans specifically.
	order := make([]PrimitiveKind, 0, len(flat))
	byKind := make(map[PrimitiveKind][]*Type)
	for _, t := range flat {
		kind, isSimple := BasePrimitiveKind(t)
		if !isSimple {
			// Not reducible to a single primitive kind (nested AnyUnion
			// already flattened away, or a structural type) - keep as its
			// own bucket keyed by a kind no primitive will collide with.
			kind = Unknown
		}
		if _, seen := byKind[kind]; !seen && kind != Unknown {
			order = append(order, kind)
		}
		byKind[kind] = append(byKind[kind], t)
	}

	var out []*Type
	for _, kind := range order {
		out = append(out, reduceKindGroup(kind, byKind[kind])...)
	}
	// Structural (non-primitive-reducible) members pass through unchanged,
	// each its own union member, deduped by NameOf for determinism.
	seenStructural := make(map[string]bool)
	for _, t := range byKind[Unknown] {
		name := NameOf(t)
		if seenStructural[name] {
			continue
		}
		seenStructural[name] = true
		out = append(out, t)
	}

	if len(out) == 1 {
		return out[0]
	}
	return AnyUnionType(out...)
}

func flatten(ts []*Type) []*Type {
	var out []*Type
	for _, t := range ts {
		if t == nil {
			continue
		}
		if t.Tag == TagAnyUnion {
			out = append(out, flatten(t.Unioned)...)
			continue
		}
		out = append(out, t)
	}
	return out
}

/*
reduceKindGroup applies rules 2-4 to every member sharing one base
primitive kind.
*/
func reduceKindGroup(kind PrimitiveKind, members []*Type) []*Type {
	if kind == Logical {
		return reduceLogicalGroup(members)
	}

	nullable := false
	hasBarePrimitive := false
	literalValues := make(map[interface{}]bool)
	var literals []*Type

	for _, t := range members {
		switch t.Tag {
		case TagPrimitive:
			hasBarePrimitive = true
			nullable = nullable || t.IsNullable
		case TagNumberLiteral:
			if !literalValues[t.NumberLiteral] {
				literalValues[t.NumberLiteral] = true
				literals = append(literals, t)
			}
		case TagTextLiteral:
			if !literalValues[t.TextLiteral] {
				literalValues[t.TextLiteral] = true
				literals = append(literals, t)
			}
		}
	}

	// A literal plus its bare primitive collapses to the primitive; distinct
	// literals with no bare primitive stay, deduped, in first-seen order.
	if hasBarePrimitive {
		return []*Type{Primitive(kind, nullable)}
	}
	return literals
}

func reduceLogicalGroup(members []*Type) []*Type {
	nullable := false
	sawTrue, sawFalse, sawBare := false, false, false
	for _, t := range members {
		switch t.Tag {
		case TagPrimitive:
			sawBare = true
			nullable = nullable || t.IsNullable
		case TagLogicalLiteral:
			if t.LogicalLiteral {
				sawTrue = true
			} else {
				sawFalse = true
			}
		}
	}
	if sawBare || (sawTrue && sawFalse) {
		return []*Type{Primitive(Logical, nullable)}
	}
	if sawTrue {
		return []*Type{LogicalLiteralType(true)}
	}
	return []*Type{LogicalLiteralType(false)}
}
