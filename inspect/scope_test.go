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
	"testing"

	"github.com/mlangtools/mparse/ast"
	"github.com/mlangtools/mparse/lexer"
	"github.com/mlangtools/mparse/parser"
)

func activeAtDocument(t *testing.T, markedInput string) (*parser.Result, *ActiveNode) {
	t.Helper()
	clean, pos := cursorFromMarker(t, markedInput)
	snap, err := lexer.Tokenize("test", clean)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", clean, err)
	}
	res := parser.ParseDocument(snap, nil, nil)
	if res.Err != nil {
		t.Fatalf("unexpected parse error for %q: %v", clean, res.Err)
	}
	active, ok := TryFromPosition(res.Store, pos)
	if !ok {
		t.Fatalf("TryFromPosition found no active node in %q at %+v", clean, pos)
	}
	return &res, active
}

func TestResolver_LetBindingsVisibleInBody(t *testing.T) {
	store, active := activeAt(t, "let a = 1, b = 2 in a + |b")

	resolver := NewResolver(store)
	scope := resolver.TryNodeScope(active.Leaf.Id())

	for _, name := range []string{"a", "b"} {
		item, ok := scope[name]
		if !ok {
			t.Fatalf("expected %q in scope, got %v", name, scope)
		}
		if item.Kind != KindLetVariable {
			t.Errorf("expected %q to be a LetVariable, got %v", name, item.Kind)
		}
	}

	if _, ok := resolver.Lookup(active.Leaf.Id(), "b"); !ok {
		t.Errorf("expected Lookup(%q) to resolve from the let body", "b")
	}
}

func TestResolver_LetSelfRecursionRequiresAt(t *testing.T) {
	// Plain self-reference inside a binding's own value: rejected.
	storePlain, activePlain := activeAt(t, "let a = 1 + |a in a")
	resolverPlain := NewResolver(storePlain)
	if _, ok := resolverPlain.Lookup(activePlain.Leaf.Id(), "a"); ok {
		t.Errorf("expected plain self-reference to 'a' to be rejected inside its own value")
	}

	// "@"-prefixed self-reference inside the same position: accepted.
	storeAt, activeNode := activeAt(t, "let a = 1 + @|a in a")
	resolverAt := NewResolver(storeAt)
	if _, ok := resolverAt.Lookup(activeNode.Leaf.Id(), "a"); !ok {
		t.Errorf("expected '@a' self-reference to resolve inside its own value")
	}
}

func TestResolver_EachBindsUnderscore(t *testing.T) {
	store, active := activeAt(t, "each |_ + 1")

	resolver := NewResolver(store)
	item, ok := resolver.TryNodeScope(active.Leaf.Id())["_"]
	if !ok || item.Kind != KindEach {
		t.Fatalf("expected '_' bound as an Each item, got %v", item)
	}
}

func TestResolver_FunctionParameterScope(t *testing.T) {
	store, active := activeAt(t, "(x as number, y) => x + |y")

	resolver := NewResolver(store)
	scope := resolver.TryNodeScope(active.Leaf.Id())

	y, ok := scope["y"]
	if !ok || y.Kind != KindParameter {
		t.Fatalf("expected 'y' bound as a Parameter, got %v", y)
	}
	if y.IsOptional {
		t.Errorf("expected 'y' to not be optional")
	}

	x, ok := scope["x"]
	if !ok || x.Kind != KindParameter {
		t.Fatalf("expected 'x' bound as a Parameter, got %v", x)
	}
	if !x.HasPrimitiveKind {
		t.Errorf("expected 'x' to carry its declared primitive type")
	}
}

func TestResolver_RecordFieldVisibility(t *testing.T) {
	store, active := activeAt(t, "[a = 1, b = |a]")

	resolver := NewResolver(store)
	item, ok := resolver.TryNodeScope(active.Leaf.Id())["a"]
	if !ok || item.Kind != KindRecordField {
		t.Fatalf("expected 'a' bound as a RecordField, got %v", item)
	}
}

func TestResolver_SectionMemberVisibility(t *testing.T) {
	res, active := activeAtDocument(t, "section S; x = 1; y = |x;")

	resolver := NewResolver(res.Store)
	item, ok := resolver.TryNodeScope(active.Leaf.Id())["x"]
	if !ok || item.Kind != KindSectionMember {
		t.Fatalf("expected 'x' bound as a SectionMember, got %v", item)
	}
}

func TestResolver_UnterminatedRecordBindingVisibleAtEndOfInput(t *testing.T) {
	snap, err := lexer.Tokenize("test", "let x = [")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	res := parser.ParseExpression(snap, nil, nil)
	pe, ok := res.Err.(*parser.Error)
	if !ok || pe.Reason != parser.UnterminatedSequence || pe.SequenceKind != parser.SequenceBracket {
		t.Fatalf("expected an unterminated-bracket error, got %v", res.Err)
	}

	recordIds := res.Store.IdsByKind(ast.KindRecordLiteral)
	if len(recordIds) != 1 {
		t.Fatalf("expected exactly one record node, got %v", recordIds)
	}
	recId := recordIds[0]
	if _, isContext := res.Store.GetContext(recId); !isContext {
		t.Fatalf("expected the record to remain an open context")
	}

	scope := NewResolver(res.Store).TryNodeScope(recId)
	x, ok := scope["x"]
	if !ok || x.Kind != KindLetVariable {
		t.Fatalf("expected 'x' bound as a LetVariable, got %+v", scope)
	}
	if !x.HasValue || x.ValueId != recId {
		t.Fatalf("expected x's value to be the open record context, got %+v", x)
	}
	if !x.RequiresRecursiveAccess {
		t.Errorf("inside its own defining expression, x should require '@' access")
	}
}
