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

import "testing"

func TestTryInvokeExpression_ActiveArgumentOrdinal(t *testing.T) {
	store, active := activeAt(t, "f(1, 2|, 3)")

	resolver := NewResolver(store)
	inv, ok := TryInvokeExpression(store, nil, resolver, active)
	if !ok {
		t.Fatalf("expected an enclosing InvokeExpression")
	}
	if inv.NumberOfArgumentsProvided != 3 {
		t.Errorf("expected 3 arguments, got %d", inv.NumberOfArgumentsProvided)
	}
	if inv.ActiveArgumentOrdinal != 1 {
		t.Errorf("expected active argument ordinal 1, got %d", inv.ActiveArgumentOrdinal)
	}
}

func TestTryInvokeExpression_NoEnclosingInvoke(t *testing.T) {
	store, active := activeAt(t, "1 + |2")

	resolver := NewResolver(store)
	_, ok := TryInvokeExpression(store, nil, resolver, active)
	if ok {
		t.Fatalf("expected no enclosing InvokeExpression for a bare arithmetic expression")
	}
}

func TestTryInvokeExpression_NameInLocalScope(t *testing.T) {
	store, active := activeAt(t, "let f = (x) => x in f(|1)")

	resolver := NewResolver(store)
	inv, ok := TryInvokeExpression(store, nil, resolver, active)
	if !ok {
		t.Fatalf("expected an enclosing InvokeExpression")
	}
	if !inv.IsNameInLocalScope {
		t.Errorf("expected callee 'f' to resolve in local scope")
	}
	if inv.NumberOfArgumentsProvided != 1 {
		t.Errorf("expected 1 argument, got %d", inv.NumberOfArgumentsProvided)
	}
	if inv.ActiveArgumentOrdinal != 0 {
		t.Errorf("expected active argument ordinal 0, got %d", inv.ActiveArgumentOrdinal)
	}
}

func TestTryInvokeExpression_UnknownCalleeNotInScope(t *testing.T) {
	store, active := activeAt(t, "unknownFunc(|1)")

	resolver := NewResolver(store)
	inv, ok := TryInvokeExpression(store, nil, resolver, active)
	if !ok {
		t.Fatalf("expected an enclosing InvokeExpression")
	}
	if inv.IsNameInLocalScope {
		t.Errorf("expected callee 'unknownFunc' to not resolve in local scope")
	}
}
