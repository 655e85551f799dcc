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
)

func TestTryFromPosition_InsideToken(t *testing.T) {
	_, active := activeAt(t, "ab|c + 1")
	if active.Classification != InsideToken {
		t.Errorf("expected InsideToken, got %s", active.Classification)
	}
	if active.Leaf.Kind() != ast.KindIdentifier {
		t.Errorf("expected identifier leaf, got %s", active.Leaf.Kind())
	}
}

func TestTryFromPosition_OnTokenStart(t *testing.T) {
	_, active := activeAt(t, "|abc + 1")
	if active.Classification != OnTokenStart {
		t.Errorf("expected OnTokenStart, got %s", active.Classification)
	}
}

func TestTryFromPosition_OnTokenEnd(t *testing.T) {
	_, active := activeAt(t, "abc| + 1")
	if active.Classification != OnTokenEnd {
		t.Errorf("expected OnTokenEnd, got %s", active.Classification)
	}
}

func TestTryFromPosition_BetweenTokens(t *testing.T) {
	_, active := activeAt(t, "abc  |  + 1")
	if active.Classification != BetweenTokens {
		t.Errorf("expected BetweenTokens, got %s", active.Classification)
	}
}

func TestTryFromPosition_NoLeaves(t *testing.T) {
	store := ast.NewStore()
	_, ok := TryFromPosition(store, lexer.Position{})
	if ok {
		t.Fatalf("expected no active node in an empty store")
	}
}

func TestAncestry_LeafFirstNoDuplicates(t *testing.T) {
	store, active := activeAt(t, "1 + |2")

	if len(active.Ancestry) == 0 {
		t.Fatalf("expected a non-empty ancestry")
	}
	if active.Ancestry[0].Id() != active.Leaf.Id() {
		t.Errorf("expected ancestry[0] to be the leaf itself")
	}

	seen := make(map[int]bool)
	for _, x := range active.Ancestry {
		if seen[x.Id()] {
			t.Fatalf("duplicate node %d in ancestry", x.Id())
		}
		seen[x.Id()] = true
	}

	root, _ := store.GetAst(store.LeafIds()[0])
	_ = root
	last := active.Ancestry[len(active.Ancestry)-1]
	if _, hasParent := last.ParentId(); hasParent {
		t.Errorf("expected ancestry to end at the root")
	}
}
