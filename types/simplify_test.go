package types

import "testing"

func TestSimplifyAnyCollapsesEverything(t *testing.T) {
	got := Simplify([]*Type{Primitive(Number, false), Primitive(Any, false), Primitive(Text, true)})
	if got.Tag != TagPrimitive || got.Kind != Any || got.IsNullable {
		t.Fatalf("expected any, got %s", NameOf(got))
	}
}

func TestSimplifyPrefersNullableWithinKind(t *testing.T) {
	got := Simplify([]*Type{Primitive(Number, false), Primitive(Number, true)})
	if NameOf(got) != "nullable number" {
		t.Fatalf("expected nullable number, got %s", NameOf(got))
	}
}

func TestSimplifyLiteralPlusPrimitiveCollapsesToPrimitive(t *testing.T) {
	got := Simplify([]*Type{NumberLiteralType(1), Primitive(Number, false)})
	if NameOf(got) != "number" {
		t.Fatalf("expected number, got %s", NameOf(got))
	}
}

func TestSimplifyDedupesLiteralsByValue(t *testing.T) {
	got := Simplify([]*Type{NumberLiteralType(1), NumberLiteralType(1), NumberLiteralType(2)})
	if NameOf(got) != "1 | 2" {
		t.Fatalf("expected 1 | 2, got %s", NameOf(got))
	}
}

func TestSimplifyBooleanLiteralPairCollapsesToLogical(t *testing.T) {
	got := Simplify([]*Type{LogicalLiteralType(true), LogicalLiteralType(false)})
	if NameOf(got) != "logical" {
		t.Fatalf("expected logical, got %s", NameOf(got))
	}

	single := Simplify([]*Type{LogicalLiteralType(true), LogicalLiteralType(true)})
	if NameOf(single) != "true" {
		t.Fatalf("expected the lone literal to survive, got %s", NameOf(single))
	}
}

func TestSimplifyNullableLogicalRaisesGroup(t *testing.T) {
	got := Simplify([]*Type{LogicalLiteralType(true), Primitive(Logical, true)})
	if NameOf(got) != "nullable logical" {
		t.Fatalf("expected nullable logical, got %s", NameOf(got))
	}
}

func TestSimplifyFlattensNestedUnionPreservingOrder(t *testing.T) {
	nested := AnyUnionType(Primitive(Text, false), Primitive(Number, false))
	got := Simplify([]*Type{nested, Primitive(Logical, false)})
	if NameOf(got) != "text | number | logical" {
		t.Fatalf("expected insertion order preserved across the flattening, got %s", NameOf(got))
	}
}

func TestSimplifySingleMemberReturnsMember(t *testing.T) {
	got := Simplify([]*Type{Primitive(Date, false)})
	if got.Tag != TagPrimitive || got.Kind != Date {
		t.Fatalf("expected the member back, got %s", NameOf(got))
	}
}

func TestSimplifyEmptyIsUnknown(t *testing.T) {
	if NameOf(Simplify(nil)) != "unknown" {
		t.Fatalf("expected unknown for an empty sequence")
	}
}

func TestSimplifyDedupesStructuralMembersByName(t *testing.T) {
	rec := func() *Type {
		return DefinedRecordType([]Field{{Name: "a", Type: Primitive(Number, false)}}, false)
	}
	got := Simplify([]*Type{rec(), rec()})
	if NameOf(got) != "[a: number]" {
		t.Fatalf("expected a single record member, got %s", NameOf(got))
	}
}

func TestSimplifyIdempotent(t *testing.T) {
	inputs := [][]*Type{
		{Primitive(Number, false), Primitive(Text, false)},
		{NumberLiteralType(1), NumberLiteralType(2), Primitive(Text, true)},
		{LogicalLiteralType(true), LogicalLiteralType(false), Primitive(Number, false)},
		{AnyUnionType(Primitive(Text, false), Primitive(Number, false)), Primitive(Number, true)},
		{DefinedListType(Primitive(Number, false)), Primitive(List, false)},
	}
	for _, ts := range inputs {
		once := Simplify(ts)
		twice := Simplify([]*Type{once})
		if NameOf(once) != NameOf(twice) {
			t.Errorf("not idempotent: %s vs %s", NameOf(once), NameOf(twice))
		}
	}
}
