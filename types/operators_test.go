package types

import "testing"

func TestArithmeticResultTable(t *testing.T) {
	cases := []struct {
		left  PrimitiveKind
		op    string
		right PrimitiveKind
		want  PrimitiveKind
		ok    bool
	}{
		{Number, "+", Number, Number, true},
		{Number, "*", Number, Number, true},
		{Text, "&", Text, Text, true},
		{List, "&", List, List, true},
		{Record, "&", Record, Record, true},
		{Date, "+", Duration, DateTime, true},
		{Date, "-", Date, Duration, true},
		{DateTime, "-", DateTime, Duration, true},
		{Number, "+", Text, None, false},
		{Text, "+", Text, None, false},
		{Logical, "&", Logical, None, false},
	}
	for _, c := range cases {
		got, ok := ArithmeticResult(c.left, c.op, c.right)
		if ok != c.ok || (ok && got != c.want) {
			t.Errorf("ArithmeticResult(%v, %q, %v) = (%v, %v), want (%v, %v)",
				c.left, c.op, c.right, got, ok, c.want, c.ok)
		}
	}
}

func TestRelationalResultRequiresMatchingComparableKinds(t *testing.T) {
	if got, ok := RelationalResult(Number, Number); !ok || got != Logical {
		t.Fatalf("number < number should be logical")
	}
	if got, ok := RelationalResult(Text, Text); !ok || got != Logical {
		t.Fatalf("text < text should be logical")
	}
	if _, ok := RelationalResult(Number, Text); ok {
		t.Fatalf("cross-kind comparison should be ill-typed")
	}
	if _, ok := RelationalResult(Record, Record); ok {
		t.Fatalf("records are not orderable")
	}
}

func TestEqualityResultIsAlwaysLogical(t *testing.T) {
	if EqualityResult() != Logical {
		t.Fatalf("equality should be logical")
	}
}

func TestLogicalResultTable(t *testing.T) {
	for _, op := range []string{"and", "or"} {
		if got, ok := LogicalResult(Logical, op, Logical); !ok || got != Logical {
			t.Fatalf("logical %s logical should be logical", op)
		}
		if _, ok := LogicalResult(Number, op, Logical); ok {
			t.Fatalf("number %s logical should be ill-typed", op)
		}
	}
}
