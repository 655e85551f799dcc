package types

import "testing"

func TestNameOfPrimitives(t *testing.T) {
	cases := []struct {
		typ  *Type
		want string
	}{
		{Primitive(Number, false), "number"},
		{Primitive(Text, true), "nullable text"},
		{Primitive(AnyNonNull, false), "anynonnull"},
		{Primitive(DateTimeZone, false), "datetimezone"},
		{Primitive(Unknown, false), "unknown"},
		{nil, "unknown"},
	}
	for _, c := range cases {
		if got := NameOf(c.typ); got != c.want {
			t.Errorf("NameOf = %q, want %q", got, c.want)
		}
	}
}

func TestNameOfLiteralsUseSourceText(t *testing.T) {
	cases := []struct {
		typ  *Type
		want string
	}{
		{NumberLiteralType(1.5), "1.5"},
		{NumberLiteralType(3), "3"},
		{TextLiteralType("x"), `"x"`},
		{LogicalLiteralType(true), "true"},
		{LogicalLiteralType(false), "false"},
	}
	for _, c := range cases {
		if got := NameOf(c.typ); got != c.want {
			t.Errorf("NameOf = %q, want %q", got, c.want)
		}
	}
}

func TestNameOfUnionJoinsWithPipes(t *testing.T) {
	u := AnyUnionType(Primitive(Number, false), Primitive(Text, false))
	if got := NameOf(u); got != "number | text" {
		t.Fatalf("NameOf = %q", got)
	}
}

func TestNameOfRecordsAndTables(t *testing.T) {
	fields := []Field{
		{Name: "a", Type: Primitive(Number, false)},
		{Name: "b", Type: Primitive(Text, true)},
	}
	if got := NameOf(DefinedRecordType(fields, false)); got != "[a: number, b: nullable text]" {
		t.Fatalf("closed record: %q", got)
	}
	if got := NameOf(DefinedRecordType(fields, true)); got != "[a: number, b: nullable text, ...]" {
		t.Fatalf("open record: %q", got)
	}
	if got := NameOf(DefinedTableType(fields[:1], false)); got != "table [a: number]" {
		t.Fatalf("table: %q", got)
	}
}

func TestNameOfListsAndFunctions(t *testing.T) {
	if got := NameOf(DefinedListType(Primitive(Number, false), Primitive(Text, false))); got != "{number, text}" {
		t.Fatalf("defined list: %q", got)
	}

	params := []Param{
		{Name: "x", Type: Primitive(Number, false)},
		{Name: "y", Type: Primitive(Any, true), IsOptional: true},
	}
	fn := DefinedFunctionType(params, Primitive(Text, false))
	if got := NameOf(fn); got != "(x as number, optional y as nullable any) => text" {
		t.Fatalf("defined function: %q", got)
	}
}

func TestNameOfTypeValues(t *testing.T) {
	cases := []struct {
		typ  *Type
		want string
	}{
		{PrimaryPrimitiveType(Text, false), "type text"},
		{ListTypeOf(Primitive(Number, false)), "type {number}"},
		{DefinedListTypeValue(Primitive(Number, false)), "type {number}"},
		{FunctionTypeValue([]Param{{Name: "x", Type: Primitive(Number, false)}}, Primitive(Number, false)),
			"type function (x as number) number"},
		{TableTypePrimaryExpressionValue([]Field{{Name: "a", Type: Primitive(Number, false)}}, false),
			"type table [a: number]"},
	}
	for _, c := range cases {
		if got := NameOf(c.typ); got != c.want {
			t.Errorf("NameOf = %q, want %q", got, c.want)
		}
	}
}

func TestNameOfRequotesFieldNamesWithWhitespace(t *testing.T) {
	rec := DefinedRecordType([]Field{{Name: "col name", Type: Primitive(Number, false)}}, false)
	if got := NameOf(rec); got != `[#"col name": number]` {
		t.Fatalf("NameOf = %q", got)
	}
}

func TestNameOfDeterministic(t *testing.T) {
	u := Simplify([]*Type{Primitive(Number, false), Primitive(Text, false), Primitive(Logical, true)})
	first := NameOf(u)
	for i := 0; i < 10; i++ {
		if got := NameOf(u); got != first {
			t.Fatalf("NameOf changed between calls: %q vs %q", first, got)
		}
	}
}
