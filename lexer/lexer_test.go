package lexer

import (
	"testing"

	"github.com/mlangtools/mparse/result"
)

func kinds(snap *Snapshot) []Kind {
	var ks []Kind
	for i := 0; i < snap.Len(); i++ {
		ks = append(ks, snap.At(i).Kind)
	}
	return ks
}

func assertKinds(t *testing.T, input string, want ...Kind) {
	t.Helper()
	snap, err := Tokenize("test", input)
	if err != nil {
		t.Fatalf("unexpected error tokenizing %q: %v", input, err)
	}
	got := kinds(snap)
	if len(got) != len(want) {
		t.Fatalf("%q: got %v, want %v", input, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%q: token %d: got %v, want %v", input, i, got[i], want[i])
		}
	}
}

func TestSimpleExpression(t *testing.T) {
	assertKinds(t, "1 + 2", KindNumber, KindPlus, KindNumber, KindEOF)
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	assertKinds(t, "let x = 1 in x",
		KindLet, KindIdentifier, KindEqual, KindNumber, KindIn, KindIdentifier, KindEOF)
}

func TestTextLiteralWithEscapedQuote(t *testing.T) {
	snap, err := Tokenize("test", `"a""b"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.At(0).Kind != KindTextLiteral || snap.At(0).Data != `a"b` {
		t.Errorf("got %+v", snap.At(0))
	}
}

func TestQuotedIdentifier(t *testing.T) {
	snap, err := Tokenize("test", `#"my var"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.At(0).Kind != KindQuotedIdentifier || snap.At(0).Data != "my var" {
		t.Errorf("got %+v", snap.At(0))
	}
}

func TestQuotedIdentifierWithEscapedQuote(t *testing.T) {
	snap, err := Tokenize("test", `#"a""b"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.At(0).Data != `a"b` {
		t.Errorf("got %q", snap.At(0).Data)
	}
}

func TestNumberForms(t *testing.T) {
	for _, n := range []string{"1", "1.5", "1e10", "1e+10", "0x1F"} {
		snap, err := Tokenize("test", n)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", n, err)
		}
		if snap.At(0).Kind != KindNumber || snap.At(0).Data != n {
			t.Errorf("%q: got %+v", n, snap.At(0))
		}
	}
}

func TestComments(t *testing.T) {
	assertKinds(t, "1 /* skip */ + // trailing\n2", KindNumber, KindPlus, KindNumber, KindEOF)
}

func TestSymbols(t *testing.T) {
	assertKinds(t, "(x)=>x", KindLeftParen, KindIdentifier, KindRightParen, KindFatArrow, KindIdentifier, KindEOF)
}

func TestUnterminatedTextLiteralIsError(t *testing.T) {
	snap, err := Tokenize("test", `"abc`)
	if err == nil {
		t.Fatal("expected an error")
	}
	if snap.At(0).Kind != KindError {
		t.Errorf("expected an error token, got %+v", snap.At(0))
	}
}

func TestTryTokenizeIsMixedOnLexError(t *testing.T) {
	outcome := TryTokenize("test", `"abc`)
	if outcome.Kind() != result.KindMixed {
		t.Fatalf("expected KindMixed, got %v", outcome.Kind())
	}
	snap, ok := outcome.Value()
	if !ok || snap.At(0).Kind != KindError {
		t.Fatalf("expected a usable partial snapshot with a leading error token")
	}
	if outcome.Err() == nil {
		t.Fatalf("expected the lex error to be carried alongside the partial snapshot")
	}
}

func TestTryTokenizeIsOkOnCleanInput(t *testing.T) {
	outcome := TryTokenize("test", "1 + 1")
	if outcome.Kind() != result.KindOk {
		t.Fatalf("expected KindOk, got %v", outcome.Kind())
	}
	if outcome.Err() != nil {
		t.Fatalf("expected no error, got %v", outcome.Err())
	}
}

func TestHashKeyword(t *testing.T) {
	assertKinds(t, "#date", KindHashDate, KindEOF)
}

func TestPositions(t *testing.T) {
	snap, _ := Tokenize("test", "let\n  x = 1")
	// "x" is on line 1 (zero-based)
	var xTok Token
	for i := 0; i < snap.Len(); i++ {
		if snap.At(i).Kind == KindIdentifier {
			xTok = snap.At(i)
		}
	}
	if xTok.PositionStart.LineNumber != 1 {
		t.Errorf("expected identifier on line 1, got %+v", xTok.PositionStart)
	}
}
