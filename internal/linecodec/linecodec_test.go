package linecodec

import (
	"strings"
	"testing"
)

func TestNewToken_MatchesKnownShape(t *testing.T) {
	for i := 0; i < 20; i++ {
		tok := NewToken()
		if !tokenPattern.MatchString(string(tok)) {
			t.Fatalf("token %q does not match any template shape", tok)
		}
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	src := "first line\nsecond line\n\nfourth line"
	tok := NewToken()

	encoded := tok.Encode(src)
	if strings.Contains(encoded, "\n") {
		t.Fatalf("encoded text still contains newlines: %q", encoded)
	}

	decoded := tok.Decode(encoded)
	if decoded != src {
		t.Errorf("round trip mismatch:\n  src:     %q\n  decoded: %q", src, decoded)
	}
	if strings.Count(decoded, "\n") != strings.Count(src, "\n") {
		t.Errorf("line break count changed: %d vs %d",
			strings.Count(decoded, "\n"), strings.Count(src, "\n"))
	}
}

func TestDecode_TokenSurvivesInsideTranslation(t *testing.T) {
	tok := Token("[[BR:1234]]")
	translated := "première ligne[[BR:1234]]deuxième ligne"

	got := tok.Decode(translated)
	want := "première ligne\ndeuxième ligne"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestTrimAroundTokens(t *testing.T) {
	in := "hello  [[BR:99]]  world {{BR:5}}\tend"
	got := TrimAroundTokens(in)
	want := "hello[[BR:99]]world{{BR:5}}end"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestTrimAroundTokens_NoToken(t *testing.T) {
	in := "  plain text  "
	if got := TrimAroundTokens(in); got != in {
		t.Errorf("text without tokens must be unchanged, got %q", got)
	}
}

func TestPreserveBlankLines_NearEqual(t *testing.T) {
	src := "one\n\ntwo\nthree"
	dst := "un\n\ndeux\ntrois"

	got := PreserveBlankLines(src, dst)
	if got != dst {
		t.Errorf("matching structure must pass through, got %q", got)
	}
}

func TestPreserveBlankLines_NearEqualMissingBlank(t *testing.T) {
	src := "one\n\ntwo"
	dst := "un\ndeux"

	got := PreserveBlankLines(src, dst)
	want := "un\n\ndeux"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestPreserveBlankLines_DivergentCounts(t *testing.T) {
	// Source has one blank line; the translation collapsed to a single
	// line. The blank must be reconstructed.
	src := "a\n\nb"
	dst := "xyz"

	got := PreserveBlankLines(src, dst)
	blank := false
	for _, line := range strings.Split(got, "\n") {
		if strings.TrimSpace(line) == "" {
			blank = true
		}
	}
	if !blank {
		t.Errorf("expected a blank line in %q", got)
	}
	if !strings.Contains(got, "xyz") {
		t.Errorf("translated text lost: %q", got)
	}
}

func TestPreserveBlankLines_LeftoverDestinationKept(t *testing.T) {
	src := "only line"
	dst := "first\nsecond\nthird"

	got := PreserveBlankLines(src, dst)
	for _, want := range []string{"first", "second", "third"} {
		if !strings.Contains(got, want) {
			t.Errorf("leftover line %q dropped from %q", want, got)
		}
	}
}

func TestPreserveBlankLines_ExhaustedDestinationNearEqual(t *testing.T) {
	src := "a\nb"
	dst := "x"

	got := PreserveBlankLines(src, dst)
	want := "x\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
