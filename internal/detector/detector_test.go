package detector

import (
	"strings"
	"testing"
)

var det = New()

func TestISO_Empty(t *testing.T) {
	if _, ok := det.ISO(""); ok {
		t.Error("empty text must not detect")
	}
}

func TestISO_English(t *testing.T) {
	code, ok := det.ISO("The quick brown fox jumps over the lazy dog near the river bank.")
	if !ok {
		t.Fatal("expected detection to succeed")
	}
	if !strings.EqualFold(code, "en") {
		t.Errorf("expected en, got %s", code)
	}
}

func TestISO_French(t *testing.T) {
	code, ok := det.ISO("Le renard brun rapide saute par-dessus le chien paresseux près de la rivière.")
	if !ok {
		t.Fatal("expected detection to succeed")
	}
	if !strings.EqualFold(code, "fr") {
		t.Errorf("expected fr, got %s", code)
	}
}
