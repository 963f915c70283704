// Package detector wraps lingua-go language detection behind the small
// surface the CLI needs: ISO 639-1 codes in, ISO 639-1 codes out.
package detector

import (
	lingua "github.com/pemistahl/lingua-go"
)

// Detector identifies the language of a text. Building one is expensive
// (the models are loaded on demand); reuse the instance.
type Detector struct {
	d lingua.LanguageDetector
}

func New() *Detector {
	return &Detector{
		d: lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			Build(),
	}
}

// ISO returns the ISO 639-1 code of the detected language of text, or
// ok=false when the text is empty or too ambiguous to classify.
func (d *Detector) ISO(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	lang, ok := d.d.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return lang.IsoCode639_1().String(), true
}
