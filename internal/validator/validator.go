// Package validator checks that a dispatched translation actually came
// back in the requested target language.
package validator

import (
	"fmt"
	"strings"

	"github.com/valpere/lingoroute/internal/detector"
)

// minLength is the minimum rune count for which detection is reliable
// enough to act on. Shorter results pass without checking.
const minLength = 20

type Validator struct {
	det *detector.Detector
}

func New() *Validator {
	return &Validator{det: detector.New()}
}

// Check returns nil when translated plausibly is written in targetLang.
// Empty results fail outright; short or ambiguous results pass, since
// mis-flagging a good translation is worse than missing a bad one.
func (v *Validator) Check(translated, targetLang string) error {
	if targetLang == "" {
		return nil
	}

	text := strings.TrimSpace(translated)
	if text == "" {
		return fmt.Errorf("translation is empty")
	}
	if len([]rune(text)) < minLength {
		return nil
	}

	detected, ok := v.det.ISO(text)
	if !ok {
		return nil
	}
	if !strings.EqualFold(detected, targetLang) {
		return fmt.Errorf("expected %s but detected %s", targetLang, detected)
	}
	return nil
}
