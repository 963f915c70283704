// Package linecodec preserves the line structure of multi-line text across
// a translation round trip that gives no fidelity guarantee for raw
// newlines.
//
// Before sending, every newline in the source is replaced with a marker
// token chosen from a small fixed set of bracket styles; the token embeds
// a timestamp so it is unlikely to collide with real content. After the
// response comes back the token is substituted back to newlines. When the
// remote service mangles the token beyond recognition,
// PreserveBlankLines realigns the translated lines against the source's
// blank-line structure as a best-effort fallback.
package linecodec

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"
)

// templates are the marker shapes a token may take. Visually distinct
// bracket styles give the round trip several chances: a service that eats
// one shape may leave another intact on the next call. None of them use
// angle brackets, which the response cleanup strips as markup.
var templates = [...]string{
	"[[BR:%d]]",
	"{{BR:%d}}",
	"((BR:%d))",
}

// tokenPattern matches any token any template can produce, regardless of
// the embedded timestamp.
var tokenPattern = regexp.MustCompile(`\[\[BR:\d+\]\]|\{\{BR:\d+\}\}|\(\(BR:\d+\)\)`)

// paddedTokenPattern additionally captures horizontal whitespace the
// service may have introduced around a token.
var paddedTokenPattern = regexp.MustCompile(`[ \t]*(\[\[BR:\d+\]\]|\{\{BR:\d+\}\}|\(\(BR:\d+\)\))[ \t]*`)

// Token is one concrete newline marker, valid for a single call. The zero
// value means "no encoding performed".
type Token string

// NewToken picks a random template and stamps it with the current time.
func NewToken() Token {
	tpl := templates[rand.Intn(len(templates))]
	return Token(fmt.Sprintf(tpl, time.Now().UnixMilli()))
}

// Encode replaces every newline in text with the token.
func (t Token) Encode(text string) string {
	return strings.ReplaceAll(text, "\n", string(t))
}

// Decode substitutes every literal occurrence of the token back to a
// newline.
func (t Token) Decode(text string) string {
	return strings.ReplaceAll(text, string(t), "\n")
}

// TrimAroundTokens removes horizontal whitespace immediately surrounding
// any marker token so that later trimming cannot corrupt the marker
// boundary. Whitespace inside a token is never touched (tokens contain
// none).
func TrimAroundTokens(text string) string {
	return paddedTokenPattern.ReplaceAllString(text, "$1")
}

// PreserveBlankLines reconstructs the blank-line structure of src in dst
// when the marker token did not survive the round trip. It is a heuristic
// alignment, not a diff: translation usually keeps the line count, so when
// the two counts are within one of each other blank lines are matched
// pairwise; otherwise blank source lines are re-inserted without consuming
// translated lines at all.
func PreserveBlankLines(src, dst string) string {
	srcLines := strings.Split(src, "\n")
	dstLines := strings.Split(dst, "\n")

	diff := len(srcLines) - len(dstLines)
	if diff < 0 {
		diff = -diff
	}

	var out []string
	di := 0

	if diff <= 1 {
		// Near-equal counts: walk in lockstep, absorbing a matching
		// blank on the destination side so blanks are not doubled.
		for _, s := range srcLines {
			if strings.TrimSpace(s) == "" {
				out = append(out, "")
				if di < len(dstLines) && strings.TrimSpace(dstLines[di]) == "" {
					di++
				}
				continue
			}
			if di < len(dstLines) {
				out = append(out, dstLines[di])
				di++
			} else {
				out = append(out, "")
			}
		}
	} else {
		// Counts diverge: re-insert blanks from the source shape and
		// spread the translated lines over the non-blank slots.
		for _, s := range srcLines {
			if strings.TrimSpace(s) == "" {
				out = append(out, "")
				continue
			}
			if di < len(dstLines) {
				out = append(out, dstLines[di])
				di++
			}
		}
	}

	out = append(out, dstLines[di:]...)
	return strings.Join(out, "\n")
}
