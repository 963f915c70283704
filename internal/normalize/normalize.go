// Package normalize turns raw endpoint response bodies into usable
// translated text.
//
// Endpoints are loosely specified: a body may be a JSON object carrying
// the translation under one of several field names, or the translation as
// plain text, or — when a proxy falls back to an error page — unexpected
// HTML. Extraction decides which case applies and then runs a cleanup
// pipeline that undoes the HTML-flavoured damage services commonly inflict
// on plain text (entity escaping, <br> markers, stray markup, CRLF
// endings).
package normalize

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/valpere/lingoroute/internal/linecodec"
)

// translationFields are checked in priority order when the body parses as
// a JSON object.
var translationFields = [...]string{"translatedText", "text", "translation"}

var (
	reBreakTag  = regexp.MustCompile(`(?i)<br\s*/?>`)
	reParaBreak = regexp.MustCompile(`(?i)</p>\s*<p[^>]*>`)
	reAnyTag    = regexp.MustCompile(`<[^>]+>`)
	entityPass  = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&quot;", `"`, "&#39;", "'")
)

// Extract returns the translated string carried by a raw response body.
// ok is false when the body is unusable: empty (or cleaning down to
// nothing), an HTML error page, JSON without a usable string field, or
// JSON whose translation field holds a non-string value.
func Extract(body string) (string, bool) {
	if body == "" {
		return "", false
	}

	trimmed := strings.TrimSpace(body)
	if strings.HasPrefix(trimmed, "<") && strings.Contains(strings.ToLower(trimmed), "html") {
		// Proxy or gateway error page, not a translation.
		return "", false
	}

	raw, ok := rawText(body)
	if !ok {
		return "", false
	}
	cleaned := Cleanup(raw)
	if cleaned == "" {
		return "", false
	}
	return cleaned, true
}

// rawText separates the JSON and plain-text cases. A body that parses as
// JSON must be an object with a string under one of the known field names;
// anything else that parses (bare scalars, arrays, objects without the
// fields, non-string field values) is unusable. A body that does not parse
// is taken verbatim as plain-text translation output.
func rawText(body string) (string, bool) {
	var parsed any
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return body, true
	}

	obj, isObj := parsed.(map[string]any)
	if !isObj {
		return "", false
	}
	for _, field := range translationFields {
		v, present := obj[field]
		if !present {
			continue
		}
		s, isStr := v.(string)
		if !isStr {
			// Explicit null or a non-string payload: nothing a caller
			// expecting text can do with it.
			return "", false
		}
		return s, true
	}
	return "", false
}

// Cleanup runs the ordered post-processing pipeline over raw translated
// text:
//
//  1. decode the HTML entities &lt; &gt; &quot; &#39; &amp;
//  2. unescape literal \n sequences into real newlines
//  3. convert <br> and <br/> tags into newlines
//  4. convert adjacent </p><p> pairs into paragraph breaks
//  5. strip any remaining markup
//  6. normalise CRLF and lone CR endings to LF
//  7. trim whitespace around line-break marker tokens
//  8. trim the whole string
//
// The order matters: entities must be decoded before tag handling so that
// escaped markup becomes visible to it, and &amp; is decoded last so a
// double-escaped entity resolves by exactly one level.
func Cleanup(text string) string {
	text = entityPass.Replace(text)
	text = strings.ReplaceAll(text, "&amp;", "&")
	text = strings.ReplaceAll(text, `\n`, "\n")
	text = reBreakTag.ReplaceAllString(text, "\n")
	text = reParaBreak.ReplaceAllString(text, "\n\n")
	text = reAnyTag.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = linecodec.TrimAroundTokens(text)
	return strings.TrimSpace(text)
}
