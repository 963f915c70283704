package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/valpere/lingoroute/internal/normalize"
)

// wirePayload is the structured request body every endpoint accepts.
type wirePayload struct {
	Text   string `json:"text"`
	Target string `json:"target"`
}

// attemptEndpoint runs the two-transport protocol against one endpoint:
// a structured POST first, then a GET with query parameters if the POST
// produced nothing usable. Transport errors and unusable responses are
// equivalent here — both just mean "try the next thing".
func (d *Dispatcher) attemptEndpoint(ctx context.Context, endpointURL, text, target string) (string, bool) {
	if s, ok := d.attemptPOST(ctx, endpointURL, text, target); ok {
		return s, true
	}
	return d.attemptGET(ctx, endpointURL, text, target)
}

func (d *Dispatcher) attemptPOST(ctx context.Context, endpointURL, text, target string) (string, bool) {
	body, err := json.Marshal(wirePayload{Text: text, Target: target})
	if err != nil {
		return "", false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpointURL, bytes.NewReader(body))
	if err != nil {
		d.logger.Debug("failed to build POST request", "endpoint", endpointURL, "error", err)
		return "", false
	}
	req.Header.Set("Content-Type", "application/json")

	return d.roundTrip(req)
}

func (d *Dispatcher) attemptGET(ctx context.Context, endpointURL, text, target string) (string, bool) {
	u, err := url.Parse(endpointURL)
	if err != nil {
		d.logger.Debug("invalid endpoint URL", "endpoint", endpointURL, "error", err)
		return "", false
	}
	q := u.Query()
	q.Set("text", text)
	q.Set("target", target)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		d.logger.Debug("failed to build GET request", "endpoint", endpointURL, "error", err)
		return "", false
	}

	return d.roundTrip(req)
}

// roundTrip executes one attempt and normalizes the body. Non-success
// statuses and unusable bodies yield ok=false without escalation.
func (d *Dispatcher) roundTrip(req *http.Request) (string, bool) {
	resp, err := d.client.Do(req)
	if err != nil {
		d.logger.Debug("attempt transport failed",
			"method", req.Method, "endpoint", req.URL.Host, "error", err)
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		d.logger.Debug("attempt returned non-success status",
			"method", req.Method, "endpoint", req.URL.Host, "status", resp.StatusCode)
		return "", false
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		d.logger.Debug("failed to read response body",
			"endpoint", req.URL.Host, "error", err)
		return "", false
	}

	return normalize.Extract(string(raw))
}

// ProbeResult reports one endpoint's health as seen by a single attempt.
type ProbeResult struct {
	URL     string
	OK      bool
	Latency time.Duration
}

// Probe attempts every endpoint in the current rotation once, outside the
// queue and without touching routing state. Intended for diagnostics.
func (d *Dispatcher) Probe(ctx context.Context, text, target string) []ProbeResult {
	view := d.registry.View()
	out := make([]ProbeResult, 0, len(view.Endpoints))
	for _, u := range view.Endpoints {
		start := time.Now()
		_, ok := d.attemptEndpoint(ctx, u, text, target)
		out = append(out, ProbeResult{URL: u, OK: ok, Latency: time.Since(start)})
	}
	return out
}
