// Package dispatch implements the failover translation dispatcher: a
// single-instance service that load-balances translation calls across a
// rotation of interchangeable HTTP endpoints.
//
// All remote work funnels through one worker goroutine, so dispatch
// rounds run strictly in submission order, one at a time, with a fixed
// throttle delay between them. Cache hits bypass the queue entirely.
// Every failure path degrades to "no translation available": callers
// handle a single ok=false signal, never transport errors.
package dispatch

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/valpere/lingoroute/internal/cache"
	"github.com/valpere/lingoroute/internal/endpoint"
	"github.com/valpere/lingoroute/internal/linecodec"
)

const (
	// DefaultDelay is the pause between consecutive dispatch rounds,
	// throttling burst traffic against remote quota limits.
	DefaultDelay = 300 * time.Millisecond

	defaultTimeout   = 30 * time.Second
	defaultQueueSize = 64
)

// Options configure a Dispatcher. The zero value selects sensible
// defaults throughout.
type Options struct {
	// HTTPClient performs the endpoint attempts. The default client
	// carries a 30s timeout so a hung endpoint cannot wedge the queue.
	HTTPClient *http.Client
	// Logger receives routing decisions and attempt failures.
	Logger *slog.Logger
	// Delay overrides DefaultDelay. Negative disables the throttle.
	Delay time.Duration
	// QueueSize bounds the number of pending operations.
	QueueSize int
}

type operation struct {
	id     string
	text   string
	target string
	result chan outcome
}

type outcome struct {
	text string
	ok   bool
}

// Dispatcher owns the routing state, the serialized request queue and the
// translation cache for one process. Construct it once and share it.
type Dispatcher struct {
	registry *endpoint.Registry
	cache    *cache.Cache
	client   *http.Client
	logger   *slog.Logger
	delay    time.Duration

	ops       chan *operation
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// New creates a Dispatcher and starts its worker. Call Close to stop it.
func New(reg *endpoint.Registry, c *cache.Cache, opts Options) *Dispatcher {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	delay := opts.Delay
	if delay == 0 {
		delay = DefaultDelay
	}
	queueSize := opts.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	d := &Dispatcher{
		registry: reg,
		cache:    c,
		client:   client,
		logger:   logger,
		delay:    delay,
		ops:      make(chan *operation, queueSize),
	}
	d.wg.Add(1)
	go d.worker()
	return d
}

// Close stops the worker after draining queued operations. Translate must
// not be called after Close.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() { close(d.ops) })
	d.wg.Wait()
}

// Translate returns the translation of text into targetLang. A cached
// result returns synchronously; otherwise the call is queued and
// dispatched in submission order. ok is false when no endpoint produced a
// usable result — the only failure signal callers need to handle. The
// error return covers context cancellation alone.
func (d *Dispatcher) Translate(ctx context.Context, text, targetLang string) (string, bool, error) {
	if text == "" {
		return "", false, nil
	}
	if v, ok := d.cache.Get(targetLang, text); ok {
		return v, true, nil
	}

	op := &operation{
		id:     uuid.NewString(),
		text:   text,
		target: targetLang,
		result: make(chan outcome, 1),
	}

	select {
	case d.ops <- op:
	case <-ctx.Done():
		return "", false, ctx.Err()
	}

	select {
	case r := <-op.result:
		return r.text, r.ok, nil
	case <-ctx.Done():
		return "", false, ctx.Err()
	}
}

// worker is the sole arbiter of dispatch ordering: one operation at a
// time, a throttle pause after each, and no operation outcome ever stops
// the loop.
func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for op := range d.ops {
		op.result <- d.dispatch(op)
		if d.delay > 0 {
			time.Sleep(d.delay)
		}
	}
}

// dispatch runs one full translation operation: newline encoding, a
// failover round, line-structure restoration and the cache write.
func (d *Dispatcher) dispatch(op *operation) outcome {
	logger := d.logger.With("request_id", op.id, "target", op.target)

	payload := op.text
	var tok linecodec.Token
	multiline := strings.Contains(op.text, "\n")
	if multiline {
		tok = linecodec.NewToken()
		payload = tok.Encode(op.text)
	}

	translated, ok := d.dispatchRound(logger, payload, op.target)
	if !ok {
		return outcome{}
	}

	if multiline {
		restored := tok.Decode(translated)
		if !strings.Contains(restored, "\n") {
			// Marker did not survive the round trip; realign against
			// the source's blank-line structure instead.
			restored = linecodec.PreserveBlankLines(op.text, restored)
		}
		translated = restored
	}

	d.cache.Put(context.Background(), op.target, op.text, translated)
	return outcome{text: translated, ok: true}
}

// dispatchRound tries endpoints in rotation order starting from the
// current primary. The first success is promoted to primary and ends the
// round. A fully failed round feeds the registry's failure streak.
func (d *Dispatcher) dispatchRound(logger *slog.Logger, text, target string) (string, bool) {
	view := d.registry.View()
	n := len(view.Endpoints)
	if n == 0 {
		logger.Warn("no translation endpoints configured")
		return "", false
	}

	for i := 0; i < n; i++ {
		idx := (view.Primary + i) % n
		url := view.Endpoints[idx]
		if s, ok := d.attemptEndpoint(context.Background(), url, text, target); ok {
			d.registry.Promote(view.Gen, idx)
			if idx != view.Primary {
				logger.Info("primary endpoint promoted", "endpoint", url)
			}
			return s, true
		}
	}

	d.registry.RoundFailed(view.Gen)
	logger.Warn("all endpoints failed", "endpoints", n, "fail_streak", d.registry.FailStreak())
	return "", false
}
