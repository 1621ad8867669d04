// Package pairid generates short-lived, unique identifier strings for pairing
// form-control elements with their labels in a declarative binding system.
//
// The core is a Registry of counted id entries keyed by an optional prefix.
// The first request for a prefix mints a random token and declares how many
// times it may be handed out; further requests for the same prefix return the
// identical token until the budget is spent. One request per entry may target
// the "id" attribute itself; the rest pair labels ("for") or group controls
// ("name") against it.
package pairid

import (
	"context"
	"sync"

	"github.com/calque-ui/pairid/internal/token"
)

// keySentinel is prepended to the caller-supplied prefix to form the registry
// lookup key, so the default slot and an explicit empty prefix share one key.
const keySentinel = "#"

// defaultTokenLength is the length of generated tokens.
const defaultTokenLength = 6

// TokenSource produces a random token of the given length. Swap it out with
// WithTokenSource to pin tokens in tests or to make CLI runs reproducible.
type TokenSource func(length int) string

// entry is the counted record tracking a live id token.
type entry struct {
	id        string
	remaining int
	idClaimed bool
}

// Registry tracks the id tokens handed out so far, keyed by prefix.
//
// A Registry is an ordinary value owned by whoever constructs it; tests
// create one per case for isolation, a host binding layer typically keeps one
// per page. The zero value is not usable; construct with New.
//
// Registry is safe for concurrent use. Each Request completes atomically
// relative to every other.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry

	logger   Logger
	tokenLen int
	token    TokenSource
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registry events. The default discards
// all messages.
func WithLogger(logger Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithTokenLength sets the length of generated tokens. Values below one are
// ignored.
func WithTokenLength(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.tokenLen = n
		}
	}
}

// WithTokenSource replaces the random token generator.
func WithTokenSource(src TokenSource) Option {
	return func(r *Registry) {
		if src != nil {
			r.token = src
		}
	}
}

// New creates an empty Registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		entries:  make(map[string]*entry),
		logger:   defaultLogger(),
		tokenLen: defaultTokenLength,
		token:    token.Generate,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Request serves one id request described by cfg and returns the value to
// write into the target attribute: the prefix concatenated with the entry's
// token.
//
// A zero-valued Attr defaults to AttrID and a zero-valued Count to
// DefaultCount; hosts resolving raw binding values should go through Resolve
// (or a Handler), which applies the entry point's own defaults first.
//
// Request fails with a ConfigError on a malformed cfg, with an ExhaustedError
// when an explicitly prefixed id is requested more times than its count
// allows, and with a DuplicateClaimError when the id attribute is requested
// twice for the same entry.
func (r *Registry) Request(cfg Config) (string, error) {
	ctx := context.Background()

	cfg = cfg.withDefaults(AttrID)
	if err := cfg.validate(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if cfg.Clear {
		r.entries = make(map[string]*entry)
		r.logger.InfoContext(ctx, "registry cleared")
	}

	key := keySentinel + cfg.Prefix

	e := r.entries[key]
	if e != nil {
		e.remaining--

		// The two slots age differently on purpose. An explicitly prefixed
		// entry declared its budget, so running past it is an authoring
		// error and the entry stays behind to keep reporting it. The
		// default slot has no author to blame: it is dropped the moment its
		// budget is spent so the next request simply starts a fresh token.
		if cfg.Prefix != "" {
			if e.remaining < 0 {
				r.logger.WarnContext(ctx, "id request budget exhausted", "prefix", cfg.Prefix)
				return "", &ExhaustedError{Prefix: cfg.Prefix}
			}
		} else if e.remaining <= 0 {
			delete(r.entries, key)
		}
	} else {
		e = &entry{
			id:        r.token(r.tokenLen),
			remaining: cfg.Count - 1,
		}
		r.entries[key] = e
		r.logger.InfoContext(ctx, "id entry created",
			"prefix", cfg.Prefix, "token", e.id, "count", cfg.Count)
	}

	// The claim check runs after the bookkeeping above, so the decrement
	// sticks even when the claim fails.
	if cfg.Attr == AttrID {
		if e.idClaimed {
			r.logger.WarnContext(ctx, "id attribute claimed twice",
				"prefix", cfg.Prefix, "token", e.id)
			return "", &DuplicateClaimError{Prefix: cfg.Prefix, ID: e.id}
		}
		e.idClaimed = true
	}

	return cfg.Prefix + e.id, nil
}

// Clear discards every entry, spent or not. Equivalent to a request carrying
// Clear: true, minus the request.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = make(map[string]*entry)
	r.logger.InfoContext(context.Background(), "registry cleared")
}

// Len returns the number of entries currently tracked.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries)
}
