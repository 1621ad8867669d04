package pairid

import (
	"errors"
	"testing"

	"github.com/calque-ui/pairid/internal/token"
)

// TestHelper provides testing utilities for id bindings.
//
// TestHelper wraps a Registry with test-specific helpers that automatically
// fail tests on errors instead of returning them, which keeps binding tests
// free of boilerplate.
//
// The wrapped Registry uses a deterministic token source, so assertions can
// compare full id strings across runs. Pass WithTokenSource to override it.
//
// # Usage
//
// Create a TestHelper with NewTest and use its Must* methods:
//
//	func TestEmailField(t *testing.T) {
//	    r := pairid.NewTest(t)
//
//	    id := r.MustRequest(pairid.Config{Prefix: "email"})
//	    forID := r.MustRequest(pairid.Config{Prefix: "email", Attr: pairid.AttrFor})
//	    // id == forID
//	}
//
// Or use TestExhaustion to drive a full entry lifecycle:
//
//	func TestBudget(t *testing.T) {
//	    r := pairid.NewTest(t)
//	    r.TestExhaustion("email", 3) // 3 identical ids, then ExhaustedError
//	}
type TestHelper struct {
	*Registry
	t *testing.T
}

// NewTest creates a Registry with a deterministic token source for use in
// tests. Each helper gets its own Registry, so test cases stay isolated.
func NewTest(t *testing.T, opts ...Option) *TestHelper {
	t.Helper()

	opts = append([]Option{WithTokenSource(token.Seeded(1))}, opts...)

	return &TestHelper{
		Registry: New(opts...),
		t:        t,
	}
}

// MustRequest is like Request but fails the test on error.
func (th *TestHelper) MustRequest(cfg Config) string {
	th.t.Helper()

	id, err := th.Request(cfg)
	if err != nil {
		th.t.Fatalf("Request(%+v) failed: %v", cfg, err)
	}
	return id
}

// MustResolve resolves a raw binding value with the given default attribute,
// failing the test on error.
func (th *TestHelper) MustResolve(value any, def Attr) Config {
	th.t.Helper()

	cfg, err := Resolve(value, def)
	if err != nil {
		th.t.Fatalf("Resolve(%#v, %q) failed: %v", value, def, err)
	}
	return cfg
}

// AssertExhausted requests the prefix once more and fails the test unless
// the request is rejected with ErrExhausted.
func (th *TestHelper) AssertExhausted(prefix string) {
	th.t.Helper()

	_, err := th.Request(Config{Prefix: prefix, Attr: AttrFor})
	if err == nil {
		th.t.Fatalf("prefix %q still serving requests, want ErrExhausted", prefix)
	}
	if !errors.Is(err, ErrExhausted) {
		th.t.Fatalf("prefix %q failed with %v, want ErrExhausted", prefix, err)
	}
}

// AssertLen fails the test unless the registry tracks exactly n entries.
func (th *TestHelper) AssertLen(n int) {
	th.t.Helper()

	if got := th.Len(); got != n {
		th.t.Fatalf("registry tracks %d entries, want %d", got, n)
	}
}

// TestExhaustion drives a full entry lifecycle for an explicitly prefixed
// id: it requests the prefix count times, asserting every request returns
// the identical id, then asserts the next request fails with ErrExhausted.
//
// The first request claims the id attribute, the rest pair with "for".
func (th *TestHelper) TestExhaustion(prefix string, count int) {
	th.t.Helper()

	if prefix == "" {
		th.t.Fatal("TestExhaustion needs an explicit prefix: the default slot recycles instead of exhausting")
	}

	first := th.MustRequest(Config{Prefix: prefix, Count: count})

	for i := 1; i < count; i++ {
		id := th.MustRequest(Config{Prefix: prefix, Attr: AttrFor})
		if id != first {
			th.t.Fatalf("request %d for prefix %q returned %q, want %q", i+1, prefix, id, first)
		}
	}

	th.AssertExhausted(prefix)
}
