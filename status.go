package pairid

import (
	"encoding/json"
	"sort"
	"strings"
)

// EntryState represents the current state of a registry entry.
type EntryState int

const (
	// StateLive indicates the entry still has request budget left.
	StateLive EntryState = iota

	// StateExhausted indicates the entry's budget is spent. Explicitly
	// prefixed entries linger in this state and fail further requests; the
	// default slot recycles instead.
	StateExhausted
)

// String returns a human-readable representation of the state.
func (s EntryState) String() string {
	switch s {
	case StateLive:
		return "live"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the state as its string form.
func (s EntryState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// EntryStatus describes one registry entry at a point in time.
// This is returned by Registry.Snapshot().
type EntryStatus struct {
	// Prefix is the caller-supplied prefix, empty for the default slot.
	Prefix string `json:"prefix"`

	// ID is the entry's token.
	ID string `json:"id"`

	// Remaining is the number of further requests the entry will serve.
	Remaining int `json:"remaining"`

	// IDClaimed reports whether the id attribute was already assigned.
	IDClaimed bool `json:"id_claimed"`

	// State is live or exhausted.
	State EntryState `json:"state"`
}

// Snapshot returns the current entries sorted by prefix, the default slot
// first. The result is a copy; mutating it does not touch the registry.
func (r *Registry) Snapshot() []EntryStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	statuses := make([]EntryStatus, 0, len(r.entries))
	for key, e := range r.entries {
		state := StateLive
		if e.remaining <= 0 {
			state = StateExhausted
		}

		statuses = append(statuses, EntryStatus{
			Prefix:    strings.TrimPrefix(key, keySentinel),
			ID:        e.id,
			Remaining: e.remaining,
			IDClaimed: e.idClaimed,
			State:     state,
		})
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Prefix < statuses[j].Prefix
	})

	return statuses
}
