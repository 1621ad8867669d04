package pairid

import (
	"errors"
	"fmt"
)

// Common errors returned by registry operations.
var (
	ErrInvalidConfig  = errors.New("invalid binding configuration")
	ErrExhausted      = errors.New("id request budget exhausted")
	ErrDuplicateClaim = errors.New("id attribute already claimed")
)

// ConfigError reports a malformed binding configuration.
//
// It names the offending field and the value that was rejected, so the host
// can point the author at the exact declaration that is wrong.
type ConfigError struct {
	Field  string // Configuration field: "attr", "count", "prefix", "clear"
	Value  any    // The rejected value as supplied by the caller
	Reason string // Why the value was rejected
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %#v: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// newConfigError creates a ConfigError for the given field and value.
func newConfigError(field string, value any, reason string) error {
	return &ConfigError{
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// ExhaustedError reports that an explicitly prefixed id was requested more
// times than its declared count allows.
type ExhaustedError struct {
	Prefix string // The prefix whose request budget ran out
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("id prefix %q requested more times than its count allows", e.Prefix)
}

func (e *ExhaustedError) Unwrap() error {
	return ErrExhausted
}

// DuplicateClaimError reports a second id-attribute request against the same
// entry. Only one element may carry the id itself; labels pair to it through
// the "for" attribute instead.
type DuplicateClaimError struct {
	Prefix string // The prefix of the entry (empty for the default slot)
	ID     string // The token that was already claimed
}

func (e *DuplicateClaimError) Error() string {
	if e.Prefix != "" {
		return fmt.Sprintf("id attribute for prefix %q already claimed (token %s)", e.Prefix, e.ID)
	}
	return fmt.Sprintf("id attribute already claimed (token %s)", e.ID)
}

func (e *DuplicateClaimError) Unwrap() error {
	return ErrDuplicateClaim
}
