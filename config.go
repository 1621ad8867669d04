package pairid

import "fmt"

// Attr identifies which identifier-bearing attribute a binding targets.
type Attr string

const (
	// AttrID targets the element's own "id" attribute. Only one element per
	// entry may claim it.
	AttrID Attr = "id"

	// AttrFor targets a label's "for" attribute, pairing it with the element
	// that claimed the id.
	AttrFor Attr = "for"

	// AttrName targets the "name" attribute, used to group controls such as
	// radio buttons under one shared identifier.
	AttrName Attr = "name"
)

// valid reports whether a is one of the recognized attributes.
func (a Attr) valid() bool {
	switch a {
	case AttrID, AttrFor, AttrName:
		return true
	}
	return false
}

// DefaultCount is the number of times an id may be requested when the
// configuration does not declare a count: once for the control and once for
// its label.
const DefaultCount = 2

// Config is the normalized form of a binding declaration.
//
// Hosts usually do not build a Config by hand: they pass the raw binding
// value (a string, an integer, or a map) to Resolve, which collapses the
// shorthand forms into a validated Config.
type Config struct {
	// Attr is the attribute the resolved id should be written to.
	// Zero value means "use the entry point's default".
	Attr Attr

	// Count declares how many times this id may be requested in total.
	// Zero value means DefaultCount.
	Count int

	// Prefix names the entry this request belongs to. Requests sharing a
	// prefix share one token; the empty prefix addresses the default slot.
	Prefix string

	// Clear, when true, wipes the entire registry before this request is
	// served. Not scoped to the request's prefix.
	Clear bool
}

// withDefaults fills zero-valued Attr and Count.
func (c Config) withDefaults(def Attr) Config {
	if c.Attr == "" {
		c.Attr = def
	}
	if c.Count == 0 {
		c.Count = DefaultCount
	}
	return c
}

// validate checks a Config that already had its defaults applied.
func (c Config) validate() error {
	if !c.Attr.valid() {
		return newConfigError("attr", string(c.Attr), `must be one of "id", "for", "name"`)
	}
	if c.Count <= 0 {
		return newConfigError("count", c.Count, "must be a positive integer")
	}
	return nil
}

// Resolve collapses a raw binding value into a validated Config.
//
// Three shorthand forms are recognized in addition to the explicit one:
//
//   - a string is shorthand for Config{Prefix: s}
//   - an integer is shorthand for Config{Count: n}
//   - a map with the keys "attr", "count", "prefix", "clear" is the
//     explicit form, as produced by YAML or JSON decoding
//
// A Config value passes through unchanged apart from defaulting and
// revalidation. def supplies the attribute used when the declaration does not
// name one; the id-setting entry point passes AttrID, the label-pairing one
// AttrFor.
//
// All validation happens here, before any registry state is touched: a
// malformed declaration fails with a ConfigError and leaves the registry
// exactly as it was.
func Resolve(value any, def Attr) (Config, error) {
	var cfg Config

	switch v := value.(type) {
	case nil:
		// Empty declaration: all defaults.
	case Config:
		cfg = v
	case string:
		cfg = Config{Prefix: v}
	case int:
		if v <= 0 {
			return Config{}, newConfigError("count", v, "must be a positive integer")
		}
		cfg = Config{Count: v}
	case int64:
		if v <= 0 {
			return Config{}, newConfigError("count", v, "must be a positive integer")
		}
		cfg = Config{Count: int(v)}
	case float64:
		n, err := intCount("count", v)
		if err != nil {
			return Config{}, err
		}
		cfg = Config{Count: n}
	case map[string]any:
		parsed, err := resolveMap(v)
		if err != nil {
			return Config{}, err
		}
		cfg = parsed
	default:
		return Config{}, newConfigError("config", value,
			fmt.Sprintf("unsupported configuration type %T", value))
	}

	cfg = cfg.withDefaults(def)
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// resolveMap parses the explicit map form. Unrecognized keys are ignored, so
// hosts can carry extra annotations in the same declaration.
func resolveMap(m map[string]any) (Config, error) {
	var cfg Config

	if raw, ok := m["attr"]; ok {
		switch a := raw.(type) {
		case string:
			cfg.Attr = Attr(a)
		case Attr:
			cfg.Attr = a
		default:
			return Config{}, newConfigError("attr", raw, `must be one of "id", "for", "name"`)
		}
	}

	if raw, ok := m["count"]; ok {
		switch n := raw.(type) {
		case int:
			cfg.Count = n
		case int64:
			cfg.Count = int(n)
		case uint64:
			cfg.Count = int(n)
		case float64:
			parsed, err := intCount("count", n)
			if err != nil {
				return Config{}, err
			}
			cfg.Count = parsed
		default:
			return Config{}, newConfigError("count", raw, "must be a positive integer")
		}
		if cfg.Count <= 0 {
			return Config{}, newConfigError("count", raw, "must be a positive integer")
		}
	}

	if raw, ok := m["prefix"]; ok && raw != nil {
		s, ok := raw.(string)
		if !ok {
			return Config{}, newConfigError("prefix", raw, "must be a string")
		}
		cfg.Prefix = s
	}

	if raw, ok := m["clear"]; ok {
		b, ok := raw.(bool)
		if !ok {
			return Config{}, newConfigError("clear", raw, "must be a boolean")
		}
		cfg.Clear = b
	}

	return cfg, nil
}

// intCount converts a decoded floating-point count, rejecting fractional
// values. JSON decoding in particular hands every number over as a float64.
func intCount(field string, f float64) (int, error) {
	n := int(f)
	if float64(n) != f {
		return 0, newConfigError(field, f, "must be a positive integer without a fractional part")
	}
	if n <= 0 {
		return 0, newConfigError(field, f, "must be a positive integer")
	}
	return n, nil
}
