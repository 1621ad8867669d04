package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/calque-ui/pairid"
)

// Control roles recognized in a manifest. The role picks the entry point a
// declaration is replayed through, which sets the default attribute.
const (
	RoleID  = "id"
	RoleFor = "for"
)

// Manifest is a YAML document listing form-control binding declarations in
// document order:
//
//	controls:
//	  - element: "input.email"
//	    role: id
//	    binding: email
//	  - element: "label.email"
//	    role: for
//	    binding: email
//	  - element: "input.search"
//	    binding: { count: 1 }
type Manifest struct {
	Controls []Control `yaml:"controls"`
}

// Control is one binding declaration.
type Control struct {
	// Element names the target element, for display only. The CLI never
	// touches a document; it reports the values a host would write.
	Element string `yaml:"element"`

	// Role selects the entry point: "id" (default) or "for".
	Role string `yaml:"role"`

	// Binding is the raw binding value in any of the shorthand forms: a
	// bare string (prefix), a bare integer (count), or a map.
	Binding yaml.Node `yaml:"binding"`
}

// bindingValue decodes the raw binding declaration into the dynamic value
// the resolver expects. An absent binding decodes to nil, which resolves to
// all defaults.
func (c *Control) bindingValue() (any, error) {
	if c.Binding.Kind == 0 {
		return nil, nil
	}

	var value any
	if err := c.Binding.Decode(&value); err != nil {
		return nil, fmt.Errorf("malformed binding: %w", err)
	}
	return value, nil
}

// displayName returns the element name, or a positional fallback for
// declarations that omit it.
func (c *Control) displayName(index int) string {
	if c.Element != "" {
		return c.Element
	}
	return fmt.Sprintf("control %d", index+1)
}

// LoadManifest reads and parses a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	return &m, nil
}

// Assignment is the attribute value one declaration received.
type Assignment struct {
	Element string `json:"element"`
	Attr    string `json:"attr"`
	Value   string `json:"value"`
}

// ControlError ties a replay failure to the declaration that caused it.
// Index is 1-based, matching the manifest's document order.
type ControlError struct {
	Index   int    `json:"index"`
	Element string `json:"element"`
	Err     string `json:"error"`
}

// attrRecorder captures the attribute write for one declaration.
type attrRecorder struct {
	name  string
	value string
}

func (rec *attrRecorder) SetAttr(name, value string) {
	rec.name = name
	rec.value = value
}

// replayManifest applies every declaration in document order against reg.
// Failing declarations are collected rather than aborting the replay, so a
// single pass reports every problem; registry state advances past failures
// exactly as it would in a live host.
func replayManifest(m *Manifest, reg *pairid.Registry) ([]Assignment, []ControlError) {
	idHandler := pairid.NewIDHandler(reg)
	forHandler := pairid.NewForHandler(reg)

	var assignments []Assignment
	var failures []ControlError

	for i := range m.Controls {
		c := &m.Controls[i]

		fail := func(err error) {
			failures = append(failures, ControlError{
				Index:   i + 1,
				Element: c.displayName(i),
				Err:     err.Error(),
			})
		}

		handler := idHandler
		switch c.Role {
		case "", RoleID:
		case RoleFor:
			handler = forHandler
		default:
			fail(fmt.Errorf("unknown role %q: must be %q or %q", c.Role, RoleID, RoleFor))
			continue
		}

		value, err := c.bindingValue()
		if err != nil {
			fail(err)
			continue
		}

		rec := &attrRecorder{}
		if _, err := handler.Apply(rec, value); err != nil {
			fail(err)
			continue
		}

		assignments = append(assignments, Assignment{
			Element: c.displayName(i),
			Attr:    rec.name,
			Value:   rec.value,
		})
	}

	return assignments, failures
}
