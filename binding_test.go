package pairid

import (
	"errors"
	"testing"
)

// fakeElement records attribute writes for assertions.
type fakeElement struct {
	attrs map[string]string
}

func newFakeElement() *fakeElement {
	return &fakeElement{attrs: make(map[string]string)}
}

func (el *fakeElement) SetAttr(name, value string) {
	el.attrs[name] = value
}

func TestHandlerPairsControlWithLabel(t *testing.T) {
	r := New()
	idH := NewIDHandler(r)
	forH := NewForHandler(r)

	input := newFakeElement()
	label := newFakeElement()

	id, err := idH.Apply(input, "email")
	if err != nil {
		t.Fatalf("id apply failed: %v", err)
	}
	forID, err := forH.Apply(label, "email")
	if err != nil {
		t.Fatalf("for apply failed: %v", err)
	}

	if id != forID {
		t.Errorf("label got %q, want control id %q", forID, id)
	}
	if input.attrs["id"] != id {
		t.Errorf(`input "id" = %q, want %q`, input.attrs["id"], id)
	}
	if label.attrs["for"] != id {
		t.Errorf(`label "for" = %q, want %q`, label.attrs["for"], id)
	}
}

func TestHandlerDefaults(t *testing.T) {
	r := New()

	if got := NewIDHandler(r).Default(); got != AttrID {
		t.Errorf("id handler default = %q, want %q", got, AttrID)
	}
	if got := NewForHandler(r).Default(); got != AttrFor {
		t.Errorf("for handler default = %q, want %q", got, AttrFor)
	}
}

func TestHandlerExplicitAttrOverridesDefault(t *testing.T) {
	r := New()
	idH := NewIDHandler(r)

	el := newFakeElement()
	id, err := idH.Apply(el, map[string]any{"attr": "name", "prefix": "radio", "count": 3})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if el.attrs["name"] != id {
		t.Errorf(`element "name" = %q, want %q`, el.attrs["name"], id)
	}
	if _, ok := el.attrs["id"]; ok {
		t.Error(`element "id" was written, want only "name"`)
	}
}

func TestHandlerWritesNothingOnError(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantErr error
	}{
		{
			name:    "config error",
			value:   map[string]any{"attr": "href"},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "duplicate claim",
			value:   "email", // the setup below already claimed the id for this prefix
			wantErr: ErrDuplicateClaim,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			idH := NewIDHandler(r)

			if _, err := idH.Apply(newFakeElement(), map[string]any{"prefix": "email", "count": 3}); err != nil {
				t.Fatalf("setup apply failed: %v", err)
			}

			el := newFakeElement()
			if _, err := idH.Apply(el, tt.value); !errors.Is(err, tt.wantErr) {
				t.Fatalf("apply failed with %v, want %v", err, tt.wantErr)
			}
			if len(el.attrs) != 0 {
				t.Errorf("element attrs = %v, want no writes on error", el.attrs)
			}
		})
	}
}
