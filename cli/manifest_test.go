package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/calque-ui/pairid"
	"github.com/calque-ui/pairid/internal/token"
)

const pairManifest = `controls:
  - element: "input.email"
    role: id
    binding: email
  - element: "label.email"
    role: for
    binding: email
  - element: "input.search"
    binding: { count: 1 }
`

func loadTestManifest(t *testing.T, content string) *Manifest {
	t.Helper()

	path := filepath.Join(t.TempDir(), "form.yaml")
	writeFile(t, path, content)

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest() failed: %v", err)
	}
	return m
}

func TestLoadManifest(t *testing.T) {
	m := loadTestManifest(t, pairManifest)

	if len(m.Controls) != 3 {
		t.Fatalf("parsed %d controls, want 3", len(m.Controls))
	}

	if m.Controls[0].Role != RoleID || m.Controls[1].Role != RoleFor {
		t.Errorf("roles = [%q %q], want [id for]", m.Controls[0].Role, m.Controls[1].Role)
	}

	// String shorthand decodes to a string, the map form to map[string]any.
	v, err := m.Controls[0].bindingValue()
	if err != nil {
		t.Fatalf("bindingValue() failed: %v", err)
	}
	if v != "email" {
		t.Errorf("binding = %#v, want %q", v, "email")
	}

	v, err = m.Controls[2].bindingValue()
	if err != nil {
		t.Fatalf("bindingValue() failed: %v", err)
	}
	mv, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("binding = %T, want map[string]any", v)
	}
	if mv["count"] != 1 {
		t.Errorf(`binding["count"] = %#v, want 1`, mv["count"])
	}
}

func TestLoadManifestMissingFile(t *testing.T) {
	if _, err := LoadManifest(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("LoadManifest() succeeded, want read error")
	}
}

func TestLoadManifestBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, path, "controls: [\n")

	if _, err := LoadManifest(path); err == nil {
		t.Fatal("LoadManifest() succeeded, want parse error")
	}
}

func TestReplayManifestPairsLabels(t *testing.T) {
	m := loadTestManifest(t, pairManifest)
	reg := pairid.New(pairid.WithTokenSource(token.Seeded(1)))

	assignments, failures := replayManifest(m, reg)
	if len(failures) != 0 {
		t.Fatalf("replay failed: %+v", failures)
	}
	if len(assignments) != 3 {
		t.Fatalf("got %d assignments, want 3", len(assignments))
	}

	input, label := assignments[0], assignments[1]
	if input.Attr != "id" || label.Attr != "for" {
		t.Errorf("attrs = [%q %q], want [id for]", input.Attr, label.Attr)
	}
	if input.Value != label.Value {
		t.Errorf("label for = %q, want control id %q", label.Value, input.Value)
	}
	if !strings.HasPrefix(input.Value, "email") {
		t.Errorf("control id = %q, want %q prefix", input.Value, "email")
	}

	if assignments[2].Element != "input.search" || assignments[2].Attr != "id" {
		t.Errorf("third assignment = %+v, want input.search/id", assignments[2])
	}
}

func TestReplayManifestCollectsFailures(t *testing.T) {
	m := loadTestManifest(t, `controls:
  - element: "a"
    binding: { prefix: dup, count: 3 }
  - element: "b"
    binding: { prefix: dup }
  - element: "c"
    role: label
  - element: "d"
    binding: { attr: href }
  - element: "e"
    role: for
    binding: { prefix: dup }
`)

	reg := pairid.New()
	assignments, failures := replayManifest(m, reg)

	// a succeeds; b repeats the id claim; c has a bad role; d a bad attr;
	// e still pairs against a's entry because the replay keeps going.
	if len(assignments) != 2 {
		t.Fatalf("got %d assignments, want 2: %+v", len(assignments), assignments)
	}
	if len(failures) != 3 {
		t.Fatalf("got %d failures, want 3: %+v", len(failures), failures)
	}

	wantIndex := []int{2, 3, 4}
	for i, f := range failures {
		if f.Index != wantIndex[i] {
			t.Errorf("failure %d at control %d, want %d", i, f.Index, wantIndex[i])
		}
	}

	if !strings.Contains(failures[0].Err, "already claimed") {
		t.Errorf("failure 0 = %q, want duplicate claim", failures[0].Err)
	}
	if !strings.Contains(failures[1].Err, "unknown role") {
		t.Errorf("failure 1 = %q, want unknown role", failures[1].Err)
	}
	if !strings.Contains(failures[2].Err, "invalid attr") {
		t.Errorf("failure 2 = %q, want invalid attr", failures[2].Err)
	}
}

func TestUnusedBudgets(t *testing.T) {
	m := loadTestManifest(t, `controls:
  - element: "input.email"
    binding: { prefix: email, count: 4 }
`)

	reg := pairid.New()
	if _, failures := replayManifest(m, reg); len(failures) != 0 {
		t.Fatalf("replay failed: %+v", failures)
	}

	unused := unusedBudgets(reg)
	if len(unused) != 1 {
		t.Fatalf("got %d unused budgets, want 1", len(unused))
	}
	if unused[0].Prefix != "email" || unused[0].Remaining != 3 {
		t.Errorf("unused = %+v, want email/3", unused[0])
	}
}

func TestControlDisplayName(t *testing.T) {
	named := &Control{Element: "input.email"}
	if got := named.displayName(0); got != "input.email" {
		t.Errorf("displayName() = %q, want %q", got, "input.email")
	}

	anon := &Control{}
	if got := anon.displayName(2); got != "control 3" {
		t.Errorf("displayName() = %q, want %q", got, "control 3")
	}
}
