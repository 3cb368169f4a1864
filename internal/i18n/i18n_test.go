package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"
)

func loadTable(t *testing.T) *Table {
	t.Helper()
	table, err := Load("", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return table
}

func TestResolveTranslated(t *testing.T) {
	table := loadTable(t)

	if got := table.Resolve("play", "es"); got != "Jugar" {
		t.Errorf(`Resolve("play", "es") = %q, want Jugar`, got)
	}
	if got := table.Resolve("play", "en"); got != "Play" {
		t.Errorf(`Resolve("play", "en") = %q, want Play`, got)
	}
}

func TestResolveFallsBackToEnglish(t *testing.T) {
	dir := t.TempDir()
	// Give English a key Spanish does not have.
	if err := os.WriteFile(filepath.Join(dir, "en.json"), []byte(`{"board_theme": "Board theme"}`), 0o644); err != nil {
		t.Fatalf("write override failed: %v", err)
	}

	table, err := Load(dir, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := table.Resolve("board_theme", "es"); got != "Board theme" {
		t.Errorf("missing Spanish entry did not fall back to English: %q", got)
	}
}

func TestResolveUnknownKeyReturnsKey(t *testing.T) {
	table := loadTable(t)

	if got := table.Resolve("no_such_key", "es"); got != "no_such_key" {
		t.Errorf("unknown key = %q, want literal key", got)
	}
	if got := table.Resolve("no_such_key", "zz"); got != "no_such_key" {
		t.Errorf("unknown language = %q, want literal key", got)
	}
}

func TestAvailable(t *testing.T) {
	table := loadTable(t)

	got := table.Available()
	want := []string{"en", "es"}
	if len(got) != len(want) {
		t.Fatalf("Available = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Available[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if !table.Supported("es") || table.Supported("fr") {
		t.Error("Supported gave wrong answers")
	}
}

func TestMatchRegionalVariant(t *testing.T) {
	table := loadTable(t)

	if code, ok := table.Match("en-US"); !ok || code != "en" {
		t.Errorf(`Match("en-US") = %q, %v; want en, true`, code, ok)
	}
	if code, ok := table.Match("es-MX"); !ok || code != "es" {
		t.Errorf(`Match("es-MX") = %q, %v; want es, true`, code, ok)
	}
	if _, ok := table.Match("zz"); ok {
		t.Error(`Match("zz") matched`)
	}
	if _, ok := table.Match("!!"); ok {
		t.Error("malformed tag matched")
	}
}

func TestOverridesReplaceEmbeddedEntries(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "es.json"), []byte(`{"play": "A jugar"}`), 0o644); err != nil {
		t.Fatalf("write override failed: %v", err)
	}

	table, err := Load(dir, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := table.Resolve("play", "es"); got != "A jugar" {
		t.Errorf("override not applied: %q", got)
	}
	// Untouched entries survive the merge.
	if got := table.Resolve("quit", "es"); got != "Salir" {
		t.Errorf("merge dropped embedded entry: %q", got)
	}
}

func TestBrokenOverrideSkipped(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "es.json"), []byte("{broken"), 0o644); err != nil {
		t.Fatalf("write override failed: %v", err)
	}

	table, err := Load(dir, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Load failed with broken override: %v", err)
	}
	if got := table.Resolve("play", "es"); got != "Jugar" {
		t.Errorf("embedded table damaged by broken override: %q", got)
	}
}

func TestDisplayName(t *testing.T) {
	table := loadTable(t)

	if got := table.DisplayName("es"); got != "Español" {
		t.Errorf(`DisplayName("es") = %q`, got)
	}
	if got := table.DisplayName("xx"); got != "xx" {
		t.Errorf("unknown code display name = %q, want code itself", got)
	}
}
