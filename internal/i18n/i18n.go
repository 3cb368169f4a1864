// Package i18n resolves display strings per language code. Built-in
// tables for the supported languages are embedded in the binary; a
// directory of per-language JSON files can override or extend them.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// FallbackLanguage supplies entries missing from another language's
// table before the lookup degrades to the literal key.
const FallbackLanguage = "en"

//go:embed locales/*.json
var embeddedLocales embed.FS

var displayNames = map[string]string{
	"en": "English",
	"es": "Español",
}

// Table holds one key→string map per loaded language code.
type Table struct {
	logger  *zap.Logger
	tables  map[string]map[string]string
	codes   []string // sorted, aligned with tags
	matcher language.Matcher
}

// Load builds the table from the embedded locales, then merges override
// files named <code>.json from overridesDir when the directory is set.
// Broken override files are logged and skipped; only a missing embedded
// fallback table is fatal.
func Load(overridesDir string, logger *zap.Logger) (*Table, error) {
	t := &Table{
		logger: logger,
		tables: make(map[string]map[string]string),
	}

	entries, err := fs.Glob(embeddedLocales, "locales/*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded locales: %w", err)
	}
	for _, path := range entries {
		code := strings.TrimSuffix(filepath.Base(path), ".json")
		data, err := fs.ReadFile(embeddedLocales, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded locale %s: %w", code, err)
		}
		table := make(map[string]string)
		if err := json.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("failed to parse embedded locale %s: %w", code, err)
		}
		t.tables[code] = table
	}

	if _, ok := t.tables[FallbackLanguage]; !ok {
		return nil, fmt.Errorf("fallback language %q has no embedded table", FallbackLanguage)
	}

	if overridesDir != "" {
		t.mergeOverrides(overridesDir)
	}

	for code := range t.tables {
		t.codes = append(t.codes, code)
	}
	sort.Strings(t.codes)

	tags := make([]language.Tag, len(t.codes))
	for i, code := range t.codes {
		tag, err := language.Parse(code)
		if err != nil {
			return nil, fmt.Errorf("locale code %q is not a valid language tag: %w", code, err)
		}
		tags[i] = tag
	}
	t.matcher = language.NewMatcher(tags)

	return t, nil
}

func (t *Table) mergeOverrides(dir string) {
	for code, table := range t.tables {
		path := filepath.Join(dir, code+".json")
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				t.logger.Warn("Locale override unreadable, skipping",
					zap.String("path", path),
					zap.Error(err))
			}
			continue
		}
		override := make(map[string]string)
		if err := json.Unmarshal(data, &override); err != nil {
			t.logger.Warn("Locale override malformed, skipping",
				zap.String("path", path),
				zap.Error(err))
			continue
		}
		for k, v := range override {
			table[k] = v
		}
		t.logger.Info("Locale overrides applied",
			zap.String("language", code),
			zap.Int("entries", len(override)))
	}
}

// Resolve returns the string for key in lang. A missing entry falls
// back to the fallback language, then to the literal key, so a missing
// translation degrades visibly instead of crashing the UI.
func (t *Table) Resolve(key, lang string) string {
	if table, ok := t.tables[lang]; ok {
		if s, ok := table[key]; ok {
			return s
		}
	}
	if lang != FallbackLanguage {
		if s, ok := t.tables[FallbackLanguage][key]; ok {
			return s
		}
	}
	return key
}

// Available returns the sorted set of language codes with a loaded table.
func (t *Table) Available() []string {
	out := make([]string, len(t.codes))
	copy(out, t.codes)
	return out
}

// Supported reports whether code has a loaded table.
func (t *Table) Supported(code string) bool {
	_, ok := t.tables[code]
	return ok
}

// Match maps an arbitrary language tag onto a loaded code, so "en-US"
// selects "en". Returns false when nothing acceptable is loaded.
func (t *Table) Match(code string) (string, bool) {
	tag, err := language.Parse(code)
	if err != nil {
		return "", false
	}
	_, idx, conf := t.matcher.Match(tag)
	if conf == language.No {
		return "", false
	}
	return t.codes[idx], true
}

// DisplayName returns the language's own name for itself, or the code
// when no name is known.
func (t *Table) DisplayName(code string) string {
	if name, ok := displayNames[code]; ok {
		return name
	}
	return code
}
