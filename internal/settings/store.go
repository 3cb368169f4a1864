package settings

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"chess-with-kaelith/internal/errs"
	"chess-with-kaelith/internal/storage"
)

// Store holds the in-memory Settings snapshot and writes every accepted
// change through to the document at path.
type Store struct {
	path      string
	languages []string
	logger    *zap.Logger
	current   Settings
}

// document mirrors Settings with optional fields so a load can tell a
// missing field from a present one and default each independently.
type document struct {
	Language      *string `json:"language"`
	MasterVolume  *int    `json:"master_volume"`
	MusicVolume   *int    `json:"music_volume"`
	EffectsVolume *int    `json:"effects_volume"`
	Fullscreen    *bool   `json:"fullscreen"`
	Resolution    *string `json:"resolution"`
	TextSize      *int    `json:"text_size"`
	HighContrast  *bool   `json:"high_contrast"`
}

// NewStore loads the document at path, merging defaults per field.
// languages is the set of locale codes the language field may hold.
// Loading never fails: a missing document means first run, a broken one
// degrades to defaults.
func NewStore(path string, languages []string, logger *zap.Logger) *Store {
	s := &Store{
		path:      path,
		languages: languages,
		logger:    logger,
		current:   Defaults(),
	}
	s.load()
	return s
}

func (s *Store) load() {
	var doc document
	if err := storage.LoadDocument(s.path, &doc); err != nil {
		// A type mismatch on one field still decodes the rest of the
		// document; that field stays nil and takes its default while
		// every other field is preserved.
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			s.fieldDefaulted(typeErr.Field, typeErr.Value)
			s.current = s.merge(doc)
			return
		}
		if !storage.IsNotExist(err) {
			s.logger.Warn("Settings document unreadable, using defaults",
				zap.String("path", s.path),
				zap.Error(err))
		}
		return
	}
	s.current = s.merge(doc)
}

// merge folds a loaded document over the defaults. Out-of-domain fields
// keep their default and are logged individually; the record as a whole
// is never rejected.
func (s *Store) merge(doc document) Settings {
	merged := Defaults()

	if doc.Language != nil {
		if s.languageSupported(*doc.Language) {
			merged.Language = *doc.Language
		} else {
			s.fieldDefaulted("language", *doc.Language)
		}
	}
	if doc.MasterVolume != nil {
		if volumeInRange(*doc.MasterVolume) {
			merged.MasterVolume = *doc.MasterVolume
		} else {
			s.fieldDefaulted("master_volume", *doc.MasterVolume)
		}
	}
	if doc.MusicVolume != nil {
		if volumeInRange(*doc.MusicVolume) {
			merged.MusicVolume = *doc.MusicVolume
		} else {
			s.fieldDefaulted("music_volume", *doc.MusicVolume)
		}
	}
	if doc.EffectsVolume != nil {
		if volumeInRange(*doc.EffectsVolume) {
			merged.EffectsVolume = *doc.EffectsVolume
		} else {
			s.fieldDefaulted("effects_volume", *doc.EffectsVolume)
		}
	}
	if doc.Fullscreen != nil {
		merged.Fullscreen = *doc.Fullscreen
	}
	if doc.Resolution != nil {
		if resolutionSupported(*doc.Resolution) {
			merged.Resolution = *doc.Resolution
		} else {
			s.fieldDefaulted("resolution", *doc.Resolution)
		}
	}
	if doc.TextSize != nil {
		if textSizeInRange(*doc.TextSize) {
			merged.TextSize = *doc.TextSize
		} else {
			s.fieldDefaulted("text_size", *doc.TextSize)
		}
	}
	if doc.HighContrast != nil {
		merged.HighContrast = *doc.HighContrast
	}

	return merged
}

func (s *Store) fieldDefaulted(field string, got any) {
	s.logger.Warn("Settings field out of domain, default substituted",
		zap.String("field", field),
		zap.Any("value", got))
}

func (s *Store) languageSupported(code string) bool {
	for _, l := range s.languages {
		if l == code {
			return true
		}
	}
	return false
}

// Current returns the in-memory snapshot. No I/O.
func (s *Store) Current() Settings {
	return s.current
}

// Save validates every field present in patch, merges it into the
// current record and persists the result. Out-of-domain values are
// rejected with a ValidationError rather than clamped, so the options
// screen can surface feedback. On a write fault the merged record stays
// in memory and the fault is returned so the user may retry.
func (s *Store) Save(patch Patch) (Settings, error) {
	if err := s.validate(patch); err != nil {
		return s.current, err
	}

	merged := s.current
	if patch.Language != nil {
		merged.Language = *patch.Language
	}
	if patch.MasterVolume != nil {
		merged.MasterVolume = *patch.MasterVolume
	}
	if patch.MusicVolume != nil {
		merged.MusicVolume = *patch.MusicVolume
	}
	if patch.EffectsVolume != nil {
		merged.EffectsVolume = *patch.EffectsVolume
	}
	if patch.Fullscreen != nil {
		merged.Fullscreen = *patch.Fullscreen
	}
	if patch.Resolution != nil {
		merged.Resolution = *patch.Resolution
	}
	if patch.TextSize != nil {
		merged.TextSize = *patch.TextSize
	}
	if patch.HighContrast != nil {
		merged.HighContrast = *patch.HighContrast
	}

	s.current = merged
	if err := s.persist(); err != nil {
		return s.current, err
	}
	return s.current, nil
}

func (s *Store) validate(patch Patch) error {
	if patch.Language != nil && !s.languageSupported(*patch.Language) {
		return errs.Validation("language", "unsupported language",
			fmt.Sprintf("language %q is not supported", *patch.Language))
	}
	if patch.MasterVolume != nil && !volumeInRange(*patch.MasterVolume) {
		return errs.Validation("master_volume", "volume out of range",
			fmt.Sprintf("master volume %d outside [0,100]", *patch.MasterVolume))
	}
	if patch.MusicVolume != nil && !volumeInRange(*patch.MusicVolume) {
		return errs.Validation("music_volume", "volume out of range",
			fmt.Sprintf("music volume %d outside [0,100]", *patch.MusicVolume))
	}
	if patch.EffectsVolume != nil && !volumeInRange(*patch.EffectsVolume) {
		return errs.Validation("effects_volume", "volume out of range",
			fmt.Sprintf("effects volume %d outside [0,100]", *patch.EffectsVolume))
	}
	if patch.Resolution != nil && !resolutionSupported(*patch.Resolution) {
		return errs.Validation("resolution", "unsupported resolution",
			fmt.Sprintf("resolution %q is not supported", *patch.Resolution))
	}
	if patch.TextSize != nil && !textSizeInRange(*patch.TextSize) {
		return errs.Validation("text_size", "text size out of range",
			fmt.Sprintf("text size %d outside [%d,%d]", *patch.TextSize, TextSizeSmall, TextSizeLarge))
	}
	return nil
}

// Reset restores every field to its default and persists.
func (s *Store) Reset() (Settings, error) {
	s.current = Defaults()
	if err := s.persist(); err != nil {
		return s.current, err
	}
	return s.current, nil
}

// Flush re-persists the current record. Used as a retry barrier after a
// save reported a write fault.
func (s *Store) Flush() error {
	return s.persist()
}

func (s *Store) persist() error {
	if err := storage.SaveDocument(s.path, s.current); err != nil {
		s.logger.Error("Failed to persist settings",
			zap.String("path", s.path),
			zap.Error(err))
		return err
	}
	return nil
}
