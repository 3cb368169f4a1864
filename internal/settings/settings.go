// Package settings owns the persisted user preferences record: audio,
// video, accessibility and language. Every field always holds a value
// inside its declared domain.
package settings

// Text sizes, smallest to largest.
const (
	TextSizeSmall  = 0
	TextSizeMedium = 1
	TextSizeLarge  = 2
)

// DefaultLanguage is the locale applied on first run and whenever a
// persisted language code is no longer supported.
const DefaultLanguage = "es"

// DefaultResolution must be a member of SupportedResolutions.
const DefaultResolution = "1280x720"

// SupportedResolutions is the fixed set of window sizes the options
// screen offers.
var SupportedResolutions = []string{
	"1280x720",
	"1600x900",
	"1920x1080",
	"2560x1440",
}

// Settings is the full preferences record as persisted on disk.
type Settings struct {
	Language      string `json:"language"`
	MasterVolume  int    `json:"master_volume"`
	MusicVolume   int    `json:"music_volume"`
	EffectsVolume int    `json:"effects_volume"`
	Fullscreen    bool   `json:"fullscreen"`
	Resolution    string `json:"resolution"`
	TextSize      int    `json:"text_size"`
	HighContrast  bool   `json:"high_contrast"`
}

// Defaults returns the record used on first run.
func Defaults() Settings {
	return Settings{
		Language:      DefaultLanguage,
		MasterVolume:  70,
		MusicVolume:   70,
		EffectsVolume: 80,
		Fullscreen:    false,
		Resolution:    DefaultResolution,
		TextSize:      TextSizeMedium,
		HighContrast:  false,
	}
}

// Patch carries the fields of a partial update. Nil pointers mean
// "leave unchanged".
type Patch struct {
	Language      *string
	MasterVolume  *int
	MusicVolume   *int
	EffectsVolume *int
	Fullscreen    *bool
	Resolution    *string
	TextSize      *int
	HighContrast  *bool
}

func volumeInRange(v int) bool {
	return v >= 0 && v <= 100
}

func textSizeInRange(v int) bool {
	return v >= TextSizeSmall && v <= TextSizeLarge
}

func resolutionSupported(r string) bool {
	for _, s := range SupportedResolutions {
		if s == r {
			return true
		}
	}
	return false
}
