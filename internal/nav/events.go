package nav

// Event is a discrete user action delivered to the controller. The
// rendering layer constructs these from widget callbacks; tests build
// them directly.
type Event interface {
	event() // marker method
}

// Play moves from the main menu to profile selection.
type Play struct{}

func (Play) event() {}

// OpenOptions moves from the main menu to the options screen.
type OpenOptions struct{}

func (OpenOptions) event() {}

// ExitRequested leaves the application from the main menu.
type ExitRequested struct{}

func (ExitRequested) event() {}

// Back returns to the screen that pushed the current one.
type Back struct{}

func (Back) event() {}

// CreateProfileRequested opens the profile creation form.
type CreateProfileRequested struct{}

func (CreateProfileRequested) event() {}

// ProfileChosen marks a profile as the session-active one. The screen
// does not change; the out-of-scope game consumer reads the selection.
type ProfileChosen struct {
	ID int64
}

func (ProfileChosen) event() {}

// DeleteProfileRequested removes a profile from the select screen.
type DeleteProfileRequested struct {
	ID int64
}

func (DeleteProfileRequested) event() {}

// Cancel abandons the profile creation form.
type Cancel struct{}

func (Cancel) event() {}

// Submit attempts to create a profile with the entered nickname.
type Submit struct {
	Nickname string
}

func (Submit) event() {}

// VolumeChannel names one of the three mixer channels on the options
// screen.
type VolumeChannel string

const (
	ChannelMaster  VolumeChannel = "master"
	ChannelMusic   VolumeChannel = "music"
	ChannelEffects VolumeChannel = "effects"
)

// ChangeLanguage switches the display language.
type ChangeLanguage struct {
	Code string
}

func (ChangeLanguage) event() {}

// ChangeVolume sets one mixer channel.
type ChangeVolume struct {
	Channel VolumeChannel
	Value   int
}

func (ChangeVolume) event() {}

// SetFullscreen toggles fullscreen mode.
type SetFullscreen struct {
	On bool
}

func (SetFullscreen) event() {}

// SetResolution selects a window resolution.
type SetResolution struct {
	Value string
}

func (SetResolution) event() {}

// SetTextSize selects the accessibility text size.
type SetTextSize struct {
	Value int
}

func (SetTextSize) event() {}

// SetHighContrast toggles high-contrast mode.
type SetHighContrast struct {
	On bool
}

func (SetHighContrast) event() {}

// ResetSettings restores every setting to its default.
type ResetSettings struct{}

func (ResetSettings) event() {}
