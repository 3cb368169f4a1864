package nav

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"chess-with-kaelith/internal/errs"
	"chess-with-kaelith/internal/i18n"
	"chess-with-kaelith/internal/profile"
	"chess-with-kaelith/internal/settings"
)

func newTestController(t *testing.T) *Controller {
	t.Helper()
	logger := zaptest.NewLogger(t)
	dir := t.TempDir()

	table, err := i18n.Load("", logger)
	if err != nil {
		t.Fatalf("i18n.Load failed: %v", err)
	}
	profiles := profile.NewStore(filepath.Join(dir, "profiles.json"), logger)
	st := settings.NewStore(filepath.Join(dir, "settings.json"), table.Available(), logger)

	return New(logger, profiles, st, table)
}

func dispatch(t *testing.T, c *Controller, evs ...Event) {
	t.Helper()
	for _, ev := range evs {
		if err := c.Dispatch(ev); err != nil {
			t.Fatalf("Dispatch(%T) failed: %v", ev, err)
		}
	}
}

func TestStartsOnMainMenu(t *testing.T) {
	c := newTestController(t)

	if c.Current() != ScreenMainMenu {
		t.Errorf("initial screen = %v, want main menu", c.Current())
	}
	if c.Depth() != 1 {
		t.Errorf("initial depth = %d, want 1", c.Depth())
	}
	if !c.Running() {
		t.Error("controller not running at start")
	}
}

func TestPlayThenBack(t *testing.T) {
	c := newTestController(t)

	dispatch(t, c, Play{})
	if c.Current() != ScreenProfileSelect {
		t.Fatalf("after Play: %v, want profile select", c.Current())
	}
	dispatch(t, c, Back{})
	if c.Current() != ScreenMainMenu {
		t.Errorf("after Back: %v, want main menu", c.Current())
	}
}

func TestCreateProfileCancelReturnsToSelect(t *testing.T) {
	c := newTestController(t)

	dispatch(t, c, Play{}, CreateProfileRequested{})
	if c.Current() != ScreenProfileCreate {
		t.Fatalf("after CreateProfileRequested: %v", c.Current())
	}
	dispatch(t, c, Cancel{})
	if c.Current() != ScreenProfileSelect {
		t.Errorf("after Cancel: %v, want profile select", c.Current())
	}
	// Strict stack discipline: one more Back reaches the main menu.
	dispatch(t, c, Back{})
	if c.Current() != ScreenMainMenu {
		t.Errorf("after Back: %v, want main menu", c.Current())
	}
}

func TestSubmitCreatesProfileAndPops(t *testing.T) {
	c := newTestController(t)

	dispatch(t, c, Play{}, CreateProfileRequested{}, Submit{Nickname: "Kael"})
	if c.Current() != ScreenProfileSelect {
		t.Errorf("after Submit: %v, want profile select", c.Current())
	}

	list := c.profiles.List()
	if len(list) != 1 || list[0].Nickname != "Kael" {
		t.Errorf("profile list = %+v, want one Kael", list)
	}
}

func TestSubmitDuplicateStaysOnForm(t *testing.T) {
	c := newTestController(t)

	var rules []string
	c.OnValidationFailed(func(rule string) { rules = append(rules, rule) })

	dispatch(t, c, Play{}, CreateProfileRequested{}, Submit{Nickname: "Kael"})
	dispatch(t, c, CreateProfileRequested{})

	err := c.Dispatch(Submit{Nickname: "Kael"})
	if !errs.IsValidation(err) {
		t.Fatalf("duplicate Submit = %v, want ValidationError", err)
	}
	if c.Current() != ScreenProfileCreate {
		t.Errorf("screen after rejected Submit: %v, want profile create", c.Current())
	}
	if len(rules) != 1 || rules[0] != "duplicate nickname" {
		t.Errorf("validation signal rules = %v, want [duplicate nickname]", rules)
	}
	if got := len(c.profiles.List()); got != 1 {
		t.Errorf("profile count after rejected Submit = %d, want 1", got)
	}
}

func TestProfileChosenSetsActiveWithoutNavigation(t *testing.T) {
	c := newTestController(t)

	dispatch(t, c, Play{}, CreateProfileRequested{}, Submit{Nickname: "Kael"})
	dispatch(t, c, ProfileChosen{ID: 1})

	if c.Current() != ScreenProfileSelect {
		t.Errorf("ProfileChosen changed screen to %v", c.Current())
	}
	active, ok := c.ActiveProfile()
	if !ok || active.Nickname != "Kael" {
		t.Errorf("active profile = %+v, %v; want Kael", active, ok)
	}
}

func TestProfileChosenUnknownID(t *testing.T) {
	c := newTestController(t)

	dispatch(t, c, Play{})
	if err := c.Dispatch(ProfileChosen{ID: 99}); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("ProfileChosen(99) = %v, want ErrNotFound", err)
	}
	if c.Current() != ScreenProfileSelect {
		t.Errorf("screen changed on failed selection: %v", c.Current())
	}
}

func TestDeleteProfileFromSelectScreen(t *testing.T) {
	c := newTestController(t)

	dispatch(t, c, Play{}, CreateProfileRequested{}, Submit{Nickname: "Kael"})
	dispatch(t, c, DeleteProfileRequested{ID: 1})
	if got := len(c.profiles.List()); got != 0 {
		t.Errorf("profile count after delete = %d, want 0", got)
	}
	if err := c.Dispatch(DeleteProfileRequested{ID: 1}); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}

func TestOptionsVolumeChange(t *testing.T) {
	c := newTestController(t)

	dispatch(t, c, OpenOptions{}, ChangeVolume{Channel: ChannelMusic, Value: 15})
	if got := c.settings.Current().MusicVolume; got != 15 {
		t.Errorf("music volume = %d, want 15", got)
	}
	dispatch(t, c, Back{})
	if c.Current() != ScreenMainMenu {
		t.Errorf("after Back from options: %v", c.Current())
	}
}

func TestOptionsRejectsOutOfRangeVolume(t *testing.T) {
	c := newTestController(t)

	var rules []string
	c.OnValidationFailed(func(rule string) { rules = append(rules, rule) })

	dispatch(t, c, OpenOptions{})
	if err := c.Dispatch(ChangeVolume{Channel: ChannelMaster, Value: 500}); !errs.IsValidation(err) {
		t.Fatalf("out-of-range volume = %v, want ValidationError", err)
	}
	if c.Current() != ScreenOptionsMenu {
		t.Errorf("screen changed on rejected volume: %v", c.Current())
	}
	if len(rules) != 1 {
		t.Errorf("validation signal fired %d times, want 1", len(rules))
	}
	if got := c.settings.Current().MasterVolume; got != settings.Defaults().MasterVolume {
		t.Errorf("master volume mutated to %d by rejected change", got)
	}
}

func TestLanguageChangeRefreshesText(t *testing.T) {
	c := newTestController(t)

	refreshed := 0
	c.OnTextRefreshed(func() { refreshed++ })

	if got := c.Text("play"); got != "Jugar" {
		t.Fatalf("default language text = %q, want Jugar", got)
	}

	dispatch(t, c, OpenOptions{}, ChangeLanguage{Code: "en"})
	if refreshed != 1 {
		t.Errorf("text refresh signal fired %d times, want 1", refreshed)
	}
	if got := c.Text("play"); got != "Play" {
		t.Errorf("text after language change = %q, want Play", got)
	}
	if got := c.settings.Current().Language; got != "en" {
		t.Errorf("persisted language = %q, want en", got)
	}
}

func TestLanguageChangeRejectsUnsupportedCode(t *testing.T) {
	c := newTestController(t)

	dispatch(t, c, OpenOptions{})
	if err := c.Dispatch(ChangeLanguage{Code: "fr"}); !errs.IsValidation(err) {
		t.Fatalf("unsupported language = %v, want ValidationError", err)
	}
	if got := c.Language(); got != settings.DefaultLanguage {
		t.Errorf("language changed to %q by rejected code", got)
	}
}

func TestResetSettingsRestoresLanguage(t *testing.T) {
	c := newTestController(t)

	dispatch(t, c, OpenOptions{}, ChangeLanguage{Code: "en"}, ResetSettings{})
	if got := c.settings.Current(); got != settings.Defaults() {
		t.Errorf("settings after reset = %+v, want defaults", got)
	}
	if got := c.Language(); got != settings.DefaultLanguage {
		t.Errorf("display language after reset = %q, want %q", got, settings.DefaultLanguage)
	}
}

func TestExitIsTerminal(t *testing.T) {
	c := newTestController(t)

	var screens []Screen
	c.OnScreenChanged(func(s Screen) { screens = append(screens, s) })

	dispatch(t, c, ExitRequested{})
	if c.Running() {
		t.Fatal("controller running after ExitRequested")
	}
	if c.Current() != ScreenExit {
		t.Fatalf("screen = %v, want exit", c.Current())
	}
	if len(screens) != 1 || screens[0] != ScreenExit {
		t.Errorf("screen change signals = %v, want [exit]", screens)
	}
	if err := c.Dispatch(Play{}); !errors.Is(err, ErrTerminated) {
		t.Errorf("Dispatch after exit = %v, want ErrTerminated", err)
	}
}

func TestEventsForOtherScreensIgnored(t *testing.T) {
	c := newTestController(t)

	// Options events on the main menu must neither transition nor fail.
	if err := c.Dispatch(ChangeVolume{Channel: ChannelMaster, Value: 10}); err != nil {
		t.Errorf("ignored event returned error: %v", err)
	}
	if err := c.Dispatch(Back{}); err != nil {
		t.Errorf("Back on main menu returned error: %v", err)
	}
	if c.Current() != ScreenMainMenu || c.Depth() != 1 {
		t.Errorf("state moved by inapplicable events: %v depth %d", c.Current(), c.Depth())
	}
	if got := c.settings.Current().MasterVolume; got != settings.Defaults().MasterVolume {
		t.Errorf("settings mutated by ignored event: %d", got)
	}
}

func TestRequestExitWorksFromAnyScreen(t *testing.T) {
	c := newTestController(t)

	dispatch(t, c, Play{}, CreateProfileRequested{})
	c.RequestExit()
	if c.Running() {
		t.Error("controller running after RequestExit")
	}
}

func TestScreenChangedSignalSequence(t *testing.T) {
	c := newTestController(t)

	var screens []Screen
	c.OnScreenChanged(func(s Screen) { screens = append(screens, s) })

	dispatch(t, c, Play{}, CreateProfileRequested{}, Cancel{}, Back{})

	want := []Screen{ScreenProfileSelect, ScreenProfileCreate, ScreenProfileSelect, ScreenMainMenu}
	if len(screens) != len(want) {
		t.Fatalf("signal sequence = %v, want %v", screens, want)
	}
	for i := range want {
		if screens[i] != want[i] {
			t.Errorf("signal[%d] = %v, want %v", i, screens[i], want[i])
		}
	}
}

func TestRunDrainsPostedEvents(t *testing.T) {
	c := newTestController(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	c.Post(Play{})
	c.Post(Back{})
	c.Post(ExitRequested{})

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after ExitRequested")
	}
	if c.Running() {
		t.Error("controller still running after Run returned")
	}
}
