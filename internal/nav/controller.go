// Package nav owns the screen stack and dispatches user events. Every
// transition is a pure function of (current screen, event); the stack
// is never empty and the main menu sits at the bottom, so repeated Back
// always reaches it.
package nav

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"chess-with-kaelith/internal/errs"
	"chess-with-kaelith/internal/i18n"
	"chess-with-kaelith/internal/profile"
	"chess-with-kaelith/internal/settings"
)

// ErrTerminated is returned for events dispatched after the controller
// reached the terminal exit state.
var ErrTerminated = errors.New("navigation controller terminated")

const eventQueueSize = 64

// Controller is the top-level navigation state machine. All methods
// must be called from a single goroutine; each dispatched event runs to
// completion before the next.
type Controller struct {
	logger   *zap.Logger
	profiles *profile.Store
	settings *settings.Store
	table    *i18n.Table

	stack    []Screen
	handlers map[Screen]screenHandler
	language string

	queue chan Event

	screenChanged    []func(Screen)
	textRefreshed    []func()
	validationFailed []func(rule string)
}

// New builds a controller showing the main menu, with the display
// language taken from the persisted settings.
func New(logger *zap.Logger, profiles *profile.Store, st *settings.Store, table *i18n.Table) *Controller {
	c := &Controller{
		logger:   logger,
		profiles: profiles,
		settings: st,
		table:    table,
		stack:    []Screen{ScreenMainMenu},
		queue:    make(chan Event, eventQueueSize),
	}
	c.handlers = map[Screen]screenHandler{
		ScreenMainMenu:      mainMenuScreen{},
		ScreenProfileSelect: profileSelectScreen{},
		ScreenProfileCreate: profileCreateScreen{},
		ScreenOptionsMenu:   optionsScreen{},
		ScreenExit:          exitScreen{},
	}

	lang := st.Current().Language
	if !table.Supported(lang) {
		if matched, ok := table.Match(lang); ok {
			lang = matched
		} else {
			lang = i18n.FallbackLanguage
		}
		logger.Warn("Persisted language unsupported, substituted",
			zap.String("persisted", st.Current().Language),
			zap.String("using", lang))
	}
	c.language = lang

	return c
}

// OnScreenChanged registers a rendering-boundary callback fired after
// every push, pop and exit with the new top of the stack.
func (c *Controller) OnScreenChanged(fn func(Screen)) {
	c.screenChanged = append(c.screenChanged, fn)
}

// OnTextRefreshed registers a callback fired after a language change so
// the renderer re-resolves every displayed string.
func (c *Controller) OnTextRefreshed(fn func()) {
	c.textRefreshed = append(c.textRefreshed, fn)
}

// OnValidationFailed registers a callback fired with the violated rule
// name whenever user input is rejected.
func (c *Controller) OnValidationFailed(fn func(rule string)) {
	c.validationFailed = append(c.validationFailed, fn)
}

// Current returns the visible screen.
func (c *Controller) Current() Screen {
	return c.stack[len(c.stack)-1]
}

// Depth returns the screen stack depth.
func (c *Controller) Depth() int {
	return len(c.stack)
}

// Running reports whether the controller has not yet reached exit.
func (c *Controller) Running() bool {
	return c.Current() != ScreenExit
}

// Language returns the active display language code.
func (c *Controller) Language() string {
	return c.language
}

// Text resolves key in the active display language.
func (c *Controller) Text(key string) string {
	return c.table.Resolve(key, c.language)
}

// ActiveProfile returns the session-active profile, if one was chosen.
func (c *Controller) ActiveProfile() (profile.Profile, bool) {
	return c.profiles.Active()
}

// Dispatch delivers one event to the current screen and runs it to
// completion. Events that do not apply to the current screen are
// ignored. Validation failures leave the stack unchanged and are
// returned so the originating screen can surface them.
func (c *Controller) Dispatch(ev Event) error {
	if !c.Running() {
		return ErrTerminated
	}

	current := c.Current()
	handled, err := c.handlers[current].onEvent(c, ev)
	if !handled {
		c.logger.Debug("Event not applicable to screen",
			zap.String("screen", current.String()),
			zap.Any("event", ev))
		return nil
	}
	return err
}

// Post enqueues an event for Run. It never blocks; events beyond the
// queue capacity are dropped with a warning, matching a UI loop that is
// wedged anyway if 64 inputs are pending.
func (c *Controller) Post(ev Event) {
	select {
	case c.queue <- ev:
	default:
		c.logger.Warn("Event queue full, dropping event", zap.Any("event", ev))
	}
}

// Run drains posted events until the controller exits or ctx is
// cancelled. It is the single logical thread of control: each handler
// finishes before the next event is taken.
func (c *Controller) Run(ctx context.Context) {
	c.logger.Info("Navigation controller started",
		zap.String("screen", c.Current().String()),
		zap.String("language", c.language))
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Navigation controller stopping", zap.Error(ctx.Err()))
			return
		case ev := <-c.queue:
			if err := c.Dispatch(ev); err != nil && !errs.IsValidation(err) {
				c.logger.Error("Event handling failed",
					zap.Any("event", ev),
					zap.Error(err))
			}
			if !c.Running() {
				return
			}
		}
	}
}

// RequestExit is the host window system's close signal. Unlike the
// ExitRequested menu event it applies on any screen.
func (c *Controller) RequestExit() {
	if !c.Running() {
		return
	}
	c.terminate()
}

func (c *Controller) push(s Screen) {
	c.handlers[c.Current()].onExit(c)
	c.stack = append(c.stack, s)
	c.handlers[s].onEnter(c)
	c.emitScreenChanged(s)
}

func (c *Controller) pop() {
	if len(c.stack) <= 1 {
		return // main menu has no predecessor
	}
	top := c.Current()
	c.handlers[top].onExit(c)
	c.stack = c.stack[:len(c.stack)-1]
	revealed := c.Current()
	c.handlers[revealed].onEnter(c)
	c.emitScreenChanged(revealed)
}

// terminate replaces the whole stack with the terminal exit state,
// flushing settings first so they reach disk before events stop being
// accepted.
func (c *Controller) terminate() {
	c.handlers[c.Current()].onExit(c)
	if err := c.settings.Flush(); err != nil {
		c.logger.Error("Failed to flush settings on exit", zap.Error(err))
	}
	c.stack = []Screen{ScreenExit}
	c.handlers[ScreenExit].onEnter(c)
	c.emitScreenChanged(ScreenExit)
}

func (c *Controller) emitScreenChanged(s Screen) {
	c.logger.Info("Screen changed", zap.String("screen", s.String()))
	for _, fn := range c.screenChanged {
		fn(s)
	}
}

func (c *Controller) emitTextRefreshed() {
	for _, fn := range c.textRefreshed {
		fn()
	}
}

func (c *Controller) reportValidation(err error) {
	ve := errs.AsValidation(err)
	if ve == nil {
		return
	}
	c.logger.Info("Input rejected",
		zap.String("field", ve.Field),
		zap.String("rule", ve.Rule))
	for _, fn := range c.validationFailed {
		fn(ve.Rule)
	}
}

// saveSettings forwards a patch to the settings store and routes
// validation failures to the validation signal.
func (c *Controller) saveSettings(patch settings.Patch) error {
	if _, err := c.settings.Save(patch); err != nil {
		if errs.IsValidation(err) {
			c.reportValidation(err)
		}
		return err
	}
	return nil
}

// applyLanguage persists the new language and refreshes displayed text.
// A write fault still applies the language in memory; only a rejected
// code leaves the display untouched.
func (c *Controller) applyLanguage(code string) error {
	err := c.saveSettings(settings.Patch{Language: &code})
	if errs.IsValidation(err) {
		return err
	}
	c.setLanguage(code)
	return err
}

func (c *Controller) setLanguage(code string) {
	if code == c.language {
		return
	}
	c.language = code
	c.logger.Info("Language changed", zap.String("language", code))
	c.emitTextRefreshed()
}
