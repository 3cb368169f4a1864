package nav

import (
	"errors"

	"go.uber.org/zap"

	"chess-with-kaelith/internal/errs"
	"chess-with-kaelith/internal/settings"
)

// Screen identifies one navigable UI state.
type Screen int

const (
	ScreenMainMenu Screen = iota
	ScreenProfileSelect
	ScreenProfileCreate
	ScreenOptionsMenu
	ScreenExit // terminal
)

func (s Screen) String() string {
	switch s {
	case ScreenMainMenu:
		return "main_menu"
	case ScreenProfileSelect:
		return "profile_select"
	case ScreenProfileCreate:
		return "profile_create"
	case ScreenOptionsMenu:
		return "options"
	case ScreenExit:
		return "exit"
	default:
		return "unknown"
	}
}

// screenHandler is the per-screen capability set. onEvent reports
// whether the event applies to this screen at all; unhandled events are
// ignored by the controller rather than treated as errors.
type screenHandler interface {
	onEnter(c *Controller)
	onEvent(c *Controller, ev Event) (handled bool, err error)
	onExit(c *Controller)
}

type mainMenuScreen struct{}

func (mainMenuScreen) onEnter(c *Controller) {
	c.logger.Debug("Entered main menu")
}

func (mainMenuScreen) onExit(*Controller) {}

func (mainMenuScreen) onEvent(c *Controller, ev Event) (bool, error) {
	switch ev.(type) {
	case Play:
		c.push(ScreenProfileSelect)
		return true, nil
	case OpenOptions:
		c.push(ScreenOptionsMenu)
		return true, nil
	case ExitRequested:
		c.terminate()
		return true, nil
	}
	return false, nil
}

type profileSelectScreen struct{}

func (profileSelectScreen) onEnter(c *Controller) {
	c.logger.Debug("Entered profile select",
		zap.Int("profiles", c.profiles.Count()))
}

func (profileSelectScreen) onExit(*Controller) {}

func (profileSelectScreen) onEvent(c *Controller, ev Event) (bool, error) {
	switch ev := ev.(type) {
	case Back:
		c.pop()
		return true, nil
	case CreateProfileRequested:
		c.push(ScreenProfileCreate)
		return true, nil
	case ProfileChosen:
		if err := c.profiles.SetActive(ev.ID); err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				c.logger.Warn("Chosen profile does not exist", zap.Int64("id", ev.ID))
			}
			return true, err
		}
		c.logger.Info("Profile selected", zap.Int64("id", ev.ID))
		return true, nil
	case DeleteProfileRequested:
		if err := c.profiles.Delete(ev.ID); err != nil {
			return true, err
		}
		return true, nil
	}
	return false, nil
}

type profileCreateScreen struct{}

func (profileCreateScreen) onEnter(c *Controller) {
	c.logger.Debug("Entered profile create")
}

func (profileCreateScreen) onExit(*Controller) {}

func (profileCreateScreen) onEvent(c *Controller, ev Event) (bool, error) {
	switch ev := ev.(type) {
	case Cancel:
		c.pop()
		return true, nil
	case Submit:
		p, err := c.profiles.Create(ev.Nickname)
		if errs.IsValidation(err) {
			// Stay on the form so the user can correct the nickname.
			c.reportValidation(err)
			return true, err
		}
		// The profile exists; pop back to the select screen where it is
		// now visible. A write fault still propagates so the renderer
		// can offer a retry.
		c.logger.Info("Profile created from form",
			zap.Int64("id", p.ID),
			zap.String("nickname", p.Nickname))
		c.pop()
		return true, err
	}
	return false, nil
}

type optionsScreen struct{}

func (optionsScreen) onEnter(c *Controller) {
	c.logger.Debug("Entered options", zap.Any("settings", c.settings.Current()))
}

func (optionsScreen) onExit(*Controller) {}

func (optionsScreen) onEvent(c *Controller, ev Event) (bool, error) {
	switch ev := ev.(type) {
	case Back:
		// Settings are written through on every change; the flush only
		// matters when an earlier save reported a write fault.
		err := c.settings.Flush()
		c.pop()
		return true, err
	case ChangeLanguage:
		return true, c.applyLanguage(ev.Code)
	case ChangeVolume:
		patch, err := volumePatch(ev)
		if err != nil {
			c.reportValidation(err)
			return true, err
		}
		return true, c.saveSettings(patch)
	case SetFullscreen:
		return true, c.saveSettings(settings.Patch{Fullscreen: &ev.On})
	case SetResolution:
		return true, c.saveSettings(settings.Patch{Resolution: &ev.Value})
	case SetTextSize:
		return true, c.saveSettings(settings.Patch{TextSize: &ev.Value})
	case SetHighContrast:
		return true, c.saveSettings(settings.Patch{HighContrast: &ev.On})
	case ResetSettings:
		cur, err := c.settings.Reset()
		if err != nil {
			return true, err
		}
		c.setLanguage(cur.Language)
		return true, nil
	}
	return false, nil
}

func volumePatch(ev ChangeVolume) (settings.Patch, error) {
	v := ev.Value
	switch ev.Channel {
	case ChannelMaster:
		return settings.Patch{MasterVolume: &v}, nil
	case ChannelMusic:
		return settings.Patch{MusicVolume: &v}, nil
	case ChannelEffects:
		return settings.Patch{EffectsVolume: &v}, nil
	default:
		return settings.Patch{}, errs.Validation("channel", "unknown channel",
			"unknown volume channel "+string(ev.Channel))
	}
}

type exitScreen struct{}

func (exitScreen) onEnter(c *Controller) {
	c.logger.Info("Reached exit state")
}

func (exitScreen) onExit(*Controller) {}

func (exitScreen) onEvent(*Controller, Event) (bool, error) {
	return false, nil
}
