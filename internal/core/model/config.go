package model

import (
	"errors"
	"fmt"
	"sort"
)

// MaxDuration is the longest countdown, in seconds, that still renders as MM:SS
// with two-digit minutes.
const MaxDuration = 5999

var (
	// ErrUnknownPreset indicates a preset name outside the enumerated list.
	ErrUnknownPreset = errors.New("unknown preset")
	// ErrUnknownTheme indicates a theme name outside the enumerated list.
	ErrUnknownTheme = errors.New("unknown theme")
)

// Glyphs are the tray labels for the idle and running states.
type Glyphs struct {
	Idle    string
	Running string
}

// NotificationCopy is the fixed text of the completion notification.
type NotificationCopy struct {
	Title string
	Body  string
}

// TimerConfig contains the settings the countdown runs with.
type TimerConfig struct {
	Duration     int
	Glyphs       Glyphs
	Notification NotificationCopy
}

// Validate reports whether the config can drive a countdown.
func (config TimerConfig) Validate() error {
	if config.Duration <= 0 || config.Duration > MaxDuration {
		return fmt.Errorf("validate config: duration %ds out of range 1..%d", config.Duration, MaxDuration)
	}
	if config.Glyphs.Idle == "" || config.Glyphs.Running == "" {
		return fmt.Errorf("validate config: glyphs must not be empty")
	}
	if config.Notification.Title == "" {
		return fmt.Errorf("validate config: notification title is empty")
	}
	return nil
}

// Preset is a named countdown length with its notification copy.
type Preset struct {
	Name         string
	Duration     int
	Notification NotificationCopy
}

// Theme is a named pair of glyphs.
type Theme struct {
	Name   string
	Glyphs Glyphs
}

const (
	PresetPomodoro   = "pomodoro"
	PresetShortBreak = "short-break"
	PresetLongBreak  = "long-break"
	PresetDemo       = "demo"

	ThemeMonkey = "monkey"
	ThemeTomato = "tomato"
	ThemePlain  = "plain"
)

var presets = map[string]Preset{
	PresetPomodoro: {
		Name:         PresetPomodoro,
		Duration:     25 * 60,
		Notification: NotificationCopy{Title: "SGSD", Body: "Time is up! Take a break :)"},
	},
	PresetShortBreak: {
		Name:         PresetShortBreak,
		Duration:     5 * 60,
		Notification: NotificationCopy{Title: "SGSD", Body: "Break is over. Back to it!"},
	},
	PresetLongBreak: {
		Name:         PresetLongBreak,
		Duration:     15 * 60,
		Notification: NotificationCopy{Title: "SGSD", Body: "Long break is over. Ready for another round?"},
	},
	PresetDemo: {
		Name:         PresetDemo,
		Duration:     5,
		Notification: NotificationCopy{Title: "SGSD", Body: "Time is up! Take a break :)"},
	},
}

var themes = map[string]Theme{
	ThemeMonkey: {Name: ThemeMonkey, Glyphs: Glyphs{Idle: "🙉", Running: "🙈"}},
	ThemeTomato: {Name: ThemeTomato, Glyphs: Glyphs{Idle: "🍅", Running: "⏳"}},
	ThemePlain:  {Name: ThemePlain, Glyphs: Glyphs{Idle: "SGSD", Running: "▶"}},
}

// LookupPreset returns the preset registered under name.
func LookupPreset(name string) (Preset, error) {
	preset, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("lookup preset %q: %w", name, ErrUnknownPreset)
	}
	return preset, nil
}

// LookupTheme returns the theme registered under name.
func LookupTheme(name string) (Theme, error) {
	theme, ok := themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("lookup theme %q: %w", name, ErrUnknownTheme)
	}
	return theme, nil
}

// PresetNames lists presets ordered by duration.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return presets[names[i]].Duration > presets[names[j]].Duration
	})
	return names
}

// ThemeNames lists themes alphabetically.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build combines a preset and a theme into a TimerConfig.
func Build(presetName, themeName string) (TimerConfig, error) {
	preset, err := LookupPreset(presetName)
	if err != nil {
		return TimerConfig{}, err
	}
	theme, err := LookupTheme(themeName)
	if err != nil {
		return TimerConfig{}, err
	}
	config := TimerConfig{
		Duration:     preset.Duration,
		Glyphs:       theme.Glyphs,
		Notification: preset.Notification,
	}
	return config, config.Validate()
}
