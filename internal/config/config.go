package config

import (
	"fmt"
	"strings"
)

// WindowConfig declares one managed spotlight window.
type WindowConfig struct {
	// Label identifies the window. On X11 it is matched against the
	// window's WM_CLASS (instance or class name); on Windows against the
	// window title.
	Label string `yaml:"label"`

	// Shortcut is the global key combination that toggles this window.
	// The string is passed to the platform toolkit as-is. Optional.
	Shortcut string `yaml:"shortcut,omitempty"`

	// AutoHide controls what happens when the window loses focus:
	// hide it (true, the default) or only notify the window so its
	// content can react.
	AutoHide *bool `yaml:"auto_hide,omitempty"`
}

// AutoHideEnabled resolves the auto_hide tri-state to its effective value.
func (w WindowConfig) AutoHideEnabled() bool {
	if w.AutoHide == nil {
		return true
	}
	return *w.AutoHide
}

// Config is the process-wide spotlightd configuration. It is built once at
// startup and never mutated afterwards.
type Config struct {
	// Windows lists the managed spotlight windows, in declaration order.
	Windows []WindowConfig `yaml:"windows,omitempty"`

	// GlobalCloseShortcut is a single key combination, shared across all
	// spotlight windows, that hides every registered window. It is kept
	// registered with the OS only while a spotlight window has focus.
	GlobalCloseShortcut string `yaml:"global_close_shortcut,omitempty"`

	// AdoptIntervalSeconds controls how often the daemon rescans for
	// configured windows that have not been adopted yet. 0 uses the
	// default (5 seconds).
	AdoptIntervalSeconds int `yaml:"adopt_interval_seconds,omitempty"`
}

// DefaultConfig returns the built-in configuration: no windows, no close
// shortcut. A config file is effectively required for the daemon to do
// anything useful, but an empty one is valid.
func DefaultConfig() *Config {
	return &Config{}
}

// Window returns the WindowConfig for label, if one is declared.
func (c *Config) Window(label string) (WindowConfig, bool) {
	for _, w := range c.Windows {
		if w.Label == label {
			return w, true
		}
	}
	return WindowConfig{}, false
}

// Labels returns the configured window labels in declaration order.
func (c *Config) Labels() []string {
	labels := make([]string, 0, len(c.Windows))
	for _, w := range c.Windows {
		labels = append(labels, w.Label)
	}
	return labels
}

// Validate checks the configuration for structural problems.
func (c *Config) Validate() error {
	seen := make(map[string]struct{}, len(c.Windows))
	for i, w := range c.Windows {
		label := strings.TrimSpace(w.Label)
		if label == "" {
			return fmt.Errorf("windows[%d]: label must not be empty", i)
		}
		if label != w.Label {
			return fmt.Errorf("windows[%d]: label %q has leading or trailing whitespace", i, w.Label)
		}
		if _, dup := seen[label]; dup {
			return fmt.Errorf("windows[%d]: duplicate label %q", i, label)
		}
		seen[label] = struct{}{}

		if w.Shortcut != "" && w.Shortcut == c.GlobalCloseShortcut {
			return fmt.Errorf("windows[%d]: shortcut %q collides with global_close_shortcut", i, w.Shortcut)
		}
	}

	if c.AdoptIntervalSeconds < 0 {
		return fmt.Errorf("adopt_interval_seconds must not be negative, got %d", c.AdoptIntervalSeconds)
	}

	return nil
}
