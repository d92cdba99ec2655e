package model

import (
	"errors"
	"fmt"
	"strings"
)

// Language is the target language chosen in the settings panel.
type Language string

const (
	LanguageEnglish Language = "English"
	LanguageFrench  Language = "French"
	LanguageHindi   Language = "Hindi"
)

// Languages lists the selectable languages in display order.
var Languages = []Language{LanguageEnglish, LanguageFrench, LanguageHindi}

// ErrUnknownLanguage is returned for a language outside Languages.
var ErrUnknownLanguage = errors.New("unknown language")

// ParseLanguage matches s case-insensitively against Languages.
func ParseLanguage(s string) (Language, error) {
	for _, l := range Languages {
		if strings.EqualFold(strings.TrimSpace(s), string(l)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
}

// Bounds is an inclusive integer range with a default value.
type Bounds struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Default int `json:"default"`
}

// Contains reports whether v lies within the bounds.
func (b Bounds) Contains(v int) bool {
	return v >= b.Min && v <= b.Max
}

var (
	MaxLengthBounds = Bounds{Min: 50, Max: 500, Default: 150}
	MinLengthBounds = Bounds{Min: 10, Max: 100, Default: 50}
)

// Settings are the per-request summary settings.
type Settings struct {
	Language  Language `json:"language"`
	MaxLength int      `json:"max_length"`
	MinLength int      `json:"min_length"`
}

// DefaultSettings returns the settings shown before the user changes anything.
func DefaultSettings() Settings {
	return Settings{
		Language:  LanguageEnglish,
		MaxLength: MaxLengthBounds.Default,
		MinLength: MinLengthBounds.Default,
	}
}

// Validate checks every field against its bounds. A minimum larger than the
// maximum is rejected rather than forwarded to the model.
func (s Settings) Validate() error {
	if _, err := ParseLanguage(string(s.Language)); err != nil {
		return err
	}
	if !MaxLengthBounds.Contains(s.MaxLength) {
		return fmt.Errorf("maximum summary length must be between %d and %d", MaxLengthBounds.Min, MaxLengthBounds.Max)
	}
	if !MinLengthBounds.Contains(s.MinLength) {
		return fmt.Errorf("minimum summary length must be between %d and %d", MinLengthBounds.Min, MinLengthBounds.Max)
	}
	if s.MinLength > s.MaxLength {
		return fmt.Errorf("minimum summary length (%d) must not exceed maximum summary length (%d)", s.MinLength, s.MaxLength)
	}
	return nil
}

// SettingsOptions describes the settings panel: choices, bounds and defaults.
type SettingsOptions struct {
	Languages []Language `json:"languages"`
	MaxLength Bounds     `json:"max_length"`
	MinLength Bounds     `json:"min_length"`
	Defaults  Settings   `json:"defaults"`
}

// Options returns the settings panel description.
func Options() SettingsOptions {
	return SettingsOptions{
		Languages: Languages,
		MaxLength: MaxLengthBounds,
		MinLength: MinLengthBounds,
		Defaults:  DefaultSettings(),
	}
}
