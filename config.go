package reveal

import (
	"strconv"
	"strings"
)

// Attribute values and defaults read from data-* attributes.
const (
	// TypewriterKind is the data-animation value that selects the typewriter.
	TypewriterKind = "type-loop"

	// TypingStringSeparator joins strings in data-typing-strings.
	TypingStringSeparator = "|"

	DefaultTypingString = "Hello!"
	DefaultStartDelayMs = 500
	DefaultTypeSpeedMs  = 80
	DefaultPauseMs      = 1500

	DefaultRevealOpacity    = 1.0
	DefaultRevealDurationMs = 500.0
	DefaultRevealEasing     = "power2.out"
	DefaultSplitting        = "words"

	TriggerView  = "view"
	TriggerHover = "hover"
)

// TypingConfig configures one typewriter element.
type TypingConfig struct {
	Strings []string `yaml:"strings"`

	// StartDelayMs is the wait after the element becomes visible, and also
	// the wait between erasing a string and typing the next one.
	StartDelayMs int `yaml:"delay"`
	TypeSpeedMs  int `yaml:"speed"`
	PauseMs      int `yaml:"pause"`

	StopOnFinish bool `yaml:"stop_on_pause"`
	Loop         bool `yaml:"loop"`
}

// DefaultTypingConfig returns the configuration of an element with no
// typewriter attributes.
func DefaultTypingConfig() TypingConfig {
	return TypingConfig{
		Strings:      []string{DefaultTypingString},
		StartDelayMs: DefaultStartDelayMs,
		TypeSpeedMs:  DefaultTypeSpeedMs,
		PauseMs:      DefaultPauseMs,
		Loop:         true,
	}
}

// ParseTypingConfig reads a TypingConfig from el's data attributes. It never
// fails: missing or malformed values fall back to their defaults.
func ParseTypingConfig(el Element) TypingConfig {
	cfg := DefaultTypingConfig()
	if s, ok := el.Data("typing-strings"); ok {
		cfg.Strings = strings.Split(s, TypingStringSeparator)
	}
	cfg.StartDelayMs = dataInt(el, "delay", DefaultStartDelayMs)
	cfg.TypeSpeedMs = dataInt(el, "speed", DefaultTypeSpeedMs)
	cfg.PauseMs = dataInt(el, "pause", DefaultPauseMs)

	stop, ok := el.Data("stoponpause")
	if !ok {
		stop, _ = el.Data("stop-on-pause")
	}
	cfg.StopOnFinish = stop == "true"

	if loop, ok := el.Data("loop"); ok && loop == "false" {
		cfg.Loop = false
	}
	return cfg
}

// RevealConfig configures one reveal-effect element.
type RevealConfig struct {
	Kind       string  `yaml:"kind"`
	Opacity    float64 `yaml:"opacity"`
	DelayMs    float64 `yaml:"delay"`
	DurationMs float64 `yaml:"duration"`
	Easing     string  `yaml:"easing"`

	// Splitting is the text-splitting unit ("chars", "words", "lines"), or
	// empty when the element is animated whole.
	Splitting string `yaml:"splitting,omitempty"`

	Trigger string `yaml:"trigger"`
	Once    bool   `yaml:"once"`
}

// ParseRevealConfig reads a RevealConfig from el's data attributes. Missing
// or malformed values fall back to their defaults.
func ParseRevealConfig(el Element) RevealConfig {
	cfg := RevealConfig{
		Opacity:    dataFloat(el, "opacity", DefaultRevealOpacity),
		DelayMs:    dataFloat(el, "delay", 0),
		DurationMs: dataFloat(el, "duration", DefaultRevealDurationMs),
		Easing:     DefaultRevealEasing,
		Trigger:    TriggerView,
	}
	cfg.Kind, _ = el.Data("animation")
	if v, ok := el.Data("easing"); ok && v != "" {
		cfg.Easing = v
	}
	if v, ok := el.Data("splitting"); ok {
		cfg.Splitting = v
		if v == "" {
			cfg.Splitting = DefaultSplitting
		}
	}
	if v, ok := el.Data("trigger"); ok && v != "" {
		cfg.Trigger = v
	}
	if v, ok := el.Data("once"); ok {
		cfg.Once = v == "true"
	}
	return cfg
}

// KnownTrigger reports whether Trigger names a trigger Bind can attach.
func (c RevealConfig) KnownTrigger() bool {
	return c.Trigger == TriggerView || c.Trigger == TriggerHover
}

func dataInt(el Element, key string, def int) int {
	s, ok := el.Data(key)
	if !ok {
		return def
	}
	n, ok := parseIntPrefix(s)
	if !ok {
		return def
	}
	if n < 0 {
		return 0
	}
	return n
}

func dataFloat(el Element, key string, def float64) float64 {
	s, ok := el.Data(key)
	if !ok {
		return def
	}
	f, ok := parseFloatPrefix(s)
	if !ok {
		return def
	}
	return f
}

// parseIntPrefix parses the leading base-10 integer of s the way
// JavaScript's parseInt does: leading whitespace and a sign are accepted and
// parsing stops at the first non-digit.
func parseIntPrefix(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r\f\v")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseFloatPrefix parses the longest leading decimal number of s, as
// JavaScript's parseFloat does.
func parseFloatPrefix(s string) (float64, bool) {
	s = strings.TrimLeft(s, " \t\n\r\f\v")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	mantissa := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
		mantissa++
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
			mantissa++
		}
	}
	if mantissa == 0 {
		return 0, false
	}
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '+' || s[exp] == '-') {
			exp++
		}
		start := exp
		for exp < len(s) && s[exp] >= '0' && s[exp] <= '9' {
			exp++
		}
		if exp > start {
			end = exp
		}
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
