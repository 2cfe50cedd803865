package reveal

import (
	"strconv"
	"strings"
)

// Tweener plays the reveal effect described by cfg on el. Effect property
// tables and easing curves belong to the Tweener.
type Tweener interface {
	Tween(el Element, cfg RevealConfig)
}

// TweenFunc adapts a function to the Tweener interface.
type TweenFunc func(el Element, cfg RevealConfig)

// Tween calls f(el, cfg).
func (f TweenFunc) Tween(el Element, cfg RevealConfig) { f(el, cfg) }

// CSSTransition is a Tweener that leaves the motion to the stylesheet: it
// sets an opacity transition with the configured timing, marks the element
// with a reveal-<kind> class and sets the target opacity.
type CSSTransition struct{}

// Tween implements Tweener.
func (CSSTransition) Tween(el Element, cfg RevealConfig) {
	el.SetStyle("transition", cssTransition(cfg))
	if cfg.Kind != "" {
		el.AddClass("reveal-" + cfg.Kind)
	}
	if cfg.Splitting != "" {
		el.AddClass("reveal-split-" + cfg.Splitting)
	}
	el.SetStyle("opacity", formatFloat(cfg.Opacity))
}

func cssTransition(cfg RevealConfig) string {
	var sb strings.Builder
	sb.WriteString("all ")
	sb.WriteString(formatFloat(cfg.DurationMs))
	sb.WriteString("ms ")
	sb.WriteString(cssEasing(cfg.Easing))
	sb.WriteString(" ")
	sb.WriteString(formatFloat(cfg.DelayMs))
	sb.WriteString("ms")
	return sb.String()
}

// cssEasing maps tween-engine easing names to the nearest CSS timing
// function. Names CSS already understands pass through.
func cssEasing(name string) string {
	switch {
	case strings.HasSuffix(name, ".out"):
		return "ease-out"
	case strings.HasSuffix(name, ".in"):
		return "ease-in"
	case strings.HasSuffix(name, ".inOut"):
		return "ease-in-out"
	case name == "none":
		return "linear"
	}
	return name
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
