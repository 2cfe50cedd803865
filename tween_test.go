package reveal

import "testing"

func TestCSSTransition(t *testing.T) {
	el := newFakeElement(map[string]string{"animation": "fade-up"})
	cfg := ParseRevealConfig(el)
	CSSTransition{}.Tween(el, cfg)

	if got, want := el.styles["transition"], "all 500ms ease-out 0ms"; got != want {
		t.Errorf("got transition %q, want %q", got, want)
	}
	if got := el.styles["opacity"]; got != "1" {
		t.Errorf("got opacity %q, want 1", got)
	}
	if !el.HasClass("reveal-fade-up") {
		t.Errorf("missing effect class, have %v", el.classes)
	}
	if len(el.classes) != 1 {
		t.Errorf("unexpected classes %v", el.classes)
	}
}

func TestCSSTransitionSplitting(t *testing.T) {
	el := newFakeElement(nil)
	CSSTransition{}.Tween(el, RevealConfig{
		Kind:       "blur-in",
		Opacity:    0.75,
		DelayMs:    120.5,
		DurationMs: 900,
		Easing:     "cubic-bezier(0.1, 0.7, 1, 0.1)",
		Splitting:  "chars",
	})
	if got, want := el.styles["transition"], "all 900ms cubic-bezier(0.1, 0.7, 1, 0.1) 120.5ms"; got != want {
		t.Errorf("got transition %q, want %q", got, want)
	}
	if got := el.styles["opacity"]; got != "0.75" {
		t.Errorf("got opacity %q", got)
	}
	if !el.HasClass("reveal-split-chars") {
		t.Errorf("missing split class, have %v", el.classes)
	}
}

func TestCSSEasing(t *testing.T) {
	for in, want := range map[string]string{
		"power2.out": "ease-out",
		"expo.in":    "ease-in",
		"sine.inOut": "ease-in-out",
		"none":       "linear",
		"ease":       "ease",
		"steps(4)":   "steps(4)",
	} {
		if got := cssEasing(in); got != want {
			t.Errorf("cssEasing(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTweenFunc(t *testing.T) {
	var got RevealConfig
	var tw Tweener = TweenFunc(func(_ Element, cfg RevealConfig) { got = cfg })
	tw.Tween(newFakeElement(nil), RevealConfig{Kind: "zoom-in"})
	if got.Kind != "zoom-in" {
		t.Fatalf("got %+v", got)
	}
}
