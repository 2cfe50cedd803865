package reveal

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"
)

func TestBindTypewriterStartsOnFirstVisibility(t *testing.T) {
	host := NewManualHost(10)
	el := newFakeElement(map[string]string{
		"animation":      "type-loop",
		"typing-strings": "Hi",
		"loop":           "false",
		"stoponpause":    "true",
		"delay":          "100",
		"speed":          "20",
	})
	b := BindTypewriter(el, host.Host())

	if el.styles["opacity"] != "0" {
		t.Fatalf("bound element not hidden: %v", el.styles)
	}
	host.Advance(500)
	if len(el.texts) != 0 {
		t.Fatalf("rendered %q before becoming visible", el.texts)
	}

	host.Intersect(el, 0.3)
	if el.HasClass(AnimatedClass) || host.PendingTimers() != 0 {
		t.Fatal("started below the visibility threshold")
	}
	host.Intersect(el, 0.6)
	if el.styles["opacity"] != "1" || !el.HasClass(AnimatedClass) {
		t.Fatalf("visible element not revealed: styles %v classes %v", el.styles, el.classes)
	}
	if n := host.Intersect(el, 1); n != 0 {
		t.Fatalf("trigger still observed after firing (%d observations)", n)
	}
	if host.PendingTimers() != 1 {
		t.Fatalf("got %d pending timers, want one start", host.PendingTimers())
	}

	host.Advance(90)
	if len(el.texts) != 0 {
		t.Fatalf("rendered %q during the start delay", el.texts)
	}
	host.Advance(200)
	if got, want := distinct(el.texts), []string{"H", "Hi"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q want %q", got, want)
	}
	if st := b.Typewriter().State(); !st.Finished {
		t.Fatalf("got state %+v, want finished", st)
	}
	if host.PendingFrames() != 0 {
		t.Fatalf("finished typewriter left %d frames queued", host.PendingFrames())
	}
	if el.HasClass(CursorHiddenClass) {
		t.Fatal("cursor hidden too early")
	}
	host.Advance(1000)
	if !el.HasClass(CursorHiddenClass) {
		t.Fatal("cursor not hidden after finishing")
	}
}

func TestBindTypewriterRepeatedVisibilityStartsOnce(t *testing.T) {
	obs := &chattyObserver{}
	host := NewManualHost(10)
	el := newFakeElement(map[string]string{"animation": "type-loop", "delay": "50"})
	b := BindTypewriter(el, Host{Frames: host, Timers: host, Observer: obs})

	for i := 0; i < 5; i++ {
		obs.fn(VisibilityEvent{IsIntersecting: true, Ratio: 1})
	}
	if host.PendingTimers() != 1 {
		t.Fatalf("got %d pending starts, want 1", host.PendingTimers())
	}
	host.Advance(100)
	if !b.Typewriter().State().Started {
		t.Fatal("typewriter did not start")
	}
	if host.PendingFrames() != 1 {
		t.Fatalf("got %d frame loops, want 1", host.PendingFrames())
	}
}

func TestTypewriterBindingStop(t *testing.T) {
	host := NewManualHost(10)
	el := newFakeElement(map[string]string{"animation": "type-loop", "delay": "50"})
	b := BindTypewriter(el, host.Host())

	host.Intersect(el, 1)
	b.Stop()
	host.Advance(1000)
	if len(el.texts) != 0 {
		t.Fatalf("stopped binding rendered %q", el.texts)
	}

	el2 := newFakeElement(map[string]string{"animation": "type-loop", "delay": "0", "speed": "10"})
	b2 := BindTypewriter(el2, host.Host())
	host.Intersect(el2, 1)
	host.Advance(30)
	n := len(el2.texts)
	if n == 0 {
		t.Fatal("typewriter never rendered")
	}
	b2.Stop()
	host.Advance(1000)
	if len(el2.texts) != n {
		t.Fatalf("rendered %d times after Stop", len(el2.texts)-n)
	}
	if host.PendingFrames() != 0 {
		t.Fatalf("got %d frames queued after Stop", host.PendingFrames())
	}
	if n := host.Intersect(el2, 1); n != 0 {
		t.Fatal("observer still attached after Stop")
	}
}

func TestBindPage(t *testing.T) {
	host := NewManualHost(10)
	tw := &recordTweener{}
	h := host.Host()
	h.Tweener = tw

	var logs bytes.Buffer
	h.Logger = slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	body := newFakeElement(nil)
	typing := newFakeElement(map[string]string{"animation": "type-loop", "typing-strings": "A|B", "delay": "0"})
	fade := newFakeElement(map[string]string{"animation": "fade-up"})
	once := newFakeElement(map[string]string{"animation": "zoom-in", "once": "true"})
	hover := newFakeElement(map[string]string{"animation": "flip-x", "trigger": "hover"})
	odd := newFakeElement(map[string]string{"animation": "rotate", "trigger": "scroll"})
	plain := newFakeElement(nil)
	doc := &fakeDocument{body: body, els: []*fakeElement{typing, fade, once, hover, odd, plain}}

	p := Bind(doc, h)

	if body.styles["opacity"] != "1" {
		t.Fatalf("body not made visible: %v", body.styles)
	}
	if got := len(p.Typewriters()); got != 1 {
		t.Fatalf("got %d typewriters, want 1", got)
	}
	if got := len(p.Reveals()); got != 3 {
		t.Fatalf("got %d reveals, want 3", got)
	}
	for _, el := range []*fakeElement{typing, fade, once, hover} {
		if el.styles["opacity"] != "0" {
			t.Errorf("element %v not hidden on bind", el.data)
		}
	}
	if _, ok := plain.styles["opacity"]; ok {
		t.Error("element without data-animation was touched")
	}
	if !strings.Contains(logs.String(), "page bound") {
		t.Errorf("no bind record in logs: %s", logs.String())
	}

	host.Intersect(fade, 0.1)
	host.Intersect(once, 0.1)
	if len(tw.played) != 2 || !fade.HasClass(AnimatedClass) || !once.HasClass(AnimatedClass) {
		t.Fatalf("view reveals not played: %v", tw.played)
	}
	host.Intersect(fade, 0.2)
	if len(tw.played) != 2 {
		t.Fatal("visible element replayed without leaving the viewport")
	}

	host.Intersect(fade, 0)
	host.Intersect(once, 0)
	if fade.HasClass(AnimatedClass) {
		t.Error("repeatable reveal kept its animated class after leaving")
	}
	if !once.HasClass(AnimatedClass) {
		t.Error("once reveal lost its animated class")
	}
	host.Intersect(fade, 1)
	host.Intersect(once, 1)
	if got := p.Reveals()[0].Plays(); got != 2 {
		t.Errorf("repeatable reveal played %d times, want 2", got)
	}
	if got := p.Reveals()[1].Plays(); got != 1 {
		t.Errorf("once reveal played %d times, want 1", got)
	}

	hover.mouseEnter()
	hover.mouseEnter()
	if got := p.Reveals()[2].Plays(); got != 1 {
		t.Errorf("hover reveal played %d times, want 1", got)
	}

	host.Intersect(typing, 1)
	host.Advance(100)
	if typing.text == "" && len(typing.texts) == 0 {
		t.Error("typewriter did not run")
	}

	p.Stop()
	n := len(typing.texts)
	host.Advance(1000)
	host.IntersectAll(1)
	hover.mouseEnter()
	if len(typing.texts) != n {
		t.Error("typewriter rendered after page Stop")
	}
	if len(tw.played) != 4 {
		t.Errorf("got %d plays after Stop, want 4", len(tw.played))
	}
}

func TestPageRun(t *testing.T) {
	host := NewManualHost(10)
	el := newFakeElement(map[string]string{"animation": "fade-up"})
	p := Bind(&fakeDocument{els: []*fakeElement{el}}, host.Host())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Run(ctx); !errors.Is(err, ErrStopped) {
		t.Fatalf("got %v, want %v", err, ErrStopped)
	}
	if n := host.Intersect(el, 1); n != 0 {
		t.Fatal("Run returned with bindings still attached")
	}
}

func TestBindRevealUnknownTriggerLeavesElementAlone(t *testing.T) {
	el := newFakeElement(map[string]string{"animation": "rotate", "trigger": "scroll"})
	p := Bind(&fakeDocument{els: []*fakeElement{el}}, NewManualHost(10).Host())
	if len(p.Reveals()) != 0 {
		t.Fatal("unknown trigger was bound")
	}
	if len(el.styles) != 0 {
		t.Fatalf("unbound element styled: %v", el.styles)
	}
}

func TestBindTypewriterAnimatedClassTiming(t *testing.T) {
	host := NewManualHost(10)
	el := newFakeElement(map[string]string{"animation": "type-loop", "typing-strings": "Hi"})
	p := Bind(&fakeDocument{els: []*fakeElement{el}}, host.Host())
	defer p.Stop()

	if len(p.Reveals()) != 0 {
		t.Fatalf("typewriter also bound as %d reveals", len(p.Reveals()))
	}
	if n := host.Intersect(el, 0.1); n != 1 {
		t.Fatalf("element has %d observations, want only its trigger", n)
	}
	if el.HasClass(AnimatedClass) {
		t.Fatal("animated at first overlap")
	}
	host.Intersect(el, 0.6)
	if !el.HasClass(AnimatedClass) {
		t.Fatal("not animated once half visible")
	}
	host.Intersect(el, 0)
	if !el.HasClass(AnimatedClass) {
		t.Fatal("animated class removed on leave")
	}
}
