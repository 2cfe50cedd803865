package reveal

import (
	"context"
	"errors"
	"log/slog"
)

// ErrStopped is returned by Page.Run when its context ends.
var ErrStopped = errors.New("page bindings stopped")

// AnimatedClass marks an element whose effect has been triggered.
const AnimatedClass = "animated"

const animationSelector = "[data-animation]"

// Page holds the effect bindings created by Bind.
type Page struct {
	host Host
	log  *slog.Logger

	typewriters []*TypewriterBinding
	reveals     []*RevealBinding
}

// Bind makes the document body visible and binds every element carrying a
// data-animation attribute: typewriter elements to a Typewriter started on
// first visibility, all others to a reveal effect. Elements are bound
// independently of each other.
//
// Typewriter elements are not also bound as reveals. They receive the
// animated class once, when half of the element is first visible, and keep
// it; they do not gain it at the first pixel of overlap or lose it when
// scrolled out of view, whatever data-once says.
func Bind(doc Document, host Host) *Page {
	p := &Page{host: host, log: host.logger()}
	if body := doc.Body(); body != nil {
		body.SetStyle("opacity", "1")
	}
	for _, el := range doc.QuerySelectorAll(animationSelector) {
		kind, _ := el.Data("animation")
		if kind == TypewriterKind {
			p.typewriters = append(p.typewriters, p.bindTypewriter(el))
			continue
		}
		if rb := p.bindReveal(el); rb != nil {
			p.reveals = append(p.reveals, rb)
		}
	}
	p.log.Debug("page bound", "typewriters", len(p.typewriters), "reveals", len(p.reveals))
	return p
}

// Typewriters returns the typewriter bindings in document order.
func (p *Page) Typewriters() []*TypewriterBinding { return p.typewriters }

// Reveals returns the reveal bindings in document order.
func (p *Page) Reveals() []*RevealBinding { return p.reveals }

// Stop detaches every binding. Rendered text and classes are left as they
// are.
func (p *Page) Stop() {
	for _, b := range p.typewriters {
		b.Stop()
	}
	for _, b := range p.reveals {
		b.Stop()
	}
}

// Run blocks until ctx is done, then stops the page and returns ErrStopped.
func (p *Page) Run(ctx context.Context) error {
	<-ctx.Done()
	p.Stop()
	p.log.Debug("page stopped", "cause", ctx.Err())
	return ErrStopped
}

// TypewriterBinding ties one element's Typewriter to its VisibilityTrigger.
type TypewriterBinding struct {
	el      Element
	tw      *Typewriter
	trigger *VisibilityTrigger
	loop    *frameLoop
	start   Timer
	log     *slog.Logger
}

// BindTypewriter binds a single element as a typewriter, whatever its
// data-animation value.
func BindTypewriter(el Element, host Host) *TypewriterBinding {
	p := &Page{host: host, log: host.logger()}
	return p.bindTypewriter(el)
}

func (p *Page) bindTypewriter(el Element) *TypewriterBinding {
	cfg := ParseTypingConfig(el)
	b := &TypewriterBinding{
		el:  el,
		tw:  NewTypewriter(el, cfg, p.host.Timers),
		log: p.log.With("effect", TypewriterKind),
	}
	b.loop = newFrameLoop(p.host.Frames, b.tw)
	el.SetStyle("opacity", "0")
	b.trigger = WatchVisibility(p.host.Observer, el, TypewriterThreshold, b.visible)
	b.log.Debug("typewriter bound", "strings", len(cfg.Strings), "loop", cfg.Loop)
	return b
}

func (b *TypewriterBinding) visible(e VisibilityEvent) {
	b.el.SetStyle("opacity", "1")
	b.el.AddClass(AnimatedClass)
	b.log.Debug("typewriter visible", "ratio", e.Ratio)

	begin := func() {
		b.start = nil
		b.log.Debug("typewriter started")
		b.tw.Start()
		b.loop.start()
	}
	if b.tw.timers == nil {
		begin()
		return
	}
	b.start = b.tw.timers.SetTimeout(begin, float64(b.tw.cfg.StartDelayMs))
}

// Typewriter returns the bound state machine.
func (b *TypewriterBinding) Typewriter() *Typewriter { return b.tw }

// Element returns the bound element.
func (b *TypewriterBinding) Element() Element { return b.el }

// Stop detaches the binding: the observer is disconnected, a pending start
// is cancelled and the frame loop ends after at most one more frame.
func (b *TypewriterBinding) Stop() {
	b.trigger.Stop()
	if b.start != nil {
		b.start.Stop()
		b.start = nil
	}
	b.loop.stop()
	b.tw.Stop()
}
