package reveal

import "log/slog"

// RevealBinding ties one element to its reveal trigger.
type RevealBinding struct {
	el      Element
	cfg     RevealConfig
	tweener Tweener
	log     *slog.Logger

	obs        Observation
	unhover    func()
	detached   bool
	tweenCount int
}

func (p *Page) bindReveal(el Element) *RevealBinding {
	cfg := ParseRevealConfig(el)
	b := &RevealBinding{
		el:      el,
		cfg:     cfg,
		tweener: p.host.tweener(),
		log:     p.log.With("effect", cfg.Kind, "trigger", cfg.Trigger),
	}
	if !cfg.KnownTrigger() {
		b.log.Debug("unknown reveal trigger, element left unbound")
		return nil
	}
	el.SetStyle("opacity", "0")
	switch cfg.Trigger {
	case TriggerView:
		if p.host.Observer != nil {
			b.obs = p.host.Observer.Observe(el, 0, b.intersect)
		}
	case TriggerHover:
		b.unhover = el.OnMouseEnter(b.play)
	}
	b.log.Debug("reveal bound", "once", cfg.Once)
	return b
}

// Config returns the parsed configuration.
func (b *RevealBinding) Config() RevealConfig { return b.cfg }

// Element returns the bound element.
func (b *RevealBinding) Element() Element { return b.el }

// Plays returns how many times the effect has been handed to the Tweener.
func (b *RevealBinding) Plays() int { return b.tweenCount }

func (b *RevealBinding) intersect(e VisibilityEvent) {
	if b.detached {
		return
	}
	if e.IsIntersecting {
		b.play()
		return
	}
	if !b.cfg.Once {
		b.el.RemoveClass(AnimatedClass)
	}
}

func (b *RevealBinding) play() {
	if b.detached || b.el.HasClass(AnimatedClass) {
		return
	}
	b.tweenCount++
	b.tweener.Tween(b.el, b.cfg)
	b.el.AddClass(AnimatedClass)
}

// Stop removes the observer or hover listener.
func (b *RevealBinding) Stop() {
	b.detached = true
	if b.obs != nil {
		b.obs.Disconnect()
		b.obs = nil
	}
	if b.unhover != nil {
		b.unhover()
		b.unhover = nil
	}
}
