package reveal

// TypewriterThreshold is the visible fraction at which a typewriter starts.
const TypewriterThreshold = 0.5

// VisibilityTrigger fires once, on the first intersecting event for an
// element. Later events are ignored.
type VisibilityTrigger struct {
	obs       Observation
	onVisible func(VisibilityEvent)
	fired     bool
	stopped   bool
}

// WatchVisibility observes el at threshold and calls onVisible the first
// time it becomes visible. The observation is disconnected after it fires.
func WatchVisibility(o IntersectionObserver, el Element, threshold float64, onVisible func(VisibilityEvent)) *VisibilityTrigger {
	v := &VisibilityTrigger{onVisible: onVisible}
	if o == nil {
		return v
	}
	v.obs = o.Observe(el, threshold, v.handle)
	return v
}

// Fired reports whether the visible event has been delivered.
func (v *VisibilityTrigger) Fired() bool { return v.fired }

// Stop disconnects the trigger without firing it.
func (v *VisibilityTrigger) Stop() {
	v.stopped = true
	v.disconnect()
}

func (v *VisibilityTrigger) handle(e VisibilityEvent) {
	if v.fired || v.stopped || !e.IsIntersecting {
		return
	}
	v.fired = true
	v.disconnect()
	if v.onVisible != nil {
		v.onVisible(e)
	}
}

func (v *VisibilityTrigger) disconnect() {
	if v.obs != nil {
		v.obs.Disconnect()
		v.obs = nil
	}
}
