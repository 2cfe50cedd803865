package reveal

import "sort"

// DefaultFrameInterval is the frame spacing of a ManualHost, in milliseconds.
const DefaultFrameInterval = 1000.0 / 60

// ManualHost is a deterministic FrameScheduler, Timers and
// IntersectionObserver. Time only moves when Step or Advance is called, so
// tests and simulations can drive effects frame by frame without a browser.
type ManualHost struct {
	frameInterval float64
	now           float64

	frames []func(float64)

	timers   []*manualTimer
	timerSeq int

	observations []*manualObservation
}

// NewManualHost returns a ManualHost starting at time zero. A non-positive
// frameInterval selects DefaultFrameInterval.
func NewManualHost(frameInterval float64) *ManualHost {
	if frameInterval <= 0 {
		frameInterval = DefaultFrameInterval
	}
	return &ManualHost{frameInterval: frameInterval}
}

// Host returns a Host whose collaborators are all backed by m.
func (m *ManualHost) Host() Host {
	return Host{Frames: m, Timers: m, Observer: m}
}

// Now returns the current time in milliseconds.
func (m *ManualHost) Now() float64 { return m.now }

// PendingFrames returns the number of callbacks waiting for the next frame.
func (m *ManualHost) PendingFrames() int { return len(m.frames) }

// PendingTimers returns the number of timers that have neither fired nor
// been stopped.
func (m *ManualHost) PendingTimers() int {
	n := 0
	for _, t := range m.timers {
		if !t.done {
			n++
		}
	}
	return n
}

// RequestAnimationFrame queues callback for the next Step.
func (m *ManualHost) RequestAnimationFrame(callback func(timestamp float64)) {
	m.frames = append(m.frames, callback)
}

type manualTimer struct {
	due  float64
	seq  int
	fn   func()
	done bool
}

func (t *manualTimer) Stop() { t.done = true }

// SetTimeout schedules callback at Now()+ms. Timers due at the same time run
// in creation order.
func (m *ManualHost) SetTimeout(callback func(), ms float64) Timer {
	if ms < 0 {
		ms = 0
	}
	m.timerSeq++
	t := &manualTimer{due: m.now + ms, seq: m.timerSeq, fn: callback}
	m.timers = append(m.timers, t)
	return t
}

type manualObservation struct {
	el        Element
	threshold float64
	fn        func(VisibilityEvent)
	closed    bool
}

func (o *manualObservation) Disconnect() { o.closed = true }

// Observe registers callback for elements later passed to Intersect.
func (m *ManualHost) Observe(el Element, threshold float64, callback func(VisibilityEvent)) Observation {
	o := &manualObservation{el: el, threshold: threshold, fn: callback}
	m.observations = append(m.observations, o)
	return o
}

// Intersect reports that ratio of el is now visible to every live
// observation of el. It returns the number of observations notified.
func (m *ManualHost) Intersect(el Element, ratio float64) int {
	n := 0
	for _, o := range m.live() {
		if !sameElement(o.el, el) {
			continue
		}
		o.fn(VisibilityEvent{IsIntersecting: intersecting(ratio, o.threshold), Ratio: ratio})
		n++
	}
	return n
}

// IntersectAll reports ratio for every observed element.
func (m *ManualHost) IntersectAll(ratio float64) int {
	n := 0
	for _, o := range m.live() {
		o.fn(VisibilityEvent{IsIntersecting: intersecting(ratio, o.threshold), Ratio: ratio})
		n++
	}
	return n
}

func (m *ManualHost) live() []*manualObservation {
	live := m.observations[:0]
	for _, o := range m.observations {
		if !o.closed {
			live = append(live, o)
		}
	}
	m.observations = live
	return append([]*manualObservation(nil), live...)
}

func intersecting(ratio, threshold float64) bool {
	if threshold <= 0 {
		return ratio > 0
	}
	return ratio >= threshold
}

// Step advances time by one frame interval, runs the timers that became due
// (in due order) and then the frame callbacks queued before the frame began.
func (m *ManualHost) Step() {
	m.now += m.frameInterval
	m.runTimers()

	frames := m.frames
	m.frames = nil
	for _, fn := range frames {
		fn(m.now)
	}
}

// Advance steps frames until at least ms milliseconds have elapsed.
func (m *ManualHost) Advance(ms float64) {
	until := m.now + ms
	for m.now < until {
		m.Step()
	}
}

func (m *ManualHost) runTimers() {
	for {
		var due []*manualTimer
		for _, t := range m.timers {
			if !t.done && t.due <= m.now {
				due = append(due, t)
			}
		}
		if len(due) == 0 {
			break
		}
		sort.Slice(due, func(i, j int) bool {
			if due[i].due != due[j].due {
				return due[i].due < due[j].due
			}
			return due[i].seq < due[j].seq
		})
		for _, t := range due {
			if t.done {
				continue
			}
			t.done = true
			t.fn()
		}
	}
	pending := m.timers[:0]
	for _, t := range m.timers {
		if !t.done {
			pending = append(pending, t)
		}
	}
	m.timers = pending
}
