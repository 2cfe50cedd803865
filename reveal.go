// Package reveal drives on-scroll and on-hover reveal effects for page
// elements, plus a self-looping typewriter text effect.
//
// Elements opt in through data attributes. Bind walks a Document, parses
// each element's configuration and wires it to the collaborators supplied
// by a Host: a frame clock, one-shot timers and an intersection observer.
// Under GOOS=js the browser supplies them (see BrowserHost); natively,
// ManualHost drives a gost-dom document deterministically.
//
// Example programs can be found under example/.
package reveal

import (
	"io"
	"log/slog"
)

// FrameScheduler schedules a callback for the next animation frame. The
// callback receives the frame timestamp in milliseconds.
type FrameScheduler interface {
	RequestAnimationFrame(callback func(timestamp float64))
}

// Timer is a pending one-shot call created by Timers.SetTimeout.
type Timer interface {
	// Stop cancels the call if it has not run yet.
	Stop()
}

// Timers runs a callback once after a delay in milliseconds.
type Timers interface {
	SetTimeout(callback func(), ms float64) Timer
}

// VisibilityEvent is one viewport-intersection notification for an element.
type VisibilityEvent struct {
	IsIntersecting bool
	// Ratio is the visible fraction of the element, 0 to 1.
	Ratio float64
}

// Observation is a live registration with an IntersectionObserver.
type Observation interface {
	Disconnect()
}

// nopObservation is returned when an element cannot be observed.
type nopObservation struct{}

func (nopObservation) Disconnect() {}

// IntersectionObserver reports an element's intersection with the viewport.
// The callback fires whenever the visible fraction crosses threshold; an
// event is intersecting when at least threshold of the element is visible.
type IntersectionObserver interface {
	Observe(el Element, threshold float64, callback func(VisibilityEvent)) Observation
}

// Host bundles the environment collaborators an animated page needs.
type Host struct {
	Frames   FrameScheduler
	Timers   Timers
	Observer IntersectionObserver

	// Tweener renders reveal effects. CSSTransition is used when nil.
	Tweener Tweener

	// Logger receives debug records about bindings. Nil discards them.
	Logger *slog.Logger
}

func (h Host) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return h.Logger
}

func (h Host) tweener() Tweener {
	if h.Tweener == nil {
		return CSSTransition{}
	}
	return h.Tweener
}
