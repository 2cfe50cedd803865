package reveal

import "testing"

// chattyObserver keeps delivering events after Disconnect, like an
// observer whose entries were already queued.
type chattyObserver struct {
	fn           func(VisibilityEvent)
	threshold    float64
	disconnected int
}

func (o *chattyObserver) Observe(_ Element, threshold float64, fn func(VisibilityEvent)) Observation {
	o.fn = fn
	o.threshold = threshold
	return o
}

func (o *chattyObserver) Disconnect() { o.disconnected++ }

func TestVisibilityTriggerFiresOnce(t *testing.T) {
	obs := &chattyObserver{}
	fired := 0
	v := WatchVisibility(obs, newFakeElement(nil), TypewriterThreshold, func(VisibilityEvent) { fired++ })

	if obs.threshold != 0.5 {
		t.Fatalf("got threshold %v, want 0.5", obs.threshold)
	}
	obs.fn(VisibilityEvent{IsIntersecting: false, Ratio: 0.2})
	if fired != 0 || v.Fired() {
		t.Fatal("fired on a non-intersecting event")
	}
	obs.fn(VisibilityEvent{IsIntersecting: true, Ratio: 0.6})
	obs.fn(VisibilityEvent{IsIntersecting: false, Ratio: 0})
	obs.fn(VisibilityEvent{IsIntersecting: true, Ratio: 1})
	if fired != 1 {
		t.Fatalf("fired %d times, want 1", fired)
	}
	if obs.disconnected != 1 {
		t.Fatalf("disconnected %d times, want 1", obs.disconnected)
	}
}

func TestVisibilityTriggerStop(t *testing.T) {
	obs := &chattyObserver{}
	fired := false
	v := WatchVisibility(obs, newFakeElement(nil), 0.5, func(VisibilityEvent) { fired = true })
	v.Stop()
	obs.fn(VisibilityEvent{IsIntersecting: true, Ratio: 1})
	if fired || v.Fired() {
		t.Fatal("stopped trigger fired")
	}
}

func TestVisibilityTriggerNilObserver(t *testing.T) {
	v := WatchVisibility(nil, newFakeElement(nil), 0.5, func(VisibilityEvent) {
		t.Fatal("trigger without an observer fired")
	})
	v.Stop()
}
