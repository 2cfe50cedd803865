package reveal

// ticker is a state machine advanced once per animation frame.
type ticker interface {
	Tick(now float64) bool
}

// frameLoop drives a ticker from a FrameScheduler, requesting one frame at a
// time for as long as the ticker asks for more.
type frameLoop struct {
	frames  FrameScheduler
	ticker  ticker
	running bool
	stopped bool
}

func newFrameLoop(frames FrameScheduler, t ticker) *frameLoop {
	return &frameLoop{frames: frames, ticker: t}
}

// start requests the first frame. It is a no-op while a frame is pending or
// after stop.
func (l *frameLoop) start() {
	if l.running || l.stopped || l.frames == nil {
		return
	}
	l.running = true
	l.frames.RequestAnimationFrame(l.step)
}

func (l *frameLoop) step(timestamp float64) {
	if l.stopped {
		l.running = false
		return
	}
	if !l.ticker.Tick(timestamp) {
		l.running = false
		return
	}
	l.frames.RequestAnimationFrame(l.step)
}

// stop makes the pending frame, if any, the last one.
func (l *frameLoop) stop() {
	l.stopped = true
}
