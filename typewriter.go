package reveal

// Phase is the typewriter's position in its type/erase cycle.
type Phase int

const (
	// PhaseIdle is the state before Start.
	PhaseIdle Phase = iota
	// PhaseTyping adds one character per tick.
	PhaseTyping
	// PhaseHolding is a fully typed string waiting out the pause.
	PhaseHolding
	// PhaseErasing removes one character per tick, twice as fast as typing.
	PhaseErasing
	// PhaseDone is terminal; nothing is rendered after it.
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseTyping:
		return "typing"
	case PhaseHolding:
		return "holding"
	case PhaseErasing:
		return "erasing"
	case PhaseDone:
		return "done"
	}
	return "unknown"
}

const (
	// CursorHiddenClass is added to a finished element whose cursor should
	// stop blinking.
	CursorHiddenClass = "hideBlink"

	// cursorHideDelay is the wait between finishing and hiding the cursor.
	cursorHideDelay = 1000
)

// TypewriterState is a snapshot of a Typewriter's progress.
type TypewriterState struct {
	StringIndex int
	CharIndex   int
	Phase       Phase
	Started     bool
	Finished    bool
}

// Typewriter types and erases a sequence of strings into an element. It is a
// pure state machine: it only moves when Tick is called, and Tick reports
// whether it wants to be called again on the next frame.
type Typewriter struct {
	el     Element
	cfg    TypingConfig
	timers Timers

	stringIndex int
	charIndex   int
	phase       Phase
	started     bool
	finished    bool

	lastTick float64
	interval float64

	cursorTimer Timer
}

// NewTypewriter returns an idle Typewriter rendering into el. timers is used
// for the cursor-hide action and may be nil.
func NewTypewriter(el Element, cfg TypingConfig, timers Timers) *Typewriter {
	if len(cfg.Strings) == 0 {
		cfg.Strings = []string{DefaultTypingString}
	}
	return &Typewriter{el: el, cfg: cfg, timers: timers}
}

// Config returns the configuration the typewriter runs with.
func (t *Typewriter) Config() TypingConfig { return t.cfg }

// State returns a snapshot of the typewriter's progress.
func (t *Typewriter) State() TypewriterState {
	return TypewriterState{
		StringIndex: t.stringIndex,
		CharIndex:   t.charIndex,
		Phase:       t.phase,
		Started:     t.started,
		Finished:    t.finished,
	}
}

// Start arms the typewriter. The first Tick after Start acts immediately.
// Calls after the first have no effect.
func (t *Typewriter) Start() {
	if t.started || t.finished {
		return
	}
	t.started = true
	t.phase = PhaseTyping
	t.lastTick = 0
	t.interval = 0
}

// Stop ends the typewriter where it is. The rendered text is left in place
// and a pending cursor-hide action is cancelled.
func (t *Typewriter) Stop() {
	if t.cursorTimer != nil {
		t.cursorTimer.Stop()
		t.cursorTimer = nil
	}
	t.finish()
}

// Tick advances the machine to time now (milliseconds, monotonic) and
// reports whether it should be ticked again on the next frame.
func (t *Typewriter) Tick(now float64) bool {
	if t.finished || !t.started {
		return false
	}
	if now-t.lastTick < t.interval {
		return true
	}
	t.lastTick = now

	runes := []rune(t.cfg.Strings[t.stringIndex])
	switch t.phase {
	case PhaseTyping:
		if t.charIndex < len(runes) {
			t.charIndex++
			t.render(runes)
			t.interval = float64(t.cfg.TypeSpeedMs)
			return true
		}
		t.render(runes)
		if !t.cfg.Loop && t.stringIndex == len(t.cfg.Strings)-1 {
			t.finish()
			if t.cfg.StopOnFinish && t.timers != nil {
				t.cursorTimer = t.timers.SetTimeout(func() {
					t.cursorTimer = nil
					t.el.AddClass(CursorHiddenClass)
				}, cursorHideDelay)
			}
			return false
		}
		t.phase = PhaseHolding
		t.interval = float64(t.cfg.PauseMs)
	case PhaseHolding:
		t.phase = PhaseErasing
		t.render(runes)
		if t.charIndex > 0 {
			t.interval = t.eraseInterval()
			return true
		}
		return t.advance()
	case PhaseErasing:
		t.charIndex--
		t.render(runes)
		if t.charIndex > 0 {
			t.interval = t.eraseInterval()
			return true
		}
		return t.advance()
	}
	return true
}

// advance moves to the next string once the current one is erased.
func (t *Typewriter) advance() bool {
	t.el.SetText("")
	t.phase = PhaseTyping
	t.stringIndex = (t.stringIndex + 1) % len(t.cfg.Strings)
	if !t.cfg.Loop && t.stringIndex == 0 {
		t.finish()
		return false
	}
	t.interval = float64(t.cfg.StartDelayMs)
	return true
}

func (t *Typewriter) eraseInterval() float64 {
	return float64(t.cfg.TypeSpeedMs) / 2
}

func (t *Typewriter) render(runes []rune) {
	t.el.SetText(string(runes[:t.charIndex]))
}

func (t *Typewriter) finish() {
	t.finished = true
	t.phase = PhaseDone
}
