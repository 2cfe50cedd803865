package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	html "github.com/gost-dom/browser/html"
	"github.com/octoberswimmer/reveal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const simulatePage = `<!DOCTYPE html><html><body><span id="typewriter" data-animation="type-loop"></span></body></html>`

// simulation is one headless run of a typewriter element.
type simulation struct {
	Attributes    map[string]string // data-* attributes, without the prefix
	FrameInterval float64
	VisibleAt     float64
	DurationMs    float64
}

// frameRecord is a point where the rendered text or phase changed.
type frameRecord struct {
	AtMs         float64 `yaml:"at"`
	Text         string  `yaml:"text"`
	Phase        string  `yaml:"phase"`
	CursorHidden bool    `yaml:"cursor_hidden,omitempty"`
}

type simulationResult struct {
	Config   reveal.TypingConfig `yaml:"config"`
	Timeline []frameRecord        `yaml:"timeline"`
}

func newSimulateCmd(a *app) *cobra.Command {
	var (
		strs        string
		delay       int
		speed       int
		pause       int
		loop        bool
		stopOnPause bool
		visibleAt   float64
		duration    float64
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a typewriter headlessly and print what it renders over time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := simulation{
				Attributes: map[string]string{
					"typing-strings": strs,
					"delay":          strconv.Itoa(delay),
					"speed":          strconv.Itoa(speed),
					"pause":          strconv.Itoa(pause),
					"loop":           strconv.FormatBool(loop),
					"stoponpause":    strconv.FormatBool(stopOnPause),
				},
				FrameInterval: a.cfg.FrameInterval,
				VisibleAt:     visibleAt,
				DurationMs:    duration,
			}
			res, err := s.run(a.log)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := out == io.Writer(os.Stdout) && !color.NoColor
			return writeSimulation(out, a.cfg.Output, res, colorize)
		},
	}
	f := cmd.Flags()
	f.StringVar(&strs, "strings", reveal.DefaultTypingString, "strings to type, separated by "+reveal.TypingStringSeparator)
	f.IntVar(&delay, "delay", reveal.DefaultStartDelayMs, "start delay and inter-string wait, in ms")
	f.IntVar(&speed, "speed", reveal.DefaultTypeSpeedMs, "milliseconds per typed character")
	f.IntVar(&pause, "pause", reveal.DefaultPauseMs, "hold time after a string is typed, in ms")
	f.BoolVar(&loop, "loop", true, "repeat the strings forever")
	f.BoolVar(&stopOnPause, "stop-on-pause", false, "hide the cursor after the last string")
	f.Float64Var(&visibleAt, "visible-at", 0, "time the element scrolls into view, in ms")
	f.Float64Var(&duration, "duration", 10000, "simulated time, in ms")
	f.Float64("frame-interval", reveal.DefaultFrameInterval, "frame spacing, in ms")
	f.StringP("output", "o", defaultOutput, "output format: text or yaml")
	return cmd
}

// run binds a gost-dom typewriter element to a ManualHost and records every
// change to its text until DurationMs has passed or nothing is left to do.
func (s simulation) run(log *slog.Logger) (simulationResult, error) {
	var res simulationResult
	if s.DurationMs <= 0 {
		return res, errors.New("duration must be positive")
	}

	win, err := html.NewWindowReader(strings.NewReader(simulatePage))
	if err != nil {
		return res, err
	}
	span, err := win.Document().QuerySelector("#typewriter")
	if err != nil || span == nil {
		return res, fmt.Errorf("typewriter element missing: %v", err)
	}
	for k, v := range s.Attributes {
		span.SetAttribute("data-"+k, v)
	}

	m := reveal.NewManualHost(s.FrameInterval)
	host := m.Host()
	host.Logger = log
	page := reveal.Bind(reveal.GostDocument(win), host)
	if len(page.Typewriters()) != 1 {
		return res, fmt.Errorf("bound %d typewriters, want 1", len(page.Typewriters()))
	}
	b := page.Typewriters()[0]
	defer page.Stop()
	res.Config = b.Typewriter().Config()

	el := b.Element()
	visible := false
	last := frameRecord{AtMs: -1}
	for m.Now() < s.DurationMs {
		if !visible && m.Now() >= s.VisibleAt {
			m.Intersect(el, 1)
			visible = true
		}
		m.Step()

		rec := frameRecord{
			AtMs:         m.Now(),
			Text:         el.Text(),
			Phase:        b.Typewriter().State().Phase.String(),
			CursorHidden: el.HasClass(reveal.CursorHiddenClass),
		}
		if rec.Text != last.Text || rec.Phase != last.Phase || rec.CursorHidden != last.CursorHidden {
			res.Timeline = append(res.Timeline, rec)
			last = rec
		}
		if visible && b.Typewriter().State().Finished && m.PendingTimers() == 0 && m.PendingFrames() == 0 {
			break
		}
	}
	log.Debug("simulation finished", "at", m.Now(), "changes", len(res.Timeline))
	return res, nil
}

var phaseColors = map[string]color.Attribute{
	"idle":    color.FgHiBlack,
	"typing":  color.FgGreen,
	"holding": color.FgYellow,
	"erasing": color.FgRed,
	"done":    color.FgCyan,
}

func writeSimulation(w io.Writer, format string, res simulationResult, colorize bool) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	}
	for _, r := range res.Timeline {
		c := color.New(phaseColors[r.Phase])
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		line := fmt.Sprintf("%9.1fms  %s %q", r.AtMs, c.Sprintf("%-8s", r.Phase), r.Text)
		if r.CursorHidden {
			line += "  (cursor hidden)"
		}
		fmt.Fprintln(w, line)
	}
	return nil
}
