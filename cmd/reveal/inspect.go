package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	dom "github.com/gost-dom/browser/dom"
	html "github.com/gost-dom/browser/html"
	"github.com/octoberswimmer/reveal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// boundElement describes how Bind would treat one element.
type boundElement struct {
	Element string               `yaml:"element"`
	Kind    string               `yaml:"kind"`
	Bound   bool                 `yaml:"bound"`
	Typing  *reveal.TypingConfig `yaml:"typing,omitempty"`
	Reveal  *reveal.RevealConfig `yaml:"reveal,omitempty"`
}

func newInspectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file.html>",
		Short: "List the animated elements of a page and their parsed settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			els, err := inspectPage(f)
			if err != nil {
				return fmt.Errorf("inspecting %s: %w", args[0], err)
			}
			a.log.Debug("inspected page", "file", args[0], "elements", len(els))
			return writeInspection(cmd.OutOrStdout(), a.cfg.Output, els)
		},
	}
	cmd.Flags().StringP("output", "o", defaultOutput, "output format: text or yaml")
	return cmd
}

// inspectPage parses an HTML document and returns its animated elements in
// document order.
func inspectPage(r io.Reader) ([]boundElement, error) {
	win, err := html.NewWindowReader(r)
	if err != nil {
		return nil, err
	}
	list, err := win.Document().QuerySelectorAll("[data-animation]")
	if err != nil {
		return nil, err
	}
	var out []boundElement
	for i := 0; i < list.Length(); i++ {
		node := list.Item(i)
		el := reveal.WrapGostElement(node)
		kind, _ := el.Data("animation")
		be := boundElement{Element: describe(node), Kind: kind, Bound: true}
		if kind == reveal.TypewriterKind {
			cfg := reveal.ParseTypingConfig(el)
			be.Typing = &cfg
		} else {
			cfg := reveal.ParseRevealConfig(el)
			be.Reveal = &cfg
			be.Bound = cfg.KnownTrigger()
		}
		out = append(out, be)
	}
	return out, nil
}

// describe renders a node as tag#id.class, the way a selector would name it.
func describe(n dom.Node) string {
	name := strings.ToLower(n.NodeName())
	el, ok := n.(dom.Element)
	if !ok {
		return name
	}
	if id, ok := el.GetAttribute("id"); ok && id != "" {
		name += "#" + id
	}
	if class, ok := el.GetAttribute("class"); ok {
		for _, c := range strings.Fields(class) {
			name += "." + c
		}
	}
	return name
}

func writeInspection(w io.Writer, format string, els []boundElement) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(els); err != nil {
			return err
		}
		return enc.Close()
	}
	for _, be := range els {
		switch {
		case be.Typing != nil:
			c := be.Typing
			fmt.Fprintf(w, "%s\ttypewriter strings=%q delay=%d speed=%d pause=%d loop=%t stop-on-pause=%t\n",
				be.Element, c.Strings, c.StartDelayMs, c.TypeSpeedMs, c.PauseMs, c.Loop, c.StopOnFinish)
		case !be.Bound:
			fmt.Fprintf(w, "%s\t%s unbound (unknown trigger %q)\n", be.Element, be.Kind, be.Reveal.Trigger)
		default:
			c := be.Reveal
			fmt.Fprintf(w, "%s\t%s trigger=%s once=%t duration=%gms delay=%gms easing=%s\n",
				be.Element, be.Kind, c.Trigger, c.Once, c.DurationMs, c.DelayMs, c.Easing)
		}
	}
	return nil
}
