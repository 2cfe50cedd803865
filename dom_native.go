//go:build !js
// +build !js

package reveal

import (
	"fmt"
	"strings"

	dom "github.com/gost-dom/browser/dom"
	ev "github.com/gost-dom/browser/dom/event"
)

// Native builds drive a gost-dom document through the same jsObject calls
// the browser build makes, so effects behave identically under `go test`.

var (
	_ jsObject = (*gostWrapper)(nil)
	_ jsObject = (*gostClassList)(nil)
	_ jsObject = (*gostStyle)(nil)
	_ jsObject = (*gostNodeList)(nil)
)

func funcOf(fn func(this jsObject, args []jsObject) interface{}) jsFunc {
	return &gostFunc{goFunc: fn}
}

// gostWrapper wraps a gost-dom/browser dom.Node and implements jsObject.
type gostWrapper struct {
	inert
	n dom.Node
}

func (g *gostWrapper) element() (dom.Element, bool) {
	el, ok := g.n.(dom.Element)
	return el, ok
}

func (g *gostWrapper) Set(key string, value interface{}) {
	switch key {
	case "textContent":
		g.n.SetTextContent(fmt.Sprint(value))
	default:
		if el, ok := g.element(); ok {
			el.SetAttribute(key, fmt.Sprint(value))
		}
	}
}

func (g *gostWrapper) Get(key string) jsObject {
	switch key {
	case "textContent":
		return &stringObject{s: g.n.TextContent()}
	case "classList":
		if el, ok := g.element(); ok {
			return &gostClassList{el: el}
		}
	case "style":
		if el, ok := g.element(); ok {
			return &gostStyle{el: el}
		}
	}
	return nil
}

func (g *gostWrapper) Call(name string, args ...interface{}) jsObject {
	switch name {
	case "hasAttribute":
		if el, ok := g.element(); ok {
			_, found := el.GetAttribute(args[0].(string))
			return &boolObject{b: found}
		}
		return &boolObject{}
	case "getAttribute":
		if el, ok := g.element(); ok {
			if val, found := el.GetAttribute(args[0].(string)); found {
				return &stringObject{s: val}
			}
		}
		return nil
	case "addEventListener":
		if tgt, ok := g.n.(ev.EventTarget); ok {
			if cb, ok2 := args[1].(*gostFunc); ok2 {
				cb.handler = ev.NewEventHandlerFuncWithoutError(func(*ev.Event) {
					cb.goFunc(g, nil)
				})
				tgt.AddEventListener(args[0].(string), cb.handler)
			}
		}
		return nil
	case "removeEventListener":
		if tgt, ok := g.n.(ev.EventTarget); ok {
			if cb, ok2 := args[1].(*gostFunc); ok2 && cb.handler != nil {
				tgt.RemoveEventListener(args[0].(string), cb.handler)
				cb.handler = nil
			}
		}
		return nil
	case "querySelectorAll":
		sel := args[0].(string)
		var list dom.NodeList
		switch n := g.n.(type) {
		case dom.Document:
			list, _ = n.QuerySelectorAll(sel)
		case dom.Element:
			list, _ = n.QuerySelectorAll(sel)
		}
		return &gostNodeList{list: list}
	}
	panic("gostdom: Call \"" + name + "\" not implemented")
}

func (g *gostWrapper) String() string { return g.n.NodeName() }
func (g *gostWrapper) Equal(o jsObject) bool {
	other, ok := o.(*gostWrapper)
	return ok && g.n == other.n
}

// dispatch fires a bare event of the given type at the wrapped node.
func (g *gostWrapper) dispatch(eventType string) error {
	tgt, ok := g.n.(ev.EventTarget)
	if !ok {
		return fmt.Errorf("gostdom: %s is not an event target", g.n.NodeName())
	}
	tgt.DispatchEvent(&ev.Event{Type: eventType})
	return nil
}

// gostClassList implements the classList calls over the class attribute.
type gostClassList struct {
	inert
	el dom.Element
}

func (c *gostClassList) Call(name string, args ...interface{}) jsObject {
	cls := args[0].(string)
	attr, _ := c.el.GetAttribute("class")
	names := strings.Fields(attr)
	idx := -1
	for i, n := range names {
		if n == cls {
			idx = i
			break
		}
	}
	switch name {
	case "add":
		if idx < 0 {
			c.el.SetAttribute("class", strings.Join(append(names, cls), " "))
		}
	case "remove":
		if idx >= 0 {
			names = append(names[:idx], names[idx+1:]...)
			c.el.SetAttribute("class", strings.Join(names, " "))
		}
	case "contains":
		return &boolObject{b: idx >= 0}
	default:
		panic("gostdom: classList.Call(\"" + name + "\") not implemented")
	}
	return nil
}

// gostStyle implements setProperty over the style attribute.
type gostStyle struct {
	inert
	el dom.Element
}

type styleDecl struct{ name, value string }

func (s *gostStyle) Call(name string, args ...interface{}) jsObject {
	if name != "setProperty" {
		panic("gostdom: style.Call(\"" + name + "\") not implemented")
	}
	prop, value := args[0].(string), fmt.Sprint(args[1])

	attr, _ := s.el.GetAttribute("style")
	var decls []styleDecl
	for _, part := range strings.Split(attr, ";") {
		n, v, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		decls = append(decls, styleDecl{strings.TrimSpace(n), strings.TrimSpace(v)})
	}

	found := false
	for i := range decls {
		if decls[i].name == prop {
			decls[i].value = value
			found = true
			break
		}
	}
	if !found {
		decls = append(decls, styleDecl{prop, value})
	}

	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.name+": "+d.value)
	}
	s.el.SetAttribute("style", strings.Join(parts, "; "))
	return nil
}

// gostFunc implements jsFunc for event callbacks. gost-dom handlers hold no
// resources outside the Go heap, so Release has nothing to free.
type gostFunc struct {
	goFunc  func(this jsObject, args []jsObject) interface{}
	handler ev.EventHandler
}

func (*gostFunc) Release() {}

// gostNodeList wraps a gost-dom NodeList with length and item access.
type gostNodeList struct {
	inert
	list dom.NodeList
}

func (g *gostNodeList) length() int {
	if g.list == nil {
		return 0
	}
	return g.list.Length()
}

func (g *gostNodeList) Get(key string) jsObject {
	if key == "length" {
		return &intObject{n: g.length()}
	}
	return nil
}

func (g *gostNodeList) Call(name string, args ...interface{}) jsObject {
	if name == "item" {
		if idx, ok := args[0].(int); ok && g.list != nil {
			if node := g.list.Item(idx); node != nil {
				return &gostWrapper{n: node}
			}
		}
	}
	return nil
}
