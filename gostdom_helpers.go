//go:build !js
// +build !js

package reveal

import (
	"fmt"

	dom "github.com/gost-dom/browser/dom"
	html "github.com/gost-dom/browser/html"
)

// GostDocument returns the document of a gost-dom window.
func GostDocument(win html.Window) Document {
	doc := win.Document()
	d := &nodeDocument{node: &gostWrapper{n: doc}}
	if body := doc.Body(); body != nil {
		d.body = &gostWrapper{n: body}
	}
	return d
}

// WrapGostElement returns an Element over a gost-dom node.
func WrapGostElement(n dom.Node) Element {
	if n == nil {
		return nil
	}
	return &nodeElement{node: &gostWrapper{n: n}}
}

// DispatchGostEvent dispatches a DOM event of the given type on el, which
// must come from GostDocument or WrapGostElement.
func DispatchGostEvent(el Element, eventType string) error {
	node, _ := nodeOf(el)
	g, ok := node.(*gostWrapper)
	if !ok {
		return fmt.Errorf("gostdom: cannot dispatch %q on %T", eventType, el)
	}
	return g.dispatch(eventType)
}
