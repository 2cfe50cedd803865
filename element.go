package reveal

// jsObject is the subset of a JavaScript value used to drive the DOM. It is
// backed by syscall/js under WebAssembly and by gost-dom natively.
type jsObject interface {
	Set(key string, value interface{})
	Get(key string) jsObject
	Call(name string, args ...interface{}) jsObject
	String() string
	Equal(other jsObject) bool
	IsUndefined() bool
	Bool() bool
	Int() int
	Float() float64
}

// jsFunc is a Go function exposed to the DOM as a callback.
type jsFunc interface {
	Release()
}

// Element is a handle to a DOM element used by the effects.
type Element interface {
	// Data returns the value of the data-<key> attribute and whether it is
	// present.
	Data(key string) (string, bool)

	Text() string
	SetText(text string)

	AddClass(name string)
	RemoveClass(name string)
	HasClass(name string) bool

	// SetStyle sets an inline style property.
	SetStyle(name, value string)

	// OnMouseEnter registers fn for mouseenter events. The returned function
	// removes the listener.
	OnMouseEnter(fn func()) (remove func())
}

// Document is the element source for Bind.
type Document interface {
	Body() Element
	QuerySelectorAll(selector string) []Element
}

// nodeElement implements Element over a jsObject node.
type nodeElement struct {
	node jsObject
}

func newNodeElement(node jsObject) *nodeElement {
	if node == nil || node.IsUndefined() {
		return nil
	}
	return &nodeElement{node: node}
}

func (e *nodeElement) Data(key string) (string, bool) {
	name := "data-" + key
	if !e.node.Call("hasAttribute", name).Bool() {
		return "", false
	}
	v := e.node.Call("getAttribute", name)
	if v == nil {
		return "", false
	}
	return v.String(), true
}

func (e *nodeElement) Text() string {
	v := e.node.Get("textContent")
	if v == nil {
		return ""
	}
	return v.String()
}

func (e *nodeElement) SetText(text string) {
	e.node.Set("textContent", text)
}

func (e *nodeElement) AddClass(name string) {
	e.node.Get("classList").Call("add", name)
}

func (e *nodeElement) RemoveClass(name string) {
	e.node.Get("classList").Call("remove", name)
}

func (e *nodeElement) HasClass(name string) bool {
	v := e.node.Get("classList").Call("contains", name)
	return v != nil && v.Bool()
}

func (e *nodeElement) SetStyle(name, value string) {
	e.node.Get("style").Call("setProperty", name, value)
}

func (e *nodeElement) OnMouseEnter(fn func()) func() {
	cb := funcOf(func(_ jsObject, _ []jsObject) interface{} {
		fn()
		return nil
	})
	e.node.Call("addEventListener", "mouseenter", cb)
	return func() {
		e.node.Call("removeEventListener", "mouseenter", cb)
		cb.Release()
	}
}

// nodeOf returns the node behind an Element built by this package.
func nodeOf(el Element) (jsObject, bool) {
	ne, ok := el.(*nodeElement)
	if !ok || ne == nil || ne.node == nil {
		return nil, false
	}
	return ne.node, true
}

// sameElement reports whether a and b refer to the same DOM node.
func sameElement(a, b Element) bool {
	na, ok1 := a.(*nodeElement)
	nb, ok2 := b.(*nodeElement)
	if ok1 && ok2 {
		return na.node.Equal(nb.node)
	}
	return a == b
}

// nodeDocument implements Document over jsObject nodes.
type nodeDocument struct {
	node jsObject
	body jsObject
}

func (d *nodeDocument) Body() Element {
	el := newNodeElement(d.body)
	if el == nil {
		return nil
	}
	return el
}

func (d *nodeDocument) QuerySelectorAll(selector string) []Element {
	list := d.node.Call("querySelectorAll", selector)
	if list == nil {
		return nil
	}
	n := list.Get("length").Int()
	els := make([]Element, 0, n)
	for i := 0; i < n; i++ {
		if el := newNodeElement(list.Call("item", i)); el != nil {
			els = append(els, el)
		}
	}
	return els
}
