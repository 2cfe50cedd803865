//go:build js
// +build js

package reveal

import (
	"fmt"
	"runtime/debug"
	"syscall/js"
)

// BrowserHost returns a Host backed by the browser's requestAnimationFrame,
// setTimeout and IntersectionObserver.
func BrowserHost() Host {
	return Host{
		Frames:   browserFrames{},
		Timers:   browserTimers{},
		Observer: browserObserver{},
	}
}

// BrowserDocument returns the page's document. It panics outside a browser
// page.
func BrowserDocument() Document {
	doc := global().Get("document")
	if doc == nil || doc.IsUndefined() {
		panic("reveal: only running inside a browser is supported")
	}
	return &nodeDocument{node: doc, body: doc.Get("body")}
}

// WrapElement returns an Element over a DOM element value.
func WrapElement(v js.Value) Element {
	el := newNodeElement(wrapObject(v))
	if el == nil {
		return nil
	}
	return el
}

func global() jsObject {
	return wrapObject(js.Global())
}

func undefined() wrappedObject {
	return wrappedObject{js.Undefined()}
}

func funcOf(fn func(this jsObject, args []jsObject) interface{}) jsFunc {
	return &jsFuncImpl{
		f: js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			wrappedArgs := make([]jsObject, len(args))
			for i, arg := range args {
				wrappedArgs[i] = wrapObject(arg)
			}
			return unwrap(fn(wrapObject(this), wrappedArgs))
		}),
	}
}

type jsFuncImpl struct {
	f js.Func
}

func (j *jsFuncImpl) Release() { j.f.Release() }

func wrapObject(j js.Value) jsObject {
	if j.IsNull() {
		return nil
	}
	return wrappedObject{j: j}
}

func unwrap(value interface{}) interface{} {
	if v, ok := value.(wrappedObject); ok {
		return v.j
	}
	if v, ok := value.(*jsFuncImpl); ok {
		return v.f
	}
	return value
}

type wrappedObject struct {
	j js.Value
}

func (w wrappedObject) Set(key string, value interface{}) {
	w.j.Set(key, unwrap(value))
}

func (w wrappedObject) Get(key string) jsObject {
	return wrapObject(w.j.Get(key))
}

func (w wrappedObject) Call(name string, args ...interface{}) jsObject {
	for i, arg := range args {
		args[i] = unwrap(arg)
	}
	return wrapObject(w.j.Call(name, args...))
}

func (w wrappedObject) String() string {
	return w.j.String()
}

func (w wrappedObject) IsUndefined() bool {
	return w.j.IsUndefined()
}

func (w wrappedObject) Equal(other jsObject) bool {
	if other == nil {
		return w.j.IsNull()
	}
	o, ok := other.(wrappedObject)
	return ok && w.j.Equal(o.j)
}

func (w wrappedObject) Bool() bool {
	return w.j.Bool()
}

func (w wrappedObject) Int() int {
	return w.j.Int()
}

func (w wrappedObject) Float() float64 {
	return w.j.Float()
}

// recoverCallback logs a panic raised inside a browser callback instead of
// letting it tear down the wasm instance.
func recoverCallback(where string) {
	if r := recover(); r != nil {
		js.Global().Get("console").Call("log", "reveal: caught panic in "+where+" callback:", fmt.Sprint(r))
		fmt.Printf("Caught panic in %s callback:\n\n%s\n\n", where, r)
		debug.PrintStack()
	}
}

type browserFrames struct{}

// RequestAnimationFrame calls the native JS function of the same name.
func (browserFrames) RequestAnimationFrame(callback func(timestamp float64)) {
	var cb jsFunc
	cb = funcOf(func(_ jsObject, args []jsObject) interface{} {
		cb.Release()
		defer recoverCallback("animation frame")
		callback(args[0].Float())
		return undefined()
	})
	global().Call("requestAnimationFrame", cb)
}

type browserTimers struct{}

type browserTimer struct {
	id   jsObject
	cb   jsFunc
	done bool
}

func (t *browserTimer) Stop() {
	if t.done {
		return
	}
	t.done = true
	global().Call("clearTimeout", t.id)
	t.cb.Release()
}

// SetTimeout calls the native setTimeout.
func (browserTimers) SetTimeout(callback func(), ms float64) Timer {
	t := &browserTimer{}
	t.cb = funcOf(func(_ jsObject, _ []jsObject) interface{} {
		t.done = true
		t.cb.Release()
		defer recoverCallback("timeout")
		callback()
		return undefined()
	})
	t.id = global().Call("setTimeout", t.cb, ms)
	return t
}

type browserObserver struct{}

// thresholdSlack absorbs rounding in the ratio reported at a threshold
// crossing.
const thresholdSlack = 0.005

type browserObservation struct {
	obs js.Value
	cb  js.Func
}

func (o *browserObservation) Disconnect() {
	if o.obs.IsUndefined() {
		return
	}
	o.obs.Call("disconnect")
	o.obs = js.Undefined()
	o.cb.Release()
}

// Observe registers el with a new IntersectionObserver. Browsers report
// isIntersecting for any overlap, so events below threshold are delivered
// as not intersecting.
func (browserObserver) Observe(el Element, threshold float64, callback func(VisibilityEvent)) Observation {
	node, ok := nodeOf(el)
	if !ok {
		js.Global().Get("console").Call("warn", fmt.Sprintf("reveal: cannot observe %T", el))
		return nopObservation{}
	}
	target := unwrap(node).(js.Value)

	cb := js.FuncOf(func(_ js.Value, args []js.Value) interface{} {
		defer recoverCallback("intersection")
		entries := args[0]
		for i := 0; i < entries.Length(); i++ {
			entry := entries.Index(i)
			ratio := entry.Get("intersectionRatio").Float()
			visible := entry.Get("isIntersecting").Bool()
			if threshold > 0 && ratio < threshold-thresholdSlack {
				visible = false
			}
			callback(VisibilityEvent{IsIntersecting: visible, Ratio: ratio})
		}
		return nil
	})
	opts := newObject(map[string]interface{}{"threshold": threshold})
	obs := js.Global().Get("IntersectionObserver").New(cb, opts)
	obs.Call("observe", target)
	return &browserObservation{obs: obs, cb: cb}
}
