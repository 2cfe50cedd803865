//go:build js

package reveal

import "syscall/js"

// newObject constructs a plain JavaScript object with the given properties.
func newObject(props map[string]interface{}) js.Value {
	obj := js.Global().Get("Object").New()
	for k, v := range props {
		obj.Set(k, v)
	}
	return obj
}
