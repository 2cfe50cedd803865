package reveal

// fakeElement is an in-memory Element that records every text write.
type fakeElement struct {
	data    map[string]string
	text    string
	texts   []string
	classes []string
	styles  map[string]string
	enter   []func()
}

func newFakeElement(data map[string]string) *fakeElement {
	if data == nil {
		data = map[string]string{}
	}
	return &fakeElement{data: data, styles: map[string]string{}}
}

func (e *fakeElement) Data(key string) (string, bool) {
	v, ok := e.data[key]
	return v, ok
}

func (e *fakeElement) Text() string { return e.text }

func (e *fakeElement) SetText(text string) {
	e.text = text
	e.texts = append(e.texts, text)
}

func (e *fakeElement) AddClass(name string) {
	if !e.HasClass(name) {
		e.classes = append(e.classes, name)
	}
}

func (e *fakeElement) RemoveClass(name string) {
	for i, c := range e.classes {
		if c == name {
			e.classes = append(e.classes[:i], e.classes[i+1:]...)
			return
		}
	}
}

func (e *fakeElement) HasClass(name string) bool {
	for _, c := range e.classes {
		if c == name {
			return true
		}
	}
	return false
}

func (e *fakeElement) SetStyle(name, value string) { e.styles[name] = value }

func (e *fakeElement) OnMouseEnter(fn func()) func() {
	i := len(e.enter)
	e.enter = append(e.enter, fn)
	return func() { e.enter[i] = nil }
}

func (e *fakeElement) mouseEnter() {
	for _, fn := range e.enter {
		if fn != nil {
			fn()
		}
	}
}

// distinct collapses consecutive repeats, giving the text a viewer would see
// change over time.
func distinct(texts []string) []string {
	var out []string
	for i, s := range texts {
		if i > 0 && texts[i-1] == s {
			continue
		}
		out = append(out, s)
	}
	return out
}

// fakeDocument serves every element carrying a data-animation attribute.
type fakeDocument struct {
	body *fakeElement
	els  []*fakeElement
}

func (d *fakeDocument) Body() Element {
	if d.body == nil {
		return nil
	}
	return d.body
}

func (d *fakeDocument) QuerySelectorAll(string) []Element {
	var out []Element
	for _, el := range d.els {
		if _, ok := el.Data("animation"); ok {
			out = append(out, el)
		}
	}
	return out
}

// recordTweener records the effects it is asked to play.
type recordTweener struct {
	played []RevealConfig
}

func (r *recordTweener) Tween(_ Element, cfg RevealConfig) {
	r.played = append(r.played, cfg)
}
