//go:build !js

package reveal

// inert is the zero jsObject. The gost-dom wrappers embed it and override
// only the calls the DOM layer makes on them.
type inert struct{}

func (inert) Set(string, interface{})              {}
func (inert) Get(string) jsObject                  { return nil }
func (inert) Call(string, ...interface{}) jsObject { return nil }
func (inert) String() string                       { return "" }
func (inert) Equal(jsObject) bool                  { return false }
func (inert) IsUndefined() bool                    { return false }
func (inert) Bool() bool                           { return false }
func (inert) Int() int                             { return 0 }
func (inert) Float() float64                       { return 0 }

type stringObject struct {
	inert
	s string
}

func (s *stringObject) String() string { return s.s }

type boolObject struct {
	inert
	b bool
}

func (b *boolObject) Bool() bool { return b.b }

type intObject struct {
	inert
	n int
}

func (i *intObject) Int() int { return i.n }
