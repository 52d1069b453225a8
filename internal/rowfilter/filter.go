// Package rowfilter keeps the visibility of table rows in sync with a free-text
// query. A row is shown when the query is a case-insensitive substring of its
// display name, category or original name.
package rowfilter

import "reflect"

// Input is a text control that announces edits.
type Input interface {
	Value() string
	// OnInput registers fn to run on every edit and returns a function that
	// removes it.
	OnInput(fn func()) (cancel func())
}

// Target is one row whose visibility the filter controls. Row is called on
// every evaluation so the fields reflect the current rendering.
type Target interface {
	Row() Row
	SetVisible(visible bool)
}

// Subscription detaches a filter from its input.
type Subscription interface {
	Close()
}

// Option configures a Filter.
type Option func(*Filter)

// WithNormalizer overrides the locale used to fold text.
func WithNormalizer(n Normalizer) Option {
	return func(f *Filter) {
		f.normalizer = n
	}
}

// Filter owns a fixed, ordered set of targets captured at construction.
type Filter struct {
	targets    []Target
	visible    []bool
	normalizer Normalizer
}

// New captures targets. Later changes to the caller's slice are not observed.
func New(targets []Target, opts ...Option) *Filter {
	captured := make([]Target, 0, len(targets))
	for _, t := range targets {
		if t != nil {
			captured = append(captured, t)
		}
	}
	f := &Filter{
		targets:    captured,
		visible:    make([]bool, len(captured)),
		normalizer: DefaultNormalizer,
	}
	for i := range f.visible {
		f.visible[i] = true
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Len returns the number of captured rows.
func (f *Filter) Len() int {
	return len(f.targets)
}

// Apply evaluates every captured row against raw, in order, and updates its
// visibility before returning.
func (f *Filter) Apply(raw string) {
	q := f.normalizer.Query(raw)
	for i, t := range f.targets {
		shown := f.normalizer.Matches(t.Row(), q)
		f.visible[i] = shown
		t.SetVisible(shown)
	}
}

// Visible returns a copy of the projection produced by the last Apply. Before
// any Apply every row is visible.
func (f *Filter) Visible() []bool {
	out := make([]bool, len(f.visible))
	copy(out, f.visible)
	return out
}

type subscription struct {
	cancel func()
}

func (s *subscription) Close() {
	if s.cancel == nil {
		return
	}
	cancel := s.cancel
	s.cancel = nil
	cancel()
}

// Attach wires a filter over targets to in. Every input event re-reads the
// control's value and reapplies the filter. A nil input, including a typed nil
// pointer, yields an inert subscription: no listener is registered and
// nothing is evaluated.
func Attach(in Input, targets []Target, opts ...Option) Subscription {
	if isNil(in) {
		return &subscription{}
	}
	f := New(targets, opts...)
	cancel := in.OnInput(func() {
		f.Apply(in.Value())
	})
	return &subscription{cancel: cancel}
}

func isNil(in Input) bool {
	if in == nil {
		return true
	}
	v := reflect.ValueOf(in)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
