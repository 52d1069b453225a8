//go:build js && wasm

// Package dom binds rowfilter to a browser document through syscall/js.
package dom

import (
	"syscall/js"

	"github.com/rpattn/filedash/internal/rowfilter"
)

// Selectors locate the search control, the rows and the per-row fields.
type Selectors struct {
	InputID  string
	Rows     string
	Display  string
	Category string
	Original string
}

// DefaultSelectors matches the markup rendered by the dashboard.
var DefaultSelectors = Selectors{
	InputID:  "search-input",
	Rows:     "#files-table tbody tr",
	Display:  ".col-display",
	Category: ".col-category",
	Original: ".col-original",
}

type input struct {
	el js.Value
}

func (in input) Value() string {
	v := in.el.Get("value")
	if v.Type() != js.TypeString {
		return ""
	}
	return v.String()
}

func (in input) OnInput(fn func()) func() {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		fn()
		return nil
	})
	in.el.Call("addEventListener", "input", cb)
	return func() {
		in.el.Call("removeEventListener", "input", cb)
		cb.Release()
	}
}

type row struct {
	el  js.Value
	sel Selectors
}

func (r row) Row() rowfilter.Row {
	return rowfilter.Row{
		Display:  textOf(r.el, r.sel.Display),
		Category: textOf(r.el, r.sel.Category),
		Original: textOf(r.el, r.sel.Original),
	}
}

func (r row) SetVisible(visible bool) {
	display := "none"
	if visible {
		display = ""
	}
	r.el.Get("style").Set("display", display)
}

func textOf(parent js.Value, selector string) rowfilter.Text {
	el := parent.Call("querySelector", selector)
	if el.IsNull() || el.IsUndefined() {
		return rowfilter.None()
	}
	content := el.Get("textContent")
	if content.Type() != js.TypeString {
		return rowfilter.None()
	}
	return rowfilter.Some(content.String())
}

// Bind locates the control and snapshots the rows in doc, then attaches a
// filter. A missing control yields an inert subscription.
func Bind(doc js.Value, sel Selectors, opts ...rowfilter.Option) rowfilter.Subscription {
	el := doc.Call("getElementById", sel.InputID)
	if el.IsNull() || el.IsUndefined() {
		return rowfilter.Attach(nil, nil)
	}

	nodes := doc.Call("querySelectorAll", sel.Rows)
	n := nodes.Get("length").Int()
	targets := make([]rowfilter.Target, 0, n)
	for i := 0; i < n; i++ {
		targets = append(targets, row{el: nodes.Index(i), sel: sel})
	}
	return rowfilter.Attach(input{el: el}, targets, opts...)
}

// OnReady runs fn once the document's structure has loaded.
func OnReady(doc js.Value, fn func()) {
	if doc.Get("readyState").String() != "loading" {
		fn()
		return
	}
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		cb.Release()
		fn()
		return nil
	})
	doc.Call("addEventListener", "DOMContentLoaded", cb, map[string]any{"once": true})
}
