//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/rpattn/filedash/internal/rowfilter"
	"github.com/rpattn/filedash/internal/rowfilter/dom"
)

func main() {
	doc := js.Global().Get("document")

	var opts []rowfilter.Option
	if lang := doc.Get("documentElement").Get("lang"); lang.Type() == js.TypeString {
		opts = append(opts, rowfilter.WithNormalizer(rowfilter.ParseNormalizer(lang.String())))
	}

	dom.OnReady(doc, func() {
		dom.Bind(doc, dom.DefaultSelectors, opts...)
	})
	select {}
}
