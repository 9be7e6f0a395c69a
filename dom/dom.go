//go:build js && wasm

// Package dom binds the form handler to a browser page.
package dom

import (
	"context"
	"fmt"
	"syscall/js"

	"urlcheck/form"
)

// IDs names the page elements the handler needs.
type IDs struct {
	Form           string
	Input          string
	Results        string
	ResultsContent string
}

// DefaultIDs matches the ids used by the served index page.
var DefaultIDs = IDs{
	Form:           "urlForm",
	Input:          "url",
	Results:        "result",
	ResultsContent: "modelResults",
}

// Page is a form.View over real DOM elements.
type Page struct {
	document js.Value
	form     js.Value
	input    js.Value
	results  js.Value
	content  js.Value
	listener js.Func
}

// Bind looks up every element in ids and fails if one is missing.
func Bind(document js.Value, ids IDs) (*Page, error) {
	lookup := func(id string) (js.Value, error) {
		el := document.Call("getElementById", id)
		if el.IsNull() || el.IsUndefined() {
			return js.Value{}, fmt.Errorf("dom: element #%s not found", id)
		}
		return el, nil
	}

	p := &Page{document: document}
	var err error
	if p.form, err = lookup(ids.Form); err != nil {
		return nil, err
	}
	if p.input, err = lookup(ids.Input); err != nil {
		return nil, err
	}
	if p.results, err = lookup(ids.Results); err != nil {
		return nil, err
	}
	if p.content, err = lookup(ids.ResultsContent); err != nil {
		return nil, err
	}
	return p, nil
}

// Attr returns an attribute of the form element, or "" when absent.
func (p *Page) Attr(name string) string {
	v := p.form.Call("getAttribute", name)
	if v.IsNull() {
		return ""
	}
	return v.String()
}

func (p *Page) Value() string {
	return p.input.Get("value").String()
}

func (p *Page) ClearResults() {
	p.content.Set("innerHTML", "")
}

// AppendResult adds a div.model-result. Server-supplied strings are inserted
// as text nodes, never as markup.
func (p *Page) AppendResult(b form.Block) {
	div := p.document.Call("createElement", "div")
	div.Set("className", "model-result")

	strong := p.document.Call("createElement", "strong")
	strong.Set("textContent", b.Model+":")
	div.Call("appendChild", strong)

	text := fmt.Sprintf(" Encoded Prediction: %s, Human-Readable Label: %s", b.EncodedPrediction, b.Label)
	div.Call("appendChild", p.document.Call("createTextNode", text))
	p.content.Call("appendChild", div)
}

func (p *Page) ShowResults() {
	p.results.Get("style").Set("display", "block")
}

func (p *Page) Alert(msg string) {
	js.Global().Call("alert", msg)
}

type submitEvent struct {
	v js.Value
}

func (e submitEvent) PreventDefault() {
	e.v.Call("preventDefault")
}

// Listen registers h on the form's submit event. Listen owns suppression:
// preventDefault only works while the event is dispatching, so it runs inside
// the JS callback and Submit gets no event. The prediction runs on its own
// goroutine because callbacks must not block.
func (p *Page) Listen(h *form.Handler) {
	p.listener = js.FuncOf(func(this js.Value, args []js.Value) any {
		submitEvent{v: args[0]}.PreventDefault()
		go func() {
			_ = h.Submit(context.Background(), nil)
		}()
		return nil
	})
	p.form.Call("addEventListener", "submit", p.listener)
}
