//go:build js && wasm

package dom

import (
	"context"
	"syscall/js"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urlcheck/backend"
	"urlcheck/form"
)

// newDocument builds just enough of a document for Page: elements keep their
// children, and textContent concatenates them like the real DOM.
var newDocument = js.Global().Get("Function").New("ids", `
	function el(tag) {
		const e = {
			tagName: tag, children: [], style: {}, attrs: {}, listeners: {}, _text: "",
			appendChild(c) { this.children.push(c); return c; },
			getAttribute(n) { return n in this.attrs ? this.attrs[n] : null; },
			addEventListener(t, f) { this.listeners[t] = f; },
		};
		Object.defineProperty(e, "textContent", {
			get() { return this.children.length ? this.children.map((c) => c.textContent).join("") : this._text; },
			set(v) { this._text = v; this.children = []; },
		});
		Object.defineProperty(e, "innerHTML", {
			get() { return this.textContent; },
			set(v) { this._text = v; this.children = []; },
		});
		return e;
	}
	const byId = {};
	for (const id of ids) byId[id] = el("div");
	return {
		byId: byId,
		getElementById(id) { return byId[id] || null; },
		createElement(tag) { return el(tag); },
		createTextNode(t) { return { textContent: t }; },
	};
`)

func allIDs() []any {
	return []any{DefaultIDs.Form, DefaultIDs.Input, DefaultIDs.Results, DefaultIDs.ResultsContent}
}

func bindAll(t *testing.T) (*Page, js.Value) {
	t.Helper()
	doc := newDocument.Invoke(js.ValueOf(allIDs()))
	page, err := Bind(doc, DefaultIDs)
	require.NoError(t, err)
	return page, doc
}

func TestBindMissingElement(t *testing.T) {
	doc := newDocument.Invoke(js.ValueOf([]any{DefaultIDs.Form, DefaultIDs.Input, DefaultIDs.ResultsContent}))
	_, err := Bind(doc, DefaultIDs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "#result")
}

func TestAppendResultText(t *testing.T) {
	page, doc := bindAll(t)
	content := doc.Get("byId").Get(DefaultIDs.ResultsContent)

	page.AppendResult(form.Block{Model: "modelA", EncodedPrediction: "1", Label: "phishing"})

	require.Equal(t, 1, content.Get("children").Length())
	div := content.Get("children").Index(0)
	assert.Equal(t, "model-result", div.Get("className").String())
	assert.Equal(t, "modelA: Encoded Prediction: 1, Human-Readable Label: phishing", div.Get("textContent").String())

	page.ClearResults()
	assert.Equal(t, 0, content.Get("children").Length())
}

func TestShowResultsAndValue(t *testing.T) {
	page, doc := bindAll(t)
	doc.Get("byId").Get(DefaultIDs.Input).Set("value", "http://example.com")
	doc.Get("byId").Get(DefaultIDs.Form).Get("attrs").Set("data-endpoint", "/predict")

	assert.Equal(t, "http://example.com", page.Value())
	assert.Equal(t, "/predict", page.Attr("data-endpoint"))
	assert.Equal(t, "", page.Attr("missing"))

	page.ShowResults()
	assert.Equal(t, "block", doc.Get("byId").Get(DefaultIDs.Results).Get("style").Get("display").String())
}

type stubPredictor struct{}

func (stubPredictor) Predict(context.Context, string) (backend.Predictions, error) {
	return backend.Predictions{"modelA": {EncodedPrediction: 1, HumanReadableLabel: "phishing"}}, nil
}

func TestListenPreventsDefaultSynchronously(t *testing.T) {
	page, doc := bindAll(t)
	h, err := form.NewHandler(stubPredictor{}, page)
	require.NoError(t, err)
	page.Listen(h)
	defer page.listener.Release()

	prevented := false
	preventDefault := js.FuncOf(func(this js.Value, args []js.Value) any {
		prevented = true
		return nil
	})
	defer preventDefault.Release()
	ev := js.Global().Get("Object").New()
	ev.Set("preventDefault", preventDefault)

	doc.Get("byId").Get(DefaultIDs.Form).Get("listeners").Get("submit").Invoke(ev)
	assert.True(t, prevented)

	results := doc.Get("byId").Get(DefaultIDs.Results)
	deadline := time.Now().Add(2 * time.Second)
	for results.Get("style").Get("display").IsUndefined() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, "block", results.Get("style").Get("display").String())
	assert.Equal(t, "modelA: Encoded Prediction: 1, Human-Readable Label: phishing",
		doc.Get("byId").Get(DefaultIDs.ResultsContent).Get("textContent").String())
}
