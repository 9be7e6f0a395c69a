package form

import (
	"fmt"
	"io"
	"sync"
)

// TextView renders results as lines of text, for terminals and logs.
// Results are buffered until ShowResults, so a cleared run prints nothing.
type TextView struct {
	value string
	out   io.Writer
	alert io.Writer

	mu      sync.Mutex
	pending []Block
	visible bool
}

// NewTextView returns a TextView whose input holds value. Results are written
// to out and alerts to alert.
func NewTextView(value string, out, alert io.Writer) *TextView {
	return &TextView{value: value, out: out, alert: alert}
}

func (v *TextView) Value() string { return v.value }

func (v *TextView) ClearResults() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pending = v.pending[:0]
}

func (v *TextView) AppendResult(b Block) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pending = append(v.pending, b)
}

func (v *TextView) ShowResults() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.visible = true
	for _, b := range v.pending {
		fmt.Fprintln(v.out, b.String())
	}
}

func (v *TextView) Alert(msg string) {
	fmt.Fprintln(v.alert, msg)
}

// Visible reports whether ShowResults has been called.
func (v *TextView) Visible() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.visible
}
