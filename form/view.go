package form

import (
	"fmt"
	"sort"

	"urlcheck/backend"
)

// View is everything the submission handler needs from the page. It replaces
// lookups of page-global elements; implementations validate that their
// elements exist when they are constructed.
type View interface {
	// Value returns the current content of the URL input.
	Value() string
	ClearResults()
	AppendResult(Block)
	// ShowResults makes the results container visible.
	ShowResults()
	Alert(msg string)
}

// Event is the submit event that triggered the handler.
type Event interface {
	PreventDefault()
}

// Block is one rendered model result.
type Block struct {
	Model             string
	EncodedPrediction string
	Label             string
}

func (b Block) String() string {
	return fmt.Sprintf("%s: Encoded Prediction: %s, Human-Readable Label: %s", b.Model, b.EncodedPrediction, b.Label)
}

// Blocks converts predictions into blocks ordered by model name.
func Blocks(preds backend.Predictions) []Block {
	models := make([]string, 0, len(preds))
	for model := range preds {
		models = append(models, model)
	}
	sort.Strings(models)

	blocks := make([]Block, 0, len(models))
	for _, model := range models {
		res := preds[model]
		enc := ""
		if res.EncodedPrediction != nil {
			enc = fmt.Sprint(res.EncodedPrediction)
		}
		blocks = append(blocks, Block{
			Model:             model,
			EncodedPrediction: enc,
			Label:             res.HumanReadableLabel,
		})
	}
	return blocks
}
