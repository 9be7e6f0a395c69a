package form

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"urlcheck/backend"
	"urlcheck/logging"
)

// AlertFailed is shown for every failure. Whether the API rejected the
// request or could not be reached is only visible in the logs.
const AlertFailed = "Error occurred during prediction."

// ErrStale is returned by Submit when a newer submission was issued before
// this one completed; its outcome is not rendered.
var ErrStale = errors.New("form: superseded by a newer submission")

var log *logrus.Logger

func init() {
	log = logging.GetLogger()
}

// Predictor fetches predictions for a URL.
type Predictor interface {
	Predict(ctx context.Context, url string) (backend.Predictions, error)
}

// Handler bridges a submit event to a single prediction call and reflects its
// outcome on the View. Only the most recently issued submission may change the
// view; older completions are dropped.
type Handler struct {
	predictor Predictor
	view      View

	mu     sync.Mutex
	latest uint64
}

// NewHandler returns a Handler rendering into v.
func NewHandler(p Predictor, v View) (*Handler, error) {
	if p == nil {
		return nil, errors.New("form: predictor is required")
	}
	if v == nil {
		return nil, errors.New("form: view is required")
	}
	return &Handler{predictor: p, view: v}, nil
}

// Submit handles one submit event. The default action of ev is suppressed
// before anything else happens. The returned error is informational: the user
// has already been alerted.
func (h *Handler) Submit(ctx context.Context, ev Event) error {
	if ev != nil {
		ev.PreventDefault()
	}

	h.mu.Lock()
	value := h.view.Value()
	h.latest++
	ticket := h.latest
	h.mu.Unlock()

	entry := log.WithFields(logrus.Fields{
		"submission": uuid.NewString(),
		"seq":        ticket,
	})
	entry.Debugf("Submitting %q", value)

	preds, err := h.predictor.Predict(ctx, value)

	h.mu.Lock()
	defer h.mu.Unlock()
	if ticket != h.latest {
		if err != nil {
			entry.WithError(err).Warnf("Dropping failed outcome, submission %d is newer", h.latest)
		} else {
			entry.Debugf("Dropping outcome, submission %d is newer", h.latest)
		}
		return ErrStale
	}

	if err != nil {
		if se, ok := backend.AsStatusError(err); ok {
			entry.Errorf("Error: %s", se.StatusText())
		} else {
			entry.Errorf("Request failed: %v", err)
		}
		h.view.Alert(AlertFailed)
		return err
	}

	entry.WithField("models", len(preds)).Debug("Prediction response")
	h.view.ClearResults()
	for _, b := range Blocks(preds) {
		h.view.AppendResult(b)
	}
	h.view.ShowResults()
	return nil
}
