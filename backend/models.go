package backend

// Request is the JSON body sent to the prediction API.
type Request struct {
	URL string `json:"url"`
}

// Result is one model's verdict.
type Result struct {
	EncodedPrediction  any    `json:"encoded_prediction"`
	HumanReadableLabel string `json:"human_readable_label"`
}

// Predictions maps a model name to its result. The server decides which
// models are present.
type Predictions map[string]Result
