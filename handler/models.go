package handler

// RequestPayload represents the expected JSON structure in the request body.
type RequestPayload struct {
	URL string `json:"url"`
}
