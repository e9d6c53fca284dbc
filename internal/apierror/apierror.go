// Package apierror provides the response envelopes of the API.
// Every error sent to a client goes through New so that driver errors and
// stack traces never leak.
package apierror

// APIError is the body of every 4xx/5xx response: {"error": "..."}.
type APIError struct {
	Error string `json:"error"`
}

func New(msg string) *APIError {
	return &APIError{Error: msg}
}

// Message is the body of informational responses: {"message": "..."}.
type Message struct {
	Message string `json:"message"`
}

func NewMessage(msg string) *Message {
	return &Message{Message: msg}
}
