package httpapi

import "net/http"

type apiError struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	writeJSON(w, status, apiError{
		Error:     code,
		Message:   msg,
		RequestID: RequestIDFrom(r.Context()),
	})
}
