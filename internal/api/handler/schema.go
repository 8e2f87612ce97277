package handler

// errorResponse documents the error envelope rendered by the central HTTP
// error handler. Handlers never build it directly; they return domain errors
// and let the error handler map them.
type errorResponse struct {
	Error string `json:"error"`
}
