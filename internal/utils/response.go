package utils

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the payload of every error response
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the HTTP status code and a human readable message
type ErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// MessageResponse is the body of endpoints that only report an outcome
type MessageResponse struct {
	Message string `json:"message"`
}

// WriteJSONResponse writes a JSON response to the HTTP response writer
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteErrorResponse writes {"error": {"code": status, "message": message}}
func WriteErrorResponse(w http.ResponseWriter, status int, message string) {
	WriteJSONResponse(w, status, ErrorBody{Error: ErrorDetail{Code: status, Message: message}})
}

// WriteMessage writes {"message": message}
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSONResponse(w, status, MessageResponse{Message: message})
}
