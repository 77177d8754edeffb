package auth

import (
	"encoding/json"
	"net/http"

	"github.com/user/adboard-go/apperror"
)

// WriteJSON serializes data to JSON and writes it with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}

// WriteError converts any error into a standardized error response. Errors
// that are not AppErrors are wrapped as internal errors so clients always see
// a consistent body.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("an unexpected error occurred: "+err.Error(), err)
	}
	WriteJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
