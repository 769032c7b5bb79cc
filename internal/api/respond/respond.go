// Package respond writes the uniform JSON envelope used by every endpoint:
// {"success":true,...} on success and {"success":false,...} on failure.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avelar/taskhub-be/internal/apperr"
	"github.com/rs/zerolog/log"
)

var development bool

// SetDevelopment toggles inclusion of internal error detail in failure
// responses. It is set once at startup.
func SetDevelopment(dev bool) {
	development = dev
}

type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    any                 `json:"data,omitempty"`
	Error   string              `json:"error,omitempty"`
	Errors  []apperr.FieldError `json:"errors,omitempty"`
}

// JSON writes v as a JSON body with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response body")
	}
}

// Success writes a success envelope with data and no message.
func Success(w http.ResponseWriter, status int, data any) {
	JSON(w, status, envelope{Success: true, Data: data})
}

// SuccessMsg writes a success envelope with a message and data.
func SuccessMsg(w http.ResponseWriter, status int, message string, data any) {
	JSON(w, status, envelope{Success: true, Message: message, Data: data})
}

// Fail writes a failure envelope with the given message.
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, envelope{Success: false, Message: message})
}

// Err maps an error onto the failure envelope using the apperr taxonomy.
// Unclassified errors become 500s; their detail is only exposed in
// development mode.
func Err(w http.ResponseWriter, err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		ae = apperr.Internal("Something went wrong!", err)
	}

	switch ae.Kind {
	case apperr.KindValidation:
		JSON(w, http.StatusBadRequest, envelope{Success: false, Message: ae.Message, Errors: ae.Fields})
	case apperr.KindConflict:
		Fail(w, http.StatusBadRequest, ae.Message)
	case apperr.KindUnauthorized:
		Fail(w, http.StatusUnauthorized, ae.Message)
	case apperr.KindNotFound:
		Fail(w, http.StatusNotFound, ae.Message)
	default:
		e := envelope{Success: false, Message: ae.Message, Error: "Internal server error"}
		if development && ae.Err != nil {
			e.Error = ae.Err.Error()
		}
		JSON(w, http.StatusInternalServerError, e)
	}
}
