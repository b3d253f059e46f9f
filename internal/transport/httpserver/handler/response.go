package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"chore-tracker/internal/domain/ownership"
	"chore-tracker/internal/domain/token"
	userdomain "chore-tracker/internal/domain/user"
)

const (
	msgInvalidJSON  = "invalid json body"
	msgUnauthorized = "not authenticated"
	msgNotFound     = "not found"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// failure maps a domain error onto the response. Rows that are missing and
// rows owned by someone else both answer 401 so existence never leaks.
func (h *Handlers) failure(w http.ResponseWriter, op string, err error, args ...any) {
	switch {
	case errors.Is(err, ownership.ErrValidation),
		errors.Is(err, ownership.ErrNoChanges),
		errors.Is(err, ownership.ErrUnknownColumn),
		errors.Is(err, userdomain.ErrValidation),
		errors.Is(err, userdomain.ErrNoChanges):
		h.log.BusinessError(op+": invalid request", err, args...)
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ownership.ErrNotFound),
		errors.Is(err, userdomain.ErrUserNotFound):
		h.log.BusinessError(op+": not found under owner", err, args...)
		writeError(w, http.StatusUnauthorized, msgNotFound)
	case errors.Is(err, ownership.ErrParentNotFound):
		h.log.BusinessError(op+": parent not found under owner", err, args...)
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, userdomain.ErrInvalidCredentials),
		errors.Is(err, token.ErrUnknownToken),
		errors.Is(err, token.ErrTokenExpired),
		errors.Is(err, token.ErrTokenMalformed):
		h.log.BusinessError(op+": unauthorized", err, args...)
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, userdomain.ErrEmailTaken):
		h.log.BusinessError(op+": email taken", err, args...)
		writeError(w, http.StatusConflict, err.Error())
	default:
		h.log.InternalError(op+": failed", err, args...)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
