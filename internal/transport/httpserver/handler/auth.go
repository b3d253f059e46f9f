package handler

import (
	"net/http"
	"strings"
	"time"

	userdomain "chore-tracker/internal/domain/user"
	"chore-tracker/internal/transport/httpserver/middleware"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// registeredResponse is the stored row as created: the password is already
// hashed and no token has been issued yet.
type registeredResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	created, err := h.Users.Register(r.Context(), userdomain.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.failure(w, "auth.register", err, "email", req.Email)
		return
	}

	writeJSON(w, http.StatusCreated, registeredResponse{
		ID:        created.ID,
		Name:      created.Name,
		Email:     created.Email,
		Password:  created.Password,
		CreatedAt: created.CreatedAt,
		UpdatedAt: created.UpdatedAt,
	})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	session, err := h.Users.Login(r.Context(), userdomain.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		h.failure(w, "auth.login", err, "email", req.Email)
		return
	}

	h.log.Info("auth.login: user logged in", "user_id", session.User.ID)
	writeJSON(w, http.StatusOK, loginResponse{
		Message: "Welcome " + session.User.Email,
		Token:   session.Token,
	})
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	raw, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	if err := h.Users.Logout(r.Context(), userID, raw); err != nil {
		h.failure(w, "auth.logout", err, "user_id", userID)
		return
	}

	h.log.Info("auth.logout: token revoked", "user_id", userID)
	writeJSON(w, http.StatusOK, messageResponse{Message: "Logged out"})
}
