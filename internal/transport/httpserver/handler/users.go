package handler

import (
	"net/http"
	"time"

	userdomain "chore-tracker/internal/domain/user"
)

type updateMeRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type meResponse struct {
	userResponse
	Families []familyResponse `json:"families"`
}

func (h *Handlers) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}

	user, err := h.Users.Get(r.Context(), userID)
	if err != nil {
		h.failure(w, "users.get_me", err, "user_id", userID)
		return
	}
	families, err := h.Families.List(r.Context(), userID, false)
	if err != nil {
		h.failure(w, "users.get_me: list families", err, "user_id", userID)
		return
	}

	response := meResponse{
		userResponse: toUserResponse(user),
		Families:     make([]familyResponse, 0, len(families)),
	}
	for i := range families {
		response.Families = append(response.Families, toFamilyResponse(&families[i]))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}

	var req updateMeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	updated, err := h.Users.Update(r.Context(), userID, userdomain.UpdateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.failure(w, "users.update_me", err, "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(updated))
}

func (h *Handlers) DeleteMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}

	if err := h.Users.Delete(r.Context(), userID); err != nil {
		h.failure(w, "users.delete_me", err, "user_id", userID)
		return
	}

	h.log.Info("users.delete_me: account deleted", "user_id", userID)
	writeNoContent(w)
}

func toUserResponse(user *userdomain.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
