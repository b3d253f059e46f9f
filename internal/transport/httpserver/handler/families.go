package handler

import (
	"net/http"
	"strings"
	"time"

	familydomain "chore-tracker/internal/domain/family"
)

type createFamilyRequest struct {
	Surname string `json:"surname"`
}

type updateFamilyRequest struct {
	Surname *string `json:"surname"`
}

type familyResponse struct {
	ID          int64            `json:"id"`
	OwnerUserID int64            `json:"owner_user_id"`
	Surname     string           `json:"surname"`
	Children    *[]childResponse `json:"children,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (h *Handlers) ListFamilies(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	expand, err := parseExpand(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	families, err := h.Families.List(r.Context(), userID, expand)
	if err != nil {
		h.failure(w, "families.list", err, "user_id", userID)
		return
	}

	items := make([]familyResponse, 0, len(families))
	for i := range families {
		items = append(items, toFamilyResponse(&families[i]))
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) GetFamily(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	expand, err := parseExpand(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	family, err := h.Families.Get(r.Context(), userID, id, expand)
	if err != nil {
		h.failure(w, "families.get", err, "user_id", userID, "family_id", id)
		return
	}

	writeJSON(w, http.StatusOK, toFamilyResponse(family))
}

func (h *Handlers) CreateFamily(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}

	var req createFamilyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	if strings.TrimSpace(req.Surname) == "" {
		writeError(w, http.StatusBadRequest, "surname is required")
		return
	}

	created, err := h.Families.Create(r.Context(), userID, familydomain.CreateInput{Surname: req.Surname})
	if err != nil {
		h.failure(w, "families.create", err, "user_id", userID)
		return
	}

	writeJSON(w, http.StatusCreated, toFamilyResponse(&familydomain.Expanded{Family: *created}))
}

func (h *Handlers) UpdateFamily(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req updateFamilyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	updated, err := h.Families.Update(r.Context(), userID, id, familydomain.UpdateInput{Surname: req.Surname})
	if err != nil {
		h.failure(w, "families.update", err, "user_id", userID, "family_id", id)
		return
	}

	writeJSON(w, http.StatusOK, toFamilyResponse(&familydomain.Expanded{Family: *updated}))
}

func (h *Handlers) DeleteFamily(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Families.Delete(r.Context(), userID, id); err != nil {
		h.failure(w, "families.delete", err, "user_id", userID, "family_id", id)
		return
	}

	writeNoContent(w)
}

func toFamilyResponse(family *familydomain.Expanded) familyResponse {
	response := familyResponse{
		ID:          family.ID,
		OwnerUserID: family.OwnerUserID,
		Surname:     family.Surname,
		CreatedAt:   family.CreatedAt,
		UpdatedAt:   family.UpdatedAt,
	}
	if family.Children != nil {
		children := make([]childResponse, 0, len(family.Children))
		for i := range family.Children {
			children = append(children, toChildResponse(&family.Children[i]))
		}
		response.Children = &children
	}
	return response
}
