package handler

import (
	"net/http"
	"strings"
	"time"

	childdomain "chore-tracker/internal/domain/child"
)

type createChildRequest struct {
	FamilyID int64  `json:"family_id"`
	Name     string `json:"name"`
}

type updateChildRequest struct {
	FamilyID *int64  `json:"family_id"`
	Name     *string `json:"name"`
}

type childResponse struct {
	ID        int64            `json:"id"`
	FamilyID  int64            `json:"family_id"`
	Name      string           `json:"name"`
	Chores    *[]choreResponse `json:"chores,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func (h *Handlers) ListChildren(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	familyID, err := parseInt64Query(r, "family_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	expand, err := parseExpand(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	children, err := h.Children.List(r.Context(), userID, childdomain.ListFilter{FamilyID: familyID}, expand)
	if err != nil {
		h.failure(w, "children.list", err, "user_id", userID)
		return
	}

	items := make([]childResponse, 0, len(children))
	for i := range children {
		items = append(items, toChildResponse(&children[i]))
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) GetChild(w http.ResponseWriter, r *http.Request) {
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

	child, err := h.Children.Get(r.Context(), userID, id, expand)
	if err != nil {
		h.failure(w, "children.get", err, "user_id", userID, "child_id", id)
		return
	}

	writeJSON(w, http.StatusOK, toChildResponse(child))
}

func (h *Handlers) CreateChild(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}

	var req createChildRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	if req.FamilyID <= 0 || strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "family_id and name are required")
		return
	}

	created, err := h.Children.Create(r.Context(), userID, childdomain.CreateInput{FamilyID: req.FamilyID, Name: req.Name})
	if err != nil {
		h.failure(w, "children.create", err, "user_id", userID, "family_id", req.FamilyID)
		return
	}

	writeJSON(w, http.StatusCreated, toChildResponse(&childdomain.Expanded{Child: *created}))
}

func (h *Handlers) UpdateChild(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req updateChildRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	updated, err := h.Children.Update(r.Context(), userID, id, childdomain.UpdateInput{FamilyID: req.FamilyID, Name: req.Name})
	if err != nil {
		h.failure(w, "children.update", err, "user_id", userID, "child_id", id)
		return
	}

	writeJSON(w, http.StatusOK, toChildResponse(&childdomain.Expanded{Child: *updated}))
}

func (h *Handlers) DeleteChild(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Children.Delete(r.Context(), userID, id); err != nil {
		h.failure(w, "children.delete", err, "user_id", userID, "child_id", id)
		return
	}

	writeNoContent(w)
}

func toChildResponse(child *childdomain.Expanded) childResponse {
	response := childResponse{
		ID:        child.ID,
		FamilyID:  child.FamilyID,
		Name:      child.Name,
		CreatedAt: child.CreatedAt,
		UpdatedAt: child.UpdatedAt,
	}
	if child.Chores != nil {
		chores := make([]choreResponse, 0, len(child.Chores))
		for i := range child.Chores {
			chores = append(chores, toChoreResponse(&child.Chores[i]))
		}
		response.Chores = &chores
	}
	return response
}
