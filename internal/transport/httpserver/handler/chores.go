package handler

import (
	"net/http"
	"strings"
	"time"

	choredomain "chore-tracker/internal/domain/chore"
)

type createChoreRequest struct {
	ChildID     int64   `json:"child_id"`
	Title       string  `json:"title"`
	DueDate     *string `json:"due_date"`
	Completed   *bool   `json:"completed"`
	Description *string `json:"description"`
}

type updateChoreRequest struct {
	ChildID     *int64       `json:"child_id"`
	Title       *string      `json:"title"`
	DueDate     nullableDate `json:"due_date"`
	Completed   *bool        `json:"completed"`
	Description *string      `json:"description"`
}

type choreResponse struct {
	ID          int64     `json:"id"`
	ChildID     int64     `json:"child_id"`
	OwnerUserID int64     `json:"owner_user_id"`
	Title       string    `json:"title"`
	DueDate     *string   `json:"due_date"`
	Completed   bool      `json:"completed"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (h *Handlers) ListChores(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	childID, err := parseInt64Query(r, "child_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	completed, err := parseBoolQuery(r, "completed")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	chores, err := h.Chores.List(r.Context(), userID, choredomain.ListFilter{ChildID: childID, Completed: completed})
	if err != nil {
		h.failure(w, "chores.list", err, "user_id", userID)
		return
	}

	items := make([]choreResponse, 0, len(chores))
	for i := range chores {
		items = append(items, toChoreResponse(&chores[i]))
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) GetChore(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	chore, err := h.Chores.Get(r.Context(), userID, id)
	if err != nil {
		h.failure(w, "chores.get", err, "user_id", userID, "chore_id", id)
		return
	}

	writeJSON(w, http.StatusOK, toChoreResponse(chore))
}

func (h *Handlers) CreateChore(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}

	var req createChoreRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	if req.ChildID <= 0 || strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "child_id and title are required")
		return
	}
	dueDate, err := parseDateParam(req.DueDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	input := choredomain.CreateInput{
		ChildID:     req.ChildID,
		Title:       req.Title,
		DueDate:     dueDate,
		Description: req.Description,
	}
	if req.Completed != nil {
		input.Completed = *req.Completed
	}

	created, err := h.Chores.Create(r.Context(), userID, input)
	if err != nil {
		h.failure(w, "chores.create", err, "user_id", userID, "child_id", req.ChildID)
		return
	}

	writeJSON(w, http.StatusCreated, toChoreResponse(created))
}

func (h *Handlers) UpdateChore(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req updateChoreRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	input := choredomain.UpdateInput{
		ChildID:     req.ChildID,
		Title:       req.Title,
		Completed:   req.Completed,
		Description: req.Description,
	}
	if req.DueDate.Set {
		dueDate, err := parseDateParam(req.DueDate.Value)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		input.DueDate = dueDate
		input.ClearDueDate = dueDate == nil
	}

	updated, err := h.Chores.Update(r.Context(), userID, id, input)
	if err != nil {
		h.failure(w, "chores.update", err, "user_id", userID, "chore_id", id)
		return
	}

	writeJSON(w, http.StatusOK, toChoreResponse(updated))
}

func (h *Handlers) DeleteChore(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Chores.Delete(r.Context(), userID, id); err != nil {
		h.failure(w, "chores.delete", err, "user_id", userID, "chore_id", id)
		return
	}

	writeNoContent(w)
}

func toChoreResponse(chore *choredomain.Chore) choreResponse {
	return choreResponse{
		ID:          chore.ID,
		ChildID:     chore.ChildID,
		OwnerUserID: chore.OwnerUserID,
		Title:       chore.Title,
		DueDate:     formatDate(chore.DueDate),
		Completed:   chore.Completed,
		Description: chore.Description,
		CreatedAt:   chore.CreatedAt,
		UpdatedAt:   chore.UpdatedAt,
	}
}
