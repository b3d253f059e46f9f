package handler

import (
	"net/http"

	childdomain "chore-tracker/internal/domain/child"
	choredomain "chore-tracker/internal/domain/chore"
	familydomain "chore-tracker/internal/domain/family"
	userdomain "chore-tracker/internal/domain/user"
	"chore-tracker/pkg/logger"
)

type Handlers struct {
	Users    *userdomain.Service
	Families *familydomain.Service
	Children *childdomain.Service
	Chores   *choredomain.Service
	log      logger.Logger
}

func New(users *userdomain.Service, families *familydomain.Service, children *childdomain.Service, chores *choredomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Users:    users,
		Families: families,
		Children: children,
		Chores:   chores,
		log:      log,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
