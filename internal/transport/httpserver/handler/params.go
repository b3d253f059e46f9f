package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"chore-tracker/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

const dateLayout = "2006-01-02"

func parseIDParam(r *http.Request, name string) (int64, error) {
	value := strings.TrimSpace(chi.URLParam(r, name))
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

func parseInt64Query(r *http.Request, name string) (*int64, error) {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil || parsed <= 0 {
		return nil, fmt.Errorf("invalid %s", name)
	}
	return &parsed, nil
}

func parseBoolQuery(r *http.Request, name string) (*bool, error) {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", name)
	}
	return &parsed, nil
}

// parseExpand reads ?expand=. Absent means no expansion.
func parseExpand(r *http.Request) (bool, error) {
	expand, err := parseBoolQuery(r, "expand")
	if err != nil || expand == nil {
		return false, err
	}
	return *expand, nil
}

func parseDateParam(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, trimmed)
	if err != nil {
		return nil, fmt.Errorf("due_date must be YYYY-MM-DD")
	}
	return &parsed, nil
}

// nullableDate tells an absent date apart from an explicit null or "", which
// both clear the stored value.
type nullableDate struct {
	Set   bool
	Value *string
}

func (d *nullableDate) UnmarshalJSON(data []byte) error {
	d.Set = true
	d.Value = nil
	if string(data) == "null" {
		return nil
	}
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	d.Value = &value
	return nil
}

func formatDate(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := value.Format(dateLayout)
	return &formatted
}

// caller returns the id of the authenticated user or answers 401.
func caller(w http.ResponseWriter, r *http.Request) (int64, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return 0, false
	}
	return identity.UserID, true
}
