package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"chore-tracker/internal/config"
	"chore-tracker/internal/db/dbtest"
	"chore-tracker/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type apiClient struct {
	t       *testing.T
	handler http.Handler
}

func newAPIClient(t *testing.T) *apiClient {
	t.Helper()
	cfg := config.Config{
		Env:            "test",
		RequestTimeout: 10 * time.Second,
		CORSOrigins:    []string{"http://localhost:3000"},
		Auth: config.AuthConfig{
			TokenSecret: "test-secret",
			TokenTTL:    time.Hour,
			BcryptCost:  bcrypt.MinCost,
		},
	}
	return &apiClient{t: t, handler: NewHandler(cfg, dbtest.Open(t), logger.Discard())}
}

func (c *apiClient) do(method, path, token string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var payload bytes.Buffer
	if body != nil {
		switch value := body.(type) {
		case string:
			payload.WriteString(value)
		default:
			require.NoError(c.t, json.NewEncoder(&payload).Encode(value))
		}
	}

	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var value T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &value), rec.Body.String())
	return value
}

func (c *apiClient) register(name, email, password string) {
	c.t.Helper()
	rec := c.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(c.t, http.StatusCreated, rec.Code, rec.Body.String())
}

func (c *apiClient) login(email, password string) string {
	c.t.Helper()
	rec := c.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(c.t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[map[string]string](c.t, rec)["token"]
}

func (c *apiClient) create(path, token string, body any) int64 {
	c.t.Helper()
	rec := c.do(http.MethodPost, path, token, body)
	require.Equal(c.t, http.StatusCreated, rec.Code, rec.Body.String())
	return int64(decode[map[string]any](c.t, rec)["id"].(float64))
}

func (c *apiClient) user(name string) string {
	c.t.Helper()
	email := name + "@example.com"
	c.register(name, email, "secret-"+name)
	return c.login(email, "secret-"+name)
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, rec)["error"]
}

func TestHealth(t *testing.T) {
	c := newAPIClient(t)

	rec := c.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, rec)["status"])
}

func TestRegisterAndLogin(t *testing.T) {
	c := newAPIClient(t)

	rec := c.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Ann", "email": "ann@example.com", "password": "p",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[map[string]any](t, rec)
	assert.Equal(t, "ann@example.com", created["email"])
	assert.NotEqual(t, "p", created["password"])
	assert.NotContains(t, created, "token")

	rec = c.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Other", "email": "ann@example.com", "password": "q",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = c.do(http.MethodPost, "/api/auth/register", "", map[string]string{"name": "NoMail"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ann@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = c.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ann@example.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ann@example.com", "password": "p"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Equal(t, "Welcome ann@example.com", body["message"])
	assert.NotEmpty(t, body["token"])
}

func TestLoginWithLongestAllowedNameAndEmail(t *testing.T) {
	c := newAPIClient(t)

	name := strings.Repeat("é", 100)
	email := strings.Repeat("a", 254-len("@example.com")) + "@example.com"
	c.register(name, email, "p")

	token := c.login(email, "p")
	assert.Greater(t, len(token), 512, "tokens carrying long claims must still be storable")

	rec := c.do(http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, name, decode[map[string]any](t, rec)["name"])

	rec = c.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name + "x", "email": "b@example.com", "password": "p",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginThenFamilies(t *testing.T) {
	c := newAPIClient(t)
	token := c.user("ann")

	c.create("/api/families", token, map[string]string{"surname": "Smith"})

	rec := c.do(http.MethodGet, "/api/families", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	families := decode[[]map[string]any](t, rec)
	require.Len(t, families, 1)
	assert.Equal(t, "Smith", families[0]["surname"])
	assert.NotContains(t, families[0], "children")

	rec = c.do(http.MethodGet, "/api/families", "Bearer "+token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMissingAndBogusCredentials(t *testing.T) {
	c := newAPIClient(t)

	rec := c.do(http.MethodGet, "/api/families", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "no credential supplied", errorMessage(t, rec))

	rec = c.do(http.MethodGet, "/api/families", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = c.do(http.MethodPost, "/api/auth/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCrossUserIsolation(t *testing.T) {
	c := newAPIClient(t)
	ann := c.user("ann")
	bob := c.user("bob")

	familyID := c.create("/api/families", ann, map[string]string{"surname": "Smith"})
	childID := c.create("/api/children", ann, map[string]any{"family_id": familyID, "name": "Tim"})
	choreID := c.create("/api/chores", ann, map[string]any{"child_id": childID, "title": "Dishes"})

	for _, path := range []string{
		fmt.Sprintf("/api/families/%d", familyID),
		fmt.Sprintf("/api/children/%d", childID),
		fmt.Sprintf("/api/chores/%d", choreID),
	} {
		rec := c.do(http.MethodGet, path, bob, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)

		rec = c.do(http.MethodDelete, path, bob, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rec := c.do(http.MethodPut, fmt.Sprintf("/api/families/%d", familyID), bob, map[string]string{"surname": "Hijacked"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = c.do(http.MethodPut, fmt.Sprintf("/api/chores/%d", choreID), bob, map[string]bool{"completed": true})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = c.do(http.MethodPost, "/api/children", bob, map[string]any{"family_id": familyID, "name": "Intruder"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = c.do(http.MethodPost, "/api/chores", bob, map[string]any{"child_id": childID, "title": "Sneaky"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	for _, path := range []string{"/api/families", "/api/children", "/api/chores"} {
		rec = c.do(http.MethodGet, path, bob, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, decode[[]map[string]any](t, rec), path)
	}

	rec = c.do(http.MethodGet, fmt.Sprintf("/api/families/%d", familyID), ann, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Smith", decode[map[string]any](t, rec)["surname"])

	rec = c.do(http.MethodGet, fmt.Sprintf("/api/chores/%d", choreID), ann, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode[map[string]any](t, rec)["completed"])
}

func TestLogoutRevokesToken(t *testing.T) {
	c := newAPIClient(t)
	token := c.user("ann")

	rec := c.do(http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode[map[string]string](t, rec)["message"])

	rec = c.do(http.MethodGet, "/api/users/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = c.do(http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNewLoginSupersedesPreviousToken(t *testing.T) {
	c := newAPIClient(t)
	first := c.user("ann")
	second := c.login("ann@example.com", "secret-ann")
	require.NotEqual(t, first, second)

	rec := c.do(http.MethodGet, "/api/families", first, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = c.do(http.MethodGet, "/api/families", second, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteIsIdempotent(t *testing.T) {
	c := newAPIClient(t)
	token := c.user("ann")

	familyID := c.create("/api/families", token, map[string]string{"surname": "Smith"})
	childID := c.create("/api/children", token, map[string]any{"family_id": familyID, "name": "Tim"})
	choreID := c.create("/api/chores", token, map[string]any{"child_id": childID, "title": "Dishes"})

	path := fmt.Sprintf("/api/chores/%d", choreID)
	rec := c.do(http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = c.do(http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "not found", errorMessage(t, rec))
}

func TestFamilyExpansion(t *testing.T) {
	c := newAPIClient(t)
	token := c.user("ann")

	familyID := c.create("/api/families", token, map[string]string{"surname": "Smith"})
	childID := c.create("/api/children", token, map[string]any{"family_id": familyID, "name": "Tim"})
	c.create("/api/chores", token, map[string]any{
		"child_id": childID, "title": "Dishes", "due_date": "2026-05-01", "description": "after dinner",
	})
	c.create("/api/families", token, map[string]string{"surname": "Empty"})

	rec := c.do(http.MethodGet, "/api/families?expand=true", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	type chore struct {
		Title   string  `json:"title"`
		DueDate *string `json:"due_date"`
	}
	type child struct {
		Name   string   `json:"name"`
		Chores *[]chore `json:"chores"`
	}
	type family struct {
		Surname  string   `json:"surname"`
		Children *[]child `json:"children"`
	}

	families := decode[[]family](t, rec)
	require.Len(t, families, 2)

	require.NotNil(t, families[0].Children)
	require.Len(t, *families[0].Children, 1)
	tim := (*families[0].Children)[0]
	assert.Equal(t, "Tim", tim.Name)
	require.NotNil(t, tim.Chores)
	require.Len(t, *tim.Chores, 1)
	assert.Equal(t, "Dishes", (*tim.Chores)[0].Title)
	require.NotNil(t, (*tim.Chores)[0].DueDate)
	assert.Equal(t, "2026-05-01", *(*tim.Chores)[0].DueDate)

	require.NotNil(t, families[1].Children, "a family without children expands to []")
	assert.Empty(t, *families[1].Children)

	rec = c.do(http.MethodGet, fmt.Sprintf("/api/children/%d?expand=true", childID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	expandedChild := decode[child](t, rec)
	require.NotNil(t, expandedChild.Chores)
	assert.Len(t, *expandedChild.Chores, 1)

	rec = c.do(http.MethodGet, "/api/families?expand=maybe", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMalformedBodies(t *testing.T) {
	c := newAPIClient(t)
	token := c.user("ann")
	other := c.user("bob")
	familyID := c.create("/api/families", token, map[string]string{"surname": "Smith"})
	path := fmt.Sprintf("/api/families/%d", familyID)

	rec := c.do(http.MethodPost, "/api/families", token, "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid json body", errorMessage(t, rec))

	rec = c.do(http.MethodPost, "/api/families", token, map[string]any{"surname": "Smith", "owner_user_id": 2})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "ownership cannot be supplied by the client")

	rec = c.do(http.MethodPut, path, token, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(http.MethodPut, path, other, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "an empty update is rejected before any lookup")

	rec = c.do(http.MethodGet, "/api/families/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(http.MethodPost, "/api/chores", token, map[string]any{"child_id": 1, "title": "x", "due_date": "May 1st"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChoreFiltersAndUpdate(t *testing.T) {
	c := newAPIClient(t)
	token := c.user("ann")

	familyID := c.create("/api/families", token, map[string]string{"surname": "Smith"})
	tim := c.create("/api/children", token, map[string]any{"family_id": familyID, "name": "Tim"})
	ann := c.create("/api/children", token, map[string]any{"family_id": familyID, "name": "Ann"})
	dishes := c.create("/api/chores", token, map[string]any{"child_id": tim, "title": "Dishes"})
	c.create("/api/chores", token, map[string]any{"child_id": ann, "title": "Laundry"})

	rec := c.do(http.MethodPut, fmt.Sprintf("/api/chores/%d", dishes), token, map[string]any{"completed": true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode[map[string]any](t, rec)["completed"])

	rec = c.do(http.MethodGet, "/api/chores?completed=true", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	done := decode[[]map[string]any](t, rec)
	require.Len(t, done, 1)
	assert.Equal(t, "Dishes", done[0]["title"])

	rec = c.do(http.MethodGet, fmt.Sprintf("/api/chores?child_id=%d", ann), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	forAnn := decode[[]map[string]any](t, rec)
	require.Len(t, forAnn, 1)
	assert.Equal(t, "Laundry", forAnn[0]["title"])

	rec = c.do(http.MethodGet, fmt.Sprintf("/api/children?family_id=%d", familyID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 2)
}

func TestMeAndAccountDeletion(t *testing.T) {
	c := newAPIClient(t)
	token := c.user("ann")
	c.create("/api/families", token, map[string]string{"surname": "Smith"})

	rec := c.do(http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[map[string]any](t, rec)
	assert.Equal(t, "ann@example.com", me["email"])
	assert.NotContains(t, me, "password")
	assert.Len(t, me["families"], 1)

	rec = c.do(http.MethodPut, "/api/users/me", token, map[string]string{"name": "Annie"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Annie", decode[map[string]any](t, rec)["name"])

	rec = c.do(http.MethodPut, "/api/users/me", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(http.MethodDelete, "/api/users/me", token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = c.do(http.MethodGet, "/api/users/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = c.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ann@example.com", "password": "secret-ann"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChoreDueDateCanBeCleared(t *testing.T) {
	c := newAPIClient(t)
	token := c.user("ann")

	familyID := c.create("/api/families", token, map[string]string{"surname": "Smith"})
	childID := c.create("/api/children", token, map[string]any{"family_id": familyID, "name": "Tim"})
	choreID := c.create("/api/chores", token, map[string]any{"child_id": childID, "title": "Dishes", "due_date": "2026-05-01"})
	path := fmt.Sprintf("/api/chores/%d", choreID)

	for _, body := range []string{`{"due_date": null}`, `{"due_date": ""}`} {
		rec := c.do(http.MethodPut, path, token, `{"due_date": "2026-06-01"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "2026-06-01", decode[map[string]any](t, rec)["due_date"])

		rec = c.do(http.MethodPut, path, token, body)
		require.Equal(t, http.StatusOK, rec.Code, body)
		assert.Nil(t, decode[map[string]any](t, rec)["due_date"], body)

		rec = c.do(http.MethodGet, path, token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, decode[map[string]any](t, rec)["due_date"], body)
	}

	rec := c.do(http.MethodPut, path, token, `{"title": "Dry dishes"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode[map[string]any](t, rec)["due_date"])

	rec = c.do(http.MethodPut, path, token, `{"due_date": "soon"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(http.MethodPut, path, token, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
