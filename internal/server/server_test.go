package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tenx/internal/auth"
	"tenx/internal/models"
	"tenx/internal/storage/sqlstore"
)

const (
	testPassword   = "password123"
	testServiceKey = "service-key-for-tests"
	superEmail     = "super@10x.dev"
	adminEmail     = "admin@10x.dev"
)

type testEnv struct {
	srv   *Server
	store *sqlstore.Store
	auth  *auth.Manager
	super models.AdminUser
	admin models.AdminUser
}

func newTestStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	store, err := sqlstore.Open(context.Background(), sqlstore.Options{
		Driver: sqlstore.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "tenx.db"),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newTestEnv(t *testing.T, opts Options) *testEnv {
	t.Helper()
	store := newTestStore(t)
	manager := auth.NewManager("server-test-secret-0123", testServiceKey, time.Hour)

	hash, err := manager.HashPassword(testPassword)
	require.NoError(t, err)
	ctx := context.Background()
	super, err := store.CreateAdminUser(ctx, models.AdminUser{Email: superEmail, Role: models.RoleSuperAdmin, IsActive: true, PasswordHash: hash})
	require.NoError(t, err)
	admin, err := store.CreateAdminUser(ctx, models.AdminUser{Email: adminEmail, Role: models.RoleAdmin, IsActive: true, PasswordHash: hash})
	require.NoError(t, err)

	return &testEnv{
		srv:   New(store, manager, nil, opts),
		store: store,
		auth:  manager,
		super: super,
		admin: admin,
	}
}

func (e *testEnv) token(t *testing.T, user models.AdminUser) string {
	t.Helper()
	token, err := e.auth.IssueSession(user)
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func projectBody(title, status string, productivity float64, tools ...string) map[string]any {
	return map[string]any{
		"title":        title,
		"domain":       "https://" + title + ".example.com",
		"description":  "A project",
		"progress":     50,
		"status":       status,
		"mySkills":     []string{"Go"},
		"aiSkills":     []string{},
		"tools":        tools,
		"productivity": productivity,
		"url":          "",
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, Options{})
	rec := doJSON(t, env.srv.Engine(), http.MethodGet, "/api/healthz", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCreateProject_RequiresSession(t *testing.T) {
	env := newTestEnv(t, Options{})
	rec := doJSON(t, env.srv.Engine(), http.MethodPost, "/api/projects", projectBody("alpha", "active", 3, "ChatGPT"), "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	n, err := env.store.CountProjects(context.Background())
	require.NoError(t, err)
	require.Zero(t, n)

	rec = doJSON(t, env.srv.Engine(), http.MethodPost, "/api/projects", projectBody("alpha", "active", 3, "ChatGPT"), "garbage-token")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t, Options{})
	h := env.srv.Engine()

	rec := doJSON(t, h, http.MethodPost, "/api/admin/login", map[string]string{"email": adminEmail, "password": "wrong-password"}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Empty(t, rec.Header().Values("Set-Cookie"))
	require.JSONEq(t, `{"error":"Invalid credentials"}`, rec.Body.String())

	rec = doJSON(t, h, http.MethodPost, "/api/admin/login", map[string]string{"email": "nobody@10x.dev", "password": testPassword}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/admin/login", map[string]string{"email": "Admin@10x.dev", "password": testPassword}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"success":true,"role":"admin"}`, rec.Body.String())

	var session *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie {
			session = c
		}
	}
	require.NotNil(t, session)
	require.True(t, session.HttpOnly)

	// The cookie alone authenticates later requests.
	req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	req.AddCookie(session)
	me := httptest.NewRecorder()
	h.ServeHTTP(me, req)
	require.Equal(t, http.StatusOK, me.Code)
	var body struct {
		User models.AdminUser `json:"user"`
	}
	decode(t, me, &body)
	require.Equal(t, adminEmail, body.User.Email)
	require.NotNil(t, body.User.LastLogin)

	rec = doJSON(t, h, http.MethodPost, "/api/admin/logout", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Set-Cookie"), SessionCookie+"=;")
}

func TestLogin_MissingFields(t *testing.T) {
	env := newTestEnv(t, Options{})
	rec := doJSON(t, env.srv.Engine(), http.MethodPost, "/api/admin/login", map[string]string{"email": adminEmail}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"Invalid data format"}`, rec.Body.String())
}

func TestProjects_CRUD(t *testing.T) {
	env := newTestEnv(t, Options{})
	h := env.srv.Engine()
	token := env.token(t, env.admin)

	rec := doJSON(t, h, http.MethodPost, "/api/projects", projectBody("alpha", " Active ", 3, " ChatGPT ", ""), token)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		Project models.Project `json:"project"`
	}
	decode(t, rec, &created)
	require.Positive(t, created.Project.ID)
	require.Equal(t, models.StatusActive, created.Project.Status)
	require.Equal(t, []string{"ChatGPT"}, created.Project.Tools)

	update := projectBody("alpha", "completed", 9, "ChatGPT", "Cursor")
	rec = doJSON(t, h, http.MethodPut, "/api/projects/1", update, token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/projects", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Projects []models.Project `json:"projects"`
		Fallback bool             `json:"fallback"`
	}
	decode(t, rec, &list)
	require.False(t, list.Fallback)
	require.Len(t, list.Projects, 1)
	require.Equal(t, models.StatusCompleted, list.Projects[0].Status)
	require.InDelta(t, 9.0, list.Projects[0].Productivity, 1e-9)

	rec = doJSON(t, h, http.MethodGet, "/api/projects/summaries", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"projects":[{"id":1,"title":"alpha","domain":"https://alpha.example.com"}],"fallback":false}`, rec.Body.String())

	rec = doJSON(t, h, http.MethodDelete, "/api/projects/1", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"success":true}`, rec.Body.String())

	activity, err := env.store.ListActivity(context.Background(), 10)
	require.NoError(t, err)
	actions := make([]string, 0, len(activity))
	for _, a := range activity {
		actions = append(actions, a.Action)
		require.Equal(t, env.admin.ID, a.UserID)
	}
	require.ElementsMatch(t, []string{"create_project", "update_project", "delete_project"}, actions)
}

func TestProjects_InvalidPayload(t *testing.T) {
	env := newTestEnv(t, Options{})
	h := env.srv.Engine()
	token := env.token(t, env.admin)

	cases := map[string]map[string]any{
		"progress": func() map[string]any { b := projectBody("a", "active", 1, "ChatGPT"); b["progress"] = 101; return b }(),
		"no tools": projectBody("a", "active", 1),
		"status":   projectBody("a", "shipped", 1, "ChatGPT"),
		"no skills": func() map[string]any {
			b := projectBody("a", "active", 1, "ChatGPT")
			b["mySkills"] = []string{" "}
			return b
		}(),
		"domain": func() map[string]any { b := projectBody("a", "active", 1, "ChatGPT"); b["domain"] = "not a url"; return b }(),
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, "/api/projects", body, token)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.JSONEq(t, `{"error":"Invalid data format"}`, rec.Body.String())
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/api/projects", bytes.NewBufferString("{not json"))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	n, err := env.store.CountProjects(context.Background())
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestProjects_ProgressBounds(t *testing.T) {
	env := newTestEnv(t, Options{})
	h := env.srv.Engine()
	token := env.token(t, env.admin)

	for _, tc := range []struct {
		progress int
		status   int
	}{
		{0, http.StatusCreated},
		{100, http.StatusCreated},
		{-1, http.StatusBadRequest},
		{101, http.StatusBadRequest},
	} {
		body := projectBody("bounds", "active", 1, "ChatGPT")
		body["progress"] = tc.progress
		rec := doJSON(t, h, http.MethodPost, "/api/projects", body, token)
		require.Equal(t, tc.status, rec.Code, "progress %d", tc.progress)
	}

	n, err := env.store.CountProjects(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestProjects_UnknownID(t *testing.T) {
	env := newTestEnv(t, Options{})
	h := env.srv.Engine()
	token := env.token(t, env.admin)

	rec := doJSON(t, h, http.MethodPut, "/api/projects/999", projectBody("ghost", "active", 1, "ChatGPT"), token)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/api/projects/999", nil, token)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/api/projects/abc", nil, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStats(t *testing.T) {
	env := newTestEnv(t, Options{AllowFallback: true})
	h := env.srv.Engine()
	token := env.token(t, env.admin)

	for _, body := range []map[string]any{
		projectBody("one", "active", 8, "ChatGPT", "Cursor"),
		projectBody("two", "planning", 0, "ChatGPT"),
		projectBody("three", "completed", 4, "Claude", "Figma"),
	} {
		require.Equal(t, http.StatusCreated, doJSON(t, h, http.MethodPost, "/api/projects", body, token).Code)
	}

	rec := doJSON(t, h, http.MethodGet, "/api/public/stats", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"data":{"projectsLaunched":2,"totalProjects":3,"avgProductivityGain":4,"aiToolsIntegrated":4,"currentProductivity":6},"fallback":false}`, rec.Body.String())

	rec = doJSON(t, h, http.MethodGet, "/api/public/overview", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var overview struct {
		Data struct {
			Stats struct {
				TotalProjects int `json:"totalProjects"`
			} `json:"stats"`
			LatestMetric *models.GlobalMetric `json:"latestMetric"`
			Fallback     bool                 `json:"fallback"`
		} `json:"data"`
	}
	decode(t, rec, &overview)
	require.Equal(t, 3, overview.Data.Stats.TotalProjects)
	require.Nil(t, overview.Data.LatestMetric)
	require.False(t, overview.Data.Fallback)
}

func TestGlobalMetrics_Permissions(t *testing.T) {
	env := newTestEnv(t, Options{})
	h := env.srv.Engine()
	body := map[string]any{"month": "2024-06", "twitter_followers": 1200, "productivity_gain": 4.5, "milestones": []string{"Launched"}}

	rec := doJSON(t, h, http.MethodPut, "/api/admin/global-metrics", body, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, h, http.MethodPut, "/api/admin/global-metrics", body, env.token(t, env.admin))
	require.Equal(t, http.StatusForbidden, rec.Code)

	super := env.token(t, env.super)
	rec = doJSON(t, h, http.MethodPut, "/api/admin/global-metrics", body, super)
	require.Equal(t, http.StatusOK, rec.Code)

	body["twitter_followers"] = 1500
	rec = doJSON(t, h, http.MethodPut, "/api/admin/global-metrics", body, testServiceKey)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/global-metrics", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Metrics []models.GlobalMetric `json:"metrics"`
	}
	decode(t, rec, &list)
	require.Len(t, list.Metrics, 1)
	require.Equal(t, "2024-06-01", list.Metrics[0].Month)
	require.EqualValues(t, 1500, list.Metrics[0].TwitterFollowers)

	rec = doJSON(t, h, http.MethodGet, "/api/global-metrics/latest", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var latest struct {
		Metric *models.GlobalMetric `json:"metric"`
	}
	decode(t, rec, &latest)
	require.NotNil(t, latest.Metric)
	require.Equal(t, []string{"Launched"}, latest.Metric.Milestones)

	rec = doJSON(t, h, http.MethodPut, "/api/admin/global-metrics", map[string]any{"month": "June"}, super)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProjectMetrics(t *testing.T) {
	env := newTestEnv(t, Options{})
	h := env.srv.Engine()
	token := env.token(t, env.admin)

	for _, title := range []string{"one", "two"} {
		require.Equal(t, http.StatusCreated, doJSON(t, h, http.MethodPost, "/api/projects", projectBody(title, "active", 2, "ChatGPT"), token).Code)
	}
	for _, m := range []map[string]any{
		{"project_id": 2, "month": "2024-03", "progress": 30, "hours_worked": 10, "ai_assistance_hours": 8, "manual_hours": 5},
		{"project_id": 1, "month": "2024-01-15", "progress": 10},
		{"project_id": 1, "month": "2024-03", "progress": 40},
	} {
		require.Equal(t, http.StatusCreated, doJSON(t, h, http.MethodPost, "/api/metrics", m, token).Code)
	}

	rec := doJSON(t, h, http.MethodPost, "/api/metrics", map[string]any{"project_id": 99, "month": "2024-03"}, token)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/metrics", map[string]any{"project_id": 1, "month": "2024-03", "progress": 120}, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/metrics", map[string]any{"project_id": 1, "month": "2024-03"}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/metrics", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all struct {
		Metrics []models.ProjectMetric `json:"metrics"`
	}
	decode(t, rec, &all)
	require.Len(t, all.Metrics, 3)
	require.Equal(t, "2024-01-01", all.Metrics[0].Month)
	require.Equal(t, int64(1), all.Metrics[1].ProjectID)
	require.Equal(t, int64(2), all.Metrics[2].ProjectID)

	rec = doJSON(t, h, http.MethodGet, "/api/metrics?project_id=2", nil, "")
	var filtered struct {
		Metrics []models.ProjectMetric `json:"metrics"`
	}
	decode(t, rec, &filtered)
	require.Len(t, filtered.Metrics, 1)

	rec = doJSON(t, h, http.MethodGet, "/api/metrics?project_id=x", nil, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

var errDown = errors.New("database unavailable")

// downStore fails every read that has a fallback snapshot.
type downStore struct {
	*sqlstore.Store
}

func (downStore) ListProjects(context.Context) ([]models.Project, error) { return nil, errDown }
func (downStore) ListProjectSummaries(context.Context) ([]models.ProjectSummary, error) {
	return nil, errDown
}
func (downStore) ListGlobalMetrics(context.Context) ([]models.GlobalMetric, error) {
	return nil, errDown
}
func (downStore) LatestGlobalMetric(context.Context) (models.GlobalMetric, error) {
	return models.GlobalMetric{}, errDown
}

func TestFallback(t *testing.T) {
	env := newTestEnv(t, Options{})
	manager := env.auth
	h := New(downStore{env.store}, manager, nil, Options{AllowFallback: true}).Engine()

	rec := doJSON(t, h, http.MethodGet, "/api/projects", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Projects []models.Project `json:"projects"`
		Fallback bool             `json:"fallback"`
	}
	decode(t, rec, &list)
	require.True(t, list.Fallback)
	require.Len(t, list.Projects, 10)

	rec = doJSON(t, h, http.MethodGet, "/api/public/stats", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"totalProjects":10`)

	rec = doJSON(t, h, http.MethodGet, "/api/public/overview", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"fallback":true`)

	// Admin listings never mask an outage.
	rec = doJSON(t, h, http.MethodGet, "/api/admin/projects", nil, env.token(t, env.admin))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), errDown.Error())

	strict := New(downStore{env.store}, manager, nil, Options{}).Engine()
	rec = doJSON(t, strict, http.MethodGet, "/api/projects", nil, "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"error":"failed to load projects"}`, rec.Body.String())
}

func TestAdminProjects(t *testing.T) {
	env := newTestEnv(t, Options{})
	h := env.srv.Engine()

	require.Equal(t, http.StatusUnauthorized, doJSON(t, h, http.MethodGet, "/api/admin/projects", nil, "").Code)

	rec := doJSON(t, h, http.MethodGet, "/api/admin/projects", nil, env.token(t, env.admin))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"projects":[]}`, rec.Body.String())
}

func TestAPIKey(t *testing.T) {
	env := newTestEnv(t, Options{})
	h := New(env.store, env.auth, nil, Options{AnonKey: "anon-key"}).Engine()

	rec := doJSON(t, h, http.MethodGet, "/api/projects", nil, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	for _, key := range []string{"anon-key", testServiceKey} {
		req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
		req.Header.Set("apikey", key)
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/healthz", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestUsers(t *testing.T) {
	env := newTestEnv(t, Options{})
	h := env.srv.Engine()
	super := env.token(t, env.super)

	require.Equal(t, http.StatusForbidden, doJSON(t, h, http.MethodGet, "/api/admin/users", nil, env.token(t, env.admin)).Code)

	newUser := map[string]any{"email": "New@10x.dev", "password": "long-enough", "full_name": "New Admin"}
	rec := doJSON(t, h, http.MethodPost, "/api/admin/users", newUser, super)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		User models.AdminUser `json:"user"`
	}
	decode(t, rec, &created)
	require.Equal(t, "new@10x.dev", created.User.Email)
	require.Equal(t, models.RoleAdmin, created.User.Role)
	require.NotContains(t, rec.Body.String(), "password")

	rec = doJSON(t, h, http.MethodPost, "/api/admin/users", newUser, super)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/admin/users", map[string]any{"email": "short@10x.dev", "password": "short"}, super)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/admin/users", nil, super)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Users []models.AdminUser `json:"users"`
	}
	decode(t, rec, &list)
	require.Len(t, list.Users, 3)

	rec = doJSON(t, h, http.MethodPatch, "/api/admin/users/"+created.User.ID, map[string]any{"role": "super_admin"}, super)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, h, http.MethodPatch, "/api/admin/users/"+created.User.ID, map[string]any{"role": "owner"}, super)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	rec = doJSON(t, h, http.MethodPatch, "/api/admin/users/missing", map[string]any{"full_name": "x"}, super)
	require.Equal(t, http.StatusNotFound, rec.Code)
	rec = doJSON(t, h, http.MethodPatch, "/api/admin/users/"+env.super.ID, map[string]any{"is_active": false}, super)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateUser_PasswordTooLong(t *testing.T) {
	env := newTestEnv(t, Options{})
	h := env.srv.Engine()
	super := env.token(t, env.super)

	for name, password := range map[string]string{
		"ascii":     strings.Repeat("a", 73),
		"multibyte": strings.Repeat("日", 25),
	} {
		t.Run(name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, "/api/admin/users", map[string]any{"email": "long-" + name + "@10x.dev", "password": password}, super)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.JSONEq(t, `{"error":"Invalid data format"}`, rec.Body.String())
		})
	}

	rec := doJSON(t, h, http.MethodPost, "/api/admin/users", map[string]any{"email": "edge@10x.dev", "password": strings.Repeat("a", 72)}, super)
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestDeactivatedSessionIsRejected(t *testing.T) {
	env := newTestEnv(t, Options{})
	h := env.srv.Engine()
	token := env.token(t, env.admin)

	rec := doJSON(t, h, http.MethodPatch, "/api/admin/users/"+env.admin.ID, map[string]any{"is_active": false}, env.token(t, env.super))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/projects", projectBody("late", "active", 1, "ChatGPT"), token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/admin/login", map[string]string{"email": adminEmail, "password": testPassword}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestActivityLimit(t *testing.T) {
	env := newTestEnv(t, Options{})
	h := env.srv.Engine()
	token := env.token(t, env.admin)

	for i := 0; i < 3; i++ {
		_, err := env.store.LogActivity(context.Background(), models.UserActivity{UserID: env.admin.ID, Action: "login"})
		require.NoError(t, err)
	}

	rec := doJSON(t, h, http.MethodGet, "/api/admin/activity?limit=2", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Activity []models.UserActivity `json:"activity"`
	}
	decode(t, rec, &body)
	require.Len(t, body.Activity, 2)

	require.Equal(t, http.StatusBadRequest, doJSON(t, h, http.MethodGet, "/api/admin/activity?limit=-1", nil, token).Code)
}

func TestUnknownAPIPath(t *testing.T) {
	env := newTestEnv(t, Options{StaticDir: t.TempDir()})
	rec := doJSON(t, env.srv.Engine(), http.MethodGet, "/api/nope", nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"endpoint not found"}`, rec.Body.String())
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t, Options{})

	h := New(env.store, env.auth, nil, Options{CORSOrigins: []string{"https://10x.example"}}).Engine()
	req := httptest.NewRequest(http.MethodGet, "/api/healthz", nil)
	req.Header.Set("Origin", "https://10x.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "https://10x.example", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
	req.Header.Set("Origin", "https://10x.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)

	req = httptest.NewRequest(http.MethodGet, "/api/healthz", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	wildcard := New(env.store, env.auth, nil, Options{CORSOrigins: []string{"*"}}).Engine()
	req = httptest.NewRequest(http.MethodGet, "/api/healthz", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	rec = httptest.NewRecorder()
	wildcard.ServeHTTP(rec, req)
	require.Equal(t, "https://elsewhere.example", rec.Header().Get("Access-Control-Allow-Origin"))
}
