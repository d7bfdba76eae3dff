package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flowlog/flowlog-backend/internal/handler"
	"github.com/flowlog/flowlog-backend/internal/middleware"
	"github.com/flowlog/flowlog-backend/internal/migration"
	"github.com/flowlog/flowlog-backend/internal/repository"
	"github.com/flowlog/flowlog-backend/internal/routes"
	"github.com/flowlog/flowlog-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// newTestRouter wires the full stack (router, handlers, services,
// repositories) over an in-memory database, with the identity middleware
// in production mode so the tenant header is mandatory.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A second pooled connection would see its own empty in-memory database
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, migration.Run(db))

	cardSvc := service.NewCardService(repository.NewCardRepository(db))
	backlogSvc := service.NewBacklogService(repository.NewBacklogRepository(db))
	profileSvc := service.NewProfileService(repository.NewUserConfigRepository(db))

	router := gin.New()
	routes.Setup(router,
		middleware.RequireOpenID("", true),
		handler.NewCardHandler(cardSvc),
		handler.NewBacklogHandler(backlogSvc),
		handler.NewMeHandler(profileSvc),
	)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path, openid string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if openid != "" {
		req.Header.Set(middleware.HeaderOpenID, openid)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func dataMap(t *testing.T, env envelope) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &m))
	return m
}

func dataList(t *testing.T, env envelope) []map[string]interface{} {
	t.Helper()
	var l []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &l))
	return l
}

func TestMissingOpenIDHeader(t *testing.T) {
	router := newTestRouter(t)

	w, env := doRequest(t, router, http.MethodGet, "/cards?date=2026-08-28", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 40100, env.Code)
	assert.Equal(t, "Missing x-wx-openid header", env.Msg)
}

func TestDevFallbackOutsideProduction(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/whoami", middleware.RequireOpenID("configured-dev", false), func(c *gin.Context) {
		c.String(http.StatusOK, middleware.GetOpenID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "configured-dev", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(middleware.HeaderDevOpenID, "alice-dev")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "alice-dev", w.Body.String())

	// The real header always wins over fallbacks
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(middleware.HeaderOpenID, "real-openid")
	req.Header.Set(middleware.HeaderDevOpenID, "alice-dev")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "real-openid", w.Body.String())
}

func TestCardLifecycle(t *testing.T) {
	router := newTestRouter(t)

	w, env := doRequest(t, router, http.MethodPost, "/cards", "tenant-a", gin.H{
		"content":   "deep work session",
		"nextPlan":  "review notes",
		"startTime": 1756300000000,
		"endTime":   1756300000000 + 45*60_000,
		"tags":      []string{"focus"},
		"dateStr":   "2026-08-28",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, env.Code)
	assert.Equal(t, "success", env.Msg)

	created := dataMap(t, env)
	assert.Equal(t, float64(45), created["duration"])
	id := created["id"].(float64)
	require.NotZero(t, id)

	w, env = doRequest(t, router, http.MethodGet, "/cards?date=2026-08-28", "tenant-a", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cards := dataList(t, env)
	require.Len(t, cards, 1)
	assert.Equal(t, "deep work session", cards[0]["content"])
	assert.Equal(t, []interface{}{"focus"}, cards[0]["tags"])
	// The tenant identifier never leaks into payloads
	_, leaked := cards[0]["openid"]
	assert.False(t, leaked)

	w, env = doRequest(t, router, http.MethodPut, "/cards/1", "tenant-a", gin.H{
		"insight": "flow came late",
		"mood":    5,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, dataMap(t, env)["updated"])

	w, env = doRequest(t, router, http.MethodDelete, "/cards/1", "tenant-a", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, dataMap(t, env)["deleted"])

	w, env = doRequest(t, router, http.MethodGet, "/cards?date=2026-08-28", "tenant-a", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, dataList(t, env))
}

func TestCardCreateRejectsMissingFields(t *testing.T) {
	router := newTestRouter(t)

	w, env := doRequest(t, router, http.MethodPost, "/cards", "tenant-a", gin.H{
		"content": "no times supplied",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, http.StatusBadRequest, env.Code)
}

func TestCardListRequiresDate(t *testing.T) {
	router := newTestRouter(t)

	w, _ := doRequest(t, router, http.MethodGet, "/cards", "tenant-a", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCardUpdateNotFound(t *testing.T) {
	router := newTestRouter(t)

	w, env := doRequest(t, router, http.MethodPut, "/cards/999", "tenant-a", gin.H{"mood": 4})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Card not found", env.Msg)

	w, _ = doRequest(t, router, http.MethodDelete, "/cards/999", "tenant-a", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvalidIDParam(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/cards/abc", "/cards/0", "/backlogs/-3"} {
		w, _ := doRequest(t, router, http.MethodPut, path, "tenant-a", gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestBacklogLifecycle(t *testing.T) {
	router := newTestRouter(t)

	w, env := doRequest(t, router, http.MethodPost, "/backlogs", "tenant-a", gin.H{
		"content":           "write retro doc",
		"tags":              []string{"writing"},
		"estimatedDuration": 30,
	})
	require.Equal(t, http.StatusOK, w.Code)
	id := dataMap(t, env)["id"].(float64)
	require.NotZero(t, id)

	// Default listing is pending
	w, env = doRequest(t, router, http.MethodGet, "/backlogs", "tenant-a", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := dataList(t, env)
	require.Len(t, items, 1)
	assert.Equal(t, "pending", items[0]["status"])

	// pending -> done
	w, env = doRequest(t, router, http.MethodPatch, "/backlogs/1", "tenant-a", gin.H{"status": "done"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, dataMap(t, env)["updated"])

	// done again is a no-op, not an error
	w, env = doRequest(t, router, http.MethodPatch, "/backlogs/1", "tenant-a", gin.H{"status": "done"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, dataMap(t, env)["updated"])

	// delete is a transition to the terminal state
	w, env = doRequest(t, router, http.MethodDelete, "/backlogs/1", "tenant-a", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, dataMap(t, env)["deleted"])

	w, env = doRequest(t, router, http.MethodDelete, "/backlogs/1", "tenant-a", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, dataMap(t, env)["deleted"])

	// deleted is terminal
	w, _ = doRequest(t, router, http.MethodPatch, "/backlogs/1", "tenant-a", gin.H{"status": "done"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Gone from every listing
	w, env = doRequest(t, router, http.MethodGet, "/backlogs?status=done", "tenant-a", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, dataList(t, env))
}

func TestBacklogInvalidTransitionTarget(t *testing.T) {
	router := newTestRouter(t)

	doRequest(t, router, http.MethodPost, "/backlogs", "tenant-a", gin.H{"content": "x"})

	w, env := doRequest(t, router, http.MethodPatch, "/backlogs/1", "tenant-a", gin.H{"status": "pending"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Msg, "done")
}

func TestBacklogListInvalidStatus(t *testing.T) {
	router := newTestRouter(t)

	w, _ := doRequest(t, router, http.MethodGet, "/backlogs?status=archived", "tenant-a", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBacklogUpdate(t *testing.T) {
	router := newTestRouter(t)

	doRequest(t, router, http.MethodPost, "/backlogs", "tenant-a", gin.H{"content": "draft"})

	w, env := doRequest(t, router, http.MethodPut, "/backlogs/1", "tenant-a", gin.H{
		"content": "final draft",
		"tags":    []string{"writing", "q3"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, dataMap(t, env)["updated"])

	w, env = doRequest(t, router, http.MethodGet, "/backlogs", "tenant-a", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := dataList(t, env)
	require.Len(t, items, 1)
	assert.Equal(t, "final draft", items[0]["content"])

	w, _ = doRequest(t, router, http.MethodPut, "/backlogs/999", "tenant-a", gin.H{"content": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMeDocument(t *testing.T) {
	router := newTestRouter(t)

	// A brand-new tenant gets a well-formed default document
	w, env := doRequest(t, router, http.MethodGet, "/me", "tenant-a", nil)
	require.Equal(t, http.StatusOK, w.Code)
	doc := dataMap(t, env)
	assert.Equal(t, "tenant-a", doc["openid"])
	assert.Equal(t, "", doc["nickName"])
	assert.Equal(t, []interface{}{}, doc["tags"])
	assert.Nil(t, doc["reminderTime"])
	assert.Equal(t, map[string]interface{}{}, doc["preferences"])

	w, env = doRequest(t, router, http.MethodPut, "/me", "tenant-a", gin.H{
		"nickName":     "Ada",
		"reminderTime": "21:30",
		"preferences":  gin.H{"theme": "dark"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, dataMap(t, env)["updated"])

	w, env = doRequest(t, router, http.MethodGet, "/me", "tenant-a", nil)
	require.Equal(t, http.StatusOK, w.Code)
	doc = dataMap(t, env)
	assert.Equal(t, "Ada", doc["nickName"])
	assert.Equal(t, "21:30", doc["reminderTime"])
	assert.Equal(t, map[string]interface{}{"theme": "dark"}, doc["preferences"])

	// Explicit null clears the reminder without touching the rest
	w, _ = doRequest(t, router, http.MethodPut, "/me", "tenant-a", gin.H{
		"reminderTime": nil,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, env = doRequest(t, router, http.MethodGet, "/me", "tenant-a", nil)
	require.Equal(t, http.StatusOK, w.Code)
	doc = dataMap(t, env)
	assert.Nil(t, doc["reminderTime"])
	assert.Equal(t, "Ada", doc["nickName"])
}

func TestMeEmptyBody(t *testing.T) {
	router := newTestRouter(t)

	// Missing body is treated as an empty patch
	w, env := doRequest(t, router, http.MethodPut, "/me", "tenant-a", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, dataMap(t, env)["updated"])
}

func TestMalformedJSONBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/cards", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.HeaderOpenID, "tenant-a")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "Invalid request body", env.Msg)
}

func TestTenantIsolationOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	doRequest(t, router, http.MethodPost, "/cards", "tenant-a", gin.H{
		"content":   "private entry",
		"nextPlan":  "keep it private",
		"startTime": 1756300000000,
		"endTime":   1756300060000,
		"dateStr":   "2026-08-28",
	})
	doRequest(t, router, http.MethodPost, "/backlogs", "tenant-a", gin.H{"content": "private todo"})

	w, env := doRequest(t, router, http.MethodGet, "/cards?date=2026-08-28", "tenant-b", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, dataList(t, env))

	w, env = doRequest(t, router, http.MethodGet, "/backlogs", "tenant-b", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, dataList(t, env))

	w, _ = doRequest(t, router, http.MethodPut, "/cards/1", "tenant-b", gin.H{"mood": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doRequest(t, router, http.MethodDelete, "/backlogs/1", "tenant-b", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
