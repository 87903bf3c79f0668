package controllers_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeremiapane/foodcourt/database"
	"github.com/yeremiapane/foodcourt/models"
	"github.com/yeremiapane/foodcourt/router"
	"github.com/yeremiapane/foodcourt/session"
	"github.com/yeremiapane/foodcourt/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.InfoLogger.SetOutput(io.Discard)
	utils.ErrorLogger.SetOutput(io.Discard)
}

type testApp struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
	tokens *utils.TokenIssuer
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

// newTestApp wires the full router over a fresh database seeded with food 7
// at 10.00 and food 3 at 5.00.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db := setupTestDB(t)

	category := models.Category{Name: "Mains"}
	require.NoError(t, db.Create(&category).Error)
	for _, f := range []models.Food{
		{ID: 7, CategoryID: category.ID, Name: "Paneer Tikka", Price: decimal.RequireFromString("10.00"), IsAvailable: true, IsVeg: true},
		{ID: 3, CategoryID: category.ID, Name: "Dal", Price: decimal.RequireFromString("5.00"), IsAvailable: true, IsVeg: true},
	} {
		f := f
		require.NoError(t, db.Create(&f).Error)
	}

	tokens := utils.NewTokenIssuer("test-secret", time.Hour)
	r := router.SetupRouter(router.Deps{
		DB:             db,
		Sessions:       session.NewMemoryStore(),
		SessionOptions: session.DefaultOptions(),
		Tokens:         tokens,
		CORSOrigin:     "http://localhost",
	})
	return &testApp{t: t, db: db, router: r, tokens: tokens}
}

// client is a browser: it keeps the cookies the server hands out.
type client struct {
	app     *testApp
	cookies map[string]*http.Cookie
	headers map[string]string
}

func (a *testApp) newClient() *client {
	return &client{app: a, cookies: map[string]*http.Cookie{}, headers: map[string]string{}}
}

func (cl *client) do(method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range cl.headers {
		req.Header.Set(k, v)
	}
	for _, c := range cl.cookies {
		req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}

	w := httptest.NewRecorder()
	cl.app.router.ServeHTTP(w, req)

	// a rotation may set the same cookie twice; the last one wins
	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(cl.cookies, c.Name)
			continue
		}
		cl.cookies[c.Name] = c
	}
	return w
}

func (cl *client) get(path string) *httptest.ResponseRecorder {
	return cl.do(http.MethodGet, path, nil, "")
}

func (cl *client) xhr(path string) *httptest.ResponseRecorder {
	cl.headers["X-Requested-With"] = "XMLHttpRequest"
	defer delete(cl.headers, "X-Requested-With")
	return cl.do(http.MethodPost, path, nil, "")
}

func (cl *client) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	return cl.do(http.MethodPost, path, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
}

func (cl *client) patchJSON(path, body string) *httptest.ResponseRecorder {
	return cl.do(http.MethodPatch, path, strings.NewReader(body), "application/json")
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func data(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	d, ok := decode(t, w)["data"].(map[string]interface{})
	require.True(t, ok, w.Body.String())
	return d
}

func messages(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()
	raw, _ := data(t, w)["messages"].([]interface{})
	out := make([]string, 0, len(raw))
	for _, m := range raw {
		out = append(out, m.(string))
	}
	return out
}

func checkoutForm() url.Values {
	return url.Values{"name": {"Asha"}, "phone": {"9876543210"}, "address": {"12 MG Road"}}
}
