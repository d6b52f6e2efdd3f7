package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"

	"github.com/healthstation/BEAttendance/database"
	"github.com/healthstation/BEAttendance/models"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, database.Open(sqlite.Open(":memory:")))
}

func seedUser(t *testing.T, name, email string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	u := models.User{
		ID:           models.NewID("u"),
		Email:        email,
		Name:         name,
		Role:         "staff",
		PasswordHash: string(hash),
		Active:       true,
	}
	require.NoError(t, database.DB.Create(&u).Error)
	return u
}

func seedAdmin(t *testing.T, name, email string) models.Admin {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	require.NoError(t, err)
	a := models.Admin{
		ID:           models.NewID("adm"),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}
	require.NoError(t, database.DB.Create(&a).Error)
	return a
}

// invoke menjalankan satu handler tanpa router, dengan identitas dari
// middleware auth disimulasikan lewat auth_id.
func invoke(t *testing.T, method, target, body, authID string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if authID != "" {
		c.Set("auth_id", authID)
	}
	require.NoError(t, h(c))
	return rec
}

// invokeWithParam seperti invoke, plus satu path param (mis. :userId).
func invokeWithParam(t *testing.T, method, target, body, authID string, h echo.HandlerFunc, pname, pval string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if authID != "" {
		c.Set("auth_id", authID)
	}
	c.SetParamNames(pname)
	c.SetParamValues(pval)
	require.NoError(t, h(c))
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeBody(t, rec)
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected error envelope, got %s", rec.Body.String())
	code, _ := errObj["code"].(string)
	return code
}

func countAttendance(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, database.DB.Model(&models.Attendance{}).Count(&n).Error)
	return n
}
