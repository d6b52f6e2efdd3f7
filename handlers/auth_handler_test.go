package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthstation/BEAttendance/config"
	"github.com/healthstation/BEAttendance/database"
)

func testAuthHandler() *AuthHandler {
	return NewAuthHandler(&config.Config{JWTSecret: "test-secret", JWTExpires: time.Hour})
}

func TestLoginAdmin(t *testing.T) {
	setupTestDB(t)
	seedAdmin(t, "Admin Utama", "admin@rumahsakit.or.id")
	h := testAuthHandler()

	rec := invoke(t, http.MethodPost, "/auth/login",
		`{"email":"admin@rumahsakit.or.id","password":"admin12345"}`, "", h.Login)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "admin", user["role"])
}

func TestLoginUserEmailCaseInsensitive(t *testing.T) {
	setupTestDB(t)
	seedUser(t, "Budi", "budi@rumahsakit.or.id")
	h := testAuthHandler()

	rec := invoke(t, http.MethodPost, "/auth/login",
		`{"email":"Budi@Rumahsakit.or.id","password":"rahasia123"}`, "", h.Login)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	user := decodeBody(t, rec)["user"].(map[string]any)
	assert.Equal(t, "staff", user["role"])
}

func TestLoginWrongPassword(t *testing.T) {
	setupTestDB(t)
	seedUser(t, "Budi", "budi@rumahsakit.or.id")
	h := testAuthHandler()

	rec := invoke(t, http.MethodPost, "/auth/login",
		`{"email":"budi@rumahsakit.or.id","password":"salah"}`, "", h.Login)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, rec))
}

func TestLoginUnknownEmail(t *testing.T) {
	setupTestDB(t)
	h := testAuthHandler()

	rec := invoke(t, http.MethodPost, "/auth/login",
		`{"email":"ghost@rumahsakit.or.id","password":"apapun"}`, "", h.Login)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginInactiveUser(t *testing.T) {
	setupTestDB(t)
	u := seedUser(t, "Budi", "budi@rumahsakit.or.id")
	require.NoError(t, database.DB.Model(&u).Update("active", false).Error)
	h := testAuthHandler()

	rec := invoke(t, http.MethodPost, "/auth/login",
		`{"email":"budi@rumahsakit.or.id","password":"rahasia123"}`, "", h.Login)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(t, rec))
}

func TestLoginMissingFields(t *testing.T) {
	setupTestDB(t)
	h := testAuthHandler()

	rec := invoke(t, http.MethodPost, "/auth/login", `{"email":"bukan-email"}`, "", h.Login)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
}

func TestMe(t *testing.T) {
	setupTestDB(t)
	u := seedUser(t, "Budi", "budi@rumahsakit.or.id")
	adm := seedAdmin(t, "Admin Utama", "admin@rumahsakit.or.id")
	h := testAuthHandler()

	rec := invoke(t, http.MethodGet, "/auth/me", "", u.ID, h.Me)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "staff", decodeBody(t, rec)["role"])

	rec = invoke(t, http.MethodGet, "/auth/me", "", adm.ID, h.Me)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", decodeBody(t, rec)["role"])

	rec = invoke(t, http.MethodGet, "/auth/me", "", "u_hilang", h.Me)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
