package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/healthstation/BEAttendance/config"
	"github.com/healthstation/BEAttendance/database"
	"github.com/healthstation/BEAttendance/httperr"
	"github.com/healthstation/BEAttendance/models"
)

type AuthHandler struct {
	JWTSecret  string
	JWTExpires time.Duration
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{JWTSecret: cfg.JWTSecret, JWTExpires: cfg.JWTExpires}
}

func (h *AuthHandler) signJWT(id, email, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":    id,
		"email": email,
		"role":  role,
		"iat":   now.Unix(),
		"exp":   now.Add(h.JWTExpires).Unix(),
	}
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tk.SignedString([]byte(h.JWTSecret))
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// POST /auth/login
// Email dicek ke tabel admins dulu, baru users (mengikuti perilaku lama).
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "Data login tidak valid.", nil)
	}
	if err := validate.Struct(&req); err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "Data login tidak valid.", fieldErrors(err))
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var adm models.Admin
	if err := database.DB.Where("email = ?", email).First(&adm).Error; err == nil {
		if bcrypt.CompareHashAndPassword([]byte(adm.PasswordHash), []byte(req.Password)) != nil {
			return httperr.JSON(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email atau kata sandi salah.", nil)
		}
		token, err := h.signJWT(adm.ID, adm.Email, "admin")
		if err != nil {
			return httperr.Internal(c, err, "")
		}
		return c.JSON(http.StatusOK, map[string]any{
			"token": token,
			"user":  map[string]any{"id": adm.ID, "email": adm.Email, "name": adm.Name, "role": "admin"},
		})
	}

	var u models.User
	if err := database.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return httperr.JSON(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email atau kata sandi salah.", nil)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return httperr.JSON(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email atau kata sandi salah.", nil)
	}
	if !u.Active {
		return httperr.JSON(c, http.StatusForbidden, "FORBIDDEN", "Akun dinonaktifkan.", nil)
	}
	token, err := h.signJWT(u.ID, u.Email, u.Role)
	if err != nil {
		return httperr.Internal(c, err, "")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"token": token,
		"user":  map[string]any{"id": u.ID, "email": u.Email, "name": u.Name, "role": u.Role},
	})
}

// GET /auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	id, _ := c.Get("auth_id").(string)

	var u models.User
	if err := database.DB.First(&u, "id = ?", id).Error; err == nil {
		return c.JSON(http.StatusOK, map[string]any{"id": u.ID, "email": u.Email, "name": u.Name, "role": u.Role})
	}
	var adm models.Admin
	if err := database.DB.First(&adm, "id = ?", id).Error; err == nil {
		return c.JSON(http.StatusOK, map[string]any{"id": adm.ID, "email": adm.Email, "name": adm.Name, "role": "admin"})
	}
	return httperr.JSON(c, http.StatusNotFound, "NOT_FOUND", "User tidak ditemukan.", nil)
}
