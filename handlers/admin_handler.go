package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/healthstation/BEAttendance/database"
	"github.com/healthstation/BEAttendance/httperr"
	"github.com/healthstation/BEAttendance/models"
)

type AdminHandler struct{}

func NewAdminHandler() *AdminHandler { return &AdminHandler{} }

type createAdminReq struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name"`
	Password string `json:"password" validate:"required,min=6"`
}

// GET /admin/admins
func (h *AdminHandler) List(c echo.Context) error {
	var admins []models.Admin
	if err := database.DB.Order("created_at DESC").Find(&admins).Error; err != nil {
		return httperr.Internal(c, err, "")
	}
	out := make([]map[string]any, 0, len(admins))
	for _, a := range admins {
		out = append(out, map[string]any{"id": a.ID, "email": a.Email, "name": a.Name})
	}
	return c.JSON(http.StatusOK, out)
}

// POST /admin/admins
func (h *AdminHandler) Create(c echo.Context) error {
	var req createAdminReq
	if err := c.Bind(&req); err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "Data tidak valid.", nil)
	}
	if err := validate.Struct(&req); err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "Data tidak valid.", fieldErrors(err))
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	taken, err := emailTaken(email)
	if err != nil {
		return httperr.Internal(c, err, "")
	}
	if taken {
		return httperr.JSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "Email sudah dipakai.",
			map[string]string{"email": "Email sudah dipakai"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return httperr.Internal(c, err, "")
	}
	a := models.Admin{
		ID:           models.NewID("adm"),
		Email:        email,
		Name:         req.Name,
		PasswordHash: string(hash),
	}
	if err := database.DB.Create(&a).Error; err != nil {
		return httperr.Internal(c, err, "")
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"id": a.ID, "email": a.Email, "name": a.Name, "role": "admin",
	})
}

// PUT /admin/admins/:adminId/password
func (h *AdminHandler) ChangePassword(c echo.Context) error {
	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "Data tidak valid.", nil)
	}
	if err := validate.Struct(&req); err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "Data tidak valid.", fieldErrors(err))
	}

	var a models.Admin
	if err := database.DB.First(&a, "id = ?", c.Param("adminId")).Error; err != nil {
		return httperr.JSON(c, http.StatusNotFound, "NOT_FOUND", "Admin tidak ditemukan.", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return httperr.Internal(c, err, "")
	}
	if err := database.DB.Model(&a).Update("password_hash", string(hash)).Error; err != nil {
		return httperr.Internal(c, err, "")
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Password diperbarui"})
}
