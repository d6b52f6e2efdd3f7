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

type UserHandler struct{}

func NewUserHandler() *UserHandler { return &UserHandler{} }

type createUserReq struct {
	Email          string  `json:"email" validate:"required,email"`
	Name           string  `json:"name"`
	Password       string  `json:"password" validate:"required,min=6"`
	Role           string  `json:"role" validate:"required,oneof=staff doctor admin"`
	Department     string  `json:"department"`
	Position       string  `json:"position"`
	DOB            *string `json:"dob"`
	EmploymentDate *string `json:"employmentDate"`
	Gender         *string `json:"gender"`
	Education      string  `json:"education"`
	Phone          string  `json:"phone"`
	Address        string  `json:"address"`
	NIP            string  `json:"nip"`
}

type updateUserReq struct {
	Name           *string `json:"name"`
	Role           *string `json:"role" validate:"omitempty,oneof=staff doctor admin"`
	Active         *bool   `json:"active"`
	Department     *string `json:"department"`
	Position       *string `json:"position"`
	DOB            *string `json:"dob"`
	EmploymentDate *string `json:"employmentDate"`
	Gender         *string `json:"gender"`
	Education      *string `json:"education"`
	Phone          *string `json:"phone"`
	Address        *string `json:"address"`
	NIP            *string `json:"nip"`
}

type changePasswordReq struct {
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

func userListItem(u models.User) map[string]any {
	return map[string]any{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"role":       u.Role,
		"active":     u.Active,
		"department": u.Department,
		"position":   u.Position,
	}
}

// GET /admin/users?page=&per_page=&search=
func (h *UserHandler) List(c echo.Context) error {
	page := atoiOr(c.QueryParam("page"), 1)
	if page < 1 {
		page = 1
	}
	perPage := atoiOr(c.QueryParam("per_page"), 200)
	if perPage < 1 {
		perPage = 1
	}
	search := strings.ToLower(strings.TrimSpace(c.QueryParam("search")))

	tx := database.DB.Model(&models.User{})
	if search != "" {
		like := "%" + search + "%"
		tx = tx.Where("LOWER(email) LIKE ? OR LOWER(name) LIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return httperr.Internal(c, err, "")
	}

	var users []models.User
	if err := tx.Order("created_at DESC").Limit(perPage).Offset((page - 1) * perPage).Find(&users).Error; err != nil {
		return httperr.Internal(c, err, "")
	}

	data := make([]map[string]any, 0, len(users))
	for _, u := range users {
		data = append(data, userListItem(u))
	}
	return c.JSON(http.StatusOK, map[string]any{
		"meta": map[string]any{"page": page, "per_page": perPage, "total": total},
		"data": data,
	})
}

// POST /admin/users
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "Data tidak valid.", nil)
	}
	if err := validate.Struct(&req); err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "Data tidak valid.", fieldErrors(err))
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	taken, err := emailTaken(email)
	if err != nil {
		return httperr.Internal(c, err, "Gagal membuat user.")
	}
	if taken {
		return httperr.JSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "Email sudah dipakai.",
			map[string]string{"email": "Email sudah dipakai"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return httperr.Internal(c, err, "Gagal membuat user.")
	}

	u := models.User{
		ID:             models.NewID("u"),
		Email:          email,
		Name:           req.Name,
		Role:           req.Role,
		PasswordHash:   string(hash),
		Active:         true,
		Department:     req.Department,
		Position:       req.Position,
		DOB:            req.DOB,
		EmploymentDate: req.EmploymentDate,
		Gender:         req.Gender,
		Education:      req.Education,
		Phone:          req.Phone,
		Address:        req.Address,
		NIP:            req.NIP,
	}
	if err := database.DB.Create(&u).Error; err != nil {
		return httperr.Internal(c, err, "Gagal membuat user.")
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"id": u.ID, "email": u.Email, "name": u.Name, "role": u.Role, "active": true,
	})
}

// PUT /admin/users/:userId — partial update, field yang tidak dikirim dibiarkan.
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "Data tidak valid.", nil)
	}
	if err := validate.Struct(&req); err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "Data tidak valid.", fieldErrors(err))
	}

	var u models.User
	if err := database.DB.First(&u, "id = ?", c.Param("userId")).Error; err != nil {
		return httperr.JSON(c, http.StatusNotFound, "NOT_FOUND", "User tidak ditemukan.", nil)
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	if req.Active != nil {
		u.Active = *req.Active
	}
	if req.Department != nil {
		u.Department = *req.Department
	}
	if req.Position != nil {
		u.Position = *req.Position
	}
	if req.DOB != nil {
		u.DOB = req.DOB
	}
	if req.EmploymentDate != nil {
		u.EmploymentDate = req.EmploymentDate
	}
	if req.Gender != nil {
		u.Gender = req.Gender
	}
	if req.Education != nil {
		u.Education = *req.Education
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.Address != nil {
		u.Address = *req.Address
	}
	if req.NIP != nil {
		u.NIP = *req.NIP
	}

	if err := database.DB.Save(&u).Error; err != nil {
		return httperr.Internal(c, err, "")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"id": u.ID, "email": u.Email, "name": u.Name, "role": u.Role, "active": u.Active,
	})
}

// PUT /admin/users/:userId/password
func (h *UserHandler) ChangePassword(c echo.Context) error {
	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "Data tidak valid.", nil)
	}
	if err := validate.Struct(&req); err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "Data tidak valid.", fieldErrors(err))
	}

	var u models.User
	if err := database.DB.First(&u, "id = ?", c.Param("userId")).Error; err != nil {
		return httperr.JSON(c, http.StatusNotFound, "NOT_FOUND", "User tidak ditemukan.", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return httperr.Internal(c, err, "")
	}
	if err := database.DB.Model(&u).Update("password_hash", string(hash)).Error; err != nil {
		return httperr.Internal(c, err, "")
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Password diperbarui"})
}
