package handlers

import (
	"net/http"
	"regexp"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/healthstation/BEAttendance/database"
	"github.com/healthstation/BEAttendance/httperr"
	"github.com/healthstation/BEAttendance/models"
)

type AttendanceHandler struct{}

func NewAttendanceHandler() *AttendanceHandler { return &AttendanceHandler{} }

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// parseTimeISO menerima tanggal YYYY-MM-DD (dijangkar ke 08:00 UTC agar
// jatuh deterministik di hari kalender tersebut) atau timestamp RFC3339.
func parseTimeISO(s string) (time.Time, bool) {
	if dateRe.MatchString(s) {
		t, err := time.Parse(time.RFC3339, s+"T08:00:00Z")
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// datesBetween: setiap hari kalender dalam rentang inklusif, pada jam
// jangkar yang sama dengan from.
func datesBetween(from, to time.Time) []time.Time {
	var out []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// attendeeName mencari target absensi di users lalu admins.
func attendeeName(id string) (string, bool, error) {
	var u models.User
	err := database.DB.First(&u, "id = ?", id).Error
	if err == nil {
		if u.Name != "" {
			return u.Name, true, nil
		}
		return u.Email, true, nil
	}
	if err != gorm.ErrRecordNotFound {
		return "", false, err
	}
	var a models.Admin
	err = database.DB.First(&a, "id = ?", id).Error
	if err == nil {
		if a.Name != "" {
			return a.Name, true, nil
		}
		return a.Email, true, nil
	}
	if err != gorm.ErrRecordNotFound {
		return "", false, err
	}
	return "", false, nil
}

type attendanceReq struct {
	Type     string `json:"type" validate:"omitempty,oneof=in out"`
	Status   string `json:"status" validate:"required,oneof=in out sick leave permission"`
	Reason   string `json:"reason"`
	UserID   string `json:"userId"`
	Date     string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	FromDate string `json:"fromDate" validate:"omitempty,datetime=2006-01-02"`
	ToDate   string `json:"toDate" validate:"omitempty,datetime=2006-01-02"`
	Time     string `json:"time"`
}

// POST /attendance
//
// Bentuk waktu, urutan prioritas: time (timestamp persis) > fromDate+toDate
// (satu entri per hari, inklusif) > date (dijangkar 08:00 UTC) > tanpa
// apa-apa (sekarang). userId opsional, default pemanggil.
func (h *AttendanceHandler) Create(c echo.Context) error {
	var req attendanceReq
	if err := c.Bind(&req); err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid attendance payload.", nil)
	}
	if err := validate.Struct(&req); err != nil {
		return httperr.JSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid attendance payload.", fieldErrors(err))
	}
	if (req.FromDate == "") != (req.ToDate == "") {
		return httperr.JSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "fromDate/toDate harus dikirim berpasangan.", nil)
	}

	userID := req.UserID
	if userID == "" {
		userID, _ = c.Get("auth_id").(string)
	}
	name, found, err := attendeeName(userID)
	if err != nil {
		return httperr.Internal(c, err, "Gagal menyimpan absensi.")
	}
	if !found {
		return httperr.JSON(c, http.StatusNotFound, "NOT_FOUND", "User tidak ditemukan.", nil)
	}

	var reason *string
	if req.Reason != "" {
		reason = &req.Reason
	}
	var typ *string
	if req.Type != "" {
		typ = &req.Type
	}

	switch {
	case req.Time != "":
		t, ok := parseTimeISO(req.Time)
		if !ok {
			return httperr.JSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "time tidak valid (ISO).", nil)
		}
		return h.createOne(c, models.Attendance{
			ID: models.NewID("att"), UserID: userID, UserName: name,
			Type: typ, Status: req.Status, Reason: reason, Time: t,
		})

	case req.FromDate != "":
		from, _ := parseTimeISO(req.FromDate) // pola sudah lolos validator
		to, _ := parseTimeISO(req.ToDate)
		if from.After(to) {
			return httperr.JSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "fromDate tidak boleh setelah toDate.", nil)
		}
		days := datesBetween(from, to)
		created := make([]models.Attendance, 0, len(days))
		for _, d := range days {
			// entri rentang tidak membawa type: bukan kejadian jam masuk/keluar
			created = append(created, models.Attendance{
				ID: models.NewID("att"), UserID: userID, UserName: name,
				Status: req.Status, Reason: reason, Time: d,
			})
		}
		// satu transaksi: semua hari tersimpan atau tidak sama sekali
		if err := database.DB.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&created).Error
		}); err != nil {
			return httperr.Internal(c, err, "Gagal menyimpan absensi.")
		}
		return c.JSON(http.StatusCreated, map[string]any{"message": "Entries created", "created": created})

	case req.Date != "":
		t, _ := parseTimeISO(req.Date)
		return h.createOne(c, models.Attendance{
			ID: models.NewID("att"), UserID: userID, UserName: name,
			Type: typ, Status: req.Status, Reason: reason, Time: t,
		})

	default:
		return h.createOne(c, models.Attendance{
			ID: models.NewID("att"), UserID: userID, UserName: name,
			Type: typ, Status: req.Status, Reason: reason, Time: time.Now().UTC(),
		})
	}
}

func (h *AttendanceHandler) createOne(c echo.Context, entry models.Attendance) error {
	if err := database.DB.Create(&entry).Error; err != nil {
		return httperr.Internal(c, err, "Gagal menyimpan absensi.")
	}
	return c.JSON(http.StatusCreated, entry)
}

// GET /attendance?today=true — hari ini (UTC) terbaru dulu, atau 500 terbaru.
func (h *AttendanceHandler) List(c echo.Context) error {
	today := c.QueryParam("today")
	rows := []models.Attendance{}

	if today == "true" || today == "1" {
		start := time.Now().UTC().Truncate(24 * time.Hour)
		err := database.DB.
			Where("time >= ? AND time < ?", start, start.Add(24*time.Hour)).
			Order("time DESC").Find(&rows).Error
		if err != nil {
			return httperr.Internal(c, err, "")
		}
		return c.JSON(http.StatusOK, rows)
	}

	if err := database.DB.Order("time DESC").Limit(500).Find(&rows).Error; err != nil {
		return httperr.Internal(c, err, "")
	}
	return c.JSON(http.StatusOK, rows)
}
