package handlers

import (
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"

	"github.com/healthstation/BEAttendance/database"
	"github.com/healthstation/BEAttendance/httperr"
	"github.com/healthstation/BEAttendance/models"
)

type SummaryHandler struct{}

func NewSummaryHandler() *SummaryHandler { return &SummaryHandler{} }

var monthRe = regexp.MustCompile(`^\d{4}-\d{2}$`)

// SummaryRow adalah rekap bulanan per user; dihitung ulang setiap request,
// tidak pernah disimpan.
type SummaryRow struct {
	UserID          string `json:"userId"`
	UserName        string `json:"userName"`
	PresentDays     int    `json:"presentDays"`
	InCount         int    `json:"inCount"`
	OutCount        int    `json:"outCount"`
	SickCount       int    `json:"sickCount"`
	LeaveCount      int    `json:"leaveCount"`
	PermissionCount int    `json:"permissionCount"`
	TotalRecords    int    `json:"totalRecords"`
}

var summaryHeader = []string{
	"userId", "userName", "presentDays", "inCount", "outCount",
	"sickCount", "leaveCount", "permissionCount", "totalRecords",
}

func (r SummaryRow) record() []string {
	return []string{
		r.UserID, r.UserName,
		strconv.Itoa(r.PresentDays),
		strconv.Itoa(r.InCount), strconv.Itoa(r.OutCount),
		strconv.Itoa(r.SickCount), strconv.Itoa(r.LeaveCount),
		strconv.Itoa(r.PermissionCount), strconv.Itoa(r.TotalRecords),
	}
}

// monthWindow mengubah YYYY-MM menjadi rentang UTC [awal bulan, bulan berikut).
func monthWindow(month string) (time.Time, time.Time, bool) {
	if !monthRe.MatchString(month) {
		return time.Time{}, time.Time{}, false
	}
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, start.AddDate(0, 1, 0), true
}

// summarize mengelompokkan entri per user: hitung per status, total baris,
// dan presentDays = jumlah tanggal berbeda dengan status in/out (dua kali
// clock-in di hari yang sama tetap satu hari hadir). Nama user diambil dari
// entri pertama yang ditemui. Hasil diurutkan userName menaik.
func summarize(entries []models.Attendance) []SummaryRow {
	byUser := map[string]*SummaryRow{}
	present := map[string]map[string]struct{}{}

	for _, a := range entries {
		r, ok := byUser[a.UserID]
		if !ok {
			r = &SummaryRow{UserID: a.UserID, UserName: a.UserName}
			byUser[a.UserID] = r
			present[a.UserID] = map[string]struct{}{}
		}
		switch a.Status {
		case "in":
			r.InCount++
		case "out":
			r.OutCount++
		case "sick":
			r.SickCount++
		case "leave":
			r.LeaveCount++
		case "permission":
			r.PermissionCount++
		}
		r.TotalRecords++
		if a.Status == "in" || a.Status == "out" {
			present[a.UserID][a.Time.UTC().Format("2006-01-02")] = struct{}{}
		}
	}

	rows := make([]SummaryRow, 0, len(byUser))
	for id, r := range byUser {
		r.PresentDays = len(present[id])
		rows = append(rows, *r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].UserName < rows[j].UserName })
	return rows
}

func monthlyRows(month string) ([]SummaryRow, error) {
	start, end, ok := monthWindow(month)
	if !ok {
		return nil, errBadMonth
	}
	var entries []models.Attendance
	err := database.DB.
		Where("time >= ? AND time < ?", start, end).
		Order("time ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return summarize(entries), nil
}

var errBadMonth = fmt.Errorf("bad month parameter")

// GET /admin/attendance/summary?month=YYYY-MM
func (h *SummaryHandler) Summary(c echo.Context) error {
	rows, err := monthlyRows(strings.TrimSpace(c.QueryParam("month")))
	if err == errBadMonth {
		return httperr.JSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "Parameter month harus YYYY-MM.", nil)
	}
	if err != nil {
		return httperr.Internal(c, err, "")
	}
	return c.JSON(http.StatusOK, rows)
}

// csvEscape membungkus field dengan kutip bila mengandung koma, kutip
// ganda, atau baris baru; kutip ganda di dalam digandakan.
func csvEscape(v string) string {
	if strings.ContainsAny(v, ",\"\n\r") {
		return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	}
	return v
}

func buildCSV(header []string, records [][]string) string {
	lines := make([]string, 0, len(records)+1)
	join := func(fields []string) string {
		esc := make([]string, len(fields))
		for i, f := range fields {
			esc[i] = csvEscape(f)
		}
		return strings.Join(esc, ",")
	}
	lines = append(lines, join(header))
	for _, rec := range records {
		lines = append(lines, join(rec))
	}
	return strings.Join(lines, "\n")
}

// GET /admin/attendance/summary.csv
func (h *SummaryHandler) SummaryCSV(c echo.Context) error {
	month := strings.TrimSpace(c.QueryParam("month"))
	rows, err := monthlyRows(month)
	if err == errBadMonth {
		return httperr.JSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "Parameter month harus YYYY-MM.", nil)
	}
	if err != nil {
		return httperr.Internal(c, err, "")
	}

	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.record())
	}
	csv := buildCSV(summaryHeader, records)

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="attendance-summary-%s.csv"`, month))
	return c.Blob(http.StatusOK, "text/csv", []byte(csv))
}

// GET /admin/attendance/summary.xlsx
func (h *SummaryHandler) SummaryXLSX(c echo.Context) error {
	month := strings.TrimSpace(c.QueryParam("month"))
	rows, err := monthlyRows(month)
	if err == errBadMonth {
		return httperr.JSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "Parameter month harus YYYY-MM.", nil)
	}
	if err != nil {
		return httperr.Internal(c, err, "")
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	header := make([]any, len(summaryHeader))
	for i, hdr := range summaryHeader {
		header[i] = hdr
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return httperr.Internal(c, err, "")
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []any{
			r.UserID, r.UserName, r.PresentDays, r.InCount, r.OutCount,
			r.SickCount, r.LeaveCount, r.PermissionCount, r.TotalRecords,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return httperr.Internal(c, err, "")
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return httperr.Internal(c, err, "")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="attendance-summary-%s.xlsx"`, month))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
