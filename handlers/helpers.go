package handlers

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/healthstation/BEAttendance/database"
	"github.com/healthstation/BEAttendance/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// laporkan nama field sesuai tag json, bukan nama field Go
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldErrors meringkas error validator menjadi map field → pesan.
func fieldErrors(err error) map[string]string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out[fe.Field()] = "wajib diisi"
		case "email":
			out[fe.Field()] = "format email tidak valid"
		case "min":
			out[fe.Field()] = "minimal " + fe.Param() + " karakter"
		case "oneof":
			out[fe.Field()] = "nilai tidak valid"
		case "datetime":
			out[fe.Field()] = "format harus YYYY-MM-DD"
		default:
			out[fe.Field()] = "tidak valid"
		}
	}
	return out
}

// atoiOr mengembalikan def bila s kosong atau bukan angka.
func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// emailTaken mengecek email di kedua tabel; satu email hanya boleh
// dipakai satu akun, baik user maupun admin.
func emailTaken(email string) (bool, error) {
	var n int64
	if err := database.DB.Model(&models.User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}
	if err := database.DB.Model(&models.Admin{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
