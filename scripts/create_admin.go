// scripts/create_admin.go — seed akun admin pertama.
// Pakai: go run ./scripts [email] [password] [nama]
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/healthstation/BEAttendance/config"
	"github.com/healthstation/BEAttendance/database"
	"github.com/healthstation/BEAttendance/models"
)

func main() {
	cfg := config.Load()
	database.Connect(cfg)

	email := "admin@rumahsakit.or.id"
	password := "admin12345"
	name := "Admin Utama"
	if len(os.Args) > 1 {
		email = os.Args[1]
	}
	if len(os.Args) > 2 {
		password = os.Args[2]
	}
	if len(os.Args) > 3 {
		name = os.Args[3]
	}
	email = strings.ToLower(strings.TrimSpace(email))

	var existing models.Admin
	err := database.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		fmt.Println("Admin sudah ada:", email)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("failed to query admins: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	a := models.Admin{
		ID:           models.NewID("adm"),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}
	if err := database.DB.Create(&a).Error; err != nil {
		log.Fatalf("failed to insert admin: %v", err)
	}

	fmt.Println("Admin dibuat:", email, "password:", password)
}
