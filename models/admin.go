package models

import "time"

// Admin sengaja dipisah dari User (mengikuti skema lama):
// akun admin murni untuk konsol, tanpa data kepegawaian.
type Admin struct {
	ID           string `json:"id" gorm:"primaryKey;size:20"`
	Email        string `json:"email" gorm:"uniqueIndex;size:120;not null"`
	Name         string `json:"name" gorm:"size:120"`
	PasswordHash string `json:"-" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
