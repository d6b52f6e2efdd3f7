package models

import "time"

type User struct {
	ID           string `json:"id" gorm:"primaryKey;size:20"`
	Email        string `json:"email" gorm:"uniqueIndex;size:120;not null"` // disimpan lowercase
	Name         string `json:"name" gorm:"size:120"`
	Role         string `json:"role" gorm:"size:20;not null"` // "staff" | "doctor" | "admin"
	PasswordHash string `json:"-" gorm:"not null"`
	Active       bool   `json:"active" gorm:"not null;default:true"`

	Department     string  `json:"department" gorm:"size:120"`
	Position       string  `json:"position" gorm:"size:120"`
	DOB            *string `json:"dob" gorm:"size:10"`            // YYYY-MM-DD
	EmploymentDate *string `json:"employmentDate" gorm:"size:10"` // YYYY-MM-DD
	Gender         *string `json:"gender" gorm:"size:20"`
	Education      string  `json:"education" gorm:"size:120"`
	Phone          string  `json:"phone" gorm:"size:30"`
	Address        string  `json:"address" gorm:"type:text"`
	NIP            string  `json:"nip" gorm:"size:40"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
