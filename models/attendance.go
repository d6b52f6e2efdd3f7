package models

import "time"

// Satu baris per kejadian absensi. Baris bersifat immutable; user_name
// adalah snapshot nama saat pencatatan (audit trail), bukan join.
type Attendance struct {
	ID       string    `json:"id" gorm:"primaryKey;size:20"`
	UserID   string    `json:"user_id" gorm:"index;size:20;not null"`
	UserName string    `json:"user_name" gorm:"size:120;not null"`
	Type     *string   `json:"type" gorm:"size:10"`            // "in" | "out", hanya untuk entri ber-jam
	Status   string    `json:"status" gorm:"size:20;not null"` // in | out | sick | leave | permission
	Reason   *string   `json:"reason" gorm:"type:text"`
	Time     time.Time `json:"time" gorm:"index;not null"` // UTC
}
