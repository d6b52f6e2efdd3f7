package models

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns an opaque identifier like "att_1b9d6bcd".
// Prefixes in use: "u" (users), "adm" (admins), "att" (attendance).
func NewID(prefix string) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "_" + raw[:8]
}
