package domain

import (
	"regexp"
	"strings"
	"time"
)

var codePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// NormalizeCode upper-cases and trims a city or location code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidCode reports whether code is exactly three uppercase letters.
func ValidCode(code string) bool {
	return codePattern.MatchString(code)
}

type City struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Code      string    `json:"code" bson:"code"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
