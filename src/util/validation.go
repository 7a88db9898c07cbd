package util

import (
	"math"
	"regexp"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func ValidateEmail(email string) bool {
	return emailRe.MatchString(email)
}

func ValidatePassword(password string) bool {
	return len(password) >= 6
}

// ValidAmount reports whether amount is a positive finite number. Zero and
// negative amounts are rejected, as are NaN and infinities.
func ValidAmount(amount float64) bool {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return false
	}
	return amount > 0
}

// ValidMonth reports whether month is a calendar month number.
func ValidMonth(month int) bool {
	return month >= 1 && month <= 12
}
