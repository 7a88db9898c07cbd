package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last+tag@sub.domain.co",
		"USER_99@host.io",
	}
	for _, email := range valid {
		assert.True(t, ValidateEmail(email), email)
	}

	invalid := []string{
		"",
		"no-at-sign",
		"user@",
		"@example.com",
		"user@nodot",
		"user @example.com",
	}
	for _, email := range invalid {
		assert.False(t, ValidateEmail(email), email)
	}
}

func TestValidatePassword(t *testing.T) {
	assert.False(t, ValidatePassword(""))
	assert.False(t, ValidatePassword("12345"))
	assert.True(t, ValidatePassword("123456"))
}

func TestValidAmount(t *testing.T) {
	assert.False(t, ValidAmount(0))
	assert.False(t, ValidAmount(-5))
	assert.True(t, ValidAmount(0.01))
	assert.True(t, ValidAmount(1500))

	assert.False(t, ValidAmount(math.NaN()))
	assert.False(t, ValidAmount(math.Inf(1)))
	assert.False(t, ValidAmount(math.Inf(-1)))
}

func TestValidMonth(t *testing.T) {
	assert.False(t, ValidMonth(0))
	assert.True(t, ValidMonth(1))
	assert.True(t, ValidMonth(12))
	assert.False(t, ValidMonth(13))
}
