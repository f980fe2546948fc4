package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"Valid", "a@x.com", false},
		{"Subdomain", "jane.doe@mail.example.org", false},
		{"Empty", "", true},
		{"No At", "ax.com", true},
		{"No Domain Dot", "a@localhost", true},
		{"Display Name", "A <a@x.com>", true},
		{"Too Long", strings.Repeat("a", 250) + "@x.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"Valid", "test_user123", false},
		{"Single Char", "a", false},
		{"Dotted", "jane.doe", false},
		{"Empty", "", true},
		{"Illegal Chars", "user@123", true},
		{"Spaces", "two words", true},
		{"Too Long", strings.Repeat("u", 26), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateName("first_name", "A"))
	assert.ErrorContains(t, ValidateName("first_name", ""), "first_name is required")
	assert.Error(t, ValidateName("last_name", strings.Repeat("b", 26)))
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidatePassword("pw"))
	assert.Error(t, ValidatePassword(""))
	assert.NoError(t, ValidatePassword(strings.Repeat("p", 72)))
	assert.Error(t, ValidatePassword(strings.Repeat("p", 73)))
}
