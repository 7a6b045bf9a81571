package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string returns DESC", "", "DESC"},
		{"ASC uppercase returns ASC", "ASC", "ASC"},
		{"asc lowercase returns ASC", "asc", "ASC"},
		{"DESC uppercase returns DESC", "DESC", "DESC"},
		{"invalid value returns DESC", "INVALID", "DESC"},
		{"sql injection attempt returns DESC", "ASC; DROP TABLE users;--", "DESC"},
		{"whitespace only returns DESC", "   ", "DESC"},
		{"whitespace around ASC returns ASC", "  asc  ", "ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateSortOrder(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestValidateSortField(t *testing.T) {
	allowedFields := map[string]bool{
		"id":         true,
		"created_at": true,
		"updated_at": true,
		"name":       true,
	}

	tests := []struct {
		name         string
		input        string
		defaultField string
		expected     string
	}{
		{"empty string returns default", "", "created_at", "created_at"},
		{"valid field returns field", "name", "created_at", "name"},
		{"invalid field returns default", "invalid_field", "created_at", "created_at"},
		{"sql injection attempt returns default", "id; DROP TABLE users;--", "created_at", "created_at"},
		{"case sensitive - uppercase invalid", "NAME", "created_at", "created_at"},
		{"whitespace around valid field returns field", "  name  ", "created_at", "name"},
		{"field with spaces injection returns default", "name users", "created_at", "created_at"},
		{"field with quotes injection returns default", "name'--", "created_at", "created_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateSortField(tt.input, allowedFields, tt.defaultField)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSortFieldsWhitelists(t *testing.T) {
	whitelists := map[string]map[string]bool{
		"ContractSortFields": ContractSortFields,
		"ScopeSortFields":    ScopeSortFields,
		"EntitySortFields":   EntitySortFields,
		"UserSortFields":     UserSortFields,
	}

	for name, whitelist := range whitelists {
		t.Run(name, func(t *testing.T) {
			assert.True(t, whitelist["id"], "%s should allow id", name)
			assert.True(t, whitelist["created_at"], "%s should allow created_at", name)
			assert.True(t, whitelist["updated_at"], "%s should allow updated_at", name)
		})
	}

	t.Run("UserSortFields allows identity columns", func(t *testing.T) {
		assert.True(t, UserSortFields["username"])
		assert.True(t, UserSortFields["last_login_at"])
		assert.False(t, UserSortFields["password_hash"])
	})
}
