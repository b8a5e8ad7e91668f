package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructDatabaseURL(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		dbName   string
		expected string
	}{
		{"no database name", "postgres://u:p@db:5432/app", "", "postgres://u:p@db:5432/app"},
		{"plain base", "postgres://u:p@db:5432", "salespoint", "postgres://u:p@db:5432/salespoint?sslmode=disable"},
		{"trailing slash", "postgres://u:p@db:5432/", "salespoint", "postgres://u:p@db:5432/salespoint?sslmode=disable"},
		{"existing query", "postgres://u:p@db:5432?connect_timeout=5", "salespoint", "postgres://u:p@db:5432/salespoint?connect_timeout=5&sslmode=disable"},
		{"existing sslmode", "postgres://u:p@db:5432?sslmode=require", "salespoint", "postgres://u:p@db:5432/salespoint?sslmode=require"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ConstructDatabaseURL(tt.baseURL, tt.dbName))
		})
	}
}
