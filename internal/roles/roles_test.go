package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	assert.Equal(t, RoleAdmin, Parse("admin"))
	assert.Equal(t, RoleAuthor, Parse("author"))
	assert.Equal(t, RoleReader, Parse("reader"))

	// Unknown or absent roles collapse to the ordinary reader tier.
	assert.Equal(t, RoleReader, Parse(""))
	assert.Equal(t, RoleReader, Parse("superuser"))
	assert.Equal(t, RoleReader, Parse("Admin"))
}

func TestSatisfies(t *testing.T) {
	tests := []struct {
		name     string
		required Role
		actual   Role
		want     bool
	}{
		{"admin enters admin area", RoleAdmin, RoleAdmin, true},
		{"admin enters author area", RoleAuthor, RoleAdmin, true},
		{"admin enters reader area", RoleReader, RoleAdmin, true},
		{"author enters author area", RoleAuthor, RoleAuthor, true},
		{"author cannot enter admin area", RoleAdmin, RoleAuthor, false},
		{"reader cannot enter author area", RoleAuthor, RoleReader, false},
		{"reader cannot enter admin area", RoleAdmin, RoleReader, false},
		{"any authenticated user passes a reader requirement", RoleReader, RoleReader, true},
		{"author passes a reader requirement", RoleReader, RoleAuthor, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Satisfies(tt.required, tt.actual))
		})
	}
}
