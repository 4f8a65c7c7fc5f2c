package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-journal/internal/common/pagination"
)

func writeListingFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "listings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadListingConfig(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		errorMsg string
		validate func(*testing.T, *ListingFile)
	}{
		{
			name: "valid",
			body: `listings:
  posts:
    default_order: [rating_DESC, id_DESC]
    max_take: 20
  user_posts:
    default_take: 10
`,
			validate: func(t *testing.T, f *ListingFile) {
				require.Len(t, f.Listings, 2)
				assert.Equal(t, []string{"rating_DESC", "id_DESC"}, f.Listings["posts"].DefaultOrder)
				assert.Equal(t, 20, f.Listings["posts"].MaxTake)
				assert.Equal(t, 10, f.Listings["user_posts"].DefaultTake)
			},
		},
		{
			name:     "bad direction",
			body:     "listings:\n  posts:\n    default_order: [rating_UP]\n",
			errorMsg: "default_order",
		},
		{
			name:     "default take above max",
			body:     "listings:\n  posts:\n    default_take: 50\n    max_take: 10\n",
			errorMsg: "default_take",
		},
		{
			name:     "negative max",
			body:     "listings:\n  posts:\n    max_take: -1\n",
			errorMsg: "must not be negative",
		},
		{
			name:     "not yaml",
			body:     "listings: [",
			errorMsg: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := LoadListingConfig(writeListingFile(t, tt.body))
			if tt.errorMsg != "" {
				assert.ErrorContains(t, err, tt.errorMsg)
				return
			}
			require.NoError(t, err)
			tt.validate(t, file)
		})
	}
}

func TestLoadListingConfig_EmptyPath(t *testing.T) {
	file, err := LoadListingConfig("")
	require.NoError(t, err)
	assert.Empty(t, file.Listings)
}

func TestLoadListingConfig_MissingFile(t *testing.T) {
	_, err := LoadListingConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "failed to read")
}

func TestListingFile_Apply(t *testing.T) {
	base := pagination.Config{DefaultTake: 5, MaxTake: 100, DefaultOrder: []string{"startDate_DESC", "id_DESC"}}
	file := &ListingFile{Listings: map[string]ListingConfig{
		"posts":      {MaxTake: 3, DefaultOrder: []string{"rating_DESC"}},
		"user_posts": {DefaultTake: 8},
	}}

	posts := file.Apply("posts", base)
	assert.Equal(t, pagination.Config{DefaultTake: 3, MaxTake: 3, DefaultOrder: []string{"rating_DESC"}}, posts)

	user := file.Apply("user_posts", base)
	assert.Equal(t, 8, user.DefaultTake)
	assert.Equal(t, base.DefaultOrder, user.DefaultOrder)

	assert.Equal(t, base, file.Apply("my_posts", base))
}
