package entity

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

const (
	// maxURLLength defines the maximum allowed length for URLs.
	maxURLLength = 2048
	// MaxRating is the highest rating a post can give.
	MaxRating = 5
	// maxTitleLength bounds post and book titles.
	maxTitleLength = 255
	// MaxNicknameLength matches the profiles.nickname column.
	MaxNicknameLength = 50
	maxBioLength      = 2000
)

// Validate checks the fields a profile update sets.
func (p ProfilePatch) Validate() error {
	if p.Nickname != nil {
		nickname := strings.TrimSpace(*p.Nickname)
		if nickname == "" {
			return &ValidationError{Field: "nickname", Message: "nickname must not be empty"}
		}
		if utf8.RuneCountInString(nickname) > MaxNicknameLength {
			return &ValidationError{Field: "nickname", Message: fmt.Sprintf("nickname must not exceed %d characters", MaxNicknameLength)}
		}
	}
	if p.AvatarURL != nil && *p.AvatarURL != "" {
		if err := ValidateURL(*p.AvatarURL); err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				return &ValidationError{Field: "avatarUrl", Message: verr.Message}
			}
			return &ValidationError{Field: "avatarUrl", Message: "avatarUrl is not a valid URL"}
		}
	}
	if p.Bio != nil && utf8.RuneCountInString(*p.Bio) > maxBioLength {
		return &ValidationError{Field: "bio", Message: fmt.Sprintf("bio must not exceed %d characters", maxBioLength)}
	}
	return nil
}

// Validate checks the invariants a post must hold before it is stored.
func (p *Post) Validate() error {
	if p.Rating < 0 || p.Rating > MaxRating {
		return &ValidationError{Field: "rating", Message: fmt.Sprintf("rating must be between 0 and %d", MaxRating)}
	}
	if p.StartDate.IsZero() {
		return &ValidationError{Field: "startDate", Message: "startDate is required"}
	}
	if p.EndDate.IsZero() {
		return &ValidationError{Field: "endDate", Message: "endDate is required"}
	}
	if p.EndDate.Before(p.StartDate) {
		return &ValidationError{Field: "endDate", Message: "endDate must not be before startDate"}
	}
	if p.Title != nil && len(*p.Title) > maxTitleLength {
		return &ValidationError{Field: "title", Message: fmt.Sprintf("title must not exceed %d characters", maxTitleLength)}
	}
	return nil
}

// Validate checks the invariants a book must hold before it is stored.
func (b *Book) Validate() error {
	if err := ValidateISBN(b.ISBN); err != nil {
		return err
	}
	if strings.TrimSpace(b.Title) == "" {
		return &ValidationError{Field: "book.title", Message: "title is required"}
	}
	if b.ThumbnailURL != nil && *b.ThumbnailURL != "" {
		if err := ValidateURL(*b.ThumbnailURL); err != nil {
			return err
		}
	}
	return nil
}

// ValidateISBN accepts ISBN-10 and ISBN-13 identifiers, with or without hyphens.
// The catalog supplies both forms separated by a space; that form is accepted too.
func ValidateISBN(isbn string) error {
	if strings.TrimSpace(isbn) == "" {
		return &ValidationError{Field: "isbn", Message: "isbn is required"}
	}
	for _, part := range strings.Fields(isbn) {
		digits := strings.ReplaceAll(part, "-", "")
		if len(digits) != 10 && len(digits) != 13 {
			return &ValidationError{Field: "isbn", Message: "isbn must have 10 or 13 digits"}
		}
		for i, r := range digits {
			isCheckX := len(digits) == 10 && i == 9 && (r == 'X' || r == 'x')
			if (r < '0' || r > '9') && !isCheckX {
				return &ValidationError{Field: "isbn", Message: "isbn must contain only digits"}
			}
		}
	}
	return nil
}

// ValidateURL validates the format of a URL.
// It checks that the URL is well-formed, uses HTTP/HTTPS scheme, and has a valid host.
// Returns a ValidationError if the URL is invalid or empty.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "URL is required"}
	}

	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse URL: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "URL must use http or https scheme"}
	}
	if parsedURL.Host == "" {
		return &ValidationError{Field: "url", Message: "URL must have a valid host"}
	}
	return nil
}
