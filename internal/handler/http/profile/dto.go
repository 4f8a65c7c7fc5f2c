// Package profile provides HTTP handlers for the caller's own profile under /profiles/me.
package profile

import (
	"github.com/google/uuid"

	"book-journal/internal/domain/entity"
)

// DTO is the JSON form of a profile.
type DTO struct {
	UserID    uuid.UUID `json:"userId"`
	Nickname  string    `json:"nickname"`
	AvatarURL *string   `json:"avatarUrl"`
	Bio       *string   `json:"bio"`
}

// UpdateRequest is the body of PATCH /profiles/me. Omitted fields are left
// unchanged.
type UpdateRequest struct {
	Nickname  *string `json:"nickname,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
	Bio       *string `json:"bio,omitempty"`
}

func (r UpdateRequest) patch() entity.ProfilePatch {
	return entity.ProfilePatch{Nickname: r.Nickname, AvatarURL: r.AvatarURL, Bio: r.Bio}
}

func toDTO(p *entity.Profile) DTO {
	return DTO{UserID: p.UserID, Nickname: p.Nickname, AvatarURL: p.AvatarURL, Bio: p.Bio}
}
