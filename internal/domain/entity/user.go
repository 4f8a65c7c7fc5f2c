package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account holder. Accounts are provisioned by the identity
// provider; this service only reads them.
type User struct {
	ID        uuid.UUID
	Email     string
	Name      string
	CreatedAt time.Time
}

// Profile is the public face of a user shown next to their posts.
type Profile struct {
	UserID    uuid.UUID
	Nickname  string
	AvatarURL *string
	Bio       *string
}

// ProfilePatch is a partial profile update. Nil fields keep their value.
type ProfilePatch struct {
	Nickname  *string
	AvatarURL *string
	Bio       *string
}

// IsEmpty reports whether the patch changes nothing.
func (p ProfilePatch) IsEmpty() bool {
	return p.Nickname == nil && p.AvatarURL == nil && p.Bio == nil
}
