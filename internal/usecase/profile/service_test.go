package profile_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-journal/internal/domain/entity"
	profileUC "book-journal/internal/usecase/profile"
)

type stubUsers struct {
	data map[uuid.UUID]*entity.User
	err  error
}

func (s *stubUsers) Get(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return s.data[id], s.err
}

type stubProfiles struct {
	data    map[uuid.UUID]*entity.Profile
	err     error
	updates []entity.ProfilePatch
}

func (s *stubProfiles) Get(_ context.Context, id uuid.UUID) (*entity.Profile, error) {
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.data[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *stubProfiles) Update(_ context.Context, id uuid.UUID, patch entity.ProfilePatch) (*entity.Profile, error) {
	s.updates = append(s.updates, patch)
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.data[id]
	if !ok {
		return nil, nil
	}
	if patch.Nickname != nil {
		p.Nickname = *patch.Nickname
	}
	if patch.AvatarURL != nil {
		p.AvatarURL = patch.AvatarURL
	}
	if patch.Bio != nil {
		p.Bio = patch.Bio
	}
	cp := *p
	return &cp, nil
}

var reader = uuid.MustParse("0b6f3f5e-8d1a-4c8e-9a51-7c2f1d3e4b60")

func newService() (*profileUC.Service, *stubProfiles) {
	bio := "old bio"
	profiles := &stubProfiles{data: map[uuid.UUID]*entity.Profile{
		reader: {UserID: reader, Nickname: "reader", Bio: &bio},
	}}
	users := &stubUsers{data: map[uuid.UUID]*entity.User{reader: {ID: reader}}}
	return &profileUC.Service{Users: users, Profiles: profiles}, profiles
}

func strPtr(s string) *string { return &s }

func TestService_Update_MergesFields(t *testing.T) {
	svc, profiles := newService()

	got, err := svc.Update(context.Background(), reader, entity.ProfilePatch{
		Nickname:  strPtr("  bookworm "),
		AvatarURL: strPtr("https://img.example.com/a.png"),
	})
	require.NoError(t, err)

	assert.Equal(t, "bookworm", got.Nickname)
	assert.Equal(t, "https://img.example.com/a.png", *got.AvatarURL)
	require.NotNil(t, got.Bio)
	assert.Equal(t, "old bio", *got.Bio, "fields absent from the patch are kept")
	require.Len(t, profiles.updates, 1)
	assert.Nil(t, profiles.updates[0].Bio)
}

func TestService_Update_EmptyPatchReturnsProfile(t *testing.T) {
	svc, _ := newService()

	got, err := svc.Update(context.Background(), reader, entity.ProfilePatch{})
	require.NoError(t, err)
	assert.Equal(t, "reader", got.Nickname)
}

func TestService_Update_Errors(t *testing.T) {
	stranger := uuid.MustParse("7d0c2e41-59a3-4b8e-8f02-3c6a9d1b5e27")
	boom := errors.New("boom")

	tests := []struct {
		name    string
		user    uuid.UUID
		patch   entity.ProfilePatch
		repoErr error
		wantErr error
	}{
		{name: "anonymous", user: uuid.Nil, wantErr: profileUC.ErrUnauthenticated},
		{name: "unknown user", user: stranger, wantErr: profileUC.ErrUserNotFound},
		{name: "blank nickname", user: reader, patch: entity.ProfilePatch{Nickname: strPtr("   ")}, wantErr: entity.ErrInvalid},
		{
			name:    "nickname too long",
			user:    reader,
			patch:   entity.ProfilePatch{Nickname: strPtr(strings.Repeat("가", entity.MaxNicknameLength+1))},
			wantErr: entity.ErrInvalid,
		},
		{name: "bad avatar url", user: reader, patch: entity.ProfilePatch{AvatarURL: strPtr("ftp://example.com/a.png")}, wantErr: entity.ErrInvalid},
		{
			name:    "nickname taken",
			user:    reader,
			patch:   entity.ProfilePatch{Nickname: strPtr("someone")},
			repoErr: fmt.Errorf("Update: %w: idx_profiles_nickname", entity.ErrConflict),
			wantErr: profileUC.ErrNicknameTaken,
		},
		{name: "repository failure", user: reader, patch: entity.ProfilePatch{Bio: strPtr("x")}, repoErr: boom, wantErr: boom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, profiles := newService()
			profiles.err = tt.repoErr

			_, err := svc.Update(context.Background(), tt.user, tt.patch)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_Update_NoProfile(t *testing.T) {
	svc, profiles := newService()
	delete(profiles.data, reader)

	_, err := svc.Update(context.Background(), reader, entity.ProfilePatch{Bio: strPtr("hello")})
	assert.ErrorIs(t, err, profileUC.ErrProfileNotFound)
}

func TestService_Get(t *testing.T) {
	svc, profiles := newService()

	got, err := svc.Get(context.Background(), reader)
	require.NoError(t, err)
	assert.Equal(t, "reader", got.Nickname)

	_, err = svc.Get(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, profileUC.ErrUnauthenticated)

	delete(profiles.data, reader)
	_, err = svc.Get(context.Background(), reader)
	assert.ErrorIs(t, err, profileUC.ErrProfileNotFound)
}
