package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgconn"

	"book-journal/internal/domain/entity"
)

var profileColumns = []string{"user_id", "nickname", "avatar_url", "bio"}

const profileUpdateSQL = "UPDATE profiles SET nickname = COALESCE($1, nickname), " +
	"avatar_url = COALESCE($2, avatar_url), bio = COALESCE($3, bio) " +
	"WHERE user_id = $4 RETURNING user_id, nickname, avatar_url, bio"

func TestProfileRepo_Get(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, nickname, avatar_url, bio FROM profiles WHERE user_id = $1 LIMIT 1")).
		WithArgs(ownerID.String()).
		WillReturnRows(sqlmock.NewRows(profileColumns).AddRow(ownerID.String(), "reader", nil, "likes long novels"))

	got, err := store.Repos().Profiles.Get(context.Background(), ownerID)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	bio := "likes long novels"
	want := &entity.Profile{UserID: ownerID, Nickname: "reader", Bio: &bio}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestProfileRepo_Get_Absent(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM profiles WHERE user_id = $1")).
		WillReturnRows(sqlmock.NewRows(profileColumns))

	got, err := store.Repos().Profiles.Get(context.Background(), ownerID)
	if err != nil || got != nil {
		t.Fatalf("Get = %+v, %v; want nil, nil", got, err)
	}
}

func TestProfileRepo_Update_MergesPatch(t *testing.T) {
	store, mock := newMock(t)

	avatar := "https://img.example.com/reader.png"
	mock.ExpectQuery(regexp.QuoteMeta(profileUpdateSQL)).
		WithArgs("reader2", avatar, nil, ownerID.String()).
		WillReturnRows(sqlmock.NewRows(profileColumns).AddRow(ownerID.String(), "reader2", avatar, "unchanged bio"))

	nickname := "reader2"
	got, err := store.Repos().Profiles.Update(context.Background(), ownerID,
		entity.ProfilePatch{Nickname: &nickname, AvatarURL: &avatar})
	if err != nil {
		t.Fatalf("Update err=%v", err)
	}
	bio := "unchanged bio"
	want := &entity.Profile{UserID: ownerID, Nickname: "reader2", AvatarURL: &avatar, Bio: &bio}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestProfileRepo_Update_NoProfile(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(profileUpdateSQL)).
		WillReturnRows(sqlmock.NewRows(profileColumns))

	got, err := store.Repos().Profiles.Update(context.Background(), ownerID, entity.ProfilePatch{})
	if err != nil || got != nil {
		t.Fatalf("Update = %+v, %v; want nil, nil", got, err)
	}
}

func TestProfileRepo_Update_Errors(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantConflict bool
	}{
		{
			name:         "taken nickname",
			err:          &pgconn.PgError{Code: "23505", ConstraintName: "idx_profiles_nickname"},
			wantConflict: true,
		},
		{name: "other failure", err: errors.New("connection reset")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMock(t)
			mock.ExpectQuery(regexp.QuoteMeta(profileUpdateSQL)).WillReturnError(tt.err)

			nickname := "taken"
			_, err := store.Repos().Profiles.Update(context.Background(), ownerID, entity.ProfilePatch{Nickname: &nickname})
			if err == nil {
				t.Fatal("Update err=nil, want error")
			}
			if got := errors.Is(err, entity.ErrConflict); got != tt.wantConflict {
				t.Errorf("errors.Is(err, ErrConflict) = %v, want %v (err=%v)", got, tt.wantConflict, err)
			}
		})
	}
}
