package postgres_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"book-journal/internal/common/pagination"
	"book-journal/internal/domain/entity"
	pg "book-journal/internal/infra/adapter/persistence/postgres"
	"book-journal/internal/repository"
)

/* ─────────────────────────── helpers ─────────────────────────── */

var detailColumns = []string{
	"id", "user_id", "book_isbn", "title", "content",
	"rating", "start_date", "end_date", "is_private",
	"created_at", "updated_at", "version",
	"book_id", "isbn", "book_title", "author_id", "published_at",
	"thumbnail_url", "book_created_at", "book_updated_at",
	"author_id", "author_name",
	"nickname", "avatar_url", "bio",
}

var (
	ownerID = uuid.MustParse("6f1c2a9e-3b7d-4f0a-9c1e-2d5b8a7e4f10")
	baseDay = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
)

func samplePost(id int64, start time.Time) *entity.PostDetail {
	title := fmt.Sprintf("post %d", id)
	return &entity.PostDetail{
		Post: entity.Post{
			ID: id, UserID: ownerID, BookISBN: "9788936434267", Title: &title,
			Rating: 4, StartDate: start, EndDate: start.AddDate(0, 0, 3),
			CreatedAt: baseDay, UpdatedAt: baseDay, Version: 1,
		},
		Book:    entity.Book{ID: 3, ISBN: "9788936434267", Title: "소년이 온다", AuthorID: 2, CreatedAt: baseDay, UpdatedAt: baseDay},
		Author:  entity.Author{ID: 2, Name: "한강"},
		Profile: &entity.Profile{Nickname: "reader"},
	}
}

func detailRows(details ...*entity.PostDetail) *sqlmock.Rows {
	rows := sqlmock.NewRows(detailColumns)
	for _, d := range details {
		var nickname, avatar, bio any
		if d.Profile != nil {
			nickname = d.Profile.Nickname
			if d.Profile.AvatarURL != nil {
				avatar = *d.Profile.AvatarURL
			}
			if d.Profile.Bio != nil {
				bio = *d.Profile.Bio
			}
		}
		var title, content any
		if d.Post.Title != nil {
			title = *d.Post.Title
		}
		if d.Post.Content != nil {
			content = *d.Post.Content
		}
		rows.AddRow(
			d.Post.ID, d.Post.UserID.String(), d.Post.BookISBN, title, content,
			d.Post.Rating, d.Post.StartDate, d.Post.EndDate, d.Post.IsPrivate,
			d.Post.CreatedAt, d.Post.UpdatedAt, d.Post.Version,
			d.Book.ID, d.Book.ISBN, d.Book.Title, d.Book.AuthorID, nil,
			nil, d.Book.CreatedAt, d.Book.UpdatedAt,
			d.Author.ID, d.Author.Name,
			nickname, avatar, bio,
		)
	}
	return rows
}

func newMock(t *testing.T) (*pg.Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New err=%v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return pg.NewStore(db), mock
}

/* ─────────────────────────── 1. ListPage ─────────────────────────── */

func TestPostRepo_ListPage_FirstPage(t *testing.T) {
	store, mock := newMock(t)
	mock.MatchExpectationsInOrder(false)

	p9 := samplePost(9, baseDay.AddDate(0, 0, 9))
	p8 := samplePost(8, baseDay.AddDate(0, 0, 8))

	mock.ExpectQuery(regexp.QuoteMeta(
		"WHERE post.deleted_at IS NULL AND post.is_private = $1 ORDER BY post.start_date DESC, post.id DESC LIMIT 2")).
		WithArgs(false).
		WillReturnRows(detailRows(p9, p8))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM posts post")).
		WithArgs(false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(5)))

	page, err := store.Repos().Posts.ListPage(context.Background(), repository.PostFilter{},
		pagination.Request{Order: []string{"startDate_DESC"}, Take: 2})
	if err != nil {
		t.Fatalf("ListPage err=%v", err)
	}

	if diff := cmp.Diff([]*entity.PostDetail{p9, p8}, page.Posts); diff != "" {
		t.Errorf("posts mismatch (-want +got):\n%s", diff)
	}
	if page.Count != 5 {
		t.Errorf("Count = %d, want 5", page.Count)
	}
	if page.NextCursor == nil {
		t.Fatal("NextCursor = nil, want cursor after post 8")
	}
	payload, _, err := pagination.DecodeCursor(*page.NextCursor)
	if err != nil {
		t.Fatalf("DecodeCursor err=%v", err)
	}
	want := pagination.Payload{
		Values: map[string]any{"startDate": "2025-03-09T00:00:00Z", "id": json.Number("8")},
		Order:  []string{"startDate_DESC", "id_DESC"},
	}
	if diff := cmp.Diff(want, payload); diff != "" {
		t.Errorf("cursor mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestPostRepo_ListPage_WithCursorForOwner(t *testing.T) {
	store, mock := newMock(t)
	mock.MatchExpectationsInOrder(false)

	cursor, err := pagination.EncodeCursor(pagination.Payload{
		Values: map[string]any{"startDate": "2025-03-09T00:00:00Z", "id": 8},
		Order:  []string{"startDate_DESC", "id_DESC"},
	})
	if err != nil {
		t.Fatalf("EncodeCursor err=%v", err)
	}

	seek := "WHERE post.deleted_at IS NULL AND post.user_id = $1 AND (post.start_date, post.id) < ($2, $3)"
	mock.ExpectQuery(regexp.QuoteMeta(seek + " ORDER BY post.start_date DESC, post.id DESC LIMIT 2")).
		WithArgs(ownerID.String(), time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), int64(8)).
		WillReturnRows(detailRows(samplePost(7, baseDay.AddDate(0, 0, 7))))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM posts post")).
		WithArgs(ownerID.String(), time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))

	uid := ownerID
	page, err := store.Repos().Posts.ListPage(context.Background(),
		repository.PostFilter{UserID: &uid, IncludePrivate: true},
		// request order is ignored in favour of the cursor's
		pagination.Request{Cursor: cursor, Order: []string{"rating_ASC"}, Take: 2})
	if err != nil {
		t.Fatalf("ListPage err=%v", err)
	}
	if len(page.Posts) != 1 || page.Posts[0].Post.ID != 7 {
		t.Errorf("Posts = %+v, want [post 7]", page.Posts)
	}
	if page.NextCursor != nil {
		t.Errorf("NextCursor = %q, want nil on short page", *page.NextCursor)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestPostRepo_ListPage_InvalidInputRunsNoQuery(t *testing.T) {
	tests := []struct {
		name    string
		req     pagination.Request
		wantErr error
	}{
		{name: "bad cursor", req: pagination.Request{Cursor: "bm90LWpzb24=", Take: 5}, wantErr: pagination.ErrInvalidCursor},
		{
			// {"values":{"rating":"abc","id":4},"order":["rating_DESC","id_DESC"]}
			name:    "text in integer column",
			req:     pagination.Request{Cursor: "eyJ2YWx1ZXMiOnsicmF0aW5nIjoiYWJjIiwiaWQiOjR9LCJvcmRlciI6WyJyYXRpbmdfREVTQyIsImlkX0RFU0MiXX0=", Take: 5},
			wantErr: pagination.ErrInvalidCursor,
		},
		{
			// {"values":{"startDate":"yesterday","id":4},"order":["startDate_DESC","id_DESC"]}
			name:    "unparseable timestamp",
			req:     pagination.Request{Cursor: "eyJ2YWx1ZXMiOnsic3RhcnREYXRlIjoieWVzdGVyZGF5IiwiaWQiOjR9LCJvcmRlciI6WyJzdGFydERhdGVfREVTQyIsImlkX0RFU0MiXX0=", Take: 5},
			wantErr: pagination.ErrInvalidCursor,
		},
		{name: "bad direction", req: pagination.Request{Order: []string{"id_SIDEWAYS"}, Take: 5}, wantErr: pagination.ErrInvalidOrderDirection},
		{name: "unsortable field", req: pagination.Request{Order: []string{"content_ASC"}, Take: 5}, wantErr: pagination.ErrInvalidOrderField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMock(t)

			_, err := store.Repos().Posts.ListPage(context.Background(), repository.PostFilter{}, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ListPage err=%v, want %v", err, tt.wantErr)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestPostRepo_ListPage_CountError(t *testing.T) {
	store, mock := newMock(t)
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery(regexp.QuoteMeta("LIMIT 5")).
		WillReturnRows(detailRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WillReturnError(errors.New("connection reset"))

	_, err := store.Repos().Posts.ListPage(context.Background(), repository.PostFilter{}, pagination.Request{Take: 5})
	if err == nil {
		t.Fatal("ListPage err=nil, want count error")
	}
	if pagination.IsClientError(err) {
		t.Errorf("IsClientError(%v) = true, want false", err)
	}
}

/* ─────────────────────────── 2. Get ─────────────────────────── */

func TestPostRepo_Get(t *testing.T) {
	store, mock := newMock(t)

	want := samplePost(4, baseDay)
	want.Profile = nil

	mock.ExpectQuery(regexp.QuoteMeta("WHERE post.deleted_at IS NULL AND post.id = $1 LIMIT 1")).
		WithArgs(int64(4)).
		WillReturnRows(detailRows(want))

	got, err := store.Repos().Posts.Get(context.Background(), 4)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestPostRepo_Get_NotFound(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery("FROM posts post").
		WithArgs(int64(404)).
		WillReturnRows(detailRows())

	got, err := store.Repos().Posts.Get(context.Background(), 404)
	if err != nil || got != nil {
		t.Fatalf("Get = %+v, %v; want nil, nil", got, err)
	}
}

/* ─────────────────────────── 3. ListByBook ─────────────────────────── */

func TestPostRepo_ListByBook(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("post.book_isbn = $1 AND post.is_private = $2 ORDER BY post.created_at DESC, post.id DESC")).
		WithArgs("9788936434267", false).
		WillReturnRows(detailRows(samplePost(2, baseDay), samplePost(1, baseDay)))

	got, err := store.Repos().Posts.ListByBook(context.Background(), "9788936434267")
	if err != nil {
		t.Fatalf("ListByBook err=%v", err)
	}
	if len(got) != 2 || got[0].Post.ID != 2 {
		t.Fatalf("ListByBook = %+v, want posts 2 and 1", got)
	}
}

/* ─────────────────────────── 4. Create ─────────────────────────── */

func TestPostRepo_Create(t *testing.T) {
	store, mock := newMock(t)

	title := "first read"
	post := &entity.Post{
		UserID: ownerID, BookISBN: "9788936434267", Title: &title,
		Rating: 5, StartDate: baseDay, EndDate: baseDay.AddDate(0, 0, 2),
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO posts")).
		WithArgs(ownerID.String(), "9788936434267", "first read", nil, 5, baseDay, baseDay.AddDate(0, 0, 2), false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at", "version"}).
			AddRow(int64(11), baseDay, baseDay, 1))

	if err := store.Repos().Posts.Create(context.Background(), post); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if post.ID != 11 || post.Version != 1 {
		t.Errorf("Create did not populate generated columns: %+v", post)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ─────────────────────────── 5. Update ─────────────────────────── */

func TestPostRepo_Update(t *testing.T) {
	store, mock := newMock(t)

	post := &entity.Post{ID: 11, BookISBN: "9788936434267", Rating: 3, StartDate: baseDay, EndDate: baseDay}

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE posts SET")).
		WithArgs("9788936434267", nil, nil, 3, baseDay, baseDay, false, int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at", "version"}).AddRow(baseDay, 2))

	if err := store.Repos().Posts.Update(context.Background(), post); err != nil {
		t.Fatalf("Update err=%v", err)
	}
	if post.Version != 2 {
		t.Errorf("Version = %d, want 2", post.Version)
	}
}

func TestPostRepo_Update_NotFound(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery("UPDATE posts").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at", "version"}))

	err := store.Repos().Posts.Update(context.Background(), &entity.Post{ID: 99})
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("Update err=%v, want ErrNotFound", err)
	}
}

/* ─────────────────────────── 6. SoftDelete ─────────────────────────── */

func TestPostRepo_SoftDelete(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE posts SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE posts").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := store.Repos().Posts
	if err := repo.SoftDelete(context.Background(), 3); err != nil {
		t.Fatalf("SoftDelete err=%v", err)
	}
	if err := repo.SoftDelete(context.Background(), 3); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("second SoftDelete err=%v, want ErrNotFound", err)
	}
}
