package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"book-journal/internal/domain/entity"
	"book-journal/internal/repository"
)

var bookColumns = []string{
	"id", "isbn", "title", "author_id", "published_at", "thumbnail_url", "created_at", "updated_at",
}

type BookRepo struct {
	db Querier
}

func NewBookRepo(db Querier) repository.BookRepository {
	return &BookRepo{db: db}
}

func (repo *BookRepo) GetByISBN(ctx context.Context, isbn string) (*entity.Book, error) {
	query, args, err := psql.Select(bookColumns...).
		From("books").
		Where(sq.Eq{"isbn": isbn}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("GetByISBN: %w", err)
	}

	var book entity.Book
	err = repo.db.QueryRowContext(ctx, query, args...).Scan(scanBook(&book)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByISBN: %w", err)
	}
	return &book, nil
}

func (repo *BookRepo) List(ctx context.Context) ([]entity.Book, error) {
	query, args, err := psql.Select(bookColumns...).
		From("books").
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	books := make([]entity.Book, 0, 32)
	for rows.Next() {
		var book entity.Book
		if err := rows.Scan(scanBook(&book)...); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

func (repo *BookRepo) Create(ctx context.Context, book *entity.Book) error {
	query, args, err := psql.Insert("books").
		Columns("isbn", "title", "author_id", "published_at", "thumbnail_url").
		Values(book.ISBN, book.Title, book.AuthorID, book.PublishedAt, book.ThumbnailURL).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}

	if err := repo.db.QueryRowContext(ctx, query, args...).
		Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt); err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func scanBook(b *entity.Book) []any {
	return []any{
		&b.ID, &b.ISBN, &b.Title, &b.AuthorID, &b.PublishedAt, &b.ThumbnailURL, &b.CreatedAt, &b.UpdatedAt,
	}
}

type AuthorRepo struct {
	db Querier
}

func NewAuthorRepo(db Querier) repository.AuthorRepository {
	return &AuthorRepo{db: db}
}

func (repo *AuthorRepo) GetByName(ctx context.Context, name string) (*entity.Author, error) {
	return repo.getWhere(ctx, "GetByName", sq.Eq{"name": name})
}

func (repo *AuthorRepo) Get(ctx context.Context, id int64) (*entity.Author, error) {
	return repo.getWhere(ctx, "Get", sq.Eq{"id": id})
}

func (repo *AuthorRepo) getWhere(ctx context.Context, op string, pred sq.Eq) (*entity.Author, error) {
	query, args, err := psql.Select("id", "name").
		From("authors").
		Where(pred).
		OrderBy("id").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var author entity.Author
	err = repo.db.QueryRowContext(ctx, query, args...).Scan(&author.ID, &author.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &author, nil
}

func (repo *AuthorRepo) Create(ctx context.Context, author *entity.Author) error {
	query, args, err := psql.Insert("authors").
		Columns("name").
		Values(author.Name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}

	if err := repo.db.QueryRowContext(ctx, query, args...).Scan(&author.ID); err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

type UserRepo struct {
	db Querier
}

func NewUserRepo(db Querier) repository.UserRepository {
	return &UserRepo{db: db}
}

func (repo *UserRepo) Get(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query, args, err := psql.Select("id", "email", "name", "created_at").
		From("users").
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}

	var user entity.User
	err = repo.db.QueryRowContext(ctx, query, args...).
		Scan(&user.ID, &user.Email, &user.Name, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &user, nil
}
