package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"book-journal/internal/common/pagination"
	"book-journal/internal/domain/entity"
	"book-journal/internal/observability/metrics"
	"book-journal/internal/observability/tracing"
	"book-journal/internal/repository"
)

const postAlias = "post"

func observeQuery(operation string, start time.Time) {
	metrics.RecordDBQuery(operation, time.Since(start))
}

// postSortColumns whitelists the fields a post listing can be ordered by.
var postSortColumns = map[string]pagination.Column{
	entity.PostFieldID:        {Name: "id", Kind: pagination.KindInt},
	entity.PostFieldRating:    {Name: "rating", Kind: pagination.KindInt},
	entity.PostFieldStartDate: {Name: "start_date", Kind: pagination.KindTime},
	entity.PostFieldEndDate:   {Name: "end_date", Kind: pagination.KindTime},
	entity.PostFieldCreatedAt: {Name: "created_at", Kind: pagination.KindTime},
	entity.PostFieldUpdatedAt: {Name: "updated_at", Kind: pagination.KindTime},
}

var postDetailColumns = []string{
	"post.id", "post.user_id", "post.book_isbn", "post.title", "post.content",
	"post.rating", "post.start_date", "post.end_date", "post.is_private",
	"post.created_at", "post.updated_at", "post.version",
	"book.id", "book.isbn", "book.title", "book.author_id", "book.published_at",
	"book.thumbnail_url", "book.created_at", "book.updated_at",
	"author.id", "author.name",
	"profile.nickname", "profile.avatar_url", "profile.bio",
}

type PostRepo struct {
	db Querier
	// sequential is set for transaction-bound repos, whose single connection
	// cannot run the page and count queries at the same time.
	sequential bool
}

func NewPostRepo(db Querier) repository.PostRepository {
	_, isTx := db.(*sql.Tx)
	return &PostRepo{db: db, sequential: isTx}
}

// postDetailQuery selects live posts joined with their book, author and the
// owner's profile.
func postDetailQuery() sq.SelectBuilder {
	return psql.Select().
		From("posts post").
		Join("books book ON book.isbn = post.book_isbn").
		Join("authors author ON author.id = book.author_id").
		LeftJoin("profiles profile ON profile.user_id = post.user_id").
		Where("post.deleted_at IS NULL")
}

func (repo *PostRepo) ListPage(ctx context.Context, filter repository.PostFilter, req pagination.Request) (*repository.PostPage, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "postgres.PostRepo.ListPage",
		trace.WithAttributes(
			attribute.Int("pagination.take", req.Take),
			attribute.Bool("pagination.cursor", req.Cursor != ""),
			attribute.String("pagination.order", strings.Join(req.Order, ",")),
		))
	defer span.End()

	base := postDetailQuery()
	if filter.UserID != nil {
		base = base.Where(sq.Eq{"post.user_id": *filter.UserID})
	}
	if !filter.IncludePrivate {
		base = base.Where(sq.Eq{"post.is_private": false})
	}

	q := NewSelectQuery(base, postAlias, postSortColumns, postDetailColumns...)
	plan, err := pagination.Apply(q, req)
	if err != nil {
		return nil, fmt.Errorf("ListPage: %w", err)
	}
	span.SetAttributes(attribute.String("pagination.effective_order", strings.Join(plan.Order().Strings(), ",")))

	selectSQL, selectArgs, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ListPage: %w", err)
	}
	countSQL, countArgs, err := q.CountSql()
	if err != nil {
		return nil, fmt.Errorf("ListPage: %w", err)
	}

	var (
		posts []*entity.PostDetail
		count int64
	)
	loadPage := func(ctx context.Context) error {
		defer observeQuery("posts_list_page", time.Now())
		var err error
		posts, err = repo.queryDetails(ctx, selectSQL, selectArgs...)
		return err
	}
	loadCount := func(ctx context.Context) error {
		defer observeQuery("posts_count", time.Now())
		if err := repo.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&count); err != nil {
			return fmt.Errorf("Count: %w", err)
		}
		return nil
	}

	if repo.sequential {
		err = loadPage(ctx)
		if err == nil {
			err = loadCount(ctx)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return loadPage(gctx) })
		g.Go(func() error { return loadCount(gctx) })
		err = g.Wait()
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list page failed")
		return nil, fmt.Errorf("ListPage: %w", err)
	}

	next, err := pagination.NextCursor(plan, posts)
	if err != nil {
		return nil, fmt.Errorf("ListPage: %w", err)
	}
	span.SetAttributes(attribute.Int("pagination.returned", len(posts)))

	return &repository.PostPage{Posts: posts, NextCursor: next, Count: count}, nil
}

func (repo *PostRepo) Get(ctx context.Context, id int64) (*entity.PostDetail, error) {
	query, args, err := postDetailQuery().
		Columns(postDetailColumns...).
		Where(sq.Eq{"post.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}

	details, err := repo.queryDetails(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	if len(details) == 0 {
		return nil, nil
	}
	return details[0], nil
}

func (repo *PostRepo) ListByBook(ctx context.Context, isbn string) ([]entity.PostDetail, error) {
	query, args, err := postDetailQuery().
		Columns(postDetailColumns...).
		Where(sq.Eq{"post.book_isbn": isbn}).
		Where(sq.Eq{"post.is_private": false}).
		OrderBy("post.created_at DESC", "post.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ListByBook: %w", err)
	}

	details, err := repo.queryDetails(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListByBook: %w", err)
	}
	result := make([]entity.PostDetail, 0, len(details))
	for _, d := range details {
		result = append(result, *d)
	}
	return result, nil
}

func (repo *PostRepo) queryDetails(ctx context.Context, query string, args ...any) ([]*entity.PostDetail, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("Query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]*entity.PostDetail, 0, 16)
	for rows.Next() {
		var (
			d        entity.PostDetail
			nickname sql.NullString
			avatar   sql.NullString
			bio      sql.NullString
		)
		if err := rows.Scan(
			&d.Post.ID, &d.Post.UserID, &d.Post.BookISBN, &d.Post.Title, &d.Post.Content,
			&d.Post.Rating, &d.Post.StartDate, &d.Post.EndDate, &d.Post.IsPrivate,
			&d.Post.CreatedAt, &d.Post.UpdatedAt, &d.Post.Version,
			&d.Book.ID, &d.Book.ISBN, &d.Book.Title, &d.Book.AuthorID, &d.Book.PublishedAt,
			&d.Book.ThumbnailURL, &d.Book.CreatedAt, &d.Book.UpdatedAt,
			&d.Author.ID, &d.Author.Name,
			&nickname, &avatar, &bio,
		); err != nil {
			return nil, fmt.Errorf("Scan: %w", err)
		}
		if nickname.Valid {
			d.Profile = &entity.Profile{
				Nickname:  nickname.String,
				AvatarURL: nullStringPtr(avatar),
				Bio:       nullStringPtr(bio),
			}
		}
		result = append(result, &d)
	}
	return result, rows.Err()
}

func (repo *PostRepo) Create(ctx context.Context, post *entity.Post) error {
	query, args, err := psql.Insert("posts").
		Columns("user_id", "book_isbn", "title", "content", "rating",
			"start_date", "end_date", "is_private").
		Values(post.UserID, post.BookISBN, post.Title, post.Content, post.Rating,
			post.StartDate, post.EndDate, post.IsPrivate).
		Suffix("RETURNING id, created_at, updated_at, version").
		ToSql()
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}

	err = repo.db.QueryRowContext(ctx, query, args...).
		Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt, &post.Version)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *PostRepo) Update(ctx context.Context, post *entity.Post) error {
	query, args, err := psql.Update("posts").
		Set("book_isbn", post.BookISBN).
		Set("title", post.Title).
		Set("content", post.Content).
		Set("rating", post.Rating).
		Set("start_date", post.StartDate).
		Set("end_date", post.EndDate).
		Set("is_private", post.IsPrivate).
		Set("updated_at", sq.Expr("now()")).
		Set("version", sq.Expr("version + 1")).
		Where(sq.Eq{"id": post.ID}).
		Where("deleted_at IS NULL").
		Suffix("RETURNING updated_at, version").
		ToSql()
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}

	err = repo.db.QueryRowContext(ctx, query, args...).Scan(&post.UpdatedAt, &post.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	return nil
}

func (repo *PostRepo) SoftDelete(ctx context.Context, id int64) error {
	query, args, err := psql.Update("posts").
		Set("deleted_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return fmt.Errorf("SoftDelete: %w", err)
	}

	res, err := repo.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("SoftDelete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("SoftDelete: %w", entity.ErrNotFound)
	}
	return nil
}

func nullStringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
