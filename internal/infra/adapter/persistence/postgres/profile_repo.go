package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"book-journal/internal/domain/entity"
	"book-journal/internal/repository"
)

// uniqueViolation is the SQLSTATE of a unique constraint failure.
const uniqueViolation = "23505"

type ProfileRepo struct {
	db Querier
}

func NewProfileRepo(db Querier) repository.ProfileRepository {
	return &ProfileRepo{db: db}
}

func (repo *ProfileRepo) Get(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	query, args, err := psql.Select("user_id", "nickname", "avatar_url", "bio").
		From("profiles").
		Where(sq.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}

	var p entity.Profile
	err = repo.db.QueryRowContext(ctx, query, args...).Scan(&p.UserID, &p.Nickname, &p.AvatarURL, &p.Bio)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &p, nil
}

// Update merges patch into the stored row in one statement; COALESCE keeps
// the current value of every field the patch leaves nil.
func (repo *ProfileRepo) Update(ctx context.Context, userID uuid.UUID, patch entity.ProfilePatch) (*entity.Profile, error) {
	query, args, err := psql.Update("profiles").
		Set("nickname", sq.Expr("COALESCE(?, nickname)", patch.Nickname)).
		Set("avatar_url", sq.Expr("COALESCE(?, avatar_url)", patch.AvatarURL)).
		Set("bio", sq.Expr("COALESCE(?, bio)", patch.Bio)).
		Where(sq.Eq{"user_id": userID}).
		Suffix("RETURNING user_id, nickname, avatar_url, bio").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}

	var p entity.Profile
	err = repo.db.QueryRowContext(ctx, query, args...).Scan(&p.UserID, &p.Nickname, &p.AvatarURL, &p.Bio)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return nil, fmt.Errorf("Update: %w: %s", entity.ErrConflict, pgErr.ConstraintName)
	}
	if err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}
	return &p, nil
}
