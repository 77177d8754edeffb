package ads

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/adboard-go/apperror"
)

// Repository is the persistence boundary for advertisements.
type Repository interface {
	Create(ctx context.Context, title, description string, authorID int) (*Ad, error)
	GetByID(ctx context.Context, id int) (*Ad, error)
	Update(ctx context.Context, id int, patch Patch) (*Ad, error)
	Delete(ctx context.Context, id int) error
}

// PostgresRepository implements Repository on a pgx connection pool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a PostgresRepository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create inserts an advertisement and returns it joined with the author name.
func (r *PostgresRepository) Create(ctx context.Context, title, description string, authorID int) (*Ad, error) {
	ad := &Ad{}
	err := r.pool.QueryRow(ctx,
		`WITH inserted AS (
		     INSERT INTO advertisements (title, description, author_id)
		     VALUES ($1, $2, $3)
		     RETURNING id, title, description, created_at, author_id
		 )
		 SELECT i.id, i.title, i.description, i.created_at, i.author_id, u.name
		 FROM inserted i
		 JOIN users u ON u.id = i.author_id`,
		title, description, authorID,
	).Scan(&ad.ID, &ad.Title, &ad.Description, &ad.CreatedAt, &ad.AuthorID, &ad.AuthorName)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create advertisement", err)
	}
	return ad, nil
}

// GetByID fetches an advertisement joined with its author's name.
func (r *PostgresRepository) GetByID(ctx context.Context, id int) (*Ad, error) {
	ad := &Ad{}
	err := r.pool.QueryRow(ctx,
		`SELECT a.id, a.title, a.description, a.created_at, a.author_id, u.name
		 FROM advertisements a
		 JOIN users u ON u.id = a.author_id
		 WHERE a.id = $1`,
		id,
	).Scan(&ad.ID, &ad.Title, &ad.Description, &ad.CreatedAt, &ad.AuthorID, &ad.AuthorName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("Advertisement not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to fetch advertisement", err)
	}
	return ad, nil
}

// buildUpdate assembles the SET clauses and arguments for a partial update.
// The ad ID is always the final argument.
func buildUpdate(id int, patch Patch) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if patch.Title != nil {
		args = append(args, *patch.Title)
		clauses = append(clauses, fmt.Sprintf("title = $%d", len(args)))
	}
	if patch.Description != nil {
		args = append(args, *patch.Description)
		clauses = append(clauses, fmt.Sprintf("description = $%d", len(args)))
	}

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE advertisements a
		 SET %s
		 FROM users u
		 WHERE a.id = $%d AND u.id = a.author_id
		 RETURNING a.id, a.title, a.description, a.created_at, a.author_id, u.name`,
		strings.Join(clauses, ", "), len(args),
	)
	return query, args
}

// Update applies a partial update and returns the resulting row. An empty
// patch returns the ad unchanged.
func (r *PostgresRepository) Update(ctx context.Context, id int, patch Patch) (*Ad, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	query, args := buildUpdate(id, patch)
	ad := &Ad{}
	err := r.pool.QueryRow(ctx, query, args...).
		Scan(&ad.ID, &ad.Title, &ad.Description, &ad.CreatedAt, &ad.AuthorID, &ad.AuthorName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("Advertisement not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to update advertisement", err)
	}
	return ad, nil
}

// Delete removes an advertisement by ID.
func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM advertisements WHERE id = $1`, id)
	if err != nil {
		return apperror.NewDatabaseError("failed to delete advertisement", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError("Advertisement not found", nil)
	}
	return nil
}
