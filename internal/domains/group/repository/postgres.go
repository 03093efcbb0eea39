package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"yatube/internal/domains/group/model"
	"yatube/pkg/database"
)

type postgresRepository struct {
	pool database.DB
}

func NewPostgresRepository(pool database.DB) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, g *model.Group) (*model.Group, error) {
	query := `
        INSERT INTO groups (title, slug, description)
        VALUES ($1, $2, $3)
        RETURNING id, title, slug, description
    `

	var created model.Group
	err := r.pool.QueryRow(ctx, query, g.Title, g.Slug, g.Description).
		Scan(&created.ID, &created.Title, &created.Slug, &created.Description)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return nil, model.ErrDuplicateSlug
		}
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Group, error) {
	return r.getOne(ctx, `SELECT id, title, slug, description FROM groups WHERE id = $1`, id)
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*model.Group, error) {
	return r.getOne(ctx, `SELECT id, title, slug, description FROM groups WHERE slug = $1`, slug)
}

func (r *postgresRepository) getOne(ctx context.Context, query string, arg any) (*model.Group, error) {
	var g model.Group
	err := r.pool.QueryRow(ctx, query, arg).Scan(&g.ID, &g.Title, &g.Slug, &g.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return &g, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]model.Group, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, title, slug, description FROM groups ORDER BY title, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	groups, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Group, error) {
		var g model.Group
		err := row.Scan(&g.ID, &g.Title, &g.Slug, &g.Description)
		return g, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan groups: %w", err)
	}
	return groups, nil
}
