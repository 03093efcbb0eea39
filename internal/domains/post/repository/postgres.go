package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	groupModel "yatube/internal/domains/group/model"
	"yatube/internal/domains/post/model"
	userModel "yatube/internal/domains/user/model"
	"yatube/pkg/database"
)

type postgresRepository struct {
	pool database.DB
}

func NewPostgresRepository(pool database.DB) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

// postSelect join author và group để render không cần query thêm
const postSelect = `
        SELECT p.id, p.text, p.pub_date,
               u.id, u.username, u.email, u.created_at,
               g.id, g.title, g.slug, g.description
        FROM posts p
        JOIN users u ON u.id = p.author_id
        LEFT JOIN groups g ON g.id = p.group_id
    `

const postOrder = ` ORDER BY p.pub_date DESC, p.id DESC`

func scanPost(row pgx.Row) (*model.Post, error) {
	var (
		p      model.Post
		author userModel.User
		gID    *int64
		gTitle *string
		gSlug  *string
		gDesc  *string
	)
	err := row.Scan(
		&p.ID, &p.Text, &p.PubDate,
		&author.ID, &author.Username, &author.Email, &author.CreatedAt,
		&gID, &gTitle, &gSlug, &gDesc,
	)
	if err != nil {
		return nil, err
	}

	p.Author = &author
	if gID != nil {
		p.Group = &groupModel.Group{ID: *gID, Title: deref(gTitle), Slug: deref(gSlug), Description: deref(gDesc)}
	}
	return &p, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// where build mệnh đề WHERE và args cho Filter
func (f Filter) where() (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.AuthorID != nil {
		args = append(args, *f.AuthorID)
		conds = append(conds, "p.author_id = $"+strconv.Itoa(len(args)))
	}
	if f.GroupID != nil {
		args = append(args, *f.GroupID)
		conds = append(conds, "p.group_id = $"+strconv.Itoa(len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
		if strings.Contains(pgErr.ConstraintName, "group") {
			return model.ErrInvalidGroup
		}
	}
	return err
}

func (r *postgresRepository) Create(ctx context.Context, authorID uuid.UUID, fields model.PostFields) (*model.Post, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Post, error) {
		var id int64
		err := tx.QueryRow(ctx,
			`INSERT INTO posts (text, author_id, group_id) VALUES ($1, $2, $3) RETURNING id`,
			fields.Text, authorID, fields.GroupID,
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("failed to create post: %w", mapWriteError(err))
		}

		p, err := scanPost(tx.QueryRow(ctx, postSelect+` WHERE p.id = $1`, id))
		if err != nil {
			return nil, fmt.Errorf("failed to reload post: %w", err)
		}
		return p, nil
	})
}

func (r *postgresRepository) Update(ctx context.Context, id int64, editorID uuid.UUID, fields model.PostFields) (*model.Post, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Post, error) {
		// Lock row để author check và UPDATE là atomic
		var authorID uuid.UUID
		err := tx.QueryRow(ctx, `SELECT author_id FROM posts WHERE id = $1 FOR UPDATE`, id).Scan(&authorID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, model.ErrPostNotFound
			}
			return nil, fmt.Errorf("failed to lock post: %w", err)
		}
		if authorID != editorID {
			return nil, model.ErrNotAuthor
		}

		_, err = tx.Exec(ctx, `UPDATE posts SET text = $2, group_id = $3 WHERE id = $1`, id, fields.Text, fields.GroupID)
		if err != nil {
			return nil, fmt.Errorf("failed to update post: %w", mapWriteError(err))
		}

		p, err := scanPost(tx.QueryRow(ctx, postSelect+` WHERE p.id = $1`, id))
		if err != nil {
			return nil, fmt.Errorf("failed to reload post: %w", err)
		}
		return p, nil
	})
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	p, err := scanPost(r.pool.QueryRow(ctx, postSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) List(ctx context.Context, f Filter, limit, offset int) ([]model.Post, error) {
	where, args := f.where()
	args = append(args, limit, offset)
	query := postSelect + where + postOrder +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	posts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Post, error) {
		p, err := scanPost(row)
		if err != nil {
			return model.Post{}, err
		}
		return *p, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan posts: %w", err)
	}
	return posts, nil
}

func (r *postgresRepository) Count(ctx context.Context, f Filter) (int, error) {
	where, args := f.where()

	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts p`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return n, nil
}
