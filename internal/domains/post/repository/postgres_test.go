package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/internal/domains/post/model"
)

var postColumns = []string{
	"id", "text", "pub_date",
	"author_id", "username", "email", "created_at",
	"group_id", "title", "slug", "description",
}

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, RepositoryInterface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewPostgresRepository(mock)
}

func ptr[T any](v T) *T { return &v }

func TestListOrdersNewestFirstAndNumbersPlaceholders(t *testing.T) {
	mock, repo := newMockRepo(t)
	author := uuid.New()
	group := int64(7)
	pub := time.Date(2022, 3, 1, 10, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows(postColumns).
		AddRow(int64(12), "newer", pub.Add(time.Minute),
			author, "leo", "leo@example.com", pub,
			ptr(group), ptr("Cats"), ptr("cats"), ptr("")).
		AddRow(int64(11), "older", pub,
			author, "leo", "leo@example.com", pub,
			(*int64)(nil), (*string)(nil), (*string)(nil), (*string)(nil))

	mock.ExpectQuery(regexp.QuoteMeta(
		`WHERE p.author_id = $1 AND p.group_id = $2 ORDER BY p.pub_date DESC, p.id DESC LIMIT $3 OFFSET $4`)).
		WithArgs(author, group, 10, 20).
		WillReturnRows(rows)

	posts, err := repo.List(context.Background(), Filter{AuthorID: &author, GroupID: &group}, 10, 20)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, int64(12), posts[0].ID)
	require.NotNil(t, posts[0].Group)
	assert.Equal(t, "cats", posts[0].Group.Slug)
	assert.Equal(t, "leo", posts[0].Author.Username)
	assert.Nil(t, posts[1].Group)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListWithoutFilter(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY p.pub_date DESC, p.id DESC LIMIT $1 OFFSET $2`)).
		WithArgs(10, 0).
		WillReturnRows(pgxmock.NewRows(postColumns))

	posts, err := repo.List(context.Background(), Filter{}, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountWithGroupFilter(t *testing.T) {
	mock, repo := newMockRepo(t)
	group := int64(3)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM posts p WHERE p.group_id = $1`)).
		WithArgs(group).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(13))

	n, err := repo.Count(context.Background(), Filter{GroupID: &group})
	require.NoError(t, err)
	assert.Equal(t, 13, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateInsertsAndReloadsInTransaction(t *testing.T) {
	mock, repo := newMockRepo(t)
	author := uuid.New()
	pub := time.Date(2022, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO posts (text, author_id, group_id) VALUES ($1, $2, $3) RETURNING id`)).
		WithArgs("Hello", author, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE p.id = $1`)).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(postColumns).
			AddRow(int64(1), "Hello", pub,
				author, "leo", "", pub,
				(*int64)(nil), (*string)(nil), (*string)(nil), (*string)(nil)))
	mock.ExpectCommit()

	p, err := repo.Create(context.Background(), author, model.PostFields{Text: "Hello"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, author, p.Author.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUnknownGroupMapsToInvalidGroup(t *testing.T) {
	mock, repo := newMockRepo(t)
	group := int64(99)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO posts`)).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "posts_group_id_fkey"})
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), uuid.New(), model.PostFields{Text: "Hello", GroupID: &group})
	assert.ErrorIs(t, err, model.ErrInvalidGroup)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateByNonAuthorRollsBack(t *testing.T) {
	mock, repo := newMockRepo(t)
	owner := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT author_id FROM posts WHERE id = $1 FOR UPDATE`)).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"author_id"}).AddRow(owner))
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), 5, uuid.New(), model.PostFields{Text: "hijack"})
	assert.ErrorIs(t, err, model.ErrNotAuthor)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUnknownPost(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FOR UPDATE`)).
		WithArgs(int64(404)).
		WillReturnRows(pgxmock.NewRows([]string{"author_id"}))
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), 404, uuid.New(), model.PostFields{Text: "x"})
	assert.ErrorIs(t, err, model.ErrPostNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateByAuthorCommits(t *testing.T) {
	mock, repo := newMockRepo(t)
	owner := uuid.New()
	group := int64(2)
	pub := time.Date(2022, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FOR UPDATE`)).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"author_id"}).AddRow(owner))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE posts SET text = $2, group_id = $3 WHERE id = $1`)).
		WithArgs(int64(5), "edited", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE p.id = $1`)).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows(postColumns).
			AddRow(int64(5), "edited", pub,
				owner, "leo", "", pub,
				ptr(group), ptr("Cats"), ptr("cats"), ptr("")))
	mock.ExpectCommit()

	p, err := repo.Update(context.Background(), 5, owner, model.PostFields{Text: "edited", GroupID: &group})
	require.NoError(t, err)
	assert.Equal(t, "edited", p.Text)
	require.NotNil(t, p.Group)
	assert.Equal(t, group, p.Group.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
