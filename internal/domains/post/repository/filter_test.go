package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFilterWhere(t *testing.T) {
	where, args := Filter{}.where()
	assert.Empty(t, where)
	assert.Empty(t, args)

	author := uuid.New()
	group := int64(3)

	where, args = Filter{AuthorID: &author}.where()
	assert.Equal(t, " WHERE p.author_id = $1", where)
	assert.Equal(t, []any{author}, args)

	where, args = Filter{AuthorID: &author, GroupID: &group}.where()
	assert.Equal(t, " WHERE p.author_id = $1 AND p.group_id = $2", where)
	assert.Equal(t, []any{author, group}, args)
}
