package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMigrationFileName(t *testing.T) {
	m, err := ParseMigrationFileName("0003_create_posts.sql")
	require.NoError(t, err)
	assert.Equal(t, 3, m.Version)
	assert.Equal(t, "create_posts", m.Description)

	_, err = ParseMigrationFileName("0003.sql")
	assert.Error(t, err)

	_, err = ParseMigrationFileName("abc_create.sql")
	assert.Error(t, err)

	_, err = ParseMigrationFileName("0001_create.txt")
	assert.Error(t, err)
}

func TestMigrationFilesAreOrdered(t *testing.T) {
	files, err := MigrationFiles()
	require.NoError(t, err)
	require.Len(t, files, 3)

	for i, f := range files {
		assert.Equal(t, i+1, f.Version, f.FileName)
	}
	assert.Equal(t, "0003_create_posts.sql", files[2].FileName)
}

func TestDSN(t *testing.T) {
	cfg := &DBConfig{Host: "db", Port: 5432, Username: "yatube", Password: "p@ss word", DBName: "yatube"}
	assert.Equal(t, "postgres://yatube:p%40ss%20word@db:5432/yatube?sslmode=disable", cfg.DSN())

	cfg.SSLMode = "require"
	assert.Contains(t, cfg.DSN(), "sslmode=require")
}
