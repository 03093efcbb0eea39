package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	_ "github.com/lib/pq" // driver "postgres" cho database/sql
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationFile mô tả một file migration: 0001_create_users.sql
type MigrationFile struct {
	FileName    string
	Version     int
	Description string
}

// ParseMigrationFileName tách version và description từ tên file
func ParseMigrationFileName(fileName string) (*MigrationFile, error) {
	if !strings.HasSuffix(fileName, ".sql") {
		return nil, fmt.Errorf("migration file must have .sql extension: %s", fileName)
	}

	name := strings.TrimSuffix(fileName, ".sql")
	version, description, ok := strings.Cut(name, "_")
	if !ok || description == "" {
		return nil, fmt.Errorf("invalid migration file name format: %s (expected 0001_description.sql)", fileName)
	}

	v, err := strconv.Atoi(version)
	if err != nil {
		return nil, fmt.Errorf("invalid version number in migration file: %s", fileName)
	}

	return &MigrationFile{FileName: fileName, Version: v, Description: description}, nil
}

// MigrationFiles trả về các migration embedded, sort theo version
func MigrationFiles() ([]*MigrationFile, error) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded migrations: %w", err)
	}

	var migrations []*MigrationFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m, err := ParseMigrationFileName(e.Name())
		if err != nil {
			return nil, err
		}
		migrations = append(migrations, m)
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations, nil
}

// Migrator áp dụng schema migrations qua database/sql + lib/pq
type Migrator struct {
	db *sql.DB
}

// OpenMigrator mở kết nối database/sql riêng cho migration
func OpenMigrator(cfg *DBConfig) (*Migrator, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open migration connection: %w", err)
	}
	return &Migrator{db: db}, nil
}

func (m *Migrator) Close() error {
	return m.db.Close()
}

// Up áp dụng tất cả migration chưa chạy, mỗi file trong một transaction.
// Trả về danh sách file vừa được apply.
func (m *Migrator) Up(ctx context.Context) ([]string, error) {
	if err := m.ensureMigrationsTable(ctx); err != nil {
		return nil, err
	}

	applied, err := m.appliedMigrations(ctx)
	if err != nil {
		return nil, err
	}

	migrations, err := MigrationFiles()
	if err != nil {
		return nil, err
	}

	var done []string
	for _, mf := range migrations {
		if applied[mf.FileName] {
			continue
		}
		if err := m.apply(ctx, mf); err != nil {
			return done, err
		}
		log.Info().Str("file", mf.FileName).Msg("[MIGRATE] Applied migration")
		done = append(done, mf.FileName)
	}
	return done, nil
}

func (m *Migrator) ensureMigrationsTable(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		filename   TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}
	return nil
}

func (m *Migrator) appliedMigrations(ctx context.Context) (map[string]bool, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT filename FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan migration filename: %w", err)
		}
		applied[name] = true
	}
	return applied, rows.Err()
}

func (m *Migrator) apply(ctx context.Context, mf *MigrationFile) error {
	content, err := migrationsFS.ReadFile("migrations/" + mf.FileName)
	if err != nil {
		return fmt.Errorf("failed to read migration %s: %w", mf.FileName, err)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration %s: %w", mf.FileName, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("failed to execute migration %s: %w", mf.FileName, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (filename) VALUES ($1)`, mf.FileName); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", mf.FileName, err)
	}
	return tx.Commit()
}
