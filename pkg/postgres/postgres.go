package postgres

import (
	"context"
	"embed"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
)

type DB struct {
	Host     string `yaml:"host" envconfig:"DB_HOST" default:"localhost"`
	Port     string `yaml:"port" envconfig:"DB_PORT" default:"5432"`
	User     string `yaml:"user" envconfig:"DB_USER" default:"postgres"`
	Password string `yaml:"password" envconfig:"DB_PASSWORD"`
	Name     string `yaml:"name" envconfig:"DB_NAME" default:"library"`
	SSLMode  string `yaml:"sslmode" envconfig:"DB_SSLMODE" default:"disable"`
}

func (d *DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// NewPostgresDB connects over the pgx stdlib driver and applies the embedded
// goose migrations.
func NewPostgresDB(ctx context.Context, cfg *DB, migrationFiles embed.FS) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(time.Hour)

	goose.SetBaseFS(migrationFiles)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, err
	}
	if err := goose.Up(db.DB, "."); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}
