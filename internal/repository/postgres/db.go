package postgres

import (
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"eventlex/internal/config"
)

// connMaxLifetime bounds how long a pooled connection is reused before it
// is recycled, so load balancer and server-side idle cutoffs never bite.
const connMaxLifetime = 30 * time.Minute

// NewDB opens the snapshot-store connection pool and verifies connectivity
// with an initial ping.
func NewDB(cfg *config.DBConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("postgres.NewDB: connecting to %s:%d/%s: %w", cfg.Host, cfg.Port, cfg.Name, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpen)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(connMaxLifetime)

	log.Printf("postgres.NewDB: connected to %s:%d/%s (max_open=%d, max_idle=%d)",
		cfg.Host, cfg.Port, cfg.Name, cfg.MaxOpen, cfg.MaxIdle)
	return db, nil
}
