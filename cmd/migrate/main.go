package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"eventlex/internal/config"
)

const usage = `Usage: migrate <command>

Commands:
  up         apply all pending migrations to the eventlex schema
  down       revert all migrations
  steps N    apply N migrations (negative N reverts)
  force N    mark version N as applied without running it
  version    print the current schema version
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("migrate: loading config: %v", err)
	}

	m, err := migrate.New("file://db/migrations", cfg.DB.DSN())
	if err != nil {
		log.Fatalf("migrate: opening migration source: %v", err)
	}
	defer m.Close()

	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	switch cmd := os.Args[1]; cmd {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("migrate: up: %v", err)
		}
		logVersion(m, "schema is up to date")

	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("migrate: down: %v", err)
		}
		logVersion(m, "schema reverted")

	case "steps":
		n := intArg("steps")
		if err := m.Steps(n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("migrate: steps %d: %v", n, err)
		}
		logVersion(m, fmt.Sprintf("applied %d steps", n))

	case "force":
		n := intArg("force")
		if err := m.Force(n); err != nil {
			log.Fatalf("migrate: force %d: %v", n, err)
		}
		logVersion(m, "version forced")

	case "version":
		logVersion(m, "current")

	default:
		fmt.Printf("migrate: unknown command %q\n\n%s", cmd, usage)
		os.Exit(1)
	}
}

func intArg(cmd string) int {
	if len(os.Args) < 3 {
		log.Fatalf("migrate: %s requires a number argument", cmd)
	}
	n, err := strconv.Atoi(os.Args[2])
	if err != nil {
		log.Fatalf("migrate: invalid %s argument %q: %v", cmd, os.Args[2], err)
	}
	return n
}

func logVersion(m *migrate.Migrate, msg string) {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.Printf("migrate: %s (no migrations applied)", msg)
		return
	}
	if err != nil {
		log.Fatalf("migrate: reading version: %v", err)
	}
	log.Printf("migrate: %s (version %d, dirty=%v)", msg, version, dirty)
}
