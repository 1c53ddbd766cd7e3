package main

import (
	"io/fs"
	"os"

	"bookshelf/db"
)

func migrationsDir() string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return "db/migrations"
}

// migrationSource picks the migrations goose reads. MIGRATIONS_DIR selects a
// directory on disk; otherwise the copy embedded in the binary is used.
func migrationSource() (fs.FS, string) {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return nil, v
	}
	return db.Migrations, db.MigrationsDir
}
