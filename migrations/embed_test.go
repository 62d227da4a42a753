package migrations

import (
	"strings"
	"testing"
)

func TestEmbeddedFS_ContainsMigrationFilesPerDriver(t *testing.T) {
	for _, dir := range []string{"sqlite", "mysql"} {
		t.Run(dir, func(t *testing.T) {
			// Given: The embedded filesystem
			// When: We read the driver directory
			entries, err := FS.ReadDir(dir)
			if err != nil {
				t.Fatalf("failed to read embedded FS: %v", err)
			}

			// Then: It contains the initial schema migration
			found := false
			for _, entry := range entries {
				if entry.Name() == "001_create_catches.sql" {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("%s/001_create_catches.sql not found in embedded FS", dir)
			}
		})
	}
}

func TestEmbeddedFS_MigrationFilesReadable(t *testing.T) {
	for _, path := range []string{"sqlite/001_create_catches.sql", "mysql/001_create_catches.sql"} {
		t.Run(path, func(t *testing.T) {
			content, err := FS.ReadFile(path)
			if err != nil {
				t.Fatalf("failed to read migration file: %v", err)
			}

			s := string(content)
			if len(s) == 0 {
				t.Fatal("migration file is empty")
			}
			if !strings.Contains(s, "-- +goose Up") {
				t.Error("migration missing '-- +goose Up' directive")
			}
			if !strings.Contains(s, "-- +goose Down") {
				t.Error("migration missing '-- +goose Down' directive")
			}
			if !strings.Contains(s, "CREATE TABLE catches") {
				t.Error("migration missing catches table creation")
			}
			for _, m := range []string{"'Net'", "'Line'", "'Trap'", "'Spear'", "'Trawl'"} {
				if !strings.Contains(s, m) {
					t.Errorf("migration missing catch method %s", m)
				}
			}
		})
	}
}
