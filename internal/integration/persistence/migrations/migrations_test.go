package migrations

import (
	"io/fs"
	"strings"
	"testing"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "sql")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected file %s", name)
		}
	}

	if len(ups) == 0 {
		t.Fatal("no migrations embedded")
	}
	for version := range ups {
		if !downs[version] {
			t.Errorf("migration %s has no down file", version)
		}
	}
	for version := range downs {
		if !ups[version] {
			t.Errorf("migration %s has no up file", version)
		}
	}
}

func TestDownRejectsNonPositiveSteps(t *testing.T) {
	if err := Down("postgres://unused", 0); err == nil {
		t.Fatal("expected an error for zero steps")
	}
}
