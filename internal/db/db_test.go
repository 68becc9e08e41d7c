package db

import "testing"

func TestLoadMigrationsSortedByName(t *testing.T) {
	var d DB
	migrations, err := d.loadMigrations()
	if err != nil {
		t.Fatalf("loadMigrations: %v", err)
	}
	if len(migrations) < 3 {
		t.Fatalf("expected at least 3 migrations, got %d", len(migrations))
	}
	for i := 1; i < len(migrations); i++ {
		if migrations[i-1].Name >= migrations[i].Name {
			t.Errorf("migrations not sorted: %s before %s", migrations[i-1].Name, migrations[i].Name)
		}
	}
	if migrations[0].Content == "" {
		t.Errorf("expected migration content to be non-empty")
	}
}
