package sqlstate

import (
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/strata-repo/fault"
)

// openNodeDB opens an in-memory database with a minimal node tree schema:
// unique sibling names, a parent foreign key, a NOT NULL name and a CHECK
// on depth.
func openNodeDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(ON)")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// SQLite works best with a single connection for writes.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE nodes (
			id        TEXT PRIMARY KEY,
			parent_id TEXT REFERENCES nodes(id),
			name      TEXT NOT NULL,
			depth     INTEGER NOT NULL CHECK (depth >= 0)
		);
		CREATE UNIQUE INDEX nodes_sibling_name ON nodes(parent_id, name);
	`)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	_, err = db.Exec(`INSERT INTO nodes (id, parent_id, name, depth) VALUES ('root', NULL, '', 0)`)
	if err != nil {
		t.Fatalf("failed to insert root node: %v", err)
	}

	return db
}

func TestWrap_SQLiteUniqueViolation(t *testing.T) {
	db := openNodeDB(t)

	_, err := db.Exec(`INSERT INTO nodes (id, parent_id, name, depth) VALUES ('n1', 'root', 'news', 1)`)
	if err != nil {
		t.Fatalf("failed to insert first child: %v", err)
	}

	_, err = db.Exec(`INSERT INTO nodes (id, parent_id, name, depth) VALUES ('n2', 'root', 'news', 1)`)
	if err == nil {
		t.Fatal("expected a unique constraint error, got nil")
	}

	got := Wrap(err, "add node /news")
	if !fault.IsItemExists(got) {
		t.Errorf("expected item_exists, got %s (%v)", fault.KindOf(got), got)
	}
	if fault.Transient(got) {
		t.Error("expected a same-name sibling collision not to be transient")
	}
	if !errors.Is(got, err) {
		t.Error("expected the driver error to stay on the chain")
	}
}

func TestWrap_SQLitePrimaryKeyViolation(t *testing.T) {
	db := openNodeDB(t)

	_, err := db.Exec(`INSERT INTO nodes (id, parent_id, name, depth) VALUES ('root', NULL, 'other', 0)`)
	if err == nil {
		t.Fatal("expected a primary key error, got nil")
	}

	got := Wrap(err, "add node")
	if !fault.IsItemExists(got) {
		t.Errorf("expected item_exists, got %s (%v)", fault.KindOf(got), got)
	}
}

func TestWrap_SQLiteForeignKeyViolation(t *testing.T) {
	db := openNodeDB(t)

	_, err := db.Exec(`INSERT INTO nodes (id, parent_id, name, depth) VALUES ('n1', 'missing', 'news', 1)`)
	if err == nil {
		t.Fatal("expected a foreign key error, got nil")
	}

	got := Wrap(err, "add node below missing parent")
	if !fault.IsReferentialIntegrity(got) {
		t.Errorf("expected referential_integrity, got %s (%v)", fault.KindOf(got), got)
	}
}

func TestWrap_SQLiteDeleteReferencedParent(t *testing.T) {
	db := openNodeDB(t)

	_, err := db.Exec(`INSERT INTO nodes (id, parent_id, name, depth) VALUES ('n1', 'root', 'news', 1)`)
	if err != nil {
		t.Fatalf("failed to insert child: %v", err)
	}

	_, err = db.Exec(`DELETE FROM nodes WHERE id = 'root'`)
	if err == nil {
		t.Fatal("expected a foreign key error, got nil")
	}

	got := Wrap(err, "remove node /")
	if !fault.IsReferentialIntegrity(got) {
		t.Errorf("expected referential_integrity, got %s (%v)", fault.KindOf(got), got)
	}
}

func TestWrap_SQLiteNotNullViolation(t *testing.T) {
	db := openNodeDB(t)

	_, err := db.Exec(`INSERT INTO nodes (id, parent_id, name, depth) VALUES ('n1', 'root', NULL, 1)`)
	if err == nil {
		t.Fatal("expected a not null error, got nil")
	}

	got := Wrap(err, "add unnamed node")
	if !fault.IsConstraintViolation(got) {
		t.Errorf("expected constraint_violation, got %s (%v)", fault.KindOf(got), got)
	}
}

func TestWrap_SQLiteCheckViolation(t *testing.T) {
	db := openNodeDB(t)

	_, err := db.Exec(`INSERT INTO nodes (id, parent_id, name, depth) VALUES ('n1', 'root', 'news', -1)`)
	if err == nil {
		t.Fatal("expected a check constraint error, got nil")
	}

	got := Wrap(err, "add node with bad depth")
	if !fault.IsConstraintViolation(got) {
		t.Errorf("expected constraint_violation, got %s (%v)", fault.KindOf(got), got)
	}
}

func TestWrap_SQLiteNoRows(t *testing.T) {
	db := openNodeDB(t)

	var id string
	err := db.QueryRow(`SELECT id FROM nodes WHERE name = 'absent'`).Scan(&id)
	if err == nil {
		t.Fatal("expected sql.ErrNoRows, got nil")
	}

	got := Wrap(err, "load node /absent")
	if !fault.IsItemNotFound(got) {
		t.Errorf("expected item_not_found, got %s (%v)", fault.KindOf(got), got)
	}
}

func TestWrap_SQLiteLockedMessageFallback(t *testing.T) {
	// Lock contention needs a second writer, so the locked case is covered
	// through the stringified form the driver produces.
	err := errors.New("database is locked (5) (SQLITE_BUSY)")

	got := Wrap(err, "save node")
	if !fault.IsLockConflict(got) {
		t.Errorf("expected lock_conflict, got %s", fault.KindOf(got))
	}
	if !fault.Transient(got) {
		t.Error("expected lock contention to be transient")
	}
}

func TestWrap_SQLiteUniqueMessageFallback(t *testing.T) {
	err := errors.New("UNIQUE constraint failed: nodes.parent_id, nodes.name")

	got := Wrap(err, "add node")
	if !fault.IsItemExists(got) {
		t.Errorf("expected item_exists, got %s", fault.KindOf(got))
	}
}

func TestKindForSQLiteCode(t *testing.T) {
	tests := []struct {
		name string
		code int
		want fault.Kind
	}{
		{"unique extended", sqliteConstraint | constraintUnique<<8, fault.KindItemExists},
		{"primary key extended", sqliteConstraint | constraintPrimaryKey<<8, fault.KindItemExists},
		{"foreign key extended", sqliteConstraint | constraintForeignKey<<8, fault.KindReferentialIntegrity},
		{"trigger extended", sqliteConstraint | constraintTrigger<<8, fault.KindReferentialIntegrity},
		{"check extended", sqliteConstraint | constraintCheck<<8, fault.KindConstraintViolation},
		{"not null extended", sqliteConstraint | constraintNotNull<<8, fault.KindConstraintViolation},
		{"datatype extended", sqliteConstraint | constraintDataType<<8, fault.KindValueFormat},
		{"busy", sqliteBusy, fault.KindLockConflict},
		{"locked", sqliteLocked, fault.KindLockConflict},
		{"readonly", sqliteReadOnly, fault.KindAccessDenied},
		{"auth", sqliteAuth, fault.KindAccessDenied},
		{"ioerr", sqliteIOErr, fault.KindUnavailable},
		{"cantopen", sqliteCantOpen, fault.KindUnavailable},
		{"full", sqliteFull, fault.KindUnavailable},
		{"mismatch", sqliteMismatch, fault.KindValueFormat},
		{"generic error", 1, fault.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := kindForSQLiteCode(tt.code); got != tt.want {
				t.Errorf("kindForSQLiteCode(%d) = %s, want %s", tt.code, got, tt.want)
			}
		})
	}
}
