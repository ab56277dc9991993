package migration

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoad_OrdersAndSkipsUnrelatedFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"V2__second.sql": {Data: []byte("SELECT 2;")},
		"V1__first.sql":  {Data: []byte("SELECT 1;")},
		"README.md":      {Data: []byte("docs")},
		"embed.go":       {Data: []byte("package migrations")},
	}

	migs, err := Load(fsys)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migs))
	}
	if migs[0].Version != 1 || migs[1].Version != 2 {
		t.Fatalf("unexpected order: %d, %d", migs[0].Version, migs[1].Version)
	}
	if migs[0].Name != "first" || migs[0].Checksum == "" {
		t.Fatalf("unexpected migration %+v", migs[0])
	}
}

func TestLoad_DuplicateVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"V1__a.sql": {Data: []byte("SELECT 1;")},
		"V1__b.sql": {Data: []byte("SELECT 1;")},
	}
	_, err := Load(fsys)
	if err == nil || !strings.Contains(err.Error(), "duplicate migration version") {
		t.Fatalf("expected duplicate version error, got %v", err)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	fsys := fstest.MapFS{
		"V1__empty.sql": {Data: []byte("   ")},
	}
	if _, err := Load(fsys); err == nil {
		t.Fatalf("expected error for empty migration")
	}
}
