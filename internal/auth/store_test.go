package auth

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultStorePathXDG(t *testing.T) {
	temp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", temp)

	path, err := DefaultStorePath()
	if err != nil {
		t.Fatalf("DefaultStorePath() error: %v", err)
	}

	expected := filepath.Join(temp, "fogbugz", "auth.json")
	if path != expected {
		t.Fatalf("expected %s, got %s", expected, path)
	}
}

func TestStoreSaveLoadDelete(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "auth.json")
	store := NewStore(path)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	saved := File{
		BaseURL:  "https://fb.example.com/",
		Email:    "user@example.com",
		Password: "secret",
	}
	if err := store.Save(saved, now); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	data, ok, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !ok {
		t.Fatalf("expected ok true")
	}
	if data.BaseURL != saved.BaseURL || data.Email != saved.Email || data.Password != saved.Password {
		t.Fatalf("expected credentials saved, got %+v", data)
	}
	if !data.SavedAt.Equal(now) {
		t.Fatalf("expected saved_at %v, got %v", now, data.SavedAt)
	}

	if deleteErr := store.Delete(); deleteErr != nil {
		t.Fatalf("Delete() error: %v", deleteErr)
	}
	_, ok, err = store.Load()
	if err != nil {
		t.Fatalf("Load() after delete error: %v", err)
	}
	if ok {
		t.Fatalf("expected no auth after delete")
	}
}

func TestStoreSaveRejectsEmptyBaseURL(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "auth.json"))
	if err := store.Save(File{Email: "user@example.com"}, time.Now()); err == nil {
		t.Fatalf("expected error for empty base URL")
	}
}

func TestStoreFilePermissions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "auth.json")
	store := NewStore(path)

	if err := store.Save(File{BaseURL: "https://fb.example.com/"}, time.Now()); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected permissions 0600, got %v", info.Mode().Perm())
	}
}
