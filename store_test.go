package folio

import (
	"errors"
	"path/filepath"
	"testing"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "folio.db")

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	cleanup := func() {
		s.Close()
	}

	return s, cleanup
}

func TestNewStore(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	if s == nil {
		t.Fatal("store should not be nil")
	}
	if s.db == nil {
		t.Fatal("db should not be nil")
	}
}

func TestSaveAndGetPlaceholder(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	if err := s.SavePlaceholder("abc", "AAAA"); err != nil {
		t.Fatalf("SavePlaceholder failed: %v", err)
	}
	got, err := s.GetPlaceholder("abc")
	if err != nil {
		t.Fatalf("GetPlaceholder failed: %v", err)
	}
	if got != "AAAA" {
		t.Errorf("placeholder = %q, want %q", got, "AAAA")
	}
}

func TestSavePlaceholderUpdate(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	if err := s.SavePlaceholder("abc", "old"); err != nil {
		t.Fatal(err)
	}
	if err := s.SavePlaceholder("abc", "new"); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetPlaceholder("abc")
	if err != nil {
		t.Fatal(err)
	}
	if got != "new" {
		t.Errorf("placeholder = %q, want new", got)
	}
	n, err := s.CountPlaceholders()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}

func TestGetPlaceholderNotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := s.GetPlaceholder("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSettings(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	v, err := s.GetSetting("quote_of_the_day")
	if err != nil {
		t.Fatalf("GetSetting failed: %v", err)
	}
	if v != "" {
		t.Errorf("unset setting = %q, want empty", v)
	}

	if err := s.SetSetting("quote_of_the_day", "3/2024-03-10"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}
	if err := s.SetSetting("quote_of_the_day", "4/2024-03-11"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}
	v, err = s.GetSetting("quote_of_the_day")
	if err != nil {
		t.Fatal(err)
	}
	if v != "4/2024-03-11" {
		t.Errorf("setting = %q", v)
	}
}

func TestStoreAsPlaceholderCache(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	assets := t.TempDir()
	writePNG(t, filepath.Join(assets, "a.png"), 8, 8)
	first, err := imageBlur(assets, "/a.png", s)
	if err != nil {
		t.Fatalf("imageBlur: %v", err)
	}
	n, err := s.CountPlaceholders()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("count = %d, want 1", n)
	}
	second, err := imageBlur(assets, "/a.png", s)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("cached placeholder differs")
	}
}
