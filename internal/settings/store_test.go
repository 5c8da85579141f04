package settings

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	st, err := Open(path)
	if err != nil {
		t.Fatalf("Open(%q): %v", path, err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestStoreFirstRunUsesDefaults(t *testing.T) {
	st := openTestStore(t, filepath.Join(t.TempDir(), "settings.sqlite"))

	if got := st.Snapshot(); got != Defaults() {
		t.Errorf("first-run snapshot = %+v, want defaults", got)
	}
	if st.Version() != 0 {
		t.Errorf("first-run version = %d, want 0", st.Version())
	}
}

func TestStoreSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.sqlite")
	st := openTestStore(t, path)

	s := Defaults()
	s.LEDsEnabled = true
	s.WakeTime = "06:30"
	s.Brightness = 55
	s.StayColor = RGB{10, 20, 30}
	if err := st.Save(s); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := st.Snapshot(); got != s {
		t.Errorf("snapshot after save = %+v, want %+v", got, s)
	}
	if st.Version() != 1 {
		t.Errorf("version after save = %d, want 1", st.Version())
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := openTestStore(t, path)
	if got := reopened.Snapshot(); got != s {
		t.Errorf("reloaded snapshot = %+v, want %+v", got, s)
	}
	if reopened.Version() != 1 {
		t.Errorf("reloaded version = %d, want 1", reopened.Version())
	}
}

func TestStoreSaveNormalizes(t *testing.T) {
	st := openTestStore(t, filepath.Join(t.TempDir(), "settings.sqlite"))

	s := Defaults()
	s.Brightness = 9000
	s.Timezone = "BOGUS"
	if err := st.Save(s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := st.Snapshot()
	if got.Brightness != 100 {
		t.Errorf("Brightness = %d, want clamped 100", got.Brightness)
	}
	if got.Timezone != "UTC" {
		t.Errorf("Timezone = %q, want UTC", got.Timezone)
	}
}

func TestStoreReset(t *testing.T) {
	st := openTestStore(t, filepath.Join(t.TempDir(), "settings.sqlite"))

	s := Defaults()
	s.LEDsEnabled = true
	if err := st.Save(s); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := st.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if got := st.Snapshot(); got != Defaults() {
		t.Errorf("snapshot after reset = %+v, want defaults", got)
	}
	if st.Version() != 2 {
		t.Errorf("version after reset = %d, want 2", st.Version())
	}
}
