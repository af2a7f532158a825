package checkpoint

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir(), zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return s
}

func TestStartSessionCreatesSnapshot(t *testing.T) {
	s := newTestStore(t)

	path, err := s.StartSession("bug_hunt_session")
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("snapshot file not written: %v", err)
	}

	sess, err := s.LoadLatest("bug_hunt_session")
	if err != nil {
		t.Fatalf("LoadLatest failed: %v", err)
	}
	if sess == nil {
		t.Fatal("LoadLatest returned nil for freshly started session")
	}
	if sess.SessionName != "bug_hunt_session" {
		t.Errorf("SessionName = %q, want bug_hunt_session", sess.SessionName)
	}
	if len(sess.PluginsAnalyzed) != 0 || len(sess.Errors) != 0 {
		t.Errorf("new session not empty: %d plugins, %d errors", len(sess.PluginsAnalyzed), len(sess.Errors))
	}
}

func TestSaveProgressAppendsInOrder(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.StartSession("ordered"); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	plugins := []string{"plugin-a", "plugin-b", "plugin-c"}
	for _, p := range plugins {
		s.SaveProgress(p, map[string]any{"errors_found": 1})
	}

	sess, err := s.LoadLatest("ordered")
	if err != nil {
		t.Fatalf("LoadLatest failed: %v", err)
	}
	if sess == nil {
		t.Fatal("LoadLatest returned nil")
	}
	if len(sess.PluginsAnalyzed) != len(plugins) {
		t.Fatalf("PluginsAnalyzed has %d entries, want %d", len(sess.PluginsAnalyzed), len(plugins))
	}
	for i, p := range plugins {
		if sess.PluginsAnalyzed[i].PluginName != p {
			t.Errorf("PluginsAnalyzed[%d] = %q, want %q", i, sess.PluginsAnalyzed[i].PluginName, p)
		}
	}
	if sess.Sequence != len(plugins) {
		t.Errorf("Sequence = %d, want %d", sess.Sequence, len(plugins))
	}
}

func TestAddErrorWithoutSessionWritesNothing(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	s.AddError("pluginX", "boom")

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty checkpoints dir, found %d entries", len(entries))
	}
}

func TestAddErrorAppendsRecord(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.StartSession("errs"); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	s.AddError("plugin-broken", "failed to parse file.ts")

	sess, _ := s.LoadLatest("errs")
	if sess == nil {
		t.Fatal("LoadLatest returned nil")
	}
	if len(sess.Errors) != 1 {
		t.Fatalf("Errors has %d entries, want 1", len(sess.Errors))
	}
	if sess.Errors[0].PluginName != "plugin-broken" || sess.Errors[0].Error != "failed to parse file.ts" {
		t.Errorf("unexpected error record: %+v", sess.Errors[0])
	}
}

func TestLoadLatestAbsentSession(t *testing.T) {
	s := newTestStore(t)
	sess, err := s.LoadLatest("never-started")
	if err != nil {
		t.Fatalf("LoadLatest failed: %v", err)
	}
	if sess != nil {
		t.Errorf("expected nil session, got %+v", sess)
	}
}

func TestLoadLatestPrefersNewestSession(t *testing.T) {
	s := newTestStore(t)

	// Two snapshots for the same session name, written at distinct
	// timestamps so the filenames differ.
	if _, err := s.StartSession("dup"); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	s.SaveProgress("plugin-one", nil)

	s.now = func() time.Time { return time.Now().Add(2 * time.Second) }
	if _, err := s.StartSession("dup"); err != nil {
		t.Fatalf("second StartSession failed: %v", err)
	}
	s.SaveProgress("plugin-two", nil)
	s.SaveProgress("plugin-three", nil)

	sess, _ := s.LoadLatest("dup")
	if sess == nil {
		t.Fatal("LoadLatest returned nil")
	}
	if sess.Sequence != 2 {
		t.Errorf("Sequence = %d, want 2", sess.Sequence)
	}
	if len(sess.PluginsAnalyzed) != 2 {
		t.Fatalf("PluginsAnalyzed has %d entries, want 2", len(sess.PluginsAnalyzed))
	}
	if sess.PluginsAnalyzed[0].PluginName != "plugin-two" {
		t.Errorf("PluginsAnalyzed[0] = %q, want plugin-two", sess.PluginsAnalyzed[0].PluginName)
	}
}

func TestLoadLatestSkipsCorruptSnapshot(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if _, err := s.StartSession("good"); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "good_99999999_999999.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("writing corrupt snapshot: %v", err)
	}

	sess, err := s.LoadLatest("good")
	if err != nil {
		t.Fatalf("LoadLatest failed: %v", err)
	}
	if sess == nil {
		t.Fatal("corrupt sibling snapshot should not hide the valid one")
	}
	if sess.SessionName != "good" {
		t.Errorf("SessionName = %q, want good", sess.SessionName)
	}
}
