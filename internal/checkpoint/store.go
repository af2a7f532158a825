package checkpoint

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Store persists session snapshots as one JSON file per session start under
// a checkpoints directory. Snapshots are rewritten in full on every mutation;
// the latest snapshot is chosen by the start timestamp and sequence number
// stored inside the record. A single writer process is assumed; concurrent
// runs against the same session name can race.
type Store struct {
	dir string
	log *zap.SugaredLogger
	now func() time.Time
}

// NewStore creates the checkpoints directory if needed. Failure here aborts
// the run; everything else in the Store degrades to a logged no-op.
func NewStore(dir string, log *zap.SugaredLogger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating checkpoints directory: %w", err)
	}
	log.Debugf("checkpoint store initialized at %s", dir)
	return &Store{dir: dir, log: log, now: time.Now}, nil
}

// StartSession writes a fresh snapshot file tagged with the session name and
// start timestamp. The same name may map to many snapshots over time; no
// collision check is performed.
func (s *Store) StartSession(name string) (string, error) {
	now := s.now()
	path := filepath.Join(s.dir, fmt.Sprintf("%s_%s.json", name, now.Format("20060102_150405")))

	sess := &Session{
		SessionName:     name,
		StartedAt:       now,
		LastUpdated:     now,
		PluginsAnalyzed: []PluginResult{},
		Errors:          []ErrorRecord{},
	}

	s.log.Infof("starting new session: %s", name)
	s.log.Infof("checkpoint file: %s", path)

	if err := writeSnapshot(path, sess); err != nil {
		return "", err
	}
	return path, nil
}

// SaveProgress appends one plugin's result to the latest snapshot and
// rewrites it. Without an active session this logs and returns.
func (s *Store) SaveProgress(pluginName string, results map[string]any) {
	path, sess := s.latestSnapshot("")
	if sess == nil {
		s.log.Error("no active session found")
		return
	}

	sess.PluginsAnalyzed = append(sess.PluginsAnalyzed, PluginResult{
		PluginName: pluginName,
		AnalyzedAt: s.now(),
		Results:    results,
	})
	sess.LastUpdated = s.now()
	sess.Sequence++

	if err := writeSnapshot(path, sess); err != nil {
		s.log.Errorf("saving progress for %s: %v", pluginName, err)
		return
	}
	s.log.Infof("saved progress for plugin: %s", pluginName)
}

// AddError appends an error record to the latest snapshot and rewrites it.
// Without an active session this logs and returns.
func (s *Store) AddError(pluginName, message string) {
	path, sess := s.latestSnapshot("")
	if sess == nil {
		s.log.Error("no active session found")
		return
	}

	sess.Errors = append(sess.Errors, ErrorRecord{
		PluginName: pluginName,
		Error:      message,
		Timestamp:  s.now(),
	})
	sess.LastUpdated = s.now()
	sess.Sequence++

	if err := writeSnapshot(path, sess); err != nil {
		s.log.Errorf("recording error for %s: %v", pluginName, err)
		return
	}
	s.log.Errorf("added error for plugin %s: %s", pluginName, message)
}

// LoadLatest returns the most recent snapshot whose filename contains name,
// or nil when none exists. Corrupt snapshots are skipped, never fatal.
func (s *Store) LoadLatest(name string) (*Session, error) {
	_, sess := s.latestSnapshot(name)
	return sess, nil
}

// ListSnapshots loads every readable snapshot in the store, oldest first.
func (s *Store) ListSnapshots() []*Session {
	paths, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return nil
	}
	var sessions []*Session
	for _, p := range paths {
		sess, err := readSnapshot(p)
		if err != nil {
			s.log.Warnf("skipping unreadable checkpoint %s: %v", filepath.Base(p), err)
			continue
		}
		sessions = append(sessions, sess)
	}
	return sessions
}

// latestSnapshot picks the snapshot with the highest sequence among files
// whose name contains the filter, falling back to modification time when
// sequences tie. Malformed files are logged and skipped.
func (s *Store) latestSnapshot(nameFilter string) (string, *Session) {
	paths, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil || len(paths) == 0 {
		return "", nil
	}

	var (
		bestPath string
		best     *Session
		bestMod  time.Time
	)
	for _, p := range paths {
		if nameFilter != "" && !strings.Contains(strings.TrimSuffix(filepath.Base(p), ".json"), nameFilter) {
			continue
		}
		sess, err := readSnapshot(p)
		if err != nil {
			s.log.Warnf("skipping unreadable checkpoint %s: %v", filepath.Base(p), err)
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		if best == nil || newer(sess, info.ModTime(), best, bestMod) {
			bestPath, best, bestMod = p, sess, info.ModTime()
		}
	}
	return bestPath, best
}

// newer orders snapshots by session start, then sequence, then file
// modification time. Start and sequence live inside the record, so snapshot
// selection does not depend on filesystem timestamp resolution.
func newer(a *Session, aMod time.Time, b *Session, bMod time.Time) bool {
	if !a.StartedAt.Equal(b.StartedAt) {
		return a.StartedAt.After(b.StartedAt)
	}
	if a.Sequence != b.Sequence {
		return a.Sequence > b.Sequence
	}
	return aMod.After(bMod)
}

func readSnapshot(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading checkpoint: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("parsing checkpoint JSON: %w", err)
	}
	return &sess, nil
}

func writeSnapshot(path string, sess *Session) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling checkpoint: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing checkpoint: %w", err)
	}
	return nil
}
