// Package backup snapshots the catalog database file and keeps only the
// newest N copies.
package backup

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	snapshotPrefix = "backup_livraria_"
	snapshotExt    = ".db"
	timeLayout     = "2006-01-02_15-04-05"
)

// DefaultMaxKeep is the number of snapshots retained when no limit is
// configured.
const DefaultMaxKeep = 5

// Snapshot describes one retained backup file, newest-first when listed.
type Snapshot struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Name returns the snapshot's filename without its directory.
func (s Snapshot) Name() string {
	return filepath.Base(s.Path)
}

// Manager copies the catalog file into the backup directory under a
// timestamp-derived name and enforces the retention limit after every copy.
// Snapshots are never mutated once written.
type Manager struct {
	dir     string
	maxKeep int
	logger  *slog.Logger
	now     func() time.Time
}

// NewManager creates the backup directory if needed. A maxKeep of zero or
// less falls back to DefaultMaxKeep.
func NewManager(dir string, maxKeep int, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if maxKeep <= 0 {
		maxKeep = DefaultMaxKeep
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("backup: create directory %s: %w", dir, err)
	}
	return &Manager{dir: dir, maxKeep: maxKeep, logger: logger, now: time.Now}, nil
}

// Snapshot copies source byte-for-byte into the backup directory,
// preserving its modification time, then enforces retention. A missing
// source is not a failure: there is nothing to back up yet, and the
// returned path is empty.
func (m *Manager) Snapshot(source string) (string, error) {
	info, err := os.Stat(source)
	if errors.Is(err, os.ErrNotExist) {
		m.logger.Warn("nothing to back up", "source", source)
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("backup: stat source: %w", err)
	}

	dest := m.nextName(m.now())
	if err := copyFile(source, dest, info); err != nil {
		return "", err
	}
	m.logger.Info("backup created", "path", dest)

	if removed, err := m.EnforceRetention(); err != nil {
		m.logger.Warn("retention sweep failed", "error", err)
	} else if removed > 0 {
		m.logger.Info("old backups removed", "count", removed, "kept", m.maxKeep)
	}

	return dest, nil
}

// nextName derives a second-resolution timestamped path, appending an
// ordinal when a snapshot with that timestamp already exists so that
// same-second snapshots stay distinct and keep their creation order.
func (m *Manager) nextName(ts time.Time) string {
	base := snapshotPrefix + ts.Format(timeLayout)
	path := filepath.Join(m.dir, base+snapshotExt)
	for n := 2; ; n++ {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return path
		}
		path = filepath.Join(m.dir, fmt.Sprintf("%s-%d%s", base, n, snapshotExt))
	}
}

// EnforceRetention deletes every snapshot beyond the maxKeep newest and
// returns how many were removed. Individual delete failures are logged and
// skipped; retention is best-effort cleanup and must never fail the
// snapshot that triggered it. A listing failure is reported as an error so
// callers can tell "nothing to remove" from "could not look".
func (m *Manager) EnforceRetention() (int, error) {
	snaps, err := m.ListSnapshots()
	if err != nil {
		return 0, err
	}
	if len(snaps) <= m.maxKeep {
		return 0, nil
	}

	removed := 0
	for _, s := range snaps[m.maxKeep:] {
		if err := os.Remove(s.Path); err != nil {
			m.logger.Warn("failed to remove old backup", "path", s.Path, "error", err)
			continue
		}
		m.logger.Info("old backup removed", "path", s.Path)
		removed++
	}
	return removed, nil
}

// ListSnapshots returns all files matching the snapshot naming convention,
// newest modification time first. Unrelated files in the directory are
// never listed or touched. An unreadable directory is an error, so callers
// can tell an empty directory from a failed listing.
func (m *Manager) ListSnapshots() ([]Snapshot, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("backup: list snapshots: %w", err)
	}

	snaps := make([]Snapshot, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, snapshotPrefix) || !strings.HasSuffix(name, snapshotExt) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("backup: stat snapshot %s: %w", name, err)
		}
		snaps = append(snaps, Snapshot{Path: filepath.Join(m.dir, name), Size: info.Size(), ModTime: info.ModTime()})
	}

	sort.Slice(snaps, func(i, j int) bool {
		if !snaps[i].ModTime.Equal(snaps[j].ModTime) {
			return snaps[i].ModTime.After(snaps[j].ModTime)
		}
		// Equal mtimes: break the tie by name so ordering is deterministic.
		return snaps[i].Path > snaps[j].Path
	})
	return snaps, nil
}

// copyFile copies src to dst and carries over the source's permissions and
// modification time, so the snapshot sorts by the moment the data was
// current rather than the moment it was copied.
func copyFile(src, dst string, info os.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("backup: open source: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return fmt.Errorf("backup: create snapshot: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("backup: copy to snapshot: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return fmt.Errorf("backup: close snapshot: %w", err)
	}

	if err := os.Chtimes(dst, time.Now(), info.ModTime()); err != nil {
		return fmt.Errorf("backup: preserve modification time: %w", err)
	}
	return nil
}
