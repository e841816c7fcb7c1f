// Package inventory collects the two sides of a reconciliation: the files of
// a local folder and the items of a remote photoset.
package inventory

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"github.com/yuya-takeyama/photoset-sync/pkg/logger"
	"go.uber.org/zap"
)

// LocalItem is a file in the synced folder.
type LocalItem struct {
	Key  string
	Path string
}

// Duplicate records a file dropped because an earlier file produced the
// same key.
type Duplicate struct {
	Key     string
	Kept    string
	Dropped string
}

// Local enumerates a folder without descending into subdirectories.
type Local struct {
	fs            afero.Fs
	excludes      []string
	caseSensitive bool
	logger        *logger.SyncLogger
}

// NewLocal creates a folder enumerator. Exclude patterns are doublestar
// globs matched against the file name.
func NewLocal(fs afero.Fs, excludes []string, caseSensitive bool, log *logger.SyncLogger) (*Local, error) {
	for _, pattern := range excludes {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	return &Local{
		fs:            fs,
		excludes:      excludes,
		caseSensitive: caseSensitive,
		logger:        log,
	}, nil
}

// KeyFor returns the matching key of a file name: everything before the
// first dot, lowercased unless caseSensitive is set.
func KeyFor(name string, caseSensitive bool) string {
	base := name
	if i := strings.IndexByte(name, '.'); i >= 0 {
		base = name[:i]
	}
	if caseSensitive {
		return base
	}
	return strings.ToLower(base)
}

// Collect returns the regular files of folder keyed by KeyFor. When two
// files share a key the lexically first one is kept and the other is
// reported as a Duplicate.
func (l *Local) Collect(folder string) (map[string]LocalItem, []Duplicate, error) {
	entries, err := afero.ReadDir(l.fs, folder)
	if err != nil {
		return nil, nil, fmt.Errorf("read folder: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	items := make(map[string]LocalItem)
	var duplicates []Duplicate

	for _, entry := range entries {
		name := entry.Name()
		if !entry.Mode().IsRegular() || strings.HasPrefix(name, ".") {
			continue
		}
		if l.isExcluded(name) {
			l.logger.Skip(name, "excluded")
			continue
		}

		path := filepath.Join(folder, name)
		key := KeyFor(name, l.caseSensitive)
		if kept, exists := items[key]; exists {
			l.logger.Error("collect", path, fmt.Errorf("duplicate basename %q, keeping %s", key, kept.Path))
			duplicates = append(duplicates, Duplicate{Key: key, Kept: kept.Path, Dropped: path})
			continue
		}
		items[key] = LocalItem{Key: key, Path: path}
	}

	l.logger.Info("collected local files", zap.String("folder", folder), zap.Int("items", len(items)), zap.Int("duplicates", len(duplicates)))
	return items, duplicates, nil
}

func (l *Local) isExcluded(name string) bool {
	for _, pattern := range l.excludes {
		if matched, _ := doublestar.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
