// Package engine reconciles a local folder with the remote photoset of the
// same name.
package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"github.com/yuya-takeyama/photoset-sync/pkg/executor"
	"github.com/yuya-takeyama/photoset-sync/pkg/inventory"
	"github.com/yuya-takeyama/photoset-sync/pkg/logger"
	"github.com/yuya-takeyama/photoset-sync/pkg/photoset"
	"github.com/yuya-takeyama/photoset-sync/pkg/planner"
	"github.com/yuya-takeyama/photoset-sync/pkg/titles"
	"go.uber.org/zap"
)

// Options is the policy of a single run.
type Options struct {
	DryRun               bool
	Remove               bool
	DownloadMissing      bool
	SortByTitle          bool
	SetTitlesByDateTaken bool
	CaseSensitive        bool

	// Excludes are doublestar patterns of local file names to ignore.
	Excludes []string
	// Keep are doublestar patterns of remote titles never deleted or
	// downloaded.
	Keep []string
}

// Result holds the counters of a run and the journal of its decisions.
type Result struct {
	SetName     string
	SetID       string
	LocalItems  int
	Uploaded    int
	Deleted     int
	Downloaded  int
	Renamed     int
	Failed      int
	RemoteItems int
	Duplicates  []inventory.Duplicate
	Decisions   []executor.Result
}

type Engine struct {
	client  photoset.Client
	fs      afero.Fs
	fetcher executor.Fetcher
	logger  *logger.SyncLogger
	opts    Options
}

func New(client photoset.Client, fs afero.Fs, fetcher executor.Fetcher, log *logger.SyncLogger, opts Options) (*Engine, error) {
	for _, pattern := range opts.Keep {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid keep pattern %q", pattern)
		}
	}
	return &Engine{
		client:  client,
		fs:      fs,
		fetcher: fetcher,
		logger:  log,
		opts:    opts,
	}, nil
}

// run is the state owned by one Run call: the handle of the set and the
// mirror of its items, updated as actions succeed.
type run struct {
	*Engine
	exec   *executor.Executor
	folder string
	handle *photoset.Handle
	local  map[string]inventory.LocalItem
	mirror map[string]*photoset.Item
	result *Result
}

// Run reconciles folder with the set named after its base directory. An
// error is returned only when an inventory cannot be collected or ctx is
// cancelled; per-item failures are journalled in the Result.
func (e *Engine) Run(ctx context.Context, folder string) (*Result, error) {
	name := filepath.Base(filepath.Clean(folder))
	result := &Result{SetName: name}

	local, err := inventory.NewLocal(e.fs, e.opts.Excludes, e.opts.CaseSensitive, e.logger)
	if err != nil {
		return nil, err
	}
	items, duplicates, err := local.Collect(folder)
	if err != nil {
		return nil, fmt.Errorf("collect local items: %w", err)
	}
	result.LocalItems = len(items)
	result.Duplicates = duplicates

	remote := inventory.NewRemote(e.client, e.logger)
	setID, _, err := remote.FindSet(ctx, name)
	if err != nil {
		return nil, err
	}
	mirror, err := remote.ListItems(ctx, setID)
	if err != nil {
		return nil, err
	}
	e.logger.Info("collected remote items", zap.String("set", name), zap.Int("items", len(mirror)))

	r := &run{
		Engine: e,
		exec:   executor.NewExecutor(e.client, e.fetcher, e.logger, e.opts.DryRun),
		folder: folder,
		handle: &photoset.Handle{ID: setID, Name: name},
		local:  items,
		mirror: mirror,
		result: result,
	}

	err = r.execute(ctx)
	r.finish()
	return result, err
}

func (r *run) execute(ctx context.Context) error {
	if r.opts.SetTitlesByDateTaken {
		if err := r.normalize(ctx); err != nil {
			return err
		}
	}
	if err := r.upload(ctx); err != nil {
		return err
	}
	if err := r.prune(ctx); err != nil {
		return err
	}
	if r.opts.SortByTitle {
		r.sort(ctx)
	}
	return nil
}

func (r *run) finish() {
	r.result.SetID = r.handle.ID
	r.result.RemoteItems = len(r.mirror)
	r.result.Decisions = r.exec.Results()
	for _, d := range r.result.Decisions {
		if d.Outcome == executor.OutcomeFailed {
			r.result.Failed++
		}
	}
}

// titleTaken reports whether an item other than id carries title.
func (r *run) titleTaken(id string) func(string) bool {
	return func(title string) bool {
		for otherID, item := range r.mirror {
			if otherID != id && item.Title == title {
				return true
			}
		}
		return false
	}
}

// normalize renames items to the canonical form of their capture date.
// Titles change in the mirror as soon as the rename succeeds, so later
// collision checks see them.
func (r *run) normalize(ctx context.Context) error {
	for _, id := range planner.SortedIDs(r.mirror) {
		if err := ctx.Err(); err != nil {
			return err
		}
		item := r.mirror[id]
		title, ok := titles.Rename(item.Title, item.CaptureDate, r.titleTaken(id))
		if !ok {
			continue
		}
		switch r.exec.Rename(ctx, item, title) {
		case executor.OutcomeDone:
			item.Title = title
			r.result.Renamed++
		case executor.OutcomePlanned:
			r.result.Renamed++
		}
	}
	return nil
}

func (r *run) upload(ctx context.Context) error {
	for _, item := range planner.Additions(r.local, r.mirror, r.opts.CaseSensitive) {
		if err := ctx.Err(); err != nil {
			return err
		}
		id, outcome := r.exec.Upload(ctx, item)
		if !outcome.Succeeded() {
			continue
		}
		r.result.Uploaded++
		// A planned attach leaves the mirror untouched.
		if r.exec.AttachToSet(ctx, r.handle, id) == executor.OutcomeDone {
			r.mirror[id] = &photoset.Item{ID: id, Title: item.Key}
		}
	}
	return nil
}

// prune handles remote items without a local file. Removals are collected
// during the scan and applied to the mirror afterwards.
func (r *run) prune(ctx context.Context) error {
	orphans, err := planner.Orphans(r.local, r.mirror, r.opts.CaseSensitive, r.opts.Keep)
	if err != nil {
		return err
	}

	var removed []string
	defer func() {
		for _, id := range removed {
			delete(r.mirror, id)
		}
	}()

	for _, item := range orphans {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch {
		case r.opts.Remove:
			if r.exec.Delete(ctx, item).Succeeded() {
				removed = append(removed, item.ID)
				r.result.Deleted++
			}
		case r.opts.DownloadMissing:
			if !safeFileName(item.Title) {
				r.exec.Skip(item, "title is not a plain file name")
				continue
			}
			src, ok := r.exec.ResolveSource(ctx, item)
			if !ok {
				continue
			}
			dest, ok := r.downloadPath(item.Title, src.Ext)
			if !ok {
				r.exec.Skip(item, "download path is outside the folder")
				continue
			}
			if exists, err := afero.Exists(r.fs, dest); err != nil || exists {
				r.exec.Skip(item, "local file already exists: "+filepath.Base(dest))
				continue
			}
			if r.exec.Download(ctx, item, src, dest).Succeeded() {
				r.result.Downloaded++
			}
		default:
			r.exec.Skip(item, "neither --remove nor --download-missing is set")
		}
	}
	return nil
}

// safeFileName reports whether title can name a file directly inside the
// folder.
func safeFileName(title string) bool {
	if title == "" || title == "." || title == ".." {
		return false
	}
	return !strings.ContainsRune(title, '/') && !strings.ContainsRune(title, filepath.Separator)
}

func (r *run) downloadPath(title, ext string) (string, bool) {
	dest := filepath.Join(r.folder, title+"."+ext)
	rel, err := filepath.Rel(r.folder, dest)
	if err != nil || rel != filepath.Base(dest) {
		return "", false
	}
	return dest, true
}

func (r *run) sort(ctx context.Context) {
	if !r.handle.Exists() {
		r.logger.Warn("photoset does not exist, skipping sort", zap.String("name", r.handle.Name))
		return
	}
	r.exec.Reorder(ctx, r.handle.ID, planner.OrderByTitle(r.mirror))
}
