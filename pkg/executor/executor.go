// Package executor turns engine decisions into remote client and fetcher
// calls. Every mutating call sits behind the dry-run gate.
package executor

import (
	"context"
	"fmt"

	"github.com/yuya-takeyama/photoset-sync/pkg/inventory"
	"github.com/yuya-takeyama/photoset-sync/pkg/logger"
	"github.com/yuya-takeyama/photoset-sync/pkg/photoset"
	"github.com/yuya-takeyama/photoset-sync/pkg/planner"
	"go.uber.org/zap"
)

// Fetcher downloads url into dest.
type Fetcher interface {
	Fetch(ctx context.Context, url, dest string) error
}

type Outcome string

const (
	OutcomeDone    Outcome = "done"
	OutcomePlanned Outcome = "planned"
	OutcomeFailed  Outcome = "failed"
)

// Succeeded reports whether the decision counts as applied, for real or
// hypothetically under dry-run.
func (o Outcome) Succeeded() bool {
	return o == OutcomeDone || o == OutcomePlanned
}

type Result struct {
	Decision planner.Decision
	Outcome  Outcome
	Error    error
}

// Executor runs one call at a time and journals every decision.
type Executor struct {
	client  photoset.Client
	fetcher Fetcher
	logger  *logger.SyncLogger
	dryRun  bool
	results []Result
}

func NewExecutor(client photoset.Client, fetcher Fetcher, log *logger.SyncLogger, dryRun bool) *Executor {
	return &Executor{
		client:  client,
		fetcher: fetcher,
		logger:  log,
		dryRun:  dryRun,
	}
}

// Results returns the journal in the order decisions were taken.
func (e *Executor) Results() []Result {
	out := make([]Result, len(e.results))
	copy(out, e.results)
	return out
}

func (e *Executor) record(d planner.Decision, err error) Outcome {
	outcome := OutcomeDone
	switch {
	case err != nil:
		outcome = OutcomeFailed
		e.logger.Error(string(d.Action), d.Target, err)
	case e.dryRun:
		outcome = OutcomePlanned
	}
	e.results = append(e.results, Result{Decision: d, Outcome: outcome, Error: err})
	return outcome
}

// Skip journals an orphan that no policy handles.
func (e *Executor) Skip(item *photoset.Item, reason string) {
	e.logger.Warn("remote item has no local file", zap.String("title", item.Title), zap.String("reason", reason))
	e.results = append(e.results, Result{
		Decision: planner.Decision{Action: planner.ActionSkip, Target: item.Title, ItemID: item.ID, Detail: reason},
		Outcome:  OutcomeDone,
	})
}

// Upload sends a local file with its key as title. The returned id is empty
// under dry-run.
func (e *Executor) Upload(ctx context.Context, item inventory.LocalItem) (string, Outcome) {
	e.logger.Upload(item.Path, item.Key)
	d := planner.Decision{Action: planner.ActionUpload, Target: item.Path, Detail: item.Key}
	if e.dryRun {
		return "", e.record(d, nil)
	}

	id, err := e.client.UploadItem(ctx, item.Key, item.Path)
	if err != nil {
		return "", e.record(d, fmt.Errorf("failed to upload: %w", err))
	}
	d.ItemID = id
	return id, e.record(d, nil)
}

// AttachToSet puts an uploaded item into the set. When the handle has no id
// yet the set is created with the item as its primary, and the new id is
// stored on the handle. Under dry-run a planned creation marks the handle so
// later items are planned as additions.
func (e *Executor) AttachToSet(ctx context.Context, handle *photoset.Handle, itemID string) Outcome {
	if handle.Exists() || handle.Planned {
		d := planner.Decision{Action: planner.ActionAddToSet, Target: handle.Name, ItemID: itemID, Detail: handle.ID}
		if e.dryRun {
			return e.record(d, nil)
		}
		if err := e.client.AddItemToSet(ctx, handle.ID, itemID); err != nil {
			return e.record(d, fmt.Errorf("failed to add item to set: %w", err))
		}
		return e.record(d, nil)
	}

	d := planner.Decision{Action: planner.ActionCreateSet, Target: handle.Name, ItemID: itemID}
	if e.dryRun {
		e.logger.CreateSet(handle.Name, "", "")
		handle.Planned = true
		return e.record(d, nil)
	}
	id, url, err := e.client.CreateSet(ctx, handle.Name, itemID)
	if err != nil {
		return e.record(d, fmt.Errorf("failed to create set: %w", err))
	}
	handle.ID = id
	d.Detail = url
	e.logger.CreateSet(handle.Name, id, url)
	return e.record(d, nil)
}

func (e *Executor) Delete(ctx context.Context, item *photoset.Item) Outcome {
	e.logger.Delete(item.Title, item.ID)
	d := planner.Decision{Action: planner.ActionDelete, Target: item.Title, ItemID: item.ID}
	if e.dryRun {
		return e.record(d, nil)
	}
	if err := e.client.DeleteItem(ctx, item.ID); err != nil {
		return e.record(d, fmt.Errorf("failed to delete: %w", err))
	}
	return e.record(d, nil)
}

// Rename updates the remote title, resending the capture date unchanged.
func (e *Executor) Rename(ctx context.Context, item *photoset.Item, title string) Outcome {
	e.logger.Rename(item.ID, item.Title, title)
	d := planner.Decision{Action: planner.ActionRename, Target: item.Title, ItemID: item.ID, Detail: title}
	if e.dryRun {
		return e.record(d, nil)
	}
	if err := e.client.UpdateTitleAndDate(ctx, item.ID, title, item.CaptureDate); err != nil {
		return e.record(d, fmt.Errorf("failed to rename: %w", err))
	}
	return e.record(d, nil)
}

// ResolveSource looks up the downloadable variants of item. The lookup is
// read-only and runs under dry-run too. A failed lookup is journalled as a
// failed download, a missing original as a skip.
func (e *Executor) ResolveSource(ctx context.Context, item *photoset.Item) (planner.Source, bool) {
	sizes, err := e.client.ListSizes(ctx, item.ID)
	if err != nil {
		d := planner.Decision{Action: planner.ActionDownload, Target: item.Title, ItemID: item.ID}
		e.record(d, fmt.Errorf("failed to list sizes: %w", err))
		return planner.Source{}, false
	}
	src, ok := planner.SelectSource(sizes)
	if !ok {
		e.Skip(item, "no original size available")
	}
	return src, ok
}

func (e *Executor) Download(ctx context.Context, item *photoset.Item, src planner.Source, dest string) Outcome {
	e.logger.Download(item.Title, dest)
	d := planner.Decision{Action: planner.ActionDownload, Target: item.Title, ItemID: item.ID, Detail: dest}
	if e.dryRun {
		return e.record(d, nil)
	}
	if err := e.fetcher.Fetch(ctx, src.URL, dest); err != nil {
		return e.record(d, fmt.Errorf("failed to download: %w", err))
	}
	return e.record(d, nil)
}

// Reorder sets the item order of the set in a single call.
func (e *Executor) Reorder(ctx context.Context, setID string, itemIDs []string) Outcome {
	e.logger.Reorder(setID, len(itemIDs))
	d := planner.Decision{Action: planner.ActionReorder, Target: setID, Detail: fmt.Sprintf("%d items", len(itemIDs))}
	if e.dryRun {
		return e.record(d, nil)
	}
	if err := e.client.ReorderSet(ctx, setID, itemIDs); err != nil {
		return e.record(d, fmt.Errorf("failed to reorder: %w", err))
	}
	return e.record(d, nil)
}
