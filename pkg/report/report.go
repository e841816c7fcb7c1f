// Package report renders the outcome of a run: a one-line summary and an
// optional JSON result file.
package report

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"
	"github.com/yuya-takeyama/photoset-sync/pkg/engine"
	"github.com/yuya-takeyama/photoset-sync/pkg/executor"
)

// SyncResult is the JSON document written by --result-json-file.
type SyncResult struct {
	Set       SetInfo    `json:"set"`
	DryRun    bool       `json:"dry_run"`
	Decisions []Decision `json:"decisions"`
	Errors    []Error    `json:"errors"`
	Summary   Summary    `json:"summary"`
}

type SetInfo struct {
	Name string `json:"name"`
	ID   string `json:"id,omitempty"`
}

type Decision struct {
	Action  string `json:"action"` // "upload", "create-set", "add-to-set", "delete", "download", "rename", "reorder", "skip"
	Target  string `json:"target"`
	ItemID  string `json:"item_id,omitempty"`
	Detail  string `json:"detail,omitempty"`
	Outcome string `json:"outcome"` // "done", "planned", "failed"
}

type Error struct {
	Action string `json:"action"`
	Target string `json:"target"`
	Error  string `json:"error"`
}

type Summary struct {
	LocalItems  int `json:"local_items"`
	Uploaded    int `json:"uploaded"`
	Deleted     int `json:"deleted"`
	Downloaded  int `json:"downloaded"`
	Renamed     int `json:"renamed"`
	Failed      int `json:"failed"`
	Duplicates  int `json:"duplicates"`
	RemoteItems int `json:"remote_items"`
}

func NewSummary(result *engine.Result) Summary {
	return Summary{
		LocalItems:  result.LocalItems,
		Uploaded:    result.Uploaded,
		Deleted:     result.Deleted,
		Downloaded:  result.Downloaded,
		Renamed:     result.Renamed,
		Failed:      result.Failed,
		Duplicates:  len(result.Duplicates),
		RemoteItems: result.RemoteItems,
	}
}

// Line is the summary printed at the end of every run.
func (s Summary) Line() string {
	return fmt.Sprintf("photoset-sync finished: items in folder=%d, uploaded=%d, deleted=%d, downloaded=%d, items in set=%d",
		s.LocalItems, s.Uploaded, s.Deleted, s.Downloaded, s.RemoteItems)
}

func NewSyncResult(result *engine.Result, dryRun bool) SyncResult {
	out := SyncResult{
		Set:       SetInfo{Name: result.SetName, ID: result.SetID},
		DryRun:    dryRun,
		Decisions: []Decision{},
		Errors:    []Error{},
		Summary:   NewSummary(result),
	}

	for _, r := range result.Decisions {
		out.Decisions = append(out.Decisions, Decision{
			Action:  string(r.Decision.Action),
			Target:  r.Decision.Target,
			ItemID:  r.Decision.ItemID,
			Detail:  r.Decision.Detail,
			Outcome: string(r.Outcome),
		})
		if r.Outcome == executor.OutcomeFailed && r.Error != nil {
			out.Errors = append(out.Errors, Error{
				Action: string(r.Decision.Action),
				Target: r.Decision.Target,
				Error:  r.Error.Error(),
			})
		}
	}
	return out
}

func WriteSyncResult(fs afero.Fs, path string, result SyncResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}
