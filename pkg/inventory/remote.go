package inventory

import (
	"context"
	"fmt"

	"github.com/yuya-takeyama/photoset-sync/pkg/logger"
	"github.com/yuya-takeyama/photoset-sync/pkg/photoset"
	"go.uber.org/zap"
)

// Remote reads the current state of a photoset.
type Remote struct {
	client photoset.Client
	logger *logger.SyncLogger
}

func NewRemote(client photoset.Client, log *logger.SyncLogger) *Remote {
	return &Remote{client: client, logger: log}
}

// FindSet looks a set up by title with a single listing call.
func (r *Remote) FindSet(ctx context.Context, name string) (string, bool, error) {
	sets, err := r.client.ListSets(ctx)
	if err != nil {
		return "", false, fmt.Errorf("list sets: %w", err)
	}

	for _, s := range sets {
		if s.Title == name {
			r.logger.Info("photoset already exists", zap.String("name", name), zap.String("id", s.ID))
			return s.ID, true, nil
		}
	}
	return "", false, nil
}

// ListItems returns every item of the set keyed by id. An empty setID
// yields an empty map without calling the client.
func (r *Remote) ListItems(ctx context.Context, setID string) (map[string]*photoset.Item, error) {
	items := make(map[string]*photoset.Item)
	if setID == "" {
		return items, nil
	}

	listed, err := r.client.ListItems(ctx, setID)
	if err != nil {
		return nil, fmt.Errorf("list items of set %s: %w", setID, err)
	}
	for i := range listed {
		item := listed[i]
		items[item.ID] = &item
	}
	return items, nil
}
