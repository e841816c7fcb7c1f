// Package photoset defines the remote media-hosting contract the sync engine
// talks to: named, ordered sets of items keyed by title.
package photoset

import "context"

//go:generate mockgen -destination=mock_client.go -package=photoset . Client

// Client is the capability set required from a media-hosting service.
// Every failing call returns a *Error.
type Client interface {
	ListSets(ctx context.Context) ([]Set, error)
	ListItems(ctx context.Context, setID string) ([]Item, error)
	CreateSet(ctx context.Context, title, primaryItemID string) (id string, url string, err error)
	AddItemToSet(ctx context.Context, setID, itemID string) error
	UploadItem(ctx context.Context, title, filePath string) (string, error)
	DeleteItem(ctx context.Context, itemID string) error
	UpdateTitleAndDate(ctx context.Context, itemID, title, captureDate string) error
	ReorderSet(ctx context.Context, setID string, itemIDs []string) error
	ListSizes(ctx context.Context, itemID string) ([]Size, error)
}
