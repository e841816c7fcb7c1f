// Package photosettest provides an in-memory photoset.Client for tests.
package photosettest

import (
	"context"
	"fmt"
	"sort"

	"github.com/yuya-takeyama/photoset-sync/pkg/photoset"
)

type set struct {
	title string
	items []string
}

// Fake keeps sets and items in memory. Mutating calls are recorded in Calls
// so tests can assert that nothing was changed.
type Fake struct {
	sets   map[string]*set
	items  map[string]*photoset.Item
	sizes  map[string][]photoset.Size
	nextID int

	// Calls lists the names of the mutating methods invoked, in order.
	Calls []string

	// Fail makes the named method return the given error.
	Fail map[string]error
}

func New() *Fake {
	return &Fake{
		sets:  make(map[string]*set),
		items: make(map[string]*photoset.Item),
		sizes: make(map[string][]photoset.Size),
		Fail:  make(map[string]error),
	}
}

func (f *Fake) newID(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s%d", prefix, f.nextID)
}

// AddSet creates a set holding the given items and returns its id.
func (f *Fake) AddSet(title string, items ...photoset.Item) string {
	id := f.newID("set-")
	s := &set{title: title}
	for i := range items {
		item := items[i]
		if item.ID == "" {
			item.ID = f.newID("item-")
		}
		f.items[item.ID] = &item
		s.items = append(s.items, item.ID)
	}
	f.sets[id] = s
	return id
}

// SetSizes registers the variants ListSizes returns for itemID.
func (f *Fake) SetSizes(itemID string, sizes ...photoset.Size) {
	f.sizes[itemID] = sizes
}

// Titles returns the titles of the items of setID in set order.
func (f *Fake) Titles(setID string) []string {
	s, ok := f.sets[setID]
	if !ok {
		return nil
	}
	titles := make([]string, 0, len(s.items))
	for _, id := range s.items {
		titles = append(titles, f.items[id].Title)
	}
	return titles
}

// SetID returns the id of the set titled title.
func (f *Fake) SetID(title string) (string, bool) {
	for id, s := range f.sets {
		if s.title == title {
			return id, true
		}
	}
	return "", false
}

func (f *Fake) record(op string) error {
	f.Calls = append(f.Calls, op)
	return f.Fail[op]
}

func (f *Fake) ListSets(ctx context.Context) ([]photoset.Set, error) {
	if err := f.Fail["ListSets"]; err != nil {
		return nil, err
	}
	sets := make([]photoset.Set, 0, len(f.sets))
	for id, s := range f.sets {
		sets = append(sets, photoset.Set{ID: id, Title: s.title})
	}
	sort.Slice(sets, func(i, j int) bool { return sets[i].ID < sets[j].ID })
	return sets, nil
}

func (f *Fake) ListItems(ctx context.Context, setID string) ([]photoset.Item, error) {
	if err := f.Fail["ListItems"]; err != nil {
		return nil, err
	}
	s, ok := f.sets[setID]
	if !ok {
		return nil, photoset.NewError("list_items", photoset.KindNotFound, "no such set "+setID)
	}
	items := make([]photoset.Item, 0, len(s.items))
	for _, id := range s.items {
		items = append(items, *f.items[id])
	}
	return items, nil
}

func (f *Fake) CreateSet(ctx context.Context, title, primaryItemID string) (string, string, error) {
	if err := f.record("CreateSet"); err != nil {
		return "", "", err
	}
	if _, ok := f.items[primaryItemID]; !ok {
		return "", "", photoset.NewError("create_set", photoset.KindNotFound, "no such item "+primaryItemID)
	}
	id := f.newID("set-")
	f.sets[id] = &set{title: title, items: []string{primaryItemID}}
	return id, "fake://sets/" + id, nil
}

func (f *Fake) AddItemToSet(ctx context.Context, setID, itemID string) error {
	if err := f.record("AddItemToSet"); err != nil {
		return err
	}
	s, ok := f.sets[setID]
	if !ok {
		return photoset.NewError("add_to_set", photoset.KindNotFound, "no such set "+setID)
	}
	s.items = append(s.items, itemID)
	return nil
}

func (f *Fake) UploadItem(ctx context.Context, title, filePath string) (string, error) {
	if err := f.record("UploadItem"); err != nil {
		return "", err
	}
	id := f.newID("item-")
	f.items[id] = &photoset.Item{ID: id, Title: title}
	return id, nil
}

func (f *Fake) DeleteItem(ctx context.Context, itemID string) error {
	if err := f.record("DeleteItem"); err != nil {
		return err
	}
	if _, ok := f.items[itemID]; !ok {
		return photoset.NewError("delete", photoset.KindNotFound, "no such item "+itemID)
	}
	delete(f.items, itemID)
	for _, s := range f.sets {
		kept := s.items[:0]
		for _, id := range s.items {
			if id != itemID {
				kept = append(kept, id)
			}
		}
		s.items = kept
	}
	return nil
}

func (f *Fake) UpdateTitleAndDate(ctx context.Context, itemID, title, captureDate string) error {
	if err := f.record("UpdateTitleAndDate"); err != nil {
		return err
	}
	item, ok := f.items[itemID]
	if !ok {
		return photoset.NewError("update", photoset.KindNotFound, "no such item "+itemID)
	}
	item.Title = title
	item.CaptureDate = captureDate
	return nil
}

func (f *Fake) ReorderSet(ctx context.Context, setID string, itemIDs []string) error {
	if err := f.record("ReorderSet"); err != nil {
		return err
	}
	s, ok := f.sets[setID]
	if !ok {
		return photoset.NewError("reorder", photoset.KindNotFound, "no such set "+setID)
	}
	if len(itemIDs) != len(s.items) {
		return photoset.NewError("reorder", photoset.KindInvalid, "order must list every item once")
	}
	s.items = append([]string(nil), itemIDs...)
	return nil
}

func (f *Fake) ListSizes(ctx context.Context, itemID string) ([]photoset.Size, error) {
	if err := f.Fail["ListSizes"]; err != nil {
		return nil, err
	}
	return f.sizes[itemID], nil
}

var _ photoset.Client = (*Fake)(nil)
