package planner

import (
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/yuya-takeyama/photoset-sync/pkg/inventory"
	"github.com/yuya-takeyama/photoset-sync/pkg/photoset"
)

// Key returns the value a remote title is matched on against local keys.
func Key(title string, caseSensitive bool) string {
	if caseSensitive {
		return title
	}
	return strings.ToLower(title)
}

// RemoteKeys indexes the remote items by matching key.
func RemoteKeys(remote map[string]*photoset.Item, caseSensitive bool) map[string]struct{} {
	keys := make(map[string]struct{}, len(remote))
	for _, item := range remote {
		keys[Key(item.Title, caseSensitive)] = struct{}{}
	}
	return keys
}

// Additions returns the local items without a remote counterpart, ordered
// by key.
func Additions(local map[string]inventory.LocalItem, remote map[string]*photoset.Item, caseSensitive bool) []inventory.LocalItem {
	remoteKeys := RemoteKeys(remote, caseSensitive)

	items := []inventory.LocalItem{}
	for key, item := range local {
		if _, exists := remoteKeys[key]; !exists {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Key < items[j].Key
	})
	return items
}

// Orphans returns the remote items without a local counterpart, ordered by
// id. Items whose title matches a keep pattern are left out.
func Orphans(local map[string]inventory.LocalItem, remote map[string]*photoset.Item, caseSensitive bool, keep []string) ([]*photoset.Item, error) {
	items := []*photoset.Item{}
	for _, item := range remote {
		if _, exists := local[Key(item.Title, caseSensitive)]; exists {
			continue
		}
		protected, err := IsExcluded(item.Title, keep)
		if err != nil {
			return nil, err
		}
		if protected {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})
	return items, nil
}

// SelectSource picks the download URL from the item's sizes. An original
// video wins outright; otherwise the last original photo is used.
func SelectSource(sizes []photoset.Size) (Source, bool) {
	var src Source
	for _, size := range sizes {
		if size.Media == photoset.MediaVideo && size.Label == photoset.LabelVideoOriginal {
			return Source{URL: size.Source, Ext: "mp4"}, true
		}
		if size.Media == photoset.MediaPhoto && size.Label == photoset.LabelOriginal {
			src = Source{URL: size.Source, Ext: "jpg"}
		}
	}
	return src, src.URL != ""
}

// OrderByTitle returns item ids sorted by title, byte-wise. Equal titles are
// ordered by id.
func OrderByTitle(remote map[string]*photoset.Item) []string {
	items := make([]*photoset.Item, 0, len(remote))
	for _, item := range remote {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Title != items[j].Title {
			return items[i].Title < items[j].Title
		}
		return items[i].ID < items[j].ID
	})

	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

// SortedIDs returns the ids of remote in ascending order.
func SortedIDs(remote map[string]*photoset.Item) []string {
	ids := make([]string, 0, len(remote))
	for id := range remote {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func IsExcluded(path string, patterns []string) (bool, error) {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, err
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}
