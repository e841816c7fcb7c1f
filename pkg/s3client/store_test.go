package s3client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/aws/smithy-go"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuya-takeyama/photoset-sync/internal/checksum"
	"github.com/yuya-takeyama/photoset-sync/pkg/photoset"
)

var (
	jpegBytes = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00 not really a jpeg")
	mp4Bytes  = []byte("\x00\x00\x00\x18ftypmp42\x00\x00\x00\x00mp42isom\x00\x00\x00\x08free")
)

type storeHarness struct {
	store *Store
	api   *fakeS3
	fs    afero.Fs
}

func newStoreHarness(t *testing.T) *storeHarness {
	t.Helper()
	api := newFakeS3()
	fs := afero.NewMemMapFs()
	store := NewStore(api, fakePresigner{}, Options{
		Bucket:     "photos",
		Prefix:     "library/",
		MaxRetries: 2,
		Fs:         fs,
	})
	store.retry.baseDelay = time.Millisecond
	store.retry.maxDelay = 5 * time.Millisecond

	n := 0
	store.newID = func() (string, error) {
		n++
		return fmt.Sprintf("id-%d", n), nil
	}
	return &storeHarness{store: store, api: api, fs: fs}
}

func (h *storeHarness) writeFile(t *testing.T, path string, data []byte, mod time.Time) {
	t.Helper()
	require.NoError(t, afero.WriteFile(h.fs, path, data, 0o644))
	require.NoError(t, h.fs.Chtimes(path, mod, mod))
}

func (h *storeHarness) upload(t *testing.T, title string) string {
	t.Helper()
	path := "/photos/" + title + ".jpg"
	h.writeFile(t, path, jpegBytes, time.Date(2024, 3, 5, 13, 7, 9, 0, time.UTC))
	id, err := h.store.UploadItem(context.Background(), title, path)
	require.NoError(t, err)
	return id
}

func (h *storeHarness) manifest(t *testing.T, setID string) manifest {
	t.Helper()
	obj, ok := h.api.objects["library/sets/"+setID+".json"]
	require.True(t, ok, "manifest of %s", setID)
	var m manifest
	require.NoError(t, json.Unmarshal(obj.body, &m))
	return m
}

func TestStore_UploadItem(t *testing.T) {
	h := newStoreHarness(t)
	id := h.upload(t, "Café")

	obj, ok := h.api.objects["library/items/"+id]
	require.True(t, ok)
	assert.Equal(t, jpegBytes, obj.body)
	assert.Equal(t, "image/jpeg", obj.contentType)
	assert.Equal(t, "Caf%C3%A9", obj.metadata["title"])
	assert.Equal(t, "photo", obj.metadata["media"])
	assert.Equal(t, "Caf%C3%A9.jpg", obj.metadata["filename"])
	// No EXIF: the modification time stands in for the capture date.
	assert.Equal(t, "2024-03-05+13%3A07%3A09", obj.metadata["taken"])
	assert.Equal(t, digest(t, jpegBytes), obj.metadata["sha256"])
}

func digest(t *testing.T, data []byte) string {
	t.Helper()
	sum, err := checksum.SHA256(bytes.NewReader(data))
	require.NoError(t, err)
	return sum
}

func TestStore_UploadVideo(t *testing.T) {
	h := newStoreHarness(t)
	h.writeFile(t, "/photos/clip.mp4", mp4Bytes, time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC))

	id, err := h.store.UploadItem(context.Background(), "clip", "/photos/clip.mp4")
	require.NoError(t, err)

	obj := h.api.objects["library/items/"+id]
	assert.Equal(t, "video/mp4", obj.contentType)
	assert.Equal(t, "video", obj.metadata["media"])

	sizes, err := h.store.ListSizes(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, sizes, 1)
	assert.Equal(t, photoset.MediaVideo, sizes[0].Media)
	assert.Equal(t, photoset.LabelVideoOriginal, sizes[0].Label)
}

func TestStore_UploadMissingFile(t *testing.T) {
	h := newStoreHarness(t)

	_, err := h.store.UploadItem(context.Background(), "x", "/photos/absent.jpg")
	require.Error(t, err)
	assert.True(t, photoset.IsKind(err, photoset.KindInvalid))
	assert.Zero(t, h.api.calls["PutObject"])
}

func TestStore_UploadRetriesThrottling(t *testing.T) {
	h := newStoreHarness(t)
	h.api.failures["PutObject"] = []error{&smithy.GenericAPIError{Code: "SlowDown", Message: "reduce your request rate"}}

	id := h.upload(t, "x")

	assert.Equal(t, 2, h.api.calls["PutObject"])
	assert.Equal(t, jpegBytes, h.api.objects["library/items/"+id].body)
}

func TestStore_SetLifecycle(t *testing.T) {
	h := newStoreHarness(t)
	ctx := context.Background()
	a := h.upload(t, "a")
	b := h.upload(t, "b")
	c := h.upload(t, "c")

	setID, url, err := h.store.CreateSet(ctx, "holiday", a)
	require.NoError(t, err)
	assert.Equal(t, "s3://photos/library/sets/"+setID+".json", url)

	require.NoError(t, h.store.AddItemToSet(ctx, setID, b))
	require.NoError(t, h.store.AddItemToSet(ctx, setID, c))
	// Adding twice is a no-op.
	require.NoError(t, h.store.AddItemToSet(ctx, setID, c))

	sets, err := h.store.ListSets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []photoset.Set{{ID: setID, Title: "holiday"}}, sets)

	items, err := h.store.ListItems(ctx, setID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, photoset.Item{ID: a, Title: "a", CaptureDate: "2024-03-05 13:07:09"}, items[0])

	require.NoError(t, h.store.ReorderSet(ctx, setID, []string{c, a, b}))
	assert.Equal(t, []string{c, a, b}, h.manifest(t, setID).Items)

	require.NoError(t, h.store.DeleteItem(ctx, a))
	m := h.manifest(t, setID)
	assert.Equal(t, []string{c, b}, m.Items)
	assert.Equal(t, c, m.Primary)
	_, exists := h.api.objects["library/items/"+a]
	assert.False(t, exists)
}

func TestStore_CreateSetWithUnknownPrimary(t *testing.T) {
	h := newStoreHarness(t)

	_, _, err := h.store.CreateSet(context.Background(), "holiday", "nope")
	require.Error(t, err)
	assert.True(t, photoset.IsKind(err, photoset.KindNotFound))
}

func TestStore_ReorderRejectsPartialOrder(t *testing.T) {
	h := newStoreHarness(t)
	ctx := context.Background()
	a := h.upload(t, "a")
	b := h.upload(t, "b")
	setID, _, err := h.store.CreateSet(ctx, "holiday", a)
	require.NoError(t, err)
	require.NoError(t, h.store.AddItemToSet(ctx, setID, b))

	for _, order := range [][]string{{a}, {a, a}, {a, "stranger"}} {
		err := h.store.ReorderSet(ctx, setID, order)
		require.Error(t, err, "order %v", order)
		assert.True(t, photoset.IsKind(err, photoset.KindInvalid))
	}
	assert.Equal(t, []string{a, b}, h.manifest(t, setID).Items)
}

func TestStore_UpdateTitleAndDate(t *testing.T) {
	h := newStoreHarness(t)
	ctx := context.Background()
	id := h.upload(t, "IMG_1")
	setID, _, err := h.store.CreateSet(ctx, "holiday", id)
	require.NoError(t, err)

	require.NoError(t, h.store.UpdateTitleAndDate(ctx, id, "20240305-130709", "2024-03-05 13:07:09"))

	items, err := h.store.ListItems(ctx, setID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "20240305-130709", items[0].Title)
	assert.Equal(t, "2024-03-05 13:07:09", items[0].CaptureDate)

	obj := h.api.objects["library/items/"+id]
	assert.Equal(t, "image/jpeg", obj.contentType)
	assert.Equal(t, jpegBytes, obj.body)
	assert.Equal(t, digest(t, jpegBytes), obj.metadata["sha256"])
}

func TestStore_ListItemsSkipsDanglingIDs(t *testing.T) {
	h := newStoreHarness(t)
	ctx := context.Background()
	a := h.upload(t, "a")
	b := h.upload(t, "b")
	setID, _, err := h.store.CreateSet(ctx, "holiday", a)
	require.NoError(t, err)
	require.NoError(t, h.store.AddItemToSet(ctx, setID, b))
	delete(h.api.objects, "library/items/"+b)

	items, err := h.store.ListItems(ctx, setID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, a, items[0].ID)
}

func TestStore_ReorderDropsDanglingIDs(t *testing.T) {
	h := newStoreHarness(t)
	ctx := context.Background()
	a := h.upload(t, "a")
	b := h.upload(t, "b")
	c := h.upload(t, "c")
	setID, _, err := h.store.CreateSet(ctx, "holiday", a)
	require.NoError(t, err)
	require.NoError(t, h.store.AddItemToSet(ctx, setID, b))
	require.NoError(t, h.store.AddItemToSet(ctx, setID, c))
	delete(h.api.objects, "library/items/"+a)

	items, err := h.store.ListItems(ctx, setID)
	require.NoError(t, err)
	order := make([]string, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		order = append(order, items[i].ID)
	}

	require.NoError(t, h.store.ReorderSet(ctx, setID, order))
	m := h.manifest(t, setID)
	assert.Equal(t, []string{c, b}, m.Items)
	assert.Equal(t, b, m.Primary)

	err = h.store.ReorderSet(ctx, setID, []string{a, b, c})
	require.Error(t, err)
	assert.True(t, photoset.IsKind(err, photoset.KindInvalid))
}

func TestStore_ListItemsOfUnknownSet(t *testing.T) {
	h := newStoreHarness(t)

	_, err := h.store.ListItems(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, photoset.IsKind(err, photoset.KindNotFound))
}

func TestStore_ListSetsIgnoresForeignObjects(t *testing.T) {
	h := newStoreHarness(t)
	h.api.objects["library/sets/README"] = &fakeObject{body: []byte("hello")}
	h.api.objects["library/sets/nested/x.json"] = &fakeObject{body: []byte("{}")}

	sets, err := h.store.ListSets(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sets)
}

func TestStore_ListSetsPermissionDenied(t *testing.T) {
	h := newStoreHarness(t)
	h.api.failures["ListObjectsV2"] = []error{&smithy.GenericAPIError{Code: "AccessDenied", Message: "Access Denied"}}

	_, err := h.store.ListSets(context.Background())
	require.Error(t, err)
	assert.True(t, photoset.IsKind(err, photoset.KindPermission))
	assert.Equal(t, 1, h.api.calls["ListObjectsV2"])
}

func TestStore_DeleteUnknownItem(t *testing.T) {
	h := newStoreHarness(t)

	err := h.store.DeleteItem(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, photoset.IsKind(err, photoset.KindNotFound))
	assert.Zero(t, h.api.calls["DeleteObject"])
}

func TestStore_ListSizes(t *testing.T) {
	h := newStoreHarness(t)
	id := h.upload(t, "x")

	sizes, err := h.store.ListSizes(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, sizes, 1)
	assert.Equal(t, photoset.MediaPhoto, sizes[0].Media)
	assert.Equal(t, photoset.LabelOriginal, sizes[0].Label)
	assert.True(t, strings.HasPrefix(sizes[0].Source, "https://photos.example.com/library/items/"+id))
}
