// Package s3client implements a photoset store on top of an S3 bucket.
//
// Layout under the configured prefix:
//
//	sets/<set id>.json   manifest: title, primary item and ordered item ids
//	items/<item id>      media object; title, capture date, description and
//	                     media kind live in the object's user metadata
package s3client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gofrs/uuid/v5"
	"github.com/spf13/afero"
	"github.com/yuya-takeyama/photoset-sync/pkg/photoset"
)

const (
	setsDir  = "sets/"
	itemsDir = "items/"

	defaultPresignTTL = time.Hour
)

type Options struct {
	Bucket string
	// Prefix is empty or ends with "/", as returned by ParseS3URI.
	Prefix     string
	PresignTTL time.Duration
	// MaxRetries is the number of retries of a throttled or failed call.
	// Negative selects the default.
	MaxRetries int
	// Fs is where uploaded files are read from. Defaults to the OS filesystem.
	Fs afero.Fs
}

// Store is a photoset.Client backed by S3.
type Store struct {
	api        API
	presigner  Presigner
	uploader   *manager.Uploader
	fs         afero.Fs
	bucket     string
	prefix     string
	presignTTL time.Duration
	retry      retrier
	newID      func() (string, error)
}

// manifest is the JSON document describing a set.
type manifest struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Primary string   `json:"primary"`
	Items   []string `json:"items"`
}

func NewStore(api API, presigner Presigner, opts Options) *Store {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.PresignTTL <= 0 {
		opts.PresignTTL = defaultPresignTTL
	}
	return &Store{
		api:        api,
		presigner:  presigner,
		uploader:   manager.NewUploader(api),
		fs:         opts.Fs,
		bucket:     opts.Bucket,
		prefix:     opts.Prefix,
		presignTTL: opts.PresignTTL,
		retry:      newRetrier(opts.MaxRetries),
		newID:      newUUID,
	}
}

// NewFromConfig creates a Store using an S3 client built from cfg.
func NewFromConfig(cfg aws.Config, opts Options, optFns ...func(*s3.Options)) *Store {
	client := s3.NewFromConfig(cfg, optFns...)
	return NewStore(client, s3.NewPresignClient(client), opts)
}

func newUUID() (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (s *Store) setKey(id string) string {
	return s.prefix + setsDir + id + ".json"
}

func (s *Store) itemKey(id string) string {
	return s.prefix + itemsDir + id
}

func (s *Store) ListSets(ctx context.Context) ([]photoset.Set, error) {
	var sets []photoset.Set
	dir := s.prefix + setsDir

	paginator := s3.NewListObjectsV2Paginator(s.api, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(dir),
	})
	for paginator.HasMorePages() {
		page, err := withRetry(ctx, s.retry, func() (*s3.ListObjectsV2Output, error) {
			return paginator.NextPage(ctx)
		})
		if err != nil {
			return nil, mapError("list_sets", err)
		}

		for _, obj := range page.Contents {
			name := trimKeyPrefix(aws.ToString(obj.Key), dir)
			if !strings.HasSuffix(name, ".json") || strings.Contains(name, "/") {
				continue
			}
			m, err := s.getManifest(ctx, strings.TrimSuffix(name, ".json"))
			if err != nil {
				return nil, mapError("list_sets", err)
			}
			sets = append(sets, photoset.Set{ID: m.ID, Title: m.Title})
		}
	}
	return sets, nil
}

func (s *Store) ListItems(ctx context.Context, setID string) ([]photoset.Item, error) {
	m, err := s.getManifest(ctx, setID)
	if err != nil {
		return nil, mapError("list_items", err)
	}

	items := make([]photoset.Item, 0, len(m.Items))
	for _, id := range m.Items {
		meta, _, err := s.headItem(ctx, id)
		if err != nil {
			// The object was removed behind the manifest's back.
			if errors.As(err, new(*types.NotFound)) {
				continue
			}
			return nil, mapError("list_items", err)
		}
		items = append(items, photoset.Item{
			ID:          id,
			Title:       meta.Title,
			CaptureDate: meta.Taken,
			Description: meta.Description,
		})
	}
	return items, nil
}

func (s *Store) CreateSet(ctx context.Context, title, primaryItemID string) (string, string, error) {
	if _, _, err := s.headItem(ctx, primaryItemID); err != nil {
		return "", "", mapError("create_set", err)
	}

	id, err := s.newID()
	if err != nil {
		return "", "", mapError("create_set", err)
	}
	m := &manifest{ID: id, Title: title, Primary: primaryItemID, Items: []string{primaryItemID}}
	if err := s.putManifest(ctx, m); err != nil {
		return "", "", mapError("create_set", err)
	}
	return id, fmt.Sprintf("s3://%s/%s", s.bucket, s.setKey(id)), nil
}

func (s *Store) AddItemToSet(ctx context.Context, setID, itemID string) error {
	m, err := s.getManifest(ctx, setID)
	if err != nil {
		return mapError("add_to_set", err)
	}
	if _, _, err := s.headItem(ctx, itemID); err != nil {
		return mapError("add_to_set", err)
	}
	for _, id := range m.Items {
		if id == itemID {
			return nil
		}
	}
	m.Items = append(m.Items, itemID)
	return mapError("add_to_set", s.putManifest(ctx, m))
}

func (s *Store) UploadItem(ctx context.Context, title, filePath string) (string, error) {
	file, meta, contentType, err := openItemFile(s.fs, filePath)
	if err != nil {
		return "", photoset.NewError("upload", photoset.KindInvalid, err.Error())
	}
	defer file.Close()
	meta.Title = title

	id, err := s.newID()
	if err != nil {
		return "", mapError("upload", err)
	}

	_, err = withRetry(ctx, s.retry, func() (*manager.UploadOutput, error) {
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		return s.uploader.Upload(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(s.itemKey(id)),
			Body:        file,
			ContentType: aws.String(contentType),
			Metadata:    meta.encode(),
		})
	})
	if err != nil {
		return "", mapError("upload", err)
	}
	return id, nil
}

// DeleteItem removes the item object and drops it from every set.
func (s *Store) DeleteItem(ctx context.Context, itemID string) error {
	if _, _, err := s.headItem(ctx, itemID); err != nil {
		return mapError("delete", err)
	}

	_, err := withRetry(ctx, s.retry, func() (*s3.DeleteObjectOutput, error) {
		return s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(s.itemKey(itemID)),
		})
	})
	if err != nil {
		return mapError("delete", err)
	}

	sets, err := s.ListSets(ctx)
	if err != nil {
		return mapError("delete", err)
	}
	for _, set := range sets {
		m, err := s.getManifest(ctx, set.ID)
		if err != nil {
			return mapError("delete", err)
		}
		if !m.remove(itemID) {
			continue
		}
		if err := s.putManifest(ctx, m); err != nil {
			return mapError("delete", err)
		}
	}
	return nil
}

// UpdateTitleAndDate rewrites the item's metadata in place with a copy onto
// itself.
func (s *Store) UpdateTitleAndDate(ctx context.Context, itemID, title, captureDate string) error {
	meta, contentType, err := s.headItem(ctx, itemID)
	if err != nil {
		return mapError("update", err)
	}
	meta.Title = title
	meta.Taken = captureDate

	key := s.itemKey(itemID)
	_, err = withRetry(ctx, s.retry, func() (*s3.CopyObjectOutput, error) {
		return s.api.CopyObject(ctx, &s3.CopyObjectInput{
			Bucket:            aws.String(s.bucket),
			Key:               aws.String(key),
			CopySource:        aws.String(s.bucket + "/" + key),
			MetadataDirective: types.MetadataDirectiveReplace,
			ContentType:       aws.String(contentType),
			Metadata:          meta.encode(),
		})
	})
	return mapError("update", err)
}

// ReorderSet replaces the item order of the set. itemIDs must list every
// item of the set whose object still exists exactly once; ids of removed
// objects are dropped from the manifest, as ListItems never reports them.
func (s *Store) ReorderSet(ctx context.Context, setID string, itemIDs []string) error {
	m, err := s.getManifest(ctx, setID)
	if err != nil {
		return mapError("reorder", err)
	}

	live := make([]string, 0, len(m.Items))
	var stale []string
	for _, id := range m.Items {
		if _, _, err := s.headItem(ctx, id); err != nil {
			if errors.As(err, new(*types.NotFound)) {
				stale = append(stale, id)
				continue
			}
			return mapError("reorder", err)
		}
		live = append(live, id)
	}
	if !samePermutation(live, itemIDs) {
		return photoset.NewError("reorder", photoset.KindInvalid, "order must list every item of the set exactly once")
	}

	for _, id := range stale {
		m.remove(id)
	}
	m.Items = append([]string(nil), itemIDs...)
	if m.Primary == "" && len(m.Items) > 0 {
		m.Primary = m.Items[0]
	}
	return mapError("reorder", s.putManifest(ctx, m))
}

// ListSizes returns the original of the item as its only size, with a
// presigned download URL.
func (s *Store) ListSizes(ctx context.Context, itemID string) ([]photoset.Size, error) {
	meta, _, err := s.headItem(ctx, itemID)
	if err != nil {
		return nil, mapError("list_sizes", err)
	}

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.itemKey(itemID)),
	}, s3.WithPresignExpires(s.presignTTL))
	if err != nil {
		return nil, mapError("list_sizes", err)
	}

	label := photoset.LabelOriginal
	if meta.Media == photoset.MediaVideo {
		label = photoset.LabelVideoOriginal
	}
	return []photoset.Size{{Media: meta.Media, Label: label, Source: req.URL}}, nil
}

func (s *Store) headItem(ctx context.Context, itemID string) (itemMeta, string, error) {
	out, err := withRetry(ctx, s.retry, func() (*s3.HeadObjectOutput, error) {
		return s.api.HeadObject(ctx, &s3.HeadObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(s.itemKey(itemID)),
		})
	})
	if err != nil {
		return itemMeta{}, "", err
	}
	return decodeMeta(out.Metadata), aws.ToString(out.ContentType), nil
}

func (s *Store) getManifest(ctx context.Context, setID string) (*manifest, error) {
	if setID == "" {
		return nil, photoset.NewError("get_set", photoset.KindInvalid, "empty set id")
	}
	data, err := withRetry(ctx, s.retry, func() ([]byte, error) {
		out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(s.setKey(setID)),
		})
		if err != nil {
			return nil, err
		}
		defer out.Body.Close()
		return io.ReadAll(out.Body)
	})
	if err != nil {
		return nil, err
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, photoset.NewError("get_set", photoset.KindRemote, fmt.Sprintf("malformed manifest %s: %v", s.setKey(setID), err))
	}
	return &m, nil
}

func (s *Store) putManifest(ctx context.Context, m *manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = withRetry(ctx, s.retry, func() (*s3.PutObjectOutput, error) {
		return s.api.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(s.bucket),
			Key:           aws.String(s.setKey(m.ID)),
			Body:          bytes.NewReader(data),
			ContentLength: aws.Int64(int64(len(data))),
			ContentType:   aws.String("application/json"),
		})
	})
	return err
}

// remove drops itemID from the manifest and reports whether it was there.
func (m *manifest) remove(itemID string) bool {
	kept := m.Items[:0]
	found := false
	for _, id := range m.Items {
		if id == itemID {
			found = true
			continue
		}
		kept = append(kept, id)
	}
	m.Items = kept
	if m.Primary == itemID {
		m.Primary = ""
		if len(m.Items) > 0 {
			m.Primary = m.Items[0]
		}
	}
	return found
}

func samePermutation(current, order []string) bool {
	if len(current) != len(order) {
		return false
	}
	seen := make(map[string]int, len(current))
	for _, id := range current {
		seen[id]++
	}
	for _, id := range order {
		if seen[id] == 0 {
			return false
		}
		seen[id]--
	}
	return true
}

var _ photoset.Client = (*Store)(nil)
