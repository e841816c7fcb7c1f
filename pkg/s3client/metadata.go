package s3client

import (
	"io"
	"mime"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/spf13/afero"
	"github.com/yuya-takeyama/photoset-sync/internal/checksum"
	"github.com/yuya-takeyama/photoset-sync/pkg/photoset"
)

// User metadata keys stored on item objects. S3 returns metadata keys
// lowercased, so they are lowercase here too.
const (
	metaTitle       = "title"
	metaTaken       = "taken"
	metaDescription = "description"
	metaMedia       = "media"
	metaFilename    = "filename"
	metaSHA256      = "sha256"
)

const sniffLen = 3072

// itemMeta is the decoded user metadata of an item object.
type itemMeta struct {
	Title       string
	Taken       string
	Description string
	Media       string
	Filename    string
	// SHA256 is the base64 digest of the content at upload time.
	SHA256 string
}

// encode escapes values so non-ASCII titles survive the trip through HTTP
// headers.
func (m itemMeta) encode() map[string]string {
	out := map[string]string{
		metaTitle: url.QueryEscape(m.Title),
		metaMedia: m.Media,
	}
	if m.Taken != "" {
		out[metaTaken] = url.QueryEscape(m.Taken)
	}
	if m.Description != "" {
		out[metaDescription] = url.QueryEscape(m.Description)
	}
	if m.Filename != "" {
		out[metaFilename] = url.QueryEscape(m.Filename)
	}
	if m.SHA256 != "" {
		out[metaSHA256] = m.SHA256
	}
	return out
}

func decodeMeta(raw map[string]string) itemMeta {
	get := func(key string) string {
		v, ok := raw[key]
		if !ok {
			return ""
		}
		if decoded, err := url.QueryUnescape(v); err == nil {
			return decoded
		}
		return v
	}
	m := itemMeta{
		Title:       get(metaTitle),
		Taken:       get(metaTaken),
		Description: get(metaDescription),
		Media:       raw[metaMedia],
		Filename:    get(metaFilename),
		SHA256:      raw[metaSHA256],
	}
	if m.Media == "" {
		m.Media = photoset.MediaPhoto
	}
	return m
}

// detectContentType sniffs the content type of r, falling back to the file
// extension when the content is not recognised.
func detectContentType(r io.Reader, path string) string {
	buf := make([]byte, sniffLen)
	n, _ := io.ReadFull(r, buf)
	if n > 0 {
		if mt := mimetype.Detect(buf[:n]); mt != nil && !mt.Is("application/octet-stream") && !mt.Is("text/plain") {
			return mt.String()
		}
	}
	return contentTypeFromExtension(path)
}

func contentTypeFromExtension(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return "application/octet-stream"
	}

	contentType := mime.TypeByExtension(strings.ToLower(ext))
	if contentType == "" {
		return "application/octet-stream"
	}

	return contentType
}

func mediaOf(contentType string) string {
	if strings.HasPrefix(contentType, "video/") {
		return photoset.MediaVideo
	}
	return photoset.MediaPhoto
}

// captureDate returns the EXIF DateTimeOriginal of r formatted with
// photoset.CaptureDateLayout, or fallback when there is none.
func captureDate(r io.Reader, fallback time.Time) string {
	if x, err := exif.Decode(r); err == nil {
		if t, err := x.DateTime(); err == nil {
			return t.Format(photoset.CaptureDateLayout)
		}
	}
	return fallback.Format(photoset.CaptureDateLayout)
}

// openItemFile opens path and collects what the store records about it.
func openItemFile(fs afero.Fs, path string) (afero.File, itemMeta, string, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, itemMeta{}, "", err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, itemMeta{}, "", err
	}

	digest, err := checksum.SHA256(file)
	if err != nil {
		file.Close()
		return nil, itemMeta{}, "", err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, itemMeta{}, "", err
	}

	contentType := detectContentType(file, path)
	meta := itemMeta{
		Media:    mediaOf(contentType),
		Filename: filepath.Base(path),
		SHA256:   digest,
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, itemMeta{}, "", err
	}
	if meta.Media == photoset.MediaPhoto {
		meta.Taken = captureDate(file, info.ModTime())
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			file.Close()
			return nil, itemMeta{}, "", err
		}
	} else {
		meta.Taken = info.ModTime().Format(photoset.CaptureDateLayout)
	}

	return file, meta, contentType, nil
}
