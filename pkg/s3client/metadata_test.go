package s3client

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yuya-takeyama/photoset-sync/pkg/photoset"
)

func TestItemMetaRoundTrip(t *testing.T) {
	in := itemMeta{
		Title:       "Fête de la musique",
		Taken:       "2024-06-21 21:30:00",
		Description: "line one\nline two",
		Media:       photoset.MediaPhoto,
		Filename:    "fête.jpg",
		SHA256:      "ungWv48Bz+pBQUDeXa4iI7ADYaOWF3qctBD/YfIAFa0=",
	}
	encoded := in.encode()
	for k, v := range encoded {
		for _, r := range v {
			assert.Less(t, r, rune(0x80), "metadata %s must be ASCII: %q", k, v)
		}
	}
	assert.Equal(t, in, decodeMeta(encoded))
}

func TestDecodeMeta_Defaults(t *testing.T) {
	m := decodeMeta(map[string]string{"title": "raw%ZZ"})
	assert.Equal(t, "raw%ZZ", m.Title)
	assert.Equal(t, photoset.MediaPhoto, m.Media)
	assert.Empty(t, m.Taken)
}

func TestDetectContentType(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		path string
		want string
	}{
		{name: "jpeg by content", data: jpegBytes, path: "x.bin", want: "image/jpeg"},
		{name: "mp4 by content", data: mp4Bytes, path: "clip", want: "video/mp4"},
		{name: "unknown content, known extension", data: []byte{0x01, 0x02, 0x03}, path: "x.png", want: "image/png"},
		{name: "unknown everything", data: []byte{0x01, 0x02, 0x03}, path: "x", want: "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectContentType(bytes.NewReader(tt.data), tt.path))
		})
	}
}

func TestMediaOf(t *testing.T) {
	assert.Equal(t, photoset.MediaVideo, mediaOf("video/quicktime"))
	assert.Equal(t, photoset.MediaPhoto, mediaOf("image/heic"))
	assert.Equal(t, photoset.MediaPhoto, mediaOf("application/octet-stream"))
}

func TestCaptureDate_Fallback(t *testing.T) {
	mod := time.Date(2020, 2, 29, 23, 59, 58, 0, time.UTC)
	assert.Equal(t, "2020-02-29 23:59:58", captureDate(bytes.NewReader([]byte("no exif here")), mod))
}
