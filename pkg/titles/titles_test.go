package titles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCanonical(t *testing.T) {
	tests := []struct {
		title string
		want  bool
	}{
		{"20240305-130709", true},
		{"20240305-130709-2", true},
		{"20240305-130709-12", true},
		{"20240305-130709-", false},
		{"20240305-1307", false},
		{"2024030-130709", false},
		{"vacation", false},
		{"", false},
		{"x20240305-130709", false},
		{"20240305-130709 copy", false},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCanonical(tt.title))
		})
	}
}

func TestFromCaptureDate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"regular", "2024-03-05 13:07:09", "20240305-130709", true},
		{"trailing fraction ignored", "2024-03-05 13:07:09.123", "20240305-130709", true},
		{"too short", "bad", "", false},
		{"date only", "2024-03-05", "", false},
		{"empty", "", "", false},
		{"wrong separators", "2024/03/05 13.07.09", "", false},
		{"letters", "YYYY-MM-DD HH:MM:SS", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromCaptureDate(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveCollision(t *testing.T) {
	existing := map[string]bool{"20240305-130709": true}
	taken := func(s string) bool { return existing[s] }

	first := ResolveCollision("20240305-130709", taken)
	assert.Equal(t, "20240305-130709-1", first)
	existing[first] = true

	second := ResolveCollision("20240305-130709", taken)
	assert.Equal(t, "20240305-130709-2", second)

	assert.Equal(t, "20240101-000000", ResolveCollision("20240101-000000", taken))
}

func TestRename(t *testing.T) {
	none := func(string) bool { return false }

	tests := []struct {
		name        string
		title       string
		captureDate string
		want        string
		wantOK      bool
	}{
		{"plain title", "IMG_0001", "2024-03-05 13:07:09", "20240305-130709", true},
		{"already canonical", "20240305-130709-3", "2024-03-05 13:07:09", "", false},
		{"no capture date", "IMG_0001", "", "", false},
		{"canonical prefix with other tail", "20240305-130709 copy", "2024-03-05 13:07:09", "", false},
		{"canonical for another date", "20230101-000000 copy", "2024-03-05 13:07:09", "20240305-130709", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Rename(tt.title, tt.captureDate, none)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrefix(t *testing.T) {
	assert.Equal(t, "short", Prefix("short"))
	assert.Equal(t, "20240305-130709", Prefix("20240305-130709-4"))
}
