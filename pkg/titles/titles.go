// Package titles converts item titles to the canonical capture-date form
// YYYYMMDD-HHMMSS[-n].
package titles

import (
	"regexp"
	"strconv"
)

// CanonicalLength is the length of a canonical title without suffix.
const CanonicalLength = 15

// captureDateLength is the length of "YYYY-MM-DD HH:MM:SS".
const captureDateLength = 19

var canonicalPattern = regexp.MustCompile(`^\d{8}-\d{6}(-\d+)?$`)

// IsCanonical reports whether title is already in capture-date form.
func IsCanonical(title string) bool {
	return canonicalPattern.MatchString(title)
}

// FromCaptureDate builds the canonical title for a "YYYY-MM-DD HH:MM:SS"
// timestamp. ok is false when the input is too short or not laid out that way.
func FromCaptureDate(captureDate string) (title string, ok bool) {
	if len(captureDate) < captureDateLength {
		return "", false
	}
	d := captureDate[:captureDateLength]
	if d[4] != '-' || d[7] != '-' || d[10] != ' ' || d[13] != ':' || d[16] != ':' {
		return "", false
	}

	digits := d[0:4] + d[5:7] + d[8:10] + "-" + d[11:13] + d[14:16] + d[17:19]
	for i := 0; i < len(digits); i++ {
		if digits[i] != '-' && (digits[i] < '0' || digits[i] > '9') {
			return "", false
		}
	}
	return digits, true
}

// ResolveCollision appends -1, -2, ... to candidate until taken reports the
// title as free.
func ResolveCollision(candidate string, taken func(string) bool) string {
	title := candidate
	for n := 1; taken(title); n++ {
		title = candidate + "-" + strconv.Itoa(n)
	}
	return title
}

// Prefix returns the first CanonicalLength bytes of title.
func Prefix(title string) string {
	if len(title) <= CanonicalLength {
		return title
	}
	return title[:CanonicalLength]
}

// Rename computes the title an item should be renamed to. ok is false when
// the item must be left alone: its title is canonical already, the capture
// date is unusable, or the title already starts with the canonical form.
func Rename(title, captureDate string, taken func(string) bool) (newTitle string, ok bool) {
	if IsCanonical(title) {
		return "", false
	}
	candidate, ok := FromCaptureDate(captureDate)
	if !ok {
		return "", false
	}
	if Prefix(title) == candidate {
		return "", false
	}
	return ResolveCollision(candidate, taken), true
}
