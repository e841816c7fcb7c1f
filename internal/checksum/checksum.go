// Package checksum computes the content digests recorded on uploaded items.
package checksum

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
)

const bufferSize = 64 * 1024 // 64KB buffer

// SHA256 digests r and returns the base64 encoded sum, the encoding S3
// uses for its own checksums.
func SHA256(r io.Reader) (string, error) {
	hash := sha256.New()
	buffer := make([]byte, bufferSize)

	if _, err := io.CopyBuffer(hash, r, buffer); err != nil {
		return "", fmt.Errorf("read: %w", err)
	}

	return base64.StdEncoding.EncodeToString(hash.Sum(nil)), nil
}
