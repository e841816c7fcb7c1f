// Package fetch downloads remote media into the synced folder.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/afero"
)

const defaultTimeout = 10 * time.Minute

// partSuffix marks a download in progress. The file is renamed into place
// once the body has been written completely.
const partSuffix = ".part"

// Fetcher writes HTTP responses to files. Redirects are followed by the
// underlying http.Client.
type Fetcher struct {
	fs         afero.Fs
	httpClient *http.Client
}

// New creates a Fetcher. A nil httpClient gets a client with a generous
// timeout, since originals of videos can be large.
func New(fs afero.Fs, httpClient *http.Client) *Fetcher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Fetcher{fs: fs, httpClient: httpClient}
}

func (f *Fetcher) Fetch(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("get %s: unexpected status %s", url, resp.Status)
	}

	tmp := dest + partSuffix
	file, err := f.fs.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}

	if _, err := io.Copy(file, resp.Body); err != nil {
		file.Close()
		f.fs.Remove(tmp)
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := file.Close(); err != nil {
		f.fs.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}

	if err := f.fs.Rename(tmp, dest); err != nil {
		f.fs.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
