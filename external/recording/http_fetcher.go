package recording

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"time"

	"github.com/foxseedlab/rusuban/internal/recording"
)

// HTTPFetcher downloads a recording from the telephony provider. The
// provider hands out extension-less references; requesting with a .wav
// suffix selects the audio rendition. One attempt, bounded timeout, no
// retry: the caller is still on the line.
type HTTPFetcher struct {
	client     *http.Client
	accountSID string
	authToken  string
}

func NewHTTPFetcher(timeout time.Duration, accountSID, authToken string) recording.Fetcher {
	return &HTTPFetcher{
		client:     &http.Client{Timeout: timeout},
		accountSID: accountSID,
		authToken:  authToken,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	url := ref
	if path.Ext(url) == "" {
		url += ".wav"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if f.accountSID != "" && f.authToken != "" {
		req.SetBasicAuth(f.accountSID, f.authToken)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("recording fetch returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return body, nil
}
