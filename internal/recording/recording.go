package recording

import "context"

// Fetcher downloads the audio behind a recording reference. The reference
// arrives extension-less from the telephony provider; implementations own
// the suffix convention needed to fetch it as audio.
type Fetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}
