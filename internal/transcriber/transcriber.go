package transcriber

import "context"

// Transcriber turns one recorded audio file into best-effort text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}
