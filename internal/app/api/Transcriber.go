package api

import "context"

// Transcriber converts one audio artifact to text. Implementations are
// stateless per call and safe for concurrent use.
type Transcriber interface {
	Transcript(ctx context.Context, inputFilePath string) (string, error)
}
