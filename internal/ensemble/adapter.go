package ensemble

import "context"

// Image is the opaque photo payload handed to every adapter.
// Data holds raw image bytes; ContentType is the MIME type used by adapters
// that need to encode the payload for their backend.
type Image struct {
	Data        []byte
	ContentType string
}

// Adapter is the integration boundary to one external vision-classification
// backend. Implementations are selected at construction time; the engine
// never inspects their shape beyond this contract.
//
// Available and Classify must honor context cancellation: the engine imposes
// a per-adapter deadline so one stalled backend cannot stall the ensemble.
// A Classify error excludes the adapter from the current invocation only;
// there are no retries.
type Adapter interface {
	// ModelID returns a stable, non-empty identifier for the backend.
	ModelID() string

	// Available reports whether the backend can currently serve
	// classification calls. Failures are treated as unavailable.
	Available(ctx context.Context) bool

	// Classify submits the image and instruction prompt to the backend and
	// returns its complete response.
	Classify(ctx context.Context, img Image, prompt string) (*ModelResult, error)
}
