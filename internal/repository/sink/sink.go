package sink

import "context"

// Sink receives finished artifacts: individual processed images or the
// whole-batch bundle.
type Sink interface {
	Store(ctx context.Context, name string, data []byte, contentType string) error
}
