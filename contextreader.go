package jsonptr

import (
	"context"
	"io"
)

// ctxReader makes a blocking io.Reader responsive to context cancellation
// between reads. It does not interrupt a Read already in flight; it only
// refuses to start a new one once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr ctxReader) Read(p []byte) (int, error) {
	select {
	case <-cr.ctx.Done():
		return 0, cr.ctx.Err()
	default:
	}
	return cr.r.Read(p)
}
