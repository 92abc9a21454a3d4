// Package jsonptr streams the direct children of a container inside a
// JSON document designated by a JSON Pointer (RFC 6901), without holding
// the whole document in memory.
package jsonptr

import (
	"context"
	"io"
	"os"
	"strings"
)

// OpenString opens an Iterator over an in-memory JSON document. Since
// the whole document is already resident, no context is needed.
func OpenString(doc string, ptrStr string, opts ...Option) (*Iterator, error) {
	return newIterator(strings.NewReader(doc), ptrStr, opts)
}

// OpenReader opens an Iterator over r. ctx governs cancellation of reads
// from r; it is checked before each read, not mid-read.
func OpenReader(ctx context.Context, r io.Reader, ptrStr string, opts ...Option) (*Iterator, error) {
	return newIterator(ctxReader{ctx: ctx, r: r}, ptrStr, opts)
}

// OpenFile opens path and streams the children of the container ptrStr
// designates. The returned Iterator owns the file and must be Closed.
func OpenFile(ctx context.Context, path string, ptrStr string, opts ...Option) (*Iterator, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Kind: ErrIO, Offset: -1, Msg: err.Error()}
	}

	it, err := newIterator(ctxReader{ctx: ctx, r: f}, ptrStr, opts)
	if err != nil {
		f.Close()
		return nil, err
	}
	it.closer = f

	return it, nil
}
