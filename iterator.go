package jsonptr

import (
	"io"

	"github.com/gibsn/jsonptr/internal/driver"
	"github.com/gibsn/jsonptr/internal/pointer"
)

// Iterator pulls the direct children of the container designated by a
// JSON Pointer, one at a time, from an incremental byte stream. An
// Iterator is not safe for concurrent use.
type Iterator struct {
	drv    *driver.Driver
	closer io.Closer
	done   bool
}

func newIterator(r io.Reader, ptrStr string, opts []Option) (*Iterator, error) {
	p, err := pointer.Parse(ptrStr)
	if err != nil {
		return nil, &Error{Kind: ErrPointerSyntax, Offset: -1, Msg: err.Error()}
	}

	cfg := config{decoder: DefaultDecoder{}}
	for _, o := range opts {
		o(&cfg)
	}

	decoder := cfg.decoder
	drv := driver.New(r, p, func(raw []byte) (any, error) {
		return decoder.Decode(raw)
	})

	if cfg.bufSize > 0 {
		drv.SetBufSize(cfg.bufSize)
	}
	if cfg.debug {
		drv.SetDebug(true)
	}

	return &Iterator{drv: drv}, nil
}

// Next returns the next direct child as a Pair. It returns io.EOF once
// the target container is exhausted; any other error
// is a *Error describing what went wrong and where.
func (it *Iterator) Next() (Pair, error) {
	if it.done {
		return Pair{}, io.EOF
	}

	pair, ok, err := it.drv.Advance()
	if err != nil {
		it.done = true
		return Pair{}, translateErr(err)
	}
	if !ok {
		it.done = true
		return Pair{}, io.EOF
	}

	return Pair{Key: pair.Key, Value: pair.Value}, nil
}

// Close releases the underlying byte source, if the Iterator owns one
// (as OpenFile does). It is a no-op otherwise.
func (it *Iterator) Close() error {
	if it.closer == nil {
		return nil
	}
	return it.closer.Close()
}
