package jsonptr

import (
	"fmt"

	"github.com/gibsn/jsonptr/internal/driver"
	"github.com/gibsn/jsonptr/internal/lexer"
)

// ErrorKind classifies the way Open* or an Iterator failed.
type ErrorKind int

const (
	// ErrLexical means the byte stream was not well-formed JSON.
	ErrLexical ErrorKind = iota
	// ErrStructural means the token stream was well-formed lexically but
	// violated JSON's grammar (unbalanced brackets, a misplaced comma or
	// colon, a value where a key was expected, and so on).
	ErrStructural
	// ErrPointerSyntax means the pointer string itself was malformed.
	ErrPointerSyntax
	// ErrPointerNotFound means the document was read to completion
	// without ever matching the pointer.
	ErrPointerNotFound
	// ErrPointerNotIterable means the pointer matched a value that is
	// not an object or an array.
	ErrPointerNotIterable
	// ErrDecode means a direct child's raw bytes could not be decoded.
	ErrDecode
	// ErrIO means reading from the underlying byte source failed.
	ErrIO
)

func (k ErrorKind) String() string {
	switch k {
	case ErrLexical:
		return "lexical error"
	case ErrStructural:
		return "structural error"
	case ErrPointerSyntax:
		return "pointer syntax error"
	case ErrPointerNotFound:
		return "pointer not found"
	case ErrPointerNotIterable:
		return "pointer not iterable"
	case ErrDecode:
		return "decode error"
	case ErrIO:
		return "io error"
	}
	return "unknown error"
}

// Error is the single error type returned by this package. Offset is the
// absolute byte offset in the stream at which the error was detected, or
// -1 when no single offset applies (pointer syntax errors, I/O errors,
// decode errors, and failures detected at end of stream).
type Error struct {
	Kind   ErrorKind
	Offset int64
	Msg    string
}

func (e *Error) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s at offset %d: %s", e.Kind, e.Offset, e.Msg)
}

// translateErr maps the internal driver/lexer error types onto the single
// exported Error type, so callers never need to import internal packages
// to inspect a failure.
func translateErr(err error) error {
	if err == nil {
		return nil
	}

	switch e := err.(type) {
	case *lexer.Error:
		return &Error{Kind: ErrLexical, Offset: e.Offset, Msg: e.Msg}
	case *lexer.IOError:
		return &Error{Kind: ErrIO, Offset: -1, Msg: e.Error()}
	case *driver.Error:
		kind := map[driver.ErrorKind]ErrorKind{
			driver.KindStructural:        ErrStructural,
			driver.KindPointerNotFound:   ErrPointerNotFound,
			driver.KindPointerNotIterable: ErrPointerNotIterable,
			driver.KindDecode:            ErrDecode,
		}[e.Kind]
		return &Error{Kind: kind, Offset: e.Offset, Msg: e.Msg}
	default:
		return &Error{Kind: ErrIO, Offset: -1, Msg: err.Error()}
	}
}
