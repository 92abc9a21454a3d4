// Package driver implements the pointer-directed pushdown state machine
// that turns lexer tokens into decoded (key-or-index, value) pairs for
// the direct children of a target container.
package driver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/gibsn/jsonptr/internal/lexer"
	"github.com/gibsn/jsonptr/internal/pointer"
)

// ErrorKind classifies a driver-level failure.
type ErrorKind byte

const (
	KindStructural ErrorKind = iota
	KindPointerNotFound
	KindPointerNotIterable
	KindDecode
)

// Error is a driver-level failure, carrying the absolute stream offset at
// which it was detected, or -1 when no single offset applies.
type Error struct {
	Kind   ErrorKind
	Offset int64
	Msg    string
}

func (e *Error) Error() string {
	return e.Msg
}

// DecodeFunc materializes a complete JSON value from its raw source bytes.
type DecodeFunc func(raw []byte) (any, error)

// Pair is a single yielded (key-or-index, value) pair. Key is a string
// when the target container is an object, or an int when it is an array.
type Pair struct {
	Key   any
	Value any
}

type frameKind byte

const (
	frameObject frameKind = iota
	frameArray
)

type frameState byte

const (
	stateKeyOrEnd frameState = iota // object: expect a string key, or '}'
	stateColon                      // object: expect ':'
	stateValueOrEnd                 // array: expect a value, or ']'
	stateCommaOrEnd                 // both: expect ',' or the closing bracket
)

type frame struct {
	kind       frameKind
	state      frameState
	afterComma bool
	index      int // array: next element index to assign
	lastKey    string
	isTarget   bool
}

func newFrame(t lexer.TokenType, isTarget bool) frame {
	f := frame{isTarget: isTarget}
	if t == lexer.BeginObject {
		f.kind = frameObject
		f.state = stateKeyOrEnd
	} else {
		f.kind = frameArray
		f.state = stateValueOrEnd
	}
	return f
}

// Driver is the pointer-directed pushdown automaton described in the
// component design: it owns the lexer, the container stack, the active
// path, and the single in-flight raw value buffer.
type Driver struct {
	lex *lexer.Lexer
	ptr pointer.Pointer

	decode DecodeFunc

	stack []frame
	path  []string

	rootSeen bool
	matched  bool
	finished bool

	targetDepth int
	targetKind  frameKind

	childInProgress bool
	childDepth      int
	childKeyStr     string
	childIdx        int
	rawBuf          bytes.Buffer
}

// New creates a Driver that reads JSON tokens from r and yields the direct
// children of the container designated by ptr.
func New(r io.Reader, ptr pointer.Pointer, decode DecodeFunc) *Driver {
	return &Driver{
		lex:    lexer.New(r),
		ptr:    ptr,
		decode: decode,
	}
}

// SetBufSize forwards to the underlying lexer. Must be called before the
// first call to Advance.
func (d *Driver) SetBufSize(n int) {
	d.lex.SetBufSize(n)
}

// SetDebug forwards to the underlying lexer.
func (d *Driver) SetDebug(debug bool) {
	d.lex.SetDebug(debug)
}

func literalByte(t lexer.TokenType) byte {
	switch t {
	case lexer.BeginObject:
		return '{'
	case lexer.EndObject:
		return '}'
	case lexer.BeginArray:
		return '['
	case lexer.EndArray:
		return ']'
	case lexer.Comma:
		return ','
	case lexer.Colon:
		return ':'
	}
	panic("literalByte: not a structural token")
}

func equalPaths(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func decodeKeyString(raw []byte) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("could not decode object key %q: %w", raw, err)
	}
	return s, nil
}

// Advance returns the next pair, or (zero, false, nil) once the target
// container is exhausted, or (zero, false, err) on
// failure. Advance is single-shot: once it has returned false or a
// non-nil error, every subsequent call returns (zero, false, nil).
func (d *Driver) Advance() (Pair, bool, error) {
	if d.finished {
		return Pair{}, false, nil
	}

	for {
		if d.childInProgress {
			tok, err := d.lex.Next()
			if err != nil {
				d.finished = true
				return Pair{}, false, d.translateLexErr(err)
			}

			pair, done, err := d.continueChild(tok)
			if err != nil {
				d.finished = true
				return Pair{}, false, err
			}
			if done {
				return pair, true, nil
			}
			continue
		}

		tok, err := d.lex.Next()
		if err != nil {
			d.finished = true
			if err == io.EOF {
				if !d.matched {
					return Pair{}, false, d.notFoundErr(-1)
				}
				if len(d.stack) > 0 {
					return Pair{}, false, d.translateLexErr(err)
				}
				return Pair{}, false, nil
			}
			return Pair{}, false, d.translateLexErr(err)
		}

		if len(d.stack) == 0 {
			if !d.rootSeen {
				d.rootSeen = true
				if err := d.handleRootToken(tok); err != nil {
					d.finished = true
					return Pair{}, false, err
				}
				if len(d.stack) == 0 && !d.matched {
					continue // root was a scalar; keep reading to confirm a clean EOF
				}
				continue
			}

			d.finished = true
			return Pair{}, false, &Error{
				Kind: KindStructural, Offset: tok.Start,
				Msg: "unexpected trailing data after document",
			}
		}

		top := &d.stack[len(d.stack)-1]

		pair, done, exhausted, err := d.stepFrame(top, tok)
		if err != nil {
			d.finished = true
			return Pair{}, false, err
		}
		if exhausted {
			d.finished = true
			return Pair{}, false, nil
		}
		if len(d.stack) == 0 && !d.matched {
			d.finished = true
			return Pair{}, false, d.notFoundErr(tok.End)
		}
		if done {
			return pair, true, nil
		}
	}
}

// translateLexErr is called only while a container is open: end of stream
// there is a structural error. *lexer.Error / *lexer.IOError pass through;
// jsonptr translates their kinds.
func (d *Driver) translateLexErr(err error) error {
	if err == io.EOF {
		return &Error{
			Kind: KindStructural, Offset: -1,
			Msg: "unexpected end of stream inside an unclosed container",
		}
	}
	return err
}

func (d *Driver) notFoundErr(offset int64) *Error {
	return &Error{
		Kind: KindPointerNotFound, Offset: offset,
		Msg: "stream ended without the pointer matching a container",
	}
}

func (d *Driver) handleRootToken(tok lexer.Token) error {
	isCandidate := d.ptr.Len() == 0

	switch tok.Type {
	case lexer.BeginObject, lexer.BeginArray:
		f := newFrame(tok.Type, isCandidate)
		d.stack = append(d.stack, f)
		if isCandidate {
			d.matched = true
			d.targetDepth = len(d.stack)
			d.targetKind = f.kind
		}
		return nil
	case lexer.Scalar:
		if isCandidate {
			return &Error{
				Kind: KindPointerNotIterable, Offset: tok.Start,
				Msg: "pointer matched a scalar value, not a container",
			}
		}
		return nil
	default:
		return &Error{
			Kind: KindStructural, Offset: tok.Start,
			Msg: fmt.Sprintf("unexpected %q at start of document", tok.Type),
		}
	}
}

// stepFrame advances the per-container expectation state machine for the
// frame currently on top of the stack.
func (d *Driver) stepFrame(f *frame, tok lexer.Token) (pair Pair, done, exhausted bool, err error) {
	switch f.kind {
	case frameObject:
		return d.stepObjectFrame(f, tok)
	default:
		return d.stepArrayFrame(f, tok)
	}
}

func (d *Driver) stepObjectFrame(f *frame, tok lexer.Token) (Pair, bool, bool, error) {
	switch f.state {
	case stateKeyOrEnd:
		switch tok.Type {
		case lexer.EndObject:
			if f.afterComma {
				return Pair{}, false, false, d.structErr(tok, "trailing comma before '}'")
			}
			return d.popFrame()
		case lexer.Scalar:
			if tok.Kind != lexer.ScalarString {
				return Pair{}, false, false, d.structErr(tok, "object key must be a string")
			}
			key, err := decodeKeyString(tok.Raw)
			if err != nil {
				return Pair{}, false, false, &Error{Kind: KindStructural, Offset: tok.Start, Msg: err.Error()}
			}
			f.lastKey = key
			f.state = stateColon
			return Pair{}, false, false, nil
		default:
			return Pair{}, false, false, d.structErr(tok, "expected a string key or '}'")
		}
	case stateColon:
		if tok.Type != lexer.Colon {
			return Pair{}, false, false, d.structErr(tok, "expected ':' after object key")
		}
		f.state = stateCommaOrEnd
		f.afterComma = false
		if f.isTarget {
			d.childKeyStr = f.lastKey
			pair, done, err := d.startChildFromTokenNext()
			return pair, done, false, err
		}
		candidate := append(append([]string{}, d.path...), f.lastKey)
		err := d.resolveValueNext(candidate)
		return Pair{}, false, false, err
	case stateCommaOrEnd:
		switch tok.Type {
		case lexer.Comma:
			f.state = stateKeyOrEnd
			f.afterComma = true
			return Pair{}, false, false, nil
		case lexer.EndObject:
			return d.popFrame()
		default:
			return Pair{}, false, false, d.structErr(tok, "expected ',' or '}'")
		}
	}

	panic("unreachable object frame state")
}

func (d *Driver) stepArrayFrame(f *frame, tok lexer.Token) (Pair, bool, bool, error) {
	switch f.state {
	case stateValueOrEnd:
		if tok.Type == lexer.EndArray {
			if f.afterComma {
				return Pair{}, false, false, d.structErr(tok, "trailing comma before ']'")
			}
			return d.popFrame()
		}

		idx := f.index
		f.index++
		f.state = stateCommaOrEnd
		f.afterComma = false

		if f.isTarget {
			d.childIdx = idx
			pair, done, err := d.startChildFromToken(tok)
			return pair, done, false, err
		}

		candidate := append(append([]string{}, d.path...), strconv.Itoa(idx))
		err := d.resolveValue(tok, candidate)
		return Pair{}, false, false, err
	case stateCommaOrEnd:
		switch tok.Type {
		case lexer.Comma:
			f.state = stateValueOrEnd
			f.afterComma = true
			return Pair{}, false, false, nil
		case lexer.EndArray:
			return d.popFrame()
		default:
			return Pair{}, false, false, d.structErr(tok, "expected ',' or ']'")
		}
	}

	panic("unreachable array frame state")
}

// startChildFromTokenNext and resolveValueNext exist because the object
// path reaches its value-decision only after consuming the colon, at
// which point the value's own token has not been read yet: read it here.
func (d *Driver) startChildFromTokenNext() (Pair, bool, error) {
	tok, err := d.lex.Next()
	if err != nil {
		return Pair{}, false, d.translateLexErr(err)
	}
	return d.startChildFromToken(tok)
}

func (d *Driver) resolveValueNext(candidate []string) error {
	tok, err := d.lex.Next()
	if err != nil {
		return d.translateLexErr(err)
	}
	return d.resolveValue(tok, candidate)
}

// resolveValue handles a value appearing somewhere outside the target:
// either it extends the search (descending into a container) or it is an
// uninteresting scalar, unless its path happens to match the pointer
// exactly while being a scalar, which is a terminal error.
func (d *Driver) resolveValue(tok lexer.Token, candidate []string) error {
	isCandidate := len(candidate) == d.ptr.Len() && equalPaths(candidate, d.ptr.Tokens)

	switch tok.Type {
	case lexer.BeginObject, lexer.BeginArray:
		f := newFrame(tok.Type, isCandidate)
		d.stack = append(d.stack, f)
		d.path = candidate
		if isCandidate {
			d.matched = true
			d.targetDepth = len(d.stack)
			d.targetKind = f.kind
		}
		return nil
	case lexer.Scalar:
		if isCandidate {
			return &Error{
				Kind: KindPointerNotIterable, Offset: tok.Start,
				Msg: "pointer matched a scalar value, not a container",
			}
		}
		return nil
	default:
		return d.structErr(tok, "expected a value")
	}
}

// startChildFromToken begins assembling the raw bytes of one direct child
// of the target container, given the child value's first token (which has
// already been consumed from the lexer).
func (d *Driver) startChildFromToken(tok lexer.Token) (Pair, bool, error) {
	switch tok.Type {
	case lexer.Scalar:
		d.rawBuf.Reset()
		d.rawBuf.Write(tok.Raw)
		return d.finishChild()
	case lexer.BeginObject, lexer.BeginArray:
		d.rawBuf.Reset()
		d.rawBuf.WriteByte(literalByte(tok.Type))
		d.childDepth = 1
		d.childInProgress = true
		d.lex.StartRecording(&d.rawBuf)
		return Pair{}, false, nil
	default:
		return Pair{}, false, d.structErr(tok, "expected a value")
	}
}

func (d *Driver) continueChild(tok lexer.Token) (Pair, bool, error) {
	switch tok.Type {
	case lexer.BeginObject, lexer.BeginArray:
		d.childDepth++
		return Pair{}, false, nil
	case lexer.EndObject, lexer.EndArray:
		d.childDepth--
		if d.childDepth == 0 {
			return d.finishChild()
		}
		return Pair{}, false, nil
	default:
		return Pair{}, false, nil
	}
}

func (d *Driver) finishChild() (Pair, bool, error) {
	d.lex.StopRecording()
	d.childInProgress = false

	raw := append([]byte(nil), d.rawBuf.Bytes()...)

	v, err := d.decode(raw)
	if err != nil {
		return Pair{}, false, &Error{Kind: KindDecode, Offset: -1, Msg: err.Error()}
	}

	top := &d.stack[len(d.stack)-1]
	top.state = stateCommaOrEnd

	var pair Pair
	if d.targetKind == frameObject {
		pair = Pair{Key: d.childKeyStr, Value: v}
	} else {
		pair = Pair{Key: d.childIdx, Value: v}
	}

	return pair, true, nil
}

func (d *Driver) popFrame() (Pair, bool, bool, error) {
	f := d.stack[len(d.stack)-1]
	d.stack = d.stack[:len(d.stack)-1]
	if len(d.path) > 0 {
		d.path = d.path[:len(d.path)-1]
	}

	return Pair{}, false, f.isTarget, nil
}

func (d *Driver) structErr(tok lexer.Token, msg string) *Error {
	return &Error{Kind: KindStructural, Offset: tok.Start, Msg: msg}
}
