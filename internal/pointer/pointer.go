// Package pointer parses JSON Pointer strings (RFC 6901) into the ordered
// list of reference tokens used to resolve a location inside a document.
package pointer

import (
	"fmt"
	"strings"
)

// Pointer is a parsed JSON Pointer: an ordered sequence of decoded
// reference tokens. An empty Pointer denotes the document root.
type Pointer struct {
	Tokens []string
}

// Parse parses s per RFC 6901. The empty string denotes the document root
// and yields a Pointer with no tokens. Any other string must begin with
// '/'; each '/'-separated segment has '~1' replaced with '/' and then
// '~0' replaced with '~', in that order.
func Parse(s string) (Pointer, error) {
	if s == "" {
		return Pointer{}, nil
	}

	if s[0] != '/' {
		return Pointer{}, fmt.Errorf("json pointer syntax: %q does not start with '/'", s)
	}

	segments := strings.Split(s[1:], "/")
	tokens := make([]string, len(segments))

	for i, seg := range segments {
		tokens[i] = unescapeToken(seg)
	}

	return Pointer{Tokens: tokens}, nil
}

func unescapeToken(seg string) string {
	if !strings.Contains(seg, "~") {
		return seg
	}

	seg = strings.ReplaceAll(seg, "~1", "/")
	seg = strings.ReplaceAll(seg, "~0", "~")
	return seg
}

// Len returns the number of reference tokens; 0 for the root pointer.
func (p Pointer) Len() int {
	return len(p.Tokens)
}
