package lexer

import (
	"strings"
	"testing"

	"io"
)

type wantToken struct {
	typ TokenType
	raw string // only checked for Scalar tokens
}

type lexerTestCase struct {
	input string
	want  []wantToken
}

func runLexer(t *testing.T, input string, bufSize int) ([]wantToken, error) {
	t.Helper()

	l := New(strings.NewReader(input))
	if bufSize > 0 {
		l.SetBufSize(bufSize)
	}

	var got []wantToken
	for {
		tok, err := l.Next()
		if err == io.EOF {
			return got, nil
		}
		if err != nil {
			return got, err
		}

		wt := wantToken{typ: tok.Type}
		if tok.Type == Scalar {
			wt.raw = string(tok.Raw)
		}
		got = append(got, wt)
	}
}

func TestLexer(t *testing.T) {
	testcases := []lexerTestCase{
		{
			input: `{"hello":"world"}`,
			want: []wantToken{
				{BeginObject, ""},
				{Scalar, `"hello"`},
				{Colon, ""},
				{Scalar, `"world"`},
				{EndObject, ""},
			},
		},
		{
			input: `{"a":1,"b":[1,2,3]}`,
			want: []wantToken{
				{BeginObject, ""},
				{Scalar, `"a"`},
				{Colon, ""},
				{Scalar, `1`},
				{Comma, ""},
				{Scalar, `"b"`},
				{Colon, ""},
				{BeginArray, ""},
				{Scalar, `1`},
				{Comma, ""},
				{Scalar, `2`},
				{Comma, ""},
				{Scalar, `3`},
				{EndArray, ""},
				{EndObject, ""},
			},
		},
		{
			input: `[-1, 0, 1.5, 1e10, 1.2e-3, true, false, null]`,
			want: []wantToken{
				{BeginArray, ""},
				{Scalar, `-1`},
				{Comma, ""},
				{Scalar, `0`},
				{Comma, ""},
				{Scalar, `1.5`},
				{Comma, ""},
				{Scalar, `1e10`},
				{Comma, ""},
				{Scalar, `1.2e-3`},
				{Comma, ""},
				{Scalar, `true`},
				{Comma, ""},
				{Scalar, `false`},
				{Comma, ""},
				{Scalar, `null`},
				{EndArray, ""},
			},
		},
		{
			input: `{}`,
			want: []wantToken{
				{BeginObject, ""},
				{EndObject, ""},
			},
		},
		{
			input: `[]`,
			want: []wantToken{
				{BeginArray, ""},
				{EndArray, ""},
			},
		},
		{
			input: `"\"escaped\nquotes\""`,
			want: []wantToken{
				{Scalar, `"\"escaped\nquotes\""`},
			},
		},
		{
			input: `42`,
			want: []wantToken{
				{Scalar, `42`},
			},
		},
	}

	for _, tc := range testcases {
		for _, bufSize := range []int{1, 2, 3, 4, 7, 64, 4096} {
			got, err := runLexer(t, tc.input, bufSize)
			if err != nil {
				t.Errorf("input %q bufSize %d: unexpected error: %v", tc.input, bufSize, err)
				continue
			}

			if len(got) != len(tc.want) {
				t.Errorf("input %q bufSize %d: got %d tokens, want %d: %+v", tc.input, bufSize, len(got), len(tc.want), got)
				continue
			}

			for i, w := range tc.want {
				if got[i].typ != w.typ {
					t.Errorf("input %q bufSize %d: token %d: got type %v, want %v", tc.input, bufSize, i, got[i].typ, w.typ)
				}
				if w.typ == Scalar && got[i].raw != w.raw {
					t.Errorf("input %q bufSize %d: token %d: got raw %q, want %q", tc.input, bufSize, i, got[i].raw, w.raw)
				}
			}
		}
	}
}

func TestLexerFails(t *testing.T) {
	testcases := []string{
		`{"hello":"\u123r"}`,
		`{"hello":"\a"}`,
		`{"hello`,
		`[01]`,
		`[1.]`,
		`[.1]`,
		`truee`,
	}

	for _, input := range testcases {
		_, err := runLexer(t, input, 4)
		if err == nil {
			t.Errorf("input %q: expected an error, got none", input)
		}
	}
}

func TestLexerOffsets(t *testing.T) {
	l := New(strings.NewReader(`{"a":1}`))

	tok, err := l.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Start != 0 || tok.End != 1 {
		t.Errorf("'{': got offsets [%d,%d), want [0,1)", tok.Start, tok.End)
	}

	tok, err = l.Next() // "a"
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Start != 1 || tok.End != 4 {
		t.Errorf(`"a": got offsets [%d,%d), want [1,4)`, tok.Start, tok.End)
	}
}
