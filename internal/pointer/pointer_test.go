package pointer

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	testcases := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"/", []string{""}},
		{"/foo", []string{"foo"}},
		{"/foo/bar", []string{"foo", "bar"}},
		{"/foo/0", []string{"foo", "0"}},
		{"/a~1b", []string{"a/b"}},
		{"/m~0n", []string{"m~n"}},
		{"/a~01", []string{"a~1"}},
		{"/", []string{""}},
		{"//", []string{"", ""}},
	}

	for _, tc := range testcases {
		got, err := Parse(tc.input)
		if err != nil {
			t.Errorf("Parse(%q): unexpected error: %v", tc.input, err)
			continue
		}
		if tc.want == nil {
			if got.Len() != 0 {
				t.Errorf("Parse(%q): got %v, want empty", tc.input, got.Tokens)
			}
			continue
		}
		if !reflect.DeepEqual(got.Tokens, tc.want) {
			t.Errorf("Parse(%q): got %v, want %v", tc.input, got.Tokens, tc.want)
		}
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	testcases := []string{
		"foo",
		"foo/bar",
		"0",
	}

	for _, input := range testcases {
		if _, err := Parse(input); err == nil {
			t.Errorf("Parse(%q): expected a syntax error, got none", input)
		}
	}
}
