package parser

import (
	"reflect"
	"testing"
)

func TestParseValidInputs(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  *Command
	}{
		{
			name:  "simple command",
			input: "ls -la",
			want: &Command{
				Procs:      []*ProcessSpec{{Argv: []string{"ls", "-la"}}},
				Foreground: true,
			},
		},
		{
			name:  "output redirection",
			input: "echo hi > out",
			want: &Command{
				Procs:      []*ProcessSpec{{Argv: []string{"echo", "hi"}, RedirOut: "out"}},
				Foreground: true,
			},
		},
		{
			name:  "pipeline with input and stderr redirection, background",
			input: "cat < in | grep x 2> err &",
			want: &Command{
				Procs: []*ProcessSpec{
					{Argv: []string{"cat"}, RedirIn: "in"},
					{Argv: []string{"grep", "x"}, RedirErr: "err"},
				},
				Foreground: false,
			},
		},
		{
			name:  "quoted string with embedded space",
			input: `echo "hello world"`,
			want: &Command{
				Procs:      []*ProcessSpec{{Argv: []string{"echo", "hello world"}}},
				Foreground: true,
			},
		},
		{
			name:  "mixed quoted and bare run is one token",
			input: `echo foo'bar baz'qux`,
			want: &Command{
				Procs:      []*ProcessSpec{{Argv: []string{"echo", "foobar bazqux"}}},
				Foreground: true,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tc.input, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Parse(%q) = %+v, want %+v", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	cases := []string{
		"",
		"| ls",
		"ls | ",
		"> out",
		"ls >",
		"ls | | ls",
		"ls_foo", // underscore is outside the STRING character class
		"ls #",
	}

	for _, input := range cases {
		if _, err := Parse(input); err != ErrSyntax {
			t.Errorf("Parse(%q) = %v, want ErrSyntax", input, err)
		}
	}
}

// Redirection last-writer-wins: a later redirection of the same kind
// overrides an earlier one.
func TestRedirectionLastWriterWins(t *testing.T) {
	cmd, err := Parse("cmd > a > b")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got := cmd.Procs[0].RedirOut; got != "b" {
		t.Fatalf("RedirOut = %q, want %q", got, "b")
	}
}

// Parser round-trip: for any input that parses successfully, formatting
// the AST and re-parsing it must yield a structurally equal AST.
func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"ls -la",
		"echo hi > out",
		"cat < in | grep x 2> err &",
		"a | b | c",
	}

	for _, input := range inputs {
		cmd, err := Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", input, err)
		}
		reparsed, err := Parse(Format(cmd))
		if err != nil {
			t.Fatalf("re-parsing Format(Parse(%q)) failed: %v", input, err)
		}
		if !reflect.DeepEqual(cmd, reparsed) {
			t.Fatalf("round trip mismatch for %q: %+v != %+v", input, cmd, reparsed)
		}
	}
}
