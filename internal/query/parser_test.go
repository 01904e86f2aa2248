package query

import (
	"reflect"
	"testing"
)

func TestParseLeaves(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  Expr
	}{
		{"single word", "chat", Leaf{Term: "chat"}},
		{"adjacent words merge", "chat noir", Leaf{Term: "chat noir"}},
		{"tag term", "#animal", Leaf{Term: "#animal"}},
		{"collection term", "@Vacances", Leaf{Term: "@Vacances"}},
		{"quoted term keeps quotes", `"chat.jpg"`, Leaf{Term: `"chat.jpg"`}},
		{"empty input", "", Leaf{}},
		{"whitespace only", "   ", Leaf{}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Parse(tc.input); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Parse(%q) = %#v, want %#v", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseOperators(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  Expr
	}{
		{
			"binary and",
			"chat AND chien",
			Node{Op: OpAnd, Children: []Expr{Leaf{Term: "chat"}, Leaf{Term: "chien"}}},
		},
		{
			"n-ary or",
			"a OR b OR c",
			Node{Op: OpOr, Children: []Expr{Leaf{Term: "a"}, Leaf{Term: "b"}, Leaf{Term: "c"}}},
		},
		{
			"unary not",
			"NOT hiver",
			Node{Op: OpNot, Children: []Expr{Leaf{Term: "hiver"}}},
		},
		{
			"infix not",
			"plage NOT hiver",
			Node{Op: OpNot, Children: []Expr{Leaf{Term: "plage"}, Leaf{Term: "hiver"}}},
		},
		{
			"infix not chains left",
			"a NOT b NOT c",
			Node{Op: OpNot, Children: []Expr{
				Node{Op: OpNot, Children: []Expr{Leaf{Term: "a"}, Leaf{Term: "b"}}},
				Leaf{Term: "c"},
			}},
		},
		{
			"lowercase keywords are words",
			"chat and chien",
			Leaf{Term: "chat and chien"},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Parse(tc.input); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Parse(%q) = %#v, want %#v", tc.input, got, tc.want)
			}
		})
	}
}

// NOT binds tighter than AND, which binds tighter than OR.
func TestParsePrecedence(t *testing.T) {
	t.Parallel()

	got := Parse("a OR b AND NOT c")
	want := Node{Op: OpOr, Children: []Expr{
		Leaf{Term: "a"},
		Node{Op: OpAnd, Children: []Expr{
			Leaf{Term: "b"},
			Node{Op: OpNot, Children: []Expr{Leaf{Term: "c"}}},
		}},
	}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse = %#v, want %#v", got, want)
	}

	grouped := Parse("(a OR b) AND c")
	wantGrouped := Node{Op: OpAnd, Children: []Expr{
		Node{Op: OpOr, Children: []Expr{Leaf{Term: "a"}, Leaf{Term: "b"}}},
		Leaf{Term: "c"},
	}}
	if !reflect.DeepEqual(grouped, wantGrouped) {
		t.Fatalf("Parse grouped = %#v, want %#v", grouped, wantGrouped)
	}
}

// Malformed input must produce a deterministic tree, never a failure.
func TestParseMalformed(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  Expr
	}{
		{
			"lone operator",
			"AND",
			Node{Op: OpAnd, Children: []Expr{Leaf{}, Leaf{}}},
		},
		{
			"trailing operator",
			"chat AND",
			Node{Op: OpAnd, Children: []Expr{Leaf{Term: "chat"}, Leaf{}}},
		},
		{
			"leading operator",
			"OR chien",
			Node{Op: OpOr, Children: []Expr{Leaf{}, Leaf{Term: "chien"}}},
		},
		{
			"lone open paren",
			"(",
			Leaf{},
		},
		{
			"unclosed group",
			"(chat OR chien",
			Node{Op: OpOr, Children: []Expr{Leaf{Term: "chat"}, Leaf{Term: "chien"}}},
		},
		{
			"stray close paren falls back to literal",
			"chat )",
			Leaf{Term: "chat )"},
		},
		{
			"unterminated quote swallows rest",
			`"chat et`,
			Leaf{Term: `"chat et"`},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Parse(tc.input); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Parse(%q) = %#v, want %#v", tc.input, got, tc.want)
			}
		})
	}
}
