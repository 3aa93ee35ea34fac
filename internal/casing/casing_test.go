package casing

import (
	"strings"
	"testing"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		in      string
		want    string // "" means the identifier conforms
		acronym AcronymPolicy
	}{
		{"ONE_TWO_THREE", "OneTwoThree", AcronymsPreserve},
		{"foo", "Foo", AcronymsPreserve},
		{"foo2", "Foo2", AcronymsPreserve},
		{"foo3", "Foo3", AcronymsPreserve},
		{"foo4", "Foo4", AcronymsPreserve},
		{"bar", "Bar", AcronymsPreserve},
		{"foo6", "Foo6", AcronymsPreserve},
		{"ty", "Ty", AcronymsPreserve},
		{"X86__64", "X86_64", AcronymsPreserve},
		{"Abc_123", "Abc123", AcronymsPreserve},
		{"A1_b2_c3", "A1B2C3", AcronymsPreserve},
		{"snake_case_name", "SnakeCaseName", AcronymsPreserve},
		{"camelCase", "CamelCase", AcronymsPreserve},
		{"_foo", "_Foo", AcronymsPreserve},
		{"foo_", "Foo_", AcronymsPreserve},
		{"__foo_bar__", "__FooBar__", AcronymsPreserve},
		{"X86_64", "", AcronymsPreserve},
		{"Foo5", "", AcronymsPreserve},
		{"T", "", AcronymsPreserve},
		{"ID", "", AcronymsPreserve},
		{"IOError", "", AcronymsPreserve},
		{"HTTPServer", "", AcronymsPreserve},
		{"_", "", AcronymsPreserve},
		{"__", "", AcronymsPreserve},
		{"_1", "", AcronymsPreserve},
		{"ID", "Id", AcronymsFold},
		{"IOError", "IoError", AcronymsFold},
		{"HTTPServer", "HttpServer", AcronymsFold},
		{"io_error", "IoError", AcronymsFold},
		{"OneTwo", "", AcronymsFold},
		{"école", "École", AcronymsPreserve},
		{"ǆemal", "ǅemal", AcronymsPreserve},
		{"中文", "", AcronymsPreserve},
		{"中_1", "中1", AcronymsPreserve},
		{"x_y1_2", "XY1_2", AcronymsPreserve},
		{"XY1_2", "", AcronymsPreserve},
		{"aA0_0", "AA0_0", AcronymsPreserve},
		{"AA0_0", "", AcronymsPreserve},
		{"aB2_3", "AB2_3", AcronymsPreserve},
		{"x_y1_2", "Xy1_2", AcronymsFold},
		{"A1_b2_c3", "A1B2C3", AcronymsFold},
		{"A1B2C3", "", AcronymsFold},
		{"aA0_0", "Aa0_0", AcronymsFold},
	}
	for _, tt := range tests {
		t.Run(tt.acronym.String()+"/"+tt.in, func(t *testing.T) {
			got := Convert(tt.in, Policy{Acronyms: tt.acronym})
			if tt.want == "" {
				if !got.Conforms || got.HasRewrite {
					t.Fatalf("Convert(%q) = %+v, want conforming", tt.in, got)
				}
				return
			}
			if got.Conforms || !got.HasRewrite || got.Rewritten != tt.want {
				t.Fatalf("Convert(%q) = %+v, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestUnrenderableSuggestion(t *testing.T) {
	got := Convert("中_文", Policy{})
	if got.Conforms || got.HasRewrite {
		t.Fatalf("Convert(中_文) = %+v, want finding without rewrite", got)
	}
}

func TestWords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"IOError", []string{"IO", "Error"}},
		{"fooBar", []string{"foo", "Bar"}},
		{"fooBAR", []string{"foo", "BAR"}},
		{"A1b2", []string{"A1b2"}},
		{"ID", []string{"ID"}},
		{"aIo", []string{"a", "Io"}},
	}
	for _, tt := range tests {
		got := words(tt.in)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("words(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

var propertyInputs = []string{
	"ONE_TWO_THREE", "foo", "foo2", "X86__64", "Abc_123", "A1_b2_c3", "a_IO",
	"foo_BAR", "_x_y_", "IOError", "io__error_", "v1_2_3", "Ab_Cd", "x_9", "__a__b__",
	"fooBAR_baz", "HTTP_server", "A_B_C", "a1_1a", "ǆ_ǆ", "x_y1_2", "aA0_0", "aB2_3",
	"XY1_2", "AA0_0", "A1B2C3", "ß_x",
}

// Rewrites conform, and conforming names are fixed points.
func TestRewriteIsFixedPoint(t *testing.T) {
	for _, pol := range []AcronymPolicy{AcronymsPreserve, AcronymsFold} {
		p := Policy{Acronyms: pol}
		for _, in := range propertyInputs {
			r := Convert(in, p)
			if !r.HasRewrite {
				continue
			}
			again := Convert(r.Rewritten, p)
			if !again.Conforms {
				t.Errorf("%s: Convert(%q) = %q which converts again to %+v", pol, in, r.Rewritten, again)
			}
		}
	}
}

func TestUnderscoresPreserved(t *testing.T) {
	for _, in := range propertyInputs {
		r := Convert(in, Policy{})
		if !r.HasRewrite {
			continue
		}
		lead := len(in) - len(strings.TrimLeft(in, "_"))
		trail := len(in) - len(strings.TrimRight(in, "_"))
		if !strings.HasPrefix(r.Rewritten, strings.Repeat("_", lead)) ||
			!strings.HasSuffix(r.Rewritten, strings.Repeat("_", trail)) {
			t.Errorf("Convert(%q) = %q lost leading/trailing underscores", in, r.Rewritten)
		}
	}
}

// A digit-digit join gets exactly one underscore; nothing else gets any.
func TestDigitJoinSeparator(t *testing.T) {
	tests := []struct{ in, want string }{
		{"a1__2b", "A1_2b"},
		{"a1_b2", "A1B2"},
		{"a_1", "A1"},
		{"a1_1_1", "A1_1_1"},
	}
	for _, tt := range tests {
		if got := Convert(tt.in, Policy{}); got.Rewritten != tt.want {
			t.Errorf("Convert(%q) = %q, want %q", tt.in, got.Rewritten, tt.want)
		}
	}
}

func TestParseAcronymPolicy(t *testing.T) {
	if p, ok := ParseAcronymPolicy("FOLD"); !ok || p != AcronymsFold {
		t.Fatalf("fold not parsed")
	}
	if _, ok := ParseAcronymPolicy("camel"); ok {
		t.Fatalf("unknown policy accepted")
	}
}
