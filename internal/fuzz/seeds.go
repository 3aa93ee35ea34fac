// Package fuzztests holds fuzz harnesses for the source -> lexer -> parser
// path and the case converter. They guard against panics, runaway loops and
// declaration spans that do not match the input.
package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10
	maxFuzzInput = 1 << 16
)

var inlineSeeds = []string{
	"",
	"struct foo_bar;\n",
	"#![allow(non_camel_case_types)]\nenum e { a_b, C(u8) }\n",
	"#[repr(C)]\nstruct c_type { x: i32 }\n",
	"trait t { type assoc_t; fn f<T, u_v: Copy>(); }\n",
	"mod m { #[deny(nonstandard_style)] type alias_t<'a, x_y = ()> = &'a x_y; }\n",
	"struct r#raw_name;\nunion U { a: u32 }\n",
	"impl<t> X<t> { fn g() { struct inner_t; } }\n",
	"#[allow(\nstruct broken\n",
	"struct Ünïcödé_ñame;\n",
	"/* unterminated\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	root := filepath.Join("..", "..", "testdata")
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".rs" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
