package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"convlint/internal/source"
	"convlint/internal/token"
)

type TokenOutput struct {
	Kind    string      `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Raw     bool        `json:"raw,omitempty"`
	Span    source.Span `json:"span"`
	Line    uint32      `json:"line"`
	Col     uint32      `json:"col"`
	Leading []string    `json:"leading,omitempty"`
}

func tokenOutputs(tokens []token.Token, fs *source.FileSet) []TokenOutput {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		start, _ := fs.Resolve(tok.Span)
		o := TokenOutput{Kind: tok.Kind.String(), Text: tok.Text, Raw: tok.Raw, Span: tok.Span, Line: start.Line, Col: start.Col}
		for _, tr := range tok.Leading {
			o.Leading = append(o.Leading, tr.Kind.String())
		}
		out = append(out, o)
		if tok.Kind == token.EOF {
			break
		}
	}
	return out
}

// FormatTokensPretty выводит токены по одному в строке:
// номер, вид, текст, позиция и ведущие trivia.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, o := range tokenOutputs(tokens, fs) {
		text := ""
		if o.Text != "" {
			text = fmt.Sprintf(" %q", o.Text)
			if o.Raw {
				text = " r#" + text[1:]
			}
		}
		leading := ""
		if len(o.Leading) > 0 {
			leading = " (leading: " + strings.Join(o.Leading, ", ") + ")"
		}
		if _, err := fmt.Fprintf(w, "%4d: %-12s%s at %d:%d%s\n", i+1, o.Kind, text, o.Line, o.Col, leading); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(tokenOutputs(tokens, fs))
}
