package driver

import (
	"context"

	"convlint/internal/ast"
	"convlint/internal/diag"
	"convlint/internal/lexer"
	"convlint/internal/source"
	"convlint/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes one file up to and including EOF.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return &TokenizeResult{FileSet: fs, File: file, Tokens: tokens, Bag: bag}, nil
}

type DeclsResult struct {
	FileSet *source.FileSet
	File    *source.File
	AST     *ast.File
	Diags   []diag.Diagnostic
}

// ParseDecls parses one file with the given front end.
func ParseDecls(ctx context.Context, path string, frontend Frontend) (*DeclsResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	f, diags, err := ParseOne(ctx, file, frontend, 0)
	if err != nil {
		return nil, err
	}
	return &DeclsResult{FileSet: fs, File: file, AST: f, Diags: diags}, nil
}
