package openapi

import (
	"go/doc"
	"go/parser"
	"go/token"
	"os"
	"strings"
)

// CommentParser parses Go source files to extract struct documentation
type CommentParser struct {
	TypeDocs map[string]string // Struct Name -> Doc Comment
}

// NewCommentParser creates a new parser
func NewCommentParser() *CommentParser {
	return &CommentParser{
		TypeDocs: make(map[string]string),
	}
}

// ParseDocs parses all Go files in the given directory (non-recursive).
func (cp *CommentParser) ParseDocs(root string) error {
	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, root, func(fi os.FileInfo) bool {
		return true
	}, parser.ParseComments)
	if err != nil {
		return err
	}

	for _, pkg := range pkgs {
		d := doc.New(pkg, root, doc.AllDecls)
		for _, t := range d.Types {
			cp.TypeDocs[t.Name] = strings.TrimSpace(t.Doc)
		}
	}
	return nil
}

// ApplyComments fills in component descriptions from type doc comments found
// under root. Descriptions already present on a schema are kept; comments
// only fill blanks, so compiler-provided descriptions stay authoritative.
func ApplyComments(gen *Generator, root string) error {
	cp := NewCommentParser()
	if err := cp.ParseDocs(root); err != nil {
		return err
	}

	for name, schema := range gen.Spec.Components.Schemas {
		if schema.Description != "" {
			continue
		}
		if doc, ok := cp.TypeDocs[name]; ok {
			schema.Description = doc
		}
	}
	return nil
}
