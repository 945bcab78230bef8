package parser

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Parser scans AsciiDoc trees into Documents
type Parser struct {
	fs afero.Fs
}

// NewParser creates a parser backed by the real filesystem
func NewParser() *Parser {
	return &Parser{fs: afero.NewOsFs()}
}

// WithFs sets a custom filesystem implementation (useful for testing)
func (p *Parser) WithFs(fs afero.Fs) *Parser {
	p.fs = fs
	return p
}

// ParseDirectory recursively scans every regular file with an .adoc
// extension under dir. Other files and directories are skipped silently;
// traversal errors are fatal. Documents excluded by an include:: directive
// are dropped from the result set.
func (p *Parser) ParseDirectory(dir string) ([]*Document, error) {
	var docs []*Document
	err := afero.Walk(p.fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() || filepath.Ext(path) != ".adoc" {
			return nil
		}
		doc, err := p.ParseFile(path)
		if err != nil {
			return err
		}
		if doc != nil {
			docs = append(docs, doc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// ParseFile scans a single file. It returns (nil, nil) for documents
// excluded by an include:: directive.
func (p *Parser) ParseFile(path string) (*Document, error) {
	file, err := p.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer file.Close()

	return extract(path, file)
}
