package assembler

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/natefinch/atomic"

	"github.com/adocdev/caldoc/internal/parser"
)

// Range is an inclusive revdate window. The zero value keeps every document,
// dated or not. Setting either bound activates filtering, which also drops
// undated documents.
type Range struct {
	Start *parser.Date
	End   *parser.Date
}

// Active reports whether any bound was set
func (r Range) Active() bool {
	return r.Start != nil || r.End != nil
}

// Contains reports whether d falls inside the window, both bounds inclusive
func (r Range) Contains(d parser.Date) bool {
	if r.Start != nil && d.Compare(*r.Start) < 0 {
		return false
	}
	if r.End != nil && d.Compare(*r.End) > 0 {
		return false
	}
	return true
}

// Sort orders docs by revdate, newest first, with undated documents after
// all dated ones. The sort is stable, so equal dates keep traversal order.
func Sort(docs []*parser.Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		a, b := docs[i].Revdate, docs[j].Revdate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Compare(*b) > 0
		}
	})
}

// Filter applies r to docs. An inactive range returns docs unchanged.
func Filter(docs []*parser.Document, r Range) []*parser.Document {
	if !r.Active() {
		return docs
	}
	var kept []*parser.Document
	for _, doc := range docs {
		if doc.Revdate != nil && r.Contains(*doc.Revdate) {
			kept = append(kept, doc)
		}
	}
	return kept
}

// Render writes the merged document: header, a leveloffset bracket so each
// constituent document's headings drop one level, the document bodies
// separated by blank lines, then footer. A document that never declared an
// imagesdir gets one injected pointing at its own directory so relative
// image references still resolve.
func Render(w io.Writer, header, footer string, docs []*parser.Document) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(header)
	bw.WriteString("\n\n:leveloffset: +1\n\n")

	for _, doc := range docs {
		if !doc.HasImagesDir {
			parent := filepath.ToSlash(filepath.Dir(doc.Path))
			fmt.Fprintf(bw, ":imagesdir: %s\n", parent)
		}
		bw.WriteString(doc.Body)
		bw.WriteString("\n\n")
	}

	bw.WriteString("\n\n:leveloffset: -1\n\n")
	bw.WriteString(footer)

	return bw.Flush()
}

// WriteFile renders to memory and persists the result atomically, so a
// failed run never leaves a truncated output file behind. Path "-" streams
// to stdout instead.
func WriteFile(path, header, footer string, docs []*parser.Document) error {
	var buf bytes.Buffer
	if err := Render(&buf, header, footer, docs); err != nil {
		return err
	}

	if path == "-" {
		_, err := os.Stdout.Write(buf.Bytes())
		return err
	}

	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
