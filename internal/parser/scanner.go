package parser

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

const (
	revdatePrefix   = ":revdate: "
	imagesDirPrefix = ":imagesdir: "
	includePrefix   = "include::"

	bom = "\xef\xbb\xbf"
)

// Document is one successfully scanned source file.
type Document struct {
	Path         string
	Revdate      *Date // nil means undated
	Body         string
	HasImagesDir bool
}

// commentState tracks the AsciiDoc comment regions a scan can be inside of:
// //// block comments and [comment] sections with an optional nested
// -- delimited block. The flags are independent; either suppresses a line.
type commentState struct {
	block        bool
	section      bool
	sectionBlock bool
}

// observe applies the state transitions for one trimmed line and reports
// whether that line is live for metadata purposes, evaluated after the
// transitions. A marker line that closes a region counts as live, which is
// harmless: marker lines carry no directives.
func (s *commentState) observe(line string) bool {
	if line == "////" {
		s.block = !s.block
	} else if line == "[comment]" {
		s.section = true
	} else if s.section {
		if line == "--" {
			if !s.sectionBlock {
				s.sectionBlock = true
			} else {
				s.sectionBlock = false
				s.section = false
			}
		} else if line == "" && !s.sectionBlock {
			s.section = false
		}
	}
	return !s.block && !s.section
}

// extract scans one document line by line, collecting the first live
// :revdate:, any live :imagesdir: directives and the reconstructed body.
// It returns (nil, nil) for documents that use include::, which are
// excluded from aggregation entirely.
func extract(path string, r io.Reader) (*Document, error) {
	doc := &Document{Path: path}
	var body strings.Builder
	var state commentState

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	ln := 0
	for ; scanner.Scan(); ln++ {
		raw := scanner.Text()
		line := strings.TrimSpace(raw)

		live := state.observe(line)

		var imagesDir string
		var hasImagesDir bool
		if live {
			if strings.HasPrefix(line, includePrefix) {
				return nil, nil
			}

			if doc.Revdate == nil {
				d, found, err := ParseDateWithPrefix(line, revdatePrefix)
				if err != nil {
					return nil, fmt.Errorf("%s:%d: %w", path, ln+1, err)
				}
				if found {
					doc.Revdate = &d
				}
			}

			imagesDir, hasImagesDir = strings.CutPrefix(line, imagesDirPrefix)
		}

		// The BOM check runs on every physical line, not just the first.
		// Compatibility quirk, kept on purpose.
		body.WriteString(strings.TrimPrefix(raw, bom))
		body.WriteByte('\n')

		if hasImagesDir {
			doc.HasImagesDir = true
			if rewritten, ok := rewriteImagesDir(path, imagesDir); ok {
				body.WriteString(imagesDirPrefix)
				body.WriteString(rewritten)
				body.WriteByte('\n')
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s:%d: %w", path, ln+1, err)
	}

	doc.Body = body.String()
	return doc, nil
}

// rewriteImagesDir resolves a relative imagesdir against the document's
// parent directory so image references still work from the merged output.
// Absolute paths and URLs are left as the author wrote them.
func rewriteImagesDir(docPath, dir string) (string, bool) {
	if filepath.IsAbs(dir) ||
		strings.HasPrefix(dir, "http://") ||
		strings.HasPrefix(dir, "https://") {
		return "", false
	}
	return filepath.ToSlash(filepath.Join(filepath.Dir(docPath), dir)), true
}
