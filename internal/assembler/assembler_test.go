package assembler

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/adocdev/caldoc/internal/parser"
)

func date(y uint16, m, d uint8) *parser.Date {
	return &parser.Date{Year: y, Month: m, Day: d}
}

func doc(path string, revdate *parser.Date) *parser.Document {
	return &parser.Document{Path: path, Revdate: revdate}
}

func paths(docs []*parser.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.Path
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSort(t *testing.T) {
	docs := []*parser.Document{
		doc("undated1.adoc", nil),
		doc("mar.adoc", date(2024, 3, 1)),
		doc("may.adoc", date(2024, 5, 1)),
		doc("undated2.adoc", nil),
		doc("jan.adoc", date(2024, 1, 15)),
		doc("old.adoc", date(2019, 12, 31)),
	}

	Sort(docs)

	want := []string{"may.adoc", "mar.adoc", "jan.adoc", "old.adoc", "undated1.adoc", "undated2.adoc"}
	if got := paths(docs); !equal(got, want) {
		t.Errorf("Sort order = %v, want %v", got, want)
	}
}

func TestSortStableOnEqualDates(t *testing.T) {
	docs := []*parser.Document{
		doc("first.adoc", date(2024, 3, 1)),
		doc("second.adoc", date(2024, 3, 1)),
		doc("third.adoc", date(2024, 3, 1)),
	}

	Sort(docs)

	want := []string{"first.adoc", "second.adoc", "third.adoc"}
	if got := paths(docs); !equal(got, want) {
		t.Errorf("Sort order = %v, want %v (stable)", got, want)
	}
}

func TestRangeContains(t *testing.T) {
	r := Range{Start: date(2024, 4, 1), End: date(2024, 12, 31)}

	tests := []struct {
		name string
		d    parser.Date
		want bool
	}{
		{"inside", parser.Date{Year: 2024, Month: 5, Day: 1}, true},
		{"on start bound", parser.Date{Year: 2024, Month: 4, Day: 1}, true},
		{"on end bound", parser.Date{Year: 2024, Month: 12, Day: 31}, true},
		{"before", parser.Date{Year: 2024, Month: 3, Day: 31}, false},
		{"after", parser.Date{Year: 2025, Month: 1, Day: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.d); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	docs := []*parser.Document{
		doc("may.adoc", date(2024, 5, 1)),
		doc("mar.adoc", date(2024, 3, 1)),
		doc("undated.adoc", nil),
	}

	t.Run("inactive range keeps everything", func(t *testing.T) {
		got := Filter(docs, Range{})
		if !equal(paths(got), paths(docs)) {
			t.Errorf("Filter with zero range = %v, want all documents", paths(got))
		}
	})

	t.Run("active range drops undated and out-of-range", func(t *testing.T) {
		r := Range{Start: date(2024, 4, 1), End: date(2024, 12, 31)}
		got := Filter(docs, r)
		if want := []string{"may.adoc"}; !equal(paths(got), want) {
			t.Errorf("Filter = %v, want %v", paths(got), want)
		}
	})

	t.Run("single bound activates filtering", func(t *testing.T) {
		got := Filter(docs, Range{Start: date(2024, 1, 1)})
		if want := []string{"may.adoc", "mar.adoc"}; !equal(paths(got), want) {
			t.Errorf("Filter = %v, want %v", paths(got), want)
		}
	})
}

func TestRender(t *testing.T) {
	docs := []*parser.Document{
		{
			Path:    "src/b.adoc",
			Revdate: date(2024, 5, 1),
			Body:    ":revdate: 2024-05-01\nWorld\n",
		},
		{
			Path:         "src/a.adoc",
			Revdate:      date(2024, 3, 1),
			Body:         ":imagesdir: img\n:imagesdir: src/img\nHello\n",
			HasImagesDir: true,
		},
	}

	var buf bytes.Buffer
	if err := Render(&buf, "= Calendar\n\n", "-- end --\n", docs); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	want := "= Calendar\n\n" +
		"\n\n:leveloffset: +1\n\n" +
		":imagesdir: src\n" +
		":revdate: 2024-05-01\nWorld\n" +
		"\n\n" +
		":imagesdir: img\n:imagesdir: src/img\nHello\n" +
		"\n\n" +
		"\n\n:leveloffset: -1\n\n" +
		"-- end --\n"

	if got := buf.String(); got != want {
		t.Errorf("Render output = %q, want %q", got, want)
	}
}

func TestRenderEmptySet(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, "= Calendar\n\n", "", nil); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	want := "= Calendar\n\n\n\n:leveloffset: +1\n\n\n\n:leveloffset: -1\n\n"
	if got := buf.String(); got != want {
		t.Errorf("Render output = %q, want %q", got, want)
	}
}

func TestWriteFile(t *testing.T) {
	docs := []*parser.Document{
		{Path: "src/a.adoc", Revdate: date(2024, 3, 1), Body: "Hello\n"},
	}

	out := filepath.Join(t.TempDir(), "calendar.adoc")
	if err := WriteFile(out, "= Calendar\n\n", "", docs); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}

	written, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	var buf bytes.Buffer
	if err := Render(&buf, "= Calendar\n\n", "", docs); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	if !bytes.Equal(written, buf.Bytes()) {
		t.Error("WriteFile output differs from Render output")
	}
}
