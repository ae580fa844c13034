// Package golden loads txtar test fixtures and compares generated output
// against the expected text they carry.
package golden

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
	"golang.org/x/tools/txtar"
)

var update = flag.Bool("update", false, "rewrite golden files with the generated output")

// Case is one fixture archive.
type Case struct {
	// Name is the archive file name without the .txtar extension.
	Name string

	// Path is the archive location on disk.
	Path string

	Archive *txtar.Archive
}

// Load parses every archive matching pattern, e.g. "testdata/*.txtar".
// The test fails if nothing matches.
func Load(t testing.TB, pattern string) []Case {
	t.Helper()

	paths, err := filepath.Glob(pattern)
	if err != nil {
		t.Fatalf("glob %s: %v", pattern, err)
	}
	if len(paths) == 0 {
		t.Fatalf("no golden files match %s", pattern)
	}

	cases := make([]Case, 0, len(paths))
	for _, path := range paths {
		ar, err := txtar.ParseFile(path)
		if err != nil {
			t.Fatalf("parse %s: %v", path, err)
		}
		cases = append(cases, Case{
			Name:    strings.TrimSuffix(filepath.Base(path), ".txtar"),
			Path:    path,
			Archive: ar,
		})
	}
	return cases
}

// File returns the content of the named file in the archive.
func (c Case) File(name string) ([]byte, bool) {
	for _, f := range c.Archive.Files {
		if f.Name == name {
			return f.Data, true
		}
	}
	return nil, false
}

// MustFile returns the named file or fails the test.
func (c Case) MustFile(t testing.TB, name string) []byte {
	t.Helper()
	data, ok := c.File(name)
	if !ok {
		t.Fatalf("%s: missing file %q", c.Path, name)
	}
	return data
}

// Check compares got with the named file of the archive and reports a line
// diff on mismatch. With -update, the file is rewritten instead.
func (c Case) Check(t testing.TB, name, got string) {
	t.Helper()

	if *update {
		c.set(name, got)
		if err := os.WriteFile(c.Path, txtar.Format(c.Archive), 0644); err != nil {
			t.Fatalf("update %s: %v", c.Path, err)
		}
		return
	}

	want, ok := c.File(name)
	if !ok {
		t.Fatalf("%s: missing file %q (run with -update to create it)", c.Path, name)
	}
	if d := Diff(string(want), got); d != "" {
		t.Errorf("%s: %s mismatch (-want +got):\n%s", c.Path, name, d)
	}
}

func (c Case) set(name, content string) {
	for i := range c.Archive.Files {
		if c.Archive.Files[i].Name == name {
			c.Archive.Files[i].Data = []byte(content)
			return
		}
	}
	c.Archive.Files = append(c.Archive.Files, txtar.File{Name: name, Data: []byte(content)})
}

// Diff returns a line diff of want and got, or "" when they are equal.
// Removed lines are prefixed with "-", added lines with "+".
func Diff(want, got string) string {
	if want == got {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(want, got)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix)
			out.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				out.WriteString("\n")
			}
		}
	}
	return out.String()
}
