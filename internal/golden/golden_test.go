package golden

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name string
		want string
		got  string
		out  string
	}{
		{
			name: "equal",
			want: "a\nb\n",
			got:  "a\nb\n",
			out:  "",
		},
		{
			name: "changed line",
			want: "a\nb\nc\n",
			got:  "a\nB\nc\n",
			out:  "  a\n- b\n+ B\n  c\n",
		},
		{
			name: "added line",
			want: "a\n",
			got:  "a\nb\n",
			out:  "  a\n+ b\n",
		},
		{
			name: "missing trailing newline",
			want: "a\n",
			got:  "a",
			out:  "- a\n+ a\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Diff(tt.want, tt.got); got != tt.out {
				t.Errorf("Diff() = %q, want %q", got, tt.out)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	archive := "-- abi.json --\n{}\n-- want.ts --\ninterface A {\n}\n"
	if err := os.WriteFile(filepath.Join(dir, "empty.txtar"), []byte(archive), 0644); err != nil {
		t.Fatal(err)
	}

	cases := Load(t, filepath.Join(dir, "*.txtar"))
	if len(cases) != 1 {
		t.Fatalf("Load() returned %d cases, want 1", len(cases))
	}
	c := cases[0]
	if c.Name != "empty" {
		t.Errorf("Name = %q, want %q", c.Name, "empty")
	}
	if got := string(c.MustFile(t, "abi.json")); got != "{}\n" {
		t.Errorf("abi.json = %q", got)
	}
	if _, ok := c.File("options.yaml"); ok {
		t.Error("File(options.yaml) found a file that does not exist")
	}
	c.Check(t, "want.ts", "interface A {\n}\n")
}

func TestCase_Set(t *testing.T) {
	c := Case{Archive: &txtar.Archive{}}
	c.set("new.txt", "x")
	data, ok := c.File("new.txt")
	if !ok || strings.TrimSpace(string(data)) != "x" {
		t.Errorf("set did not add file: %q, %v", data, ok)
	}
}
