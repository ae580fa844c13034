package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/broady/abi2ts/cmd/abi2ts/internal/console"
)

const transferABI = `{
	"version": "eosio::abi/1.0",
	"types": [{"new_type_name": "account_name", "type": "name"}],
	"structs": [{"name": "transfer", "base": "", "fields": [
		{"name": "from", "type": "account_name"},
		{"name": "to", "type": "account_name"},
		{"name": "quantity", "type": "asset"},
		{"name": "memo", "type": "string"},
		{"name": "amount_raw", "type": "uint64"}
	]}]
}`

func runCLI(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	streams := console.Streams{In: strings.NewReader(stdin), Out: &out, Err: &errOut}
	code = run(context.Background(), args, streams)
	return code, out.String(), errOut.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGen_StdinToStdout(t *testing.T) {
	code, stdout, stderr := runCLI(t, transferABI, "gen")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}

	want := "interface Transfer {\n" +
		"    From: string;\n" +
		"    To: string;\n" +
		"    Quantity: string;\n" +
		"    Memo: string;\n" +
		"    AmountRaw: number | string;\n" +
		"}\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestGen_DefaultCommand(t *testing.T) {
	code, stdout, stderr := runCLI(t, transferABI, "-e")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	if !strings.HasPrefix(stdout, "export interface Transfer {\n") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestGen_Flags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		first string
		field string
	}{
		{"camel", []string{"gen", "-c"}, "interface transfer {", "    from: string;"},
		{"snake", []string{"gen", "--snake-case"}, "interface transfer {", "    from: string;"},
		{"pascal prefix", []string{"gen", "-a", "-p", "Eos"}, "interface EosTransfer {", "    EosFrom: string;"},
		{"indent", []string{"gen", "-n", "2"}, "interface Transfer {", "  From: string;"},
		{"tabs", []string{"gen", "-t", "-n", "1"}, "interface Transfer {", "\tFrom: string;"},
		{"export", []string{"gen", "-e"}, "export interface Transfer {", "    From: string;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, transferABI, tt.args...)
			if code != 0 {
				t.Fatalf("exit code = %d, stderr = %s", code, stderr)
			}
			lines := strings.Split(stdout, "\n")
			if lines[0] != tt.first || lines[1] != tt.field {
				t.Errorf("output starts %q, %q; want %q, %q", lines[0], lines[1], tt.first, tt.field)
			}
		})
	}
}

func TestGen_Extensions(t *testing.T) {
	code, stdout, stderr := runCLI(t, transferABI, "gen",
		"--type-mapping", "uint64=bigint",
		"--emit-aliases",
		"--header", "Code generated by abi2ts. DO NOT EDIT.")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	if !strings.HasPrefix(stdout, "// Code generated by abi2ts. DO NOT EDIT.\n\n") {
		t.Errorf("missing header: %q", stdout)
	}
	if !strings.Contains(stdout, "    AmountRaw: bigint;\n") {
		t.Errorf("type mapping not applied: %q", stdout)
	}
	if !strings.HasSuffix(stdout, "\ntype AccountName = string;\n") {
		t.Errorf("alias not emitted: %q", stdout)
	}
}

func TestGen_NamingFlagsAreExclusive(t *testing.T) {
	code, stdout, stderr := runCLI(t, transferABI, "gen", "-a", "-c")
	if code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	if !strings.Contains(stderr, "error:") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestGen_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"invalid json", "{", "malformed ABI document"},
		{"missing version", `{"structs": []}`, "missing required Version"},
		{"unknown type", `{"version": "v", "structs": [{"name": "a", "fields": [{"name": "x", "type": "nope"}]}]}`, `unknown type "nope"`},
		{"cyclic alias", `{"version": "v", "types": [{"new_type_name": "a", "type": "a"}], "variants": [{"name": "v", "types": ["a"]}]}`, "cyclic alias: a -> a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, tt.input, "gen")
			if code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
			if stdout != "" {
				t.Errorf("partial output written: %q", stdout)
			}
			if !strings.Contains(stderr, "error: ") || !strings.Contains(stderr, tt.want) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.want)
			}
		})
	}
}

func TestGen_Files(t *testing.T) {
	input := writeFile(t, "token.abi", transferABI)
	output := filepath.Join(t.TempDir(), "token.ts")

	code, stdout, stderr := runCLI(t, "", "gen", "-i", input, output)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	if !strings.Contains(stderr, "wrote 1 structs") {
		t.Errorf("stderr = %q", stderr)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "interface Transfer {\n") {
		t.Errorf("output file = %q", data)
	}
}

func TestGen_EmptyOutputTruncatesFile(t *testing.T) {
	output := writeFile(t, "out.ts", "interface Stale {}\n")

	code, _, stderr := runCLI(t, `{"version": "eosio::abi/1.1"}`, "gen", output)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 0 {
		t.Errorf("output file = %q, want empty", data)
	}
}

func TestGen_ErrorWritesNoFile(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.ts")
	code, _, _ := runCLI(t, `{"version": "v", "structs": [{"name": "a", "base": "missing"}]}`, "gen", output)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Errorf("output file exists after failed generation")
	}
}

func TestConfigFile(t *testing.T) {
	config := writeFile(t, "abi2ts.yaml", `
naming: camel
indent: 2
type_mappings:
  uint64: bigint
gen:
  export: true
`)

	code, stdout, stderr := runCLI(t, transferABI, "--config", config, "gen")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	want := "export interface transfer {\n" +
		"  from: string;\n" +
		"  to: string;\n" +
		"  quantity: string;\n" +
		"  memo: string;\n" +
		"  amountRaw: bigint;\n" +
		"}\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestConfigFile_CommandLineWins(t *testing.T) {
	config := writeFile(t, "abi2ts.yaml", "naming: snake\nindent: 8\n")

	code, stdout, stderr := runCLI(t, transferABI, "--config", config, "gen", "-a", "-n", "1")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	if !strings.HasPrefix(stdout, "interface Transfer {\n From: string;\n") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestConfigFile_Invalid(t *testing.T) {
	config := writeFile(t, "abi2ts.yaml", "naming: [camel\n")

	code, _, stderr := runCLI(t, transferABI, "--config", config, "gen")
	if code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
	if !strings.Contains(stderr, "error:") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestCheck(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		code, _, stderr := runCLI(t, transferABI, "check")
		if code != 0 {
			t.Fatalf("exit code = %d, stderr = %s", code, stderr)
		}
		if !strings.Contains(stderr, "All types resolvable") {
			t.Errorf("stderr = %q", stderr)
		}
	})

	t.Run("problems", func(t *testing.T) {
		doc := `{
			"version": "v",
			"structs": [{"name": "row", "fields": [{"name": "id", "type": "uint64"}]}],
			"tables": [{"name": "rows", "type": "rw", "index_type": "i64"}],
			"actions": [{"name": "act", "type": "act_args"}]
		}`
		path := writeFile(t, "bad.abi", doc)

		code, _, stderr := runCLI(t, "", "check", path)
		if code != 1 {
			t.Errorf("exit code = %d, want 1", code)
		}
		for _, want := range []string{`table rows: unknown type "rw"`, `action act: unknown type "act_args"`, "2 unresolvable declarations"} {
			if !strings.Contains(stderr, want) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, want)
			}
		}
	})
}

func TestVersion(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "version")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if got := strings.TrimSpace(stdout); got != Version() {
		t.Errorf("version = %q, want %q", got, Version())
	}
}

func TestFlagValue(t *testing.T) {
	tests := []struct {
		in   any
		want any
	}{
		{nil, nil},
		{true, "true"},
		{uint64(2), "2"},
		{"camel", "camel"},
		{map[string]any{"uint64": "bigint", "int64": "bigint"}, "int64=bigint;uint64=bigint"},
		{[]any{"a", "b"}, "a,b"},
	}
	for _, tt := range tests {
		if got := flagValue(tt.in); got != tt.want {
			t.Errorf("flagValue(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
