package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/ava12/rdx/internal/test"
)

const listGrammar = `
start: list
rules:
  list:
    seq:
      - lit: "("
      - cut: true
      - many: {alt: [item, list]}
      - lit: ")"
  item:
    some: {range: [a, z]}
`

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		ExpectNoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(&app{})
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	e := cmd.Execute()
	return out.String(), e
}

func TestCheck(t *testing.T) {
	dir := writeFiles(t, map[string]string{"list.yaml": listGrammar, "bad.yaml": "rules: {a: b}"})

	out, e := run(t, "check", filepath.Join(dir, "list.yaml"))
	ExpectNoError(t, e)
	Assert(t, strings.Contains(out, "ok, 2 rules, start rule list"), "unexpected output: %q", out)

	out, e = run(t, "check", "--dump", filepath.Join(dir, "list.yaml"))
	ExpectNoError(t, e)
	Assert(t, strings.Contains(out, "item = #"), "no dump in output: %q", out)

	_, e = run(t, "check", filepath.Join(dir, "bad.yaml"))
	Assert(t, e != nil, "expecting error for bad grammar")
}

func TestParse(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"list.yaml": listGrammar,
		"good.txt":  "(ab(c)())",
		"bad.txt":   "(ab(c)",
	})
	grammarFile := filepath.Join(dir, "list.yaml")

	out, e := run(t, "parse", grammarFile, filepath.Join(dir, "good.txt"))
	ExpectNoError(t, e)
	Assert(t, strings.Contains(out, "ok, 5 tree entries"), "unexpected output: %q", out)

	out, e = run(t, "parse", grammarFile, filepath.Join(dir, "good.txt"), filepath.Join(dir, "bad.txt"))
	Assert(t, e != nil && strings.Contains(e.Error(), "1 of 2 files failed"), "unexpected error: %v", e)
	Assert(t, strings.Contains(out, "unexpected end of input"), "no failure in output: %q", out)

	_, e = run(t, "parse", "--start", "item", grammarFile, filepath.Join(dir, "good.txt"))
	Assert(t, e != nil, "expecting failure for item start rule")
}

func TestTree(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"list.yaml": listGrammar,
		"input.txt": "(ab(c))",
		"bad.txt":   "(ab(c)",
	})
	grammarFile := filepath.Join(dir, "list.yaml")

	out, e := run(t, "tree", grammarFile, filepath.Join(dir, "input.txt"))
	ExpectNoError(t, e)
	expected := `list [0:7] "(ab(c))"
  item [1:3] "ab"
  list [3:6] "(c)"
    item [4:5] "c"
`
	ExpectString(t, expected, out)

	out, e = run(t, "tree", "-f", "flat", grammarFile, filepath.Join(dir, "input.txt"))
	ExpectNoError(t, e)
	ExpectString(t, "0\t0\tlist\t0\t7\n1\t1\titem\t1\t3\n2\t1\tlist\t3\t6\n3\t2\titem\t4\t5\n", out)

	out, e = run(t, "tree", grammarFile, filepath.Join(dir, "bad.txt"))
	Assert(t, e != nil, "expecting failure")
	Assert(t, strings.Contains(out, "list [0:6] \"(ab(c)\"\n"), "interrupted entry not shown: %q", out)

	_, e = run(t, "tree", "-f", "html", grammarFile, filepath.Join(dir, "input.txt"))
	Assert(t, e != nil, "expecting format error")
}

func TestConfigFile(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"list.yaml": listGrammar,
		"input.txt": "(ab)",
		"rdx.toml":  "[parser]\nstart = \"item\"\n\n[output]\ntree = \"flat\"\n",
		"bad.toml":  "[parser]\nmax_depth = -5\n",
	})

	out, e := run(t, "--config", filepath.Join(dir, "rdx.toml"), "tree", "-s", "list",
		filepath.Join(dir, "list.yaml"), filepath.Join(dir, "input.txt"))
	ExpectNoError(t, e)
	ExpectString(t, "0\t0\tlist\t0\t4\n1\t1\titem\t1\t3\n", out)

	_, e = run(t, "--config", filepath.Join(dir, "bad.toml"), "check", filepath.Join(dir, "list.yaml"))
	Assert(t, e != nil, "expecting config error")
}

func TestExcerpt(t *testing.T) {
	ExpectString(t, `"abc"`, excerpt([]byte("abc")))
	long := strings.Repeat("x", 31) + "Жy"
	ExpectString(t, `"`+strings.Repeat("x", 31)+`"...`, excerpt([]byte(long)))
}
