package config

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/ava12/rdx/internal/test"
	"github.com/ava12/rdx/parser"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rdx.toml")
	ExpectNoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	ExpectInt(t, parser.DefaultMaxDepth, cfg.Parser.MaxDepth)
	ExpectString(t, TreeIndented, cfg.Output.Tree)
	ExpectBool(t, true, cfg.Output.Color)
	ExpectNoError(t, cfg.Validate())
	ExpectInt(t, 1, len(cfg.ParserOptions()))
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[parser]
start = "list"
step_limit = 100000

[log]
verbosity = 2
file = "rdx.log"

[output]
color = false
tree = "flat"
`)
	cfg, e := Load(path)
	ExpectNoError(t, e)
	ExpectString(t, "list", cfg.Parser.Start)
	ExpectInt(t, parser.DefaultMaxDepth, cfg.Parser.MaxDepth)
	ExpectInt(t, 100000, cfg.Parser.StepLimit)
	ExpectInt(t, 2, cfg.Log.Verbosity)
	ExpectString(t, "rdx.log", cfg.Log.File)
	ExpectBool(t, false, cfg.Output.Color)
	ExpectString(t, TreeFlat, cfg.Output.Tree)
	ExpectInt(t, 2, len(cfg.ParserOptions()))
}

func TestLoadErrors(t *testing.T) {
	samples := []struct {
		content string
		code    int
	}{
		{"[parser\n", DecodeError},
		{"[parser]\nmax_depth = \"deep\"\n", DecodeError},
		{"[parser]\nstart_rule = \"x\"\n", DecodeError},
		{"[parser]\nmax_depth = -1\n", WrongValueError},
		{"[parser]\nstep_limit = -1\n", WrongValueError},
		{"[log]\nverbosity = 9\n", WrongValueError},
		{"[output]\ntree = \"html\"\n", WrongValueError},
	}

	for _, s := range samples {
		_, e := Load(writeConfig(t, s.content))
		ExpectErrorCode(t, s.code, e)
	}

	_, e := Load(filepath.Join(t.TempDir(), "missing.toml"))
	ExpectErrorCode(t, ReadError, e)
}
