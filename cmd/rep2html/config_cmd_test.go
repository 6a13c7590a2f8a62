package main

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/alnah/go-rep2html/internal/config"
	"github.com/alnah/go-rep2html/internal/yamlutil"
)

// ---------------------------------------------------------------------------
// TestRunConfigCmd - Effective configuration as YAML
// ---------------------------------------------------------------------------

func TestRunConfigCmd(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "rep.yaml", "links:\n  docURL: \"rep-%04d.htm\"\nworkers: 2\n")
	env := newTestEnv()

	if err := runConfigCmd([]string{"-c", path}, env.Environment); err != nil {
		t.Fatalf("runConfigCmd() error = %v", err)
	}

	var got config.Config
	if err := yamlutil.UnmarshalStrict(env.stdout.Bytes(), &got); err != nil {
		t.Fatalf("output is not a valid config: %v\n%s", err, env.stdout.String())
	}
	if got.Links.DocURL != "rep-%04d.htm" || got.Workers != 2 || got.Log.Level != config.LogNormal {
		t.Errorf("printed config = %+v", got)
	}
}

func TestRunConfigCmd_Errors(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	err := runConfigCmd([]string{"-c", filepath.Join(t.TempDir(), "nope.yaml")}, env.Environment)
	if !errors.Is(err, config.ErrConfigNotFound) {
		t.Errorf("error = %v, want ErrConfigNotFound", err)
	}

	err = runConfigCmd([]string{"--nope"}, env.Environment)
	if !errors.Is(err, ErrUsage) {
		t.Errorf("error = %v, want ErrUsage", err)
	}
}
