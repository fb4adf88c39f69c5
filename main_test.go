package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := RootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cartpoleql.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConfigCommand(t *testing.T) {
	path := writeConfig(t, "agent:\n  epsilon: 0.25\n")

	out, err := execute(t, "config", "--config", path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"environment:", "m_cart:", "epsilon: 0.25",
		"max_episode_steps:"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func TestTrainCommand(t *testing.T) {
	path := writeConfig(t, `
experiment:
  episodes: 4
  max_episode_steps: 100
  repetitions: 2
  seed: 3
logging:
  level: error
`)

	out, err := execute(t, "train", "-c", path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"experiment 0:", "experiment 1:"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func TestTrainInvalidConfig(t *testing.T) {
	path := writeConfig(t, "experiment:\n  repetitions: 0\n")
	if _, err := execute(t, "train", "-c", path, "--no-progress"); err == nil {
		t.Error("expected an error for an invalid configuration")
	}
}
