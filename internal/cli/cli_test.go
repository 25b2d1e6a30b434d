package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/panelprep/panelprep/pkg/config"
)

// chdir changes the working directory for the duration of the test.
// It stands in for t.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}

func newTestCLI() *CLI {
	return New(io.Discard, LogInfo)
}

func TestRootCommandStructure(t *testing.T) {
	root := newTestCLI().RootCommand()

	if root.Use != "panelprep" {
		t.Errorf("Use = %q, want panelprep", root.Use)
	}

	for _, name := range []string{"panelize", "config", "completion"} {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestPanelizeCommandFlags(t *testing.T) {
	cmd := newTestCLI().panelizeCommand()

	for _, name := range []string{"repeat-x", "repeat-y", "config", "mousebites", "keep-work"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("missing flag --%s", name)
		}
	}
	if cmd.Flags().ShorthandLookup("x") == nil || cmd.Flags().ShorthandLookup("y") == nil {
		t.Error("missing -x/-y shorthands")
	}
}

func TestLoadSettingsDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	s, source, err := newTestCLI().loadSettings("")
	if err != nil {
		t.Fatalf("loadSettings error: %v", err)
	}
	if source != "" {
		t.Errorf("source = %q, want empty for built-in defaults", source)
	}
	if s.PanelOptions.PanelWidth != config.Default().PanelOptions.PanelWidth {
		t.Error("defaults not applied")
	}
}

func TestLoadSettingsPicksUpLocalFile(t *testing.T) {
	chdir(t, t.TempDir())
	if err := config.WriteDefault(config.DefaultFilename); err != nil {
		t.Fatal(err)
	}

	_, source, err := newTestCLI().loadSettings("")
	if err != nil {
		t.Fatalf("loadSettings error: %v", err)
	}
	if source != config.DefaultFilename {
		t.Errorf("source = %q, want %q", source, config.DefaultFilename)
	}
}

func TestLoadSettingsExplicitMissing(t *testing.T) {
	_, _, err := newTestCLI().loadSettings(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Error("explicit settings path must load or fail")
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")

	root := newTestCLI().RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"config", "init", "-o", path})

	if err := root.Execute(); err != nil {
		t.Fatalf("config init error: %v", err)
	}

	if _, err := config.Load(path); err != nil {
		t.Errorf("written settings file does not load: %v", err)
	}

	// A second init must refuse to overwrite.
	root = newTestCLI().RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"config", "init", "-o", path})
	if err := root.Execute(); err == nil {
		t.Error("config init overwrote an existing file")
	}
}
