package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if cfg.DefaultRemote != "origin" || cfg.DefaultBase != "master" {
		t.Errorf("remote/base = %q/%q", cfg.DefaultRemote, cfg.DefaultBase)
	}
	if !cfg.Diff.IgnoreWhitespace {
		t.Error("diff.ignore_whitespace should default to true")
	}
	if cfg.UI.Theme != DefaultTheme {
		t.Errorf("ui.theme = %q", cfg.UI.Theme)
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name    string
		content string // empty = no file
		want    func(Config) Config
		wantErr string
	}{
		{name: "missing file", want: func(c Config) Config { return c }},
		{
			name:    "partial file keeps defaults",
			content: "[diff]\nword_diff = true\n",
			want: func(c Config) Config {
				c.Diff.WordDiff = true
				return c
			},
		},
		{
			name:    "full file",
			content: "git_binary = \"~/bin/git\"\ndefault_remote = \"upstream\"\ndefault_base = \"main\"\n[diff]\nignore_whitespace = false\n[status]\nfull_path = true\n[ui]\ntheme = \"dracula\"\n",
			want: func(c Config) Config {
				c.GitBinary = filepath.Join(home, "bin/git")
				c.DefaultRemote = "upstream"
				c.DefaultBase = "main"
				c.Diff.IgnoreWhitespace = false
				c.Status.FullPath = true
				c.UI.Theme = "dracula"
				return c
			},
		},
		{
			name:    "empty strings fall back",
			content: "default_remote = \"\"\n[ui]\ntheme = \"\"\n",
			want:    func(c Config) Config { return c },
		},
		{
			name:    "hooks",
			content: "[hooks.test]\ncommand = \"go test ./...\"\non = [\"pull\", \"commit\"]\n[hooks.notes]\ncommand = \"echo {branch}\"\ndescription = \"Print\"\n",
			want: func(c Config) Config {
				c.Hooks = map[string]Hook{
					"test":  {Command: "go test ./...", On: []string{"pull", "commit"}},
					"notes": {Command: "echo {branch}", Description: "Print"},
				}
				return c
			},
		},
		{name: "hook without command", content: "[hooks.x]\non = [\"pull\"]\n", wantErr: `hook "x": command must not be empty`},
		{name: "hook with unknown trigger", content: "[hooks.x]\ncommand = \"true\"\non = [\"add\"]\n", wantErr: `invalid hooks.x.on "add"`},
		{name: "bad theme", content: "[ui]\ntheme = \"solarized\"\n", wantErr: `invalid ui.theme "solarized": must be "default", "dracula", or "nord"`},
		{name: "relative binary", content: "git_binary = \"bin/git\"\n", wantErr: "git_binary must be"},
		{name: "unknown key", content: "pager = \"less\"\n", wantErr: "unknown config keys"},
		{name: "syntax error", content: "[diff\n", wantErr: "failed to parse config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "config.toml")
			if tt.content != "" {
				if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
					t.Fatal(err)
				}
			}

			cfg, err := LoadFile(path)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("LoadFile() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadFile() = %v", err)
			}
			if want := tt.want(Default()); !reflect.DeepEqual(cfg, want) {
				t.Errorf("LoadFile() = %+v, want %+v", cfg, want)
			}
		})
	}
}

func TestPathEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	t.Setenv(EnvConfigPath, path)

	got, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if got != path {
		t.Errorf("Path() = %q, want %q", got, path)
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	t.Setenv(EnvConfigPath, path)

	got, err := Init(false)
	if err != nil {
		t.Fatalf("Init() = %v", err)
	}
	if got != path {
		t.Errorf("Init() path = %q, want %q", got, path)
	}

	if _, err := Init(false); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("second Init(false) = %v, want already exists", err)
	}
	if _, err := Init(true); err != nil {
		t.Errorf("Init(true) = %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() of the generated file = %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("generated file should decode to defaults, got %+v", cfg)
	}
}

func TestDefaultConfigIsValidTOML(t *testing.T) {
	t.Parallel()

	var raw map[string]any
	if _, err := toml.Decode(defaultConfig, &raw); err != nil {
		t.Fatalf("default config does not parse: %v", err)
	}
	for _, key := range []string{"default_remote", "default_base", "diff", "status", "ui"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("default config is missing %q", key)
		}
	}
}

func TestFormatOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		opts []string
		want string
	}{
		{[]string{"a"}, `"a"`},
		{[]string{"a", "b"}, `"a" or "b"`},
		{[]string{"a", "b", "c"}, `"a", "b", or "c"`},
	}
	for _, tt := range tests {
		if got := formatOptions(tt.opts); got != tt.want {
			t.Errorf("formatOptions(%v) = %q, want %q", tt.opts, got, tt.want)
		}
	}
}
