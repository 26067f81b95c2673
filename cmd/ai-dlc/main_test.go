package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/aidlc/cmd/ai-dlc/opts"
	"github.com/walteh/aidlc/pkg/catalog"
	"gitlab.com/tozd/go/errors"
)

type cliResult struct {
	code   int
	stdout string
	stderr string
	dir    string
}

func newTestOpts(t *testing.T, dir string) (*opts.RootOpts, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	return &opts.RootOpts{
		Stdout:  &stdout,
		Stderr:  &stderr,
		Catalog: catalog.Default,
		Getwd:   func() (string, error) { return dir, nil },
	}, &stdout, &stderr
}

func runCLI(t *testing.T, dir string, args ...string) cliResult {
	t.Helper()

	o, stdout, stderr := newTestOpts(t, dir)
	code := run(context.Background(), o, args)
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String(), dir: dir}
}

func listFiles(t *testing.T, root string) []string {
	t.Helper()

	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	require.NoError(t, err)
	return files
}

var claudeFiles = []string{
	".claude/commands/ai-dlc-construction.md",
	".claude/commands/ai-dlc-inception.md",
	".claude/commands/ai-dlc-operations.md",
	".claude/settings.json",
	"CLAUDE.md",
}

func TestScaffold(t *testing.T) {
	tests := []struct {
		name         string
		setup        func(t *testing.T, dir string)
		args         []string
		wantCode     int
		wantFiles    []string
		wantStdout   []string
		wantStderr   []string
		ignoreListed bool
	}{
		{
			name:       "hidden_mode_single_provider",
			args:       []string{"scaffold", "--provider", "claude"},
			wantFiles:  claudeFiles,
			wantStdout: []string{"◆ claude", "CLAUDE.md", "✅ claude: 5 files", "wrote 5 files (5 new, 0 modified, 0 unchanged)"},
		},
		{
			name: "hidden_mode_repeated_short_flag",
			args: []string{"scaffold", "-p", "gemini", "-p", "codex"},
			wantFiles: []string{
				".codex/prompts/ai-dlc.md",
				".gemini/commands/ai-dlc.toml",
				"AGENTS.md",
				"GEMINI.md",
			},
		},
		{
			name: "all_providers",
			args: []string{"scaffold", "--all", "--provider", "does-not-exist"},
			wantFiles: append([]string{
				".codex/prompts/ai-dlc.md",
				".cursor/rules/ai-dlc-construction.mdc",
				".cursor/rules/ai-dlc.mdc",
				".gemini/commands/ai-dlc.toml",
				"AGENTS.md",
				"GEMINI.md",
			}, claudeFiles...),
		},
		{
			name: "templates_mode",
			args: []string{"scaffold", "-p", "cursor", "--mode", "templates"},
			wantFiles: []string{
				"templates/cursor/.cursor/.cursor/rules/ai-dlc-construction.mdc",
				"templates/cursor/.cursor/.cursor/rules/ai-dlc.mdc",
			},
		},
		{
			name:       "unknown_provider_is_skipped",
			args:       []string{"scaffold", "-p", "nope"},
			wantStdout: []string{"provider 'nope' not found in embedded templates"},
		},
		{
			name:       "empty_selection",
			args:       []string{"scaffold"},
			wantStdout: []string{"no providers specified, use --provider or --all"},
		},
		{
			name:       "dry_run_writes_nothing",
			args:       []string{"scaffold", "-p", "claude", "--dry-run"},
			wantStdout: []string{"DRY-RUN", "would create directory ", "would write 5 files (5 new, 0 modified, 0 unchanged)"},
		},
		{
			name:      "exclude_skips_directories",
			args:      []string{"scaffold", "-p", "claude", "--exclude", "**/commands"},
			wantFiles: []string{".claude/settings.json", "CLAUDE.md"},
		},
		{
			name:      "parallel",
			args:      []string{"scaffold", "-p", "claude", "-p", "codex", "--parallel"},
			wantFiles: append([]string{".codex/prompts/ai-dlc.md", "AGENTS.md"}, claudeFiles...),
		},
		{
			name: "existing_files_are_overwritten",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "CLAUDE.md"), []byte("old"), 0o644))
			},
			args:       []string{"scaffold", "-p", "claude"},
			wantFiles:  claudeFiles,
			wantStdout: []string{"UPDATED", "wrote 5 files (4 new, 1 modified, 0 unchanged)"},
		},
		{
			name:       "unknown_mode",
			args:       []string{"scaffold", "-p", "claude", "--mode", "flat"},
			wantCode:   1,
			wantStderr: []string{`unknown mode "flat"`},
		},
		{
			name:       "invalid_exclude",
			args:       []string{"scaffold", "-p", "claude", "--exclude", "[unclosed"},
			wantCode:   1,
			wantStderr: []string{"invalid exclude pattern"},
		},
		{
			name: "io_failure_aborts",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, ".claude"), []byte("in the way"), 0o644))
			},
			args:         []string{"scaffold", "-p", "claude"},
			wantCode:     1,
			wantStderr:   []string{"scaffolding provider claude", "creating directory"},
			ignoreListed: true,
		},
		{
			name:       "positional_args_rejected",
			args:       []string{"scaffold", "claude"},
			wantCode:   1,
			wantStderr: []string{"unknown command"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.setup != nil {
				tt.setup(t, dir)
			}

			res := runCLI(t, dir, tt.args...)
			assert.Equal(t, tt.wantCode, res.code, "stderr: %s", res.stderr)

			for _, want := range tt.wantStdout {
				assert.Contains(t, res.stdout, want)
			}
			for _, want := range tt.wantStderr {
				assert.Contains(t, res.stderr, want)
			}

			if tt.ignoreListed {
				return
			}
			if tt.setup == nil {
				assert.ElementsMatch(t, tt.wantFiles, listFiles(t, dir))
			} else {
				assert.Subset(t, listFiles(t, dir), tt.wantFiles)
			}
		})
	}
}

func TestScaffoldIsIdempotent(t *testing.T) {
	dir := t.TempDir()

	first := runCLI(t, dir, "scaffold", "-p", "claude")
	require.Equal(t, 0, first.code, first.stderr)

	before := map[string][]byte{}
	for _, f := range listFiles(t, dir) {
		content, err := os.ReadFile(filepath.Join(dir, f))
		require.NoError(t, err)
		before[f] = content
	}

	second := runCLI(t, dir, "scaffold", "-p", "claude")
	require.Equal(t, 0, second.code, second.stderr)
	assert.Contains(t, second.stdout, "wrote 5 files (0 new, 0 modified, 5 unchanged)")

	for _, f := range listFiles(t, dir) {
		content, err := os.ReadFile(filepath.Join(dir, f))
		require.NoError(t, err)
		assert.Equal(t, before[f], content, "content of %s changed", f)
	}
	assert.Len(t, listFiles(t, dir), len(before))
}

func TestScaffoldWritesThroughSymlinks(t *testing.T) {
	dir := t.TempDir()
	shared := filepath.Join(t.TempDir(), "shared.md")
	require.NoError(t, os.WriteFile(shared, []byte("stale"), 0o600))
	require.NoError(t, os.Symlink(shared, filepath.Join(dir, "CLAUDE.md")))

	res := runCLI(t, dir, "scaffold", "-p", "claude")
	require.Equal(t, 0, res.code, res.stderr)

	info, err := os.Lstat(filepath.Join(dir, "CLAUDE.md"))
	require.NoError(t, err)
	assert.True(t, info.Mode()&os.ModeSymlink != 0, "CLAUDE.md should still be a symlink")

	cat, err := catalog.Default()
	require.NoError(t, err)
	hidden, ok := cat.GetDirectory("claude/.claude")
	require.True(t, ok)

	var want []byte
	for _, f := range hidden.Files() {
		if f.Name() == "CLAUDE.md" {
			want = f.Contents()
		}
	}
	require.NotEmpty(t, want)

	got, err := os.ReadFile(shared)
	require.NoError(t, err)
	assert.Equal(t, want, got, "the link target should receive the template")
}

func TestScaffoldMatchesCatalog(t *testing.T) {
	dir := t.TempDir()
	res := runCLI(t, dir, "scaffold", "-p", "gemini")
	require.Equal(t, 0, res.code, res.stderr)

	cat, err := catalog.Default()
	require.NoError(t, err)
	hidden, ok := cat.GetDirectory("gemini/.gemini")
	require.True(t, ok)

	err = hidden.Walk(func(e catalog.Entry) error {
		if e.IsDir() {
			return nil
		}
		rel, err := filepath.Rel("gemini/.gemini", e.Path())
		if err != nil {
			return err
		}
		got, err := os.ReadFile(filepath.Join(dir, rel))
		if err != nil {
			return err
		}
		assert.Equal(t, e.(*catalog.File).Contents(), got, "content of %s", rel)
		return nil
	})
	require.NoError(t, err)
}

func TestCatalogLoadFailure(t *testing.T) {
	o, _, stderr := newTestOpts(t, t.TempDir())
	o.Catalog = func() (*catalog.Catalog, error) {
		return nil, errors.New("broken bundle")
	}

	code := run(context.Background(), o, []string{"scaffold", "--all"})
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "loading catalog: broken bundle")
}

func TestList(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		res := runCLI(t, t.TempDir(), "list", "--format", "json")
		require.Equal(t, 0, res.code, res.stderr)

		var got []struct {
			Name      string `json:"name"`
			HiddenDir string `json:"hidden_dir"`
			Files     int    `json:"files"`
		}
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
		require.Len(t, got, 4)

		byName := map[string]int{}
		for _, p := range got {
			assert.Equal(t, p.Name+"/."+p.Name, p.HiddenDir)
			byName[p.Name] = p.Files
		}
		assert.Equal(t, map[string]int{"claude": 5, "codex": 2, "cursor": 2, "gemini": 2}, byName)
	})

	t.Run("yaml", func(t *testing.T) {
		res := runCLI(t, t.TempDir(), "list", "-f", "yaml")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stdout, "- name: claude")
		assert.Contains(t, res.stdout, "hidden_dir: claude/.claude")
	})

	t.Run("table", func(t *testing.T) {
		res := runCLI(t, t.TempDir(), "list")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stdout, "PROVIDER")
		assert.Contains(t, res.stdout, "cursor/.cursor")
	})

	t.Run("unknown_format", func(t *testing.T) {
		res := runCLI(t, t.TempDir(), "list", "--format", "xml")
		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, `unknown format "xml"`)
	})
}

func TestVersion(t *testing.T) {
	res := runCLI(t, t.TempDir(), "version")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "ai-dlc version info")
	assert.Contains(t, res.stdout, runtime.Version())

	res = runCLI(t, t.TempDir(), "version", "--json")
	require.Equal(t, 0, res.code, res.stderr)

	var info VersionInfo
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &info))
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
	assert.NotEmpty(t, info.Version)
}

func TestFormatVersion(t *testing.T) {
	out := FormatVersion(&VersionInfo{
		Version:   "v1.2.3",
		GoVersion: "go1.23.5",
		Platform:  "linux/amd64",
		Revision:  "abc123",
		Modified:  true,
	})
	assert.Contains(t, out, "Version:   v1.2.3")
	assert.Contains(t, out, "Revision:  abc123 (modified)")
	assert.Contains(t, out, "Platform:  linux/amd64")
}

func TestDebugLogging(t *testing.T) {
	res := runCLI(t, t.TempDir(), "--debug", "scaffold", "-p", "codex")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stderr, "extracting directory")

	res = runCLI(t, t.TempDir(), "scaffold", "-p", "codex")
	require.Equal(t, 0, res.code, res.stderr)
	assert.NotContains(t, res.stderr, "extracting directory")
}
