// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/janderssonse/pkgcenter/internal/domain"
	"github.com/janderssonse/pkgcenter/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run-based tests are not parallel: urfave/cli shares its help and version
// flags between command trees.

const firefoxListing = "\x1b[1;35mextra\x1b[0m/\x1b[1mfirefox\x1b[0m 131.0-1 (64.2 MiB 240.1 MiB) \x1b[1;36m[installed]\x1b[0m\n" +
	"    Fast, Private & Safe Web Browser\n" +
	"aur/firefox-nightly 133.0a1-1 (+12 0.45)\n" +
	"    Nightly build\n"

type fakePrompter struct {
	password  string
	confirmed bool
	asked     []string
}

func (f *fakePrompter) Password(title string) (string, error) {
	f.asked = append(f.asked, "password:"+title)

	return f.password, nil
}

func (f *fakePrompter) Confirm(title, _ string) (bool, error) {
	f.asked = append(f.asked, "confirm:"+title)

	return f.confirmed, nil
}

type harness struct {
	app     *CLI
	spawner *testutil.FakeSpawner
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	config  string
}

func newHarness(t *testing.T, stdin string, opts ...Option) *harness {
	t.Helper()

	h := &harness{
		spawner: testutil.NewFakeSpawner(),
		stdout:  &bytes.Buffer{},
		stderr:  &bytes.Buffer{},
		config:  filepath.Join(t.TempDir(), "config.toml"),
	}

	opts = append([]Option{
		WithIO(strings.NewReader(stdin), h.stdout, h.stderr),
		WithSpawner(h.spawner),
		WithInteractive(false),
	}, opts...)
	h.app = NewCLI(opts...)

	return h
}

func (h *harness) run(args ...string) error {
	full := append([]string{"pkgcenter", "--config", h.config}, args...)

	return h.app.Run(context.Background(), full)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func exitCode(t *testing.T, err error) int {
	t.Helper()

	var exitErr *domain.ExitError
	require.ErrorAs(t, err, &exitErr)

	return exitErr.Code
}

func TestNewCLI(t *testing.T) {
	t.Parallel()

	app := NewCLI()

	require.NotNil(t, app.app)
	assert.Equal(t, "pkgcenter", app.app.Name)
	assert.NotEmpty(t, app.app.Usage)
	assert.NotEmpty(t, app.app.Description)

	names := make(map[string]bool)
	for _, cmd := range app.app.Commands {
		names[cmd.Name] = true
	}

	for _, want := range []string{"search", "install", "remove", "clean", "doctor", "tui"} {
		assert.True(t, names[want], "command %s should exist", want)
	}
}

func TestCLI_SearchFormats(t *testing.T) {
	tests := []struct {
		name  string
		flags []string
		check func(t *testing.T, out string)
	}{
		{
			name: "table",
			check: func(t *testing.T, out string) {
				t.Helper()
				assert.Contains(t, out, "REPO")
				assert.Contains(t, out, "firefox-nightly")
				assert.Contains(t, out, "2 packages found (1 installed)")
				assert.NotContains(t, out, "\x1b[1;35m")
			},
		},
		{
			name:  "plain",
			flags: []string{"--plain"},
			check: func(t *testing.T, out string) {
				t.Helper()
				assert.Equal(t, "extra/firefox 131.0-1 installed\naur/firefox-nightly 133.0a1-1 available\n", out)
			},
		},
		{
			name:  "format flag",
			flags: []string{"--format", "plain"},
			check: func(t *testing.T, out string) {
				t.Helper()
				assert.Equal(t, "extra/firefox 131.0-1 installed\naur/firefox-nightly 133.0a1-1 available\n", out)
			},
		},
		{
			name:  "json",
			flags: []string{"--json"},
			check: func(t *testing.T, out string) {
				t.Helper()

				var result domain.SearchResult
				require.NoError(t, json.Unmarshal([]byte(out), &result))
				assert.Equal(t, "firefox", result.Query)
				assert.Equal(t, domain.Summary{Total: 2, Installed: 1}, result.Summary)
				assert.Equal(t, "Fast, Private & Safe Web Browser", result.Packages[0].Description)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, "")
			h.spawner.
				On("yay -Ss firefox", testutil.FakeResult{Output: firefoxListing}).
				On("pacman -Qi firefox-nightly", testutil.FakeResult{WaitErr: errors.New("exit status 1")})

			args := append(append([]string{}, tc.flags...), "search", "firefox")
			require.NoError(t, h.run(args...))
			tc.check(t, h.stdout.String())
		})
	}
}

func TestCLI_SearchPassesTermsSeparately(t *testing.T) {
	h := newHarness(t, "")

	require.NoError(t, h.run("--plain", "search", "neovim", "lua"))
	assert.Equal(t, []string{"yay -Ss neovim lua"}, h.spawner.CommandLines())

	requests := h.spawner.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, []string{"-Ss", "neovim", "lua"}, requests[0].Args)
}

func TestCLI_SearchErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{"no terms", []string{"search"}, domain.ExitUsageError},
		{"flag-like term", []string{"search", "--", "-Rns"}, domain.ExitUsageError},
		{"conflicting flags", []string{"--json", "--plain", "search", "vim"}, domain.ExitUsageError},
		{"bad format", []string{"--format", "xml", "search", "vim"}, domain.ExitUsageError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, "")

			err := h.run(tc.args...)
			require.Error(t, err)
			assert.Equal(t, tc.wantCode, exitCode(t, err))
			assert.Zero(t, h.spawner.Calls())
		})
	}
}

func TestCLI_SearchSpawnFailure(t *testing.T) {
	h := newHarness(t, "")
	h.spawner.Default = testutil.FakeResult{SpawnErr: errors.New("executable file not found")}

	err := h.run("search", "vim")
	require.Error(t, err)
	assert.Equal(t, domain.ExitDependencyError, exitCode(t, err))
	require.ErrorIs(t, err, domain.ErrSpawnFailed)
}

func TestCLI_ConfigFileTools(t *testing.T) {
	h := newHarness(t, "")
	require.NoError(t, os.WriteFile(h.config, []byte("[tools]\nsearch = \"paru\"\ndatabase = \"pacman\"\n"), 0o600))

	require.NoError(t, h.run("--plain", "search", "vim"))
	assert.Equal(t, []string{"paru -Ss vim"}, h.spawner.CommandLines())
}

func TestCLI_FlagOverridesConfig(t *testing.T) {
	h := newHarness(t, "")
	require.NoError(t, os.WriteFile(h.config, []byte("[tools]\nsearch = \"paru\"\n"), 0o600))

	require.NoError(t, h.run("--search-tool", "yay", "--plain", "search", "vim"))
	assert.Equal(t, []string{"yay -Ss vim"}, h.spawner.CommandLines())
}

func TestCLI_InvalidConfig(t *testing.T) {
	h := newHarness(t, "")
	require.NoError(t, os.WriteFile(h.config, []byte("[tools\n"), 0o600))

	err := h.run("search", "vim")
	require.Error(t, err)
	assert.Equal(t, domain.ExitConfigError, exitCode(t, err))
}

func TestCLI_DryRun(t *testing.T) {
	h := newHarness(t, "")

	require.NoError(t, h.run("--dry-run", "--plain", "search", "vim"))
	assert.Zero(t, h.spawner.Calls())
	assert.Empty(t, h.stdout.String())
}

func TestCLI_InstallWithPasswordStdin(t *testing.T) {
	h := newHarness(t, "hunter2\n")

	require.NoError(t, h.run("--yes", "--password-stdin", "install", "firefox"))

	assert.Equal(t, []string{
		"sudo -S -v",
		"sudo -S -v",
		"yay -S --noconfirm --answerclean None --answerdiff None --answeredit None firefox",
	}, h.spawner.CommandLines())
	assert.Equal(t, "hunter2\n", h.spawner.StdinFor("sudo -S -v"))
	assert.Contains(t, h.stdout.String(), "Install firefox: done")
	assert.NotContains(t, h.stderr.String(), "hunter2")
}

func TestCLI_RemoveAndClean(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantLast string
	}{
		{"remove", []string{"remove", "firefox"}, "yay -Rns --noconfirm firefox"},
		{"uninstall alias", []string{"uninstall", "firefox"}, "yay -Rns --noconfirm firefox"},
		{"clean", []string{"clean"}, "yay -Yc --noconfirm"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, "hunter2\n")

			args := append([]string{"--yes", "--password-stdin"}, tc.args...)
			require.NoError(t, h.run(args...))

			lines := h.spawner.CommandLines()
			require.NotEmpty(t, lines)
			assert.Equal(t, tc.wantLast, lines[len(lines)-1])
		})
	}
}

func TestCLI_InstallNeedsConfirmationOffTerminal(t *testing.T) {
	h := newHarness(t, "hunter2\n")

	err := h.run("--password-stdin", "install", "firefox")
	require.Error(t, err)
	assert.Equal(t, domain.ExitUsageError, exitCode(t, err))
	require.ErrorIs(t, err, ErrNotConfirmed)
	assert.Zero(t, h.spawner.Calls())
}

func TestCLI_InstallNeedsPasswordOffTerminal(t *testing.T) {
	h := newHarness(t, "")

	err := h.run("--yes", "install", "firefox")
	require.Error(t, err)
	assert.Equal(t, domain.ExitUsageError, exitCode(t, err))
	require.ErrorIs(t, err, ErrPasswordRequired)
	assert.Zero(t, h.spawner.Calls())
}

func TestCLI_InstallPrompts(t *testing.T) {
	prompter := &fakePrompter{password: "hunter2", confirmed: true}
	h := newHarness(t, "", WithPrompter(prompter), WithInteractive(true))

	require.NoError(t, h.run("install", "firefox"))
	assert.Equal(t, []string{"confirm:Install firefox?", "password:sudo password"}, prompter.asked)
	assert.Equal(t, "hunter2\n", h.spawner.StdinFor("sudo -S -v"))
}

func TestCLI_InstallDeclined(t *testing.T) {
	prompter := &fakePrompter{password: "hunter2", confirmed: false}
	h := newHarness(t, "", WithPrompter(prompter), WithInteractive(true))

	err := h.run("install", "firefox")
	require.Error(t, err)
	assert.Equal(t, domain.ExitSuccess, exitCode(t, err))
	assert.Equal(t, []string{"confirm:Install firefox?"}, prompter.asked)
	assert.Zero(t, h.spawner.Calls())
}

func TestCLI_InstallAuthenticationFailure(t *testing.T) {
	h := newHarness(t, "wrong\n")
	h.spawner.On("sudo -S -v", testutil.FakeResult{WaitErr: errors.New("exit status 1")})

	err := h.run("--yes", "--password-stdin", "install", "firefox")
	require.Error(t, err)
	assert.Equal(t, domain.ExitPermissionError, exitCode(t, err))
	require.ErrorIs(t, err, domain.ErrAuthenticationFailed)
	assert.Equal(t, []string{"sudo -S -v"}, h.spawner.CommandLines(), "the helper must not run")
}

func TestCLI_InstallCommandFailure(t *testing.T) {
	h := newHarness(t, "hunter2\n")
	h.spawner.On("yay -S --noconfirm --answerclean None --answerdiff None --answeredit None nope",
		testutil.FakeResult{Output: "error: target not found: nope\n", WaitErr: errors.New("exit status 1")})

	err := h.run("--yes", "--password-stdin", "install", "nope")
	require.Error(t, err)
	assert.Equal(t, domain.ExitPackageError, exitCode(t, err))

	var exitErr *domain.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Contains(t, exitErr.Message, "The package tool failed for 'nope'")
}

func TestCLI_InstallUsage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no package", []string{"install"}},
		{"two packages", []string{"install", "a", "b"}},
		{"flag-like package", []string{"install", "--", "-Syu"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, "hunter2\n")

			args := append([]string{"--yes", "--password-stdin"}, tc.args...)
			err := h.run(args...)
			require.Error(t, err)
			assert.Equal(t, domain.ExitUsageError, exitCode(t, err))

			for _, line := range h.spawner.CommandLines() {
				assert.NotContains(t, line, "yay", "the helper must not run")
			}
		})
	}
}

func TestCLI_Doctor(t *testing.T) {
	t.Run("all tools present", func(t *testing.T) {
		h := newHarness(t, "", WithOSRelease(writeFile(t, "os-release", "NAME=\"Arch Linux\"\nID=arch\n")))
		require.NoError(t, os.WriteFile(h.config,
			[]byte("[tools]\nsearch = \"sh\"\ndatabase = \"sh\"\nsudo = \"sh\"\n"), 0o600))

		require.NoError(t, h.run("--plain", "doctor"))
		assert.Contains(t, h.stdout.String(), "search tool sh: found")
		assert.Contains(t, h.stdout.String(), "config: "+h.config)
		assert.Contains(t, h.stdout.String(), "distribution: Arch Linux")
		assert.NotContains(t, h.stderr.String(), "not Arch-based")
	})

	t.Run("foreign distribution warns", func(t *testing.T) {
		h := newHarness(t, "", WithOSRelease(writeFile(t, "os-release", "NAME=Debian\nID=debian\n")))
		require.NoError(t, os.WriteFile(h.config,
			[]byte("[tools]\nsearch = \"sh\"\ndatabase = \"sh\"\nsudo = \"sh\"\n"), 0o600))

		require.NoError(t, h.run("--plain", "doctor"))
		assert.Contains(t, h.stderr.String(), "warning: Debian is not Arch-based")
	})

	t.Run("missing tool", func(t *testing.T) {
		h := newHarness(t, "", WithOSRelease(writeFile(t, "os-release", "ID=arch\n")))
		require.NoError(t, os.WriteFile(h.config,
			[]byte("[tools]\nsearch = \"pkgcenter-no-such-helper\"\ndatabase = \"sh\"\nsudo = \"sh\"\n"), 0o600))

		err := h.run("--plain", "doctor")
		require.Error(t, err)
		assert.Equal(t, domain.ExitDependencyError, exitCode(t, err))
		assert.Contains(t, err.Error(), "pkgcenter-no-such-helper")
	})
}

func TestCLI_UnknownCommand(t *testing.T) {
	h := newHarness(t, "")

	err := h.run("frobnicate")
	require.Error(t, err)
	assert.Equal(t, domain.ExitUsageError, exitCode(t, err))
	assert.Contains(t, err.Error(), "'frobnicate' is not a command")
}

func TestCLI_LogFile(t *testing.T) {
	h := newHarness(t, "")
	logPath := filepath.Join(t.TempDir(), "pkgcenter.log")

	require.NoError(t, h.run("--verbose", "--log-file", logPath, "--plain", "search", "vim"))

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "yay")
}

func TestReadSecretLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"newline", "hunter2\n", "hunter2", false},
		{"crlf", "hunter2\r\n", "hunter2", false},
		{"no newline", "hunter2", "hunter2", false},
		{"only first line", "one\ntwo\n", "one", false},
		{"empty input", "", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := readSecretLine(strings.NewReader(tc.input))
			if tc.wantErr {
				require.ErrorIs(t, err, ErrPasswordRequired)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
