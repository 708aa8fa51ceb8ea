// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package platform_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/janderssonse/pkgcenter/internal/adapters/platform"
	"github.com/janderssonse/pkgcenter/internal/domain"
	"github.com/janderssonse/pkgcenter/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandRunner_Capture(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		cmd        string
		args       []string
		wantOutput string
		wantErr    error
	}{
		{
			name:       "capture echo output",
			cmd:        "echo",
			args:       []string{"test output"},
			wantOutput: "test output\n",
		},
		{
			name:       "capture multiline output",
			cmd:        "sh",
			args:       []string{"-c", "echo line1; echo line2"},
			wantOutput: "line1\nline2\n",
		},
		{
			name:       "stderr is discarded",
			cmd:        "sh",
			args:       []string{"-c", "echo out; echo err >&2"},
			wantOutput: "out\n",
		},
		{
			name:       "non-zero exit still returns output",
			cmd:        "sh",
			args:       []string{"-c", "echo partial; exit 1"},
			wantOutput: "partial\n",
		},
		{
			name:    "command not found",
			cmd:     "nonexistent_command_xyz",
			wantErr: domain.ErrSpawnFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cr := platform.NewCommandRunner(nil, false)
			output, err := cr.Capture(context.Background(), nil, tt.cmd, tt.args...)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, output)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantOutput, output)
		})
	}
}

func TestCommandRunner_Status(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cmd     string
		args    []string
		wantErr error
	}{
		{name: "successful command", cmd: "true"},
		{name: "output is discarded", cmd: "echo", args: []string{"hello"}},
		{name: "exit code 1", cmd: "sh", args: []string{"-c", "exit 1"}, wantErr: domain.ErrCommandFailed},
		{name: "non-existent command", cmd: "nonexistent_command_xyz", wantErr: domain.ErrSpawnFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cr := platform.NewCommandRunner(nil, false)
			err := cr.Status(context.Background(), nil, tt.cmd, tt.args...)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCommandRunner_RunWithStdin(t *testing.T) {
	t.Parallel()

	cr := platform.NewCommandRunner(nil, false)

	t.Run("input reaches the process", func(t *testing.T) {
		t.Parallel()

		err := cr.RunWithStdin(context.Background(), "secret", "sh", "-c", `read line; [ "$line" = secret ]`)
		assert.NoError(t, err)
	})

	t.Run("wrong input fails", func(t *testing.T) {
		t.Parallel()

		err := cr.RunWithStdin(context.Background(), "other", "sh", "-c", `read line; [ "$line" = secret ]`)
		assert.ErrorIs(t, err, domain.ErrCommandFailed)
	})

	t.Run("spawn failure", func(t *testing.T) {
		t.Parallel()

		err := cr.RunWithStdin(context.Background(), "x", "nonexistent_command_xyz")
		assert.ErrorIs(t, err, domain.ErrSpawnFailed)
	})
}

func TestCommandRunner_RunWithStdin_AppendsNewline(t *testing.T) {
	t.Parallel()

	spawner := testutil.NewFakeSpawner()
	cr := platform.NewCommandRunner(nil, false).WithSpawner(spawner)

	require.NoError(t, cr.RunWithStdin(context.Background(), "hunter2", "sudo", "-S", "-v"))
	assert.Equal(t, "hunter2\n", spawner.StdinFor("sudo -S -v"))
	require.Len(t, spawner.Requests(), 1)
	assert.True(t, spawner.Requests()[0].Stdin)
}

func TestCommandRunner_YieldsPerChunk(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		outputSize int
		chunkSize  int
		wantYields int
	}{
		{name: "empty output never yields", outputSize: 0, chunkSize: 8, wantYields: 0},
		{name: "single chunk", outputSize: 8, chunkSize: 8, wantYields: 1},
		{name: "several chunks", outputSize: 20, chunkSize: 8, wantYields: 3},
		{name: "default chunk size", outputSize: 3 * platform.DefaultChunkSize, chunkSize: 0, wantYields: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			output := strings.Repeat("x", tt.outputSize)
			spawner := testutil.NewFakeSpawner()
			spawner.Default = testutil.FakeResult{Output: output}

			cr := platform.NewCommandRunner(nil, false).WithSpawner(spawner).WithChunkSize(tt.chunkSize)

			yields, total := 0, 0
			got, err := cr.Capture(context.Background(), func(n int) {
				yields++
				total += n
			}, "yay", "-Ss", "foo")

			require.NoError(t, err)
			assert.Equal(t, output, got)
			assert.Equal(t, tt.wantYields, yields)
			assert.Equal(t, tt.outputSize, total)

			statusYields := 0
			require.NoError(t, cr.Status(context.Background(), func(int) { statusYields++ }, "yay", "-S", "foo"))
			assert.Equal(t, tt.wantYields, statusYields)
		})
	}
}

func TestCommandRunner_CaptureDecodesBestEffort(t *testing.T) {
	t.Parallel()

	spawner := testutil.NewFakeSpawner()
	spawner.Default = testutil.FakeResult{Output: "ok \xff\xfe end"}
	cr := platform.NewCommandRunner(nil, false).WithSpawner(spawner)

	got, err := cr.Capture(context.Background(), nil, "yay", "-Ss", "x")
	require.NoError(t, err)
	assert.Equal(t, "ok �� end", got)
}

func TestCommandRunner_SpawnFailureIsDistinct(t *testing.T) {
	t.Parallel()

	spawner := testutil.NewFakeSpawner()
	spawner.Default = testutil.FakeResult{SpawnErr: errors.New("exec: not found")}
	cr := platform.NewCommandRunner(nil, false).WithSpawner(spawner)

	_, err := cr.Capture(context.Background(), nil, "yay", "-Ss", "x")
	require.ErrorIs(t, err, domain.ErrSpawnFailed)
	assert.NotErrorIs(t, err, domain.ErrCommandFailed)
}

func TestProcess_ChunksAreNotRestartable(t *testing.T) {
	t.Parallel()

	spawner := testutil.NewFakeSpawner()
	spawner.Default = testutil.FakeResult{Output: "abcdef"}
	cr := platform.NewCommandRunner(nil, false).WithSpawner(spawner).WithChunkSize(2)

	proc, err := cr.Start(context.Background(), "yay", "-Ss", "x")
	require.NoError(t, err)

	var first []string
	for chunk := range proc.Chunks() {
		first = append(first, string(chunk))
	}

	second := 0
	for range proc.Chunks() {
		second++
	}

	assert.Equal(t, []string{"ab", "cd", "ef"}, first)
	assert.Zero(t, second)
	assert.NoError(t, proc.Wait())
}

func TestProcess_EarlyStopStillWaits(t *testing.T) {
	t.Parallel()

	cr := platform.NewCommandRunner(nil, false).WithChunkSize(4)

	proc, err := cr.Start(context.Background(), "sh", "-c", "head -c 100000 /dev/zero")
	require.NoError(t, err)

	for range proc.Chunks() {
		break
	}

	assert.NoError(t, proc.Wait())
}

func TestCommandRunner_ContextCancellation(t *testing.T) {
	t.Parallel()

	cr := platform.NewCommandRunner(nil, false)

	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)

	go func() {
		errChan <- cr.Status(ctx, nil, "sleep", "10")
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-errChan:
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("command did not respond to context cancellation")
	}
}

func TestCommandRunner_DryRun(t *testing.T) {
	t.Parallel()

	spawner := testutil.NewFakeSpawner()
	cr := platform.NewCommandRunner(nil, true).WithSpawner(spawner)

	out, err := cr.Capture(context.Background(), nil, "yay", "-Ss", "foo")
	require.NoError(t, err)
	assert.Empty(t, out)
	require.NoError(t, cr.Status(context.Background(), nil, "yay", "-Yc", "--noconfirm"))
	require.NoError(t, cr.RunWithStdin(context.Background(), "pw", "sudo", "-S", "-v"))
	assert.Zero(t, spawner.Calls())
}

func TestCommandRunner_CommandExists(t *testing.T) {
	t.Parallel()

	cr := platform.NewCommandRunner(nil, false)

	tests := []struct {
		name   string
		cmd    string
		expect bool
	}{
		{"echo exists", "echo", true},
		{"sh exists", "sh", true},
		{"nonexistent command", "nonexistent_xyz", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expect, cr.CommandExists(tt.cmd))
		})
	}
}
