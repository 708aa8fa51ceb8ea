// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package platform

import (
	"context"
	"fmt"
	"io"
	"os/exec"
)

// SpawnRequest describes a process to start.
type SpawnRequest struct {
	Name  string
	Args  []string
	Stdin bool // When true, the handle exposes a writable standard input
}

// Handle is a started process.
type Handle interface {
	// Stdout streams the process's standard output.
	Stdout() io.Reader

	// Stdin is nil unless the request asked for it.
	Stdin() io.WriteCloser

	// Wait blocks until the process exits. It returns nil iff the exit code is zero.
	Wait() error
}

// Spawner starts processes. ExecSpawner is the real backend; tests inject fakes.
type Spawner interface {
	Spawn(ctx context.Context, req SpawnRequest) (Handle, error)
}

// ExecSpawner starts real subprocesses with os/exec.
type ExecSpawner struct{}

// Spawn starts req as a subprocess. Standard error goes to the null device.
func (ExecSpawner) Spawn(ctx context.Context, req SpawnRequest) (Handle, error) {
	// #nosec G204 - argument vector, no shell involved
	cmd := exec.CommandContext(ctx, req.Name, req.Args...)

	handle := &execHandle{cmd: cmd}

	if req.Stdin {
		stdin, err := cmd.StdinPipe()
		if err != nil {
			return nil, fmt.Errorf("failed to create stdin pipe: %w", err)
		}

		handle.stdin = stdin
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}

	handle.stdout = stdout

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	return handle, nil
}

type execHandle struct {
	cmd    *exec.Cmd
	stdout io.Reader
	stdin  io.WriteCloser
}

func (h *execHandle) Stdout() io.Reader     { return h.stdout }
func (h *execHandle) Stdin() io.WriteCloser { return h.stdin }
func (h *execHandle) Wait() error           { return h.cmd.Wait() }
