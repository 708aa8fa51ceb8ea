// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package platform provides shared command execution functionality.
package platform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/janderssonse/pkgcenter/internal/domain"
	"golang.org/x/text/encoding/unicode"
)

// DefaultChunkSize is the read size used when streaming command output.
const DefaultChunkSize = 4096

// CommandRunner implements the ProcessRunner port for real system commands.
type CommandRunner struct {
	spawner   Spawner
	chunkSize int
	dryRun    bool
	logger    *log.Logger
}

// NewCommandRunner creates a new command runner backed by os/exec.
func NewCommandRunner(logger *log.Logger, dryRun bool) *CommandRunner {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &CommandRunner{
		spawner:   ExecSpawner{},
		chunkSize: DefaultChunkSize,
		dryRun:    dryRun,
		logger:    logger,
	}
}

// WithSpawner replaces the process backend.
func (r *CommandRunner) WithSpawner(spawner Spawner) *CommandRunner {
	r.spawner = spawner

	return r
}

// WithChunkSize sets the maximum size of a streamed output chunk.
func (r *CommandRunner) WithChunkSize(size int) *CommandRunner {
	if size > 0 {
		r.chunkSize = size
	}

	return r
}

// Process is a running command whose output is consumed as a stream of chunks.
type Process struct {
	ctx       context.Context //nolint:containedctx // needed to tell cancellation from failure in Wait
	name      string
	handle    Handle
	chunkSize int
	consumed  bool
	readErr   error
}

// Start launches a command and returns it for streaming.
func (r *CommandRunner) Start(ctx context.Context, name string, args ...string) (*Process, error) {
	return r.start(ctx, SpawnRequest{Name: name, Args: args})
}

func (r *CommandRunner) start(ctx context.Context, req SpawnRequest) (*Process, error) {
	r.logger.Debug("executing", "cmd", req.Name, "args", strings.Join(req.Args, " "))

	handle, err := r.spawner.Spawn(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrSpawnFailed, req.Name, err)
	}

	return &Process{
		ctx:       ctx,
		name:      req.Name,
		handle:    handle,
		chunkSize: r.chunkSize,
	}, nil
}

// Chunks yields standard output as it arrives, at most one chunk size at a time.
// The sequence is finite and can be ranged over once.
func (p *Process) Chunks() iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		if p.consumed {
			return
		}

		p.consumed = true
		buf := make([]byte, p.chunkSize)
		stdout := p.handle.Stdout()

		for {
			n, err := stdout.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])

				if !yield(chunk) {
					return
				}
			}

			if err != nil {
				if !errors.Is(err, io.EOF) {
					p.readErr = err
				}

				return
			}
		}
	}
}

// Wait drains any unread output and waits for the process to exit.
func (p *Process) Wait() error {
	_, _ = io.Copy(io.Discard, p.handle.Stdout())

	err := p.handle.Wait()

	switch {
	case p.ctx.Err() != nil:
		return fmt.Errorf("%s: %w", p.name, p.ctx.Err())
	case err != nil:
		return fmt.Errorf("%w: %s: %w", domain.ErrCommandFailed, p.name, err)
	case p.readErr != nil:
		return fmt.Errorf("%s: reading output: %w", p.name, p.readErr)
	}

	return nil
}

// Capture runs a command and returns its standard output decoded as UTF-8,
// with invalid sequences replaced. yield is called after every chunk read.
// The exit status is ignored; search tools exit non-zero when nothing matches.
func (r *CommandRunner) Capture(ctx context.Context, yield domain.YieldFunc, name string, args ...string) (string, error) {
	if r.dryRun {
		r.logger.Info("dry run", "cmd", name, "args", strings.Join(args, " "))

		return "", nil
	}

	proc, err := r.Start(ctx, name, args...)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer

	for chunk := range proc.Chunks() {
		out.Write(chunk)

		if yield != nil {
			yield(len(chunk))
		}
	}

	if err := proc.Wait(); err != nil {
		if ctx.Err() != nil {
			return "", err
		}

		r.logger.Debug("exit status ignored", "cmd", name, "err", err)
	}

	return decode(out.Bytes()), nil
}

// Status runs a command, discards its output and returns nil iff it exited zero.
func (r *CommandRunner) Status(ctx context.Context, yield domain.YieldFunc, name string, args ...string) error {
	if r.dryRun {
		r.logger.Info("dry run", "cmd", name, "args", strings.Join(args, " "))

		return nil
	}

	proc, err := r.Start(ctx, name, args...)
	if err != nil {
		return err
	}

	for chunk := range proc.Chunks() {
		if yield != nil {
			yield(len(chunk))
		}
	}

	return proc.Wait()
}

// RunWithStdin writes input and a newline to the command's standard input,
// closes it and waits. Input is never logged.
func (r *CommandRunner) RunWithStdin(ctx context.Context, input, name string, args ...string) error {
	if r.dryRun {
		r.logger.Info("dry run (stdin)", "cmd", name, "args", strings.Join(args, " "))

		return nil
	}

	proc, err := r.start(ctx, SpawnRequest{Name: name, Args: args, Stdin: true})
	if err != nil {
		return err
	}

	stdin := proc.handle.Stdin()
	_, writeErr := io.WriteString(stdin, input+"\n")
	_ = stdin.Close()

	if err := proc.Wait(); err != nil {
		return err
	}

	if writeErr != nil {
		return fmt.Errorf("failed to write stdin: %w", writeErr)
	}

	return nil
}

// CommandExists checks if a command is available on the system.
func (r *CommandRunner) CommandExists(name string) bool {
	_, err := exec.LookPath(name)

	return err == nil
}

func decode(raw []byte) string {
	text, err := unicode.UTF8.NewDecoder().Bytes(raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), "�")
	}

	return string(text)
}
