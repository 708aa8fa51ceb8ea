// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package testutil provides fakes and mocks shared by tests across packages.
package testutil

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"

	"github.com/janderssonse/pkgcenter/internal/adapters/platform"
)

// FakeResult scripts what a fake process does.
type FakeResult struct {
	Output   string // written to standard output
	WaitErr  error  // returned by Wait; nil means exit code zero
	SpawnErr error  // returned by Spawn instead of a handle
}

// FakeSpawner is a platform.Spawner that never starts a real process.
// Results are looked up by "name arg1 arg2..."; Default covers everything else.
type FakeSpawner struct {
	mu       sync.Mutex
	Results  map[string]FakeResult
	Default  FakeResult
	requests []platform.SpawnRequest
	stdin    map[string]*bytes.Buffer
}

// NewFakeSpawner creates an empty fake spawner.
func NewFakeSpawner() *FakeSpawner {
	return &FakeSpawner{
		Results: make(map[string]FakeResult),
		stdin:   make(map[string]*bytes.Buffer),
	}
}

// On scripts the result for one command line.
func (f *FakeSpawner) On(commandLine string, result FakeResult) *FakeSpawner {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Results[commandLine] = result

	return f
}

// Spawn records the request and returns a scripted handle.
func (f *FakeSpawner) Spawn(_ context.Context, req platform.SpawnRequest) (platform.Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)
	key := CommandLine(req.Name, req.Args...)

	result, ok := f.Results[key]
	if !ok {
		result = f.Default
	}

	if result.SpawnErr != nil {
		return nil, result.SpawnErr
	}

	handle := &fakeHandle{stdout: strings.NewReader(result.Output), waitErr: result.WaitErr}

	if req.Stdin {
		buf := &bytes.Buffer{}
		f.stdin[key] = buf
		handle.stdin = nopWriteCloser{buf}
	}

	return handle, nil
}

// Calls returns how many processes were spawned.
func (f *FakeSpawner) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.requests)
}

// CommandLines returns every spawned command line in order.
func (f *FakeSpawner) CommandLines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	lines := make([]string, 0, len(f.requests))
	for _, req := range f.requests {
		lines = append(lines, CommandLine(req.Name, req.Args...))
	}

	return lines
}

// Requests returns every spawn request in order.
func (f *FakeSpawner) Requests() []platform.SpawnRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]platform.SpawnRequest(nil), f.requests...)
}

// StdinFor returns what was written to the standard input of a command line.
func (f *FakeSpawner) StdinFor(commandLine string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if buf, ok := f.stdin[commandLine]; ok {
		return buf.String()
	}

	return ""
}

// CommandLine joins a command and its arguments with single spaces.
func CommandLine(name string, args ...string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

type fakeHandle struct {
	stdout  io.Reader
	stdin   io.WriteCloser
	waitErr error
}

func (h *fakeHandle) Stdout() io.Reader     { return h.stdout }
func (h *fakeHandle) Stdin() io.WriteCloser { return h.stdin }
func (h *fakeHandle) Wait() error           { return h.waitErr }

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
