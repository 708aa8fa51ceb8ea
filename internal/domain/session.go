// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import "sync"

// Session holds the sudo credential typed at the startup prompt.
//
// It lives in memory only and is cleared when the process exits. Every
// privileged operation reads it; front-ends may do so from several goroutines.
type Session struct {
	mu     sync.RWMutex
	secret string
}

// NewSession creates a session caching the given credential.
func NewSession(secret string) *Session {
	return &Session{secret: secret}
}

// Credential returns the cached credential or ErrNoCredential.
func (s *Session) Credential() (string, error) {
	if s == nil {
		return "", ErrNoCredential
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.secret == "" {
		return "", ErrNoCredential
	}

	return s.secret, nil
}

// Active reports whether a credential is cached.
func (s *Session) Active() bool {
	_, err := s.Credential()

	return err == nil
}

// Clear forgets the credential.
func (s *Session) Clear() {
	if s == nil {
		return
	}

	s.mu.Lock()
	s.secret = ""
	s.mu.Unlock()
}

// String never reveals the credential.
func (s *Session) String() string {
	if s.Active() {
		return "session(active)"
	}

	return "session(empty)"
}
