// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import "github.com/janderssonse/pkgcenter/internal/domain"

// Key names shared by the screens.
const (
	KeyEnter = "enter"
	KeyEsc   = "esc"
	KeyCtrlC = "ctrl+c"
)

// Operation names a privileged action on the package system.
type Operation int

// Operations the search screen can request.
const (
	OpInstall Operation = iota
	OpRemove
	OpClean
)

func (o Operation) String() string {
	switch o {
	case OpInstall:
		return "Install"
	case OpRemove:
		return "Remove"
	case OpClean:
		return "Clean orphans"
	default:
		return "Unknown"
	}
}

// PasswordSubmittedMsg carries the typed password to the app for checking.
type PasswordSubmittedMsg struct {
	Password string
}

// PasswordCancelledMsg is sent when the user leaves the password screen.
type PasswordCancelledMsg struct{}

// SearchRequestedMsg asks the app to run a search.
type SearchRequestedMsg struct {
	Query string
}

// OperationRequestedMsg asks the app to confirm and run an operation.
// Package is empty for OpClean.
type OperationRequestedMsg struct {
	Op      Operation
	Package domain.PackageRecord
}

// ConfirmResultMsg carries the answer of the confirm screen.
type ConfirmResultMsg struct {
	Confirmed bool
}

// NoticeDismissedMsg is sent when the user leaves the notice screen.
type NoticeDismissedMsg struct{}

// HelpRequestedMsg asks the app to show the key reference.
type HelpRequestedMsg struct{}

// HelpClosedMsg is sent when the user leaves the help screen.
type HelpClosedMsg struct{}
