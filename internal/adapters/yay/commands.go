// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package yay

// Default executables.
const (
	DefaultSearchTool   = "yay"
	DefaultDatabaseTool = "pacman"
	DefaultSudoTool     = "sudo"
)

// Tools names the executables the front-end drives.
type Tools struct {
	Search   string `toml:"search"`   // AUR helper used for search, install, remove and cleanup
	Database string `toml:"database"` // local package database
	Sudo     string `toml:"sudo"`
}

// DefaultTools returns yay, pacman and sudo.
func DefaultTools() Tools {
	return Tools{
		Search:   DefaultSearchTool,
		Database: DefaultDatabaseTool,
		Sudo:     DefaultSudoTool,
	}
}

// SearchArgs returns "-Ss term...". Each term is its own argument.
func SearchArgs(terms []string) []string {
	return append([]string{"-Ss"}, terms...)
}

// InstallArgs installs without any interactive question.
func InstallArgs(pkg string) []string {
	return []string{
		"-S", "--noconfirm",
		"--answerclean", "None",
		"--answerdiff", "None",
		"--answeredit", "None",
		pkg,
	}
}

// RemoveArgs removes a package, its configuration and unneeded dependencies.
func RemoveArgs(pkg string) []string {
	return []string{"-Rns", "--noconfirm", pkg}
}

// CleanArgs removes orphaned dependencies.
func CleanArgs() []string {
	return []string{"-Yc", "--noconfirm"}
}

// QueryArgs asks the local database about one package.
func QueryArgs(name string) []string {
	return []string{"-Qi", name}
}

// ValidateArgs refreshes sudo's cached credentials, reading the password from stdin.
func ValidateArgs() []string {
	return []string{"-S", "-v"}
}
