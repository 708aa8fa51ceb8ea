// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package termtext removes terminal control sequences from captured command output.
package termtext

import "strings"

const (
	esc = 0x1b
	bel = 0x07
)

// Strip removes CSI (ESC [) and OSC (ESC ]) sequences from text.
//
// A CSI sequence ends at the first byte in '@'..'~'. An OSC sequence ends at
// BEL or at ESC \. Unterminated sequences run to the end of input. An ESC
// followed by anything else is dropped on its own and the next byte is kept.
func Strip(text string) string {
	if strings.IndexByte(text, esc) < 0 {
		return text
	}

	var out strings.Builder
	out.Grow(len(text))

	for i := 0; i < len(text); {
		if text[i] != esc {
			out.WriteByte(text[i])
			i++

			continue
		}

		if i+1 >= len(text) {
			break
		}

		switch text[i+1] {
		case '[':
			i = skipCSI(text, i+2)
		case ']':
			i = skipOSC(text, i+2)
		default:
			i++
		}
	}

	return out.String()
}

// skipCSI returns the index just past the final byte of a CSI sequence whose
// parameters start at from.
func skipCSI(text string, from int) int {
	for j := from; j < len(text); j++ {
		if text[j] >= '@' && text[j] <= '~' {
			return j + 1
		}
	}

	return len(text)
}

// skipOSC returns the index just past the terminator of an OSC sequence whose
// payload starts at from.
func skipOSC(text string, from int) int {
	for j := from; j < len(text); j++ {
		if text[j] == bel {
			return j + 1
		}

		if text[j] == esc && j+1 < len(text) && text[j+1] == '\\' {
			return j + 2
		}
	}

	return len(text)
}
