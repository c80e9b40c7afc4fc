// Package buffer stores document text as lines addressed by grapheme
// index.
//
// Go strings are bytes; users perceive grapheme clusters ("e" plus a
// combining accent is one character); terminals render display columns.
// The buffer speaks the middle unit: every Pos.Idx is a grapheme index,
// and this file holds the uniseg-backed helpers that translate between
// grapheme indices and byte offsets. Display-column concerns live in the
// display package.
package buffer

import (
	"github.com/rivo/uniseg"
)

// GraphemeCount returns the number of grapheme clusters in s.
func GraphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// GraphemeAt returns the cluster at the given grapheme index, or "" when
// the index is out of bounds.
func GraphemeAt(s string, idx int) string {
	if idx < 0 {
		return ""
	}
	i := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		if i == idx {
			return cluster
		}
		i++
		s = rest
		state = newState
	}
	return ""
}

// GraphemeToByteOffset converts a grapheme index to a byte offset.
// Indices at or past the cluster count map to len(s).
func GraphemeToByteOffset(s string, idx int) int {
	if idx <= 0 {
		return 0
	}
	i := 0
	state := -1
	original := s
	for len(s) > 0 {
		_, rest, _, newState := uniseg.StepString(s, state)
		i++
		if i == idx {
			return len(original) - len(rest)
		}
		s = rest
		state = newState
	}
	return len(original)
}

// SliceByGraphemes returns the substring covering grapheme indices
// [start, end). Like s[start:end] but never splits a cluster.
func SliceByGraphemes(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end < start {
		return ""
	}

	startByte := GraphemeToByteOffset(s, start)
	endByte := GraphemeToByteOffset(s, end)

	if startByte >= len(s) {
		return ""
	}
	if endByte > len(s) {
		endByte = len(s)
	}

	return s[startByte:endByte]
}
