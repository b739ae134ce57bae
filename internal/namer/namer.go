// Package namer turns raw transcripts into filesystem-safe file names.
//
// Policy: a derived name keeps the first 8 transcript words, joined and
// sanitized. Transcripts below the configured word minimum fall back to
// the original file name plus the file's index, never the transcript.
package namer

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxFilenameLen bounds the whole output file name (base + extension)
// in bytes, matching common filesystem NAME_MAX.
const MaxFilenameLen = 255

// maxTranscriptWords is how many leading transcript words make it into
// the name.
const maxTranscriptWords = 8

// DerivedName is a sanitized filename candidate, without extension.
type DerivedName struct {
	Base     string
	Fallback bool // true when the transcript missed the word minimum
}

var (
	// unsafeChars matches everything that is not a letter, digit,
	// underscore, whitespace, or hyphen.
	unsafeChars = regexp.MustCompile(`[^\p{L}\p{N}_\s-]+`)
	// separators matches runs of whitespace and hyphens.
	separators = regexp.MustCompile(`[-\s]+`)
)

// Sanitize reduces s to a filesystem-safe token: unsafe characters are
// dropped, whitespace/hyphen runs become single underscores, and
// leading/trailing underscores are trimmed. Sanitizing an already
// sanitized string is a no-op.
func Sanitize(s string) string {
	s = unsafeChars.ReplaceAllString(s, "")
	s = separators.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// WordCount counts whitespace-separated words in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// Options configures name derivation.
type Options struct {
	// MinWords is the minimum transcript word count; below it the
	// fallback scheme is used.
	MinWords int
	// MaxLen bounds the final name (base + ext) in bytes. Zero means
	// MaxFilenameLen.
	MaxLen int
}

// Derive builds the output file name base for one transcript. index is
// the 1-based position of the file in the run; originalName is the
// source file's base name (with or without extension); ext is the
// extension that will be appended by the writer.
func Derive(transcript string, index int, originalName, ext string, opts Options) DerivedName {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = MaxFilenameLen
	}

	d := deriveBase(transcript, index, originalName, opts.MinWords)
	d.Base = truncate(d.Base, maxLen-len(ext))
	return d
}

func deriveBase(transcript string, index int, originalName string, minWords int) DerivedName {
	words := strings.Fields(transcript)
	if len(words) >= minWords {
		if len(words) > maxTranscriptWords {
			words = words[:maxTranscriptWords]
		}
		cleaned := Sanitize(strings.Join(words, "_"))
		if cleaned != "" {
			return DerivedName{Base: fmt.Sprintf("%d_%s", index, cleaned)}
		}
		// Transcript was all punctuation; nothing usable survived.
	}

	original := Sanitize(trimExt(originalName))
	if original == "" {
		original = "recording"
	}
	return DerivedName{Base: fmt.Sprintf("%s_%d", original, index), Fallback: true}
}

// trimExt strips a trailing extension from a file name.
func trimExt(name string) string {
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		return name[:i]
	}
	return name
}

// truncate cuts s to at most n bytes without splitting a UTF-8 rune,
// dropping any underscore left dangling at the cut.
func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return strings.TrimRight(s[:cut], "_")
}
